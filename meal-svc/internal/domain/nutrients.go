package domain

import "encoding/json"

// Nutrients is an insertion-ordered mapping from nutrient name to entry.
// Setting an existing name replaces its value but keeps its position.
type Nutrients struct {
	order   []string
	entries map[string]NutrientEntry
}

func (n *Nutrients) Set(entry NutrientEntry) {
	if n.entries == nil {
		n.entries = make(map[string]NutrientEntry)
	}
	if _, ok := n.entries[entry.Name]; !ok {
		n.order = append(n.order, entry.Name)
	}
	n.entries[entry.Name] = entry
}

func (n Nutrients) Get(name string) (NutrientEntry, bool) {
	entry, ok := n.entries[name]
	return entry, ok
}

func (n Nutrients) Len() int {
	return len(n.order)
}

func (n Nutrients) Entries() []NutrientEntry {
	entries := make([]NutrientEntry, 0, len(n.order))
	for _, name := range n.order {
		entries = append(entries, n.entries[name])
	}
	return entries
}

func (n Nutrients) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Entries())
}
