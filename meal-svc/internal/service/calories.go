package service

import "school-meal/meal-svc/internal/domain"

const (
	Carbohydrate = "탄수화물"
	Protein      = "단백질"
	Fat          = "지방"
)

type macro struct {
	name        string
	kcalPerGram float64
}

var macros = []macro{
	{name: Carbohydrate, kcalPerGram: 4},
	{name: Protein, kcalPerGram: 4},
	{name: Fat, kcalPerGram: 9},
}

// EstimateCalories sums macro-nutrient energy in kcal, truncated. It reports
// false when none of the macro-nutrients are present.
func EstimateCalories(n domain.Nutrients) (int, bool) {
	var total float64
	found := false
	for _, m := range macros {
		if entry, ok := n.Get(m.name); ok {
			total += entry.Value * m.kcalPerGram
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return int(total), true
}

// MacroSeries lists the grams of each present macro-nutrient.
func MacroSeries(n domain.Nutrients) domain.ChartSeries {
	var series domain.ChartSeries
	for _, m := range macros {
		if entry, ok := n.Get(m.name); ok {
			series.Add(m.name, entry.Value)
		}
	}
	return series
}

// CalorieSeries lists the kcal each present macro-nutrient contributes.
func CalorieSeries(n domain.Nutrients) domain.ChartSeries {
	var series domain.ChartSeries
	for _, m := range macros {
		if entry, ok := n.Get(m.name); ok {
			series.Add(m.name, entry.Value*m.kcalPerGram)
		}
	}
	return series
}

// NutrientSeries lists every parsed nutrient in parse order.
func NutrientSeries(n domain.Nutrients) domain.ChartSeries {
	var series domain.ChartSeries
	for _, entry := range n.Entries() {
		series.Add(entry.Name, entry.Value)
	}
	return series
}
