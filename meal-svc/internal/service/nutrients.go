package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"school-meal/meal-svc/internal/domain"
)

var (
	nutrientLine = regexp.MustCompile(`^\s*(\p{L}[\p{L}\p{N}]*)\s*(?:\(([^)]*)\))?\s*:\s*([-+]?(?:\d+(?:\.\d*)?|\.\d+))\s*$`)
	nutrientKey  = regexp.MustCompile(`^(\p{L}[\p{L}\p{N}]*)\(([^)]*)\)$`)
)

// NutritionText is the NTR_INFO value as shown to the reader.
func NutritionText(raw string) string {
	return strings.TrimSpace(replaceLineBreaks(raw))
}

// ParseNutrients extracts name, value and unit from NTR_INFO. Lines are read as
// "name(unit) : value"; when no line matches, the text is read as whitespace
// separated key/value pairs instead. Unparseable lines and pairs are dropped.
func ParseNutrients(raw string) domain.Nutrients {
	text := replaceLineBreaks(raw)

	nutrients := parseNutrientLines(text)
	if nutrients.Len() > 0 {
		return nutrients
	}
	return parseNutrientPairs(text)
}

func parseNutrientLines(text string) domain.Nutrients {
	var nutrients domain.Nutrients
	for _, line := range strings.Split(text, "\n") {
		match := nutrientLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		value, ok := parseFinite(match[3])
		if !ok {
			continue
		}
		nutrients.Set(domain.NutrientEntry{
			Name:  match[1],
			Value: value,
			Unit:  strings.TrimSpace(match[2]),
		})
	}
	return nutrients
}

func parseNutrientPairs(text string) domain.Nutrients {
	var nutrients domain.Nutrients
	tokens := strings.Fields(text)
	for i := 0; i+1 < len(tokens); i += 2 {
		value, ok := parseFinite(tokens[i+1])
		if !ok {
			continue
		}
		entry := domain.NutrientEntry{Name: tokens[i], Value: value}
		if match := nutrientKey.FindStringSubmatch(tokens[i]); match != nil {
			entry.Name = match[1]
			entry.Unit = strings.TrimSpace(match[2])
		}
		nutrients.Set(entry)
	}
	return nutrients
}

func parseFinite(s string) (float64, bool) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
