package service

import (
	"regexp"
	"strings"
	"unicode"
)

var lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

func replaceLineBreaks(raw string) string {
	return lineBreak.ReplaceAllString(raw, "\n")
}

// CleanDishText turns the DDISH_NM value into one dish per line. Allergy codes
// are digits inside parentheses separated by periods, so every digit,
// parenthesis and period is dropped.
func CleanDishText(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '(' || r == ')' || r == '.' {
			return -1
		}
		return r
	}, replaceLineBreaks(raw))
	return strings.TrimSpace(cleaned)
}
