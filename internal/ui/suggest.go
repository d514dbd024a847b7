package ui

import (
	"unicode/utf8"

	"github.com/alexivanou/cityweather/internal/model"
)

// minSuggestInput is the shortest input, in characters, that produces suggestions
const minSuggestInput = 2

// Suggest returns the reference entries matching input under
// model.CityMatches, in reference order. Inputs shorter than two characters
// never match.
func Suggest(reference []string, input string) []string {
	if utf8.RuneCountInString(input) < minSuggestInput {
		return nil
	}
	var out []string
	for _, city := range reference {
		if model.CityMatches(city, input) {
			out = append(out, city)
		}
	}
	return out
}
