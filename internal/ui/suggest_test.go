package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var topCities = []string{"Bhagalpur", "Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata"}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty input", input: "", expected: nil},
		{name: "single character", input: "M", expected: nil},
		{name: "single multibyte character", input: "ü", expected: nil},
		{name: "prefix", input: "Mu", expected: []string{"Mumbai"}},
		{name: "case insensitive", input: "dELh", expected: []string{"Delhi"}},
		{name: "substring keeps reference order", input: "ba", expected: []string{"Mumbai", "Bangalore"}},
		{name: "exact name", input: "Kolkata", expected: []string{"Kolkata"}},
		{name: "no match", input: "Paris", expected: nil},
		{name: "spaces are significant", input: " Mumbai", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Suggest(topCities, tt.input))
		})
	}
}

// Every two-or-more character slice of every reference name must suggest at
// least that name, and every suggestion must contain the input.
func TestSuggest_Exhaustive(t *testing.T) {
	for _, city := range topCities {
		lower := strings.ToLower(city)
		for i := 0; i < len(lower); i++ {
			for j := i + 2; j <= len(lower); j++ {
				input := lower[i:j]
				got := Suggest(topCities, input)
				assert.Contains(t, got, city, "input %q", input)

				var expected []string
				for _, c := range topCities {
					if strings.Contains(strings.ToLower(c), input) {
						expected = append(expected, c)
					}
				}
				assert.Equal(t, expected, got, "input %q", input)
			}
		}
	}
}
