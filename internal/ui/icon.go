package ui

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is a coarse weather condition class used to pick an icon
type Category int

const (
	CategoryOther Category = iota
	CategoryClear
	CategoryCloudy
	CategoryRain
)

func (c Category) String() string {
	switch c {
	case CategoryClear:
		return "clear"
	case CategoryCloudy:
		return "cloudy"
	case CategoryRain:
		return "rain"
	default:
		return "other"
	}
}

// Classify maps a free-text condition description to a Category. Keywords are
// checked in order: sun/clear, cloud, rain. Anything else is CategoryOther.
func Classify(description string) Category {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "sun"), strings.Contains(desc, "clear"):
		return CategoryClear
	case strings.Contains(desc, "cloud"):
		return CategoryCloudy
	case strings.Contains(desc, "rain"):
		return CategoryRain
	default:
		return CategoryOther
	}
}

// IconResolver turns a classified condition into something printable
type IconResolver interface {
	Icon(category Category, description string) string
}

// IconMap resolves icons from a fixed table, falling back to TextIcons for
// categories it does not hold.
type IconMap map[Category]string

func (m IconMap) Icon(category Category, description string) string {
	if icon, ok := m[category]; ok {
		return icon
	}
	return TextIcons{}.Icon(category, description)
}

// EmojiIcons is an IconMap with one emoji per category
var EmojiIcons = IconMap{
	CategoryClear:  "☀️",
	CategoryCloudy: "☁️",
	CategoryRain:   "🌧️",
	CategoryOther:  "💨",
}

// TextIcons renders the first letter of the description in brackets. It is
// the default resolver and works on any terminal.
type TextIcons struct{}

func (TextIcons) Icon(_ Category, description string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(description))
	if r == utf8.RuneError {
		return "[?]"
	}
	return "[" + string(unicode.ToUpper(r)) + "]"
}
