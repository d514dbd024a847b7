package seeder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseCitiesFile reads an ordered city list from path
func ParseCitiesFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return ParseCities(file)
}

// ParseCities reads one city per line. Blank lines and lines starting with
// '#' are skipped, a trailing tab-separated part is ignored, and repeated
// names (case-insensitive) keep their first position.
func ParseCities(r io.Reader) ([]string, error) {
	var cities []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, _, _ := strings.Cut(line, "\t")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		cities = append(cities, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read city list: %w", err)
	}

	return cities, nil
}

// Dedupe drops case-insensitive repeats, keeping first occurrences
func Dedupe(names []string) []string {
	out, err := ParseCities(strings.NewReader(strings.Join(names, "\n")))
	if err != nil {
		return names
	}
	return out
}
