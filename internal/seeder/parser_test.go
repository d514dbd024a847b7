package seeder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCities(t *testing.T) {
	input := `# default cities
Bhagalpur
  Mumbai

Delhi	IN
mumbai
#Paris
Kolkata
`
	cities, err := ParseCities(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bhagalpur", "Mumbai", "Delhi", "Kolkata"}, cities)
}

func TestParseCitiesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.txt")
	require.NoError(t, os.WriteFile(path, []byte("Chennai\nBangalore\n"), 0o600))

	cities, err := ParseCitiesFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chennai", "Bangalore"}, cities)

	_, err = ParseCitiesFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"Delhi", "Pune"}, Dedupe([]string{"Delhi", " delhi ", "Pune", ""}))
	assert.Nil(t, Dedupe(nil))
}
