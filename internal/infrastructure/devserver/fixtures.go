package devserver

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rajshekhar/folio/internal/domain/portfolio"
	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the content served by the dev backend.
type Fixtures struct {
	About      []portfolio.About      `yaml:"about"`
	Skills     []portfolio.Skill      `yaml:"skills"`
	Projects   []portfolio.Project    `yaml:"projects"`
	Experience []portfolio.Experience `yaml:"experience"`
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// DefaultFixtures returns the embedded sample content.
func DefaultFixtures() Fixtures {
	f, err := ParseFixtures("fixtures.yaml", defaultFixtures)
	if err != nil {
		panic(fmt.Sprintf("embedded fixtures are invalid: %v", err))
	}
	return f
}

// LoadFixtures reads fixtures from path, or returns the embedded defaults
// when path is empty.
func LoadFixtures(path string) (Fixtures, error) {
	if path == "" {
		return DefaultFixtures(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, folioerrors.NewParseError(path, 0, err)
	}
	return ParseFixtures(path, data)
}

// ParseFixtures decodes fixture YAML; path is only used in errors.
func ParseFixtures(path string, data []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, folioerrors.NewParseError(path, lineOf(err), err)
	}
	return f, nil
}

func lineOf(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
