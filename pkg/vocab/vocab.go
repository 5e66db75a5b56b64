// Package vocab holds the closed keyword vocabularies consulted by the
// distinguishing-feature detector and the program family catalog. The
// lists are versioned configuration injected into the classifier, loadable
// from YAML with embedded defaults; extending them never requires touching
// classifier logic.
package vocab

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/blackmindsinstem/stemset/pkg/errors"
	"github.com/blackmindsinstem/stemset/pkg/normalize"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Family names a parent program and the keywords that identify it in a
// record's name or description.
type Family struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Vocabulary is the full set of keyword categories. Slices keep their file
// order; detector priority and family matching are deterministic because
// of it.
type Vocabulary struct {
	Locations []string `yaml:"locations"`
	Subjects  []string `yaml:"subjects"`
	Sessions  []string `yaml:"sessions"`
	Grades    []string `yaml:"grades"`
	Families  []Family `yaml:"families"`
}

// Default returns the embedded default vocabulary.
func Default() *Vocabulary {
	v, err := parse(defaultsYAML)
	if err != nil {
		// The embedded file ships with the binary; failing to parse it
		// is a build defect, not a runtime condition.
		panic("vocab: embedded defaults are invalid: " + err.Error())
	}
	return v
}

// Load reads a vocabulary from a YAML file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	v, err := parse(data)
	if err != nil {
		return nil, errors.WrapIO("parse", path, err)
	}
	return v, nil
}

func parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	v.normalize()
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// normalize lower-cases every keyword so matching is case-insensitive
// regardless of how the file was written. Keywords with deliberate
// trailing spaces ("mit ") keep them; they anchor word boundaries.
func (v *Vocabulary) normalize() {
	lower := func(keywords []string) {
		for i, k := range keywords {
			keywords[i] = strings.ToLower(k)
		}
	}
	lower(v.Locations)
	lower(v.Subjects)
	lower(v.Sessions)
	lower(v.Grades)
	for i := range v.Families {
		lower(v.Families[i].Keywords)
	}
}

// Validate checks that every category has at least one keyword.
func (v *Vocabulary) Validate() error {
	categories := []struct {
		name string
		n    int
	}{
		{"locations", len(v.Locations)},
		{"subjects", len(v.Subjects)},
		{"sessions", len(v.Sessions)},
		{"grades", len(v.Grades)},
		{"families", len(v.Families)},
	}
	for _, c := range categories {
		if c.n == 0 {
			return fmt.Errorf("category %s: %w", c.name, errors.ErrEmptyVocabulary)
		}
	}
	for _, f := range v.Families {
		if f.Name == "" || len(f.Keywords) == 0 {
			return &errors.ValidationError{
				Field:   "families",
				Value:   f.Name,
				Message: "family needs a name and at least one keyword",
			}
		}
	}
	return nil
}

// Matches returns the keywords from list found in the normalized text, in
// list order.
func Matches(list []string, text string) []string {
	norm := normalize.Field(text)
	if norm == "" {
		return nil
	}
	// Normalization collapses interior runs but a keyword with a trailing
	// space must still be able to match at the end of the text.
	padded := norm + " "

	var found []string
	for _, k := range list {
		if k == "" {
			continue
		}
		if strings.Contains(padded, k) {
			found = append(found, strings.TrimSpace(k))
		}
	}
	return found
}

// FamilyOf returns the name of the first family whose keywords appear in
// the record's name or description, or "" when the record matches no
// known parent program.
func (v *Vocabulary) FamilyOf(name, description string) string {
	text := normalize.Field(name) + " " + normalize.Field(description) + " "
	for _, f := range v.Families {
		for _, k := range f.Keywords {
			if strings.Contains(text, k) {
				return f.Name
			}
		}
	}
	return ""
}
