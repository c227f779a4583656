// Package templates holds the fixed catalogue of fortune texts.
//
// The catalogue is compiled into the binary from catalogue.yaml. For every
// period the ordered template list is the cartesian product of its omens and
// counsels, omen-major: index i is omens[i/len(counsels)] followed by
// counsels[i%len(counsels)].
package templates

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// Provider returns the ordered templates of a period.
type Provider interface {
	ByPeriod(period fortune.Period) ([]string, error)
	Count(period fortune.Period) int
}

type section struct {
	Omens    []string `yaml:"omens"`
	Counsels []string `yaml:"counsels"`
}

// Static is an immutable, pre-expanded catalogue.
type Static struct {
	byPeriod map[fortune.Period][]string
}

// NewStatic wraps an already ordered catalogue. The slices are copied.
func NewStatic(m map[fortune.Period][]string) *Static {
	s := &Static{byPeriod: make(map[fortune.Period][]string, len(m))}
	for p, list := range m {
		s.byPeriod[p] = append([]string(nil), list...)
	}
	return s
}

// Parse expands a catalogue document.
func Parse(doc []byte) (*Static, error) {
	var raw map[fortune.Period]section
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	m := make(map[fortune.Period][]string, len(raw))
	for p, sec := range raw {
		if !p.Valid() {
			return nil, fmt.Errorf("parse catalogue: %w: %q", fortune.ErrInvalidPeriod, p)
		}
		m[p] = expand(sec)
	}
	return &Static{byPeriod: m}, nil
}

func expand(sec section) []string {
	out := make([]string, 0, len(sec.Omens)*len(sec.Counsels))
	for _, omen := range sec.Omens {
		for _, counsel := range sec.Counsels {
			out = append(out, omen+" "+counsel)
		}
	}
	return out
}

// ByPeriod returns the templates for period. The returned slice must not be modified.
func (s *Static) ByPeriod(period fortune.Period) ([]string, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", fortune.ErrInvalidPeriod, period)
	}
	list := s.byPeriod[period]
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", fortune.ErrNoTemplatesAvailable, period)
	}
	return list, nil
}

// Count returns the number of templates for period, 0 when unknown.
func (s *Static) Count(period fortune.Period) int {
	return len(s.byPeriod[period])
}

var (
	defaultOnce sync.Once
	defaultCat  *Static
	defaultErr  error
)

// Default returns the embedded catalogue. It panics if the embedded document
// is malformed, which only a bad build can cause.
func Default() *Static {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(catalogueYAML)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultCat
}
