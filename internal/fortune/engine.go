package fortune

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/google/uuid"
)

// TemplateSource supplies the ordered candidate texts for a period. The
// order must never change: selection indexes into it.
type TemplateSource interface {
	ByPeriod(period Period) ([]string, error)
}

// Engine turns (profile, period, key) into a Fortune.
type Engine struct {
	templates TemplateSource
	clock     clock.Clock
	newID     func() string
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock sets the clock used for GeneratedAt.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithIDFunc sets the id generator. Defaults to uuid.NewString.
func WithIDFunc(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine builds an Engine over the given template source.
func NewEngine(templates TemplateSource, opts ...Option) *Engine {
	e := &Engine{
		templates: templates,
		clock:     clock.Real{},
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Seed derives the selection seed from a profile fingerprint and bucket key.
func Seed(profileHash, periodKey string) string {
	return base36(HashString(profileHash + "_" + periodKey))
}

// TemplateIndex picks a position in [0, n) for seed. n must be positive.
func TemplateIndex(seed string, n int) int {
	return int(SeededRandom(seed, 0) * float64(n))
}

// TemplateID names the template at index for period.
func TemplateID(period Period, index int) string {
	return string(period) + "_" + strconv.Itoa(index)
}

// Generate produces a new Fortune. Text and TemplateID depend only on the
// profile fingerprint and periodKey.
func (e *Engine) Generate(p Profile, period Period, periodKey string) (*Fortune, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	templates, err := e.templates.ByPeriod(period)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTemplatesAvailable, period)
	}

	profileHash := p.Hash()
	seed := Seed(profileHash, periodKey)
	index := TemplateIndex(seed, len(templates))

	return &Fortune{
		ID:          e.newID(),
		Period:      period,
		PeriodKey:   periodKey,
		Text:        p.Address(templates[index]),
		TemplateID:  TemplateID(period, index),
		Seed:        seed,
		ProfileHash: profileHash,
		GeneratedAt: e.clock.Now().UTC(),
	}, nil
}
