// Package clock abstracts the wall clock so that period keying and fortune
// timestamps can be driven from tests with a fixed instant.
//
// Production code receives a Clock from its constructor; only the binaries in
// cmd/ pick Real{}.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Real returns the system time.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time {
	return time.Now()
}

// Fixed always returns T.
type Fixed struct {
	T time.Time
}

// NewFixed returns a Fixed clock pinned to t.
func NewFixed(t time.Time) Fixed {
	return Fixed{T: t}
}

// Now returns the pinned instant.
func (c Fixed) Now() time.Time {
	return c.T
}

// Func adapts a plain function to Clock. Handy for clocks that advance
// between calls.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}
