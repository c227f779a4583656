package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed_AlwaysReturnsSameInstant(t *testing.T) {
	at := time.Date(2024, 1, 8, 1, 0, 0, 0, time.UTC)
	c := NewFixed(at)

	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}

func TestFunc_DelegatesToFunction(t *testing.T) {
	base := time.Date(2024, 1, 8, 1, 0, 0, 0, time.UTC)
	calls := 0
	c := Func(func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	})

	assert.Equal(t, base.Add(time.Minute), c.Now())
	assert.Equal(t, base.Add(2*time.Minute), c.Now())
}

func TestReal_IsCloseToSystemTime(t *testing.T) {
	got := Real{}.Now()
	assert.WithinDuration(t, time.Now(), got, time.Second)
}
