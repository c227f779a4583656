package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func scannerFrom(lines ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(scannerFrom("  지민  "), "이름?", &out)
	require.NoError(t, err)
	require.Equal(t, "지민", got)
	require.Equal(t, "이름?\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(scannerFrom(), "Name?", &out)
	require.True(t, errors.Is(err, io.EOF))
}

func TestGetTextWithDefault(t *testing.T) {
	var out bytes.Buffer
	sc := scannerFrom("", "full")

	got, err := GetTextWithDefault(sc, "호칭", "short", &out)
	require.NoError(t, err)
	require.Equal(t, "short", got)
	require.Contains(t, out.String(), "호칭 [short]")

	got, err = GetTextWithDefault(sc, "호칭", "short", &out)
	require.NoError(t, err)
	require.Equal(t, "full", got)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	sc := scannerFrom("Y", "yes", "no", "", "")

	for _, want := range []bool{true, true, false, false} {
		got, err := Confirm(sc, "정말요?", &out)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := Confirm(sc, "정말요?", &out)
	require.ErrorIs(t, err, io.EOF)
}
