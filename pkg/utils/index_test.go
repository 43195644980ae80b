package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"", 0, true},
		{"0", 0, true},
		{"3", 3, true},
		{"-1", 0, false},
		{"two", 0, false},
		{"1.5", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseIndex(tc.raw)
		require.Equal(t, tc.ok, ok, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}
}

func TestNth(t *testing.T) {
	items := []string{"first", "second"}

	v, ok := Nth(items, 1)
	require.True(t, ok)
	require.Equal(t, "second", v)

	_, ok = Nth(items, 5)
	require.False(t, ok)
	_, ok = Nth(items, -1)
	require.False(t, ok)
	_, ok = Nth([]string(nil), 0)
	require.False(t, ok)
}
