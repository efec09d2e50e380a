package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mode string

const (
	modeFast mode = "fast"
	modeSafe mode = "safe"
)

func newModes() *Normalizer[mode] {
	return NewNormalizer(map[string]mode{
		"fast": modeFast,
		"Safe": modeSafe,
	}, modeFast)
}

func TestNormalize(t *testing.T) {
	n := newModes()

	tests := []struct {
		input    string
		expected mode
	}{
		{"fast", modeFast},
		{"SAFE", modeSafe},
		{"  safe  ", modeSafe},
		{"", modeFast},
		{"unknown", modeFast},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	n := newModes()

	v, err := n.Parse(" Safe")
	require.NoError(t, err)
	require.Equal(t, modeSafe, v)

	v, err = n.Parse("")
	require.NoError(t, err)
	require.Equal(t, modeFast, v)

	_, err = n.Parse("turbo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "fast, safe")
}

func TestValidKeysIsACopy(t *testing.T) {
	n := newModes()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	require.Equal(t, []string{"fast", "safe"}, n.ValidKeys())
}
