package ui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsFromMap(t *testing.T) {
	opts, err := OptionsFromMap(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultOptions(), opts)

	opts, err = OptionsFromMap(map[string]any{
		"timer":         5,
		"cap":           "round",
		"gradientStart": "#123456",
		"unknown":       true,
	})
	require.NoError(t, err)
	want := DefaultOptions()
	want.Timer = 5
	want.Cap = "round"
	want.GradientStart = "#123456"
	require.Equal(t, want, opts)
	require.NoError(t, opts.Validate())
}

func TestOptionsFromMapKeepsZeroValues(t *testing.T) {
	opts, err := OptionsFromMap(map[string]any{"width": 0})
	require.NoError(t, err)
	require.Equal(t, 0.0, opts.Width)
	require.ErrorIs(t, opts.Validate(), ErrInvalidOption)
}

func TestOptionsFromMapWrongType(t *testing.T) {
	_, err := OptionsFromMap(map[string]any{"width": "3px"})
	require.ErrorIs(t, err, ErrInvalidOption)

	_, err = OptionsFromMap(map[string]any{"stroke": 0})
	require.ErrorIs(t, err, ErrInvalidOption)
}
