package ui

import "testing"

func TestBar(t *testing.T) {
	for _, tc := range []struct {
		width int
		value float64
		want  string
	}{
		{10, 0, "          "},
		{10, 0.5, "█████     "},
		{10, 1, "██████████"},
		{8, 0.0625, "▌       "},
		{4, 0.5 + 1.0/32, "██▏ "},
		{4, 2, "████"},
		{4, -1, "    "},
		{0, 0.5, ""},
	} {
		got := string(Bar(tc.width, tc.value))
		if got != tc.want {
			t.Errorf("Bar(%d, %v) = %q, expected %q", tc.width, tc.value, got, tc.want)
		}
	}
}
