package ddc_test

import (
	"testing"

	"github.com/mzdunek/monitorwatcher/internal/ddc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		known    bool
	}{
		{name: "lowercase hdmi1", input: "hdmi1", expected: 17, known: true},
		{name: "uppercase hdmi1", input: "HDMI1", expected: 17, known: true},
		{name: "mixed case hdmi1", input: "Hdmi1", expected: 17, known: true},
		{name: "hdmi2", input: "hdmi2", expected: 18, known: true},
		{name: "dp1", input: "dp1", expected: 15, known: true},
		{name: "dp2", input: "DP2", expected: 16, known: true},
		{name: "usbc", input: "usbc", expected: 27, known: true},
		{name: "unknown name", input: "vga", known: false},
		{name: "empty name", input: "", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := ddc.InputCode(tt.input)
			require.Equal(t, tt.known, ok)
			if tt.known {
				assert.Equal(t, tt.expected, code)
			}
		})
	}
}

func TestInputName(t *testing.T) {
	assert.Equal(t, "HDMI1", ddc.InputName(17))
	assert.Equal(t, "USBC", ddc.InputName(27))
	assert.Equal(t, "UNKNOWN", ddc.InputName(99))
}

func TestInputNamesCoverTable(t *testing.T) {
	names := ddc.InputNames()
	require.Len(t, names, 5)
	for _, name := range names {
		_, ok := ddc.InputCode(name)
		assert.True(t, ok, "listed name %q should resolve", name)
	}
}
