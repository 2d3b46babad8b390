package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargets(t *testing.T) {
	tests := []struct {
		in   []string
		want []Target
	}{
		{[]string{"native"}, []Target{Native}},
		{[]string{"web"}, []Target{Web}},
		{[]string{"WASM"}, []Target{Web}},
		{[]string{"all"}, []Target{Native, Web}},
		{[]string{"web", "native", "web"}, []Target{Web, Native}},
		{[]string{"web", "all"}, []Target{Web, Native}},
	}
	for _, tt := range tests {
		got, err := ParseTargets(tt.in...)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseTargets_Errors(t *testing.T) {
	_, err := ParseTargets()
	assert.Error(t, err)

	_, err = ParseTargets("native", "ios")
	assert.ErrorContains(t, err, "ios")
}

func TestNativeBinaryName(t *testing.T) {
	assert.Equal(t, "life.exe", nativeBinaryName("windows"))
	assert.Equal(t, "life", nativeBinaryName("linux"))
	assert.NotEmpty(t, nativeBinaryName(""))
}
