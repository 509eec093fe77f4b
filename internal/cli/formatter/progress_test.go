package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name       string
		pct        float64
		width      int
		wantFilled int
		wantLabel  string
	}{
		{"empty", 0, 10, 0, "  0.0%"},
		{"half", 50, 10, 5, " 50.0%"},
		{"full", 100, 10, 10, "100.0%"},
		{"over 100 clamps", 150, 10, 10, "100.0%"},
		{"negative clamps", -5, 10, 0, "  0.0%"},
		{"tiny width clamps to 2", 50, 1, 1, " 50.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.Equal(t, tt.wantFilled, strings.Count(got, filledBlock))
			assert.Contains(t, got, tt.wantLabel)
			assert.True(t, strings.HasPrefix(got, "["))
		})
	}
}

func TestRenderCompactBar(t *testing.T) {
	got := RenderCompactBar(25, 8)
	assert.Equal(t, 2, strings.Count(got, filledBlock))
	assert.Equal(t, 6, strings.Count(got, emptyBlock))
	assert.NotContains(t, got, "%")
	assert.NotContains(t, got, "[")
}
