package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	assert.Equal(t, "0s", Duration(0))
	assert.Equal(t, "45s", Duration(45))
	assert.Equal(t, "2m", Duration(120))
	assert.Equal(t, "1h", Duration(3600))
	assert.Equal(t, "1h 23m", Duration(4980))
	assert.Equal(t, "0s", Duration(-5))
}

func TestCountdown(t *testing.T) {
	assert.Equal(t, "24:59", Countdown(1499))
	assert.Equal(t, "00:09", Countdown(9))
	assert.Equal(t, "1:04:59", Countdown(3899))
	assert.Equal(t, "00:00", Countdown(-1))
}

func TestRenderProgress_Bounds(t *testing.T) {
	assert.Contains(t, RenderProgress(0.5, 10), " 50%")
	assert.Contains(t, RenderProgress(-0.2, 10), "  0%")
	assert.Contains(t, RenderProgress(1.5, 10), "150%", "over-limit percentages are not clamped")
}
