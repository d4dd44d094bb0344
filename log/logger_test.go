package log

import (
	"fmt"
	"testing"

	"github.com/retroenv/sim8086/assert"
)

func TestNewWithLevel(t *testing.T) {
	logger := NewWithLevel(InfoLevel)
	assert.False(t, logger.Enabled(DebugLevel))
	assert.True(t, logger.Enabled(InfoLevel))
	assert.True(t, logger.Enabled(ErrorLevel))
}

func TestSetLevel(t *testing.T) {
	logger := NewWithLevel(InfoLevel)
	logger.SetLevel(DebugLevel)
	assert.True(t, logger.Enabled(DebugLevel))

	logger.SetLevel(ErrorLevel)
	assert.False(t, logger.Enabled(WarnLevel))
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  Level
	}{
		{"debug", DebugLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"info", InfoLevel},
		{"", InfoLevel},
		{"garbage", InfoLevel},
	}
	for _, tt := range tests {
		t.Setenv(levelEnv, tt.value)
		assert.Equal(t, tt.want, levelFromEnv(), "value %q", tt.value)
	}
}

// capture records handled messages for assertions, via the test handler's
// TestingT seam.
type capture struct {
	lines []string
}

func (c *capture) Helper() {}

func (c *capture) Logf(format string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func TestTestLoggerForwardsFields(t *testing.T) {
	c := &capture{}
	logger := NewTestLogger(c)

	logger.Debug("decode failed", String("mnemonic", "mov"), Int("length", 3))

	assert.Len(t, c.lines, 1)
	assert.Contains(t, c.lines[0], "decode failed")
	assert.Contains(t, c.lines[0], "mnemonic=mov")
	assert.Contains(t, c.lines[0], "length=3")
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, "address", Uint32("address", 0xFFFF0).Key)
	assert.Equal(t, "error", Err(nil).Key)
	assert.Equal(t, "name", String("name", "ax").Key)
}
