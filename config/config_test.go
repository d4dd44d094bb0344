package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/sim8086/assert"
)

type testSettings struct {
	MaxSteps   int    `config:"engine.max_steps,default=1000000"`
	LoadOffset int    `config:"memory.load_offset,default=0"`
	System     string `config:"engine.system,default=generic"`
	Trace      bool   `config:"engine.trace,default=false"`
	Untagged   int
}

func TestLoadBytes_DefaultsWhenEmpty(t *testing.T) {
	var s testSettings
	assert.NoError(t, LoadBytes(nil, &s))

	assert.Equal(t, 1000000, s.MaxSteps)
	assert.Equal(t, 0, s.LoadOffset)
	assert.Equal(t, "generic", s.System)
	assert.False(t, s.Trace)
	assert.Equal(t, 0, s.Untagged)
}

func TestLoadBytes_FileOverridesDefaults(t *testing.T) {
	content := `
# simulator settings
[engine]
max_steps = 500
system = dos
trace = true

[memory]
load_offset = 0x100
`
	var s testSettings
	assert.NoError(t, LoadBytes([]byte(content), &s))

	assert.Equal(t, 500, s.MaxSteps)
	assert.Equal(t, 256, s.LoadOffset)
	assert.Equal(t, "dos", s.System)
	assert.True(t, s.Trace)
}

func TestLoadBytes_UnknownKeysIgnored(t *testing.T) {
	content := `
[engine]
max_steps = 7
future_knob = whatever
`
	var s testSettings
	assert.NoError(t, LoadBytes([]byte(content), &s))
	assert.Equal(t, 7, s.MaxSteps)
}

func TestLoadBytes_CommentsAndBlankLines(t *testing.T) {
	content := "; alt comment style\n\n[engine]\n# inline section comment\nmax_steps = 3\n"
	var s testSettings
	assert.NoError(t, LoadBytes([]byte(content), &s))
	assert.Equal(t, 3, s.MaxSteps)
}

func TestLoadBytes_MalformedLine(t *testing.T) {
	var s testSettings
	err := LoadBytes([]byte("[engine]\nmax_steps 500\n"), &s)
	assert.ErrorContains(t, err, "key = value")
}

func TestLoadBytes_UnterminatedSection(t *testing.T) {
	var s testSettings
	err := LoadBytes([]byte("[engine\n"), &s)
	assert.ErrorContains(t, err, "unterminated")
}

func TestLoadBytes_BadInteger(t *testing.T) {
	var s testSettings
	err := LoadBytes([]byte("[engine]\nmax_steps = many\n"), &s)
	assert.ErrorContains(t, err, "engine.max_steps")
}

func TestLoadBytes_TargetMustBeStructPointer(t *testing.T) {
	var n int
	assert.Error(t, LoadBytes(nil, &n))
	assert.Error(t, LoadBytes(nil, testSettings{}))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim8086.ini")
	assert.NoError(t, os.WriteFile(path, []byte("[engine]\nmax_steps = 42\n"), 0o644))

	var s testSettings
	assert.NoError(t, Load(path, &s))
	assert.Equal(t, 42, s.MaxSteps)
}

func TestLoad_MissingFile(t *testing.T) {
	var s testSettings
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.ini"), &s))
}

func TestLoadBytes_KeysWithoutSection(t *testing.T) {
	type flat struct {
		Steps int `config:"steps"`
	}
	var f flat
	assert.NoError(t, LoadBytes([]byte("steps = 9\n"), &f))
	assert.Equal(t, 9, f.Steps)
}
