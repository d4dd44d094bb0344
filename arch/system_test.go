package arch

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
)

func TestSystem_String(t *testing.T) {
	tests := []struct {
		name   string
		system System
		want   string
	}{
		{"BIOS", BIOS, "bios"},
		{"DOS", DOS, "dos"},
		{"Generic", Generic, "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.system.String()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystem_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		system System
		want   bool
	}{
		{"BIOS is valid", BIOS, true},
		{"DOS is valid", DOS, true},
		{"Generic is valid", Generic, true},
		{"empty string is invalid", System(""), false},
		{"random string is invalid", System("invalid"), false},
		{"uppercase DOS is invalid (IsValid is case-sensitive)", System("DOS"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.system.IsValid()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemFromString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   System
		wantOk bool
	}{
		{"valid bios", "bios", BIOS, true},
		{"valid dos", "dos", DOS, true},
		{"valid generic", "generic", Generic, true},
		{"invalid system", "invalid", "", false},
		{"empty string", "", "", false},
		{"uppercase DOS now valid (case-insensitive)", "DOS", DOS, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SystemFromString(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestSupportedSystems(t *testing.T) {
	got := SupportedSystems()
	assert.Equal(t, []System{BIOS, DOS, Generic}, got)
}

func TestSupportedSystems_RoundTrip(t *testing.T) {
	for _, sys := range SupportedSystems() {
		got, ok := SystemFromString(sys.String())
		assert.True(t, ok, "system %s", sys)
		assert.Equal(t, sys, got)
	}
}
