package cli

import (
	"reflect"
	"testing"
	"time"

	"codeberg.org/snonux/easynmt/internal/translation"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Host", flags.Host, "localhost"},
		{"Port", flags.Port, 24080},
		{"Timeout", flags.Timeout, time.Duration(0)},
		{"Target", flags.Target, "en"},
		{"LogLevel", flags.LogLevel, "warn"},
		{"BreakerFailures", flags.BreakerFailures, uint32(0)},
		{"Wait", flags.Wait, time.Duration(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"NoCache", flags.NoCache},
		{"NoQueue", flags.NoQueue},
		{"NoTrim", flags.NoTrim},
		{"NoWrap", flags.NoWrap},
		{"Debug", flags.Debug},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"EnvFile", flags.EnvFile},
		{"BatchFile", flags.BatchFile},
		{"Source", flags.Source},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}

func TestFlagsOptions(t *testing.T) {
	flags := NewFlags()
	if got := flags.Options(); got != (translation.Options{}) {
		t.Errorf("Expected all stages enabled by default, got %+v", got)
	}

	flags.NoCache = true
	flags.NoWrap = true
	want := translation.Options{NoCache: true, NoWrap: true}
	if got := flags.Options(); got != want {
		t.Errorf("Options() = %+v, want %+v", got, want)
	}
}
