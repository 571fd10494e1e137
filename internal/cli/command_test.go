package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "easynmt [text...]" {
		t.Errorf("Expected Use to be 'easynmt [text...]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "EasyNMT") {
		t.Errorf("Expected Short description to mention EasyNMT")
	}

	// Test that flags are set up
	flagTests := []struct {
		name       string
		persistent bool
	}{
		{"config", true},
		{"env", true},
		{"host", true},
		{"port", true},
		{"timeout", true},
		{"breaker-failures", true},
		{"source", true},
		{"target", true},
		{"wait", true},
		{"debug", true},
		{"log-level", true},
		{"batch", false},
		{"no-cache", false},
		{"no-queue", false},
		{"no-trim", false},
		{"no-wrap", false},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.persistent {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestCreatePreloadCommand(t *testing.T) {
	root := CreateRootCommand(NewFlags())
	preload := CreatePreloadCommand()
	root.AddCommand(preload)

	if preload.Use != "preload" {
		t.Errorf("Expected Use to be 'preload', got %s", preload.Use)
	}
	if preload.InheritedFlags().Lookup("port") == nil {
		t.Error("Expected preload to inherit --port")
	}
	if preload.InheritedFlags().Lookup("no-cache") != nil {
		t.Error("Translation-only flags must not leak into preload")
	}
}

func TestSetupFlags(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	defaults := map[string]string{
		"host":      "localhost",
		"port":      "24080",
		"target":    "en",
		"timeout":   "0s",
		"log-level": "warn",
	}
	for name, want := range defaults {
		flag := cmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Fatalf("%s flag not found", name)
		}
		if flag.DefValue != want {
			t.Errorf("Expected default %s to be %s, got %s", name, want, flag.DefValue)
		}
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantHost  string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `remote:
  host: nmt.internal
  port: 8100
translate:
  target: zh`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			wantHost: "nmt.internal",
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
			wantHost: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()
			t.Setenv("HOME", t.TempDir())

			InitConfig(tt.setupFunc(t))

			if got := viper.GetString("remote.host"); got != tt.wantHost {
				t.Errorf("remote.host = %q, want %q", got, tt.wantHost)
			}

			// Test environment variable prefix
			t.Setenv("EASYNMT_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			// Nested keys map to underscored variables
			t.Setenv("EASYNMT_REMOTE_PORT", "9000")
			if viper.GetInt("remote.port") != 9000 {
				t.Errorf("Expected EASYNMT_REMOTE_PORT to set remote.port, got %d", viper.GetInt("remote.port"))
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	// Reset viper
	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.PersistentFlags().Set("host", "10.0.0.5")
	cmd.PersistentFlags().Set("port", "8100")
	cmd.PersistentFlags().Set("source", "zh")
	cmd.PersistentFlags().Set("breaker-failures", "3")

	// Test that values are bound
	if viper.GetString("remote.host") != "10.0.0.5" {
		t.Errorf("Expected remote.host to be 10.0.0.5, got %s", viper.GetString("remote.host"))
	}

	if viper.GetInt("remote.port") != 8100 {
		t.Errorf("Expected remote.port to be 8100, got %d", viper.GetInt("remote.port"))
	}

	if viper.GetString("translate.source") != "zh" {
		t.Errorf("Expected translate.source to be zh, got %s", viper.GetString("translate.source"))
	}

	if viper.GetUint32("breaker.failures") != 3 {
		t.Errorf("Expected breaker.failures to be 3, got %d", viper.GetUint32("breaker.failures"))
	}

	if viper.GetString("translate.target") != "en" {
		t.Errorf("Expected unchanged translate.target to fall back to en, got %s", viper.GetString("translate.target"))
	}
}
