package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/easynmt/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "easynmt [text...]",
		Short: "Client for a local EasyNMT translation service",
		Long: `easynmt translates text through an EasyNMT server.

Requests are cached, sent one at a time and shaped with a few heuristics
that improve short UI label translations.

Examples:
  easynmt --target zh Transparent        # Translate one label
  easynmt --source zh 你好 谢谢           # Translate several texts
  easynmt --batch labels.txt > out.txt   # Translate a file, one text per line
  easynmt preload                        # Load the zh->en model`,
		Args:    cobra.ArbitraryArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreatePreloadCommand creates the subcommand that warms up a model.
func CreatePreloadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preload",
		Short: "Load a translation model on the server",
		Long: `preload sends a placeholder text so the server loads the model for
--source -> --target before real requests arrive. Without --source the
zh -> en model is loaded. Prints "ready." when done.`,
		Args: cobra.NoArgs,
	}
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.easynmt.yaml)")
	pf.StringVar(&flags.EnvFile, "env", "", "Path to a .env file (default is ./.env if present)")
	pf.StringVar(&flags.Host, "host", flags.Host, "EasyNMT server host")
	pf.IntVarP(&flags.Port, "port", "p", flags.Port, "EasyNMT server port")
	pf.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout of a single HTTP request (default: none)")
	pf.Uint32Var(&flags.BreakerFailures, "breaker-failures", 0, "Open the circuit after this many consecutive network failures (0 disables)")
	pf.StringVarP(&flags.Source, "source", "s", "", "Source language (default: auto-detect)")
	pf.StringVarP(&flags.Target, "target", "t", flags.Target, "Target language")
	pf.DurationVar(&flags.Wait, "wait", 0, "Wait up to this long for the server to come up")
	pf.BoolVar(&flags.Debug, "debug", false, "Log every request and response")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate texts from file (one per line)")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Bypass the translation cache")
	cmd.Flags().BoolVar(&flags.NoQueue, "no-queue", false, "Send requests concurrently instead of one at a time")
	cmd.Flags().BoolVar(&flags.NoTrim, "no-trim", false, "Keep whitespace around translations")
	cmd.Flags().BoolVar(&flags.NoWrap, "no-wrap", false, "Disable the label case and colon heuristics")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("remote.host", pf.Lookup("host"))
	viper.BindPFlag("remote.port", pf.Lookup("port"))
	viper.BindPFlag("remote.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("breaker.failures", pf.Lookup("breaker-failures"))
	viper.BindPFlag("translate.source", pf.Lookup("source"))
	viper.BindPFlag("translate.target", pf.Lookup("target"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("debug", pf.Lookup("debug"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".easynmt" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".easynmt")
	}

	// Environment variables, e.g. EASYNMT_REMOTE_HOST for remote.host
	viper.SetEnvPrefix("EASYNMT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
