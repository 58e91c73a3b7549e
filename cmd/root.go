package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/parallax/internal/manifest"
)

var rootCmd = &cobra.Command{
	Use:   "parallax",
	Short: "Scroll-driven theme transitions for a sectioned page",
	Long: `Parallax moves a page between visual themes as the reader scrolls. Thresholds
and section themes come from a TOML manifest; the engine resolves a target theme
with hysteresis and animates between palettes.`,
	SilenceUsage: true,
	RunE:         runRootDefault,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .parallax.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "site manifest (default parallax.toml)")
	rootCmd.PersistentFlags().String("mode", "", "theme source: scroll or section")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".parallax")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PARALLAX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// runRootDefault launches the viewer when a manifest exists in the cwd and
// falls back to help otherwise.
func runRootDefault(cmd *cobra.Command, args []string) error {
	path := viper.GetString("manifest")
	if path == "" {
		path = manifest.DefaultFile
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cmd.Help()
	}
	return runView(runCmd, nil)
}
