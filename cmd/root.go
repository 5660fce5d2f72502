package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivemoreminix/tedit/pkg/config"
	"github.com/fivemoreminix/tedit/pkg/log"
)

var (
	version    = "dev"
	cfgFile    string
	cfg        = config.Defaults()
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "tedit",
	Short: "Batch line editing with the tedit buffer engine",
	Long: `tedit runs the operations of its text buffer engine over files: filter,
sort and indent lines, search them, and report how they wrap on a screen.

Edited text goes to stdout unless --output or --in-place is given.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.tedit.yaml, then ~/.config/tedit/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false,
		"write a debug log to log_path (also TEDIT_DEBUG=1)")
}

func initConfig(cmd *cobra.Command, args []string) error {
	v := viper.New()
	v.SetEnvPrefix("TEDIT")
	v.AutomaticEnv()
	_ = v.BindPFlag("debug", cmd.Root().PersistentFlags().Lookup("debug"))

	c, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	if cfg.Debug && logCleanup == nil {
		cleanup, err := log.Init(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("enabling debug log: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatCLI, "tedit starting", "version", version, "command", cmd.CommandPath(), "args", args)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	defer func() {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	}()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
