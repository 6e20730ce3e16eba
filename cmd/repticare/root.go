// Root command for the repticare CLI.
package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/repticare/internal/logging"
	"github.com/mesh-intelligence/repticare/internal/paths"
)

// app holds global flag values and the state loaded by PersistentPreRunE.
type app struct {
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool

	cfg *viper.Viper
	log *zap.Logger

	now func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "repticare",
		Short:         "repticare keeps a care diary for your reptiles",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := a.resolveConfigDir()
			if err != nil {
				return sysErr(err)
			}

			cfg, err := loadConfig(configDir)
			if err != nil {
				return sysErr(err)
			}
			a.cfg = cfg

			level := cfg.GetString(cfgKeyLogLevel)
			if a.flagVerbose {
				level = "debug"
			}
			log, err := logging.New(level, cfg.GetString(cfgKeyLogFormat))
			if err != nil {
				return userErr(err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flagJSON, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.flagVerbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newProfileCmd(a),
		newEntryCmd(a),
		newStatsCmd(a),
		newPruneCmd(a),
		newServeCmd(a),
	)
	return root
}

// resolveConfigDir follows flag > REPTICARE_CONFIG_DIR > platform default.
func (a *app) resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(a.flagConfigDir)
}

// resolveDataDir follows flag > config.yaml data_dir > REPTICARE_DATA_DIR >
// platform default.
func (a *app) resolveDataDir() (string, error) {
	var configured string
	if a.cfg != nil {
		configured = a.cfg.GetString(cfgKeyDataDir)
	}
	return paths.ResolveDataDir(a.flagDataDir, configured)
}
