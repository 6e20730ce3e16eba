package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and data store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// PersistentPreRunE already wrote the default config.yaml.
			configDir, err := a.resolveConfigDir()
			if err != nil {
				return sysErr(err)
			}

			s, err := a.openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			dataDir, err := a.resolveDataDir()
			if err != nil {
				return sysErr(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "repticare initialized")
			fmt.Fprintln(out, "  config: ", configDir)
			fmt.Fprintln(out, "  data:   ", dataDir)
			fmt.Fprintln(out, "  backend:", a.cfg.GetString(cfgKeyBackend))
			return nil
		},
	}
}
