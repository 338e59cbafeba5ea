package main

import (
	"github.com/spf13/cobra"

	"github.com/xrizer/xrizer-go/application/config"
)

type globalFlags struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "xrizerctl",
		Short:         "Inspect the XRizer OpenVR shim",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "configuration file (default: $"+config.EnvConfigFile+")")

	root.AddCommand(
		newVersionsCmd(),
		newConfigCmd(flags),
		newProbeCmd(flags),
	)
	return root
}

func (f *globalFlags) load() (*config.Config, error) {
	var opts []config.Option
	if f.configFile != "" {
		opts = append(opts, config.WithFile(f.configFile))
	}
	return config.Load(opts...)
}
