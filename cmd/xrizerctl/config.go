package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xrizer/xrizer-go/application/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	var printSchema bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if printSchema {
				data, err := config.Schema()
				if err != nil {
					return err
				}
				_, err = out.Write(append(data, '\n'))
				return err
			}

			cfg, err := flags.load()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&printSchema, "schema", false, "print the JSON schema of the configuration file instead")
	return cmd
}
