package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xrizer/xrizer-go/clientcore"
	"github.com/xrizer/xrizer-go/infrastructure/native"
)

func newVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the interface versions served by VRClientCoreFactory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := clientcore.NewFactory(clientcore.WithBridge(native.NewBridge()))
			if err != nil {
				return err
			}
			for _, v := range f.Versions() {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}
