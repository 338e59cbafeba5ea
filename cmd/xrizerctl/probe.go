package main

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xrizer/xrizer-go/domain/ports"
	"github.com/xrizer/xrizer-go/extensions"
	"github.com/xrizer/xrizer-go/infrastructure/native"
	"github.com/xrizer/xrizer-go/infrastructure/openxr"
	"github.com/xrizer/xrizer-go/internal/metrics"
)

func newProbeCmd(flags *globalFlags) *cobra.Command {
	var library string
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Connect to the OpenXR runtime and load the optional extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if library == "" {
				library = cfg.RuntimeLibrary
			}
			rt, err := openxr.Open(library, native.NewBridge())
			if err != nil {
				return err
			}
			defer rt.Close()
			return probe(cmd.OutOrStdout(), rt, cfg.ApplicationName, cfg.DisabledExtensions)
		},
	}
	cmd.Flags().StringVar(&library, "library", "", "OpenXR loader to open (default: runtime_library from the configuration)")
	return cmd
}

// probe reports what Init would see on rt.
func probe(out io.Writer, rt ports.XrRuntime, appName string, disabled []string) error {
	advertised, err := rt.EnumerateInstanceExtensions()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "advertised extensions: %d\n", len(advertised))
	for _, name := range advertised {
		fmt.Fprintf(out, "  %s\n", name)
	}

	set := extensions.NewExtraSet(advertised).Without(disabled)
	instance, err := rt.CreateInstance(appName, set.Names())
	if err != nil {
		return err
	}
	defer func() { _ = rt.DestroyInstance(instance) }()

	extra, loadErr := extensions.LoadExtra(instance, set, rt, rt.Bridge())
	for _, name := range extensions.Supported() {
		status := "not advertised"
		switch {
		case slices.Contains(extra.Loaded().Names(), name):
			status = "loaded"
		case slices.Contains(set.Names(), name):
			status = "failed"
		case slices.Contains(advertised, name):
			status = "disabled"
		}
		fmt.Fprintf(out, "%s: %s\n", name, status)
	}
	if loadErr != nil {
		fmt.Fprintf(out, "load errors: %v\n", loadErr)
	}

	samples, err := metrics.Snapshot()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "metrics:")
	for _, s := range samples {
		fmt.Fprintf(out, "  %s%s %g\n", s.Name, formatLabels(s.Labels), s.Value)
	}
	return nil
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, labels[k]))
	}
	return "{" + strings.Join(pairs, ",") + "}"
}
