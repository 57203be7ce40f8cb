// Command lcaingest converts raw building LCA dataset exports into
// canonical project documents. One subcommand per supported dataset:
//
//	lcaingest becd BECD_export.csv -o becd.json
//	lcaingest slice slice_export.csv --dump
//
// Flags can also be set through LCAINGEST_* environment variables or a
// config file passed with --config.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"lcaingest/pkg/dataset"
	"lcaingest/pkg/logger"
	"lcaingest/pkg/merge"
	"lcaingest/pkg/output"
	"lcaingest/pkg/reader"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("lcaingest")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var configFile string

	root := &cobra.Command{
		Use:           "lcaingest",
		Short:         "Normalize building LCA dataset exports into canonical project documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config %s: %w", configFile, err)
				}
			}
			return v.BindPFlags(cmd.Root().PersistentFlags())
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml/toml/json)")
	root.PersistentFlags().String("log", "dev", "log mode: dev or prod")
	root.PersistentFlags().StringP("out", "o", "", "output file (default <dataset>.json)")
	root.PersistentFlags().Bool("dump", false, "dump the merged projects to stderr before writing")

	for _, d := range dataset.All() {
		root.AddCommand(newDatasetCommand(v, d))
	}
	root.AddCommand(newListCommand())

	return root
}

func newDatasetCommand(v *viper.Viper, d dataset.Dataset) *cobra.Command {
	return &cobra.Command{
		Use:   d.Name + " <export-file>",
		Short: "Convert a " + d.Name + " export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(v.GetString("log"))
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			out := v.GetString("out")
			if out == "" {
				out = d.Name + ".json"
			}
			return convert(d, args[0], out, v.GetBool("dump"), log)
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the supported datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range dataset.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t(delimiter %q)\n", d.Name, d.Delimiter)
			}
			return nil
		},
	}
}

func convert(d dataset.Dataset, in, out string, dump bool, log *zap.SugaredLogger) error {
	log.Infow("reading export", "dataset", d.Name, "file", in)
	result, err := reader.ReadFile(in, d.Delimiter)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		log.Warnw("reader warning", "dataset", d.Name, "row", w.Row, "message", w.Message)
	}

	profile, err := d.Build()
	if err != nil {
		return err
	}
	projects, err := merge.Run(profile, result.Records, log)
	if err != nil {
		return err
	}
	log.Infow("merged", "dataset", d.Name, "rows", len(result.Records), "projects", len(projects))

	if dump {
		spew.Fdump(os.Stderr, projects)
	}

	if err := output.WriteFile(out, projects); err != nil {
		return err
	}
	log.Infow("wrote output", "dataset", d.Name, "file", out)
	return nil
}
