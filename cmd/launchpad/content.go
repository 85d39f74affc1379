package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/techflow/launchpad/pkg/core"
	"github.com/techflow/launchpad/pkg/hero"
)

type contentOptions struct {
	file       string
	jsonOutput bool
}

func newContentCmd() *cobra.Command {
	opts := &contentOptions{}

	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect and edit hero content",
	}

	cmd.PersistentFlags().StringVar(&opts.file, "file", os.Getenv(core.EnvContentFile), "Hero content overrides file, YAML or JSON")

	list := &cobra.Command{
		Use:   "list",
		Short: "List editable hero content with its current values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentList(cmd, opts)
		},
	}
	list.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	set := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one hero content field in the overrides file",
		Long: "Set one hero content field in the overrides file. The file is created if missing.\n" +
			"Booleans accept true/false, yes/no, on/off, t/f or 1/0. launchDate takes RFC 3339 and typedStrings\n" +
			"a comma-separated list; an empty value clears the list and keeps the highlight static.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentSet(cmd, opts, args[0], args[1])
		},
	}

	cmd.AddCommand(list, set)
	return cmd
}

func runContentList(cmd *cobra.Command, opts *contentOptions) error {
	overrides, err := loadContent(opts.file)
	if err != nil {
		return err
	}
	editables := hero.Editables(hero.Resolve(overrides))

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(editables)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tKIND\tVALUE")
	for _, e := range editables {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Kind, e.Value)
	}
	return tw.Flush()
}

func runContentSet(cmd *cobra.Command, opts *contentOptions, key, value string) error {
	if opts.file == "" {
		return newCommandError("set content", key, errors.New("no overrides file"), "Pass --file or set "+core.EnvContentFile+".")
	}

	overrides, err := hero.LoadOverrides(opts.file)
	if errors.Is(err, fs.ErrNotExist) {
		overrides, err = &hero.Overrides{}, nil
	}
	if err != nil {
		return newCommandError("set content", opts.file, err, "Check the file is valid YAML or JSON.")
	}

	if err := overrides.Set(key, value); err != nil {
		return newCommandError("set content", key, err, "Run 'launchpad content list' for editable keys.")
	}
	if err := hero.SaveOverrides(opts.file, overrides); err != nil {
		return newCommandError("set content", opts.file, err, "Check file permissions.")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "set %s in %s\n", key, opts.file)
	return nil
}
