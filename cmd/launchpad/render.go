package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/techflow/launchpad/internal/website"
	"github.com/techflow/launchpad/pkg/hero"
	"github.com/techflow/launchpad/pkg/router"
)

type renderOptions struct {
	contentFile string
	now         string
	fragment    bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the landing page as static HTML to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.contentFile, "content", "", "Hero content overrides, YAML or JSON")
	cmd.Flags().StringVar(&opts.now, "now", "", "Render as of this RFC 3339 time (default: current time)")
	cmd.Flags().BoolVar(&opts.fragment, "fragment", false, "Render only the hero section")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	now := time.Now()
	if opts.now != "" {
		t, err := time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return newCommandError("render", "--now", err, "Use RFC 3339, e.g. 2026-01-02T15:04:05Z.")
		}
		now = t
	}

	overrides, err := loadContent(opts.contentFile)
	if err != nil {
		return err
	}

	clock := func() time.Time { return now }
	cfg := overrides.Over(hero.DefaultsAt(now))
	section := hero.Render(cfg, hero.InitialState(cfg, clock))

	var page g.Node = section
	if !opts.fragment {
		page = website.Document(website.DefaultPageConfig(), "", h.Div(h.ID(router.RootID), section))
	}

	out := cmd.OutOrStdout()
	if err := page.Render(out); err != nil {
		return newCommandError("render", "page", err, "Retry; the output stream may be closed.")
	}
	_, err = fmt.Fprintln(out)
	return err
}
