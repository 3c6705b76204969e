package main

import (
	"bytes"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/filament-ui/filament/internal/config"
	"github.com/filament-ui/filament/internal/demo"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/render"
	"github.com/filament-ui/filament/pkg/vnode"
)

func renderCmd() *cobra.Command {
	var (
		out    string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the application to static HTML",
		Long: `Render the application once, without a live session.

Reactive props are read untracked, so no subscriptions are created.
Event handlers are dropped and marked with data-on-* attributes.

Examples:
  filament render
  filament render --out=dist/index.html --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(out, pretty)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indented output")

	return cmd
}

func renderStatic(cfg *config.Config, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	var renderErr error

	owner := reactive.NewOwner(nil)
	reactive.WithOwner(owner, func() {
		renderer := render.NewRenderer(render.Config{Pretty: pretty})
		renderErr = renderer.RenderPage(&buf, render.PageData{
			Body:        vnode.NewComponent(demo.App{Title: cfg.Page.Title}, nil),
			Title:       cfg.Page.Title,
			Lang:        cfg.Page.Lang,
			StyleSheets: cfg.Page.StyleSheets,
		})
	})
	owner.Dispose()

	if renderErr != nil {
		return nil, renderErr
	}
	return buf.Bytes(), nil
}

func runRender(out string, pretty bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	html, err := renderStatic(cfg, pretty)
	if err != nil {
		return err
	}

	if out == "" {
		_, err := os.Stdout.Write(html)
		return err
	}

	if err := os.WriteFile(out, html, 0644); err != nil {
		return err
	}
	success("wrote %s (%s, etag %016x)", out,
		humanize.Bytes(uint64(len(html))), xxhash.Sum64(html))
	return nil
}
