package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"l14flow/pkg/layout"
	"l14flow/pkg/render"
	"l14flow/pkg/treefile"
)

// ErrReferenceMismatch is returned when --expect finds differing pixels.
var ErrReferenceMismatch = errors.New("rendering does not match reference")

type reflowOptions struct {
	dump       bool
	jsonPath   string
	dotPath    string
	pngPath    string
	expectPath string
	diffPath   string
	validate   bool
	sequential bool
}

func newReflowCmd(a *app) *cobra.Command {
	var opts reflowOptions
	cmd := &cobra.Command{
		Use:   "reflow <tree.yaml>",
		Short: "Build the flow tree for a styled document and lay it out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.reflow(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print the laid-out flow tree")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "write the flow tree as JSON")
	cmd.Flags().StringVar(&opts.dotPath, "dot", "", "write the flow tree as Graphviz DOT, or SVG for a .svg path")
	cmd.Flags().StringVar(&opts.pngPath, "png", "", "rasterize the display list to a PNG")
	cmd.Flags().StringVar(&opts.expectPath, "expect", "", "compare the rasterized display list against a reference PNG")
	cmd.Flags().StringVar(&opts.diffPath, "diff", "", "write the --expect diff image here on mismatch")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "check display items against flow overflow")
	cmd.Flags().BoolVar(&opts.sequential, "sequential", false, "run the traversals on one goroutine")
	return cmd
}

func (a *app) reflow(cmd *cobra.Command, path string, opts reflowOptions) error {
	doc, err := treefile.Load(path)
	if err != nil {
		return err
	}
	if err := interrupted(cmd); err != nil {
		return err
	}

	layoutOpts := a.cfg.LayoutOptions()
	if opts.validate {
		layoutOpts.ValidateDisplayList = true
	}
	if opts.sequential {
		layoutOpts.Parallel = false
	}
	ctx := layout.NewLayoutContext(layoutOpts)
	ctx.Logger = a.logger.Named("layout")
	if ctx.Measurer, err = a.cfg.Measurer(); err != nil {
		return err
	}

	root := layout.BuildFlowTree(doc)
	defer root.Release()
	flow := root.Flow()

	if err := layout.Reflow(ctx, flow); err != nil {
		// Geometry violations are diagnostics, not failures.
		a.logger.Warn("display list geometry check failed",
			zap.String("tree", path),
			zap.Int("violations", len(multierr.Errors(err))))
	}
	a.logger.Info("reflow complete",
		zap.String("tree", path),
		zap.Int("flows", layout.CountFlows(flow)),
		zap.Stringer("root", flow.Base().Overflow))
	if err := interrupted(cmd); err != nil {
		return err
	}

	if opts.dump {
		layout.Dump(cmd.OutOrStdout(), flow)
	}
	if opts.jsonPath != "" {
		data, err := layout.MarshalFlowTree(flow)
		if err != nil {
			return fmt.Errorf("encode flow tree: %w", err)
		}
		if err := writeFile(opts.jsonPath, data); err != nil {
			return err
		}
	}
	if opts.dotPath != "" {
		data := []byte(layout.ToDOT(flow))
		if strings.EqualFold(filepath.Ext(opts.dotPath), ".svg") {
			if data, err = renderSVG(cmd.Context(), data); err != nil {
				return err
			}
		}
		if err := writeFile(opts.dotPath, data); err != nil {
			return err
		}
	}
	if opts.pngPath != "" || opts.expectPath != "" {
		if err := interrupted(cmd); err != nil {
			return err
		}
		if err := a.paint(flow, opts); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) paint(flow layout.Flow, opts reflowOptions) error {
	r := render.NewRenderer(int(a.cfg.Viewport.Width), int(a.cfg.Viewport.Height), a.cfg.FontConfig())
	if err := r.Render(layout.CollectDisplayList(flow)); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if opts.pngPath != "" {
		if err := r.SavePNG(opts.pngPath); err != nil {
			return fmt.Errorf("save %s: %w", opts.pngPath, err)
		}
	}
	if opts.expectPath == "" {
		return nil
	}

	res, err := render.CompareFile(r.Image(), opts.expectPath, render.CompareOptions{Tolerance: 2})
	if err != nil {
		return err
	}
	if res.Match {
		return nil
	}
	if opts.diffPath != "" {
		if err := res.SaveDiff(opts.diffPath); err != nil {
			return fmt.Errorf("save %s: %w", opts.diffPath, err)
		}
	}
	return fmt.Errorf("%w: %d of %d pixels differ from %s (max channel difference %d)",
		ErrReferenceMismatch, res.DifferentPixels, res.TotalPixels, opts.expectPath, res.MaxDifference)
}

// interrupted returns the command context's error once it is cancelled, so
// a long run stops between steps.
func interrupted(cmd *cobra.Command) error {
	if ctx := cmd.Context(); ctx != nil {
		return ctx.Err()
	}
	return nil
}

func renderSVG(ctx context.Context, dot []byte) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render SVG: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
