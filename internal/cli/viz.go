package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daschober/planesketch/pkg/cache"
	"github.com/daschober/planesketch/pkg/errors"
	"github.com/daschober/planesketch/pkg/observability"
	"github.com/daschober/planesketch/pkg/render/depgraph"
	"github.com/daschober/planesketch/pkg/scenefile"
)

// renderCacheTTL is how long cached SVG renders stay valid.
const renderCacheTTL = 24 * time.Hour

// newVizCmd creates the viz command.
func newVizCmd() *cobra.Command {
	var (
		output   string
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "viz [scene-file]",
		Short: "Render a scene's dependency graph as SVG",
		Long: `Render a scene's dependency graph as SVG.

The viz command reads a scene file (.toml or .json), converts its
dependency structure to a Graphviz diagram, and renders it to SVG.
This is a diagnostic view of which entities drive which: node shape
encodes the entity kind, hidden entities are dashed, and edges carry
the dependency relation.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViz(cmd.Context(), args[0], output, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <scene>.svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include coordinates and equations in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func runViz(ctx context.Context, input, output string, detailed, noCache bool) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateScenePath(input); err != nil {
		return err
	}

	sc, err := scenefile.ReadSceneFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	logger.Debug("scene loaded", "entities", sc.Len(), "edges", len(sc.Edges()))

	dot := depgraph.ToDOT(sc, depgraph.Options{Detailed: detailed})

	store, err := newRenderCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	key := cache.Key("svg", []byte(dot))
	svg, cacheHit, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if cacheHit {
		observability.Cache().OnCacheHit(ctx, "svg")
	} else {
		observability.Cache().OnCacheMiss(ctx, "svg")
		prog := newProgress(logger)
		svg, err = depgraph.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		prog.done("Rendered dependency graph")
		if err := store.Set(ctx, key, svg, renderCacheTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "svg", len(svg))
		}
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	if err := os.WriteFile(output, svg, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Dependency graph rendered")
	printFile(output)
	printStats(sc.Len(), len(sc.Edges()), cacheHit)
	return nil
}

// newRenderCache opens the file cache under the user cache directory, or
// a null cache when caching is disabled.
func newRenderCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the render cache directory.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "planesketch"), nil
}
