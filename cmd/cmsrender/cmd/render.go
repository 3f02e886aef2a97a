package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jrsteele09/decap-oauth-bridge/content"
	"github.com/jrsteele09/decap-oauth-bridge/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	siteDir     string
	sourcesFile string
	outDir      string
	siteURL     string
}

func newRenderCmd() *cobra.Command {
	cfg := config.New()
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <page.html>...",
		Short: "Fill data-cms-key placeholders from the page's content bundle",
		Long: `Reads each page, loads the bundle named by <body data-cms-page="...">
and writes the page with its placeholders filled. Pages whose bundle cannot
be loaded are written unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.siteDir, "site", cfg.GetSiteDir(), "site directory holding the content bundles")
	cmd.Flags().StringVar(&opts.sourcesFile, "sources", cfg.GetContentSourcesFile(), "YAML file mapping page ids to bundle paths")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "output directory (default: overwrite pages in place)")
	cmd.Flags().StringVar(&opts.siteURL, "site-url", "", "fetch bundles from a deployed site instead of --site")
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions, pages []string) error {
	sources, err := content.LoadSources(opts.sourcesFile)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	var loader content.Loader = content.FileLoader{FS: os.DirFS(opts.siteDir), Sources: sources}
	if opts.siteURL != "" {
		loader = content.HTTPLoader{
			SiteURL: opts.siteURL,
			Client:  &http.Client{Timeout: 30 * time.Second},
			Sources: sources,
		}
	}

	for _, page := range pages {
		data, err := os.ReadFile(page)
		if err != nil {
			return fmt.Errorf("read page: %w", err)
		}

		out, res := content.RenderPage(cmd.Context(), loader, data)
		if res.IsLoaded() {
			log.Info().Str("page", page).Int("keys", len(res.Bundle)).Msg("Rendered")
		} else {
			log.Warn().Err(res.Reason).Str("page", page).Msg("Content not injected, page left unchanged")
		}

		dest := outputPath(opts.siteDir, opts.outDir, page)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(dest, out, 0o644); err != nil {
			return fmt.Errorf("write page: %w", err)
		}
	}
	return nil
}

// outputPath keeps a page's position relative to the site directory when
// writing to outDir. Pages outside the site keep only their file name.
func outputPath(siteDir, outDir, page string) string {
	if outDir == "" {
		return page
	}
	rel, err := filepath.Rel(siteDir, page)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(page)
	}
	return filepath.Join(outDir, rel)
}

func newMarkdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "markdown",
		Short: "Render stdin with the CMS Markdown subset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), content.MarkdownLite(string(src)))
			return err
		},
	}
}
