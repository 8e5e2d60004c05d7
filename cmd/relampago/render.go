package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/pders01/relampago/internal/config"
	"github.com/pders01/relampago/internal/debuglog"
	"github.com/pders01/relampago/internal/feed"
	"github.com/pders01/relampago/internal/render"
	"github.com/pders01/relampago/internal/search"
	"github.com/pders01/relampago/internal/storage"
)

// errShown marks a failure whose placeholder has already been written.
var errShown = errors.New("load failed")

var (
	format   string
	width    int
	category string
	query    string
	ranked   bool
	limit    int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Render the feed as HTML, text or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return renderFeed(cmd.Context(), cmd.OutOrStdout(), cfg, search.Filter{Category: category, Query: query})
	},
}

var postCmd = &cobra.Command{
	Use:   "post <slug | post.html?slug=...>",
	Short: "Render a single article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderPost(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the feed",
	Long: `Search the feed by title, excerpt, author and topic.

With --ranked the article bodies are indexed too and results are ordered by relevance.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ranked {
			return renderRanked(cmd.Context(), cmd.OutOrStdout(), cfg, search.Filter{Category: category, Query: args[0]}, limit)
		}
		return renderFeed(cmd.Context(), cmd.OutOrStdout(), cfg, search.Filter{Category: category, Query: args[0]})
	},
}

func init() {
	for _, c := range []*cobra.Command{feedCmd, postCmd, searchCmd} {
		c.Flags().StringVarP(&format, "format", "f", "text", "output format: text, html or json")
		c.Flags().IntVarP(&width, "width", "w", 80, "wrap width for text output")
	}
	for _, c := range []*cobra.Command{feedCmd, searchCmd} {
		c.Flags().StringVarP(&category, "category", "c", "", "only show this topic")
	}
	feedCmd.Flags().StringVarP(&query, "query", "Q", "", "only show articles matching this text")
	searchCmd.Flags().BoolVar(&ranked, "ranked", false, "rank by relevance, including article bodies")
	searchCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum ranked results")

	rootCmd.AddCommand(feedCmd, postCmd, searchCmd)
}

func newRenderer(c *config.Config, loader *feed.Loader) *render.Renderer {
	loc, _ := c.Location()
	return render.New(render.Options{
		Images:       render.ImageRulesFromConfig(c.Images),
		Location:     loc,
		ManifestPath: loader.ManifestPath(),
	})
}

func presenter() (render.Presenter, error) {
	p, ok := render.PresenterFor(format, width)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return p, nil
}

// loadFeed loads and orders the manifest. On failure the placeholder view is
// written to w and errShown is returned.
func loadFeed(ctx context.Context, w io.Writer, c *config.Config) ([]storage.Article, *render.Renderer, render.Presenter, error) {
	p, err := presenter()
	if err != nil {
		return nil, nil, nil, err
	}
	loader, err := newLoader(c)
	if err != nil {
		return nil, nil, nil, err
	}
	r := newRenderer(c, loader)
	if ctx == nil {
		ctx = context.Background()
	}

	loc, _ := c.Location()
	articles, err := loader.LoadManifest(ctx)
	if err != nil {
		if perr := p.Feed(w, r.LoadFailure(err)); perr != nil {
			return nil, nil, nil, perr
		}
		return nil, nil, nil, errShown
	}
	return storage.Ingest(articles, loc), r, p, nil
}

func renderFeed(ctx context.Context, w io.Writer, c *config.Config, f search.Filter) error {
	all, r, p, err := loadFeed(ctx, w, c)
	if err != nil {
		return err
	}
	return p.Feed(w, r.Feed(search.Apply(all, f)))
}

// renderRanked indexes the articles in f.Category and ranks them by f.Query.
func renderRanked(ctx context.Context, w io.Writer, c *config.Config, f search.Filter, n int) error {
	all, r, p, err := loadFeed(ctx, w, c)
	if err != nil {
		return err
	}
	idx, err := search.NewIndex(search.Apply(all, search.Filter{Category: f.Category}))
	if err != nil {
		return err
	}
	defer idx.Close()
	if docs, err := idx.DocCount(); err == nil {
		debuglog.Debugf("ranked search over %d articles", docs)
	}

	hits, err := idx.Ranked(f.Query, n)
	if err != nil {
		return err
	}
	matched := lo.Map(hits, func(h search.Hit, _ int) storage.Article { return h.Article })
	return p.Feed(w, r.Feed(matched))
}

func renderPost(ctx context.Context, w io.Writer, c *config.Config, location string) error {
	p, err := presenter()
	if err != nil {
		return err
	}
	loader, err := newLoader(c)
	if err != nil {
		return err
	}
	r := newRenderer(c, loader)
	if ctx == nil {
		ctx = context.Background()
	}

	article, err := loader.LoadFromLocation(ctx, location)
	if err == nil {
		return p.Article(w, r.Article(article))
	}
	if perr := p.Article(w, r.ArticleFailure(err)); perr != nil {
		return perr
	}
	return errShown
}
