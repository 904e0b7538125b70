package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"thearchives/internal/cache"
	"thearchives/internal/catalog"
	"thearchives/internal/route"
	"thearchives/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search destinations and products by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.Load()
		if err != nil {
			return err
		}
		res := search.New(store).Search(strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if res.Empty() {
			fmt.Fprintln(out, "No results found.")
			return nil
		}
		for _, m := range res.Matches() {
			switch m := m.(type) {
			case search.DestinationMatch:
				fmt.Fprintf(out, "destination  %-32s %s\n", m.Title(), route.For(m))
			case search.ProductMatch:
				fmt.Fprintf(out, "product      %-32s %s\n", m.Title(), route.For(m))
			}
		}
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [path]",
	Short: "Resolve a site path to its destination or product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.Load()
		if err != nil {
			return err
		}
		target, err := route.NewResolver(store).Path(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "kind:        %s\n", target.Kind)
		fmt.Fprintf(out, "destination: %s (%s)\n", target.Destination.Name, target.Destination.ID)
		if target.Product != nil {
			fmt.Fprintf(out, "product:     %s [%s]\n", target.Product.Name, target.Product.Type.Label())
		}
		fmt.Fprintf(out, "canonical:   %s\n", target.Path())
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the Valkey page cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush [path...]",
	Short: "Evict cached pages; all pages when no path is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.CacheEnabled() {
			return fmt.Errorf("page cache is not configured (set VALKEY_HOST)")
		}
		ctx := cmd.Context()
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			return err
		}
		defer client.Close()
		pc := cache.NewPageCache(client, cfg.PageCacheTTL)

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			n, err := pc.InvalidateAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "evicted %d pages\n", n)
			return nil
		}
		for _, p := range args {
			path, rawQuery, _ := strings.Cut(p, "?")
			if err := pc.InvalidatePage(ctx, cache.PathKey(path, rawQuery)); err != nil {
				return err
			}
			fmt.Fprintf(out, "evicted %s\n", p)
		}
		return nil
	},
}
