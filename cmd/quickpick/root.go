package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"gadgetfinder-backend/internal/catalog"
	"gadgetfinder-backend/internal/config"
)

type options struct {
	sitePath       string
	affiliatesPath string
	jsonOutput     bool
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := &options{}

	root := &cobra.Command{
		Use:   "quickpick [query]",
		Short: "Pick offers from the affiliate catalog for a free-text query",
		Long: `quickpick classifies a query with the same ordered keyword rules as the
site's finder and prints up to three matching offers. Queries that match
no rule get the top deals.

Examples:
  quickpick "robot vacuum for pet hair"
  quickpick --json "mesh wifi"
  quickpick categories`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(opts.sitePath, opts.affiliatesPath)
			if err != nil {
				return err
			}
			return runQuery(cmd.OutOrStdout(), c, strings.Join(args, " "), opts.jsonOutput)
		},
	}

	root.PersistentFlags().StringVar(&opts.sitePath, "site", cfg.SiteConfigPath, "path to site.json")
	root.PersistentFlags().StringVar(&opts.affiliatesPath, "affiliates", cfg.AffiliatesPath, "path to affiliates.json")
	root.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON")

	root.AddCommand(newCategoriesCmd(opts))
	return root
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories and the keywords that select them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(opts.sitePath, opts.affiliatesPath)
			if err != nil {
				return err
			}
			return listCategories(cmd.OutOrStdout(), c, catalog.DefaultClassifier())
		},
	}
}

func runQuery(out io.Writer, c *catalog.Catalog, query string, asJSON bool) error {
	picks := c.QuickPick(query)
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(picks)
	}

	if picks.Category != "" {
		fmt.Fprintf(out, "Category: %s\n", picks.Category)
	} else {
		fmt.Fprintln(out, "No category matched, showing top deals")
	}
	if len(picks.Offers) == 0 {
		fmt.Fprintln(out, "No offers available.")
		return nil
	}
	for i, o := range picks.Offers {
		fmt.Fprintf(out, "%d. %s (%s) %s\n", i+1, o.Name, o.Merchant, o.URL)
		if o.Blurb != "" {
			fmt.Fprintf(out, "   %s\n", o.Blurb)
		}
	}
	return nil
}

func listCategories(out io.Writer, c *catalog.Catalog, classifier *catalog.Classifier) error {
	keywords := map[string][]string{}
	for _, r := range classifier.Rules() {
		keywords[r.Category] = r.Keywords
	}
	for _, cat := range c.Affiliates.Categories {
		fmt.Fprintf(out, "%-12s %-24s %d offers", cat.ID, cat.Title, len(cat.Offers))
		if kw := keywords[cat.ID]; len(kw) > 0 {
			fmt.Fprintf(out, "  [%s]", strings.Join(kw, ", "))
		}
		fmt.Fprintln(out)
	}
	return nil
}
