package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zanachka/quickpin-api/pkg/client"
)

var (
	flagSearchType   string
	flagSearchFacets string
	flagSearchPage   int
	flagSearchRPP    int
	flagSearchSort   string
)

func init() {
	searchCmd.Flags().StringVar(&flagSearchType, "type", "", "Result type, e.g. profile, post")
	searchCmd.Flags().StringVar(&flagSearchFacets, "facets", "", "Facet filters")
	searchCmd.Flags().IntVar(&flagSearchPage, "page", client.DefaultPage, "Result page index")
	searchCmd.Flags().IntVar(&flagSearchRPP, "rpp", client.DefaultResultsPerPage, "Results per page")
	searchCmd.Flags().StringVar(&flagSearchSort, "sort", "", "Column to sort by")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search ingested profiles",
	Long: `Search previously ingested profiles and posts.

Examples:
  qpi search "acme"
  qpi search "acme" --type=profile --rpp=25`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	c, code := newClient(ctx)
	if code != 0 {
		os.Exit(code)
	}

	results, err := c.Search(ctx, client.SearchQuery{
		Query:  args[0],
		Type:   flagSearchType,
		Facets: flagSearchFacets,
		RPP:    flagSearchRPP,
		Page:   flagSearchPage,
		Sort:   flagSearchSort,
	})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	printJSON(results)
	return nil
}
