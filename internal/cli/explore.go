package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"placeviz/internal/domain"
	"placeviz/internal/render"
)

var (
	exploreFlags requestFlags
	exploreJSON  bool
	exploreLimit int
	exploreRows  bool
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Run one filter/select/aggregate pass and print the word counts",
	Long: `Explore runs the same pipeline as the dashboard for a single set of
control values and prints the ranked word counts, and the male/female
comparison when --gender is set.

Example:
  placeviz explore --mode Most --category RIVER
  placeviz explore --testimony All --category BUILDING --country Poland --gender --top-n 10
  placeviz explore --testimony t1,t2 --json`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreFlags.bind(exploreCmd)
	exploreCmd.Flags().BoolVar(&exploreJSON, "json", false, "print the result as JSON")
	exploreCmd.Flags().IntVar(&exploreLimit, "limit", 25, "rows of the count and testimony tables to print (0 = all)")
	exploreCmd.Flags().BoolVar(&exploreRows, "rows", true, "print the testimonies left after filtering")
}

func runExplore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	req, err := exploreFlags.request()
	if err != nil {
		return err
	}
	svc, closeFn, err := newService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := svc.Explore(ctx, req)
	if err != nil {
		return err
	}
	if exploreJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(cmd.OutOrStdout(), res, exploreLimit, exploreRows)
	return nil
}

func printResult(w io.Writer, res *domain.Result, limit int, showRows bool) {
	fmt.Fprintf(w, "Filtered: %d testimonies, selected: %d\n", len(res.Filtered), len(res.Selected))
	if res.Request.Mode == domain.ModeMost && len(res.Files) > 0 {
		fmt.Fprintf(w, "Most %s mentions (%d): %s\n", res.Request.Category, res.MaxCount, strings.Join(res.Files, ", "))
		fmt.Fprintln(w, render.RowTable(res.Selected, res.Request.Category, 0))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, render.CountTable(res.Counts, limit))
	if res.Comparison != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, render.Venn(res.Comparison, [2]string{"Male", "Female"}, 96))
	}
	if showRows {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Testimonies after filters:")
		fmt.Fprintln(w, render.RowTable(res.Filtered, res.Request.Category, limit))
	}
}
