package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-utilitycost/stats"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the dataset",
	Long:  `Prints the record count, cost statistics and the per region and per customer type averages of the dataset.`,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}
	costs := ds.Costs()
	s, err := stats.Summarize(costs)
	if err != nil {
		return err
	}
	byRegion, err := stats.GroupMean(ds.Regions(), costs)
	if err != nil {
		return err
	}
	byType, err := stats.GroupMean(ds.CustomerTypes(), costs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Records: %s\n", humanize.Comma(int64(s.Count)))
	fmt.Fprintf(out, "Average cost: %s\n", money(s.Mean))
	fmt.Fprintf(out, "Minimum cost: %s\n", money(s.Min))
	fmt.Fprintf(out, "Maximum cost: %s\n", money(s.Max))

	if err := printGroups(out, "Average cost by region", byRegion); err != nil {
		return err
	}
	if err := printGroups(out, "Average cost by customer type", byType); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nCustomer type proportion")
	for _, g := range stats.GroupCount(ds.CustomerTypes()) {
		fmt.Fprintf(out, "  %s: %s (%.1f%%)\n", g.Key, humanize.Comma(int64(g.Count)), g.Value*100)
	}
	return nil
}

func printGroups(w io.Writer, title string, groups []stats.Group) error {
	fmt.Fprintf(w, "\n%s\n", title)
	tbl := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, g := range groups {
		fmt.Fprintf(tbl, "  %s\t%s\t%s records\n", g.Key, money(g.Value), humanize.Comma(int64(g.Count)))
	}
	return tbl.Flush()
}
