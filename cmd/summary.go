package cmd

import (
	"fmt"

	"github.com/KaramelBytes/mpstats/internal/molprobity"
	"github.com/KaramelBytes/mpstats/internal/report"
	"github.com/spf13/cobra"
)

var (
	sumFormat    string
	sumRowPolicy string
	sumTrimState string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <input>",
	Short: "Print population statistics for each ranked metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		opt, err := parseOptions(cmd, c.RowPolicy, c.DelimiterRune(), sumRowPolicy, sumTrimState)
		if err != nil {
			return err
		}
		st, err := molprobity.ParseFile(args[0], opt)
		if err != nil {
			return err
		}
		rep := report.Build(st.Records, molprobity.Metrics, report.Labels{})
		out, err := report.RenderSummary(rep.Summarize(), sumFormat)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "File: %s\nRecords: %d (rejected %d, filtered %d)\n", args[0], st.Len(), st.Rejected, st.Filtered)
		fmt.Fprintln(w, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&sumFormat, "format", "table", "output format: table | markdown | csv")
	summaryCmd.Flags().StringVar(&sumRowPolicy, "row-policy", "", "malformed rows: reject | fail | pad (overrides config)")
	summaryCmd.Flags().StringVar(&sumTrimState, "trim-state", "", "only keep records with this backbone trim state (core | full)")
}
