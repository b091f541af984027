package cmd

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/mpstats/internal/manifest"
	"github.com/KaramelBytes/mpstats/internal/molprobity"
	"github.com/KaramelBytes/mpstats/internal/report"
	"github.com/KaramelBytes/mpstats/internal/utils"
	"github.com/spf13/cobra"
)

var (
	repOutput     string
	repDistOutput string
	repRowPolicy  string
	repTrimState  string
	repManifest   bool
	repPrecision  int
)

var reportCmd = &cobra.Command{
	Use:   "report <input> <experiment_type> <hydrogen_flip_state> <backbone_trim_state>",
	Short: "Annotate every model with its percentile rank per metric",
	Long: `Reads a colon-delimited MolProbity oneline file and writes one CSV row per model
with rank, value and raw count for each metric (stdout, or --output). The
distribution of every percentile table is written to stderr, or --dist-output.
The three labels are copied verbatim onto every row.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		input := args[0]
		labels := report.Labels{
			ExperimentType:    args[1],
			HydrogenFlipState: args[2],
			BackboneTrimState: args[3],
		}

		opt, err := parseOptions(cmd, c.RowPolicy, c.DelimiterRune(), repRowPolicy, repTrimState)
		if err != nil {
			return err
		}
		precision := c.OutputPrecision
		if cmd.Flags().Changed("precision") {
			if repPrecision < 0 || repPrecision > 12 {
				return fmt.Errorf("unsupported --precision: %d (use 0-12)", repPrecision)
			}
			precision = repPrecision
		}

		var man *manifest.Manifest
		if repManifest || c.WriteManifest {
			man = manifest.New(input, labels)
			man.RowPolicy = string(opt.Policy)
			man.TrimState = opt.TrimState
		}

		// Parse everything before touching any output.
		st, err := molprobity.ParseFile(input, opt)
		if err != nil {
			return err
		}
		if st.Rejected > 0 {
			notef(cmd, "⚠ Rejected %d of %d lines (row policy %s)", st.Rejected, st.Lines, opt.Policy)
			for _, e := range st.Errors {
				notef(cmd, "   %v", e)
			}
		}
		debugf(cmd, "parsed %d records from %s (%d filtered)", st.Len(), input, st.Filtered)

		rep := report.Build(st.Records, molprobity.Metrics, labels)
		rep.Precision = precision
		for i, t := range rep.Tables {
			debugf(cmd, "%s: %d values, %d distinct", rep.Metrics[i].Name, t.Population(), t.Len())
		}

		// Both files land together or not at all.
		distW, distF, err := openOutput(repDistOutput, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("open distribution output: %w", err)
		}
		defer distF.Abort()
		rowsW, rowsF, err := openOutput(repOutput, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("open report output: %w", err)
		}
		defer rowsF.Abort()

		if err := rep.WriteDistribution(distW); err != nil {
			return fmt.Errorf("write distribution: %w", err)
		}
		if err := rep.WriteRows(rowsW); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if err := distF.Commit(); err != nil {
			return fmt.Errorf("write distribution: %w", err)
		}
		if err := rowsF.Commit(); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		if man != nil {
			man.RecordParse(st)
			man.RecordTables(rep)
			path, err := man.Save(c.ManifestDir)
			if err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			notef(cmd, "✓ Wrote run manifest %s", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&repOutput, "output", "o", "", "write annotated rows to this file instead of stdout")
	reportCmd.Flags().StringVar(&repDistOutput, "dist-output", "", "write the distribution dump to this file instead of stderr")
	reportCmd.Flags().StringVar(&repRowPolicy, "row-policy", "", "malformed rows: reject | fail | pad (overrides config)")
	reportCmd.Flags().StringVar(&repTrimState, "trim-state", "", "only keep records with this backbone trim state (core | full)")
	reportCmd.Flags().BoolVar(&repManifest, "manifest", false, "write a JSON run manifest to manifest_dir")
	reportCmd.Flags().IntVar(&repPrecision, "precision", 6, "digits after the decimal point (overrides config)")
}

// parseOptions merges config values with command flags into parser options.
func parseOptions(cmd *cobra.Command, cfgPolicy string, delim rune, flagPolicy, trimState string) (molprobity.Options, error) {
	opt := molprobity.DefaultOptions()
	opt.Delimiter = delim
	name := cfgPolicy
	if cmd.Flags().Changed("row-policy") {
		name = flagPolicy
	}
	policy, err := molprobity.ParseRowPolicy(name)
	if err != nil {
		return opt, err
	}
	opt.Policy = policy
	opt.TrimState = trimState
	return opt, nil
}

// openOutput returns an atomic file for path, or fallback when path is empty.
// The returned *AtomicFile is nil for the fallback; its methods accept that.
func openOutput(path string, fallback io.Writer) (io.Writer, *utils.AtomicFile, error) {
	if path == "" {
		return fallback, nil, nil
	}
	f, err := utils.CreateAtomic(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// notef prints operator notices. stderr carries the distribution dump unless it
// was redirected, so notices only go there when that is safe or --debug is set.
func notef(cmd *cobra.Command, format string, args ...any) {
	if repDistOutput == "" && !debug {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
