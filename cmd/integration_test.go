package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/mpstats/internal/manifest"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags puts every flag of c back to its default so runs do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
}

// execute runs the root command with args and captures both output channels.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	for _, c := range []*cobra.Command{rootCmd, reportCmd, summaryCmd, configShowCmd, configSetCmd} {
		resetFlags(c)
	}
	cfg = nil
	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errb.String(), err
}

// runCmd is a helper to execute the root command with args and fail on error.
func runCmd(t *testing.T, args ...string) (string, string) {
	t.Helper()
	stdout, stderr, err := execute(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return stdout, stderr
}

// onelineRow builds a 33-column input line with the given overrides.
func onelineRow(over map[int]string) string {
	cols := make([]string, 33)
	for k, v := range over {
		cols[k] = v
	}
	return strings.Join(cols, ":")
}

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	lines := []string{
		onelineRow(map[int]string{1: "1aaa", 2: "1", 5: "full", 7: "2", 9: "1", 10: "4", 32: "Protein,DNA"}),
		onelineRow(map[int]string{1: "1bbb", 2: "1", 5: "full", 7: "4", 9: "1", 10: "2", 32: "Protein"}),
		"garbage line",
		onelineRow(map[int]string{1: "1ccc", 2: "2", 5: "core", 7: "2", 9: "0", 10: "0", 32: "RNA"}),
	}
	p := filepath.Join(dir, "allonelinebuild.out.csv")
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func TestCLI_ReportToStdStreams(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	input := writeFixture(t, home)

	stdout, stderr := runCmd(t, "report", input, "nmr", "build", "full")

	rows := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", len(rows), stdout)
	}
	first := strings.Split(rows[0], ",")
	if strings.Join(first[:6], ",") != "nmr,build,full,Protein-DNA,1aaa,1" {
		t.Fatalf("unexpected row prefix: %s", rows[0])
	}
	// cbeta is metric 0, clashscore metric 5
	if got := strings.Join(first[6:9], ","); got != "0.000000,25.000000,1.000000" {
		t.Fatalf("cbeta columns = %s", got)
	}
	if got := strings.Join(first[21:24], ","); got != "0.000000,2.000000,2.000000" {
		t.Fatalf("clashscore columns = %s", got)
	}
	second := strings.Split(rows[1], ",")
	if got := strings.Join(second[21:24], ","); got != "66.666667,4.000000,4.000000" {
		t.Fatalf("clashscore columns = %s", got)
	}
	third := strings.Split(rows[2], ",")
	if got := strings.Join(third[6:9], ","); got != "-1.000000,-1.000000,0.000000" {
		t.Fatalf("zero-divisor cbeta columns = %s", got)
	}

	// stderr carries only the distribution dump
	none := "-1,-1,"
	wantDist := "nmr,build,full,25.000000,1," + strings.Repeat(none, 4) + "2.000000,2," + strings.Repeat(none, 2) + "-1,-1\n" +
		"nmr,build,full,50.000000,1," + strings.Repeat(none, 4) + "4.000000,1," + strings.Repeat(none, 2) + "-1,-1\n"
	if stderr != wantDist {
		t.Fatalf("distribution:\n%s\nwant:\n%s", stderr, wantDist)
	}
}

func TestCLI_ReportToFilesWithManifest(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	input := writeFixture(t, home)
	rowsPath := filepath.Join(home, "out", "averages.csv")
	distPath := filepath.Join(home, "out", "distributions.csv")

	stdout, stderr := runCmd(t, "report", input, "nmr", "build", "core",
		"-o", rowsPath, "--dist-output", distPath, "--trim-state", "core", "--manifest")
	if stdout != "" {
		t.Fatalf("stdout should be empty when --output is set, got %q", stdout)
	}
	if !strings.Contains(stderr, "Rejected 1 of 4 lines") || !strings.Contains(stderr, "Wrote run manifest") {
		t.Fatalf("expected notices on stderr, got %q", stderr)
	}

	rows, err := os.ReadFile(rowsPath)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if n := strings.Count(string(rows), "\n"); n != 1 || !strings.Contains(string(rows), ",1ccc,2,") {
		t.Fatalf("expected only the core record, got:\n%s", rows)
	}
	if _, err := os.Stat(distPath); err != nil {
		t.Fatalf("distribution file missing: %v", err)
	}

	runs, _ := filepath.Glob(filepath.Join(home, ".mpstats", "runs", "*.json"))
	if len(runs) != 1 {
		t.Fatalf("expected one manifest, got %v", runs)
	}
	m, err := manifest.Load(runs[0])
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if m.Accepted != 1 || m.Rejected != 1 || m.Filtered != 2 || m.TrimState != "core" || m.Labels.BackboneTrimState != "core" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestCLI_ReportRowPolicyFail(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	input := writeFixture(t, home)
	rowsPath := filepath.Join(home, "rows.csv")

	_, _, err := execute(t, "report", input, "nmr", "build", "full", "--row-policy", "fail", "-o", rowsPath)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected row error on line 3, got %v", err)
	}
	if _, statErr := os.Stat(rowsPath); !os.IsNotExist(statErr) {
		t.Fatalf("no output should be written on a fatal row error")
	}
}

func TestCLI_ReportOutputsCommitTogether(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	input := writeFixture(t, home)
	blocker := filepath.Join(home, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	distPath := filepath.Join(home, "distributions.csv")

	_, _, err := execute(t, "report", input, "nmr", "build", "full",
		"--dist-output", distPath, "-o", filepath.Join(blocker, "rows.csv"))
	if err == nil {
		t.Fatalf("expected error for unwritable --output")
	}
	if _, statErr := os.Stat(distPath); !os.IsNotExist(statErr) {
		t.Fatalf("distribution file should not be written when rows fail")
	}
	leftovers, _ := filepath.Glob(filepath.Join(home, ".distributions.csv.*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestCLI_ReportMissingInput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	stdout, _, err := execute(t, "report", filepath.Join(t.TempDir(), "missing.csv"), "a", "b", "c")
	if err == nil || !strings.Contains(err.Error(), "open input") {
		t.Fatalf("expected open input error, got %v", err)
	}
	if stdout != "" {
		t.Fatalf("no rows expected, got %q", stdout)
	}
}

func TestCLI_ReportArgs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, _, err := execute(t, "report", "only-input"); err == nil {
		t.Fatalf("expected argument count error")
	}
}

func TestCLI_Summary(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	input := writeFixture(t, home)

	stdout, _ := runCmd(t, "summary", input, "--format", "csv")
	if !strings.Contains(stdout, "Records: 3 (rejected 1, filtered 0)") {
		t.Fatalf("missing record counts: %s", stdout)
	}
	if !strings.Contains(stdout, "clashscore,3,2,2.000,2.000,4.000,4.000,2.667") {
		t.Fatalf("missing clashscore summary: %s", stdout)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	runCmd(t, "config", "set", "row_policy", "strict")
	runCmd(t, "config", "set", "row_policy", "pad")
	runCmd(t, "config", "set", "output_precision", "3")
	if _, _, err := execute(t, "config", "set", "row_policy", "lenient"); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, _, err := execute(t, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}

	stdout, _ := runCmd(t, "config", "show")
	if !strings.Contains(stdout, "row_policy: pad") || !strings.Contains(stdout, "output_precision: 3") {
		t.Fatalf("unexpected config show output: %s", stdout)
	}
	if _, err := os.Stat(filepath.Join(home, ".mpstats", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}
