package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/mpstats/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set mpstats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "row_policy: %s\n", c.RowPolicy)
		fmt.Fprintf(w, "delimiter: %q\n", c.Delimiter)
		fmt.Fprintf(w, "output_precision: %d\n", c.OutputPrecision)
		fmt.Fprintf(w, "write_manifest: %t\n", c.WriteManifest)
		fmt.Fprintf(w, "manifest_dir: %s\n", c.ManifestDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		next := *c
		switch key {
		case "row_policy":
			next.RowPolicy = val
		case "delimiter":
			next.Delimiter = val
		case "output_precision":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for output_precision: %w", err)
			}
			next.OutputPrecision = i
		case "write_manifest":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for write_manifest: %w", err)
			}
			next.WriteManifest = b
		case "manifest_dir":
			next.ManifestDir = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
