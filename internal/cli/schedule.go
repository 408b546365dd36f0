package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/schedule-builder/internal/domain/constraints"
	"github.com/preston-bernstein/schedule-builder/internal/domain/schedules"
	"github.com/preston-bernstein/schedule-builder/internal/reconcile"
	"github.com/preston-bernstein/schedule-builder/internal/remote"
)

func newMatrixCommand(opts *options) *cobra.Command {
	var asJSON, summary bool
	cmd := &cobra.Command{
		Use:   "matrix <schedule-id>",
		Short: "Print the week-by-team matrix of a stored schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			orch, err := opts.openSchedule(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			m := orch.Matrix()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderMatrix(m, summary))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&summary, "summary", false, "append home/away/bye totals per team")
	return cmd
}

func newViolationsCommand(opts *options) *cobra.Command {
	var asJSON bool
	var byType string
	cmd := &cobra.Command{
		Use:   "violations <schedule-id>",
		Short: "List constraint violations of a stored schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseViolationFilter(byType)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			orch, err := opts.openSchedule(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			vs := orch.Violations(filter)
			stats := orch.ViolationStats()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"filter":     filter,
					"violations": vs,
					"stats":      stats,
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderViolations(vs, stats))
			return err
		},
	}
	cmd.Flags().StringVarP(&byType, "type", "t", reconcile.FilterAll, "filter by type: all, error, warning, info")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a list")
	return cmd
}

func newExportCommand(opts *options) *cobra.Command {
	var format, outDir string
	cmd := &cobra.Command{
		Use:   "export <schedule-id>",
		Short: "Download a stored schedule and save it locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.ExportDir = outDir
			}
			if cfg.ExportDir == "" {
				return fmt.Errorf("export directory not configured")
			}
			f := schedules.ExportFormat(strings.ToLower(strings.TrimSpace(format)))
			if !f.Valid() {
				return fmt.Errorf("%w: %q", remote.ErrUnsupportedFormat, f)
			}
			orch, err := opts.openSchedule(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			res, err := orch.Export(cmd.Context(), f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", res.Path, res.Size)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(schedules.FormatCSV), "csv, pdf, ics, json or xlsx")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to save into (defaults to config export dir)")
	return cmd
}

func parseViolationFilter(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "", reconcile.FilterAll:
		return reconcile.FilterAll, nil
	case string(constraints.ViolationError), string(constraints.ViolationWarning), string(constraints.ViolationInfo):
		return v, nil
	}
	return "", fmt.Errorf("invalid violation type %q", v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
