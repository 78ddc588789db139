package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/layout"
	"github.com/labworks/labextract/internal/result"
	"github.com/labworks/labextract/internal/server/endpoints"
)

var (
	rowsFormat  string
	resolveSeqn string
)

var rowsCmd = &cobra.Command{
	Use:   "rows <pdf>",
	Short: "Print the [left, right] rows reconstructed from a PDF",
	Long: `Rows runs word extraction and row clustering only. The rows format is the
intermediate representation accepted by "labextract resolve"; lines joins
each row into one string for reading.

Examples:
  labextract rows report.pdf -o json > rows.json
  labextract rows report.pdf --format lines`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if rowsFormat != endpoints.RawFormatRows && rowsFormat != endpoints.RawFormatLines {
			return fmt.Errorf("unknown format %q", rowsFormat)
		}
		logger, err := newLogger()
		if err != nil {
			return err
		}
		_, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		proc, err := newProcessor(mgr.Get(), logger)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		rows, err := proc.Rows(cmd.Context(), f)
		if err != nil {
			return err
		}
		if rowsFormat == endpoints.RawFormatLines {
			return api.Output(layout.Lines(rows))
		}
		return api.Output(layout.ToCells(rows))
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <rows.json>",
	Short: "Resolve a saved row set into an analyte record",
	Long: `Resolve reads a JSON array of [left, right] rows, as printed by
"labextract rows -o json", and runs repair and label resolution on it.
Use "-" to read from stdin.

Examples:
  labextract rows report.pdf -o json | labextract resolve - --seqn 1001`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := result.ValidateSampleID(resolveSeqn); err != nil {
			return err
		}

		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read rows: %w", err)
		}

		cells, err := layout.DecodeRows(data)
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		_, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		proc, err := newProcessor(mgr.Get(), logger)
		if err != nil {
			return err
		}

		doc, err := proc.ResolveRows(resolveSeqn, cells)
		if err != nil {
			return err
		}
		return api.Output(doc)
	},
}

func init() {
	rowsCmd.Flags().StringVar(&rowsFormat, "format", endpoints.RawFormatRows, "Output shape: rows or lines")
	resolveCmd.Flags().StringVar(&resolveSeqn, "seqn", "", "Sample identifier (required)")
	resolveCmd.MarkFlagRequired("seqn")

	rootCmd.AddCommand(rowsCmd)
	rootCmd.AddCommand(resolveCmd)
}
