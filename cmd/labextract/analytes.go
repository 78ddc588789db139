package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/analytes"
	"github.com/labworks/labextract/internal/api"
	"github.com/labworks/labextract/internal/server/endpoints"
)

var analytesCmd = &cobra.Command{
	Use:   "analytes",
	Short: "List the configured analyte table",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		table, err := analytes.Load(mgr.Get().AnalyteTablePath())
		if err != nil {
			return err
		}
		entries := table.Entries()
		return api.Output(endpoints.AnalytesResponse{Count: len(entries), Analytes: entries})
	},
}

var analytesCheckCmd = &cobra.Command{
	Use:   "check <table.yaml>",
	Short: "Validate an analyte table file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := analytes.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d codes, %d labels\n", args[0], table.Len(), table.LabelCount())
		return nil
	},
}

func init() {
	analytesCmd.AddCommand(analytesCheckCmd)
	rootCmd.AddCommand(analytesCmd)
}
