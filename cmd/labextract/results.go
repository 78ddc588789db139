package main

import (
	"github.com/spf13/cobra"

	"github.com/labworks/labextract/internal/api"
)

var resultCmd = &cobra.Command{
	Use:   "result <seqn>",
	Short: "Show a saved result from the home directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, _, err := loadConfig()
		if err != nil {
			return err
		}
		doc, err := resultsSink(h).Read(args[0])
		if err != nil {
			return err
		}
		return api.Output(doc)
	},
}

func init() {
	rootCmd.AddCommand(resultCmd)
}
