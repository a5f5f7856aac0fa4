package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Print the command payload that would be registered",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, bot, err := loadBot()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(bot.Commands().Payload())
	},
}

func init() {
	rootCmd.AddCommand(payloadCmd)
}
