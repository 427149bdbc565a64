package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run one reminder tick now and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.reminderService().Tick(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "candidates: %d, due: %d, sent: %d, failed: %d\n",
			res.Candidates, res.Due, res.Sent, res.Failed)
		return nil
	},
}
