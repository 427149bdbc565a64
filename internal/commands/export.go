package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"weekly-agenda/internal/export"
	"weekly-agenda/internal/model"
	"weekly-agenda/internal/service"
)

var (
	exportUser   string
	exportFormat string
	exportFrom   string
	exportTo     string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's tasks as CSV or iCalendar",
	Example: `  agenda export --user alice --format ics --out agenda.ics
  agenda export --user alice --from 2024-01-15 --to 2024-01-21`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportUser, "user", "u", "", "username whose tasks to export")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or ics")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "first date to include (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "last date to include (YYYY-MM-DD)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	_ = exportCmd.MarkFlagRequired("user")
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	user, err := service.NewAuthService(a.users, nil).FindByUsername(ctx, exportUser)
	if err != nil {
		return fmt.Errorf("find user %q: %w", exportUser, err)
	}

	tasks, err := service.NewTaskService(a.tasks).List(ctx, user.ID, exportFrom, exportTo)
	if err != nil {
		return err
	}

	if exportOut == "" {
		return export.Write(cmd.OutOrStdout(), format, tasks, time.Now())
	}
	if err := writeExportFile(exportOut, format, tasks); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "exported %d tasks to %s\n", len(tasks), exportOut)
	return nil
}

// writeExportFile reports write and close failures alike, so a short write
// never looks like a finished export.
func writeExportFile(path string, format export.Format, tasks []model.Task) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := export.Write(f, format, tasks, time.Now()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
