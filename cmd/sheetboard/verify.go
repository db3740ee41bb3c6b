package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/sheetboard/internal/config"
	"github.com/Veraticus/sheetboard/internal/service"
	"github.com/Veraticus/sheetboard/internal/sheets"
	"github.com/spf13/cobra"
)

// newService builds a Service from the loaded configuration. Shared by
// every command that talks to the spreadsheet.
func newService() (*service.Service, error) {
	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return nil, err
	}

	client, err := sheets.NewClient(*cfg, slog.Default())
	if err != nil {
		return nil, err
	}

	return service.New(client, slog.Default()), nil
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify the spreadsheet is reachable and correctly laid out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			result := svc.VerifyConfiguration(cmd.Context())

			fmt.Println(result.Message)
			for _, tab := range result.MissingSheets {
				fmt.Printf("  missing worksheet: %s\n", tab)
			}
			for _, issue := range result.HeaderIssues {
				fmt.Printf("  %s: expected %d header columns, found %d\n",
					issue.Sheet, issue.Expected, issue.Found)
			}

			if !result.Success {
				return fmt.Errorf("configuration check failed")
			}
			return nil
		},
	}
}
