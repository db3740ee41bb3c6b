package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Work with projects",
	}
	cmd.AddCommand(projectsListCmd())
	return cmd
}

func projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			projects, err := svc.GetProjects(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCLIENT\tSTATUS\tBILLED HOURS\tTOTAL")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
					p.ID, p.Name, p.ClientName, p.Status, p.TotalBilledHours, p.TotalAmount)
			}
			return w.Flush()
		},
	}
}
