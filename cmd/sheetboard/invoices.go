package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Work with invoices",
	}
	cmd.AddCommand(invoicesGenerateCmd())
	return cmd
}

func invoicesGenerateCmd() *cobra.Command {
	var projectID, clientID, createdBy string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an invoice from a project's unbilled hours",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			invoice, err := svc.GenerateInvoice(cmd.Context(), projectID, clientID, createdBy)
			if err != nil {
				return err
			}

			fmt.Printf("Generated %s: subtotal %.2f, tax %.2f, total %.2f, due %s\n",
				invoice.InvoiceNumber, invoice.Subtotal, invoice.TaxAmount,
				invoice.TotalAmount, invoice.DueDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "project ID to invoice")
	cmd.Flags().StringVar(&clientID, "client", "", "client ID to bill")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "name recorded on the invoice")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}
