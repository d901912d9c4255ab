package main

import (
	"github.com/spf13/cobra"
)

func (a *app) partnersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Manage sub-partners",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List sub-partners",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				partners, err := a.client.GetPartners(cmd.Context())
				if err != nil {
					return err
				}
				views := make([]partnerView, 0, len(partners))
				for _, p := range partners {
					views = append(views, newPartnerView(p))
				}
				return a.printJSON(views)
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a sub-partner",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.client.CreatePartner(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return a.printJSON(newPartnerView(p))
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a sub-partner by name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.client.NewPartner("", args[0]).Delete(cmd.Context())
			},
		},
	)
	return cmd
}
