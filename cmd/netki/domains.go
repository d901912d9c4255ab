package main

import (
	"github.com/spf13/cobra"

	"netki/pkg/netki"
)

func (a *app) domainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List, create, inspect and delete domains",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every domain with its status and DNSSEC details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := a.client.GetDomains(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]domainView, 0, len(domains))
			for _, d := range domains {
				views = append(views, newDomainView(d))
			}
			return a.printJSON(views)
		},
	}

	var partnerID string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Register a domain, optionally on behalf of a sub-partner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var partner *netki.Partner
			if partnerID != "" {
				partner = a.client.NewPartner(partnerID, "")
			}
			d, err := a.client.CreateDomain(cmd.Context(), args[0], partner)
			if err != nil {
				return err
			}
			return a.printJSON(newDomainView(d))
		},
	}
	create.Flags().StringVar(&partnerID, "partner-id-for", "", "sub-partner id that will own the domain")

	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client.NewDomain(args[0]).Delete(cmd.Context())
		},
	}

	status := &cobra.Command{
		Use:   "status <name>",
		Short: "Show status, delegation and wallet name count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.client.NewDomain(args[0])
			if err := d.LoadStatus(cmd.Context()); err != nil {
				return err
			}
			return a.printJSON(newDomainView(d))
		},
	}

	dnssec := &cobra.Command{
		Use:   "dnssec <name>",
		Short: "Show DNSSEC details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.client.NewDomain(args[0])
			if err := d.LoadDnssecDetails(cmd.Context()); err != nil {
				return err
			}
			return a.printJSON(newDomainView(d))
		},
	}

	cmd.AddCommand(list, create, del, status, dnssec)
	return cmd
}
