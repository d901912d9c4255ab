package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) walletNamesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "walletnames",
		Aliases: []string{"wn"},
		Short:   "Manage wallet names",
	}

	var domainName, externalID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List wallet names, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.client.GetWalletNames(cmd.Context(), domainName, externalID)
			if err != nil {
				return err
			}
			views := make([]walletNameView, 0, len(names))
			for _, wn := range names {
				views = append(views, newWalletNameView(wn))
			}
			return a.printJSON(views)
		},
	}
	list.Flags().StringVar(&domainName, "domain", "", "only wallet names under this domain")
	list.Flags().StringVar(&externalID, "external-id", "", "only wallet names with this external id")

	var (
		saveExternalID string
		saveID         string
		wallets        []string
	)
	save := &cobra.Command{
		Use:   "save <domain> <name>",
		Short: "Create a wallet name, or update it when --id is given",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wn := a.client.CreateWalletName(args[0], args[1], saveExternalID)
			wn.ID = saveID
			for _, w := range wallets {
				currency, address, err := parseWallet(w)
				if err != nil {
					return err
				}
				wn.SetCurrencyAddress(currency, address)
			}
			if err := wn.Save(cmd.Context()); err != nil {
				return err
			}
			return a.printJSON(newWalletNameView(wn))
		},
	}
	save.Flags().StringVar(&saveExternalID, "external-id", "", "caller-defined external id")
	save.Flags().StringVar(&saveID, "id", "", "id of an existing wallet name to update")
	save.Flags().StringArrayVar(&wallets, "wallet", nil, "currency=address, repeatable")

	del := &cobra.Command{
		Use:   "delete <domain> <id>",
		Short: "Delete a wallet name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wn := a.client.NewWalletName()
			wn.DomainName = args[0]
			wn.ID = args[1]
			return wn.Delete(cmd.Context())
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}

func parseWallet(value string) (string, string, error) {
	currency, address, ok := strings.Cut(value, "=")
	currency = strings.TrimSpace(currency)
	address = strings.TrimSpace(address)
	if !ok || currency == "" || address == "" {
		return "", "", fmt.Errorf("invalid --wallet %q, want currency=address", value)
	}
	return currency, address, nil
}
