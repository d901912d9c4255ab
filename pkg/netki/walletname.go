package netki

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	dErrors "netki/pkg/domain-errors"
	"netki/pkg/requestor"
)

// WalletName maps currency codes to wallet addresses under a domain.
//
// An empty ID means the record has not been persisted: either it was built
// locally, or its creation could not be matched back to a server record.
type WalletName struct {
	entity

	ID         string
	DomainName string
	Name       string
	ExternalID string

	wallets map[string]string
}

func NewWalletName(auth AuthContext, req requestor.Requestor) *WalletName {
	return &WalletName{
		entity:  newEntity(auth, req),
		wallets: make(map[string]string),
	}
}

// SetCurrencyAddress adds or replaces the address for currency.
func (w *WalletName) SetCurrencyAddress(currency, address string) {
	w.wallets[currency] = address
}

// RemoveCurrencyAddress is a no-op when currency is not set.
func (w *WalletName) RemoveCurrencyAddress(currency string) {
	delete(w.wallets, currency)
}

func (w *WalletName) WalletAddress(currency string) (string, bool) {
	addr, ok := w.wallets[currency]
	return addr, ok
}

// UsedCurrencies returns the configured currency codes, sorted.
func (w *WalletName) UsedCurrencies() []string {
	currencies := make([]string, 0, len(w.wallets))
	for c := range w.wallets {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}

func (w *WalletName) url() string {
	return w.endpoint("/v1/partner/walletname")
}

func (w *WalletName) toDTO() walletNameDTO {
	wallets := make([]walletDTO, 0, len(w.wallets))
	for _, currency := range w.UsedCurrencies() {
		wallets = append(wallets, walletDTO{Currency: currency, WalletAddress: w.wallets[currency]})
	}
	return walletNameDTO{
		ID:         w.ID,
		DomainName: w.DomainName,
		Name:       w.Name,
		ExternalID: w.ExternalID,
		Wallets:    wallets,
	}
}

// Save updates the record with PUT when ID is set and creates it with POST
// otherwise.
//
// After a create, ID is taken from the first returned wallet name whose
// domain_name and name match this one. When nothing matches, ID stays empty
// and no error is returned.
func (w *WalletName) Save(ctx context.Context) error {
	body, err := encodeBody(walletNamesRequest[walletNameDTO]{WalletNames: []walletNameDTO{w.toDTO()}})
	if err != nil {
		return err
	}

	if w.ID != "" {
		if _, err := w.call(ctx, http.MethodPut, w.url(), body); err != nil {
			return fmt.Errorf("updating wallet name %s.%s: %w", w.Name, w.DomainName, err)
		}
		return nil
	}

	resp, err := w.call(ctx, http.MethodPost, w.url(), body)
	if err != nil {
		return fmt.Errorf("creating wallet name %s.%s: %w", w.Name, w.DomainName, err)
	}

	obj, err := decodeObject(resp)
	if err != nil {
		return fmt.Errorf("creating wallet name %s.%s: %w", w.Name, w.DomainName, err)
	}
	created, err := obj.objects("wallet_names")
	if err != nil {
		return fmt.Errorf("creating wallet name %s.%s: %w", w.Name, w.DomainName, err)
	}

	for _, c := range created {
		if c.text("domain_name") == w.DomainName && c.text("name") == w.Name {
			w.ID = c.text("id")
			return nil
		}
	}
	w.logger.DebugContext(ctx, "created wallet name not found in response",
		"domain_name", w.DomainName,
		"name", w.Name,
		"returned", len(created),
	)
	return nil
}

// Delete removes a persisted record.
func (w *WalletName) Delete(ctx context.Context) error {
	if w.ID == "" {
		return dErrors.New(dErrors.CodePrecondition, "cannot delete a wallet name that was never persisted")
	}

	body, err := encodeBody(walletNamesRequest[walletNameRefDTO]{
		WalletNames: []walletNameRefDTO{{DomainName: w.DomainName, ID: w.ID}},
	})
	if err != nil {
		return err
	}
	if _, err := w.call(ctx, http.MethodDelete, w.url(), body); err != nil {
		return fmt.Errorf("deleting wallet name %s: %w", w.ID, err)
	}
	return nil
}
