package netki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	dErrors "netki/pkg/domain-errors"
	"netki/pkg/requestor"
)

// Client is the entry point to the partner API. It owns the default auth
// context and hands it, with its requestor, to every entity it builds.
type Client struct {
	auth              AuthContext
	requestor         requestor.Requestor
	logger            *slog.Logger
	domainConcurrency int
}

type Option func(c *Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDomainConcurrency bounds how many domains GetDomains enriches at once.
// Values below 2 keep the enrichment sequential.
func WithDomainConcurrency(n int) Option {
	return func(c *Client) {
		c.domainConcurrency = n
	}
}

// NewClient constructs a Client. An empty API URL falls back to DefaultAPIURL.
func NewClient(auth AuthContext, req requestor.Requestor, opts ...Option) (*Client, error) {
	if req == nil {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "requestor is required")
	}
	if auth.APIURL() == "" {
		auth.Configure(DefaultAPIURL, auth.APIKey(), auth.PartnerID())
	}

	c := &Client{
		auth:              auth,
		requestor:         req,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		domainConcurrency: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Auth returns the client's default auth context.
func (c *Client) Auth() AuthContext {
	return c.auth
}

func (c *Client) call(ctx context.Context, method, url string, body []byte) (object, error) {
	resp, err := c.requestor.AuthenticatedRequest(ctx, c.auth.APIKey(), c.auth.PartnerID(), url, method, body)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

// NewDomain addresses an existing domain without fetching it.
func (c *Client) NewDomain(name string) *Domain {
	d := NewDomain(name, c.auth, c.requestor)
	d.logger = c.logger
	return d
}

// NewPartner addresses an existing partner without fetching it.
func (c *Client) NewPartner(id, name string) *Partner {
	p := NewPartner(id, name, c.auth, c.requestor)
	p.logger = c.logger
	return p
}

// NewWalletName returns an empty, unpersisted wallet name.
func (c *Client) NewWalletName() *WalletName {
	w := NewWalletName(c.auth, c.requestor)
	w.logger = c.logger
	return w
}

// =============================================================================
// Wallet names
// =============================================================================

// GetWalletNames lists wallet names, optionally filtered by domain and
// external id. Empty filters are not sent.
func (c *Client) GetWalletNames(ctx context.Context, domainName, externalID string) ([]*WalletName, error) {
	var args []string
	if domainName != "" {
		args = append(args, "domain_name="+url.QueryEscape(domainName))
	}
	if externalID != "" {
		args = append(args, "external_id="+url.QueryEscape(externalID))
	}
	uri := c.auth.endpoint("/v1/partner/walletname")
	if len(args) > 0 {
		uri += "?" + strings.Join(args, "&")
	}

	obj, err := c.call(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("listing wallet names: %w", err)
	}

	var count int
	if err := obj.require("wallet_name_count", &count); err != nil {
		return nil, fmt.Errorf("listing wallet names: %w", err)
	}
	if count == 0 {
		return []*WalletName{}, nil
	}

	var entries []object
	if err := obj.require("wallet_names", &entries); err != nil {
		return nil, fmt.Errorf("listing wallet names: %w", err)
	}

	results := make([]*WalletName, 0, len(entries))
	for _, e := range entries {
		wn := c.NewWalletName()
		wn.ID = e.text("id")
		wn.DomainName = e.text("domain_name")
		wn.Name = e.text("name")
		wn.ExternalID = e.text("external_id")

		wallets, err := e.objects("wallets")
		if err != nil {
			return nil, fmt.Errorf("listing wallet names: %w", err)
		}
		for _, wallet := range wallets {
			wn.SetCurrencyAddress(wallet.text("currency"), wallet.text("wallet_address"))
		}
		results = append(results, wn)
	}
	return results, nil
}

// CreateWalletName builds a local wallet name; call Save to persist it.
func (c *Client) CreateWalletName(domainName, name, externalID string) *WalletName {
	wn := c.NewWalletName()
	wn.DomainName = domainName
	wn.Name = name
	wn.ExternalID = externalID
	return wn
}

// =============================================================================
// Partners
// =============================================================================

func (c *Client) CreatePartner(ctx context.Context, name string) (*Partner, error) {
	obj, err := c.call(ctx, http.MethodPost, c.auth.endpoint("/v1/admin/partner/%s", name), nil)
	if err != nil {
		return nil, fmt.Errorf("creating partner %s: %w", name, err)
	}

	var created object
	if err := obj.require("partner", &created); err != nil {
		return nil, fmt.Errorf("creating partner %s: %w", name, err)
	}
	var p partnerDTO
	if err := created.require("id", &p.ID); err != nil {
		return nil, fmt.Errorf("creating partner %s: %w", name, err)
	}
	if err := created.require("name", &p.Name); err != nil {
		return nil, fmt.Errorf("creating partner %s: %w", name, err)
	}
	return c.NewPartner(p.ID, p.Name), nil
}

// GetPartners returns an empty slice when the response has no partners key.
func (c *Client) GetPartners(ctx context.Context) ([]*Partner, error) {
	obj, err := c.call(ctx, http.MethodGet, c.auth.endpoint("/v1/admin/partner"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing partners: %w", err)
	}

	var entries []partnerDTO
	if _, err := obj.optional("partners", &entries); err != nil {
		return nil, fmt.Errorf("listing partners: %w", err)
	}

	partners := make([]*Partner, 0, len(entries))
	for _, e := range entries {
		partners = append(partners, c.NewPartner(e.ID, e.Name))
	}
	return partners, nil
}

// =============================================================================
// Domains
// =============================================================================

// CreateDomain registers domainName, under partner when one is given. Only
// Status and Nameservers are populated; call LoadDnssecDetails for the rest.
func (c *Client) CreateDomain(ctx context.Context, domainName string, partner *Partner) (*Domain, error) {
	var body []byte
	if partner != nil {
		var err error
		body, err = encodeBody(createDomainRequest{PartnerID: partner.ID})
		if err != nil {
			return nil, err
		}
	}

	obj, err := c.call(ctx, http.MethodPost, c.auth.endpoint("/v1/partner/domain/%s", domainName), body)
	if err != nil {
		return nil, fmt.Errorf("creating domain %s: %w", domainName, err)
	}

	d := c.NewDomain(domainName)
	if err := obj.require("status", &d.Status); err != nil {
		return nil, fmt.Errorf("creating domain %s: %w", domainName, err)
	}
	nameservers, err := obj.list("nameservers")
	if err != nil {
		return nil, fmt.Errorf("creating domain %s: %w", domainName, err)
	}
	d.Nameservers = append(d.Nameservers, textValues(nameservers)...)
	return d, nil
}

// GetDomains lists every domain and loads its status and DNSSEC details, one
// list call plus two calls per domain. Results keep the list order; the first
// enrichment failure aborts the whole call.
func (c *Client) GetDomains(ctx context.Context) ([]*Domain, error) {
	obj, err := c.call(ctx, http.MethodGet, c.auth.endpoint("/api/domain"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	var entries []domainEntryDTO
	if _, err := obj.optional("domains", &entries); err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	domains := make([]*Domain, 0, len(entries))
	for _, e := range entries {
		domains = append(domains, c.NewDomain(e.DomainName))
	}

	if err := c.enrichDomains(ctx, domains); err != nil {
		return nil, err
	}
	return domains, nil
}

func (c *Client) enrichDomains(ctx context.Context, domains []*Domain) error {
	if c.domainConcurrency < 2 {
		for _, d := range domains {
			if err := enrichDomain(ctx, d); err != nil {
				return err
			}
		}
		return nil
	}

	// Each goroutine owns exactly one Domain.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.domainConcurrency)
	for _, d := range domains {
		g.Go(func() error {
			return enrichDomain(gctx, d)
		})
	}
	return g.Wait()
}

func enrichDomain(ctx context.Context, d *Domain) error {
	if err := d.LoadStatus(ctx); err != nil {
		return err
	}
	return d.LoadDnssecDetails(ctx)
}
