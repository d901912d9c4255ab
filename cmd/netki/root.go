package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"netki/internal/platform/config"
	"netki/internal/platform/logger"
	"netki/pkg/netki"
	"netki/pkg/platform/metrics"
	"netki/pkg/requestor"
)

// app holds what the subcommands share once the root flags are parsed.
type app struct {
	cfg         config.Client
	out         io.Writer
	errOut      io.Writer
	dumpMetrics bool

	// httpClient overrides the timeout-bound client built from cfg.
	httpClient *http.Client

	logger   *slog.Logger
	registry *prometheus.Registry
	client   *netki.Client
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{cfg: config.FromEnv(), out: out, errOut: errOut}
	return a.command()
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "netki",
		Short:        "Manage partners, domains and wallet names through the Netki partner API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsClient(cmd) {
				return nil
			}
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.dumpMetrics || a.registry == nil {
				return nil
			}
			return a.writeMetrics()
		},
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfg.APIURL, "api-url", a.cfg.APIURL, "partner API base URL (NETKI_API_URL)")
	flags.StringVar(&a.cfg.APIKey, "api-key", a.cfg.APIKey, "partner API key (NETKI_API_KEY)")
	flags.StringVar(&a.cfg.PartnerID, "partner-id", a.cfg.PartnerID, "partner id (NETKI_PARTNER_ID)")
	flags.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "per-request timeout (NETKI_TIMEOUT)")
	flags.IntVar(&a.cfg.DomainConcurrency, "domain-concurrency", a.cfg.DomainConcurrency, "domains enriched in parallel by 'domains list' (NETKI_DOMAIN_CONCURRENCY)")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "debug, info, warn or error (NETKI_LOG_LEVEL)")
	flags.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "text or json (NETKI_LOG_FORMAT)")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "print request metrics to stderr on exit")

	cmd.AddCommand(
		a.domainsCommand(),
		a.partnersCommand(),
		a.walletNamesCommand(),
	)
	return cmd
}

// needsClient is false for cobra's built-in help and completion commands.
func needsClient(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func (a *app) setup() error {
	auth := netki.NewAuthContext(a.cfg.APIURL, a.cfg.APIKey, a.cfg.PartnerID)
	if err := auth.Validate(); err != nil {
		return err
	}

	a.logger = logger.New(a.errOut, a.cfg.LogLevel, a.cfg.LogFormat)
	a.registry = prometheus.NewRegistry()

	httpClient := a.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: a.cfg.Timeout}
	}

	req := requestor.New(
		requestor.WithHTTPClient(httpClient),
		requestor.WithLogger(a.logger),
		requestor.WithMetrics(metrics.New(a.registry)),
	)

	client, err := netki.NewClient(auth, req,
		netki.WithLogger(a.logger),
		netki.WithDomainConcurrency(a.cfg.DomainConcurrency),
	)
	if err != nil {
		return err
	}
	a.client = client
	a.logger.Debug("client configured",
		"api_url", auth.APIURL(),
		"partner_id", auth.PartnerID(),
		"timeout", a.cfg.Timeout.String(),
	)
	return nil
}

func (a *app) writeMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func (a *app) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(out))
	return err
}

// =============================================================================
// Output views
// =============================================================================

type partnerView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newPartnerView(p *netki.Partner) partnerView {
	return partnerView{ID: p.ID, Name: p.Name}
}

type domainView struct {
	Name                string     `json:"domain_name"`
	Status              string     `json:"status,omitempty"`
	DelegationStatus    bool       `json:"delegation_status"`
	DelegationMessage   string     `json:"delegation_message,omitempty"`
	WalletNameCount     int        `json:"wallet_name_count"`
	NextRoll            *time.Time `json:"nextroll_date,omitempty"`
	DsRecords           []string   `json:"ds_records"`
	Nameservers         []string   `json:"nameservers"`
	PublicKeySigningKey string     `json:"public_key_signing_key,omitempty"`
}

func newDomainView(d *netki.Domain) domainView {
	v := domainView{
		Name:                d.Name(),
		Status:              d.Status,
		DelegationStatus:    d.DelegationStatus,
		DelegationMessage:   d.DelegationMessage,
		WalletNameCount:     d.WalletNameCount,
		DsRecords:           d.DsRecords,
		Nameservers:         d.Nameservers,
		PublicKeySigningKey: d.PublicKeySigningKey,
	}
	if !d.NextRoll.IsZero() {
		roll := d.NextRoll
		v.NextRoll = &roll
	}
	return v
}

type walletNameView struct {
	ID         string            `json:"id"`
	DomainName string            `json:"domain_name"`
	Name       string            `json:"name"`
	ExternalID string            `json:"external_id"`
	Wallets    map[string]string `json:"wallets"`
}

func newWalletNameView(wn *netki.WalletName) walletNameView {
	wallets := make(map[string]string)
	for _, currency := range wn.UsedCurrencies() {
		wallets[currency], _ = wn.WalletAddress(currency)
	}
	return walletNameView{
		ID:         wn.ID,
		DomainName: wn.DomainName,
		Name:       wn.Name,
		ExternalID: wn.ExternalID,
		Wallets:    wallets,
	}
}
