package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netki/internal/fakeapi"
	"netki/internal/platform/config"
)

type cliHarness struct {
	t      *testing.T
	store  *fakeapi.InMemoryStore
	newApp func() (*app, *bytes.Buffer, *bytes.Buffer)
}

func newHarness(t *testing.T) *cliHarness {
	srv, store := fakeapi.NewTestServer(t, "api_key", "partner_id")
	return &cliHarness{
		t:     t,
		store: store,
		newApp: func() (*app, *bytes.Buffer, *bytes.Buffer) {
			out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
			return &app{
				cfg: config.Client{
					APIURL:            srv.URL,
					APIKey:            "api_key",
					PartnerID:         "partner_id",
					Timeout:           5 * time.Second,
					DomainConcurrency: 1,
					LogLevel:          "error",
					LogFormat:         "text",
				},
				out:        out,
				errOut:     errOut,
				httpClient: srv.Client(),
			}, out, errOut
		},
	}
}

// run executes one command line and returns stdout and stderr.
func (h *cliHarness) run(args ...string) (string, string, error) {
	h.t.Helper()
	a, out, errOut := h.newApp()
	cmd := a.command()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestPartnerCommands(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("partners", "create", "SubPartner")
	require.NoError(t, err)
	var created partnerView
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "SubPartner", created.Name)
	assert.NotEmpty(t, created.ID)

	out, _, err = h.run("partners", "list")
	require.NoError(t, err)
	var listed []partnerView
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.Equal(t, []partnerView{created}, listed)

	_, _, err = h.run("partners", "delete", "SubPartner")
	require.NoError(t, err)
	assert.Empty(t, h.store.ListPartners())
}

func TestDomainCommands(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.run("domains", "create", "example.com")
	require.NoError(t, err)
	var created domainView
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "example.com", created.Name)
	assert.Equal(t, "ACTIVE", created.Status)

	out, _, err = h.run("domains", "dnssec", "example.com")
	require.NoError(t, err)
	var dnssec domainView
	require.NoError(t, json.Unmarshal([]byte(out), &dnssec))
	assert.NotEmpty(t, dnssec.PublicKeySigningKey)
	assert.NotNil(t, dnssec.NextRoll)

	out, _, err = h.run("--domain-concurrency", "2", "domains", "list")
	require.NoError(t, err)
	var listed []domainView
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "delegation pending", listed[0].DelegationMessage)

	_, _, err = h.run("domains", "delete", "example.com")
	require.NoError(t, err)
	assert.Empty(t, h.store.ListDomains())

	_, _, err = h.run("domains", "status", "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain example.com not found")
}

func TestWalletNameCommands(t *testing.T) {
	h := newHarness(t)
	_, err := h.store.CreateDomain("example.com", "")
	require.NoError(t, err)

	out, _, err := h.run("walletnames", "save", "example.com", "wallet",
		"--external-id", "ext", "--wallet", "btc=1btc", "--wallet", "ltc=Lltc")
	require.NoError(t, err)
	var saved walletNameView
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, map[string]string{"btc": "1btc", "ltc": "Lltc"}, saved.Wallets)

	_, _, err = h.run("wn", "save", "example.com", "wallet", "--id", saved.ID, "--wallet", "btc=1new")
	require.NoError(t, err)

	out, _, err = h.run("walletnames", "list", "--domain", "example.com")
	require.NoError(t, err)
	var listed []walletNameView
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, map[string]string{"btc": "1new"}, listed[0].Wallets)

	_, _, err = h.run("walletnames", "delete", "example.com", saved.ID)
	require.NoError(t, err)
	assert.Empty(t, h.store.ListWalletNames("", ""))

	_, _, err = h.run("walletnames", "save", "example.com", "wallet", "--wallet", "btc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want currency=address")
}

func TestMissingCredentials(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("--api-key", "", "partners", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestMetricsDump(t *testing.T) {
	h := newHarness(t)

	_, errOut, err := h.run("--metrics", "partners", "list")
	require.NoError(t, err)
	assert.Contains(t, errOut, `netki_requests_total{method="GET",outcome="success"} 1`)
}
