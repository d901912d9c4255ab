package netki

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	dErrors "netki/pkg/domain-errors"
	"netki/pkg/requestor/mocks"
)

// =============================================================================
// Client Test Suite
// =============================================================================
// The client builds list and create calls and turns their responses into
// entities that share its auth context and requestor.

type ClientSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	req    *mocks.MockRequestor
	client *Client
	ctx    context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.setup()
}

func (s *ClientSuite) SetupSubTest() {
	s.setup()
}

func (s *ClientSuite) setup() {
	s.ctrl = gomock.NewController(s.T())
	s.req = mocks.NewMockRequestor(s.ctrl)
	client, err := NewClient(testAuth(), s.req)
	s.Require().NoError(err)
	s.client = client
	s.ctx = context.Background()
}

func (s *ClientSuite) expect(method, path string, body gomock.Matcher) *gomock.Call {
	return s.req.EXPECT().AuthenticatedRequest(gomock.Any(), testAPIKey, testPartnerID, testAPIURL+path, method, body)
}

func (s *ClientSuite) TestNewClient() {
	s.Run("nil requestor returns error", func() {
		_, err := NewClient(testAuth(), nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	s.Run("empty url uses the default service", func() {
		c, err := NewClient(NewAuthContext("", "k", "p"), s.req)
		s.Require().NoError(err)
		s.Equal(DefaultAPIURL, c.Auth().APIURL())
		s.Equal("k", c.Auth().APIKey())
		s.Equal("p", c.Auth().PartnerID())
	})

	s.Run("entities inherit the client context", func() {
		d := s.client.NewDomain("example.com")
		s.Equal("example.com", d.Name())
		s.Equal(testAPIURL, d.APIURL())

		wn := s.client.CreateWalletName("example.com", "wallet", "ext")
		s.Empty(wn.ID)
		s.Equal("example.com", wn.DomainName)
		s.Equal("wallet", wn.Name)
		s.Equal("ext", wn.ExternalID)
		s.Empty(wn.UsedCurrencies())
	})
}

// =============================================================================
// Wallet names
// =============================================================================

func (s *ClientSuite) TestGetWalletNames() {
	listing := `{"success":true,"wallet_name_count":2,"wallet_names":[` +
		`{"id":"a","domain_name":"example.com","name":"one","external_id":"ext","wallets":[{"currency":"btc","wallet_address":"1btc"}]},` +
		`{"id":"b","domain_name":"example.com","name":"two","external_id":"ext","wallets":[]}]}`

	s.Run("no filters", func() {
		s.expect("GET", "/v1/partner/walletname", nilBody{}).Return(listing, nil)

		names, err := s.client.GetWalletNames(s.ctx, "", "")
		s.Require().NoError(err)
		s.Require().Len(names, 2)
		s.Equal("a", names[0].ID)
		s.Equal("one", names[0].Name)
		s.Equal("ext", names[0].ExternalID)
		addr, ok := names[0].WalletAddress("btc")
		s.True(ok)
		s.Equal("1btc", addr)
		s.Empty(names[1].UsedCurrencies())
	})

	s.Run("domain filter only", func() {
		s.expect("GET", "/v1/partner/walletname?domain_name=example.com", nilBody{}).Return(listing, nil)

		_, err := s.client.GetWalletNames(s.ctx, "example.com", "")
		s.NoError(err)
	})

	s.Run("external id filter only", func() {
		s.expect("GET", "/v1/partner/walletname?external_id=ext", nilBody{}).Return(listing, nil)

		_, err := s.client.GetWalletNames(s.ctx, "", "ext")
		s.NoError(err)
	})

	s.Run("both filters are escaped", func() {
		s.expect("GET", "/v1/partner/walletname?domain_name=example.com&external_id=a+b%26c", nilBody{}).Return(listing, nil)

		_, err := s.client.GetWalletNames(s.ctx, "example.com", "a b&c")
		s.NoError(err)
	})

	s.Run("zero count skips the list", func() {
		s.expect("GET", "/v1/partner/walletname", nilBody{}).
			Return(`{"wallet_name_count":0,"wallet_names":"not a list"}`, nil)

		names, err := s.client.GetWalletNames(s.ctx, "", "")
		s.Require().NoError(err)
		s.NotNil(names)
		s.Empty(names)
	})

	s.Run("missing count is a parse error", func() {
		s.expect("GET", "/v1/partner/walletname", nilBody{}).Return(`{"wallet_names":[]}`, nil)

		_, err := s.client.GetWalletNames(s.ctx, "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeParse))
	})

	s.Run("non-string fields are read as text", func() {
		s.expect("GET", "/v1/partner/walletname", nilBody{}).
			Return(`{"wallet_name_count":1,"wallet_names":[{"id":17,"domain_name":"example.com","name":"one","external_id":42,"wallets":[{"currency":"btc","wallet_address":"1btc"}]}]}`, nil)

		names, err := s.client.GetWalletNames(s.ctx, "", "")
		s.Require().NoError(err)
		s.Require().Len(names, 1)
		s.Equal("17", names[0].ID)
		s.Equal("42", names[0].ExternalID)
		s.Equal([]string{"btc"}, names[0].UsedCurrencies())
	})

	s.Run("entry without wallets has no currencies", func() {
		s.expect("GET", "/v1/partner/walletname", nilBody{}).
			Return(`{"wallet_name_count":1,"wallet_names":[{"id":"a","domain_name":"example.com","name":"one"}]}`, nil)

		names, err := s.client.GetWalletNames(s.ctx, "", "")
		s.Require().NoError(err)
		s.Require().Len(names, 1)
		s.Empty(names[0].ExternalID)
		s.Empty(names[0].UsedCurrencies())
	})

	s.Run("null list with a count is a parse error", func() {
		s.expect("GET", "/v1/partner/walletname", nilBody{}).
			Return(`{"wallet_name_count":1,"wallet_names":null}`, nil)

		_, err := s.client.GetWalletNames(s.ctx, "", "")
		s.True(dErrors.HasCode(err, dErrors.CodeParse))
	})
}

// =============================================================================
// Partners
// =============================================================================

func (s *ClientSuite) TestCreatePartner() {
	s.Run("reads the nested partner", func() {
		s.expect("POST", "/v1/admin/partner/SubPartner", nilBody{}).
			Return(`{"partner":{"id":"P1","name":"SubPartner"},"success":true}`, nil)

		p, err := s.client.CreatePartner(s.ctx, "SubPartner")
		s.Require().NoError(err)
		s.Equal("P1", p.ID)
		s.Equal("SubPartner", p.Name)
	})

	s.Run("missing partner is a parse error", func() {
		s.expect("POST", "/v1/admin/partner/SubPartner", nilBody{}).Return(`{"success":true}`, nil)

		_, err := s.client.CreatePartner(s.ctx, "SubPartner")
		s.True(dErrors.HasCode(err, dErrors.CodeParse))
	})
}

func (s *ClientSuite) TestGetPartners() {
	s.Run("lists partners in response order", func() {
		s.expect("GET", "/v1/admin/partner", nilBody{}).
			Return(`{"partners":[{"id":"2","name":"b"},{"id":"1","name":"a"}]}`, nil)

		partners, err := s.client.GetPartners(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(partners, 2)
		s.Equal("b", partners[0].Name)
		s.Equal("1", partners[1].ID)
	})

	s.Run("absent key is an empty list", func() {
		s.expect("GET", "/v1/admin/partner", nilBody{}).Return(`{"success":true}`, nil)

		partners, err := s.client.GetPartners(s.ctx)
		s.Require().NoError(err)
		s.NotNil(partners)
		s.Empty(partners)
	})
}

// =============================================================================
// Domains
// =============================================================================

func (s *ClientSuite) TestCreateDomain() {
	s.Run("under a partner", func() {
		s.expect("POST", "/v1/partner/domain/example.com", JSONBody(`{"partner_id":"P1"}`)).
			Return(`{"nameservers":["ns1","ns2"],"status":"PENDING","success":true}`, nil)

		d, err := s.client.CreateDomain(s.ctx, "example.com", s.client.NewPartner("P1", "SubPartner"))
		s.Require().NoError(err)
		s.Equal("example.com", d.Name())
		s.Equal("PENDING", d.Status)
		s.Equal([]string{"ns1", "ns2"}, d.Nameservers)
		s.Empty(d.DsRecords)
		s.Empty(d.PublicKeySigningKey)
		s.True(d.NextRoll.IsZero())
	})

	s.Run("without a partner sends no body", func() {
		s.expect("POST", "/v1/partner/domain/example.com", nilBody{}).Return(`{"status":"PENDING"}`, nil)

		d, err := s.client.CreateDomain(s.ctx, "example.com", nil)
		s.Require().NoError(err)
		s.Equal("PENDING", d.Status)
		s.Empty(d.Nameservers)
	})

	s.Run("missing status is a parse error", func() {
		s.expect("POST", "/v1/partner/domain/example.com", nilBody{}).Return(`{"nameservers":[]}`, nil)

		_, err := s.client.CreateDomain(s.ctx, "example.com", nil)
		s.True(dErrors.HasCode(err, dErrors.CodeParse))
	})

	s.Run("non-string nameservers keep their raw text", func() {
		s.expect("POST", "/v1/partner/domain/example.com", nilBody{}).
			Return(`{"nameservers":[{"host":"ns1"},"ns2"],"status":"PENDING"}`, nil)

		d, err := s.client.CreateDomain(s.ctx, "example.com", nil)
		s.Require().NoError(err)
		s.Equal([]string{`{"host":"ns1"}`, "ns2"}, d.Nameservers)
	})
}

func (s *ClientSuite) expectDomain(name string) {
	s.expect("GET", "/v1/partner/domain/"+name, nilBody{}).
		Return(`{"delegation_message":"`+name+`","delegation_status":true,"status":"ACTIVE","wallet_name_count":1}`, nil)
	s.expect("GET", "/v1/partner/domain/dnssec/"+name, nilBody{}).
		Return(`{"ds_records":["ds-`+name+`"],"nameservers":["ns1"],"public_key_signing_key":"pk-`+name+`"}`, nil)
}

func (s *ClientSuite) TestGetDomains() {
	listing := `{"domains":[{"domain_name":"a.com"},{"domain_name":"b.com"},{"domain_name":"c.com"}],"success":true}`

	s.Run("loads status and dnssec for each domain", func() {
		s.expect("GET", "/api/domain", nilBody{}).Return(listing, nil)
		for _, name := range []string{"a.com", "b.com", "c.com"} {
			s.expectDomain(name)
		}

		domains, err := s.client.GetDomains(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(domains, 3)
		for i, name := range []string{"a.com", "b.com", "c.com"} {
			s.Equal(name, domains[i].Name())
			s.Equal("ACTIVE", domains[i].Status)
			s.Equal(name, domains[i].DelegationMessage)
			s.Equal([]string{"ds-" + name}, domains[i].DsRecords)
			s.Equal("pk-"+name, domains[i].PublicKeySigningKey)
		}
	})

	s.Run("bounded concurrency keeps list order", func() {
		client, err := NewClient(testAuth(), s.req, WithDomainConcurrency(2))
		s.Require().NoError(err)

		s.expect("GET", "/api/domain", nilBody{}).Return(listing, nil)
		for _, name := range []string{"a.com", "b.com", "c.com"} {
			s.expectDomain(name)
		}

		domains, err := client.GetDomains(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(domains, 3)
		for i, name := range []string{"a.com", "b.com", "c.com"} {
			s.Equal(name, domains[i].Name())
			s.Equal(name, domains[i].DelegationMessage)
		}
	})

	s.Run("no domains key is an empty list", func() {
		s.expect("GET", "/api/domain", nilBody{}).Return(`{"success":true}`, nil)

		domains, err := s.client.GetDomains(s.ctx)
		s.Require().NoError(err)
		s.Empty(domains)
	})

	s.Run("first enrichment failure aborts", func() {
		s.expect("GET", "/api/domain", nilBody{}).Return(listing, nil)
		s.expect("GET", "/v1/partner/domain/a.com", nilBody{}).
			Return("", dErrors.NewAPI(500, "boom", nil))

		domains, err := s.client.GetDomains(s.ctx)
		s.Require().Error(err)
		s.Nil(domains)
		s.True(dErrors.HasCode(err, dErrors.CodeAPI))
		s.Contains(err.Error(), "boom")
	})

	s.Run("list failure propagates", func() {
		s.expect("GET", "/api/domain", nilBody{}).Return("", dErrors.New(dErrors.CodeTransport, "refused"))

		_, err := s.client.GetDomains(s.ctx)
		s.True(dErrors.HasCode(err, dErrors.CodeTransport))
	})
}
