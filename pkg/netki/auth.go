// Package netki is a client for the Netki partner API: partners, domains and
// wallet names.
package netki

import (
	"fmt"
	"net/url"
	"strings"

	dErrors "netki/pkg/domain-errors"
)

// DefaultAPIURL is the production partner API.
const DefaultAPIURL = "https://api.netki.com"

// AuthContext addresses and authenticates every call made by an entity.
type AuthContext struct {
	apiURL    string
	apiKey    string
	partnerID string
}

// NewAuthContext returns a configured AuthContext.
func NewAuthContext(apiURL, apiKey, partnerID string) AuthContext {
	var a AuthContext
	a.Configure(apiURL, apiKey, partnerID)
	return a
}

// Configure sets all three values at once. A trailing slash on apiURL is dropped.
func (a *AuthContext) Configure(apiURL, apiKey, partnerID string) {
	a.apiURL = strings.TrimRight(apiURL, "/")
	a.apiKey = apiKey
	a.partnerID = partnerID
}

func (a AuthContext) APIURL() string    { return a.apiURL }
func (a AuthContext) APIKey() string    { return a.apiKey }
func (a AuthContext) PartnerID() string { return a.partnerID }

// Validate reports the first missing value.
func (a AuthContext) Validate() error {
	switch {
	case a.apiURL == "":
		return dErrors.New(dErrors.CodeInvalidArgument, "api url is required")
	case a.apiKey == "":
		return dErrors.New(dErrors.CodeInvalidArgument, "api key is required")
	case a.partnerID == "":
		return dErrors.New(dErrors.CodeInvalidArgument, "partner id is required")
	}
	return nil
}

// endpoint joins the base URL with a path. Path segments passed as args are
// escaped.
func (a AuthContext) endpoint(format string, segments ...string) string {
	args := make([]any, len(segments))
	for i, s := range segments {
		args[i] = url.PathEscape(s)
	}
	return a.apiURL + fmt.Sprintf(format, args...)
}
