package netki

import (
	"encoding/json"
	"fmt"

	dErrors "netki/pkg/domain-errors"
)

// Request DTOs.

type walletDTO struct {
	Currency      string `json:"currency"`
	WalletAddress string `json:"wallet_address"`
}

type walletNameDTO struct {
	ID         string      `json:"id,omitempty"`
	DomainName string      `json:"domain_name"`
	Name       string      `json:"name"`
	ExternalID string      `json:"external_id"`
	Wallets    []walletDTO `json:"wallets"`
}

type walletNameRefDTO struct {
	DomainName string `json:"domain_name"`
	ID         string `json:"id"`
}

type walletNamesRequest[T any] struct {
	WalletNames []T `json:"wallet_names"`
}

type createDomainRequest struct {
	PartnerID string `json:"partner_id"`
}

// Response DTOs.

type partnerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type domainEntryDTO struct {
	DomainName string `json:"domain_name"`
}

// object is a decoded response whose fields are checked one by one, so a
// missing key can be told apart from a zero value.
type object map[string]json.RawMessage

func decodeObject(body string) (object, error) {
	var obj object
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeParse, "failed to parse response")
	}
	if obj == nil {
		return nil, dErrors.New(dErrors.CodeParse, "response is not a JSON object")
	}
	return obj, nil
}

// has reports whether key is present and not JSON null.
func (o object) has(key string) bool {
	raw, ok := o[key]
	return ok && string(raw) != "null"
}

// require decodes key into dst, failing when the key is absent, null or of
// the wrong type.
func (o object) require(key string, dst any) error {
	raw, ok := o[key]
	if !ok {
		return dErrors.New(dErrors.CodeParse, fmt.Sprintf("response is missing %q", key))
	}
	if string(raw) == "null" {
		return dErrors.New(dErrors.CodeParse, fmt.Sprintf("response field %q is null", key))
	}
	return decodeField(key, raw, dst)
}

// optional decodes key into dst when present and reports whether it did.
func (o object) optional(key string, dst any) (bool, error) {
	if !o.has(key) {
		return false, nil
	}
	return true, decodeField(key, o[key], dst)
}

func decodeField(key string, raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return dErrors.Wrap(err, dErrors.CodeParse, fmt.Sprintf("response field %q has the wrong type", key))
	}
	return nil
}

// text returns key rendered as text, or "" when absent or null.
func (o object) text(key string) string {
	if !o.has(key) {
		return ""
	}
	return textValues([]json.RawMessage{o[key]})[0]
}

// list decodes key as an array of raw elements; absent or null yields nil.
func (o object) list(key string) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if _, err := o.optional(key, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// objects decodes key as an array of objects; absent or null yields nil.
func (o object) objects(key string) ([]object, error) {
	var entries []object
	if _, err := o.optional(key, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// textValues renders each element of a JSON array as text: strings by value,
// anything else by its raw JSON.
func textValues(raw []json.RawMessage) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		out = append(out, string(r))
	}
	return out
}

func encodeBody(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode request body")
	}
	return body, nil
}
