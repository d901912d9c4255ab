package netki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	dErrors "netki/pkg/domain-errors"
	"netki/pkg/requestor"
)

// nextRollLayouts are tried in order when parsing nextroll_date.
var nextRollLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Domain mirrors a partner domain. Name is fixed at construction and keys
// every URL.
//
// DsRecords and Nameservers are appended to by the load operations and never
// cleared, so loading twice duplicates their entries.
type Domain struct {
	entity
	name string

	Status              string
	DelegationStatus    bool
	DelegationMessage   string
	WalletNameCount     int
	NextRoll            time.Time
	DsRecords           []string
	Nameservers         []string
	PublicKeySigningKey string
}

// NewDomain returns a Domain that has not been loaded.
func NewDomain(name string, auth AuthContext, req requestor.Requestor) *Domain {
	return &Domain{
		entity:      newEntity(auth, req),
		name:        name,
		DsRecords:   []string{},
		Nameservers: []string{},
	}
}

func (d *Domain) Name() string {
	return d.name
}

// Delete removes the domain. The response body is discarded.
func (d *Domain) Delete(ctx context.Context) error {
	if _, err := d.call(ctx, http.MethodDelete, d.endpoint("/v1/partner/domain/%s", d.name), nil); err != nil {
		return fmt.Errorf("deleting domain %s: %w", d.name, err)
	}
	return nil
}

// LoadStatus fetches status, delegation and wallet name count. Every field is
// required in the response.
func (d *Domain) LoadStatus(ctx context.Context) error {
	resp, err := d.call(ctx, http.MethodGet, d.endpoint("/v1/partner/domain/%s", d.name), nil)
	if err != nil {
		return fmt.Errorf("loading status for domain %s: %w", d.name, err)
	}

	obj, err := decodeObject(resp)
	if err != nil {
		return fmt.Errorf("loading status for domain %s: %w", d.name, err)
	}

	var (
		status            string
		delegationStatus  bool
		delegationMessage string
		walletNameCount   int
	)
	for _, f := range []struct {
		key string
		dst any
	}{
		{"status", &status},
		{"delegation_status", &delegationStatus},
		{"delegation_message", &delegationMessage},
		{"wallet_name_count", &walletNameCount},
	} {
		if err := obj.require(f.key, f.dst); err != nil {
			return fmt.Errorf("loading status for domain %s: %w", d.name, err)
		}
	}

	d.Status = status
	d.DelegationStatus = delegationStatus
	d.DelegationMessage = delegationMessage
	d.WalletNameCount = walletNameCount
	return nil
}

// LoadDnssecDetails applies whichever DNSSEC fields the response carries.
// Scalars overwrite; ds_records and nameservers are appended.
func (d *Domain) LoadDnssecDetails(ctx context.Context) error {
	resp, err := d.call(ctx, http.MethodGet, d.endpoint("/v1/partner/domain/dnssec/%s", d.name), nil)
	if err != nil {
		return fmt.Errorf("loading dnssec details for domain %s: %w", d.name, err)
	}

	if err := d.applyDnssec(resp); err != nil {
		return fmt.Errorf("loading dnssec details for domain %s: %w", d.name, err)
	}
	return nil
}

func (d *Domain) applyDnssec(resp string) error {
	obj, err := decodeObject(resp)
	if err != nil {
		return err
	}

	var (
		pksk        string
		dsRecords   []json.RawMessage
		nameservers []json.RawMessage
		nextRoll    string
	)
	hasPKSK, err := obj.optional("public_key_signing_key", &pksk)
	if err != nil {
		return err
	}
	hasDS, err := obj.optional("ds_records", &dsRecords)
	if err != nil {
		return err
	}
	hasNS, err := obj.optional("nameservers", &nameservers)
	if err != nil {
		return err
	}
	hasRoll, err := obj.optional("nextroll_date", &nextRoll)
	if err != nil {
		return err
	}

	var rollAt time.Time
	if hasRoll {
		rollAt, err = parseNextRoll(nextRoll)
		if err != nil {
			return err
		}
	}

	if hasPKSK {
		d.PublicKeySigningKey = pksk
	}
	if hasDS {
		d.DsRecords = append(d.DsRecords, textValues(dsRecords)...)
	}
	if hasNS {
		d.Nameservers = append(d.Nameservers, textValues(nameservers)...)
	}
	if hasRoll {
		d.NextRoll = rollAt
	}
	return nil
}

func parseNextRoll(value string) (time.Time, error) {
	for _, layout := range nextRollLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, dErrors.New(dErrors.CodeParse, fmt.Sprintf("unrecognized nextroll_date %q", value))
}
