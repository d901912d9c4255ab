package fakeapi

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"netki/pkg/platform/sentinel"
)

type PartnerRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DomainRecord struct {
	Name                string
	PartnerID           string
	Status              string
	DelegationStatus    bool
	DelegationMessage   string
	PublicKeySigningKey string
	DsRecords           []string
	Nameservers         []string
	NextRoll            time.Time
}

type WalletRecord struct {
	Currency      string `json:"currency"`
	WalletAddress string `json:"wallet_address"`
}

type WalletNameRecord struct {
	ID         string         `json:"id"`
	DomainName string         `json:"domain_name"`
	Name       string         `json:"name"`
	ExternalID string         `json:"external_id"`
	Wallets    []WalletRecord `json:"wallets"`
}

// InMemoryStore holds the fake service's state.
type InMemoryStore struct {
	mu          sync.RWMutex
	now         func() time.Time
	partners    map[string]PartnerRecord
	domains     map[string]*DomainRecord
	walletNames map[string]WalletNameRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		now:         time.Now,
		partners:    make(map[string]PartnerRecord),
		domains:     make(map[string]*DomainRecord),
		walletNames: make(map[string]WalletNameRecord),
	}
}

func (s *InMemoryStore) CreatePartner(name string) (PartnerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partners[name]; ok {
		return PartnerRecord{}, sentinel.ErrConflict
	}
	p := PartnerRecord{ID: uuid.NewString(), Name: name}
	s.partners[name] = p
	return p, nil
}

func (s *InMemoryStore) ListPartners() []PartnerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PartnerRecord, 0, len(s.partners))
	for _, p := range s.partners {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *InMemoryStore) DeletePartner(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partners[name]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.partners, name)
	return nil
}

func (s *InMemoryStore) partnerByID(id string) bool {
	for _, p := range s.partners {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) CreateDomain(name, partnerID string) (DomainRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.domains[name]; ok {
		return DomainRecord{}, sentinel.ErrConflict
	}
	if partnerID != "" && !s.partnerByID(partnerID) {
		return DomainRecord{}, sentinel.ErrNotFound
	}
	d := &DomainRecord{
		Name:                name,
		PartnerID:           partnerID,
		Status:              "ACTIVE",
		DelegationStatus:    false,
		DelegationMessage:   "delegation pending",
		PublicKeySigningKey: "257 3 8 " + uuid.NewString(),
		DsRecords:           []string{name + ". IN DS 12345 8 2 " + uuid.NewString()},
		Nameservers:         []string{"ns1.netki.com", "ns2.netki.com"},
		NextRoll:            s.now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second),
	}
	s.domains[name] = d
	return *d, nil
}

func (s *InMemoryStore) Domain(name string) (DomainRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.domains[name]
	if !ok {
		return DomainRecord{}, 0, sentinel.ErrNotFound
	}
	count := 0
	for _, wn := range s.walletNames {
		if wn.DomainName == name {
			count++
		}
	}
	return *d, count, nil
}

func (s *InMemoryStore) ListDomains() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.domains))
	for name := range s.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *InMemoryStore) DeleteDomain(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.domains[name]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.domains, name)
	for id, wn := range s.walletNames {
		if wn.DomainName == name {
			delete(s.walletNames, id)
		}
	}
	return nil
}

// CreateWalletName assigns an id and stores wn. The domain must exist.
func (s *InMemoryStore) CreateWalletName(wn WalletNameRecord) (WalletNameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.domains[wn.DomainName]; !ok {
		return WalletNameRecord{}, sentinel.ErrNotFound
	}
	for _, existing := range s.walletNames {
		if existing.DomainName == wn.DomainName && existing.Name == wn.Name {
			return WalletNameRecord{}, sentinel.ErrConflict
		}
	}
	wn.ID = uuid.NewString()
	s.walletNames[wn.ID] = wn
	return wn, nil
}

func (s *InMemoryStore) UpdateWalletName(wn WalletNameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.walletNames[wn.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.walletNames[wn.ID] = wn
	return nil
}

func (s *InMemoryStore) DeleteWalletName(domainName, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wn, ok := s.walletNames[id]
	if !ok || wn.DomainName != domainName {
		return sentinel.ErrNotFound
	}
	delete(s.walletNames, id)
	return nil
}

// ListWalletNames filters on domain and external id when they are non-empty.
func (s *InMemoryStore) ListWalletNames(domainName, externalID string) []WalletNameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]WalletNameRecord, 0)
	for _, wn := range s.walletNames {
		if domainName != "" && wn.DomainName != domainName {
			continue
		}
		if externalID != "" && wn.ExternalID != externalID {
			continue
		}
		out = append(out, wn)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DomainName != out[j].DomainName {
			return out[i].DomainName < out[j].DomainName
		}
		return out[i].Name < out[j].Name
	})
	return out
}
