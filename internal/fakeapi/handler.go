// Package fakeapi is an in-memory implementation of the Netki partner API,
// used to exercise the SDK end to end without the real service.
package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"netki/internal/platform/middleware"
	"netki/pkg/platform/sentinel"
)

// NextRollLayout is how nextroll_date is rendered.
const NextRollLayout = "2006-01-02 15:04:05"

// Handler serves the partner API for a single partner credential.
type Handler struct {
	store     *InMemoryStore
	logger    *slog.Logger
	apiKey    string
	partnerID string
}

type Option func(h *Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// New creates a Handler that accepts only apiKey/partnerID.
func New(store *InMemoryStore, apiKey, partnerID string, opts ...Option) *Handler {
	h := &Handler{
		store:     store,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		apiKey:    apiKey,
		partnerID: partnerID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the partner API routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(chimiddleware.RequestID)
	api.Use(chimiddleware.Recoverer)
	api.Use(middleware.RequestLogger(h.logger))
	api.Use(middleware.RequirePartnerCredentials(h.apiKey, h.partnerID, h.logger))

	api.Get("/api/domain", h.handleListDomains)
	api.Route("/v1/partner/domain", func(r chi.Router) {
		r.Get("/dnssec/{name}", h.handleDnssec)
		r.Get("/{name}", h.handleDomainStatus)
		r.Post("/{name}", h.handleCreateDomain)
		r.Delete("/{name}", h.handleDeleteDomain)
	})
	api.Route("/v1/admin/partner", func(r chi.Router) {
		r.Get("/", h.handleListPartners)
		r.Post("/{name}", h.handleCreatePartner)
		r.Delete("/{name}", h.handleDeletePartner)
	})
	api.Route("/v1/partner/walletname", func(r chi.Router) {
		r.Get("/", h.handleListWalletNames)
		r.Post("/", h.handleCreateWalletNames)
		r.Put("/", h.handleUpdateWalletNames)
		r.Delete("/", h.handleDeleteWalletNames)
	})

	r.Mount("/", api)
}

// Router returns a chi router with the API registered.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// =============================================================================
// Domains
// =============================================================================

func (h *Handler) handleListDomains(w http.ResponseWriter, r *http.Request) {
	names := h.store.ListDomains()
	domains := make([]map[string]string, 0, len(names))
	for _, name := range names {
		domains = append(domains, map[string]string{"domain_name": name})
	}
	writeSuccess(w, http.StatusOK, map[string]any{"domains": domains})
}

func (h *Handler) handleCreateDomain(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req struct {
		PartnerID string `json:"partner_id"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
	}

	d, err := h.store.CreateDomain(name, req.PartnerID)
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		writeFailure(w, http.StatusConflict, fmt.Sprintf("domain %s already exists", name), nil)
		return
	case errors.Is(err, sentinel.ErrNotFound):
		writeFailure(w, http.StatusNotFound, fmt.Sprintf("partner %s not found", req.PartnerID), nil)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"domain_name": d.Name,
		"status":      d.Status,
		"nameservers": d.Nameservers,
	})
}

func (h *Handler) handleDomainStatus(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, count, err := h.store.Domain(name)
	if err != nil {
		writeFailure(w, http.StatusNotFound, fmt.Sprintf("domain %s not found", name), nil)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"status":             d.Status,
		"delegation_status":  d.DelegationStatus,
		"delegation_message": d.DelegationMessage,
		"wallet_name_count":  count,
	})
}

func (h *Handler) handleDnssec(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, _, err := h.store.Domain(name)
	if err != nil {
		writeFailure(w, http.StatusNotFound, fmt.Sprintf("domain %s not found", name), nil)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"public_key_signing_key": d.PublicKeySigningKey,
		"ds_records":             d.DsRecords,
		"nameservers":            d.Nameservers,
		"nextroll_date":          d.NextRoll.Format(NextRollLayout),
	})
}

func (h *Handler) handleDeleteDomain(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.store.DeleteDomain(name); err != nil {
		writeFailure(w, http.StatusNotFound, fmt.Sprintf("domain %s not found", name), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Partners
// =============================================================================

func (h *Handler) handleListPartners(w http.ResponseWriter, r *http.Request) {
	partners := h.store.ListPartners()
	if len(partners) == 0 {
		// The service omits the key entirely when there is nothing to list.
		writeSuccess(w, http.StatusOK, map[string]any{})
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"partners": partners})
}

func (h *Handler) handleCreatePartner(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, err := h.store.CreatePartner(name)
	if err != nil {
		writeFailure(w, http.StatusConflict, fmt.Sprintf("partner %s already exists", name), nil)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{"partner": p})
}

func (h *Handler) handleDeletePartner(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.store.DeletePartner(name); err != nil {
		writeFailure(w, http.StatusNotFound, fmt.Sprintf("partner %s not found", name), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Wallet names
// =============================================================================

type walletNamesRequest struct {
	WalletNames []WalletNameRecord `json:"wallet_names"`
}

func (h *Handler) handleListWalletNames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	walletNames := h.store.ListWalletNames(q.Get("domain_name"), q.Get("external_id"))
	for i := range walletNames {
		if walletNames[i].Wallets == nil {
			walletNames[i].Wallets = []WalletRecord{}
		}
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"wallet_name_count": len(walletNames),
		"wallet_names":      walletNames,
	})
}

func (h *Handler) handleCreateWalletNames(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWalletNames(w, r)
	if !ok {
		return
	}

	created := make([]map[string]string, 0, len(req.WalletNames))
	var failures []string
	for _, wn := range req.WalletNames {
		saved, err := h.store.CreateWalletName(wn)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s.%s: %v", wn.Name, wn.DomainName, err))
			continue
		}
		created = append(created, map[string]string{
			"id":          saved.ID,
			"domain_name": saved.DomainName,
			"name":        saved.Name,
		})
	}
	if len(failures) > 0 {
		writeFailure(w, http.StatusBadRequest, "wallet name creation failed", failures)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]any{"wallet_names": created})
}

func (h *Handler) handleUpdateWalletNames(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWalletNames(w, r)
	if !ok {
		return
	}

	var failures []string
	for _, wn := range req.WalletNames {
		if err := h.store.UpdateWalletName(wn); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", wn.ID, err))
		}
	}
	if len(failures) > 0 {
		writeFailure(w, http.StatusBadRequest, "wallet name update failed", failures)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{})
}

func (h *Handler) handleDeleteWalletNames(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWalletNames(w, r)
	if !ok {
		return
	}

	var failures []string
	for _, wn := range req.WalletNames {
		if err := h.store.DeleteWalletName(wn.DomainName, wn.ID); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", wn.ID, err))
		}
	}
	if len(failures) > 0 {
		writeFailure(w, http.StatusBadRequest, "wallet name delete failed", failures)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeWalletNames(w http.ResponseWriter, r *http.Request) (walletNamesRequest, bool) {
	var req walletNamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "invalid wallet name request", "error", err.Error())
		writeFailure(w, http.StatusBadRequest, "invalid request body", nil)
		return req, false
	}
	return req, true
}

// =============================================================================
// Envelope
// =============================================================================

func writeSuccess(w http.ResponseWriter, status int, data map[string]any) {
	data["success"] = true
	writeJSON(w, status, data)
}

func writeFailure(w http.ResponseWriter, status int, message string, failures []string) {
	body := map[string]any{
		"success": false,
		"message": message,
	}
	if len(failures) > 0 {
		list := make([]map[string]string, 0, len(failures))
		for _, f := range failures {
			list = append(list, map[string]string{"message": strings.TrimSpace(f)})
		}
		body["failures"] = list
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
