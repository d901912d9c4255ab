package netki

import (
	"context"
	"fmt"
	"net/http"

	"netki/pkg/requestor"
)

// Partner is a sub-partner account. The API addresses partners by Name, not ID.
type Partner struct {
	entity

	ID   string
	Name string
}

func NewPartner(id, name string, auth AuthContext, req requestor.Requestor) *Partner {
	return &Partner{
		entity: newEntity(auth, req),
		ID:     id,
		Name:   name,
	}
}

// Delete removes the partner by name. The Partner stays usable afterwards.
func (p *Partner) Delete(ctx context.Context) error {
	if _, err := p.call(ctx, http.MethodDelete, p.endpoint("/v1/admin/partner/%s", p.Name), nil); err != nil {
		return fmt.Errorf("deleting partner %s: %w", p.Name, err)
	}
	return nil
}
