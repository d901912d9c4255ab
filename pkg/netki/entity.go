package netki

import (
	"context"
	"io"
	"log/slog"

	"netki/pkg/requestor"
)

// entity carries what every resource needs to reach the API. It is embedded
// so Configure and the AuthContext accessors are available on each resource.
type entity struct {
	AuthContext
	requestor requestor.Requestor
	logger    *slog.Logger
}

func newEntity(auth AuthContext, req requestor.Requestor) entity {
	return entity{
		AuthContext: auth,
		requestor:   req,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (e *entity) call(ctx context.Context, method, url string, body []byte) (string, error) {
	return e.requestor.AuthenticatedRequest(ctx, e.APIKey(), e.PartnerID(), url, method, body)
}
