// Package assignment talks to the dispatch service that owns driver
// assignments.
package assignment

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/pkg/errors"
)

const serviceName = "assignment service"

// HTTPGateway implements ports.DeliveryAssignmentGateway over the dispatch
// service's REST API.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPGateway(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "assignment-gateway"),
	}
}

// CancelAssignment treats 404 as success: the assignment is already gone.
func (g *HTTPGateway) CancelAssignment(ctx context.Context, assignmentID kernel.UUID) error {
	url := g.baseURL + "/assignments/" + assignmentID.String() + "/cancel"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		return errs.NewExternalCallFailedError(serviceName, errors.WithStack(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return errs.NewExternalCallFailedError(serviceName, errors.WithStack(err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		g.logger.WarnContext(ctx, "assignment already gone", "assignmentId", assignmentID.String())
		return nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errs.NewExternalCallFailedError(serviceName,
			errors.Errorf("cancel assignment %s: status %d: %s", assignmentID, resp.StatusCode, strings.TrimSpace(string(body))))
	}

	g.logger.InfoContext(ctx, "assignment cancelled", "assignmentId", assignmentID.String())
	return nil
}
