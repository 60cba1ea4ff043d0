package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListPackageEventsQueryHandler struct {
	db *gorm.DB
}

func NewListPackageEventsQueryHandler(db *gorm.DB) ListPackageEventsQueryHandler {
	return ListPackageEventsQueryHandler{db: db}
}

// Handle returns an empty slice for unknown packages; events outlive
// deleted drafts, so absence of the package is not an error.
func (h ListPackageEventsQueryHandler) Handle(
	ctx context.Context,
	query ListPackageEventsQuery,
) ([]ListPackageEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, assignment_id, metadata, created_at
		FROM package_events
		WHERE package_id = ?
		ORDER BY created_at, id
	`, query.PackageID().Bytes()).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "select package events")
	}
	defer rows.Close()

	events := make([]ListPackageEventsQueryResponse, 0)
	for rows.Next() {
		var e ListPackageEventsQueryResponse
		var id uuid.UUID
		var assignmentID *uuid.UUID
		var metadata datatypes.JSONMap

		if err := rows.Scan(&id, &e.Name, &assignmentID, &metadata, &e.CreatedAt); err != nil {
			return nil, err
		}

		if e.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if e.AssignmentID, err = optionalUUID(assignmentID); err != nil {
			return nil, err
		}
		e.Metadata = metadata
		if e.Metadata == nil {
			e.Metadata = map[string]any{}
		}
		e.CreatedAt = e.CreatedAt.UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
