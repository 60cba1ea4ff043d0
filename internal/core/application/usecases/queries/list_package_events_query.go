package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrListPackageEventsQueryIsNotConstructed = errors.New(
	"ListPackageEventsQuery must be created via NewListPackageEventsQuery constructor",
)

// ListPackageEventsQuery returns a package's history, oldest first.
type ListPackageEventsQuery struct {
	packageID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewListPackageEventsQuery(packageID kernel.UUID) (ListPackageEventsQuery, error) {
	if err := packageID.Validate(); err != nil {
		return ListPackageEventsQuery{}, err
	}
	return ListPackageEventsQuery{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPackageEventsQuery) Validate() error {
	return q.guard.Validate(ErrListPackageEventsQueryIsNotConstructed)
}

func (q ListPackageEventsQuery) PackageID() kernel.UUID {
	return q.packageID
}

type ListPackageEventsQueryResponse struct {
	ID           kernel.UUID
	Name         string
	AssignmentID *kernel.UUID
	Metadata     map[string]any
	CreatedAt    time.Time
}
