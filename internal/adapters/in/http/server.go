package http

import (
	"context"
	"net/http"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type (
	CreateDeliveryOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryOrderCommand) error
	}
	PlaceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) error
	}
	DuplicateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DuplicateOrderCommand) error
	}
	CreateDeliveryRequestHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryRequestCommand) error
	}
	ConfirmDeliveryRequestHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmDeliveryRequestCommand) error
	}
	UpdatePackageHandler interface {
		Handle(ctx context.Context, cmd commands.UpdatePackageCommand) error
	}
	DeletePackageHandler interface {
		Handle(ctx context.Context, cmd commands.DeletePackageCommand) error
	}
	CancelPackageHandler interface {
		Handle(ctx context.Context, cmd commands.CancelPackageCommand) error
	}
	ReconcilePaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ReconcilePaymentCommand) error
	}
	GetOrderDetailsHandler interface {
		Handle(ctx context.Context, q queries.GetOrderDetailsQuery) (queries.GetOrderDetailsQueryResponse, error)
	}
	ListPackageEventsHandler interface {
		Handle(ctx context.Context, q queries.ListPackageEventsQuery) ([]queries.ListPackageEventsQueryResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder            CreateDeliveryOrderHandler
	PlaceOrder             PlaceOrderHandler
	DuplicateOrder         DuplicateOrderHandler
	CreateDeliveryRequest  CreateDeliveryRequestHandler
	ConfirmDeliveryRequest ConfirmDeliveryRequestHandler
	UpdatePackage          UpdatePackageHandler
	DeletePackage          DeletePackageHandler
	CancelPackage          CancelPackageHandler
	ReconcilePayment       ReconcilePaymentHandler
	GetOrderDetails        GetOrderDetailsHandler
	ListPackageEvents      ListPackageEventsHandler
}

// Server implements ServerInterface by translating HTTP bodies into
// commands and queries.
type Server struct {
	h Handlers
}

var _ ServerInterface = (*Server)(nil)

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Health{Status: "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	customerID, err := toKernel(body.CustomerId)
	if err != nil {
		return err
	}
	branchID, err := toKernelPtr(body.BranchId)
	if err != nil {
		return err
	}
	agentID, err := toKernelPtr(body.AgentId)
	if err != nil {
		return err
	}

	packages := make([]order.PackageDetails, 0, len(body.Packages))
	for _, p := range body.Packages {
		details, detailsErr := packageDetails(p)
		if detailsErr != nil {
			return detailsErr
		}
		packages = append(packages, details)
	}

	discounts := make([]commands.DiscountRequest, 0, len(body.Discounts))
	for _, d := range body.Discounts {
		amount, parseErr := decimal.NewFromString(d.Amount)
		if parseErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("discount amount", parseErr)
		}
		discounts = append(discounts, commands.DiscountRequest{Type: order.DiscountType(d.Type), Amount: amount})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryOrderCommand(
		orderID, customerID, branchID, agentID, body.IsCustomerPaying, packages, discounts,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Created{Id: orderID.Bytes()})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderDetailsQuery(id)
	if err != nil {
		return err
	}
	details, err := s.h.GetOrderDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderDetailsResponse(details))
}

// PlaceOrder handles POST /api/v1/orders/{orderId}/place.
func (s *Server) PlaceOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := toKernel(orderID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewPlaceOrderCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.PlaceOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DuplicateOrder handles POST /api/v1/orders/{orderId}/duplicate.
func (s *Server) DuplicateOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	var body DuplicateOrder
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	sourceID, err := toKernel(orderID)
	if err != nil {
		return err
	}
	newID := kernel.NewUUID()
	cmd, err := commands.NewDuplicateOrderCommand(sourceID, newID, utcPtr(body.PickUpStart))
	if err != nil {
		return err
	}
	if err = s.h.DuplicateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, Created{Id: newID.Bytes()})
}

// CreateDeliveryRequest handles POST /api/v1/delivery-requests.
func (s *Server) CreateDeliveryRequest(ctx echo.Context) error {
	var body NewDeliveryRequest
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	customerID, err := toKernel(body.CustomerId)
	if err != nil {
		return err
	}
	branchID, err := toKernelPtr(body.BranchId)
	if err != nil {
		return err
	}
	details, err := packageDetails(body.Package)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateDeliveryRequestCommand(
		orderID, customerID, branchID, body.IsCustomerPaying, body.RecipientPhone, body.RecipientName, details,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreateDeliveryRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, Created{Id: orderID.Bytes()})
}

// ConfirmDeliveryRequest handles POST /api/v1/packages/{packageId}/confirm.
func (s *Server) ConfirmDeliveryRequest(ctx echo.Context, packageID openapi_types.UUID) error {
	var body DeliveryRequestConfirmation
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	id, err := toKernel(packageID)
	if err != nil {
		return err
	}
	fields := contact.AddressFields{
		Street:     body.Address.Street,
		Unit:       body.Address.Unit,
		City:       body.Address.City,
		Region:     body.Address.Region,
		PostalCode: body.Address.PostalCode,
		Country:    body.Address.Country,
	}
	if (body.Address.Latitude == nil) != (body.Address.Longitude == nil) {
		return errs.NewValueIsRequiredError("latitude and longitude")
	}
	if body.Address.Latitude != nil {
		point, pointErr := kernel.NewGeoPoint(*body.Address.Latitude, *body.Address.Longitude)
		if pointErr != nil {
			return pointErr
		}
		fields.Location = &point
	}

	cmd, err := commands.NewConfirmDeliveryRequestCommand(id, fields, body.DropOffNote)
	if err != nil {
		return err
	}
	if err = s.h.ConfirmDeliveryRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdatePackage handles PATCH /api/v1/packages/{packageId}.
func (s *Server) UpdatePackage(ctx echo.Context, packageID openapi_types.UUID, params UpdatePackageParams) error {
	var body PackagePatch
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	id, err := toKernel(packageID)
	if err != nil {
		return err
	}
	patch, err := toPatch(body)
	if err != nil {
		return err
	}
	privileged := params.XCallerRole != nil && *params.XCallerRole == CallerRoleStaff

	cmd, err := commands.NewUpdatePackageCommand(id, patch, privileged)
	if err != nil {
		return err
	}
	if err = s.h.UpdatePackage.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeletePackage handles DELETE /api/v1/packages/{packageId}.
func (s *Server) DeletePackage(ctx echo.Context, packageID openapi_types.UUID) error {
	id, err := toKernel(packageID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeletePackageCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.DeletePackage.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelPackage handles POST /api/v1/packages/{packageId}/cancel.
func (s *Server) CancelPackage(ctx echo.Context, packageID openapi_types.UUID) error {
	var body CancelPackage
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	id, err := toKernel(packageID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelPackageCommand(id, body.Reason)
	if err != nil {
		return err
	}
	if err = s.h.CancelPackage.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListPackageEvents handles GET /api/v1/packages/{packageId}/events.
func (s *Server) ListPackageEvents(ctx echo.Context, packageID openapi_types.UUID) error {
	id, err := toKernel(packageID)
	if err != nil {
		return err
	}
	query, err := queries.NewListPackageEventsQuery(id)
	if err != nil {
		return err
	}
	events, err := s.h.ListPackageEvents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]PackageEvent, len(events))
	for i, e := range events {
		response[i] = PackageEvent{
			Id:           e.ID.Bytes(),
			Name:         e.Name,
			AssignmentId: fromKernelPtr(e.AssignmentID),
			Metadata:     e.Metadata,
			CreatedAt:    e.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// PaymentCallback handles POST /api/v1/payments/callback.
func (s *Server) PaymentCallback(ctx echo.Context) error {
	var body PaymentCallback
	if err := bindAndValidate(ctx, &body); err != nil {
		return err
	}

	orderID, err := toKernel(body.OrderId)
	if err != nil {
		return err
	}
	chargeIDs, err := toKernelSlice(body.ChargeIds)
	if err != nil {
		return err
	}
	discountIDs, err := toKernelSlice(body.DiscountIds)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReconcilePaymentCommand(orderID, chargeIDs, discountIDs, commands.PaymentOutcome(body.Outcome))
	if err != nil {
		return err
	}
	if err = s.h.ReconcilePayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func bindAndValidate(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return ctx.Validate(body)
}

func packageDetails(p NewPackage) (order.PackageDetails, error) {
	fromContact, err := toKernelPtr(p.FromContactId)
	if err != nil {
		return order.PackageDetails{}, err
	}
	toContact, err := toKernelPtr(p.ToContactId)
	if err != nil {
		return order.PackageDetails{}, err
	}
	fromAddress, err := toKernelPtr(p.FromAddressId)
	if err != nil {
		return order.PackageDetails{}, err
	}
	toAddress, err := toKernelPtr(p.ToAddressId)
	if err != nil {
		return order.PackageDetails{}, err
	}
	return order.PackageDetails{
		Size:                order.Size(p.Size),
		Priority:            order.Priority(p.Priority),
		FromContactID:       fromContact,
		ToContactID:         toContact,
		FromAddressID:       fromAddress,
		ToAddressID:         toAddress,
		PickUpNote:          p.PickUpNote,
		DropOffNote:         p.DropOffNote,
		PickUpStart:         utcPtr(p.PickUpStart),
		EnableNotifications: p.EnableNotifications,
	}, nil
}

func toPatch(body PackagePatch) (order.Patch, error) {
	var patch order.Patch
	var err error

	if body.Size != nil {
		size := order.Size(*body.Size)
		patch.Size = &size
	}
	if body.Priority != nil {
		priority := order.Priority(*body.Priority)
		patch.Priority = &priority
	}
	if patch.FromContactID, err = toKernelPtr(body.FromContactId); err != nil {
		return order.Patch{}, err
	}
	if patch.ToContactID, err = toKernelPtr(body.ToContactId); err != nil {
		return order.Patch{}, err
	}
	if patch.FromAddressID, err = toKernelPtr(body.FromAddressId); err != nil {
		return order.Patch{}, err
	}
	if patch.ToAddressID, err = toKernelPtr(body.ToAddressId); err != nil {
		return order.Patch{}, err
	}
	patch.PickUpNote = body.PickUpNote
	patch.DropOffNote = body.DropOffNote
	patch.PickUpStart = utcPtr(body.PickUpStart)

	if body.Status != nil {
		status, parseErr := order.ParseStatus(*body.Status)
		if parseErr != nil {
			return order.Patch{}, parseErr
		}
		patch.Status = &status
	}
	if patch.DriverID, err = toNullable(body.DriverId); err != nil {
		return order.Patch{}, err
	}
	if patch.AssignmentID, err = toNullable(body.AssignmentId); err != nil {
		return order.Patch{}, err
	}
	patch.StaffNote = body.StaffNote
	patch.PickUpChangeNote = body.PickUpChangeNote
	patch.IsAssignable = body.IsAssignable
	patch.EnableNotifications = body.EnableNotifications

	return patch, nil
}

func orderDetailsResponse(d queries.GetOrderDetailsQueryResponse) OrderDetails {
	packages := make([]Package, len(d.Packages))
	for i, p := range d.Packages {
		charges := make([]Charge, len(p.Charges))
		for j, c := range p.Charges {
			charges[j] = Charge{
				Id:                c.ID.Bytes(),
				Type:              c.Type,
				Status:            c.Status,
				Amount:            c.Amount.StringFixed(2),
				TransactionAmount: c.TransactionAmount.StringFixed(2),
			}
		}
		packages[i] = Package{
			Id:             p.ID.Bytes(),
			TrackingNumber: p.TrackingNumber,
			Status:         p.Status,
			Size:           p.Size,
			Priority:       p.Priority,
			FromContactId:  fromKernelPtr(p.FromContactID),
			ToContactId:    fromKernelPtr(p.ToContactID),
			FromAddressId:  fromKernelPtr(p.FromAddressID),
			ToAddressId:    fromKernelPtr(p.ToAddressID),
			PickUpStart:    p.PickUpStart,
			PickUpEnd:      p.PickUpEnd,
			DriverId:       fromKernelPtr(p.DriverID),
			CancelReason:   p.CancelReason,
			Charges:        charges,
		}
	}

	discounts := make([]Discount, len(d.Discounts))
	for i, disc := range d.Discounts {
		discounts[i] = Discount{
			Id:     disc.ID.Bytes(),
			Type:   disc.Type,
			Status: disc.Status,
			Amount: disc.Amount.StringFixed(2),
		}
	}

	return OrderDetails{
		Id:               d.ID.Bytes(),
		CustomerId:       d.CustomerID.Bytes(),
		BranchId:         fromKernelPtr(d.BranchID),
		Status:           d.Status,
		PlacedAt:         d.PlacedAt,
		IsCustomerPaying: d.IsCustomerPaying,
		CreatedAt:        d.CreatedAt,
		Packages:         packages,
		Discounts:        discounts,
	}
}

func toKernel(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromGoogle(id)
}

func toKernelPtr(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func toKernelSlice(ids []openapi_types.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		k, err := kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func toNullable(n NullableUUID) (kernel.Nullable[kernel.UUID], error) {
	if !n.Set {
		return kernel.Unspecified[kernel.UUID](), nil
	}
	if n.Value == nil {
		return kernel.Null[kernel.UUID](), nil
	}
	k, err := kernel.UUIDFromGoogle(*n.Value)
	if err != nil {
		return kernel.Nullable[kernel.UUID]{}, err
	}
	return kernel.Value(k), nil
}

func fromKernelPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	g := id.Bytes()
	return &g
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
