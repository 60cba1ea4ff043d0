package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type commandHandlerMock[C any] struct {
	mock.Mock
}

func (m *commandHandlerMock[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *commandHandlerMock[C]) lastCommand(t *testing.T) C {
	t.Helper()
	require.NotEmpty(t, m.Calls)
	cmd, ok := m.Calls[len(m.Calls)-1].Arguments.Get(1).(C)
	require.True(t, ok)
	return cmd
}

type queryHandlerMock[Q any, R any] struct {
	mock.Mock
}

func (m *queryHandlerMock[Q, R]) Handle(ctx context.Context, q Q) (R, error) {
	args := m.Called(ctx, q)
	r, _ := args.Get(0).(R)
	return r, args.Error(1)
}

type testServer struct {
	echo *echo.Echo

	createOrder     *commandHandlerMock[commands.CreateDeliveryOrderCommand]
	placeOrder      *commandHandlerMock[commands.PlaceOrderCommand]
	duplicate       *commandHandlerMock[commands.DuplicateOrderCommand]
	createRequest   *commandHandlerMock[commands.CreateDeliveryRequestCommand]
	confirmRequest  *commandHandlerMock[commands.ConfirmDeliveryRequestCommand]
	updatePackage   *commandHandlerMock[commands.UpdatePackageCommand]
	deletePackage   *commandHandlerMock[commands.DeletePackageCommand]
	cancelPackage   *commandHandlerMock[commands.CancelPackageCommand]
	reconcile       *commandHandlerMock[commands.ReconcilePaymentCommand]
	orderDetails    *queryHandlerMock[queries.GetOrderDetailsQuery, queries.GetOrderDetailsQueryResponse]
	packageEventLog *queryHandlerMock[queries.ListPackageEventsQuery, []queries.ListPackageEventsQueryResponse]
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		createOrder:     &commandHandlerMock[commands.CreateDeliveryOrderCommand]{},
		placeOrder:      &commandHandlerMock[commands.PlaceOrderCommand]{},
		duplicate:       &commandHandlerMock[commands.DuplicateOrderCommand]{},
		createRequest:   &commandHandlerMock[commands.CreateDeliveryRequestCommand]{},
		confirmRequest:  &commandHandlerMock[commands.ConfirmDeliveryRequestCommand]{},
		updatePackage:   &commandHandlerMock[commands.UpdatePackageCommand]{},
		deletePackage:   &commandHandlerMock[commands.DeletePackageCommand]{},
		cancelPackage:   &commandHandlerMock[commands.CancelPackageCommand]{},
		reconcile:       &commandHandlerMock[commands.ReconcilePaymentCommand]{},
		orderDetails:    &queryHandlerMock[queries.GetOrderDetailsQuery, queries.GetOrderDetailsQueryResponse]{},
		packageEventLog: &queryHandlerMock[queries.ListPackageEventsQuery, []queries.ListPackageEventsQueryResponse]{},
	}

	server := NewServer(Handlers{
		CreateOrder:            ts.createOrder,
		PlaceOrder:             ts.placeOrder,
		DuplicateOrder:         ts.duplicate,
		CreateDeliveryRequest:  ts.createRequest,
		ConfirmDeliveryRequest: ts.confirmRequest,
		UpdatePackage:          ts.updatePackage,
		DeletePackage:          ts.deletePackage,
		CancelPackage:          ts.cancelPackage,
		ReconcilePayment:       ts.reconcile,
		GetOrderDetails:        ts.orderDetails,
		ListPackageEvents:      ts.packageEventLog,
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := NewEcho(server, logger, false)
	require.NoError(t, err)
	ts.echo = e
	return ts
}

func (ts *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoadSwagger(t *testing.T) {
	doc, err := LoadSwagger()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/payments/callback"))
}

func TestGetHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateOrder(t *testing.T) {
	ts := newTestServer(t)
	customerID := uuid.New()
	contactID := uuid.New()
	ts.createOrder.On("Handle", mock.Anything, mock.Anything).Return(nil)

	body := `{
		"customerId": "` + customerID.String() + `",
		"isCustomerPaying": true,
		"packages": [{"size": "LARGE", "priority": "EXPRESS", "fromContactId": "` + contactID.String() + `", "pickUpNote": "ring twice"}],
		"discounts": [{"type": "PROMO", "amount": "5.50"}]
	}`
	rec := ts.do(http.MethodPost, "/api/v1/orders", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created Created
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	cmd := ts.createOrder.lastCommand(t)
	assert.Equal(t, created.Id, cmd.OrderID().Bytes())
	assert.Equal(t, customerID, cmd.CustomerID().Bytes())
	assert.True(t, cmd.IsCustomerPaying())
	require.Len(t, cmd.Packages(), 1)
	assert.Equal(t, order.SizeLarge, cmd.Packages()[0].Size)
	assert.Equal(t, order.PriorityExpress, cmd.Packages()[0].Priority)
	require.NotNil(t, cmd.Packages()[0].FromContactID)
	assert.Equal(t, contactID, cmd.Packages()[0].FromContactID.Bytes())
	assert.Equal(t, "ring twice", cmd.Packages()[0].PickUpNote)
	require.Len(t, cmd.Discounts(), 1)
	assert.True(t, decimal.RequireFromString("5.50").Equal(cmd.Discounts()[0].Amount))
}

func TestCreateOrder_RejectedBySchema(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing packages", body: `{"customerId":"` + uuid.NewString() + `"}`},
		{name: "empty packages", body: `{"customerId":"` + uuid.NewString() + `","packages":[]}`},
		{name: "unknown size", body: `{"customerId":"` + uuid.NewString() + `","packages":[{"size":"HUGE"}]}`},
		{name: "malformed discount", body: `{"customerId":"` + uuid.NewString() + `","packages":[{}],"discounts":[{"type":"X","amount":"abc"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			rec := ts.do(http.MethodPost, "/api/v1/orders", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
			ts.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestErrorKindsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: errs.NewObjectNotFoundError("order", "x"), status: http.StatusNotFound},
		{name: "version", err: errs.NewVersionIsInvalidError("order"), status: http.StatusConflict},
		{name: "not permitted", err: commands.ErrPackageNotDeletable, status: http.StatusForbidden},
		{name: "external", err: errs.NewExternalCallFailedError("assignment service", assert.AnError), status: http.StatusBadGateway},
		{name: "invalid", err: commands.ErrPackageAlreadyClosed, status: http.StatusUnprocessableEntity},
		{name: "required", err: errs.NewValueIsRequiredError("size"), status: http.StatusUnprocessableEntity},
		{name: "out of range", err: errs.NewValueIsOutOfRangeError("pickUpStart", 1, 0, 0), status: http.StatusUnprocessableEntity},
		{name: "unexpected", err: assert.AnError, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.placeOrder.On("Handle", mock.Anything, mock.Anything).Return(tt.err)

			rec := ts.do(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/place", "")

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.status, body.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, assert.AnError.Error())
			}
		})
	}
}

func TestPlaceOrder(t *testing.T) {
	ts := newTestServer(t)
	orderID := uuid.New()
	ts.placeOrder.On("Handle", mock.Anything, mock.Anything).Return(nil)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/place", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, orderID, ts.placeOrder.lastCommand(t).OrderID().Bytes())
}

func TestPlaceOrder_MalformedID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/orders/not-a-uuid/place", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.placeOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestDuplicateOrder(t *testing.T) {
	ts := newTestServer(t)
	sourceID := uuid.New()
	ts.duplicate.On("Handle", mock.Anything, mock.Anything).Return(nil)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+sourceID.String()+"/duplicate",
		`{"pickUpStart":"2026-06-08T12:30:00+02:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cmd := ts.duplicate.lastCommand(t)
	assert.Equal(t, sourceID, cmd.SourceOrderID().Bytes())
	assert.NotEqual(t, sourceID, cmd.NewOrderID().Bytes())
	require.NotNil(t, cmd.PickUpStart())
	assert.Equal(t, "2026-06-08T10:30:00Z", cmd.PickUpStart().Format("2006-01-02T15:04:05Z07:00"))
}

func TestDuplicateOrder_WithoutBody(t *testing.T) {
	ts := newTestServer(t)
	ts.duplicate.On("Handle", mock.Anything, mock.Anything).Return(nil)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/duplicate", "")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, ts.duplicate.lastCommand(t).PickUpStart())
}

func TestDuplicateOrder_OpenSourceIsUnprocessable(t *testing.T) {
	ts := newTestServer(t)
	source, err := order.NewDeliveryOrder(kernel.NewUUID(), kernel.NewUUID(), nil, nil, order.Started, true, time.Now())
	require.NoError(t, err)
	_, dupErr := source.Duplicate(kernel.NewUUID(), time.Now())
	require.Error(t, dupErr)
	ts.duplicate.On("Handle", mock.Anything, mock.Anything).Return(dupErr)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+source.ID().String()+"/duplicate", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "invalid status")
}

func TestCreateDeliveryRequest(t *testing.T) {
	ts := newTestServer(t)
	ts.createRequest.On("Handle", mock.Anything, mock.Anything).Return(nil)

	body := `{
		"customerId": "` + uuid.NewString() + `",
		"recipientPhone": "+15551234567",
		"recipientName": "Dana",
		"package": {"size": "SMALL", "fromContactId": "` + uuid.NewString() + `", "fromAddressId": "` + uuid.NewString() + `"}
	}`
	rec := ts.do(http.MethodPost, "/api/v1/delivery-requests", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cmd := ts.createRequest.lastCommand(t)
	assert.Equal(t, "+15551234567", cmd.RecipientPhone())
	assert.Equal(t, "Dana", cmd.RecipientName())
	assert.Equal(t, order.SizeSmall, cmd.Details().Size)
}

func TestCreateDeliveryRequest_SMSFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.createRequest.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewExternalCallFailedError("sms relay", assert.AnError))

	body := `{"customerId":"` + uuid.NewString() + `","recipientPhone":"+15551234567","package":{}}`
	rec := ts.do(http.MethodPost, "/api/v1/delivery-requests", body)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestConfirmDeliveryRequest(t *testing.T) {
	ts := newTestServer(t)
	packageID := uuid.New()
	ts.confirmRequest.On("Handle", mock.Anything, mock.Anything).Return(nil)

	body := `{"address":{"street":"1 Main St","city":"Springfield","latitude":40.5,"longitude":-73.9},"dropOffNote":"leave at door"}`
	rec := ts.do(http.MethodPost, "/api/v1/packages/"+packageID.String()+"/confirm", body)

	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	cmd := ts.confirmRequest.lastCommand(t)
	assert.Equal(t, packageID, cmd.PackageID().Bytes())
	assert.Equal(t, "1 Main St", cmd.Address().Street)
	require.NotNil(t, cmd.Address().Location)
	assert.InDelta(t, 40.5, cmd.Address().Location.Latitude(), 1e-9)
	assert.Equal(t, "leave at door", cmd.DropOffNote())
}

func TestConfirmDeliveryRequest_LatitudeWithoutLongitude(t *testing.T) {
	ts := newTestServer(t)

	body := `{"address":{"street":"1 Main St","city":"Springfield","latitude":40.5}}`
	rec := ts.do(http.MethodPost, "/api/v1/packages/"+uuid.NewString()+"/confirm", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	ts.confirmRequest.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestUpdatePackage_CallerRole(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		privileged bool
	}{
		{name: "no header", privileged: false},
		{name: "customer", headers: []string{"X-Caller-Role", "customer"}, privileged: false},
		{name: "staff", headers: []string{"X-Caller-Role", "staff"}, privileged: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.updatePackage.On("Handle", mock.Anything, mock.Anything).Return(nil)

			rec := ts.do(http.MethodPatch, "/api/v1/packages/"+uuid.NewString(), `{"pickUpNote":"gate code 42"}`, tt.headers...)

			require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
			cmd := ts.updatePackage.lastCommand(t)
			assert.Equal(t, tt.privileged, cmd.IsPrivileged())
			require.NotNil(t, cmd.Patch().PickUpNote)
			assert.Equal(t, "gate code 42", *cmd.Patch().PickUpNote)
		})
	}
}

func TestUpdatePackage_DriverTriState(t *testing.T) {
	driverID := uuid.New()
	tests := []struct {
		name      string
		body      string
		specified bool
		null      bool
	}{
		{name: "omitted", body: `{"staffNote":"x"}`, specified: false},
		{name: "explicit null", body: `{"driverId":null}`, specified: true, null: true},
		{name: "value", body: `{"driverId":"` + driverID.String() + `"}`, specified: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.updatePackage.On("Handle", mock.Anything, mock.Anything).Return(nil)

			rec := ts.do(http.MethodPatch, "/api/v1/packages/"+uuid.NewString(), tt.body, "X-Caller-Role", "staff")

			require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
			driver := ts.updatePackage.lastCommand(t).Patch().DriverID
			assert.Equal(t, tt.specified, driver.IsSpecified())
			assert.Equal(t, tt.null, driver.IsNull())
			if v, ok := driver.Get(); ok {
				assert.Equal(t, driverID, v.Bytes())
			}
		})
	}
}

func TestUpdatePackage_RestrictedFieldForbidden(t *testing.T) {
	ts := newTestServer(t)
	ts.updatePackage.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewOperationNotPermittedError("staffNote"))

	rec := ts.do(http.MethodPatch, "/api/v1/packages/"+uuid.NewString(), `{"staffNote":"x"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdatePackage_EmptyPatch(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPatch, "/api/v1/packages/"+uuid.NewString(), `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.updatePackage.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestDeletePackage(t *testing.T) {
	ts := newTestServer(t)
	packageID := uuid.New()
	ts.deletePackage.On("Handle", mock.Anything, mock.Anything).Return(nil)

	rec := ts.do(http.MethodDelete, "/api/v1/packages/"+packageID.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, packageID, ts.deletePackage.lastCommand(t).PackageID().Bytes())
}

func TestCancelPackage(t *testing.T) {
	ts := newTestServer(t)
	ts.cancelPackage.On("Handle", mock.Anything, mock.Anything).Return(nil)

	rec := ts.do(http.MethodPost, "/api/v1/packages/"+uuid.NewString()+"/cancel", `{"reason":"customer changed mind"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "customer changed mind", ts.cancelPackage.lastCommand(t).Reason())
}

func TestPaymentCallback(t *testing.T) {
	ts := newTestServer(t)
	orderID, chargeID, discountID := uuid.New(), uuid.New(), uuid.New()
	ts.reconcile.On("Handle", mock.Anything, mock.Anything).Return(nil)

	body := `{"orderId":"` + orderID.String() + `","chargeIds":["` + chargeID.String() + `"],"discountIds":["` +
		discountID.String() + `"],"outcome":"SUCCESS"}`
	rec := ts.do(http.MethodPost, "/api/v1/payments/callback", body)

	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	cmd := ts.reconcile.lastCommand(t)
	assert.Equal(t, orderID, cmd.OrderID().Bytes())
	require.Len(t, cmd.ChargeIDs(), 1)
	assert.Equal(t, chargeID, cmd.ChargeIDs()[0].Bytes())
	require.Len(t, cmd.DiscountIDs(), 1)
	assert.Equal(t, commands.PaymentSuccess, cmd.Outcome())
}

func TestPaymentCallback_UnknownOutcome(t *testing.T) {
	ts := newTestServer(t)

	body := `{"orderId":"` + uuid.NewString() + `","chargeIds":["` + uuid.NewString() + `"],"outcome":"MAYBE"}`
	rec := ts.do(http.MethodPost, "/api/v1/payments/callback", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.reconcile.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetOrder(t *testing.T) {
	ts := newTestServer(t)
	orderID := kernel.NewUUID()
	packageID := kernel.NewUUID()
	chargeID := kernel.NewUUID()
	ts.orderDetails.On("Handle", mock.Anything, mock.Anything).Return(queries.GetOrderDetailsQueryResponse{
		ID:         orderID,
		CustomerID: kernel.NewUUID(),
		Status:     "STARTED",
		Packages: []queries.PackageDetails{{
			ID:             packageID,
			TrackingNumber: "1234567890123",
			Status:         "STARTED",
			Size:           "SMALL",
			Priority:       "STANDARD",
			Charges: []queries.ChargeDetails{{
				ID:     chargeID,
				Type:   "DELIVERY_FEE",
				Status: "UNPAID",
				Amount: decimal.RequireFromString("7.5"),
			}},
		}},
	}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body OrderDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, orderID.Bytes(), body.Id)
	require.Len(t, body.Packages, 1)
	assert.Equal(t, "1234567890123", body.Packages[0].TrackingNumber)
	require.Len(t, body.Packages[0].Charges, 1)
	assert.Equal(t, "7.50", body.Packages[0].Charges[0].Amount)
	assert.Equal(t, "0.00", body.Packages[0].Charges[0].TransactionAmount)
	assert.Empty(t, body.Discounts)
}

func TestGetOrder_NotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.orderDetails.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetOrderDetailsQueryResponse{}, errs.NewObjectNotFoundError("order", "x"))

	rec := ts.do(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPackageEvents(t *testing.T) {
	ts := newTestServer(t)
	assignmentID := kernel.NewUUID()
	ts.packageEventLog.On("Handle", mock.Anything, mock.Anything).Return([]queries.ListPackageEventsQueryResponse{
		{ID: kernel.NewUUID(), Name: "ORDER_PLACED", Metadata: map[string]any{}},
		{ID: kernel.NewUUID(), Name: "PACKAGE_CANCELLED", AssignmentID: &assignmentID, Metadata: map[string]any{"reason": "late"}},
	}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/packages/"+uuid.NewString()+"/events", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var events []PackageEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "ORDER_PLACED", events[0].Name)
	assert.Nil(t, events[0].AssignmentId)
	require.NotNil(t, events[1].AssignmentId)
	assert.Equal(t, assignmentID.Bytes(), *events[1].AssignmentId)
	assert.Equal(t, "late", events[1].Metadata["reason"])
}

func TestSwaggerDocIsServed(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/orders")
}
