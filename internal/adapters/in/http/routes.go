package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists one method per operation in openapi.yaml. Path and
// header parameters arrive already bound.
type ServerInterface interface {
	GetHealth(ctx echo.Context) error
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	PlaceOrder(ctx echo.Context, orderID openapi_types.UUID) error
	DuplicateOrder(ctx echo.Context, orderID openapi_types.UUID) error
	CreateDeliveryRequest(ctx echo.Context) error
	UpdatePackage(ctx echo.Context, packageID openapi_types.UUID, params UpdatePackageParams) error
	DeletePackage(ctx echo.Context, packageID openapi_types.UUID) error
	CancelPackage(ctx echo.Context, packageID openapi_types.UUID) error
	ConfirmDeliveryRequest(ctx echo.Context, packageID openapi_types.UUID) error
	ListPackageEvents(ctx echo.Context, packageID openapi_types.UUID) error
	PaymentCallback(ctx echo.Context) error
}

type UpdatePackageParams struct {
	XCallerRole *string
}

// CallerRoleStaff marks a privileged caller. Tokens are checked upstream;
// this service trusts the header.
const CallerRoleStaff = "staff"

type serverInterfaceWrapper struct {
	handler ServerInterface
}

func bindUUIDPath(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func (w *serverInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.handler.GetHealth(ctx)
}

func (w *serverInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.handler.CreateOrder(ctx)
}

func (w *serverInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.handler.GetOrder(ctx, orderID)
}

func (w *serverInterfaceWrapper) PlaceOrder(ctx echo.Context) error {
	orderID, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.handler.PlaceOrder(ctx, orderID)
}

func (w *serverInterfaceWrapper) DuplicateOrder(ctx echo.Context) error {
	orderID, err := bindUUIDPath(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.handler.DuplicateOrder(ctx, orderID)
}

func (w *serverInterfaceWrapper) CreateDeliveryRequest(ctx echo.Context) error {
	return w.handler.CreateDeliveryRequest(ctx)
}

func (w *serverInterfaceWrapper) UpdatePackage(ctx echo.Context) error {
	packageID, err := bindUUIDPath(ctx, "packageId")
	if err != nil {
		return err
	}

	var params UpdatePackageParams
	if values := ctx.Request().Header.Values("X-Caller-Role"); len(values) > 0 {
		if len(values) != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Expected one value for X-Caller-Role")
		}
		var role string
		err = runtime.BindStyledParameterWithOptions("simple", "X-Caller-Role", values[0], &role,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Caller-Role: %s", err))
		}
		params.XCallerRole = &role
	}

	return w.handler.UpdatePackage(ctx, packageID, params)
}

func (w *serverInterfaceWrapper) DeletePackage(ctx echo.Context) error {
	packageID, err := bindUUIDPath(ctx, "packageId")
	if err != nil {
		return err
	}
	return w.handler.DeletePackage(ctx, packageID)
}

func (w *serverInterfaceWrapper) CancelPackage(ctx echo.Context) error {
	packageID, err := bindUUIDPath(ctx, "packageId")
	if err != nil {
		return err
	}
	return w.handler.CancelPackage(ctx, packageID)
}

func (w *serverInterfaceWrapper) ConfirmDeliveryRequest(ctx echo.Context) error {
	packageID, err := bindUUIDPath(ctx, "packageId")
	if err != nil {
		return err
	}
	return w.handler.ConfirmDeliveryRequest(ctx, packageID)
}

func (w *serverInterfaceWrapper) ListPackageEvents(ctx echo.Context) error {
	packageID, err := bindUUIDPath(ctx, "packageId")
	if err != nil {
		return err
	}
	return w.handler.ListPackageEvents(ctx, packageID)
}

func (w *serverInterfaceWrapper) PaymentCallback(ctx echo.Context) error {
	return w.handler.PaymentCallback(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &serverInterfaceWrapper{handler: si}

	router.GET("/health", w.GetHealth)

	router.POST("/api/v1/orders", w.CreateOrder)
	router.GET("/api/v1/orders/:orderId", w.GetOrder)
	router.POST("/api/v1/orders/:orderId/place", w.PlaceOrder)
	router.POST("/api/v1/orders/:orderId/duplicate", w.DuplicateOrder)

	router.POST("/api/v1/delivery-requests", w.CreateDeliveryRequest)

	router.PATCH("/api/v1/packages/:packageId", w.UpdatePackage)
	router.DELETE("/api/v1/packages/:packageId", w.DeletePackage)
	router.POST("/api/v1/packages/:packageId/cancel", w.CancelPackage)
	router.POST("/api/v1/packages/:packageId/confirm", w.ConfirmDeliveryRequest)
	router.GET("/api/v1/packages/:packageId/events", w.ListPackageEvents)

	router.POST("/api/v1/payments/callback", w.PaymentCallback)
}
