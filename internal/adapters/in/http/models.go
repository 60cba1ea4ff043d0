package http

import (
	"bytes"
	"encoding/json"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies mirroring the schemas in openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Health struct {
	Status string `json:"status"`
}

type Created struct {
	Id openapi_types.UUID `json:"id"`
}

type NewPackage struct {
	Size                string              `json:"size,omitempty"     validate:"omitempty,oneof=SMALL MEDIUM LARGE XLARGE"`
	Priority            string              `json:"priority,omitempty" validate:"omitempty,oneof=STANDARD EXPRESS"`
	FromContactId       *openapi_types.UUID `json:"fromContactId,omitempty"`
	ToContactId         *openapi_types.UUID `json:"toContactId,omitempty"`
	FromAddressId       *openapi_types.UUID `json:"fromAddressId,omitempty"`
	ToAddressId         *openapi_types.UUID `json:"toAddressId,omitempty"`
	PickUpNote          string              `json:"pickUpNote,omitempty"  validate:"max=500"`
	DropOffNote         string              `json:"dropOffNote,omitempty" validate:"max=500"`
	PickUpStart         *time.Time          `json:"pickUpStart,omitempty"`
	EnableNotifications bool                `json:"enableNotifications,omitempty"`
}

type NewDiscount struct {
	Type   string `json:"type"   validate:"required"`
	Amount string `json:"amount" validate:"required,numeric"`
}

type NewOrder struct {
	CustomerId       openapi_types.UUID  `json:"customerId"`
	BranchId         *openapi_types.UUID `json:"branchId,omitempty"`
	AgentId          *openapi_types.UUID `json:"agentId,omitempty"`
	IsCustomerPaying bool                `json:"isCustomerPaying,omitempty"`
	Packages         []NewPackage        `json:"packages"            validate:"required,min=1,dive"`
	Discounts        []NewDiscount       `json:"discounts,omitempty" validate:"dive"`
}

type NewDeliveryRequest struct {
	CustomerId       openapi_types.UUID  `json:"customerId"`
	BranchId         *openapi_types.UUID `json:"branchId,omitempty"`
	IsCustomerPaying bool                `json:"isCustomerPaying,omitempty"`
	RecipientPhone   string              `json:"recipientPhone"          validate:"required,e164"`
	RecipientName    string              `json:"recipientName,omitempty" validate:"max=200"`
	Package          NewPackage          `json:"package"`
}

type Address struct {
	Street     string   `json:"street"               validate:"required"`
	Unit       string   `json:"unit,omitempty"`
	City       string   `json:"city"                 validate:"required"`
	Region     string   `json:"region,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	Country    string   `json:"country,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"   validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude,omitempty"  validate:"omitempty,longitude"`
}

type DeliveryRequestConfirmation struct {
	Address     Address `json:"address"`
	DropOffNote string  `json:"dropOffNote,omitempty" validate:"max=500"`
}

type DuplicateOrder struct {
	PickUpStart *time.Time `json:"pickUpStart,omitempty"`
}

type CancelPackage struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// NullableUUID remembers whether the field was present in the body, so an
// explicit null can be told apart from an omitted field.
type NullableUUID struct {
	Set   bool
	Value *openapi_types.UUID
}

func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var id openapi_types.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

type PackagePatch struct {
	Size                *string             `json:"size,omitempty"     validate:"omitempty,oneof=SMALL MEDIUM LARGE XLARGE"`
	Priority            *string             `json:"priority,omitempty" validate:"omitempty,oneof=STANDARD EXPRESS"`
	FromContactId       *openapi_types.UUID `json:"fromContactId,omitempty"`
	ToContactId         *openapi_types.UUID `json:"toContactId,omitempty"`
	FromAddressId       *openapi_types.UUID `json:"fromAddressId,omitempty"`
	ToAddressId         *openapi_types.UUID `json:"toAddressId,omitempty"`
	PickUpNote          *string             `json:"pickUpNote,omitempty"`
	DropOffNote         *string             `json:"dropOffNote,omitempty"`
	PickUpStart         *time.Time          `json:"pickUpStart,omitempty"`
	Status              *string             `json:"status,omitempty"`
	DriverId            NullableUUID        `json:"driverId"`
	AssignmentId        NullableUUID        `json:"assignmentId"`
	StaffNote           *string             `json:"staffNote,omitempty"`
	PickUpChangeNote    *string             `json:"pickUpChangeNote,omitempty"`
	IsAssignable        *bool               `json:"isAssignable,omitempty"`
	EnableNotifications *bool               `json:"enableNotifications,omitempty"`
}

type PaymentCallback struct {
	OrderId     openapi_types.UUID   `json:"orderId"`
	ChargeIds   []openapi_types.UUID `json:"chargeIds"             validate:"required,min=1"`
	DiscountIds []openapi_types.UUID `json:"discountIds,omitempty"`
	Outcome     string               `json:"outcome"               validate:"required,oneof=SUCCESS FAILURE"`
}

type Charge struct {
	Id                openapi_types.UUID `json:"id"`
	Type              string             `json:"type"`
	Status            string             `json:"status"`
	Amount            string             `json:"amount"`
	TransactionAmount string             `json:"transactionAmount"`
}

type Discount struct {
	Id     openapi_types.UUID `json:"id"`
	Type   string             `json:"type"`
	Status string             `json:"status"`
	Amount string             `json:"amount"`
}

type Package struct {
	Id             openapi_types.UUID  `json:"id"`
	TrackingNumber string              `json:"trackingNumber"`
	Status         string              `json:"status"`
	Size           string              `json:"size,omitempty"`
	Priority       string              `json:"priority"`
	FromContactId  *openapi_types.UUID `json:"fromContactId,omitempty"`
	ToContactId    *openapi_types.UUID `json:"toContactId,omitempty"`
	FromAddressId  *openapi_types.UUID `json:"fromAddressId,omitempty"`
	ToAddressId    *openapi_types.UUID `json:"toAddressId,omitempty"`
	PickUpStart    *time.Time          `json:"pickUpStart,omitempty"`
	PickUpEnd      *time.Time          `json:"pickUpEnd,omitempty"`
	DriverId       *openapi_types.UUID `json:"driverId,omitempty"`
	CancelReason   string              `json:"cancelReason,omitempty"`
	Charges        []Charge            `json:"charges"`
}

type OrderDetails struct {
	Id               openapi_types.UUID  `json:"id"`
	CustomerId       openapi_types.UUID  `json:"customerId"`
	BranchId         *openapi_types.UUID `json:"branchId,omitempty"`
	Status           string              `json:"status"`
	PlacedAt         *time.Time          `json:"placedAt,omitempty"`
	IsCustomerPaying bool                `json:"isCustomerPaying"`
	CreatedAt        time.Time           `json:"createdAt"`
	Packages         []Package           `json:"packages"`
	Discounts        []Discount          `json:"discounts"`
}

type PackageEvent struct {
	Id           openapi_types.UUID  `json:"id"`
	Name         string              `json:"name"`
	AssignmentId *openapi_types.UUID `json:"assignmentId,omitempty"`
	Metadata     map[string]any      `json:"metadata"`
	CreatedAt    time.Time           `json:"createdAt"`
}
