// Package contactrepo stores the customer's contact book: saved contacts and
// addresses, the immutable snapshots orders point at, and the notes kept per
// contact/address pair.
package contactrepo

import (
	"time"

	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ContactDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_contacts_customer_phone,priority:1"`
	IsSaved     bool       `gorm:"not null"`
	ParentID    *uuid.UUID `gorm:"type:uuid"`
	Name        string     `gorm:"type:varchar(255)"`
	PhoneNumber string     `gorm:"type:varchar(32);index:idx_contacts_customer_phone,priority:2"`
	Email       string     `gorm:"type:varchar(255)"`
	Company     string     `gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (ContactDTO) TableName() string {
	return "contacts"
}

type AddressDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsSaved    bool       `gorm:"not null"`
	ParentID   *uuid.UUID `gorm:"type:uuid"`
	Street     string     `gorm:"type:varchar(255);not null"`
	Unit       string     `gorm:"type:varchar(64)"`
	City       string     `gorm:"type:varchar(128)"`
	Region     string     `gorm:"type:varchar(128)"`
	PostalCode string     `gorm:"type:varchar(16)"`
	Country    string     `gorm:"type:varchar(64)"`
	Latitude   *float64
	Longitude  *float64
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

type AssociationDTO struct {
	ContactID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AddressID uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastNote  string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AssociationDTO) TableName() string {
	return "contact_address_associations"
}

func contactFromDomain(c contact.Contact) ContactDTO {
	f := c.Fields()
	return ContactDTO{
		ID:          c.ID().Bytes(),
		CustomerID:  c.CustomerID().Bytes(),
		IsSaved:     c.IsSaved(),
		ParentID:    pgutil.UUIDPtr(c.ParentID()),
		Name:        f.Name,
		PhoneNumber: f.PhoneNumber,
		Email:       f.Email,
		Company:     f.Company,
	}
}

func contactToDomain(dto ContactDTO) (contact.Contact, error) {
	id, err := pgutil.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := pgutil.KernelUUID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	fields := contact.ContactFields{
		Name:        dto.Name,
		PhoneNumber: dto.PhoneNumber,
		Email:       dto.Email,
		Company:     dto.Company,
	}
	if dto.IsSaved {
		return contact.NewSavedContact(id, customerID, fields)
	}
	parentID, err := pgutil.KernelUUIDPtr(dto.ParentID)
	if err != nil {
		return nil, err
	}
	return contact.NewContactSnapshot(id, customerID, parentID, fields)
}

func addressFromDomain(a contact.Address) AddressDTO {
	f := a.Fields()
	dto := AddressDTO{
		ID:         a.ID().Bytes(),
		CustomerID: a.CustomerID().Bytes(),
		IsSaved:    a.IsSaved(),
		ParentID:   pgutil.UUIDPtr(a.ParentID()),
		Street:     f.Street,
		Unit:       f.Unit,
		City:       f.City,
		Region:     f.Region,
		PostalCode: f.PostalCode,
		Country:    f.Country,
	}
	if f.Location != nil {
		lat, lng := f.Location.Latitude(), f.Location.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lng
	}
	return dto
}

func addressToDomain(dto AddressDTO) (contact.Address, error) {
	id, err := pgutil.KernelUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := pgutil.KernelUUID(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	fields := contact.AddressFields{
		Street:     dto.Street,
		Unit:       dto.Unit,
		City:       dto.City,
		Region:     dto.Region,
		PostalCode: dto.PostalCode,
		Country:    dto.Country,
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		location, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return nil, err
		}
		fields.Location = &location
	}
	if dto.IsSaved {
		return contact.NewSavedAddress(id, customerID, fields)
	}
	parentID, err := pgutil.KernelUUIDPtr(dto.ParentID)
	if err != nil {
		return nil, err
	}
	return contact.NewAddressSnapshot(id, customerID, parentID, fields)
}
