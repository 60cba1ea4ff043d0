package contactrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/pgutil"
	"orderflow/internal/core/domain/model/contact"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormContactAddressRepository implements ports.ContactAddressRepository
// using GORM.
type GormContactAddressRepository struct {
	db *gorm.DB
}

func NewGormContactAddressRepository(db *gorm.DB) *GormContactAddressRepository {
	return &GormContactAddressRepository{db: db}
}

func (r *GormContactAddressRepository) GetContact(ctx context.Context, id kernel.UUID) (contact.Contact, error) {
	var dto ContactDTO
	err := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("contact", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "select contact")
	}
	return contactToDomain(dto)
}

func (r *GormContactAddressRepository) GetAddress(ctx context.Context, id kernel.UUID) (contact.Address, error) {
	var dto AddressDTO
	err := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("address", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "select address")
	}
	return addressToDomain(dto)
}

func (r *GormContactAddressRepository) AddContact(ctx context.Context, c contact.Contact) error {
	dto := contactFromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgutil.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("contact id", err)
		}
		return errors.Wrap(err, "insert contact")
	}
	return nil
}

func (r *GormContactAddressRepository) AddAddress(ctx context.Context, a contact.Address) error {
	dto := addressFromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgutil.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("address id", err)
		}
		return errors.Wrap(err, "insert address")
	}
	return nil
}

// FindOrCreateContactByPhone matches saved contacts only; snapshots sharing
// the number are ignored.
func (r *GormContactAddressRepository) FindOrCreateContactByPhone(
	ctx context.Context,
	customerID kernel.UUID,
	phone, name string,
) (*contact.SavedContact, error) {
	var dto ContactDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND phone_number = ? AND is_saved", customerID.Bytes(), phone).
		Order("created_at, id").
		Take(&dto).Error
	switch {
	case err == nil:
		found, err := contactToDomain(dto)
		if err != nil {
			return nil, err
		}
		saved, ok := found.(*contact.SavedContact)
		if !ok {
			return nil, errors.Errorf("contact %s is not a saved contact", dto.ID)
		}
		return saved, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrap(err, "select contact by phone")
	}

	created, err := contact.NewSavedContact(kernel.NewUUID(), customerID, contact.ContactFields{
		Name:        name,
		PhoneNumber: phone,
	})
	if err != nil {
		return nil, err
	}
	if err := r.AddContact(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *GormContactAddressRepository) GetAssociation(
	ctx context.Context,
	key contact.AssociationKey,
) (*contact.Association, error) {
	var dto AssociationDTO
	err := r.db.WithContext(ctx).
		Where("contact_id = ? AND address_id = ?", key.ContactID.Bytes(), key.AddressID.Bytes()).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("association", key.ContactID.String()+"/"+key.AddressID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "select association")
	}
	return contact.NewAssociation(key.ContactID, key.AddressID, dto.LastNote)
}

// SaveAssociations upserts on the (contact, address) key, overwriting the
// stored note.
func (r *GormContactAddressRepository) SaveAssociations(
	ctx context.Context,
	associations ...*contact.Association,
) error {
	if len(associations) == 0 {
		return nil
	}

	dtos := make([]AssociationDTO, 0, len(associations))
	for _, a := range associations {
		dtos = append(dtos, AssociationDTO{
			ContactID: a.ContactID().Bytes(),
			AddressID: a.AddressID().Bytes(),
			LastNote:  a.LastNote(),
		})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contact_id"}, {Name: "address_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_note", "updated_at"}),
		}).
		Create(&dtos).Error
	if err != nil {
		return errors.Wrap(err, "upsert associations")
	}
	return nil
}
