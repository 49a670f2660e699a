// Package addressrepo maps the address book to the addresses table.
package addressrepo

import (
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AddressDTO is one saved address. At most one row per owner has IsDefault set;
// the repository relies on the owner lock for that, not on an index.
type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32);not null"`
	Line1     string    `gorm:"type:varchar(255);not null"`
	Line2     string    `gorm:"type:varchar(255);not null"`
	City      string    `gorm:"type:varchar(128);not null"`
	State     string    `gorm:"type:varchar(128);not null"`
	Country   string    `gorm:"type:varchar(64);not null"`
	Pincode   string    `gorm:"type:varchar(6);not null"`
	IsDefault bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(a *address.Address) AddressDTO {
	d := a.Details()
	return AddressDTO{
		ID:        a.ID().Bytes(),
		OwnerID:   a.OwnerID().Bytes(),
		Name:      d.Name,
		Phone:     d.Phone,
		Line1:     d.Line1,
		Line2:     d.Line2,
		City:      d.City,
		State:     d.State,
		Country:   d.Country,
		Pincode:   d.Pincode,
		IsDefault: a.IsDefault(),
		CreatedAt: a.CreatedAt(),
	}
}

func toDomain(dto AddressDTO) (*address.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return address.RestoreAddress(id, ownerID, address.Details{
		Name:    dto.Name,
		Phone:   dto.Phone,
		Line1:   dto.Line1,
		Line2:   dto.Line2,
		City:    dto.City,
		State:   dto.State,
		Country: dto.Country,
		Pincode: dto.Pincode,
	}, dto.IsDefault, dto.CreatedAt)
}
