package address

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

var (
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// Details is the user-editable part of an address.
type Details struct {
	Name    string
	Phone   string
	Line1   string
	Line2   string
	City    string
	State   string
	Country string
	Pincode string
}

// Address is a shipping or billing address owned by a single user.
type Address struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	details   Details
	isDefault bool
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewAddress validates details and returns a non-default address. Whether it
// becomes the default is decided by the owner's Book.
func NewAddress(id, ownerID kernel.UUID, details Details, createdAt time.Time) (*Address, error) {
	a := &Address{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setOwner(ownerID),
		a.setDetails(details),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAddress rebuilds an address from persistence.
func RestoreAddress(id, ownerID kernel.UUID, details Details, isDefault bool, createdAt time.Time) (*Address, error) {
	a, err := NewAddress(id, ownerID, details, createdAt)
	if err != nil {
		return nil, err
	}
	a.isDefault = isDefault
	return a, nil
}

func (a *Address) Validate() error {
	if a == nil {
		return ErrAddressIsNotConstructed
	}
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a *Address) ID() kernel.UUID      { return a.id }
func (a *Address) OwnerID() kernel.UUID { return a.ownerID }
func (a *Address) Details() Details     { return a.details }
func (a *Address) IsDefault() bool      { return a.isDefault }
func (a *Address) CreatedAt() time.Time { return a.createdAt }

// IsOwnedBy reports whether userID owns the address.
func (a *Address) IsOwnedBy(userID kernel.UUID) bool {
	return a.ownerID.IsEqual(userID)
}

// Update replaces the editable details.
func (a *Address) Update(details Details) error {
	return a.setDetails(details)
}

func (a *Address) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Address) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	a.ownerID = ownerID
	return nil
}

func (a *Address) setDetails(d Details) error {
	d = normalize(d)

	var problems []error
	for _, field := range []struct{ name, value string }{
		{"name", d.Name},
		{"line1", d.Line1},
		{"city", d.City},
		{"state", d.State},
		{"country", d.Country},
	} {
		if field.value == "" {
			problems = append(problems, errs.NewValueIsRequiredError(field.name))
		}
	}
	if !pincodePattern.MatchString(d.Pincode) {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("pincode", fmt.Errorf("%q is not a 6 digit pincode", d.Pincode)))
	}
	if d.Phone != "" && !phonePattern.MatchString(d.Phone) {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q is not a phone number", d.Phone)))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	a.details = d
	return nil
}

func normalize(d Details) Details {
	return Details{
		Name:    strings.TrimSpace(d.Name),
		Phone:   strings.ReplaceAll(strings.TrimSpace(d.Phone), " ", ""),
		Line1:   strings.TrimSpace(d.Line1),
		Line2:   strings.TrimSpace(d.Line2),
		City:    strings.TrimSpace(d.City),
		State:   strings.TrimSpace(d.State),
		Country: strings.ToUpper(strings.TrimSpace(d.Country)),
		Pincode: strings.TrimSpace(d.Pincode),
	}
}
