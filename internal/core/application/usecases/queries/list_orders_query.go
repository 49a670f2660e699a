package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const maxListOrdersLimit = 100

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through the caller's orders, newest first.
type ListOrdersQuery struct {
	userID kernel.UUID
	limit  int
	offset int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(session kernel.Session, limit, offset int) (ListOrdersQuery, error) {
	userID, err := session.RequireUser()
	if err != nil {
		return ListOrdersQuery{}, err
	}
	if limit < 1 || limit > maxListOrdersLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxListOrdersLimit)
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("offset")
	}
	return ListOrdersQuery{userID: userID, limit: limit, offset: offset, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) UserID() kernel.UUID { return q.userID }
func (q ListOrdersQuery) Limit() int          { return q.limit }
func (q ListOrdersQuery) Offset() int         { return q.offset }

type OrderListItem struct {
	ID            kernel.UUID
	Status        string
	PaymentStatus string
	PaymentMethod string
	GrandTotal    decimal.Decimal
	ItemCount     int
	CreatedAt     time.Time
}
