package queries

import (
	"errors"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery reads the caller's cart; signed-in users and guests alike.
type GetCartQuery struct {
	owner cart.Owner

	guard guard.ConstructorGuard
}

func NewGetCartQuery(session kernel.Session) (GetCartQuery, error) {
	owner, err := cart.OwnerForSession(session)
	if err != nil {
		return GetCartQuery{}, err
	}
	return GetCartQuery{owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) Owner() cart.Owner { return q.owner }

// CartItemView is one priced cart line as last snapshotted.
type CartItemView struct {
	ID        kernel.UUID
	VariantID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// GetCartQueryResponse is the whole cart. ID is zero when the owner has
// never had a cart.
type GetCartQueryResponse struct {
	ID         kernel.UUID
	Version    int
	Items      []CartItemView
	TotalItems int
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// NewCartView renders an aggregate the same way the query renders stored rows.
func NewCartView(c *cart.Cart) GetCartQueryResponse {
	items := c.Items()
	resp := GetCartQueryResponse{
		ID:         c.ID(),
		Version:    c.Version(),
		Items:      make([]CartItemView, 0, len(items)),
		TotalItems: c.TotalItems(),
		Subtotal:   c.Subtotal(),
		Tax:        c.TaxTotal(),
		GrandTotal: c.GrandTotal(),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, CartItemView{
			ID:        it.ID(),
			VariantID: it.VariantID(),
			Quantity:  it.Quantity(),
			UnitPrice: it.Price().Unit,
			TaxRate:   it.Price().TaxRate,
			Subtotal:  it.Subtotal(),
			Tax:       it.TaxAmount(),
			Total:     it.Total(),
		})
	}
	return resp
}

func emptyCartView() GetCartQueryResponse {
	return GetCartQueryResponse{
		Items:      make([]CartItemView, 0),
		Subtotal:   decimal.Zero,
		Tax:        decimal.Zero,
		GrandTotal: decimal.Zero,
	}
}
