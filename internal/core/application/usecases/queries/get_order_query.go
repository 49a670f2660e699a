package queries

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order. Customers may only read their own orders;
// admins may read any.
type GetOrderQuery struct {
	userID  kernel.UUID
	isAdmin bool
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(session kernel.Session, orderID kernel.UUID) (GetOrderQuery, error) {
	userID, err := session.RequireUser()
	if err != nil {
		return GetOrderQuery{}, err
	}
	if orderID.IsZero() {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetOrderQuery{
		userID:  userID,
		isAdmin: session.IsAdmin(),
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) UserID() kernel.UUID  { return q.userID }
func (q GetOrderQuery) IsAdmin() bool        { return q.isAdmin }
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

type OrderItemView struct {
	ID        kernel.UUID
	VariantID kernel.UUID
	Title     string
	SKU       string
	UnitPrice decimal.Decimal
	Quantity  int
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
}

type OrderAddressView struct {
	Type    string
	Details address.Details
}

// OrderView is the frozen order as shown to customers and admins.
type OrderView struct {
	ID                    kernel.UUID
	UserID                kernel.UUID
	Status                string
	PaymentStatus         string
	PaymentMethod         string
	Items                 []OrderItemView
	Addresses             []OrderAddressView
	Totals                order.Totals
	CouponCode            string
	RazorpayOrderID       string
	RazorpayPaymentID     string
	EstimatedDeliveryDate *time.Time
	ActualDeliveryDate    *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewOrderView renders an aggregate the same way GetOrderQuery renders rows.
func NewOrderView(o *order.Order) OrderView {
	s := o.State()
	v := OrderView{
		ID:                    s.ID,
		UserID:                s.UserID,
		Status:                s.Status.String(),
		PaymentStatus:         s.PaymentStatus.String(),
		PaymentMethod:         s.PaymentMethod.String(),
		Items:                 make([]OrderItemView, 0, len(s.Items)),
		Addresses:             make([]OrderAddressView, 0, len(s.Addresses)),
		Totals:                s.Totals,
		CouponCode:            s.CouponCode,
		RazorpayOrderID:       s.RazorpayOrderID,
		RazorpayPaymentID:     s.RazorpayPaymentID,
		EstimatedDeliveryDate: s.EstimatedDeliveryDate,
		ActualDeliveryDate:    s.ActualDeliveryDate,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	for _, it := range s.Items {
		v.Items = append(v.Items, OrderItemView{
			ID:        it.ID,
			VariantID: it.VariantID,
			Title:     it.Title,
			SKU:       it.SKU,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			TaxRate:   it.TaxRate,
			TaxAmount: it.TaxAmount,
		})
	}
	for _, a := range s.Addresses {
		v.Addresses = append(v.Addresses, OrderAddressView{Type: a.Type.String(), Details: a.Details})
	}
	return v
}
