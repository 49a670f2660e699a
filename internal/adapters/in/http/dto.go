package http

import (
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/coupon"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func optionalMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)
	return &s
}

// Cart

type AddCartItemRequest struct {
	VariantID string `json:"variantId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ID        string `json:"id"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	TaxRate   string `json:"taxRate"`
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
}

type CartResponse struct {
	ID         string             `json:"id,omitempty"`
	Version    int                `json:"version"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	Subtotal   string             `json:"subtotal"`
	Tax        string             `json:"tax"`
	GrandTotal string             `json:"grandTotal"`
}

func newCartResponse(v queries.GetCartQueryResponse) CartResponse {
	resp := CartResponse{
		Version:    v.Version,
		Items:      make([]CartItemResponse, 0, len(v.Items)),
		TotalItems: v.TotalItems,
		Subtotal:   money(v.Subtotal),
		Tax:        money(v.Tax),
		GrandTotal: money(v.GrandTotal),
	}
	if !v.ID.IsZero() {
		resp.ID = v.ID.String()
	}
	for _, it := range v.Items {
		resp.Items = append(resp.Items, CartItemResponse{
			ID:        it.ID.String(),
			VariantID: it.VariantID.String(),
			Quantity:  it.Quantity,
			UnitPrice: money(it.UnitPrice),
			TaxRate:   it.TaxRate.String(),
			Subtotal:  money(it.Subtotal),
			Tax:       money(it.Tax),
			Total:     money(it.Total),
		})
	}
	return resp
}

// Addresses

type AddressRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Phone     string `json:"phone" validate:"required"`
	Line1     string `json:"line1" validate:"required,max=200"`
	Line2     string `json:"line2" validate:"max=200"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Pincode   string `json:"pincode" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

func (r AddressRequest) details() address.Details {
	return address.Details{
		Name:    r.Name,
		Phone:   r.Phone,
		Line1:   r.Line1,
		Line2:   r.Line2,
		City:    r.City,
		State:   r.State,
		Country: r.Country,
		Pincode: r.Pincode,
	}
}

type AddressResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Line1     string    `json:"line1"`
	Line2     string    `json:"line2,omitempty"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	Pincode   string    `json:"pincode"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

func newAddressResponse(v queries.AddressView) AddressResponse {
	return AddressResponse{
		ID:        v.ID.String(),
		Name:      v.Details.Name,
		Phone:     v.Details.Phone,
		Line1:     v.Details.Line1,
		Line2:     v.Details.Line2,
		City:      v.Details.City,
		State:     v.Details.State,
		Country:   v.Details.Country,
		Pincode:   v.Details.Pincode,
		IsDefault: v.IsDefault,
		CreatedAt: v.CreatedAt,
	}
}

// Coupons

type EvaluateCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type CouponOutcomeResponse struct {
	Code     string `json:"code"`
	Accepted bool   `json:"accepted"`
	Discount string `json:"discount"`
	Reason   string `json:"reason,omitempty"`
}

func newCouponOutcomeResponse(o coupon.Outcome) CouponOutcomeResponse {
	return CouponOutcomeResponse{
		Code:     o.Code(),
		Accepted: o.IsAccepted(),
		Discount: money(o.Discount()),
		Reason:   o.Reason().String(),
	}
}

type EvaluateCouponResponse struct {
	CouponOutcomeResponse
	Subtotal string `json:"subtotal"`
}

type CreateCouponRequest struct {
	Code              string           `json:"code" validate:"required"`
	Type              string           `json:"type" validate:"required,oneof=PERCENTAGE FIXED percentage fixed"`
	Value             decimal.Decimal  `json:"value"`
	MinOrderAmount    *decimal.Decimal `json:"minOrderAmount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount,omitempty"`
	StartAt           time.Time        `json:"startAt" validate:"required"`
	EndAt             time.Time        `json:"endAt" validate:"required"`
	UsageLimit        int              `json:"usageLimit" validate:"gte=0"`
	PerUserLimit      int              `json:"perUserLimit" validate:"gte=0"`
}

func (r CreateCouponRequest) terms() (coupon.Terms, error) {
	t, err := coupon.ParseType(r.Type)
	if err != nil {
		return coupon.Terms{}, err
	}
	return coupon.Terms{
		Type:              t,
		Value:             r.Value,
		MinOrderAmount:    r.MinOrderAmount,
		MaxDiscountAmount: r.MaxDiscountAmount,
		StartAt:           r.StartAt.UTC(),
		EndAt:             r.EndAt.UTC(),
		UsageLimit:        r.UsageLimit,
		PerUserLimit:      r.PerUserLimit,
	}, nil
}

type CouponResponse struct {
	ID                string    `json:"id"`
	Code              string    `json:"code"`
	Type              string    `json:"type"`
	Value             string    `json:"value"`
	MinOrderAmount    *string   `json:"minOrderAmount,omitempty"`
	MaxDiscountAmount *string   `json:"maxDiscountAmount,omitempty"`
	StartAt           time.Time `json:"startAt"`
	EndAt             time.Time `json:"endAt"`
	UsageLimit        int       `json:"usageLimit"`
	PerUserLimit      int       `json:"perUserLimit"`
	UsedCount         int       `json:"usedCount"`
	IsActive          bool      `json:"isActive"`
}

func newCouponResponse(c *coupon.Coupon) CouponResponse {
	t := c.Terms()
	return CouponResponse{
		ID:                c.ID().String(),
		Code:              c.Code(),
		Type:              t.Type.String(),
		Value:             t.Value.String(),
		MinOrderAmount:    optionalMoney(t.MinOrderAmount),
		MaxDiscountAmount: optionalMoney(t.MaxDiscountAmount),
		StartAt:           t.StartAt,
		EndAt:             t.EndAt,
		UsageLimit:        t.UsageLimit,
		PerUserLimit:      t.PerUserLimit,
		UsedCount:         c.UsedCount(),
		IsActive:          c.IsActive(),
	}
}

// Checkout

type CheckoutSummaryRequest struct {
	AddressID     string `json:"addressId" validate:"required,uuid"`
	CouponCode    string `json:"couponCode"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

type SummaryLineResponse struct {
	ItemID    string `json:"itemId"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	TaxRate   string `json:"taxRate"`
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
}

type CheckoutSummaryResponse struct {
	CartID            string                 `json:"cartId"`
	CartVersion       int                    `json:"cartVersion"`
	Lines             []SummaryLineResponse  `json:"lines"`
	Address           *AddressResponse       `json:"address,omitempty"`
	PaymentMethod     string                 `json:"paymentMethod"`
	Subtotal          string                 `json:"subtotal"`
	Shipping          string                 `json:"shipping"`
	Tax               string                 `json:"tax"`
	Discount          string                 `json:"discount"`
	GrandTotal        string                 `json:"grandTotal"`
	Coupon            *CouponOutcomeResponse `json:"coupon,omitempty"`
	EstimatedDelivery time.Time              `json:"estimatedDelivery"`
}

func newSummaryResponse(s services.Summary) CheckoutSummaryResponse {
	resp := CheckoutSummaryResponse{
		CartID:            s.CartID.String(),
		CartVersion:       s.CartVersion,
		Lines:             make([]SummaryLineResponse, 0, len(s.Lines)),
		PaymentMethod:     s.PaymentMethod.String(),
		Subtotal:          money(s.Subtotal),
		Shipping:          money(s.Shipping),
		Tax:               money(s.Tax),
		Discount:          money(s.Discount),
		GrandTotal:        money(s.GrandTotal),
		EstimatedDelivery: s.EstimatedDelivery,
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, SummaryLineResponse{
			ItemID:    l.ItemID.String(),
			VariantID: l.VariantID.String(),
			Quantity:  l.Quantity,
			UnitPrice: money(l.UnitPrice),
			TaxRate:   l.TaxRate.String(),
			Subtotal:  money(l.Subtotal),
			Tax:       money(l.Tax),
			Total:     money(l.Total),
		})
	}
	if s.Address != nil {
		a := newAddressResponse(queries.NewAddressView(s.Address))
		resp.Address = &a
	}
	if s.Coupon != nil {
		c := newCouponOutcomeResponse(*s.Coupon)
		resp.Coupon = &c
	}
	return resp
}

type PaymentIntentRequest struct {
	AddressID  string `json:"addressId" validate:"required,uuid"`
	CouponCode string `json:"couponCode"`
}

type PaymentIntentResponse struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	CartVersion    int    `json:"cartVersion"`
}

func newPaymentIntentResponse(p commands.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		GatewayOrderID: p.GatewayOrder.ID,
		Amount:         money(p.GatewayOrder.Amount),
		Currency:       p.GatewayOrder.Currency,
		CartVersion:    p.Summary.CartVersion,
	}
}

// Orders

type PaymentProofRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId" validate:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	RazorpaySignature string `json:"razorpaySignature" validate:"required,hexadecimal"`
}

type PlaceOrderRequest struct {
	AddressID           string               `json:"addressId" validate:"required,uuid"`
	BillingAddressID    string               `json:"billingAddressId" validate:"omitempty,uuid"`
	PaymentMethod       string               `json:"paymentMethod" validate:"required"`
	CouponCode          string               `json:"couponCode"`
	GatewayOrderID      string               `json:"gatewayOrderId"`
	ExpectedCartVersion *int                 `json:"expectedCartVersion" validate:"omitempty,gte=0"`
	PaymentProof        *PaymentProofRequest `json:"paymentProof"`
}

type OrderStatusResponse struct {
	OrderID       string `json:"orderId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

func newOrderStatusResponse(o *order.Order) OrderStatusResponse {
	return OrderStatusResponse{
		OrderID:       o.ID().String(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
	}
}

type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderItemResponse struct {
	ID        string `json:"id"`
	VariantID string `json:"variantId"`
	Title     string `json:"title"`
	SKU       string `json:"sku,omitempty"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	TaxRate   string `json:"taxRate"`
	TaxAmount string `json:"taxAmount"`
}

type OrderAddressResponse struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Pincode string `json:"pincode"`
}

type OrderResponse struct {
	ID                    string                 `json:"id"`
	UserID                string                 `json:"userId"`
	Status                string                 `json:"status"`
	PaymentStatus         string                 `json:"paymentStatus"`
	PaymentMethod         string                 `json:"paymentMethod"`
	Items                 []OrderItemResponse    `json:"items"`
	Addresses             []OrderAddressResponse `json:"addresses"`
	Subtotal              string                 `json:"subtotal"`
	Discount              string                 `json:"discount"`
	Tax                   string                 `json:"tax"`
	Shipping              string                 `json:"shipping"`
	GrandTotal            string                 `json:"grandTotal"`
	CouponCode            string                 `json:"couponCode,omitempty"`
	RazorpayOrderID       string                 `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID     string                 `json:"razorpayPaymentId,omitempty"`
	EstimatedDeliveryDate *time.Time             `json:"estimatedDeliveryDate,omitempty"`
	ActualDeliveryDate    *time.Time             `json:"actualDeliveryDate,omitempty"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

func newOrderResponse(v queries.OrderView) OrderResponse {
	resp := OrderResponse{
		ID:                    v.ID.String(),
		UserID:                v.UserID.String(),
		Status:                v.Status,
		PaymentStatus:         v.PaymentStatus,
		PaymentMethod:         v.PaymentMethod,
		Items:                 make([]OrderItemResponse, 0, len(v.Items)),
		Addresses:             make([]OrderAddressResponse, 0, len(v.Addresses)),
		Subtotal:              money(v.Totals.Subtotal),
		Discount:              money(v.Totals.Discount),
		Tax:                   money(v.Totals.Tax),
		Shipping:              money(v.Totals.Shipping),
		GrandTotal:            money(v.Totals.Grand),
		CouponCode:            v.CouponCode,
		RazorpayOrderID:       v.RazorpayOrderID,
		RazorpayPaymentID:     v.RazorpayPaymentID,
		EstimatedDeliveryDate: v.EstimatedDeliveryDate,
		ActualDeliveryDate:    v.ActualDeliveryDate,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
	}
	for _, it := range v.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        it.ID.String(),
			VariantID: it.VariantID.String(),
			Title:     it.Title,
			SKU:       it.SKU,
			UnitPrice: money(it.UnitPrice),
			Quantity:  it.Quantity,
			TaxRate:   it.TaxRate.String(),
			TaxAmount: money(it.TaxAmount),
		})
	}
	for _, a := range v.Addresses {
		resp.Addresses = append(resp.Addresses, OrderAddressResponse{
			Type:    a.Type,
			Name:    a.Details.Name,
			Phone:   a.Details.Phone,
			Line1:   a.Details.Line1,
			Line2:   a.Details.Line2,
			City:    a.Details.City,
			State:   a.Details.State,
			Country: a.Details.Country,
			Pincode: a.Details.Pincode,
		})
	}
	return resp
}

type OrderListItemResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod"`
	GrandTotal    string    `json:"grandTotal"`
	ItemCount     int       `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type OrderListResponse struct {
	Orders []OrderListItemResponse `json:"orders"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// Payments

type PaymentCallbackRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId" validate:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" validate:"required"`
	RazorpaySignature string `json:"razorpaySignature"`
	Status            string `json:"status" validate:"required"`
}
