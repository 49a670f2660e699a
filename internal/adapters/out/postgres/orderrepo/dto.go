// Package orderrepo maps placed orders with their frozen lines and addresses.
package orderrepo

import (
	"time"

	"checkout/internal/core/domain/model/address"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO stores enums by their wire names so the tables stay readable.
type OrderDTO struct {
	ID                    uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status                string            `gorm:"type:varchar(16);not null;index"`
	PaymentStatus         string            `gorm:"type:varchar(16);not null"`
	PaymentMethod         string            `gorm:"type:varchar(16);not null"`
	Subtotal              decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Discount              decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Tax                   decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	Shipping              decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	GrandTotal            decimal.Decimal   `gorm:"type:numeric(12,2);not null"`
	CouponCode            string            `gorm:"type:varchar(32);not null"`
	RazorpayOrderID       string            `gorm:"type:varchar(64);not null;uniqueIndex:idx_orders_razorpay_order_id,where:razorpay_order_id <> ''"`
	RazorpayPaymentID     string            `gorm:"type:varchar(64);not null"`
	EstimatedDeliveryDate *time.Time        `gorm:"type:timestamptz"`
	ActualDeliveryDate    *time.Time        `gorm:"type:timestamptz"`
	CreatedAt             time.Time         `gorm:"not null;index"`
	UpdatedAt             time.Time         `gorm:"not null"`
	Version               int               `gorm:"not null"`
	Items                 []OrderItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Addresses             []OrderAddressDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null"`
	Title     string          `gorm:"type:varchar(255);not null"`
	SKU       string          `gorm:"column:sku;type:varchar(64);not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	TaxRate   decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	TaxAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type OrderAddressDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type    string    `gorm:"type:varchar(16);not null"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Phone   string    `gorm:"type:varchar(32);not null"`
	Line1   string    `gorm:"type:varchar(255);not null"`
	Line2   string    `gorm:"type:varchar(255);not null"`
	City    string    `gorm:"type:varchar(128);not null"`
	State   string    `gorm:"type:varchar(128);not null"`
	Country string    `gorm:"type:varchar(64);not null"`
	Pincode string    `gorm:"type:varchar(6);not null"`
}

func (OrderAddressDTO) TableName() string {
	return "order_addresses"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	totals := o.Totals()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, it := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:        it.ID.Bytes(),
			OrderID:   id,
			Position:  i,
			VariantID: it.VariantID.Bytes(),
			Title:     it.Title,
			SKU:       it.SKU,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			TaxRate:   it.TaxRate,
			TaxAmount: it.TaxAmount,
		})
	}

	addresses := make([]OrderAddressDTO, 0, len(o.Addresses()))
	for _, a := range o.Addresses() {
		addresses = append(addresses, OrderAddressDTO{
			ID:      kernel.NewUUID().Bytes(),
			OrderID: id,
			Type:    a.Type.String(),
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

	return OrderDTO{
		ID:                    id,
		UserID:                o.UserID().Bytes(),
		Status:                o.Status().String(),
		PaymentStatus:         o.PaymentStatus().String(),
		PaymentMethod:         o.PaymentMethod().String(),
		Subtotal:              totals.Subtotal,
		Discount:              totals.Discount,
		Tax:                   totals.Tax,
		Shipping:              totals.Shipping,
		GrandTotal:            totals.Grand,
		CouponCode:            o.CouponCode(),
		RazorpayOrderID:       o.RazorpayOrderID(),
		RazorpayPaymentID:     o.RazorpayPaymentID(),
		EstimatedDeliveryDate: o.EstimatedDeliveryDate(),
		ActualDeliveryDate:    o.ActualDeliveryDate(),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
		Version:               o.Version(),
		Items:                 items,
		Addresses:             addresses,
	}
}

// toDomain expects Items sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		it, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	addresses := make([]order.Address, 0, len(dto.Addresses))
	for _, addrDto := range dto.Addresses {
		typ, typeErr := order.ParseAddressType(addrDto.Type)
		if typeErr != nil {
			return nil, typeErr
		}
		addresses = append(addresses, order.Address{
			Type: typ,
			Details: address.Details{
				Name:    addrDto.Name,
				Phone:   addrDto.Phone,
				Line1:   addrDto.Line1,
				Line2:   addrDto.Line2,
				City:    addrDto.City,
				State:   addrDto.State,
				Country: addrDto.Country,
				Pincode: addrDto.Pincode,
			},
		})
	}

	return order.RestoreOrder(order.State{
		ID:            id,
		UserID:        userID,
		Status:        status,
		PaymentStatus: paymentStatus,
		PaymentMethod: method,
		Items:         items,
		Addresses:     addresses,
		Totals: order.Totals{
			Subtotal: dto.Subtotal,
			Discount: dto.Discount,
			Tax:      dto.Tax,
			Shipping: dto.Shipping,
			Grand:    dto.GrandTotal,
		},
		CouponCode:            dto.CouponCode,
		RazorpayOrderID:       dto.RazorpayOrderID,
		RazorpayPaymentID:     dto.RazorpayPaymentID,
		EstimatedDeliveryDate: dto.EstimatedDeliveryDate,
		ActualDeliveryDate:    dto.ActualDeliveryDate,
		CreatedAt:             dto.CreatedAt,
		UpdatedAt:             dto.UpdatedAt,
		Version:               dto.Version,
	})
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return order.Item{}, err
	}
	return order.Item{
		ID:        id,
		VariantID: variantID,
		Title:     dto.Title,
		SKU:       dto.SKU,
		UnitPrice: dto.UnitPrice,
		Quantity:  dto.Quantity,
		TaxRate:   dto.TaxRate,
		TaxAmount: dto.TaxAmount,
	}, nil
}
