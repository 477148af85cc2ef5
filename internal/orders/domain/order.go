package domain

import (
	"time"

	"github.com/dejobratic/storefront/internal/money"
)

// Order is the persisted record of a checkout. Item rows are snapshots taken
// at checkout time so later product edits do not rewrite order history.
type Order struct {
	ID              string        `bson:"_id" json:"id"`
	OrderNumber     string        `bson:"orderNumber" json:"orderNumber"`
	UserID          string        `bson:"userId" json:"userId"`
	Items           []OrderItem   `bson:"items" json:"items"`
	Subtotal        money.Cents   `bson:"subtotal" json:"subtotal"`
	Tax             money.Cents   `bson:"tax" json:"tax"`
	ShippingCost    money.Cents   `bson:"shippingCost" json:"shippingCost"`
	Discount        money.Cents   `bson:"discount" json:"discount"`
	Total           money.Cents   `bson:"total" json:"total"`
	Status          OrderStatus   `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaymentID       string        `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PaymentMethod   string        `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	ShippingAddress Address       `bson:"shippingAddress" json:"shippingAddress"`
	BillingAddress  Address       `bson:"billingAddress" json:"billingAddress"`
	TrackingNumber  string        `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	Notes           string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem is a point-in-time copy of a product line at checkout.
type OrderItem struct {
	ProductID   string      `bson:"productId" json:"productId"`
	ProductName string      `bson:"productName" json:"productName"`
	ImageURL    string      `bson:"productImageUrl,omitempty" json:"productImageUrl,omitempty"`
	Unit        string      `bson:"unit,omitempty" json:"unit,omitempty"`
	Price       money.Cents `bson:"price" json:"price"`
	Quantity    int         `bson:"quantity" json:"quantity"`
	Subtotal    money.Cents `bson:"subtotal" json:"subtotal"`
}

// Address is where the order ships.
type Address struct {
	FullName    string `bson:"fullName" json:"fullName"`
	Line1       string `bson:"addressLine1" json:"addressLine1"`
	Line2       string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City        string `bson:"city" json:"city"`
	State       string `bson:"state" json:"state"`
	PostalCode  string `bson:"postalCode" json:"postalCode"`
	Country     string `bson:"country" json:"country"`
	PhoneNumber string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
}

// CalculateTotals fills in line subtotals and the order's money fields from
// the item snapshots and the given discount. Shipping is free once the
// subtotal reaches the free-shipping threshold.
func (o *Order) CalculateTotals(discount money.Cents) {
	var subtotal money.Cents
	for i := range o.Items {
		o.Items[i].Subtotal = o.Items[i].Price.Times(o.Items[i].Quantity)
		subtotal += o.Items[i].Subtotal
	}

	o.Subtotal = subtotal
	o.Tax = subtotal.ApplyRate(money.TaxRate)
	o.ShippingCost = money.ShippingCost(subtotal)
	o.Discount = discount

	total := subtotal + o.Tax + o.ShippingCost - discount
	if total < 0 {
		total = 0
	}
	o.Total = total
}
