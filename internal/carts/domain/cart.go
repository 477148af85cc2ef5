package domain

import (
	"time"

	"github.com/dejobratic/storefront/internal/money"
)

// CartItem is a snapshot of a product at the moment it was added: price, name
// and image do not track later catalog changes.
type CartItem struct {
	ProductID   string      `bson:"productId" json:"product_id"`
	ProductName string      `bson:"productName" json:"product_name"`
	ImageURL    string      `bson:"imageUrl,omitempty" json:"image_url,omitempty"`
	Unit        string      `bson:"unit,omitempty" json:"unit,omitempty"`
	Price       money.Cents `bson:"price" json:"price"`
	Quantity    int         `bson:"quantity" json:"quantity"`
}

// Cart holds a user's pending items. Subtotal is derived and recomputed in
// full after every mutation, never set independently.
type Cart struct {
	ID        string      `bson:"_id,omitempty" json:"id"`
	UserID    string      `bson:"userId" json:"user_id"`
	Items     []CartItem  `bson:"items" json:"items"`
	Subtotal  money.Cents `bson:"subtotal" json:"subtotal"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updated_at"`
}

// AddItem merges into an existing line for the same product (summing
// quantities, keeping the original snapshot) or appends a new line.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			c.RecalculateSubtotal()
			return
		}
	}

	c.Items = append(c.Items, item)
	c.RecalculateSubtotal()
}

// SetItemQuantity replaces the quantity of an existing line. It reports
// whether a line for the product was found.
func (c *Cart) SetItemQuantity(productID string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.RecalculateSubtotal()
			return true
		}
	}
	return false
}

// RemoveItem deletes the line for the product; removing an absent product is
// a no-op.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.RecalculateSubtotal()
}

// Clear empties the item list but keeps the cart itself.
func (c *Cart) Clear() {
	c.Items = nil
	c.Subtotal = 0
}

func (c *Cart) RecalculateSubtotal() {
	var subtotal money.Cents
	for _, item := range c.Items {
		subtotal += item.Price.Times(item.Quantity)
	}
	c.Subtotal = subtotal
}

func (c *Cart) ItemCount() int {
	return len(c.Items)
}
