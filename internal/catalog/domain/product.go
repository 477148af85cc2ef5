package domain

import (
	"time"

	"github.com/dejobratic/storefront/internal/money"
)

// Product is the catalog entry inventory checks and cart snapshots read from.
// Version guards stock writes: every stock mutation is a compare-and-swap
// against the version observed at read time.
type Product struct {
	ID            string            `bson:"_id,omitempty" json:"id"`
	Name          string            `bson:"name" json:"name"`
	Description   string            `bson:"description,omitempty" json:"description,omitempty"`
	Price         money.Cents       `bson:"price" json:"price"`
	DiscountPrice *money.Cents      `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	Stock         int               `bson:"stock" json:"stock"`
	Version       int64             `bson:"version" json:"-"`
	CategoryID    string            `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Unit          string            `bson:"unit,omitempty" json:"unit,omitempty"`
	ImageURLs     []string          `bson:"imageUrls,omitempty" json:"imageUrls,omitempty"`
	Attributes    map[string]string `bson:"attributes,omitempty" json:"attributes,omitempty"`
	Featured      bool              `bson:"featured" json:"featured"`
	Active        bool              `bson:"active" json:"active"`
	CreatedAt     time.Time         `bson:"createdAt" json:"created_at"`
	UpdatedAt     time.Time         `bson:"updatedAt" json:"updated_at"`
}

// EffectivePrice is the discount price when one applies, otherwise the list price.
func (p Product) EffectivePrice() money.Cents {
	if p.IsDiscounted() {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p Product) IsDiscounted() bool {
	return p.DiscountPrice != nil && *p.DiscountPrice < p.Price
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// PrimaryImageURL returns the first image, or empty when none exist.
func (p Product) PrimaryImageURL() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}
