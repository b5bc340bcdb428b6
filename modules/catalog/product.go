package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item in the tenant's catalog.
type Product struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	SKU       string    `bson:"sku,omitempty" json:"sku,omitempty"`
	UnitPrice int64     `bson:"unit_price" json:"unitPrice"` // minor currency units
	Unit      string    `bson:"unit,omitempty" json:"unit,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateProductRequest is the POST /products payload.
type CreateProductRequest struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	UnitPrice int64  `json:"unitPrice"`
	Unit      string `json:"unit"`
}

func (r CreateProductRequest) validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.UnitPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

func newProduct(r CreateProductRequest) Product {
	now := time.Now().UTC()
	return Product{
		ID:        uuid.NewString(),
		Name:      r.Name,
		SKU:       r.SKU,
		UnitPrice: r.UnitPrice,
		Unit:      r.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
