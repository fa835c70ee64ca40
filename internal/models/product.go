package models

import "time"

// Product represents a catalog item of the store.
type Product struct {
	ID          string    `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" bson:"name" gorm:"type:varchar(255);not null"`
	Brand       string    `json:"brand" bson:"brand" gorm:"type:varchar(255)"`
	Category    string    `json:"category" bson:"category" gorm:"type:varchar(255);index"`
	Price       float64   `json:"price" bson:"price" gorm:"not null"`
	Stock       int       `json:"stock" bson:"stock" gorm:"not null;default:0"`
	ImageURL    string    `json:"imageUrl" bson:"imageUrl"`
	Description string    `json:"description" bson:"description" gorm:"type:text"`
	Featured    bool      `json:"featured" bson:"featured" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ProductInput is the request body for creating or replacing a product.
// Price and Stock are pointers so that a missing value can be told apart
// from an explicit zero.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Brand       string   `json:"brand" validate:"max=255"`
	Category    string   `json:"category" validate:"max=255"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	Featured    bool     `json:"featured"`
}

// Apply copies every field of the input onto p. A missing stock resets it to 0.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Brand = in.Brand
	p.Category = in.Category
	if in.Price != nil {
		p.Price = *in.Price
	}
	p.Stock = 0
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	p.ImageURL = in.ImageURL
	p.Description = in.Description
	p.Featured = in.Featured
}

// ProductStats is the aggregate shown on the admin dashboard.
type ProductStats struct {
	TotalProducts int     `json:"totalProducts"`
	TotalStock    int     `json:"totalStock"`
	TotalValue    float64 `json:"totalValue"`
	FeaturedCount int     `json:"featuredCount"`
}

// AdminProductList is the admin listing: every product plus its stats.
type AdminProductList struct {
	Products []Product    `json:"products"`
	Stats    ProductStats `json:"stats"`
}
