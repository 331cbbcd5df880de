package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string          `json:"product_id"`
	Name        string          `json:"product_name"`
	ImageURL    string          `json:"image_url,omitempty"`
	ArtisanName string          `json:"artisan_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}
