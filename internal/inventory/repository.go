package inventory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProduct returns nil, nil when the product does not exist.
func (r *ProductRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}
	var imageURL, artisan sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT p.product_id, p.product_name, p.image_url, a.display_name, p.price, p.stock
		FROM products p
		LEFT JOIN artisans a ON a.artisan_id = p.artisan_id
		WHERE p.product_id = $1
	`, id).Scan(&p.ID, &p.Name, &imageURL, &artisan, &p.Price, &p.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	p.ImageURL = imageURL.String
	p.ArtisanName = artisan.String
	return p, nil
}
