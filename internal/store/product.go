package store

import (
	"context"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
)

const productColumns = `id, name, brand_id, model_id, category_id, description, available_stock, is_active, created_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.BrandID,
		&p.ModelID,
		&p.CategoryID,
		&p.Description,
		&p.AvailableStock,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func GetProductByID(ctx context.Context, q database.Querier, productID int) (*model.Product, error) {
	p, err := scanProduct(q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`,
		productID,
	))
	if err != nil {
		return nil, wrap("GetProductByID", err)
	}
	return p, nil
}

func ListProducts(ctx context.Context, q database.Querier) ([]model.Product, error) {
	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, wrap("ListProducts", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("ListProducts", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListProducts", err)
	}
	return products, nil
}

func CreateProduct(ctx context.Context, q database.Querier, p *model.Product) (*model.Product, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO products (name, brand_id, model_id, category_id, description, available_stock)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, is_active, created_at`,
		p.Name,
		p.BrandID,
		p.ModelID,
		p.CategoryID,
		p.Description,
		p.AvailableStock,
	)
	if err := row.Scan(&p.ID, &p.IsActive, &p.CreatedAt); err != nil {
		return nil, wrap("CreateProduct", err)
	}
	return p, nil
}

type ProductPatch struct {
	Name           *string
	BrandID        *int
	ModelID        *int
	CategoryID     *int
	Description    *string
	AvailableStock *int
	IsActive       *bool
}

func UpdateProduct(ctx context.Context, q database.Querier, productID int, p ProductPatch) (*model.Product, error) {
	prod, err := scanProduct(q.QueryRow(ctx,
		`UPDATE products SET
		     name            = COALESCE($1, name),
		     brand_id        = COALESCE($2, brand_id),
		     model_id        = COALESCE($3, model_id),
		     category_id     = COALESCE($4, category_id),
		     description     = COALESCE($5, description),
		     available_stock = COALESCE($6, available_stock),
		     is_active       = COALESCE($7, is_active)
		 WHERE id = $8
		 RETURNING `+productColumns,
		p.Name,
		p.BrandID,
		p.ModelID,
		p.CategoryID,
		p.Description,
		p.AvailableStock,
		p.IsActive,
		productID,
	))
	if err != nil {
		return nil, wrap("UpdateProduct", err)
	}
	return prod, nil
}

func DeleteProduct(ctx context.Context, q database.Querier, productID int) error {
	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return wrap("DeleteProduct", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteProduct", ErrNotFound)
	}
	return nil
}
