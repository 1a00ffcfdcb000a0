package store

import (
	"context"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
)

// Catalog gives the five simple lookup tables one CRUD implementation.
// Table names are fixed at the package-level declarations below, never
// taken from input.
type Catalog struct {
	table          string
	hasDescription bool
}

var (
	Brands     = Catalog{table: "brands"}
	Models     = Catalog{table: "models"}
	Categories = Catalog{table: "categories"}
	Statuses   = Catalog{table: "statuses"}
	Ubications = Catalog{table: "ubications", hasDescription: true}
)

func (c Catalog) Table() string { return c.table }

func (c Catalog) scan(row interface{ Scan(dest ...any) error }) (*model.CatalogItem, error) {
	item := &model.CatalogItem{}
	if c.hasDescription {
		if err := row.Scan(&item.ID, &item.Name, &item.Description); err != nil {
			return nil, err
		}
		return item, nil
	}
	if err := row.Scan(&item.ID, &item.Name); err != nil {
		return nil, err
	}
	return item, nil
}

func (c Catalog) columns() string {
	if c.hasDescription {
		return `id, name, description`
	}
	return `id, name`
}

func (c Catalog) Get(ctx context.Context, q database.Querier, id int) (*model.CatalogItem, error) {
	item, err := c.scan(q.QueryRow(ctx,
		`SELECT `+c.columns()+` FROM `+c.table+` WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrap(c.table+".Get", err)
	}
	return item, nil
}

func (c Catalog) List(ctx context.Context, q database.Querier) ([]model.CatalogItem, error) {
	rows, err := q.Query(ctx, `SELECT `+c.columns()+` FROM `+c.table+` ORDER BY id`)
	if err != nil {
		return nil, wrap(c.table+".List", err)
	}
	defer rows.Close()

	var items []model.CatalogItem
	for rows.Next() {
		item, err := c.scan(rows)
		if err != nil {
			return nil, wrap(c.table+".List", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(c.table+".List", err)
	}
	return items, nil
}

func (c Catalog) Create(ctx context.Context, q database.Querier, item *model.CatalogItem) (*model.CatalogItem, error) {
	var row interface{ Scan(dest ...any) error }
	if c.hasDescription {
		row = q.QueryRow(ctx,
			`INSERT INTO `+c.table+` (name, description) VALUES ($1, $2) RETURNING id`,
			item.Name,
			item.Description,
		)
	} else {
		row = q.QueryRow(ctx,
			`INSERT INTO `+c.table+` (name) VALUES ($1) RETURNING id`,
			item.Name,
		)
	}
	if err := row.Scan(&item.ID); err != nil {
		return nil, wrap(c.table+".Create", err)
	}
	return item, nil
}

func (c Catalog) Update(ctx context.Context, q database.Querier, id int, name *string, description *string) (*model.CatalogItem, error) {
	var row interface{ Scan(dest ...any) error }
	if c.hasDescription {
		row = q.QueryRow(ctx,
			`UPDATE `+c.table+` SET
			     name        = COALESCE($1, name),
			     description = COALESCE($2, description)
			 WHERE id = $3
			 RETURNING id, name, description`,
			name,
			description,
			id,
		)
	} else {
		row = q.QueryRow(ctx,
			`UPDATE `+c.table+` SET name = COALESCE($1, name) WHERE id = $2 RETURNING id, name`,
			name,
			id,
		)
	}
	item, err := c.scan(row)
	if err != nil {
		return nil, wrap(c.table+".Update", err)
	}
	return item, nil
}

func (c Catalog) Delete(ctx context.Context, q database.Querier, id int) error {
	tag, err := q.Exec(ctx, `DELETE FROM `+c.table+` WHERE id = $1`, id)
	if err != nil {
		return wrap(c.table+".Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap(c.table+".Delete", ErrNotFound)
	}
	return nil
}
