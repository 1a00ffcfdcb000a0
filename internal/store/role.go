package store

import (
	"context"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
)

func scanRole(row interface{ Scan(dest ...any) error }) (*model.Role, error) {
	r := &model.Role{}
	if err := row.Scan(&r.ID, &r.Name, &r.Description); err != nil {
		return nil, err
	}
	return r, nil
}

func GetRoleByID(ctx context.Context, q database.Querier, roleID int) (*model.Role, error) {
	r, err := scanRole(q.QueryRow(ctx,
		`SELECT id, name, description FROM roles WHERE id = $1`,
		roleID,
	))
	if err != nil {
		return nil, wrap("GetRoleByID", err)
	}
	return r, nil
}

func ListRoles(ctx context.Context, q database.Querier) ([]model.Role, error) {
	rows, err := q.Query(ctx, `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		return nil, wrap("ListRoles", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, wrap("ListRoles", err)
		}
		roles = append(roles, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListRoles", err)
	}
	return roles, nil
}

// ListRolesByIDs returns only the roles whose ids exist; ids without a row
// are omitted. Callers decide whether the omission is an error.
func ListRolesByIDs(ctx context.Context, q database.Querier, roleIDs []int) ([]model.Role, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	rows, err := q.Query(ctx,
		`SELECT id, name, description FROM roles WHERE id = ANY($1) ORDER BY id`,
		roleIDs,
	)
	if err != nil {
		return nil, wrap("ListRolesByIDs", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, wrap("ListRolesByIDs", err)
		}
		roles = append(roles, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListRolesByIDs", err)
	}
	return roles, nil
}

func CreateRole(ctx context.Context, q database.Querier, r *model.Role) (*model.Role, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id`,
		r.Name,
		r.Description,
	)
	if err := row.Scan(&r.ID); err != nil {
		return nil, wrap("CreateRole", err)
	}
	return r, nil
}

type RolePatch struct {
	Name        *string
	Description *string
}

func UpdateRole(ctx context.Context, q database.Querier, roleID int, p RolePatch) (*model.Role, error) {
	r, err := scanRole(q.QueryRow(ctx,
		`UPDATE roles SET
		     name        = COALESCE($1, name),
		     description = COALESCE($2, description)
		 WHERE id = $3
		 RETURNING id, name, description`,
		p.Name,
		p.Description,
		roleID,
	))
	if err != nil {
		return nil, wrap("UpdateRole", err)
	}
	return r, nil
}

func DeleteRole(ctx context.Context, q database.Querier, roleID int) error {
	tag, err := q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, roleID)
	if err != nil {
		return wrap("DeleteRole", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteRole", ErrNotFound)
	}
	return nil
}

// ListUserRoles returns the roles associated with a user.
func ListUserRoles(ctx context.Context, q database.Querier, userID int) ([]model.Role, error) {
	rows, err := q.Query(ctx,
		`SELECT r.id, r.name, r.description
		 FROM roles r
		 JOIN user_roles ur ON ur.role_id = r.id
		 WHERE ur.user_id = $1
		 ORDER BY r.id`,
		userID,
	)
	if err != nil {
		return nil, wrap("ListUserRoles", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, wrap("ListUserRoles", err)
		}
		roles = append(roles, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUserRoles", err)
	}
	return roles, nil
}

// ReplaceUserRoles rewrites the user_roles associations for a user.
// Run it inside the same transaction as the user write it accompanies.
func ReplaceUserRoles(ctx context.Context, q database.Querier, userID int, roleIDs []int) error {
	if _, err := q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return wrap("ReplaceUserRoles", err)
	}
	for _, roleID := range roleIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`,
			userID,
			roleID,
		); err != nil {
			return wrap("ReplaceUserRoles", err)
		}
	}
	return nil
}
