package store

import (
	"context"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
)

const userColumns = `id, rut, name, username, email, password, phone, address, created_at, is_active, is_admin`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Rut,
		&u.Name,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Address,
		&u.CreatedAt,
		&u.IsActive,
		&u.IsAdmin,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, q database.Querier, userID int) (*model.User, error) {
	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, q database.Querier, username string) (*model.User, error) {
	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	))
	if err != nil {
		return nil, wrap("GetUserByUsername", err)
	}
	return u, nil
}

func ListUsers(ctx context.Context, q database.Querier) ([]model.User, error) {
	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("ListUsers", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUsers", err)
	}
	return users, nil
}

// CreateUser persists u and fills in the generated id, created_at and
// defaulted flags. PasswordHash must already be hashed by the caller.
func CreateUser(ctx context.Context, q database.Querier, u *model.User) (*model.User, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO users (rut, name, username, email, password, phone, address, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, is_active`,
		u.Rut,
		u.Name,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Phone,
		u.Address,
		u.IsAdmin,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.IsActive); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

// UserPatch carries the fields an update may merge onto a stored user.
// Nil fields are left untouched. The password is deliberately absent:
// password changes go through UpdateUserPassword only.
type UserPatch struct {
	Rut      *string
	Name     *string
	Username *string
	Email    *string
	Phone    *string
	Address  *string
	IsActive *bool
	IsAdmin  *bool
}

func UpdateUser(ctx context.Context, q database.Querier, userID int, p UserPatch) (*model.User, error) {
	u, err := scanUser(q.QueryRow(ctx,
		`UPDATE users SET
		     rut       = COALESCE($1, rut),
		     name      = COALESCE($2, name),
		     username  = COALESCE($3, username),
		     email     = COALESCE($4, email),
		     phone     = COALESCE($5, phone),
		     address   = COALESCE($6, address),
		     is_active = COALESCE($7, is_active),
		     is_admin  = COALESCE($8, is_admin)
		 WHERE id = $9
		 RETURNING `+userColumns,
		p.Rut,
		p.Name,
		p.Username,
		p.Email,
		p.Phone,
		p.Address,
		p.IsActive,
		p.IsAdmin,
		userID,
	))
	if err != nil {
		return nil, wrap("UpdateUser", err)
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, q database.Querier, userID int, passwordHash string) error {
	tag, err := q.Exec(ctx,
		`UPDATE users SET password = $1 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return wrap("UpdateUserPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("UpdateUserPassword", ErrNotFound)
	}
	return nil
}

func DeleteUser(ctx context.Context, q database.Querier, userID int) error {
	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return wrap("DeleteUser", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteUser", ErrNotFound)
	}
	return nil
}
