package service

import (
	"context"
	"errors"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/store"
)

// ErrInvalidCredentials is the single failure for login, regardless of
// whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Indirections for tests.
var (
	getUserByUsername  = store.GetUserByUsername
	getUserByID        = store.GetUserByID
	createUser         = store.CreateUser
	updateUser         = store.UpdateUser
	deleteUser         = store.DeleteUser
	updateUserPassword = store.UpdateUserPassword
	listUserRoles      = store.ListUserRoles
	replaceUserRoles   = store.ReplaceUserRoles
)

// Accounts orchestrates credential hashing, role reconciliation and the
// user store. Every write that touches both the user row and its role
// associations happens in one transaction.
type Accounts struct {
	Hasher PasswordHasher
	Roles  RoleReconciler
	Tokens *Tokens
}

// Create hashes the password, reconciles the requested roles and persists
// the user together with its role associations.
func (a *Accounts) Create(ctx context.Context, db database.DB, u model.User, password string, roleIDs []int) (*model.User, error) {
	hash, err := a.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	roles, err := a.Roles.Reconcile(ctx, tx, roleIDs)
	if err != nil {
		return nil, err
	}
	created, err := createUser(ctx, tx, &u)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	if err := replaceUserRoles(ctx, tx, created.ID, ids); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	created.Roles = roles
	return created, nil
}

// Update merges the supplied fields onto the stored user. When roleIDs is
// non-nil the associations are reconciled and replaced in the same
// transaction. The patch carries no password field by design.
func (a *Accounts) Update(ctx context.Context, db database.DB, userID int, p store.UserPatch, roleIDs []int) (*model.User, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	updated, err := updateUser(ctx, tx, userID, p)
	if err != nil {
		return nil, err
	}

	var roles []model.Role
	if roleIDs != nil {
		roles, err = a.Roles.Reconcile(ctx, tx, roleIDs)
		if err != nil {
			return nil, err
		}
		ids := make([]int, len(roles))
		for i, r := range roles {
			ids[i] = r.ID
		}
		if err := replaceUserRoles(ctx, tx, userID, ids); err != nil {
			return nil, err
		}
	} else {
		roles, err = listUserRoles(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	updated.Roles = roles
	if p.IsActive != nil && !*p.IsActive {
		if err := a.Tokens.Revoke(ctx, updated.Username); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// Delete removes the user and revokes any tokens issued to it.
func (a *Accounts) Delete(ctx context.Context, db database.DB, userID int) error {
	u, err := getUserByID(ctx, db, userID)
	if err != nil {
		return err
	}
	if err := deleteUser(ctx, db, userID); err != nil {
		return err
	}
	return a.Tokens.Revoke(ctx, u.Username)
}

// Authenticate checks a username/password pair. Unknown username, wrong
// password and inactive account all fail with ErrInvalidCredentials so the
// response never reveals which it was.
func (a *Accounts) Authenticate(ctx context.Context, q database.Querier, username, password string) (*model.User, error) {
	u, err := getUserByUsername(ctx, q, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive || !a.Hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ChangePassword re-verifies the current password before storing the new
// hash. This is the only supported password mutation path.
func (a *Accounts) ChangePassword(ctx context.Context, q database.Querier, userID int, oldPassword, newPassword string) error {
	u, err := getUserByID(ctx, q, userID)
	if err != nil {
		return err
	}
	if !a.Hasher.Verify(u.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	hash, err := a.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return updateUserPassword(ctx, q, userID, hash)
}
