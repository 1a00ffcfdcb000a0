package users

import (
	"context"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/store"
)

// accountService is what these handlers need from service.Accounts;
// narrowed so tests can stub it.
type accountService interface {
	Create(ctx context.Context, db database.DB, u model.User, password string, roleIDs []int) (*model.User, error)
	Update(ctx context.Context, db database.DB, userID int, p store.UserPatch, roleIDs []int) (*model.User, error)
	Delete(ctx context.Context, db database.DB, userID int) error
	ChangePassword(ctx context.Context, q database.Querier, userID int, oldPassword, newPassword string) error
}
