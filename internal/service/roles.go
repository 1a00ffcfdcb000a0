package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
	"labdic-inventory/internal/store"
)

// ErrUnknownRole reports role ids that do not resolve against the roles table.
var ErrUnknownRole = errors.New("unknown role id")

// ReconcilePolicy decides what happens to role ids that do not exist.
type ReconcilePolicy int

const (
	// PolicyStrict rejects the whole request when any id is unknown.
	PolicyStrict ReconcilePolicy = iota
	// PolicyDrop silently omits unknown ids, which can grant a user fewer
	// roles than the caller intended. Kept for compatibility.
	PolicyDrop
)

func ParseReconcilePolicy(s string) (ReconcilePolicy, error) {
	switch s {
	case "", "strict":
		return PolicyStrict, nil
	case "drop":
		return PolicyDrop, nil
	}
	return PolicyStrict, fmt.Errorf("unknown reconcile policy %q", s)
}

var listRolesByIDs = store.ListRolesByIDs

// RoleReconciler resolves a requested set of role ids against the roles
// table so user_roles can never reference a nonexistent role.
type RoleReconciler struct {
	Policy ReconcilePolicy
}

// Reconcile returns the authoritative roles for the requested ids,
// deduplicated. Under PolicyStrict an unresolvable id fails the call with
// ErrUnknownRole naming the missing ids.
func (r RoleReconciler) Reconcile(ctx context.Context, q database.Querier, roleIDs []int) ([]model.Role, error) {
	uniq := make([]int, 0, len(roleIDs))
	seen := make(map[int]bool, len(roleIDs))
	for _, id := range roleIDs {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	if len(uniq) == 0 {
		return nil, nil
	}

	roles, err := listRolesByIDs(ctx, q, uniq)
	if err != nil {
		return nil, err
	}
	if r.Policy == PolicyStrict && len(roles) != len(uniq) {
		found := make(map[int]bool, len(roles))
		for _, role := range roles {
			found[role.ID] = true
		}
		var missing []int
		for _, id := range uniq {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		sort.Ints(missing)
		return nil, fmt.Errorf("%w: %v", ErrUnknownRole, missing)
	}
	return roles, nil
}
