package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func fillLoanRequest(lr model.LoanRequest) func(dest []any) {
	return func(dest []any) {
		*dest[0].(*int) = lr.ID
		*dest[1].(*int) = lr.UserID
		*dest[2].(*time.Time) = lr.RequestDate
		*dest[3].(*int) = lr.StatusID
		*dest[4].(**string) = lr.Reason
		*dest[5].(**time.Time) = lr.DeliveryDate
		*dest[6].(**time.Time) = lr.EstimatedReturnDate
		*dest[7].(**time.Time) = lr.ActualReturnDate
	}
}

func TestLoanRequestStore(t *testing.T) {
	now := time.Now().UTC()
	reason := "thesis project"
	sample := model.LoanRequest{
		ID:          1,
		UserID:      2,
		RequestDate: now,
		StatusID:    1,
		Reason:      &reason,
	}

	t.Run("Get ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{fill: fillLoanRequest(sample)}
			},
		}
		got, err := GetLoanRequestByID(context.Background(), db, 1)
		require.NoError(t, err)
		require.Equal(t, &reason, got.Reason)
	})

	t.Run("Get not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := GetLoanRequestByID(context.Background(), db, 99)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
				return &fakeRows{n: 2, fill: func(_ int, dest []any) { fillLoanRequest(sample)(dest) }}, nil
			},
		}
		requests, err := ListLoanRequests(context.Background(), db)
		require.NoError(t, err)
		require.Len(t, requests, 2)
	})

	t.Run("Create inserts request and one item per device", func(t *testing.T) {
		calls := 0
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
				calls++
				if calls == 1 {
					require.Contains(t, sql, "INSERT INTO loan_requests")
					return &fakeRow{fill: func(dest []any) {
						*dest[0].(*int) = 10
						*dest[1].(*time.Time) = now
					}}
				}
				require.Contains(t, sql, "INSERT INTO loan_request_items")
				n := calls - 1
				return &fakeRow{fill: func(dest []any) { *dest[0].(*int) = n }}
			},
		}
		lr := model.LoanRequest{UserID: 2, StatusID: 1}
		got, err := CreateLoanRequest(context.Background(), db, &lr, []int{7, 8})
		require.NoError(t, err)
		require.Equal(t, 10, got.ID)
		require.Len(t, got.Items, 2)
		require.Equal(t, 7, got.Items[0].DeviceID)
		require.Equal(t, 10, got.Items[0].LoanRequestID)
		require.Equal(t, 3, calls)
	})

	t.Run("Create stops on item failure", func(t *testing.T) {
		calls := 0
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				calls++
				if calls == 1 {
					return &fakeRow{fill: func(dest []any) {
						*dest[0].(*int) = 10
						*dest[1].(*time.Time) = now
					}}
				}
				return &fakeRow{scanErr: errors.New("fk violation")}
			},
		}
		lr := model.LoanRequest{UserID: 2, StatusID: 1}
		_, err := CreateLoanRequest(context.Background(), db, &lr, []int{7, 8})
		require.Error(t, err)
		require.Equal(t, 2, calls)
	})

	t.Run("Update ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeRow{fill: fillLoanRequest(sample)}
			},
		}
		statusID := 2
		got, err := UpdateLoanRequest(context.Background(), db, 1, LoanRequestPatch{StatusID: &statusID})
		require.NoError(t, err)
		require.Equal(t, sample.ID, got.ID)
	})

	t.Run("Delete miss", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		err := DeleteLoanRequest(context.Background(), db, 99)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListItems ok", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
				require.Equal(t, 1, args[0])
				return &fakeRows{n: 2, fill: func(i int, dest []any) {
					*dest[0].(*int) = i + 1
					*dest[1].(*int) = 1
					*dest[2].(*int) = i + 7
				}}, nil
			},
		}
		items, err := ListLoanRequestItems(context.Background(), db, 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, 8, items[1].DeviceID)
	})
}
