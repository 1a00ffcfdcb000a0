package store

import (
	"context"
	"time"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
)

const loanColumns = `id, user_id, request_date, status_id, reason, delivery_date, estimated_return_date, actual_return_date`

func scanLoanRequest(row interface{ Scan(dest ...any) error }) (*model.LoanRequest, error) {
	lr := &model.LoanRequest{}
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&lr.RequestDate,
		&lr.StatusID,
		&lr.Reason,
		&lr.DeliveryDate,
		&lr.EstimatedReturnDate,
		&lr.ActualReturnDate,
	)
	if err != nil {
		return nil, err
	}
	return lr, nil
}

func GetLoanRequestByID(ctx context.Context, q database.Querier, loanID int) (*model.LoanRequest, error) {
	lr, err := scanLoanRequest(q.QueryRow(ctx,
		`SELECT `+loanColumns+` FROM loan_requests WHERE id = $1`,
		loanID,
	))
	if err != nil {
		return nil, wrap("GetLoanRequestByID", err)
	}
	return lr, nil
}

func ListLoanRequests(ctx context.Context, q database.Querier) ([]model.LoanRequest, error) {
	rows, err := q.Query(ctx, `SELECT `+loanColumns+` FROM loan_requests ORDER BY id`)
	if err != nil {
		return nil, wrap("ListLoanRequests", err)
	}
	defer rows.Close()

	var requests []model.LoanRequest
	for rows.Next() {
		lr, err := scanLoanRequest(rows)
		if err != nil {
			return nil, wrap("ListLoanRequests", err)
		}
		requests = append(requests, *lr)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListLoanRequests", err)
	}
	return requests, nil
}

// CreateLoanRequest persists the request row and its items. Run it inside
// a transaction so a failed item insert rolls back the whole request.
func CreateLoanRequest(ctx context.Context, q database.Querier, lr *model.LoanRequest, deviceIDs []int) (*model.LoanRequest, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO loan_requests (user_id, status_id, reason, delivery_date, estimated_return_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, request_date`,
		lr.UserID,
		lr.StatusID,
		lr.Reason,
		lr.DeliveryDate,
		lr.EstimatedReturnDate,
	)
	if err := row.Scan(&lr.ID, &lr.RequestDate); err != nil {
		return nil, wrap("CreateLoanRequest", err)
	}

	for _, deviceID := range deviceIDs {
		item := model.LoanRequestItem{LoanRequestID: lr.ID, DeviceID: deviceID}
		itemRow := q.QueryRow(ctx,
			`INSERT INTO loan_request_items (loan_request_id, device_id) VALUES ($1, $2) RETURNING id`,
			lr.ID,
			deviceID,
		)
		if err := itemRow.Scan(&item.ID); err != nil {
			return nil, wrap("CreateLoanRequest", err)
		}
		lr.Items = append(lr.Items, item)
	}
	return lr, nil
}

type LoanRequestPatch struct {
	StatusID            *int
	Reason              *string
	DeliveryDate        *time.Time
	EstimatedReturnDate *time.Time
	ActualReturnDate    *time.Time
}

func UpdateLoanRequest(ctx context.Context, q database.Querier, loanID int, p LoanRequestPatch) (*model.LoanRequest, error) {
	lr, err := scanLoanRequest(q.QueryRow(ctx,
		`UPDATE loan_requests SET
		     status_id             = COALESCE($1, status_id),
		     reason                = COALESCE($2, reason),
		     delivery_date         = COALESCE($3, delivery_date),
		     estimated_return_date = COALESCE($4, estimated_return_date),
		     actual_return_date    = COALESCE($5, actual_return_date)
		 WHERE id = $6
		 RETURNING `+loanColumns,
		p.StatusID,
		p.Reason,
		p.DeliveryDate,
		p.EstimatedReturnDate,
		p.ActualReturnDate,
		loanID,
	))
	if err != nil {
		return nil, wrap("UpdateLoanRequest", err)
	}
	return lr, nil
}

func DeleteLoanRequest(ctx context.Context, q database.Querier, loanID int) error {
	tag, err := q.Exec(ctx, `DELETE FROM loan_requests WHERE id = $1`, loanID)
	if err != nil {
		return wrap("DeleteLoanRequest", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteLoanRequest", ErrNotFound)
	}
	return nil
}

func ListLoanRequestItems(ctx context.Context, q database.Querier, loanID int) ([]model.LoanRequestItem, error) {
	rows, err := q.Query(ctx,
		`SELECT id, loan_request_id, device_id FROM loan_request_items WHERE loan_request_id = $1 ORDER BY id`,
		loanID,
	)
	if err != nil {
		return nil, wrap("ListLoanRequestItems", err)
	}
	defer rows.Close()

	var items []model.LoanRequestItem
	for rows.Next() {
		item := model.LoanRequestItem{}
		if err := rows.Scan(&item.ID, &item.LoanRequestID, &item.DeviceID); err != nil {
			return nil, wrap("ListLoanRequestItems", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListLoanRequestItems", err)
	}
	return items, nil
}
