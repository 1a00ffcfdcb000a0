package store

import (
	"context"

	"labdic-inventory/internal/database"
	"labdic-inventory/internal/model"
)

const deviceColumns = `id, product_id, internal_code, serial_number, status_id, ubication_id, created_at`

func scanDevice(row interface{ Scan(dest ...any) error }) (*model.Device, error) {
	d := &model.Device{}
	err := row.Scan(
		&d.ID,
		&d.ProductID,
		&d.InternalCode,
		&d.SerialNumber,
		&d.StatusID,
		&d.UbicationID,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func GetDeviceByID(ctx context.Context, q database.Querier, deviceID int) (*model.Device, error) {
	d, err := scanDevice(q.QueryRow(ctx,
		`SELECT `+deviceColumns+` FROM devices WHERE id = $1`,
		deviceID,
	))
	if err != nil {
		return nil, wrap("GetDeviceByID", err)
	}
	return d, nil
}

func ListDevices(ctx context.Context, q database.Querier) ([]model.Device, error) {
	rows, err := q.Query(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY id`)
	if err != nil {
		return nil, wrap("ListDevices", err)
	}
	defer rows.Close()

	var devices []model.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, wrap("ListDevices", err)
		}
		devices = append(devices, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListDevices", err)
	}
	return devices, nil
}

func CreateDevice(ctx context.Context, q database.Querier, d *model.Device) (*model.Device, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO devices (product_id, internal_code, serial_number, status_id, ubication_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		d.ProductID,
		d.InternalCode,
		d.SerialNumber,
		d.StatusID,
		d.UbicationID,
	)
	if err := row.Scan(&d.ID, &d.CreatedAt); err != nil {
		return nil, wrap("CreateDevice", err)
	}
	return d, nil
}

type DevicePatch struct {
	ProductID    *int
	InternalCode *string
	SerialNumber *string
	UbicationID  *int
}

func UpdateDevice(ctx context.Context, q database.Querier, deviceID int, p DevicePatch) (*model.Device, error) {
	d, err := scanDevice(q.QueryRow(ctx,
		`UPDATE devices SET
		     product_id    = COALESCE($1, product_id),
		     internal_code = COALESCE($2, internal_code),
		     serial_number = COALESCE($3, serial_number),
		     ubication_id  = COALESCE($4, ubication_id)
		 WHERE id = $5
		 RETURNING `+deviceColumns,
		p.ProductID,
		p.InternalCode,
		p.SerialNumber,
		p.UbicationID,
		deviceID,
	))
	if err != nil {
		return nil, wrap("UpdateDevice", err)
	}
	return d, nil
}

// UpdateDeviceStatus moves a device to a new status and returns the row.
// The status-log entry is written separately by the caller.
func UpdateDeviceStatus(ctx context.Context, q database.Querier, deviceID, statusID int) (*model.Device, error) {
	d, err := scanDevice(q.QueryRow(ctx,
		`UPDATE devices SET status_id = $1 WHERE id = $2 RETURNING `+deviceColumns,
		statusID,
		deviceID,
	))
	if err != nil {
		return nil, wrap("UpdateDeviceStatus", err)
	}
	return d, nil
}

func DeleteDevice(ctx context.Context, q database.Querier, deviceID int) error {
	tag, err := q.Exec(ctx, `DELETE FROM devices WHERE id = $1`, deviceID)
	if err != nil {
		return wrap("DeleteDevice", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteDevice", ErrNotFound)
	}
	return nil
}

func CreateDeviceStatusLog(ctx context.Context, q database.Querier, l *model.DeviceStatusLog) (*model.DeviceStatusLog, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO device_status_logs (device_id, status_id, user_id, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, timestamp`,
		l.DeviceID,
		l.StatusID,
		l.UserID,
		l.Comment,
	)
	if err := row.Scan(&l.ID, &l.Timestamp); err != nil {
		return nil, wrap("CreateDeviceStatusLog", err)
	}
	return l, nil
}

func ListDeviceStatusLogs(ctx context.Context, q database.Querier, deviceID int) ([]model.DeviceStatusLog, error) {
	rows, err := q.Query(ctx,
		`SELECT id, device_id, status_id, user_id, timestamp, comment
		 FROM device_status_logs WHERE device_id = $1 ORDER BY timestamp`,
		deviceID,
	)
	if err != nil {
		return nil, wrap("ListDeviceStatusLogs", err)
	}
	defer rows.Close()

	var logs []model.DeviceStatusLog
	for rows.Next() {
		l := model.DeviceStatusLog{}
		if err := rows.Scan(&l.ID, &l.DeviceID, &l.StatusID, &l.UserID, &l.Timestamp, &l.Comment); err != nil {
			return nil, wrap("ListDeviceStatusLogs", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListDeviceStatusLogs", err)
	}
	return logs, nil
}
