package db

import "context"

const driversSchema = `
CREATE TABLE IF NOT EXISTS drivers (
	driver_id     BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	phone         TEXT NOT NULL UNIQUE,
	vehicle_type  TEXT NOT NULL DEFAULT '',
	vehicle_plate TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'AVAILABLE'
);

CREATE INDEX IF NOT EXISTS idx_drivers_status_vehicle ON drivers (status, vehicle_type);
`

// EnsureSchema creates the drivers table on startup so a fresh database is
// usable without a separate migration step.
func (d *DataBase) EnsureSchema(ctx context.Context) error {
	_, err := d.conn.Exec(ctx, driversSchema)
	return err
}
