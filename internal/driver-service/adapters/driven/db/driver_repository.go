package db

import (
	"context"
	"errors"

	"driver-service/internal/driver-service/core/domain/model"

	"github.com/jackc/pgx/v5"
)

type DriverRepository struct {
	db *DataBase
}

func NewDriverRepository(db *DataBase) *DriverRepository {
	return &DriverRepository{db: db}
}

const driverColumns = "driver_id, name, phone, vehicle_type, vehicle_plate, status"

func scanDriver(row pgx.Row) (model.Driver, error) {
	var driver model.Driver
	var status string
	err := row.Scan(
		&driver.DriverID,
		&driver.Name,
		&driver.Phone,
		&driver.VehicleType,
		&driver.VehiclePlate,
		&status,
	)
	driver.Status = model.DriverStatus(status)
	return driver, err
}

func (dr *DriverRepository) Create(ctx context.Context, driver model.Driver) (model.Driver, error) {
	InsertQuery := `
		INSERT INTO drivers(name, phone, vehicle_type, vehicle_plate, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + driverColumns + `;
	`
	row := dr.db.GetConn().QueryRow(ctx, InsertQuery,
		driver.Name, driver.Phone, driver.VehicleType, driver.VehiclePlate, string(driver.Status))
	return scanDriver(row)
}

func (dr *DriverRepository) GetAll(ctx context.Context) ([]model.Driver, error) {
	SelectQuery := `
		SELECT ` + driverColumns + `
		FROM drivers
		ORDER BY driver_id;
	`
	rows, err := dr.db.GetConn().Query(ctx, SelectQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, driver)
	}
	return results, rows.Err()
}

func (dr *DriverRepository) GetByID(ctx context.Context, driverID int64) (*model.Driver, error) {
	SelectQuery := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE driver_id = $1;
	`
	driver, err := scanDriver(dr.db.GetConn().QueryRow(ctx, SelectQuery, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

func (dr *DriverRepository) FindAvailable(ctx context.Context, vehicleType string) ([]model.Driver, error) {
	SelectQuery := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE status = 'AVAILABLE'
			AND ($1 = '' OR vehicle_type = $1)
		ORDER BY driver_id;
	`
	rows, err := dr.db.GetConn().Query(ctx, SelectQuery, vehicleType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, driver)
	}
	return results, rows.Err()
}

func (dr *DriverRepository) Update(ctx context.Context, driverID int64, upd model.DriverUpdate) (*model.Driver, error) {
	current, err := dr.GetByID(ctx, driverID)
	if err != nil || current == nil {
		return nil, err
	}

	if upd.Name != nil {
		current.Name = *upd.Name
	}
	if upd.Phone != nil {
		current.Phone = *upd.Phone
	}
	if upd.VehicleType != nil {
		current.VehicleType = *upd.VehicleType
	}
	if upd.VehiclePlate != nil {
		current.VehiclePlate = *upd.VehiclePlate
	}

	UpdateQuery := `
		UPDATE drivers
		SET name = $1, phone = $2, vehicle_type = $3, vehicle_plate = $4
		WHERE driver_id = $5
		RETURNING ` + driverColumns + `;
	`
	driver, err := scanDriver(dr.db.GetConn().QueryRow(ctx, UpdateQuery,
		current.Name, current.Phone, current.VehicleType, current.VehiclePlate, driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

func (dr *DriverRepository) UpdateStatus(ctx context.Context, driverID int64, status model.DriverStatus) (*model.Driver, error) {
	UpdateStatusQuery := `
		UPDATE drivers
		SET status = $1
		WHERE driver_id = $2
		RETURNING ` + driverColumns + `;
	`
	driver, err := scanDriver(dr.db.GetConn().QueryRow(ctx, UpdateStatusQuery, string(status), driverID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

func (dr *DriverRepository) Delete(ctx context.Context, driverID int64) (bool, error) {
	DeleteQuery := `
		DELETE FROM drivers
		WHERE driver_id = $1;
	`
	tag, err := dr.db.GetConn().Exec(ctx, DeleteQuery, driverID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
