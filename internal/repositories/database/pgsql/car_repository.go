package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/driveluxe/car_rental_backend/internal/apperrors"
	"github.com/driveluxe/car_rental_backend/internal/core/domain"
	portsrepo "github.com/driveluxe/car_rental_backend/internal/core/ports/repositories"
	"github.com/driveluxe/car_rental_backend/internal/models"
	"github.com/driveluxe/car_rental_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const carColumns = `car_id, brand, model, year, license_plate, color, category, price_per_day,
	status, description, image_url, seats, transmission, fuel_type, mileage, created_at, updated_at`

type PgxCarRepository struct {
	BaseRepository
}

// newPgxCarRepository creates a new repository for car catalog data.
func newPgxCarRepository(pool *pgxpool.Pool) portsrepo.CarRepositoryFacade {
	return &PgxCarRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCarRepository implements portsrepo.CarRepositoryFacade
var _ portsrepo.CarRepositoryFacade = (*PgxCarRepository)(nil)

func scanCar(row pgx.Row) (*models.Car, error) {
	var m models.Car
	var color, description, imageURL sql.NullString
	var mileage sql.NullInt64
	err := row.Scan(
		&m.CarID,
		&m.Brand,
		&m.Model,
		&m.Year,
		&m.LicensePlate,
		&color,
		&m.Category,
		&m.PricePerDay,
		&m.Status,
		&description,
		&imageURL,
		&m.Seats,
		&m.Transmission,
		&m.FuelType,
		&mileage,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Color = color.String
	m.Description = description.String
	m.ImageURL = imageURL.String
	m.Mileage = int(mileage.Int64)
	return &m, nil
}

// FindCarByID retrieves a car by id.
func (r *PgxCarRepository) FindCarByID(ctx context.Context, carID int64) (*domain.Car, error) {
	m, err := scanCar(r.Pool.QueryRow(ctx,
		`SELECT `+carColumns+` FROM cars WHERE car_id = $1;`, carID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: car %d", apperrors.ErrNotFound, carID)
		}
		return nil, apperrors.NewAppError(500, "failed to query car", err)
	}
	d := mapping.ToDomainCar(*m)
	return &d, nil
}

// LicensePlateExists reports whether a car with the given plate exists,
// excluding excludeCarID (0 excludes nothing).
func (r *PgxCarRepository) LicensePlateExists(ctx context.Context, licensePlate string, excludeCarID int64) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cars WHERE UPPER(license_plate) = UPPER($1) AND car_id != $2);`,
		licensePlate, excludeCarID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check license plate", err)
	}
	return exists, nil
}

// SaveCar inserts a new car.
func (r *PgxCarRepository) SaveCar(ctx context.Context, car *domain.Car) error {
	m := mapping.ToModelCar(*car)
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO cars (
			brand, model, year, license_plate, color, category, price_per_day,
			status, description, image_url, seats, transmission, fuel_type, mileage,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING car_id;`,
		m.Brand,
		m.Model,
		m.Year,
		m.LicensePlate,
		nullString(m.Color),
		m.Category,
		m.PricePerDay,
		m.Status,
		nullString(m.Description),
		nullString(m.ImageURL),
		m.Seats,
		m.Transmission,
		m.FuelType,
		m.Mileage,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&car.CarID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: license plate %s", apperrors.ErrDuplicate, m.LicensePlate)
		}
		return apperrors.NewAppError(500, "failed to save car", err)
	}
	return nil
}

// UpdateCar persists the mutable fields of an existing car.
func (r *PgxCarRepository) UpdateCar(ctx context.Context, car domain.Car) (*domain.Car, error) {
	m := mapping.ToModelCar(car)
	updated, err := scanCar(r.Pool.QueryRow(ctx, `
		UPDATE cars SET
			brand = $2, model = $3, year = $4, license_plate = $5, color = $6,
			category = $7, price_per_day = $8, description = $9, image_url = $10,
			seats = $11, transmission = $12, fuel_type = $13, mileage = $14, updated_at = $15
		WHERE car_id = $1
		RETURNING `+carColumns+`;`,
		m.CarID,
		m.Brand,
		m.Model,
		m.Year,
		m.LicensePlate,
		nullString(m.Color),
		m.Category,
		m.PricePerDay,
		nullString(m.Description),
		nullString(m.ImageURL),
		m.Seats,
		m.Transmission,
		m.FuelType,
		m.Mileage,
		m.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: car %d", apperrors.ErrNotFound, car.CarID)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: license plate %s", apperrors.ErrDuplicate, m.LicensePlate)
		}
		return nil, apperrors.NewAppError(500, "failed to update car", err)
	}
	d := mapping.ToDomainCar(*updated)
	return &d, nil
}

// SetCarStatus changes the car's status. The car row is locked first, so the
// active-booking count cannot change underneath the check: booking creation
// locks the same row. Withdrawing a car that still has PENDING or CONFIRMED
// bookings is refused.
func (r *PgxCarRepository) SetCarStatus(ctx context.Context, carID int64, status domain.CarStatus, updatedAt time.Time) (*domain.Car, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM cars WHERE car_id = $1 FOR UPDATE;`, carID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: car %d", apperrors.ErrNotFound, carID)
		}
		return nil, apperrors.NewAppError(500, "failed to lock car row", err)
	}

	if status != domain.CarAvailable {
		var active int64
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM bookings WHERE car_id = $1 AND status IN `+activeStatuses+`;`, carID,
		).Scan(&active)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to count active bookings", err)
		}
		if active > 0 {
			return nil, fmt.Errorf("%w: car %d has %d active booking(s)", apperrors.ErrConflict, carID, active)
		}
	}

	updated, err := scanCar(tx.QueryRow(ctx,
		`UPDATE cars SET status = $2, updated_at = $3 WHERE car_id = $1 RETURNING `+carColumns+`;`,
		carID, string(status), updatedAt))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update car status", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	d := mapping.ToDomainCar(*updated)
	return &d, nil
}

// DeleteCar removes a car from the catalog, refusing while active bookings exist.
// Same locking discipline as SetCarStatus.
func (r *PgxCarRepository) DeleteCar(ctx context.Context, carID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var lockedID int64
	if err := tx.QueryRow(ctx,
		`SELECT car_id FROM cars WHERE car_id = $1 FOR UPDATE;`, carID,
	).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: car %d", apperrors.ErrNotFound, carID)
		}
		return apperrors.NewAppError(500, "failed to lock car row", err)
	}

	var active int64
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE car_id = $1 AND status IN `+activeStatuses+`;`, carID,
	).Scan(&active); err != nil {
		return apperrors.NewAppError(500, "failed to count active bookings", err)
	}
	if active > 0 {
		return fmt.Errorf("%w: car %d has %d active booking(s)", apperrors.ErrConflict, carID, active)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cars WHERE car_id = $1;`, carID); err != nil {
		return apperrors.NewAppError(500, "failed to delete car", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCarRepository) listCars(ctx context.Context, query string, args ...any) ([]domain.Car, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cars", err)
	}
	defer rows.Close()

	cars := make([]domain.Car, 0)
	for rows.Next() {
		m, err := scanCar(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan car row", err)
		}
		cars = append(cars, mapping.ToDomainCar(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating car rows", err)
	}
	return cars, nil
}

// ListCars returns a page of cars matching the filter, newest first.
func (r *PgxCarRepository) ListCars(ctx context.Context, filter portsrepo.CarListFilter, limit, offset int) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE 1=1`
	args := []any{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))
	return r.listCars(ctx, query, args...)
}

// SearchCars returns a page of cars whose brand or model matches the term.
func (r *PgxCarRepository) SearchCars(ctx context.Context, term string, limit, offset int) ([]domain.Car, error) {
	return r.listCars(ctx, `
		SELECT `+carColumns+` FROM cars
		WHERE brand ILIKE '%' || $1 || '%' OR model ILIKE '%' || $1 || '%'
		ORDER BY brand, model LIMIT $2 OFFSET $3;`, term, limit, offset)
}

// ListAvailableCarsForDateRange returns AVAILABLE cars minus those with an active
// booking overlapping [start, end]: a set difference over interval overlaps, never
// a day-by-day scan.
func (r *PgxCarRepository) ListAvailableCarsForDateRange(ctx context.Context, start, end time.Time, category *domain.CarCategory) ([]domain.Car, error) {
	query := `
		SELECT ` + carColumns + ` FROM cars c
		WHERE c.status = 'AVAILABLE'
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.car_id = c.car_id
			  AND b.status IN ` + activeStatuses + `
			  AND b.start_date <= $2::date
			  AND b.end_date >= $1::date
		  )`
	args := []any{start, end}
	if category != nil {
		args = append(args, string(*category))
		query += fmt.Sprintf(` AND c.category = $%d`, len(args))
	}
	query += ` ORDER BY c.brand, c.model;`
	return r.listCars(ctx, query, args...)
}

// ListDistinctBrands returns the distinct brands in the fleet, sorted.
func (r *PgxCarRepository) ListDistinctBrands(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT brand FROM cars ORDER BY brand;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query brands", err)
	}
	defer rows.Close()

	brands := make([]string, 0)
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan brand row", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating brand rows", err)
	}
	return brands, nil
}
