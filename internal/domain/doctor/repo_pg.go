package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

// =========== Doctor Repository ===========

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const doctorCols = `id, first_name, last_name, specialization, email, phone, bio, user_id,
	created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Specialization, &d.Email, &d.Phone,
		&d.Bio, &d.UserID, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *repoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO doctors (id, first_name, last_name, specialization, email, phone, bio, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.FirstName, d.LastName, d.Specialization, d.Email, d.Phone, d.Bio, d.UserID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *repoPG) GetByUserID(ctx context.Context, userID string) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE user_id = $1`, userID))
}

func (r *repoPG) Update(ctx context.Context, d *Doctor) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE doctors SET first_name=$2, last_name=$3, specialization=$4, email=$5, phone=$6,
			bio=$7, user_id=$8, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.FirstName, d.LastName, d.Specialization, d.Email, d.Phone, d.Bio, d.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error) {
	query := `SELECT ` + doctorCols + ` FROM doctors WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM doctors WHERE 1=1`
	var args []interface{}
	idx := 1

	if specialization != "" {
		clause := fmt.Sprintf(` AND specialization ILIKE $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, "%"+specialization+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY last_name, first_name LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// =========== Availability Repository ===========

type availabilityRepoPG struct{ pool *pgxpool.Pool }

func NewAvailabilityRepoPG(pool *pgxpool.Pool) AvailabilityRepository {
	return &availabilityRepoPG{pool: pool}
}

func (r *availabilityRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const availCols = `id, doctor_id, day_of_week, specific_date, start_time, end_time,
	created_at, updated_at`

func scanAvailability(row pgx.Row) (*Availability, error) {
	var (
		a        Availability
		startMin int
		endMin   int
	)
	err := row.Scan(&a.ID, &a.DoctorID, &a.DayOfWeek, &a.SpecificDate, &startMin, &endMin,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.StartTime = TimeOfDay(startMin)
	a.EndTime = TimeOfDay(endMin)
	return &a, nil
}

// Replace runs delete-then-insert in one transaction so setting the
// same day twice never leaves two windows behind.
func (r *availabilityRepoPG) Replace(ctx context.Context, a *Availability) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		if a.DayOfWeek != nil {
			_, err := r.conn(ctx).Exec(ctx, `
				DELETE FROM availabilities WHERE doctor_id = $1 AND day_of_week = $2`,
				a.DoctorID, *a.DayOfWeek)
			if err != nil {
				return err
			}
		} else {
			_, err := r.conn(ctx).Exec(ctx, `
				DELETE FROM availabilities WHERE doctor_id = $1 AND specific_date = $2`,
				a.DoctorID, *a.SpecificDate)
			if err != nil {
				return err
			}
		}

		a.ID = uuid.New()
		_, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO availabilities (id, doctor_id, day_of_week, specific_date, start_time, end_time)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			a.ID, a.DoctorID, a.DayOfWeek, a.SpecificDate, int(a.StartTime), int(a.EndTime))
		return err
	})
}

func (r *availabilityRepoPG) GetRecurring(ctx context.Context, doctorID uuid.UUID, day Weekday) (*Availability, error) {
	return scanAvailability(r.conn(ctx).QueryRow(ctx, `
		SELECT `+availCols+` FROM availabilities
		WHERE doctor_id = $1 AND day_of_week = $2`, doctorID, day))
}

func (r *availabilityRepoPG) GetOverride(ctx context.Context, doctorID uuid.UUID, date time.Time) (*Availability, error) {
	return scanAvailability(r.conn(ctx).QueryRow(ctx, `
		SELECT `+availCols+` FROM availabilities
		WHERE doctor_id = $1 AND specific_date = $2`, doctorID, date))
}

func (r *availabilityRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Availability, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+availCols+` FROM availabilities
		WHERE doctor_id = $1
		ORDER BY specific_date NULLS FIRST, day_of_week`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Availability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *availabilityRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM availabilities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
