package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/doctor"
	"github.com/clinic/clinic/internal/platform/db"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample data for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			doctors, _ := cmd.Flags().GetInt("doctors")
			patients, _ := cmd.Flags().GetInt("patients")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			gofakeit.Seed(time.Now().UnixNano())

			doctorIDs, err := seedDoctors(ctx, pool, doctors)
			if err != nil {
				return fmt.Errorf("seed doctors: %w", err)
			}
			if err := seedAvailabilities(ctx, pool, doctorIDs); err != nil {
				return fmt.Errorf("seed availabilities: %w", err)
			}
			if err := seedPatients(ctx, pool, patients); err != nil {
				return fmt.Errorf("seed patients: %w", err)
			}

			fmt.Printf("Seeded %d doctors and %d patients.\n", doctors, patients)
			return nil
		},
	}
	cmd.Flags().Int("doctors", 10, "Number of doctors to create")
	cmd.Flags().Int("patients", 100, "Number of patients to create")
	return cmd
}

// seedEmail keeps generated addresses unique across a run.
func seedEmail(first, last string, n int) string {
	return strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, n))
}

var specializations = []string{
	"General Practice",
	"Cardiology",
	"Dermatology",
	"Pediatrics",
	"Orthopedics",
	"Neurology",
	"Psychiatry",
	"Endocrinology",
	"Ophthalmology",
	"ENT",
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		spec := specializations[gofakeit.Number(0, len(specializations)-1)]
		phone := gofakeit.Phone()

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, first_name, last_name, specialization, email, phone, bio, user_id)
			VALUES ($1,$2,$3,$4,$5,$6,NULL,NULL)`,
			id, first, last, spec, seedEmail(first, last, i), &phone)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, tx.Commit(ctx)
}

// seedAvailabilities gives every doctor a Monday-to-Friday 09:00-17:00 week.
func seedAvailabilities(ctx context.Context, pool *pgxpool.Pool, doctorIDs []uuid.UUID) error {
	weekdays := []doctor.Weekday{
		doctor.Monday, doctor.Tuesday, doctor.Wednesday, doctor.Thursday, doctor.Friday,
	}
	const startMin = 9 * 60
	const endMin = 17 * 60

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, doctorID := range doctorIDs {
		for _, day := range weekdays {
			_, err := tx.Exec(ctx, `
				INSERT INTO availabilities (id, doctor_id, day_of_week, specific_date, start_time, end_time)
				VALUES ($1,$2,$3,NULL,$4,$5)`,
				uuid.New(), doctorID, string(day), startMin, endMin)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	const batchSize = 500

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			first := gofakeit.FirstName()
			last := gofakeit.LastName()
			dob := gofakeit.DateRange(
				time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC))
			phone := gofakeit.Phone()
			address := gofakeit.Address().Address

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (id, first_name, last_name, date_of_birth, email, phone, address,
					insurance_provider, insurance_id)
				VALUES ($1,$2,$3,$4,$5,$6,$7,NULL,NULL)`,
				uuid.New(), first, last, dob,
				seedEmail(first, last, i), &phone, &address)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}

	return nil
}
