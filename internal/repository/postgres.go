package repository

import (
	"context"
	"fmt"

	"clinic-access-api/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const clinicsTable = "clinics"

var clinicColumns = []string{"state", "zip_key", "city", "name", "address", "zipcode"}

// DB is the part of *pgxpool.Pool the repository needs
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresRepository stores clinic locations in PostgreSQL, one row per clinic
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// EnsureSchema creates the clinics table if it does not exist yet.
// zip_key and city are NULL where the source marked them missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS clinics (
		id BIGSERIAL PRIMARY KEY,
		state TEXT NOT NULL,
		zip_key TEXT,
		city TEXT,
		name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		zipcode TEXT
	);
	CREATE INDEX IF NOT EXISTS clinics_state_idx ON clinics (state);
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("repository: failed to create clinics table: %w", err)
	}
	return nil
}

// Truncate removes every stored clinic and resets the id sequence
func (r *PostgresRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "TRUNCATE TABLE clinics RESTART IDENTITY"); err != nil {
		return fmt.Errorf("repository: failed to truncate clinics: %w", err)
	}
	return nil
}

// ImportLocations bulk-inserts every clinic of the dataset in document order
func (r *PostgresRepository) ImportLocations(ctx context.Context, locations models.LocationDataset) (int64, error) {
	var rows [][]any
	for _, st := range locations {
		for _, zg := range st.ZipGroups {
			for _, c := range zg.Clinics {
				rows = append(rows, []any{
					st.State,
					toText(zg.Zip),
					toText(c.City),
					c.Name,
					c.Address,
					toText(c.Zipcode),
				})
			}
		}
	}

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{clinicsTable}, clinicColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy clinics: %w", err)
	}
	return n, nil
}

// CountClinics returns the number of stored clinic rows
func (r *PostgresRepository) CountClinics(ctx context.Context) (int, error) {
	sql, args, err := psql.Select("COUNT(*)").From(clinicsTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("repository: failed to build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count clinics: %w", err)
	}
	return count, nil
}

// LoadLocations rebuilds the location dataset from the clinics table. States
// and zip groups appear in the order their first clinic was imported.
func (r *PostgresRepository) LoadLocations(ctx context.Context) (models.LocationDataset, error) {
	sql, args, err := psql.Select(clinicColumns...).From(clinicsTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute select query: %w", err)
	}
	defer rows.Close()

	var (
		dataset    models.LocationDataset
		stateIndex = map[string]int{}
		zipIndex   = map[string]map[pgtype.Text]int{}
	)

	for rows.Next() {
		var (
			state, name, address  string
			zipKey, city, zipcode pgtype.Text
		)
		if err := rows.Scan(&state, &zipKey, &city, &name, &address, &zipcode); err != nil {
			return nil, fmt.Errorf("repository: failed to scan clinic: %w", err)
		}

		si, ok := stateIndex[state]
		if !ok {
			si = len(dataset)
			stateIndex[state] = si
			zipIndex[state] = map[pgtype.Text]int{}
			dataset = append(dataset, models.StateLocations{State: state})
		}

		st := &dataset[si]
		zi, ok := zipIndex[state][zipKey]
		if !ok {
			zi = len(st.ZipGroups)
			zipIndex[state][zipKey] = zi
			st.ZipGroups = append(st.ZipGroups, models.ZipGroup{Zip: fromText(zipKey)})
		}

		st.ZipGroups[zi].Clinics = append(st.ZipGroups[zi].Clinics, models.Clinic{
			Name:    name,
			Address: address,
			City:    fromText(city),
			State:   state,
			Zipcode: fromText(zipcode),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return dataset, nil
}

func toText(o models.Optional) pgtype.Text {
	return pgtype.Text{String: o.Value, Valid: o.Valid}
}

func fromText(t pgtype.Text) models.Optional {
	if !t.Valid {
		return models.Optional{}
	}
	return models.Some(t.String)
}
