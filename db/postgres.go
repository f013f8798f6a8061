package db

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sidhant-sriv/home-maintenance-api/apperr"
	"github.com/sidhant-sriv/home-maintenance-api/models"
)

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresStore talks to the database behind the hosted backend directly.
// Every statement returns whole rows as row_to_json so the result has the
// same shape the REST driver produces.
type PostgresStore struct {
	db *gorm.DB
}

func OpenPostgres(dsn string) (*PostgresStore, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return &PostgresStore{db: gdb}, nil
}

// Migrate creates or updates the four resource tables.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&models.HomeProfile{},
		&models.Appliance{},
		&models.ServiceRecord{},
		&models.MaintenanceReminder{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	query, args, err := buildInsert(table, row)
	if err != nil {
		return nil, err
	}
	rows, err := s.query(ctx, "insert into", table, query, args)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.Upstream(nil, "insert into %s returned no row", table)
	}
	return rows[0], nil
}

func (s *PostgresStore) Select(ctx context.Context, table string, filter Filter) ([]Row, error) {
	where, args, ok, err := buildWhere(table, filter)
	if err != nil || !ok {
		return []Row{}, err
	}
	query := fmt.Sprintf("SELECT row_to_json(r)::text FROM %s AS r WHERE %s", table, where)
	return s.query(ctx, "select from", table, query, args)
}

func (s *PostgresStore) Update(ctx context.Context, table string, filter Filter, patch Row) ([]Row, error) {
	where, whereArgs, ok, err := buildWhere(table, filter)
	if err != nil || !ok {
		return []Row{}, err
	}
	if len(patch) == 0 {
		return s.Select(ctx, table, filter)
	}
	cols, vals, err := columns(patch)
	if err != nil {
		return nil, err
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s AS r SET %s WHERE %s RETURNING row_to_json(r)::text",
		table, strings.Join(sets, ", "), where)
	return s.query(ctx, "update", table, query, append(vals, whereArgs...))
}

func (s *PostgresStore) Delete(ctx context.Context, table string, filter Filter) ([]Row, error) {
	where, args, ok, err := buildWhere(table, filter)
	if err != nil || !ok {
		return []Row{}, err
	}
	query := fmt.Sprintf("DELETE FROM %s AS r WHERE %s RETURNING row_to_json(r)::text", table, where)
	return s.query(ctx, "delete from", table, query, args)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) query(ctx context.Context, op, table, query string, args []any) ([]Row, error) {
	var docs []string
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&docs).Error; err != nil {
		return nil, apperr.Upstream(err, "failed to %s %s", op, table)
	}
	rows := make([]Row, 0, len(docs))
	for _, doc := range docs {
		var row Row
		if err := json.Unmarshal([]byte(doc), &row); err != nil {
			return nil, apperr.Upstream(err, "failed to decode %s row", table)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func buildInsert(table string, row Row) (string, []any, error) {
	if !identPattern.MatchString(table) {
		return "", nil, apperr.Upstream(nil, "invalid table name %q", table)
	}
	cols, vals, err := columns(row)
	if err != nil {
		return "", nil, err
	}
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s AS r DEFAULT VALUES RETURNING row_to_json(r)::text", table), nil, nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf("INSERT INTO %s AS r (%s) VALUES (%s) RETURNING row_to_json(r)::text",
		table, strings.Join(cols, ", "), marks)
	return query, vals, nil
}

// buildWhere renders filter against alias r. ok is false when the filter can
// match nothing, in which case no statement should be sent. Values that are
// not valid uuids are dropped for uuid columns, since postgres would reject
// the whole statement for them. user_id is text: subjects are opaque.
func buildWhere(table string, filter Filter) (string, []any, bool, error) {
	if !identPattern.MatchString(table) {
		return "", nil, false, apperr.Upstream(nil, "invalid table name %q", table)
	}
	if !identPattern.MatchString(filter.Column) {
		return "", nil, false, apperr.Upstream(nil, "invalid column name %q", filter.Column)
	}
	values := filter.Values
	if uuidColumns[filter.Column] {
		values = make([]string, 0, len(filter.Values))
		for _, v := range filter.Values {
			if _, err := uuid.Parse(v); err == nil {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return "", nil, false, nil
	}
	if !filter.In {
		return "r." + filter.Column + " = ?", []any{values[0]}, true, nil
	}
	return "r." + filter.Column + " IN ?", []any{values}, true, nil
}

// uuidColumns are the columns declared with type uuid in the models.
var uuidColumns = map[string]bool{
	"id":              true,
	"home_profile_id": true,
	"appliance_id":    true,
}

// columns returns the sorted column names of row and their bind values.
// String slices are bound as postgres text arrays.
func columns(row Row) ([]string, []any, error) {
	cols := make([]string, 0, len(row))
	for c := range row {
		if !identPattern.MatchString(c) {
			return nil, nil, apperr.Upstream(nil, "invalid column name %q", c)
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)
	vals := make([]any, len(cols))
	for i, c := range cols {
		v := row[c]
		if s, ok := v.([]string); ok {
			v = pq.StringArray(s)
		}
		vals[i] = v
	}
	return cols, vals, nil
}
