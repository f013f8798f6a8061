// Package db is the table-oriented record store the handlers talk to.
//
// Every driver exposes the same four operations over whole rows. A filter is
// an equality or set-membership predicate on a single column. Rows come back
// exactly as the backend returns them and are passed through to clients.
package db

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sidhant-sriv/home-maintenance-api/config"
)

// Row is one table row keyed by column name.
type Row = map[string]any

const (
	TableHomeProfiles   = "home_profiles"
	TableAppliances     = "appliances"
	TableServiceRecords = "service_records"
	TableReminders      = "maintenance_reminders"
)

// Filter selects rows whose Column equals one of Values. A filter with no
// values matches nothing.
type Filter struct {
	Column string
	Values []string
	In     bool
}

// Eq matches rows where column == value.
func Eq(column, value string) Filter {
	return Filter{Column: column, Values: []string{value}}
}

// In matches rows where column is one of values.
func In(column string, values []string) Filter {
	return Filter{Column: column, Values: values, In: true}
}

// Store is implemented by every record store driver. Errors returned by a
// Store are *apperr.Error values with code UPSTREAM_FAILURE.
type Store interface {
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Select(ctx context.Context, table string, filter Filter) ([]Row, error)
	// Update applies patch to every row matching filter and returns the
	// updated rows.
	Update(ctx context.Context, table string, filter Filter, patch Row) ([]Row, error)
	// Delete removes every row matching filter and returns the removed rows.
	Delete(ctx context.Context, table string, filter Filter) ([]Row, error)
	Close() error
}

// Open builds the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverPostgres:
		store, err := OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				store.Close()
				return nil, err
			}
		}
		return store, nil
	case config.DriverREST:
		client := &http.Client{Timeout: cfg.HTTPTimeout}
		return NewRESTStore(cfg.SupabaseURL, cfg.SupabaseKey, client), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Column collects the string values of column across rows, skipping rows
// where it is absent.
func Column(rows []Row, column string) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if v, ok := row[column].(string); ok && v != "" {
			out = append(out, v)
		}
	}
	return out
}
