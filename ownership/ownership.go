// Package ownership resolves which user owns a record by walking its parent
// references up to the home profile at the root of the tree:
//
//	home_profiles.user_id
//	  <- appliances.home_profile_id
//	       <- service_records.appliance_id
//	       <- maintenance_reminders.appliance_id
//
// Every resource kind is described by a Chain, so the walk is written once.
package ownership

import (
	"context"
	"strings"

	"github.com/sidhant-sriv/home-maintenance-api/apperr"
	"github.com/sidhant-sriv/home-maintenance-api/db"
)

// Link is one hop of a chain. Parent names the column that references the
// next link's row; on the last link it holds the owning user id.
type Link struct {
	Kind   string
	Table  string
	Parent string
}

// Chain runs from a resource to the root of the ownership tree.
type Chain []Link

// Kind is the display name of the resource the chain starts from.
func (c Chain) Kind() string { return c[0].Kind }

var (
	HomeProfiles = Chain{
		{Kind: "Home profile", Table: db.TableHomeProfiles, Parent: "user_id"},
	}
	Appliances = append(Chain{
		{Kind: "Appliance", Table: db.TableAppliances, Parent: "home_profile_id"},
	}, HomeProfiles...)
	ServiceRecords = append(Chain{
		{Kind: "Service record", Table: db.TableServiceRecords, Parent: "appliance_id"},
	}, Appliances...)
	Reminders = append(Chain{
		{Kind: "Reminder", Table: db.TableReminders, Parent: "appliance_id"},
	}, Appliances...)
)

// Resolver walks chains against a store.
type Resolver struct {
	store db.Store
}

func NewResolver(store db.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the owning user id of record id together with the record
// itself. Each hop is one point lookup. A missing row at any hop, the record
// or one of its ancestors, is reported as the record not being found.
func (r *Resolver) Resolve(ctx context.Context, chain Chain, id string) (string, db.Row, error) {
	var record db.Row
	next := id
	for i, link := range chain {
		rows, err := r.store.Select(ctx, link.Table, db.Eq("id", next))
		if err != nil {
			return "", nil, err
		}
		if len(rows) == 0 {
			return "", nil, apperr.NotFound("%s not found", chain.Kind())
		}
		if i == 0 {
			record = rows[0]
		}
		parent, _ := rows[0][link.Parent].(string)
		if parent == "" {
			return "", nil, apperr.NotFound("%s not found", chain.Kind())
		}
		next = parent
	}
	return next, record, nil
}

// Authorize resolves id and checks that userID owns it. The record is
// returned so callers do not need to read it again.
func (r *Resolver) Authorize(ctx context.Context, chain Chain, id, userID string) (db.Row, error) {
	owner, record, err := r.Resolve(ctx, chain, id)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, apperr.Forbidden("Not authorized to access this %s", strings.ToLower(chain.Kind()))
	}
	return record, nil
}

// ListOwned returns every row of the chain's first table owned by userID. It
// walks from the root down and stops with an empty result as soon as a level
// has no rows, without issuing further lookups.
func (r *Resolver) ListOwned(ctx context.Context, chain Chain, userID string) ([]db.Row, error) {
	root := chain[len(chain)-1]
	rows, err := r.store.Select(ctx, root.Table, db.Eq(root.Parent, userID))
	if err != nil {
		return nil, err
	}
	for i := len(chain) - 2; i >= 0; i-- {
		ids := db.Column(rows, "id")
		if len(ids) == 0 {
			return []db.Row{}, nil
		}
		link := chain[i]
		if rows, err = r.store.Select(ctx, link.Table, db.In(link.Parent, ids)); err != nil {
			return nil, err
		}
	}
	return rows, nil
}
