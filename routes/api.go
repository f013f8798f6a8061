package routes

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/home-maintenance-api/apperr"
	"github.com/sidhant-sriv/home-maintenance-api/db"
	"github.com/sidhant-sriv/home-maintenance-api/middleware"
	"github.com/sidhant-sriv/home-maintenance-api/ownership"
)

// API holds the handlers of the four resources and the dashboard. It keeps no
// per-request state; everything it needs is injected.
type API struct {
	store  db.Store
	owners *ownership.Resolver
	logger *slog.Logger
	now    func() time.Time
}

func NewAPI(store db.Store, logger *slog.Logger, now func() time.Time) *API {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		store:  store,
		owners: ownership.NewResolver(store),
		logger: logger,
		now:    now,
	}
}

// listOwned returns every row of the chain's resource owned by the caller.
func (a *API) listOwned(chain ownership.Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := a.owners.ListOwned(c.Request.Context(), chain, middleware.GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// getOwned returns one row after checking the caller owns it.
func (a *API) getOwned(chain ownership.Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := a.owners.Authorize(c.Request.Context(), chain, c.Param("id"), middleware.GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

// deleteOwned removes one row after checking the caller owns it. Children
// are left in place.
func (a *API) deleteOwned(chain ownership.Chain) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")
		if _, err := a.owners.Authorize(ctx, chain, id, middleware.GetUserID(c)); err != nil {
			respondError(c, err)
			return
		}

		rows, err := a.store.Delete(ctx, chain[0].Table, db.Eq("id", id))
		if err != nil {
			respondError(c, err)
			return
		}
		if len(rows) == 0 {
			respondError(c, apperr.NotFound("%s not found", chain.Kind()))
			return
		}

		a.logger.InfoContext(ctx, chain.Kind()+" deleted", "id", id)
		c.Status(http.StatusNoContent)
	}
}

// applyPatch writes patch to the row current, already authorized, and
// responds with the updated row. An empty patch returns current unchanged.
func (a *API) applyPatch(c *gin.Context, chain ownership.Chain, current db.Row, patch db.Row) {
	if len(patch) == 0 {
		c.JSON(http.StatusOK, current)
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	rows, err := a.store.Update(ctx, chain[0].Table, db.Eq("id", id), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		respondError(c, apperr.Upstream(nil, "Failed to update %s", strings.ToLower(chain.Kind())))
		return
	}

	a.logger.InfoContext(ctx, chain.Kind()+" updated", "id", id, "fields", len(patch))
	c.JSON(http.StatusOK, rows[0])
}

// insert stores row and responds 201 with the stored row.
func (a *API) insert(c *gin.Context, chain ownership.Chain, row db.Row) {
	ctx := c.Request.Context()
	created, err := a.store.Insert(ctx, chain[0].Table, row)
	if err != nil {
		respondError(c, err)
		return
	}

	a.logger.InfoContext(ctx, chain.Kind()+" created", "id", created["id"])
	c.JSON(http.StatusCreated, created)
}
