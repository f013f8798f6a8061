package routes

import (
	"cmp"
	"math"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/sidhant-sriv/home-maintenance-api/db"
	"github.com/sidhant-sriv/home-maintenance-api/middleware"
	"github.com/sidhant-sriv/home-maintenance-api/models"
	"github.com/sidhant-sriv/home-maintenance-api/ownership"
)

// dashboardLimit caps each of the short lists on the dashboard.
const dashboardLimit = 3

// DashboardStats summarises everything the caller owns.
type DashboardStats struct {
	TotalAppliances          int            `json:"total_appliances"`
	AppliancesByCategory     map[string]int `json:"appliances_by_category"`
	UpcomingReminders        []db.Row       `json:"upcoming_reminders"`
	ExpiringWarranties       []db.Row       `json:"expiring_warranties"`
	RecentServiceRecords     []db.Row       `json:"recent_service_records"`
	TotalServiceCostThisYear float64        `json:"total_service_cost_this_year"`
}

// DashboardRoutes sets up the dashboard route
func (a *API) DashboardRoutes(router *gin.Engine, authenticate gin.HandlerFunc) {
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(authenticate)
	{
		dashboardRoutes.GET("/", a.GetDashboard())
	}
}

// GetDashboard returns the caller's DashboardStats
func (a *API) GetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var appliances, records, reminders []db.Row
		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() (err error) {
			appliances, err = a.owners.ListOwned(ctx, ownership.Appliances, userID)
			return err
		})
		g.Go(func() (err error) {
			records, err = a.owners.ListOwned(ctx, ownership.ServiceRecords, userID)
			return err
		})
		g.Go(func() (err error) {
			reminders, err = a.owners.ListOwned(ctx, ownership.Reminders, userID)
			return err
		})
		if err := g.Wait(); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, buildDashboard(a.now(), appliances, records, reminders))
	}
}

func buildDashboard(now time.Time, appliances, records, reminders []db.Row) DashboardStats {
	today := now.UTC().Format(models.DateLayout)
	stats := DashboardStats{
		TotalAppliances:      len(appliances),
		AppliancesByCategory: map[string]int{},
	}

	var warranties []db.Row
	for _, appliance := range appliances {
		category, _ := appliance["category"].(string)
		stats.AppliancesByCategory[category]++
		if expiry := dateOf(appliance, "warranty_expiration_date"); expiry != "" && expiry >= today {
			warranties = append(warranties, appliance)
		}
	}
	slices.SortStableFunc(warranties, func(x, y db.Row) int {
		return cmp.Compare(dateOf(x, "warranty_expiration_date"), dateOf(y, "warranty_expiration_date"))
	})
	stats.ExpiringWarranties = head(warranties)

	var open []db.Row
	for _, reminder := range reminders {
		if done, _ := reminder["completed"].(bool); !done {
			open = append(open, reminder)
		}
	}
	slices.SortStableFunc(open, func(x, y db.Row) int {
		return cmp.Compare(dateOf(x, "due_date"), dateOf(y, "due_date"))
	})
	stats.UpcomingReminders = head(open)

	year := strconv.Itoa(now.UTC().Year())
	var total float64
	for _, record := range records {
		if date := dateOf(record, "date"); len(date) >= 4 && date[:4] == year {
			total += number(record["cost"])
		}
	}
	stats.TotalServiceCostThisYear = math.Round(total*100) / 100

	recent := slices.Clone(records)
	slices.SortStableFunc(recent, func(x, y db.Row) int {
		return cmp.Compare(dateOf(y, "date"), dateOf(x, "date"))
	})
	stats.RecentServiceRecords = head(recent)

	return stats
}

// head returns at most dashboardLimit rows, never nil.
func head(rows []db.Row) []db.Row {
	if len(rows) > dashboardLimit {
		rows = rows[:dashboardLimit]
	}
	if rows == nil {
		return []db.Row{}
	}
	return rows
}

// dateOf returns the YYYY-MM-DD form of a date column, or "" when it is unset
// or unparseable. Dates in that form sort chronologically as strings.
func dateOf(row db.Row, column string) string {
	s, _ := row[column].(string)
	if s == "" {
		return ""
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return ""
	}
	return d.String()
}

// number reads a numeric column. Backends return numerics as JSON numbers or,
// for arbitrary precision, as strings.
func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}
