package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/home-maintenance-api/db"
	"github.com/sidhant-sriv/home-maintenance-api/middleware"
	"github.com/sidhant-sriv/home-maintenance-api/models"
	"github.com/sidhant-sriv/home-maintenance-api/ownership"
)

// ReminderRoutes sets up the routes for maintenance reminder operations
func (a *API) ReminderRoutes(router *gin.Engine, authenticate gin.HandlerFunc) {
	reminderRoutes := router.Group("/reminders")
	reminderRoutes.Use(authenticate)
	{
		reminderRoutes.POST("/", a.CreateReminder())
		reminderRoutes.GET("/", a.listOwned(ownership.Reminders))
		reminderRoutes.GET("/:id", a.getOwned(ownership.Reminders))
		reminderRoutes.PUT("/:id", a.UpdateReminder())
		reminderRoutes.PATCH("/:id/complete", a.CompleteReminder())
		reminderRoutes.DELETE("/:id", a.deleteOwned(ownership.Reminders))
	}
}

// CreateReminder schedules a reminder for one of the caller's appliances
func (a *API) CreateReminder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ReminderCreate
		if !bindJSON(c, &req) {
			return
		}

		if _, err := a.owners.Authorize(c.Request.Context(), ownership.Appliances, req.ApplianceID, middleware.GetUserID(c)); err != nil {
			respondError(c, err)
			return
		}
		a.insert(c, ownership.Reminders, req.Row())
	}
}

// UpdateReminder applies the provided fields to a reminder
func (a *API) UpdateReminder() gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := a.owners.Authorize(c.Request.Context(), ownership.Reminders, c.Param("id"), middleware.GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		var req models.ReminderUpdate
		if !bindJSON(c, &req) {
			return
		}
		a.applyPatch(c, ownership.Reminders, current, req.Patch())
	}
}

// CompleteReminder marks a reminder as completed. Completing an already
// completed reminder succeeds and leaves it completed.
func (a *API) CompleteReminder() gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := a.owners.Authorize(c.Request.Context(), ownership.Reminders, c.Param("id"), middleware.GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		a.applyPatch(c, ownership.Reminders, current, db.Row{"completed": true})
	}
}
