package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/home-maintenance-api/middleware"
	"github.com/sidhant-sriv/home-maintenance-api/models"
	"github.com/sidhant-sriv/home-maintenance-api/ownership"
)

// ServiceRecordRoutes sets up the routes for service record operations
func (a *API) ServiceRecordRoutes(router *gin.Engine, authenticate gin.HandlerFunc) {
	recordRoutes := router.Group("/service_records")
	recordRoutes.Use(authenticate)
	{
		recordRoutes.POST("/", a.CreateServiceRecord())
		recordRoutes.GET("/", a.listOwned(ownership.ServiceRecords))
		recordRoutes.GET("/:id", a.getOwned(ownership.ServiceRecords))
		recordRoutes.PUT("/:id", a.UpdateServiceRecord())
		recordRoutes.DELETE("/:id", a.deleteOwned(ownership.ServiceRecords))
	}
}

// CreateServiceRecord logs a service event against one of the caller's appliances
func (a *API) CreateServiceRecord() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ServiceRecordCreate
		if !bindJSON(c, &req) {
			return
		}

		if _, err := a.owners.Authorize(c.Request.Context(), ownership.Appliances, req.ApplianceID, middleware.GetUserID(c)); err != nil {
			respondError(c, err)
			return
		}
		a.insert(c, ownership.ServiceRecords, req.Row())
	}
}

// UpdateServiceRecord applies the provided fields to a service record
func (a *API) UpdateServiceRecord() gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := a.owners.Authorize(c.Request.Context(), ownership.ServiceRecords, c.Param("id"), middleware.GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		var req models.ServiceRecordUpdate
		if !bindJSON(c, &req) {
			return
		}
		a.applyPatch(c, ownership.ServiceRecords, current, req.Patch())
	}
}
