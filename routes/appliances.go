package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/home-maintenance-api/middleware"
	"github.com/sidhant-sriv/home-maintenance-api/models"
	"github.com/sidhant-sriv/home-maintenance-api/ownership"
)

// ApplianceRoutes sets up the routes for appliance operations
func (a *API) ApplianceRoutes(router *gin.Engine, authenticate gin.HandlerFunc) {
	applianceRoutes := router.Group("/appliances")
	applianceRoutes.Use(authenticate)
	{
		applianceRoutes.POST("/", a.CreateAppliance())
		applianceRoutes.GET("/", a.listOwned(ownership.Appliances))
		applianceRoutes.GET("/:id", a.getOwned(ownership.Appliances))
		applianceRoutes.PUT("/:id", a.UpdateAppliance())
		applianceRoutes.DELETE("/:id", a.deleteOwned(ownership.Appliances))
	}
}

// CreateAppliance adds an appliance to one of the caller's home profiles
func (a *API) CreateAppliance() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ApplianceCreate
		if !bindJSON(c, &req) {
			return
		}

		// Verify that the home profile belongs to the user
		ctx := c.Request.Context()
		if _, err := a.owners.Authorize(ctx, ownership.HomeProfiles, req.HomeProfileID, middleware.GetUserID(c)); err != nil {
			respondError(c, err)
			return
		}
		a.insert(c, ownership.Appliances, req.Row())
	}
}

// UpdateAppliance applies the provided fields to an appliance. Moving it to
// another home profile requires owning that profile too.
func (a *API) UpdateAppliance() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userID := middleware.GetUserID(c)
		current, err := a.owners.Authorize(ctx, ownership.Appliances, c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		var req models.ApplianceUpdate
		if !bindJSON(c, &req) {
			return
		}

		if req.HomeProfileID != nil && *req.HomeProfileID != current["home_profile_id"] {
			if _, err := a.owners.Authorize(ctx, ownership.HomeProfiles, *req.HomeProfileID, userID); err != nil {
				respondError(c, err)
				return
			}
			a.logger.InfoContext(ctx, "Moving appliance", "id", c.Param("id"), "home_profile_id", *req.HomeProfileID)
		}
		a.applyPatch(c, ownership.Appliances, current, req.Patch())
	}
}
