package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/home-maintenance-api/middleware"
	"github.com/sidhant-sriv/home-maintenance-api/models"
	"github.com/sidhant-sriv/home-maintenance-api/ownership"
)

// HomeProfileRoutes sets up the routes for home profile operations
func (a *API) HomeProfileRoutes(router *gin.Engine, authenticate gin.HandlerFunc) {
	profileRoutes := router.Group("/home_profiles")
	profileRoutes.Use(authenticate)
	{
		profileRoutes.POST("/", a.CreateHomeProfile())
		profileRoutes.GET("/", a.listOwned(ownership.HomeProfiles))
		profileRoutes.GET("/:id", a.getOwned(ownership.HomeProfiles))
		profileRoutes.PUT("/:id", a.UpdateHomeProfile())
		profileRoutes.DELETE("/:id", a.deleteOwned(ownership.HomeProfiles))
	}
}

// CreateHomeProfile creates a profile owned by the caller
func (a *API) CreateHomeProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.HomeProfileCreate
		if !bindJSON(c, &req) {
			return
		}
		a.insert(c, ownership.HomeProfiles, req.Row(middleware.GetUserID(c)))
	}
}

// UpdateHomeProfile applies the provided fields to a profile
func (a *API) UpdateHomeProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := a.owners.Authorize(c.Request.Context(), ownership.HomeProfiles, c.Param("id"), middleware.GetUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		var req models.HomeProfileUpdate
		if !bindJSON(c, &req) {
			return
		}
		a.applyPatch(c, ownership.HomeProfiles, current, req.Patch())
	}
}
