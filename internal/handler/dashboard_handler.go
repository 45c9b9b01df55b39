package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/auth"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/middleware"
)

// DashboardResponse is the overview payload for the signed-in user
type DashboardResponse struct {
	User auth.SessionUser `json:"user"`
}

// Dashboard serves the overview for the signed-in user
// @Summary Dashboard overview
// @Tags dashboard
// @Produce json
// @Success 200 {object} handler.DashboardResponse
// @Success 302 "Redirect to sign-in when anonymous"
// @Router /dashboard [get]
func Dashboard(c *gin.Context) {
	session := middleware.SessionFromContext(c)
	if !session.IsLoggedIn() {
		respondWithError(c, StatusUnauthorized, "Not signed in")
		return
	}
	respondOK(c, DashboardResponse{User: *session.User})
}
