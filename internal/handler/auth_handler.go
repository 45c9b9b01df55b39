package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/auth"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/model"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  service.AuthService
	sessions     *auth.SessionCodec
	cookieSecure bool
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionCodec, cookieSecure bool, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET(auth.LoginPath, h.LoginPage)
	router.POST(auth.LoginPath, h.Login)
	router.POST("/logout", h.Logout)
}

// LoginPage serves the empty sign-in form state
// @Summary Sign-in form
// @Tags auth
// @Produce json
// @Param callbackUrl query string false "Where to go after signing in"
// @Success 200 {object} model.LoginStateResponse
// @Router /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	respondOK(c, model.LoginStateResponse{})
}

// Login authenticates an email and password
// @Summary Sign in
// @Description Checks the credentials, sets the session cookie and redirects to the callback URL
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param email formData string true "Email address"
// @Param password formData string true "Password"
// @Param callbackUrl formData string false "Where to go after signing in"
// @Success 303 "Redirect to the dashboard"
// @Failure 401 {object} model.LoginStateResponse "Sign-in failed"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if err := parseForm(c); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	result, err := h.authService.Authenticate(c.Request.Context(), c.Request.PostForm)
	if err != nil {
		logError(h.logger, c, "sign-in failed", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}
	if result.Message != "" {
		c.JSON(StatusUnauthorized, model.LoginStateResponse{Message: result.Message})
		return
	}

	h.setSessionCookie(c, result.Token, int(h.sessions.TTL().Seconds()))

	callback := c.PostForm("callbackUrl")
	if callback == "" {
		callback = c.Query("callbackUrl")
	}
	h.logger.Info("user signed in", zap.String("user_id", result.Session.User.ID))
	respondSeeOther(c, safeCallback(callback, auth.DashboardPath))
}

// Logout clears the session cookie
// @Summary Sign out
// @Tags auth
// @Success 303 "Redirect to the sign-in page"
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	respondSeeOther(c, auth.LoginPath)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, value, maxAge, "/", "", h.cookieSecure, true)
}
