package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/auth"
)

func newGatedRouter(t *testing.T) (*gin.Engine, *auth.SessionCodec) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	codec, err := auth.NewSessionCodec("test-secret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(LoadSession(codec), AccessGate("/health"))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/dashboard", ok)
	r.GET("/dashboard/invoices", ok)
	r.GET("/login", ok)
	r.GET("/health", ok)
	return r, codec
}

func signedInCookie(t *testing.T, codec *auth.SessionCodec) *http.Cookie {
	t.Helper()
	token, _, err := codec.Issue(auth.SessionUser{ID: "u-1", Email: "user@nextmail.com"})
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

func TestAccessGate_DeniesAnonymousDashboard(t *testing.T) {
	r, _ := newGatedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/invoices?page=2", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "/dashboard/invoices?page=2", loc.Query().Get("callbackUrl"))
}

func TestAccessGate_AllowsSignedInDashboard(t *testing.T) {
	r, codec := newGatedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(signedInCookie(t, codec))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessGate_RedirectsSignedInAwayFromLogin(t *testing.T) {
	r, codec := newGatedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(signedInCookie(t, codec))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestAccessGate_AllowsAnonymousLogin(t *testing.T) {
	r, _ := newGatedRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessGate_TamperedCookieIsAnonymous(t *testing.T) {
	r, _ := newGatedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/login"))
}

func TestAccessGate_ExemptPathSkipsGate(t *testing.T) {
	r, codec := newGatedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.AddCookie(signedInCookie(t, codec))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger_RedactsSensitiveFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.POST("/login", func(c *gin.Context) {
		_ = c.Request.ParseForm()
		c.Status(http.StatusOK)
	})

	body := url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", "session=abc")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/login", fields["path"])

	form, ok := fields["form"].(map[string]string)
	require.True(t, ok, "form field has type %T", fields["form"])
	assert.Equal(t, redacted, form["password"])
	assert.Equal(t, "user@nextmail.com", form["email"])

	headers, ok := fields["headers"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, redacted, headers["Cookie"])
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("https://dashboard.example.com"))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/login", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://dashboard.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
