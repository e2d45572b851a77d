package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kisan_unnati/internal/model"
	"kisan_unnati/internal/pkg/response"
	"kisan_unnati/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(jwtUtil *utils.JWTUtil, roleMW gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/protected", JWTAuthMiddleware(jwtUtil), roleMW, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetInt(AuthUserKey), "role": c.GetString(AuthRoleKey)})
	})
	return r
}

func doGet(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("Bearer"))
	assert.Equal(t, "", BearerToken(""))
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	r := newRouter(jwtUtil, RoleMiddleware(model.RoleFarmer))

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var env response.Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.RequestID)
		assert.Equal(t, env.RequestID, w.Header().Get("X-Request-ID"))
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doGet(r, "Token xyz")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := doGet(r, "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := jwtUtil.GenerateToken(12, model.RoleFarmer)
		require.NoError(t, err)

		w := doGet(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":12,"role":"farmer"}`, w.Body.String())
	})
}

func TestAdminMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	r := newRouter(jwtUtil, AdminMiddleware())

	farmerToken, _ := jwtUtil.GenerateToken(1, model.RoleFarmer)
	w := doGet(r, "Bearer "+farmerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Required role: admin")

	adminToken, _ := jwtUtil.GenerateToken(2, model.RoleAdmin)
	w = doGet(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShopkeeperMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", 1)
	r := newRouter(jwtUtil, ShopkeeperMiddleware())

	adminToken, _ := jwtUtil.GenerateToken(2, model.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+adminToken).Code)

	shopToken, _ := jwtUtil.GenerateToken(3, model.RoleShopkeeper)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+shopToken).Code)
}

func TestRequestID_ReusesCallerHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestCORS_AllowsLocalhostAndFrontend(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://kisan.example.in"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for origin, allowed := range map[string]bool{
		"http://localhost:3000":    true,
		"https://kisan.example.in": true,
		"https://evil.example.com": false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if allowed {
			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"), origin)
		} else {
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), origin)
		}
	}
}
