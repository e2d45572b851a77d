package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"kisan_unnati/internal/middleware"
	"kisan_unnati/internal/model"
	"kisan_unnati/internal/pkg/response"
	"kisan_unnati/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests for users and shopkeepers
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type authData struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "User already exists")
			return
		}
		log.Printf("ERROR: registration failed for %s: %v", req.Email, err)
		response.Error(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response.Created(c, "User registered successfully", authData{Token: token, User: user.Public()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("ERROR: login failed for %s: %v", req.Email, err)
		response.Error(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	response.OK(c, "Login successful", authData{Token: token, User: user.Public()})
}

// shopkeeperError maps the validation errors of the shopkeeper flow. The
// shopkeeper endpoints answer with a bare {message} body.
func shopkeeperError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShopkeeperMissingFields),
		errors.Is(err, service.ErrShopkeeperMissingLogin),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrShopkeeperExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrShopkeeperInvalidLogin):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	default:
		log.Printf("ERROR: shopkeeper auth: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "सर्वर त्रुटि, कृपया बाद में प्रयास करें"})
	}
}

func (h *AuthHandler) RegisterShopkeeper(c *gin.Context) {
	var req model.ShopkeeperRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrShopkeeperMissingFields.Error()})
		return
	}

	shop, err := h.service.RegisterShopkeeper(c.Request.Context(), req)
	if err != nil {
		shopkeeperError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "दुकान सफलतापूर्वक रजिस्टर हो गई",
		"shopKeeper": shop,
	})
}

func (h *AuthHandler) LoginShopkeeper(c *gin.Context) {
	var req model.ShopkeeperLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": service.ErrShopkeeperMissingLogin.Error()})
		return
	}

	shop, token, err := h.service.LoginShopkeeper(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		shopkeeperError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "लॉगिन सफल",
		"shopKeeper": shop,
		"token":      token,
	})
}

// Logout only acknowledges; tokens are stateless and clients drop them
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, _ := getAuthUserID(c)
	role, _ := getAuthUserRole(c)
	log.Printf("INFO: %s %d logged out", role, userID)
	response.OK(c, "Logged out successfully", nil)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token := middleware.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		var body struct {
			Token string `json:"token"`
		}
		_ = c.ShouldBindJSON(&body)
		token = body.Token
	}

	refreshed, err := h.service.Refresh(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid token. Please log in again!")
		return
	}
	response.OK(c, "Token refreshed", gin.H{"token": refreshed})
}

func (h *AuthHandler) ListShopkeepers(c *gin.Context) {
	shops, err := h.service.ListShopkeepers(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: listing shopkeepers: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve shops")
		return
	}
	response.OK(c, "Shops retrieved", shops)
}

func (h *AuthHandler) GetShopkeeper(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid shop ID")
		return
	}
	h.respondShopkeeper(c, id)
}

// MyShop returns the shop of the logged-in shopkeeper
func (h *AuthHandler) MyShop(c *gin.Context) {
	id, err := getAuthUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	h.respondShopkeeper(c, id)
}

func (h *AuthHandler) respondShopkeeper(c *gin.Context, id int) {
	shop, err := h.service.GetShopkeeper(c.Request.Context(), id)
	if err != nil {
		log.Printf("ERROR: loading shopkeeper %d: %v", id, err)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve shop")
		return
	}
	if shop == nil {
		response.Error(c, http.StatusNotFound, "Shop not found")
		return
	}
	response.OK(c, "Shop retrieved", shop)
}

// RegisterAuthRoutes registers auth and shop directory routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, shopkeeperMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register-shopkeeper", h.RegisterShopkeeper)
		authGroup.POST("/login-shopkeeper", h.LoginShopkeeper)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", authMW, h.Logout)
	}

	shopGroup := rg.Group("/shopkeepers")
	{
		shopGroup.GET("", h.ListShopkeepers)
		shopGroup.GET("/me", authMW, shopkeeperMW, h.MyShop)
		shopGroup.GET("/:id", h.GetShopkeeper)
	}
}
