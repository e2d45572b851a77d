package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"kisan_unnati/internal/model"
	"kisan_unnati/internal/repository"
	"kisan_unnati/internal/utils"
)

var (
	ErrUserAlreadyExists       = errors.New("user already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrShopkeeperExists        = errors.New("यह फ़ोन नंबर पहले से रजिस्टर्ड है")
	ErrShopkeeperInvalidLogin  = errors.New("फ़ोन नंबर या पासवर्ड गलत है")
	ErrShopkeeperMissingFields = errors.New("कृपया सभी जरूरी जानकारी भरें")
	ErrShopkeeperMissingLogin  = errors.New("फ़ोन और पासवर्ड दोनों दर्ज करें")
	ErrPasswordMismatch        = errors.New("पासवर्ड मेल नहीं खा रहे हैं")
	ErrInvalidPhone            = errors.New("कृपया 10 अंकों का फ़ोन नंबर दर्ज करें")
)

var tenDigitPhone = regexp.MustCompile(`^[0-9]{10}$`)

// AuthService issues tokens for the two login populations: users
// (farmer, buyer, admin) by email, shopkeepers by phone.
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	RegisterShopkeeper(ctx context.Context, req model.ShopkeeperRegisterRequest) (*model.Shopkeeper, error)
	LoginShopkeeper(ctx context.Context, phone, password string) (*model.Shopkeeper, string, error)
	ListShopkeepers(ctx context.Context) ([]model.Shopkeeper, error)
	GetShopkeeper(ctx context.Context, id int) (*model.Shopkeeper, error)
	Refresh(token string) (string, error)
}

type authService struct {
	userRepo          repository.UserRepository
	shopkeeperRepo    repository.ShopkeeperRepository
	jwtUtil           *utils.JWTUtil
	initialAdminEmail string
}

// NewAuthService creates a new AuthService. A user registering with
// initialAdminEmail is given the admin role.
func NewAuthService(userRepo repository.UserRepository, shopkeeperRepo repository.ShopkeeperRepository, jwtUtil *utils.JWTUtil, initialAdminEmail string) AuthService {
	return &authService{
		userRepo:          userRepo,
		shopkeeperRepo:    shopkeeperRepo,
		jwtUtil:           jwtUtil,
		initialAdminEmail: strings.ToLower(strings.TrimSpace(initialAdminEmail)),
	}
}

// Register creates a user account and signs a token for it
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleFarmer
	}
	if s.initialAdminEmail != "" && email == s.initialAdminEmail {
		role = model.RoleAdmin
		log.Printf("INFO: User %s is being registered as ADMIN via INITIAL_ADMIN_EMAIL.", email)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         role,
		Location:     req.Location,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Printf("ERROR: User %s (ID: %d) created, but failed to generate token: %v", user.Email, user.ID, err)
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user by email and returns a JWT token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// RegisterShopkeeper validates and stores a shop. No token is issued; the
// shopkeeper logs in afterwards.
func (s *authService) RegisterShopkeeper(ctx context.Context, req model.ShopkeeperRegisterRequest) (*model.Shopkeeper, error) {
	if req.ShopName == "" || req.OwnerName == "" || req.Phone == "" || req.Location == "" || req.Password == "" {
		return nil, ErrShopkeeperMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !tenDigitPhone.MatchString(req.Phone) {
		return nil, ErrInvalidPhone
	}

	existing, err := s.shopkeeperRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing shopkeeper: %w", err)
	}
	if existing != nil {
		return nil, ErrShopkeeperExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	shop := &model.Shopkeeper{
		ShopName:     req.ShopName,
		OwnerName:    req.OwnerName,
		Phone:        req.Phone,
		Location:     req.Location,
		State:        req.State,
		District:     req.District,
		PasswordHash: hashedPassword,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.shopkeeperRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("failed to create shopkeeper in repository: %w", err)
	}
	return shop, nil
}

// LoginShopkeeper authenticates a shopkeeper by phone and returns a token
// carrying the shopkeeper role
func (s *authService) LoginShopkeeper(ctx context.Context, phone, password string) (*model.Shopkeeper, string, error) {
	if phone == "" || password == "" {
		return nil, "", ErrShopkeeperMissingLogin
	}

	shop, err := s.shopkeeperRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, "", fmt.Errorf("error finding shopkeeper by phone: %w", err)
	}
	if shop == nil || !utils.CheckPasswordHash(password, shop.PasswordHash) {
		return nil, "", ErrShopkeeperInvalidLogin
	}

	token, err := s.jwtUtil.GenerateToken(shop.ID, model.RoleShopkeeper)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return shop, token, nil
}

// ListShopkeepers returns the active shops shown as "nearest shops"
func (s *authService) ListShopkeepers(ctx context.Context) ([]model.Shopkeeper, error) {
	return s.shopkeeperRepo.ListActive(ctx, 20)
}

func (s *authService) GetShopkeeper(ctx context.Context, id int) (*model.Shopkeeper, error) {
	return s.shopkeeperRepo.FindByID(ctx, id)
}

// Refresh exchanges a valid token for a new one
func (s *authService) Refresh(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidCredentials
	}
	return s.jwtUtil.RefreshToken(token)
}
