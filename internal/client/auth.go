package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"kisan_unnati/internal/model"
)

// NavigationDelay separates a successful login from the navigation that
// follows it, so observers woken by the notifier see the new session first
const NavigationDelay = 500 * time.Millisecond

// ErrTokenMissing is a 2xx auth response that carried no token
var ErrTokenMissing = errors.New("login token missing")

// APIError is an auth failure with a message fit to show the user
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type localizedMessages struct {
	loginFailed    string
	registerFailed string
	network        string
}

var (
	hindiMessages = localizedMessages{
		loginFailed:    "लॉगिन विफल। कृपया फिर से प्रयास करें।",
		registerFailed: "पंजीकरण विफल। कृपया फिर से प्रयास करें।",
		network:        "सर्वर से कनेक्ट नहीं हो सका। कृपया बाद में प्रयास करें।",
	}
	englishMessages = localizedMessages{
		loginFailed:    "Login failed. Please try again.",
		registerFailed: "Registration failed. Please try again.",
		network:        "Unable to reach the server. Please try again later.",
	}
)

// messagesFor picks the language shown to each population: the shopkeeper
// app is in Hindi, the farmer app and admin panel in English
func messagesFor(role string) localizedMessages {
	if role == model.RoleShopkeeper {
		return hindiMessages
	}
	return englishMessages
}

// AuthPayload is the canonical auth response. Role is the role the
// server reports for the user, "" when the body carries none.
type AuthPayload struct {
	Token string
	Role  string
	User  User
}

type authEnvelope struct {
	Token      string          `json:"token"`
	User       json.RawMessage `json:"user"`
	ShopKeeper json.RawMessage `json:"shopKeeper"`
}

func (e authEnvelope) payload() (AuthPayload, bool) {
	if e.Token == "" {
		return AuthPayload{}, false
	}
	p := AuthPayload{Token: e.Token}
	raw := e.User
	if len(raw) == 0 || string(raw) == "null" {
		raw = e.ShopKeeper
	}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &p.User); err != nil {
			log.Printf("WARN: auth response user is malformed: %v", err)
		}
		var role struct {
			Role string `json:"role"`
		}
		if json.Unmarshal(raw, &role) == nil {
			p.Role = role.Role
		}
	}
	if p.User.Name == "" {
		p.User.Name = p.User.OwnerName
	}
	return p, true
}

// NormalizeAuthResponse accepts a flat {token, user} body or one nested
// under data, with shopKeeper accepted in place of user. It fails with
// ErrTokenMissing when neither shape yields a non-empty token.
func NormalizeAuthResponse(body []byte) (AuthPayload, error) {
	var flat struct {
		authEnvelope
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &flat); err != nil {
		return AuthPayload{}, fmt.Errorf("%w: %v", ErrTokenMissing, err)
	}
	if p, ok := flat.payload(); ok {
		return p, nil
	}

	if len(flat.Data) > 0 {
		var nested authEnvelope
		if err := json.Unmarshal(flat.Data, &nested); err == nil {
			if p, ok := nested.payload(); ok {
				return p, nil
			}
		}
	}
	return AuthPayload{}, ErrTokenMissing
}

type loginBody struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// loginRequest picks the endpoint and identifier field for role.
// Shopkeepers log in by phone, everyone else by email.
func loginRequest(role, identifier, password string) (string, loginBody, error) {
	switch role {
	case model.RoleShopkeeper:
		return "/api/auth/login-shopkeeper", loginBody{Phone: identifier, Password: password}, nil
	case model.RoleFarmer, model.RoleAdmin:
		return "/api/auth/login", loginBody{Email: identifier, Password: password}, nil
	default:
		return "", loginBody{}, fmt.Errorf("unsupported login role %q", role)
	}
}

func homeRoute(role string) string {
	switch role {
	case model.RoleShopkeeper:
		return RouteShopkeeperDashboard
	case model.RoleAdmin:
		return RouteAdmin
	default:
		return RouteLanding
	}
}

// Login authenticates as role. identifier is an email for farmers and
// admins and a phone number for shopkeepers. On any failure the stored
// session is left as it was.
func (c *Client) Login(ctx context.Context, role, identifier, password string) (*Session, error) {
	path, body, err := loginRequest(role, identifier, password)
	if err != nil {
		return nil, err
	}
	msgs := messagesFor(role)

	status, respBody, err := c.do(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, &APIError{Message: msgs.network, Err: err}
	}
	if !isSuccess(status) {
		msg := backendMessage(respBody)
		if msg == "" {
			msg = msgs.loginFailed
		}
		return nil, &APIError{StatusCode: status, Message: msg}
	}

	payload, err := NormalizeAuthResponse(respBody)
	if err != nil {
		return nil, err
	}
	session := c.establish(role, payload)
	return &session, nil
}

// establish stores a session, wakes observers and schedules navigation
func (c *Client) establish(role string, payload AuthPayload) Session {
	session := Session{Token: payload.Token, Role: role, User: payload.User}
	c.store.Set(session)
	if role == model.RoleAdmin {
		c.store.SetAdminToken(payload.Token)
	}
	if c.notifier != nil {
		c.notifier.Notify()
	}

	if c.nav != nil {
		route := homeRoute(role)
		c.pending.Add(1)
		time.AfterFunc(NavigationDelay, func() {
			defer c.pending.Done()
			c.nav.Navigate(route)
		})
	}
	return session
}

// WaitNavigation blocks until scheduled post-login navigation has run
func (c *Client) WaitNavigation() {
	c.pending.Wait()
}

// RegisterRequest is the farmer registration form
type RegisterRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Phone    string         `json:"phone"`
	Role     string         `json:"role,omitempty"`
	Location model.Location `json:"location"`
}

// Register creates an account. When the response carries a token the
// user is logged in as if by Login; otherwise the returned session is nil.
// The stored role is the one the server assigned, so an account promoted
// to admin on creation gets the admin session and adminToken.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	msgs := englishMessages
	status, respBody, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req)
	if err != nil {
		return nil, &APIError{Message: msgs.network, Err: err}
	}
	if !isSuccess(status) {
		msg := backendMessage(respBody)
		if msg == "" {
			msg = msgs.registerFailed
		}
		return nil, &APIError{StatusCode: status, Message: msg}
	}

	payload, err := NormalizeAuthResponse(respBody)
	if err != nil {
		return nil, nil
	}
	role := payload.Role
	if role == "" {
		role = req.Role
	}
	if role == "" {
		role = model.RoleFarmer
	}
	session := c.establish(role, payload)
	return &session, nil
}

// ShopkeeperRegistration is the shop registration form
type ShopkeeperRegistration struct {
	ShopName        string `json:"shopName"`
	OwnerName       string `json:"ownerName"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	State           string `json:"state,omitempty"`
	District        string `json:"district,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// RegisterShopkeeper registers a shop. Shopkeepers log in separately.
func (c *Client) RegisterShopkeeper(ctx context.Context, req ShopkeeperRegistration) error {
	msgs := hindiMessages
	status, respBody, err := c.do(ctx, http.MethodPost, "/api/auth/register-shopkeeper", "", req)
	if err != nil {
		return &APIError{Message: msgs.network, Err: err}
	}
	if !isSuccess(status) {
		msg := backendMessage(respBody)
		if msg == "" {
			msg = msgs.registerFailed
		}
		return &APIError{StatusCode: status, Message: msg}
	}
	return nil
}

// Logout tells the backend, then clears the session whatever it answered
func (c *Client) Logout(ctx context.Context) {
	if token := c.store.Token(); token != "" {
		status, _, err := c.do(ctx, http.MethodPost, "/api/auth/logout", token, nil)
		switch {
		case err != nil:
			log.Printf("WARN: logout request failed: %v", err)
		case !isSuccess(status):
			log.Printf("WARN: logout returned status %d", status)
		}
	}
	c.store.Clear()
	if c.notifier != nil {
		c.notifier.Notify()
	}
	if c.nav != nil {
		c.nav.Navigate(RouteLanding)
	}
}
