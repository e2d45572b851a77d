package client

import (
	"context"
	"errors"
	"slices"
)

// Routes the client navigates between
const (
	RouteLanding             = "/"
	RouteLogin               = "/login"
	RouteShopkeeperDashboard = "/shopkeeper/dashboard"
	RouteAdmin               = "/admin"
)

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrForbiddenRole   = errors.New("this view is not available for your role")
)

// Navigator moves the user to another route
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// View is a protected screen
type View struct {
	Name string
	// Roles admitted; empty admits any logged-in role
	Roles []string
	// TokenKey is the store key holding the bearer token, KeyToken when empty
	TokenKey string
	// RedirectTo is where unauthenticated users are sent, RouteLanding when empty
	RedirectTo string
	// Load fetches the view's data with the bearer token
	Load func(ctx context.Context, token string) error
}

// Gate checks the credential store when a view is entered. The check
// happens once; a later logout does not reach an already entered view.
type Gate struct {
	store *CredentialStore
	nav   Navigator
}

func NewGate(store *CredentialStore, nav Navigator) *Gate {
	return &Gate{store: store, nav: nav}
}

func (g *Gate) navigate(route string) {
	if g.nav != nil {
		g.nav.Navigate(route)
	}
}

// Enter redirects and returns ErrUnauthenticated or ErrForbiddenRole
// without calling Load when the session does not admit the view.
// Otherwise it returns whatever Load returns.
func (g *Gate) Enter(ctx context.Context, v View) error {
	tokenKey := v.TokenKey
	if tokenKey == "" {
		tokenKey = KeyToken
	}
	token, _ := g.store.Get(tokenKey)
	if token == "" {
		redirect := v.RedirectTo
		if redirect == "" {
			redirect = RouteLanding
		}
		g.navigate(redirect)
		return ErrUnauthenticated
	}

	if len(v.Roles) > 0 && !slices.Contains(v.Roles, g.store.Role()) {
		g.navigate(RouteLanding)
		return ErrForbiddenRole
	}

	if v.Load == nil {
		return nil
	}
	return v.Load(ctx, token)
}
