package client

import (
	"context"
	"errors"
	"testing"

	"kisan_unnati/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNavigator struct {
	routes chan string
}

func newRecordingNavigator() *recordingNavigator {
	return &recordingNavigator{routes: make(chan string, 8)}
}

func (r *recordingNavigator) Navigate(route string) {
	r.routes <- route
}

func (r *recordingNavigator) last(t *testing.T) string {
	t.Helper()
	select {
	case route := <-r.routes:
		return route
	default:
		t.Fatal("no navigation happened")
		return ""
	}
}

func TestGate_UnauthenticatedSkipsLoad(t *testing.T) {
	store := NewCredentialStore(NewMemoryStorage())
	nav := newRecordingNavigator()
	gate := NewGate(store, nav)

	loaded := false
	err := gate.Enter(context.Background(), View{
		Name: "dashboard",
		Load: func(context.Context, string) error { loaded = true; return nil },
	})

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, loaded)
	assert.Equal(t, RouteLanding, nav.last(t))

	err = gate.Enter(context.Background(), View{Name: "profile", RedirectTo: RouteLogin})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Equal(t, RouteLogin, nav.last(t))
}

func TestGate_LoadsWithBearerToken(t *testing.T) {
	store := NewCredentialStore(NewMemoryStorage())
	store.Set(Session{Token: "T1", Role: model.RoleFarmer})
	gate := NewGate(store, newRecordingNavigator())

	var got string
	err := gate.Enter(context.Background(), View{
		Name: "dashboard",
		Load: func(_ context.Context, token string) error { got = token; return nil },
	})
	require.NoError(t, err)
	assert.Equal(t, "T1", got)

	loadErr := errors.New("backend down")
	err = gate.Enter(context.Background(), View{Load: func(context.Context, string) error { return loadErr }})
	assert.ErrorIs(t, err, loadErr)
}

func TestGate_RoleGating(t *testing.T) {
	store := NewCredentialStore(NewMemoryStorage())
	store.Set(Session{Token: "T1", Role: model.RoleFarmer})
	nav := newRecordingNavigator()
	gate := NewGate(store, nav)

	shopView := View{Name: "shop dashboard", Roles: []string{model.RoleShopkeeper}}
	assert.ErrorIs(t, gate.Enter(context.Background(), shopView), ErrForbiddenRole)
	assert.Equal(t, RouteLanding, nav.last(t))

	store.Set(Session{Token: "S1", Role: model.RoleShopkeeper})
	assert.NoError(t, gate.Enter(context.Background(), shopView))
}

func TestGate_AdminViewUsesAdminToken(t *testing.T) {
	store := NewCredentialStore(NewMemoryStorage())
	store.Set(Session{Token: "T1", Role: model.RoleAdmin})
	nav := newRecordingNavigator()
	gate := NewGate(store, nav)

	adminView := View{Name: "marketplace", Roles: []string{model.RoleAdmin}, TokenKey: KeyAdminToken}
	assert.ErrorIs(t, gate.Enter(context.Background(), adminView), ErrUnauthenticated)
	assert.Equal(t, RouteLanding, nav.last(t))

	store.SetAdminToken("A1")
	var got string
	adminView.Load = func(_ context.Context, token string) error { got = token; return nil }
	require.NoError(t, gate.Enter(context.Background(), adminView))
	assert.Equal(t, "A1", got)
}

func TestGate_EvaluatedOncePerEntry(t *testing.T) {
	store := NewCredentialStore(NewMemoryStorage())
	store.Set(Session{Token: "T1", Role: model.RoleFarmer})
	notifier := NewNotifier()
	nav := newRecordingNavigator()
	gate := NewGate(store, nav)

	require.NoError(t, gate.Enter(context.Background(), View{Name: "dashboard"}))

	// logging out elsewhere does not redirect an already entered view
	store.Clear()
	notifier.Notify()
	assert.Empty(t, nav.routes)
}
