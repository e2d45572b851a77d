package client

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Notifier is a payload-free broadcast of credential changes. Observers
// re-read whatever they need from the CredentialStore when woken.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	observers []observer
}

type observer struct {
	id int
	fn func()
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns a function that removes it
func (n *Notifier) Subscribe(fn func()) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.observers = append(n.observers, observer{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			for i, o := range n.observers {
				if o.id == id {
					n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Notify wakes every observer subscribed at the time of the call, in
// subscription order. Observers may subscribe, unsubscribe or notify from
// inside the callback.
func (n *Notifier) Notify() {
	n.mu.Lock()
	snapshot := make([]observer, len(n.observers))
	copy(snapshot, n.observers)
	n.mu.Unlock()

	for _, o := range snapshot {
		o.fn()
	}
}

// WatchFile notifies whenever another process changes the token stored in
// storage's file. The watch runs until ctx is done; setup errors are
// returned before it starts.
func (n *Notifier) WatchFile(ctx context.Context, storage *FileStorage) error {
	// nothing has been written yet on a fresh install
	if err := storage.EnsureDir(); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	// the store is replaced by rename, so watch the directory
	if err := watcher.Add(filepath.Dir(storage.Path())); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", storage.Path(), err)
	}

	lastToken, _ := storage.Get(KeyToken)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != storage.Path() {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				token, _ := storage.Get(KeyToken)
				if token == lastToken {
					continue
				}
				lastToken = token
				n.Notify()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("WARN: store watch error: %v", err)
			}
		}
	}()
	return nil
}

// AuthState is the header's view of the session: whether someone is
// logged in and as which role.
type AuthState struct {
	store *CredentialStore

	mu            sync.RWMutex
	authenticated bool
	role          string
	name          string
}

// NewAuthState evaluates the store once and re-evaluates on every
// notification until unsubscribe is called
func NewAuthState(store *CredentialStore, notifier *Notifier) (*AuthState, func()) {
	a := &AuthState{store: store}
	a.refresh()
	return a, notifier.Subscribe(a.refresh)
}

func (a *AuthState) refresh() {
	session, ok := a.store.Session()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authenticated = ok
	a.role = session.Role
	a.name = session.User.Name
}

func (a *AuthState) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authenticated
}

func (a *AuthState) Role() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.role
}

func (a *AuthState) Name() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.name
}

// OnboardingGate decides whether the first-run onboarding should show:
// only for visitors that neither finished onboarding nor logged in.
type OnboardingGate struct {
	prefs *Preferences

	mu   sync.RWMutex
	show bool
}

func NewOnboardingGate(prefs *Preferences, notifier *Notifier) (*OnboardingGate, func()) {
	g := &OnboardingGate{prefs: prefs}
	g.refresh()
	return g, notifier.Subscribe(g.refresh)
}

func (g *OnboardingGate) refresh() {
	show := !g.prefs.Onboarded() && !g.prefs.store.IsAuthenticated()
	g.mu.Lock()
	g.show = show
	g.mu.Unlock()
}

// ShowOnboarding reports the last evaluated decision
func (g *OnboardingGate) ShowOnboarding() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.show
}
