// Package session owns the token lifecycle: silent validation on start,
// sign-in, optimistic sign-out and profile updates. It is an explicit,
// injected service — consumers hold a *Store and subscribe to changes
// instead of reading ambient globals.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ichaoui56/sonic-courier/internal/entities"
	"github.com/ichaoui56/sonic-courier/internal/gateway"
)

type Status string

const (
	// StatusLoading is the zero state before the first Refresh completes.
	StatusLoading   Status = "loading"
	StatusSignedOut Status = "signedOut"
	StatusSignedIn  Status = "signedIn"
)

// AuthAPI is the slice of the gateway the store needs.
type AuthAPI interface {
	SignIn(ctx context.Context, email, password string) (entities.Session, error)
	Me(ctx context.Context, token string) (entities.User, error)
	SignOut(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, token string, update gateway.ProfileUpdate) (entities.User, error)
}

type Store struct {
	logger   *slog.Logger
	api      AuthAPI
	keychain *Keychain

	mu     sync.RWMutex
	status Status
	token  string
	user   entities.User
	subs   []func(Status)
}

func NewStore(logger *slog.Logger, api AuthAPI, keychain *Keychain) *Store {
	return &Store{
		logger:   logger.With(slog.String("component", "session")),
		api:      api,
		keychain: keychain,
		status:   StatusLoading,
	}
}

// Refresh re-validates the persisted token against the server. Any failure —
// missing token, network, rejection — lands in signedOut with the keychain
// cleared; silent validation never surfaces an error to the user.
func (s *Store) Refresh(ctx context.Context) {
	stored, err := s.keychain.Token()
	if err != nil {
		s.logger.Warn("failed to read keychain", slog.Any("error", err))
	}
	if stored == "" {
		s.setSignedOut()
		return
	}

	user, err := s.api.Me(ctx, stored)
	if err != nil {
		s.logger.Info("stored token rejected, signing out", slog.Any("error", err))
		if err := s.keychain.Clear(); err != nil {
			s.logger.Warn("failed to clear keychain", slog.Any("error", err))
		}
		s.setSignedOut()
		return
	}

	s.setSignedIn(stored, user)
}

// SignIn authenticates and persists the returned token. On failure the store
// stays signed out and nothing is persisted.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	sess, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		s.setSignedOut()
		return fmt.Errorf("sign in: %w", err)
	}

	if err := s.keychain.SetToken(sess.Token); err != nil {
		return err
	}
	s.setSignedIn(sess.Token, sess.User)
	return nil
}

// SignOut clears local state first, then notifies the server best-effort.
// A failed server logout is logged and swallowed; it is never retried.
func (s *Store) SignOut(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if err := s.keychain.Clear(); err != nil {
		s.logger.Warn("failed to clear keychain", slog.Any("error", err))
	}
	s.setSignedOut()

	if token == "" {
		return
	}
	if err := s.api.SignOut(ctx, token); err != nil {
		s.logger.Debug("server logout failed", slog.Any("error", err))
	}
}

// UpdateProfile replaces the profile server-side, applies the returned user
// locally and re-validates through the refresh path.
func (s *Store) UpdateProfile(ctx context.Context, update gateway.ProfileUpdate) error {
	token := s.Token()
	if token == "" {
		return entities.ErrNotAuthenticated
	}

	user, err := s.api.UpdateProfile(ctx, token, update)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.Refresh(ctx)
	return nil
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// OnChange registers a callback invoked after every status change.
func (s *Store) OnChange(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) setSignedIn(token string, user entities.User) {
	s.transition(StatusSignedIn, token, user)
}

func (s *Store) setSignedOut() {
	s.transition(StatusSignedOut, "", entities.User{})
}

func (s *Store) transition(status Status, token string, user entities.User) {
	s.mu.Lock()
	s.status = status
	s.token = token
	s.user = user
	subs := make([]func(Status), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(status)
	}
}
