// Package session remembers who is logged in between CLI invocations.
//
// A login is kept in one of two tiers. The durable tier survives across
// terminals and reboots ("remember me"); the session tier lasts only as long
// as the shell that ran the login. Logging out clears both.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/justsurfingit/trackjob/internal/api"
	"github.com/justsurfingit/trackjob/internal/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Profile is the part of the user kept next to the token.
type Profile struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ProfileFromUser(u *models.User) *Profile {
	return &Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Store struct {
	durable Storage
	session Storage
	logger  *zap.Logger

	mu      sync.RWMutex
	token   string
	profile *Profile
}

// New restores any saved login, preferring the durable tier.
func New(durable, sessionTier Storage, logger *zap.Logger) *Store {
	s := &Store{durable: durable, session: sessionTier, logger: logger.Named("session")}
	s.token, s.profile = s.load()
	return s
}

func (s *Store) load() (string, *Profile) {
	for _, tier := range s.tiers() {
		token, ok, err := tier.Get(tokenKey)
		if err != nil {
			s.logger.Warn("read session", zap.Error(err))
			continue
		}
		if !ok || token == "" {
			continue
		}
		return token, s.loadProfile(tier)
	}
	return "", nil
}

func (s *Store) loadProfile(tier Storage) *Profile {
	raw, ok, err := tier.Get(userKey)
	if err != nil || !ok {
		return nil
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("discarding unreadable profile", zap.Error(err))
		return nil
	}
	return &p
}

func (s *Store) tiers() []Storage {
	return []Storage{s.durable, s.session}
}

// Login saves token and profile. With remember the durable tier is used,
// otherwise only the session tier. The other tier is cleared.
func (s *Store) Login(token string, profile *Profile, remember bool) error {
	if token == "" {
		return errors.New("empty token")
	}
	target, other := s.session, s.durable
	if remember {
		target, other = s.durable, s.session
	}

	if err := clearTier(other); err != nil {
		return err
	}
	if err := target.Set(tokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if profile != nil {
		b, err := json.Marshal(profile)
		if err != nil {
			return err
		}
		if err := target.Set(userKey, string(b)); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	} else if err := target.Remove(userKey); err != nil {
		return err
	}

	s.mu.Lock()
	s.token, s.profile = token, profile
	s.mu.Unlock()
	return nil
}

// Logout forgets the login in both tiers.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.token, s.profile = "", nil
	s.mu.Unlock()

	return errors.Join(clearTier(s.durable), clearTier(s.session))
}

func clearTier(tier Storage) error {
	return errors.Join(tier.Remove(tokenKey), tier.Remove(userKey))
}

// IsAuthenticated looks for a token in the durable tier, then the session
// tier.
func (s *Store) IsAuthenticated() bool {
	token, _ := s.load()
	return token != ""
}

func (s *Store) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// SetProfile replaces the saved profile in whichever tier holds the token.
func (s *Store) SetProfile(profile *Profile) error {
	for _, tier := range s.tiers() {
		if token, ok, err := tier.Get(tokenKey); err != nil || !ok || token == "" {
			continue
		}
		b, err := json.Marshal(profile)
		if err != nil {
			return err
		}
		if err := tier.Set(userKey, string(b)); err != nil {
			return err
		}
		s.mu.Lock()
		s.profile = profile
		s.mu.Unlock()
		return nil
	}
	return api.ErrNoToken
}

// Token makes the store an oauth2.TokenSource for the API client.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return nil, api.ErrNoToken
	}
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}
