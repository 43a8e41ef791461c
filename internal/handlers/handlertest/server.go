// Package handlertest runs the full API stack on an in-memory database for
// tests of the server and of clients that talk to it.
package handlertest

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/trackjob/internal/auth"
	"github.com/justsurfingit/trackjob/internal/database/dbtest"
	"github.com/justsurfingit/trackjob/internal/handlers"
	"github.com/justsurfingit/trackjob/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Mailer records every email instead of sending it.
type Mailer struct {
	mu   sync.Mutex
	Sent []services.OutgoingEmail
}

func (m *Mailer) Send(_ context.Context, email services.OutgoingEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, email)
	return nil
}

func (m *Mailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

type Server struct {
	*httptest.Server

	DB     *gorm.DB
	Tokens *auth.TokenIssuer
	Mailer *Mailer
}

// URL of the /api group, the base URL a client should be given.
func (s *Server) APIURL() string {
	return s.Server.URL + "/api"
}

// New starts a server that is closed when t finishes. No LLM is configured,
// so extraction answers 503.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	mailer := &Mailer{}

	jobs := services.NewJobService(db)
	settings := services.NewSettingsService(db)
	followUps := services.NewFollowUpService(db, jobs, settings, mailer, zap.NewNop())

	router := handlers.NewRouter(handlers.Dependencies{
		Tokens:    tokens,
		Auth:      handlers.NewAuthHandler(services.NewUserService(db, tokens)),
		Jobs:      handlers.NewJobHandler(nil, jobs),
		FollowUps: handlers.NewFollowUpHandler(followUps),
		Settings:  handlers.NewSettingsHandler(settings),
		Logger:    zap.NewNop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &Server{Server: srv, DB: db, Tokens: tokens, Mailer: mailer}
}
