package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/NiteshMarwaha/vibetrader/internal/middleware"
	"github.com/NiteshMarwaha/vibetrader/internal/model"
	"github.com/NiteshMarwaha/vibetrader/internal/repository"
	"github.com/NiteshMarwaha/vibetrader/internal/service"
)

// In-memory stores backing full request round trips.

type memUserStore struct {
	users map[string]*model.User
	creds map[string]*model.Credential
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users: make(map[string]*model.User),
		creds: make(map[string]*model.Credential),
	}
}

func (s *memUserStore) CreateWithCredential(ctx context.Context, user *model.User, cred *model.Credential) error {
	key := cred.Kind + "\x00" + cred.Identifier
	if _, exists := s.creds[key]; exists {
		return repository.ErrDuplicateCredential
	}
	u := *user
	c := *cred
	s.users[u.ID] = &u
	s.creds[key] = &c
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *memUserStore) GetCredential(ctx context.Context, kind, identifier string) (*model.Credential, error) {
	cred, ok := s.creds[kind+"\x00"+identifier]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}
	c := *cred
	return &c, nil
}

type memTradeStore struct {
	trades []model.Trade
}

func (s *memTradeStore) Create(ctx context.Context, trade *model.Trade) error {
	s.trades = append(s.trades, *trade)
	return nil
}

func (s *memTradeStore) ListByUser(ctx context.Context, userID string) ([]model.Trade, error) {
	var owned []model.Trade
	for _, t := range s.trades {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	for i := 0; i < len(owned); i++ {
		for j := i + 1; j < len(owned); j++ {
			if owned[j].TradeDate.After(owned[i].TradeDate) {
				owned[i], owned[j] = owned[j], owned[i]
			}
		}
	}
	return owned, nil
}

// newTestRouter wires the handlers the way cmd/api does, minus rate limiting
// so tests can hammer the auth routes.
func newTestRouter() chi.Router {
	authService := service.NewAuthService(newMemUserStore(), "test-secret", 7*24*time.Hour)
	tradeService := service.NewTradeService(&memTradeStore{})

	authHandler := NewAuthHandler(authService, 7*24*time.Hour, false)
	tradeHandler := NewTradeHandler(tradeService)

	r := chi.NewRouter()
	r.Post("/auth/signup", authHandler.HandleSignup)
	r.Post("/auth/login", authHandler.HandleLogin)
	r.Post("/auth/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(authService))
		r.Get("/auth/me", authHandler.HandleMe)
		r.Get("/dashboard", authHandler.HandleDashboard)
		r.Get("/trades", tradeHandler.HandleListTrades)
		r.Post("/trades", tradeHandler.HandleCreateTrade)
	})

	return r
}

func doJSON(t *testing.T, router chi.Router, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns its session token.
func signup(t *testing.T, router chi.Router, email string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/auth/signup",
		`{"email":"`+email+`","password":"secret123"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d %s", rec.Code, rec.Body.String())
	}
	return sessionToken(t, rec)
}

// sessionToken pulls the session cookie from a signup/login response.
func sessionToken(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	res := rec.Result()
	for _, c := range res.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}
