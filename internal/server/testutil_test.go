package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/silvamenu/momoney/internal/app"
	"github.com/silvamenu/momoney/internal/common"
	"github.com/silvamenu/momoney/internal/interfaces"
	"github.com/silvamenu/momoney/internal/models"
	"github.com/silvamenu/momoney/internal/services/assistant"
	"github.com/silvamenu/momoney/internal/services/portfolio"
	"github.com/silvamenu/momoney/internal/services/quote"
)

// --- In-memory storage ---

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*models.User{}}
}

func (s *memUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
	return nil
}

func (s *memUserStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user not found: %s", userID)
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found: %s", email)
}

type memFinanceStore struct {
	mu           sync.Mutex
	transactions []models.Transaction
	goals        []models.Goal
	investments  []models.Investment
}

func (s *memFinanceStore) AddTransaction(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, *tx)
	return nil
}

func (s *memFinanceStore) ListTransactionsSince(_ context.Context, userID string, since time.Time) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID && !tx.Date.Before(since) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *memFinanceStore) AddGoal(_ context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = append(s.goals, *goal)
	return nil
}

func (s *memFinanceStore) ListGoalsByStatus(_ context.Context, userID, status string) ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Goal
	for _, g := range s.goals {
		if g.UserID == userID && g.Status == status {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *memFinanceStore) AddInvestment(_ context.Context, inv *models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments = append(s.investments, *inv)
	return nil
}

func (s *memFinanceStore) ListInvestments(_ context.Context, userID string) ([]models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Investment
	for _, inv := range s.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type memStorage struct {
	users   *memUserStore
	finance *memFinanceStore
}

func newMemStorage() *memStorage {
	return &memStorage{users: newMemUserStore(), finance: &memFinanceStore{}}
}

func (s *memStorage) UserStore() interfaces.UserStore       { return s.users }
func (s *memStorage) FinanceStore() interfaces.FinanceStore { return s.finance }
func (s *memStorage) Close() error                          { return nil }

// --- Mock clients ---

type stubQuoteProvider struct {
	quotes map[string]*models.Quote
	errs   map[string]error
}

func (p *stubQuoteProvider) GetGlobalQuote(_ context.Context, symbol string) (*models.Quote, error) {
	if err, ok := p.errs[symbol]; ok {
		return nil, err
	}
	if q, ok := p.quotes[symbol]; ok {
		return q, nil
	}
	return nil, fmt.Errorf("no stub quote for %s", symbol)
}

type stubCompletion struct {
	answer string
	err    error
	calls  int
}

func (c *stubCompletion) GenerateAnswer(_ context.Context, _, _ string) (string, error) {
	c.calls++
	return c.answer, c.err
}

func (c *stubCompletion) Model() string { return "gemini-2.0-flash" }

// --- Harness ---

type testHarness struct {
	server     *Server
	storage    *memStorage
	provider   *stubQuoteProvider
	completion *stubCompletion
	config     *common.Config
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	logger := common.NewSilentLogger()
	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret-key"

	storage := newMemStorage()
	provider := &stubQuoteProvider{quotes: map[string]*models.Quote{}, errs: map[string]error{}}
	completion := &stubCompletion{answer: "Tudo certo com suas finanças."}

	quoteService := quote.NewService(provider, quote.NewCache(5*time.Minute), logger,
		quote.WithFetchInterval(0))

	a := &app.App{
		Config:           config,
		Logger:           logger,
		Storage:          storage,
		QuoteService:     quoteService,
		PortfolioService: portfolio.NewService(storage, quoteService, logger),
		AssistantService: assistant.NewService(storage, completion, logger),
		StartupTime:      time.Now(),
	}

	return &testHarness{
		server:     NewServer(a),
		storage:    storage,
		provider:   provider,
		completion: completion,
		config:     config,
	}
}

// seedUser creates a user directly in storage and returns a valid token.
func (h *testHarness) seedUser(t *testing.T, userID, email, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	user := &models.User{
		UserID:       userID,
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}
	if err := h.storage.users.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	token, err := signJWT(user, &h.config.Auth)
	if err != nil {
		t.Fatalf("signJWT failed: %v", err)
	}
	return token
}

// do runs a request through the full middleware stack.
func (h *testHarness) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	return resp.Error
}

var _ interfaces.StorageManager = (*memStorage)(nil)
var _ interfaces.QuoteProvider = (*stubQuoteProvider)(nil)
var _ interfaces.CompletionClient = (*stubCompletion)(nil)
