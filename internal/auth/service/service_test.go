package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mediguide/internal/auth/repository"
	"mediguide/internal/events"
	"mediguide/platform/apperr"
	"mediguide/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testAccessSecret = "access-secret"

type testConfig struct{}

func (testConfig) GetJWTAccessSecret() string        { return testAccessSecret }
func (testConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (testConfig) GetRefreshTokenTTL() time.Duration { return time.Hour }

type storedToken struct {
	accountID uuid.UUID
	expiresAt time.Time
	revoked   bool
}

type fakeRepo struct {
	mu       sync.Mutex
	accounts map[string]repository.Account
	tokens   map[string]*storedToken
	failGet  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accounts: map[string]repository.Account{}, tokens: map[string]*storedToken{}}
}

func (r *fakeRepo) CreateAccount(_ context.Context, p repository.CreateAccountParams) (repository.Account, uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(p.Email)
	if _, ok := r.accounts[key]; ok {
		return repository.Account{}, uuid.Nil, repository.ErrDuplicateEmail
	}
	account := repository.Account{
		ID:           uuid.New(),
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		PasswordHash: p.PasswordHash,
		CreatedAt:    time.Now(),
	}
	r.accounts[key] = account
	return account, uuid.New(), nil
}

func (r *fakeRepo) GetAccountByEmail(_ context.Context, email string) (repository.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet != nil {
		return repository.Account{}, r.failGet
	}
	account, ok := r.accounts[strings.ToLower(email)]
	if !ok {
		return repository.Account{}, repository.ErrNotFound
	}
	return account, nil
}

func (r *fakeRepo) GetAccountByID(_ context.Context, id uuid.UUID) (repository.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return repository.Account{}, repository.ErrNotFound
}

func (r *fakeRepo) CreateRefreshToken(_ context.Context, id uuid.UUID, hash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[hash] = &storedToken{accountID: id, expiresAt: expiresAt}
	return nil
}

func (r *fakeRepo) ConsumeRefreshToken(_ context.Context, hash string) (uuid.UUID, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tok, ok := r.tokens[hash]
	if !ok || tok.revoked {
		return uuid.Nil, time.Time{}, repository.ErrNotFound
	}
	tok.revoked = true
	return tok.accountID, tok.expiresAt, nil
}

func (r *fakeRepo) RevokeRefreshToken(_ context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tok, ok := r.tokens[hash]; ok {
		tok.revoked = true
	}
	return nil
}

type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func newService() (*Service, *fakeRepo, *recordingBus) {
	repo := newFakeRepo()
	bus := &recordingBus{}
	return New(repo, testConfig{}, bus, logger.Discard()), repo, bus
}

func register(t *testing.T, svc *Service) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "City Care",
		Email:    "desk@citycare.in",
		Phone:    "98765 43210",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestRegisterNormalizesPhoneAndPublishes(t *testing.T) {
	svc, repo, bus := newService()
	register(t, svc)

	account := repo.accounts["desk@citycare.in"]
	if account.Phone != "+919876543210" {
		t.Fatalf("expected E.164 phone, got %q", account.Phone)
	}
	if account.PasswordHash == "password123" {
		t.Fatal("password must be hashed")
	}
	if len(bus.published) != 1 || bus.published[0].EventName() != "auth.hospital.registered" {
		t.Fatalf("expected registration event, got %+v", bus.published)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Other", Email: "DESK@citycare.in", Password: "password123"})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Message != "Email already registered!" {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestLoginIssuesHospitalAccessToken(t *testing.T) {
	svc, repo, _ := newService()
	register(t, svc)

	tokens, err := svc.Login(context.Background(), "desk@citycare.in", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	parsed, err := jwt.Parse(tokens.AccessToken, func(*jwt.Token) (any, error) { return []byte(testAccessSecret), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("invalid access token: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "access" || claims["sub"] != repo.accounts["desk@citycare.in"].ID.String() {
		t.Fatalf("unexpected claims %+v", claims)
	}
	roles, _ := claims["roles"].([]any)
	if len(roles) != 1 || roles[0] != "hospital" {
		t.Fatalf("expected hospital role, got %+v", claims["roles"])
	}
	if tokens.RefreshToken == "" || len(repo.tokens) != 1 {
		t.Fatal("expected a stored refresh token")
	}
	for hash := range repo.tokens {
		if hash == tokens.RefreshToken {
			t.Fatal("refresh token must be stored hashed")
		}
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc)

	for _, tc := range []struct{ email, password string }{
		{"desk@citycare.in", "wrong"},
		{"nobody@citycare.in", "password123"},
	} {
		_, err := svc.Login(context.Background(), tc.email, tc.password)
		if apperr.GetKind(err) != apperr.KindUnauthorized {
			t.Fatalf("expected unauthorized for %s, got %v", tc.email, err)
		}
	}
}

func TestLoginRepositoryFailureIsInternal(t *testing.T) {
	svc, repo, _ := newService()
	repo.failGet = errors.New("connection reset")

	_, err := svc.Login(context.Background(), "desk@citycare.in", "password123")
	if apperr.GetKind(err) != apperr.KindInternal {
		t.Fatalf("expected internal, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc)
	first, _ := svc.Login(context.Background(), "desk@citycare.in", "password123")

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("expected a new refresh token")
	}

	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected reuse of rotated token to fail, got %v", err)
	}
}

func TestConcurrentRefreshRotatesOnce(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc)
	tokens, _ := svc.Login(context.Background(), "desk@citycare.in", "password123")

	const attempts = 8
	var wg sync.WaitGroup
	var succeeded atomic.Int32
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Refresh(context.Background(), tokens.RefreshToken); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := succeeded.Load(); got != 1 {
		t.Fatalf("expected exactly one refresh to succeed, got %d", got)
	}
}

func TestRefreshExpiredToken(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc)
	tokens, _ := svc.Login(context.Background(), "desk@citycare.in", "password123")

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	if apperr.GetKind(err) != apperr.KindUnauthorized {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestLogoutRevokes(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc)
	tokens, _ := svc.Login(context.Background(), "desk@citycare.in", "password123")

	if err := svc.Logout(context.Background(), tokens.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), tokens.RefreshToken); err == nil {
		t.Fatal("expected revoked token to be rejected")
	}
}

func TestGetAccount(t *testing.T) {
	svc, repo, _ := newService()
	register(t, svc)

	summary, err := svc.GetAccount(context.Background(), repo.accounts["desk@citycare.in"].ID)
	if err != nil || summary.Name != "City Care" {
		t.Fatalf("unexpected summary %+v, %v", summary, err)
	}
	if _, err := svc.GetAccount(context.Background(), uuid.New()); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
