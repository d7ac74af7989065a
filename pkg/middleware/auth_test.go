package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviehub/internal/data/entity"
	"moviehub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSessionRepo struct {
	sessions map[string]*entity.Session
	err      error
}

func (s *stubSessionRepo) Create(ctx context.Context, session *entity.Session) error { return nil }

func (s *stubSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[token], nil
}

func (s *stubSessionRepo) Revoke(ctx context.Context, token string) error              { return nil }
func (s *stubSessionRepo) RevokeAllUserSessions(ctx context.Context, id uuid.UUID) error { return nil }
func (s *stubSessionRepo) CleanExpiredSessions(ctx context.Context) error              { return nil }

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}

func validSession(userID uuid.UUID, token string) map[string]*entity.Session {
	tokenUUID := uuid.MustParse(token)
	return map[string]*entity.Session{
		token: {
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			UserID:     userID,
			Token:      tokenUUID,
			ExpiresAt:  time.Now().Add(time.Hour),
		},
	}
}

func usersWith(userID uuid.UUID, role entity.UserRole) *stubUserRepo {
	return &stubUserRepo{users: map[uuid.UUID]*entity.User{
		userID: {
			Base:     entity.Base{ID: userID},
			Username: "someone",
			Role:     role,
			IsActive: true,
		},
	}}
}

func noUsers() *stubUserRepo {
	return &stubUserRepo{users: map[uuid.UUID]*entity.User{}}
}

// echoUser replies with the user ID found on the context, or "anonymous"
func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			fmt.Fprint(w, userID.String())
			return
		}
		fmt.Fprint(w, "anonymous")
	})
}

// echoRole replies with the role found on the context
func echoRole() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := utils.GetRoleFromContext(r.Context())
		fmt.Fprint(w, role)
	})
}

func TestAuthSessionMissingToken(t *testing.T) {
	repo := &stubSessionRepo{sessions: map[string]*entity.Session{}}
	handler := AuthSession(repo, noUsers(), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSessionBearerToken(t *testing.T) {
	userID := uuid.New()
	token := uuid.New().String()
	repo := &stubSessionRepo{sessions: validSession(userID, token)}
	handler := AuthSession(repo, usersWith(userID, entity.RoleCustomer), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestAuthSessionCookieToken(t *testing.T) {
	userID := uuid.New()
	token := uuid.New().String()
	repo := &stubSessionRepo{sessions: validSession(userID, token)}
	handler := AuthSession(repo, usersWith(userID, entity.RoleCustomer), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestAuthSessionUnknownToken(t *testing.T) {
	repo := &stubSessionRepo{sessions: map[string]*entity.Session{}}
	handler := AuthSession(repo, noUsers(), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+uuid.New().String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSessionMalformedHeader(t *testing.T) {
	repo := &stubSessionRepo{sessions: map[string]*entity.Session{}}
	handler := AuthSession(repo, noUsers(), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSessionCarriesUserRole(t *testing.T) {
	adminID := uuid.New()
	token := uuid.New().String()
	repo := &stubSessionRepo{sessions: validSession(adminID, token)}
	handler := AuthSession(repo, usersWith(adminID, entity.RoleAdmin), zap.NewNop())(echoRole())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String(), "context must carry the user's real role")
}

func TestAuthSessionDeletedUser(t *testing.T) {
	userID := uuid.New()
	token := uuid.New().String()
	repo := &stubSessionRepo{sessions: validSession(userID, token)}
	handler := AuthSession(repo, noUsers(), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a session for a deleted user is invalid")
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	repo := &stubSessionRepo{sessions: map[string]*entity.Session{}}
	handler := OptionalAuth(repo, noUsers(), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestOptionalAuthLoadsSessionUser(t *testing.T) {
	userID := uuid.New()
	token := uuid.New().String()
	repo := &stubSessionRepo{sessions: validSession(userID, token)}
	handler := OptionalAuth(repo, usersWith(userID, entity.RoleCustomer), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestOptionalAuthCarriesUserRole(t *testing.T) {
	adminID := uuid.New()
	token := uuid.New().String()
	repo := &stubSessionRepo{sessions: validSession(adminID, token)}
	handler := OptionalAuth(repo, usersWith(adminID, entity.RoleAdmin), zap.NewNop())(echoRole())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}

func TestOptionalAuthStaleTokenStaysAnonymous(t *testing.T) {
	repo := &stubSessionRepo{sessions: map[string]*entity.Session{}}
	handler := OptionalAuth(repo, noUsers(), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: uuid.New().String()})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestAdminAllowsAdmin(t *testing.T) {
	adminID := uuid.New()
	handler := Admin(usersWith(adminID, entity.RoleAdmin), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodPost, "/api/movies", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), adminID, "admin"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRejectsCustomer(t *testing.T) {
	customerID := uuid.New()
	handler := Admin(usersWith(customerID, entity.RoleCustomer), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodPost, "/api/movies", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), customerID, "customer"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRequiresAuthentication(t *testing.T) {
	handler := Admin(noUsers(), zap.NewNop())(echoUser())

	req := httptest.NewRequest(http.MethodPost, "/api/movies", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
