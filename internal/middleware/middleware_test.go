package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/infra/repository"
	"github.com/BruksfildServices01/barber-sales/internal/models"
	"github.com/BruksfildServices01/barber-sales/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthAndPasswordGate(t *testing.T) {
	db := testutil.NewDB(t)
	u := &models.User{Username: "kojo", PasswordHash: "x", Role: models.RoleBarber, RequiresPasswordChange: true}
	testutil.MustCreate(t, db, u)

	jwter := auth.NewJWTer("secret", "barber-sales", time.Hour)
	revocations := auth.NewMemoryRevocations()

	r := gin.New()
	authed := r.Group("/", Auth(jwter, revocations, repository.NewAccountGormRepository(db), zap.NewNop()))
	authed.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, IdentityFrom(c).Username)
	})
	authed.GET("/gated", RequirePasswordChanged(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, claims, err := jwter.Issue(u.ID, u.Role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	do := func(path, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do("/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no header: %d", w.Code)
	}
	if w := do("/me", "Bearer garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", w.Code)
	}
	if w := do("/me", "Bearer "+token); w.Code != http.StatusOK || w.Body.String() != "kojo" {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
	if w := do("/gated", "Bearer "+token); w.Code != http.StatusForbidden {
		t.Fatalf("gate: %d", w.Code)
	}

	db.Model(&models.User{}).Where("id = ?", u.ID).Update("requires_password_change", false)
	if w := do("/gated", "Bearer "+token); w.Code != http.StatusOK {
		t.Fatalf("gate after change: %d", w.Code)
	}

	_ = revocations.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time)
	if w := do("/me", "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked: %d", w.Code)
	}
}

func TestRateLimiterPerIP(t *testing.T) {
	l := NewIPRateLimiter(0.001, 2)

	if !l.Allow("1.1.1.1") || !l.Allow("1.1.1.1") {
		t.Fatal("burst not honoured")
	}
	if l.Allow("1.1.1.1") {
		t.Fatal("third call allowed")
	}
	if !l.Allow("2.2.2.2") {
		t.Fatal("other ip throttled")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc" {
		t.Fatalf("request id = %q", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Fatalf("generated id = %q", w.Header().Get("X-Request-ID"))
	}
}
