package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/authz"
	"github.com/BruksfildServices01/barber-sales/internal/domain"
	account "github.com/BruksfildServices01/barber-sales/internal/domain/account"
	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

const (
	ContextIdentity = "identity"
	ContextClaims   = "claims"
)

// Auth authenticates the bearer token, rejects revoked tokens and reloads
// the user so role, barber link and the password flag are always current.
func Auth(
	jwter *auth.JWTer,
	revocations auth.RevocationStore,
	users account.Repository,
	log *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Login required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Login required.")
			c.Abort()
			return
		}

		claims, err := jwter.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Session expired or invalid.")
			c.Abort()
			return
		}

		if revocations != nil && claims.ID != "" {
			revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				httperr.Respond(c, log, err)
				return
			}
			if revoked {
				httperr.Unauthorized(c, "invalid_token", "Session expired or invalid.")
				c.Abort()
				return
			}
		}

		u, err := users.GetByID(c.Request.Context(), claims.UID)
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Unauthorized(c, "invalid_token", "Session expired or invalid.")
			c.Abort()
			return
		}
		if err != nil {
			httperr.Respond(c, log, err)
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextIdentity, authz.Identity{
			UserID:                 u.ID,
			Username:               u.Username,
			Role:                   authz.Role(u.Role),
			BarberID:               u.BarberID,
			RequiresPasswordChange: u.RequiresPasswordChange,
		})

		c.Next()
	}
}

// IdentityFrom returns the caller set by Auth, or the zero identity.
func IdentityFrom(c *gin.Context) authz.Identity {
	if v, ok := c.Get(ContextIdentity); ok {
		if id, ok := v.(authz.Identity); ok {
			return id
		}
	}
	return authz.Identity{}
}

func ClaimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// RequirePasswordChanged blocks accounts that must still replace a default or
// admin-issued password.
func RequirePasswordChanged() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFrom(c).RequiresPasswordChange {
			httperr.Write(c, http.StatusForbidden, "password_change_required", "You must change your password first.")
			c.Abort()
			return
		}
		c.Next()
	}
}
