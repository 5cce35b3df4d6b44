package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"roomboard/internal/cache"
	"roomboard/internal/middleware"
	"roomboard/internal/models"
	"roomboard/internal/policy"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "sessionid"
	sessionIssuer     = "roomboard"
	sessionAudience   = "roomboard-web"

	localUser       = "user"
	localUserID     = "userID"
	localSessionJTI = "sessionJTI"
	localSessionExp = "sessionExp"
	localNotices    = "notices"
)

// generateToken signs a session token for userID and returns it with its ID and expiry.
func (s *Server) generateToken(userID uint) (string, string, time.Time, error) {
	if s.config.SessionSecret == "" {
		return "", "", time.Time{}, fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	expiresAt := now.Add(s.config.SessionTTL())
	jti := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    sessionIssuer,
		Audience:  jwt.ClaimStrings{sessionAudience},
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SessionSecret))
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, jti, expiresAt, nil
}

// parseToken validates a session token and returns its claims.
func (s *Server) parseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(s.config.SessionSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithAudience(sessionAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// startSession logs user in by setting the session cookie.
func (s *Server) startSession(c *fiber.Ctx, user *models.User) error {
	token, jti, expiresAt, err := s.generateToken(user.ID)
	if err != nil {
		return models.NewInternalError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	s.setCurrentUser(c, user, jti, expiresAt)
	middleware.SessionEvents.WithLabelValues("login").Inc()
	return nil
}

// endSession revokes the current token until it would have expired and clears the cookie.
func (s *Server) endSession(c *fiber.Ctx) {
	if jti, ok := c.Locals(localSessionJTI).(string); ok {
		exp, _ := c.Locals(localSessionExp).(time.Time)
		if err := cache.RevokeSession(c.UserContext(), s.redis, jti, time.Until(exp)); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "failed to revoke session",
				slog.String("jti", jti), slog.String("error", err.Error()))
		}
	}
	c.ClearCookie(sessionCookieName)
	c.Locals(localUser, nil)
	c.Locals(localUserID, nil)
	middleware.SessionEvents.WithLabelValues("logout").Inc()
}

func (s *Server) setCurrentUser(c *fiber.Ctx, user *models.User, jti string, exp time.Time) {
	c.Locals(localUser, user)
	c.Locals(localUserID, user.ID)
	c.Locals(localSessionJTI, jti)
	c.Locals(localSessionExp, exp)
	c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
}

// SessionMiddleware identifies the visitor from the session cookie. Invalid,
// revoked, or orphaned sessions leave the request anonymous.
func (s *Server) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(sessionCookieName)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := s.parseToken(tokenString)
		if err != nil {
			middleware.SessionEvents.WithLabelValues("rejected").Inc()
			c.ClearCookie(sessionCookieName)
			return c.Next()
		}

		revoked, err := cache.IsSessionRevoked(c.UserContext(), s.redis, claims.ID)
		if err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session revocation check failed",
				slog.String("error", err.Error()))
		}
		if revoked {
			middleware.SessionEvents.WithLabelValues("revoked").Inc()
			c.ClearCookie(sessionCookieName)
			return c.Next()
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 32)
		if err != nil {
			c.ClearCookie(sessionCookieName)
			return c.Next()
		}

		user, err := s.userRepo.GetByID(c.UserContext(), uint(userID))
		if err != nil {
			if models.HasCode(err, models.CodeNotFound) {
				c.ClearCookie(sessionCookieName)
				return c.Next()
			}
			return err
		}

		var exp time.Time
		if claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}
		s.setCurrentUser(c, user, claims.ID, exp)
		return c.Next()
	}
}

// LoginRequired redirects anonymous visitors to the login page, remembering where they were going.
func (s *Server) LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return c.Redirect("/login/?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
		}
		return c.Next()
	}
}

// currentUser returns the logged-in user or nil.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

func actorFrom(c *fiber.Ctx) policy.Actor {
	if user := currentUser(c); user != nil {
		return policy.Actor{UserID: user.ID}
	}
	return policy.Actor{}
}
