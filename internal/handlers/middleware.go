package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"ilmkids/internal/models"
	"ilmkids/internal/security"
	"ilmkids/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey ContextKey = "user"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *security.TokenManager
	users   *service.UserService
	limiter *security.RateLimiter
	proxies security.TrustedProxies
	logger  *zap.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenManager, users *service.UserService, limiter *security.RateLimiter, proxies security.TrustedProxies, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:  tokens,
		users:   users,
		limiter: limiter,
		proxies: proxies,
		logger:  logger,
	}
}

// RequireAuth is middleware that requires a valid bearer token
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := m.tokens.Parse(raw)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: security.ErrInvalidToken.Error()})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: security.ErrInvalidToken.Error()})
			return
		}

		// The token may outlive the account
		user, err := m.users.GetUser(r.Context(), userID)
		if err != nil {
			if statusFor(err) == http.StatusNotFound {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: security.ErrInvalidToken.Error()})
				return
			}
			respondWithServiceError(w, m.logger, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole is RequireAuth plus a role check
func (m *Middleware) RequireRole(role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil || user.Role != role {
			respondJSON(w, http.StatusForbidden, errorResponse{Error: "only " + string(role) + " accounts may do this"})
			return
		}
		next(w, r)
	})
}

// RateLimit rejects clients that exceed the configured request rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r, m.proxies)
		if !m.limiter.Allow(ip) {
			retry := m.limiter.RetryAfter(ip)
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Round(time.Second)/time.Second)))
			m.logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", r.URL.Path))
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests, try again later"})
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware logs HTTP requests
func Logging(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
