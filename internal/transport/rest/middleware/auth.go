package middleware

import (
	"context"
	"net/http"
	"strings"

	"leadquiz/internal/service"
)

type contextKey string

const (
	AgentIDKey      contextKey = "agentId"
	RespondentIDKey contextKey = "respondentId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAgent validates an agent JWT from the Authorization header
func (m *AuthMiddleware) RequireAgent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateAgentToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), AgentIDKey, claims.AgentID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AttachRespondent records the respondent identity in the request context
// when a valid token is present, and passes the request through either way.
// Quiz routes are public; the engine's auth gate decides where identification
// is actually required.
func (m *AuthMiddleware) AttachRespondent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token != "" {
			if claims, err := m.authSvc.ValidateRespondentToken(token); err == nil {
				ctx := context.WithValue(r.Context(), RespondentIDKey, claims.RespondentID)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetAgentID extracts the agent ID from context
func GetAgentID(ctx context.Context) string {
	if v := ctx.Value(AgentIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetRespondentID extracts the respondent ID from context
func GetRespondentID(ctx context.Context) string {
	if v := ctx.Value(RespondentIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// ContextGate adapts the request context to the engine's auth gate: a
// respondent is identified when AttachRespondent put their ID in the context
type ContextGate struct{}

// Identified implements engine.AuthGate
func (ContextGate) Identified(ctx context.Context) bool {
	return GetRespondentID(ctx) != ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
