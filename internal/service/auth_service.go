package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"leadquiz/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles back-office (agent) logins and respondent
// identification tokens
type AuthService struct {
	agentUsername string
	agentPassword string
	jwtSecret     []byte
}

// NewAuthService creates a new auth service from the environment
func NewAuthService() *AuthService {
	username := os.Getenv("AGENT_USERNAME")
	if username == "" {
		username = "agent"
	}
	password := os.Getenv("AGENT_PASSWORD")
	if password == "" {
		password = "password123"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super-secret-key-change-in-production"
	}

	return &AuthService{
		agentUsername: username,
		agentPassword: password,
		jwtSecret:     []byte(secret),
	}
}

// Login validates agent credentials and returns a token for the back office
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.agentUsername || password != s.agentPassword {
		return nil, ErrInvalidCredentials
	}

	agentID := "agent_" + uuid.New().String()[:8]

	claims := &model.AgentClaims{
		AgentID: agentID,
		Role:    model.TokenRoleAgent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:   tokenString,
		AgentID: agentID,
	}, nil
}

// ValidateAgentToken validates an agent JWT and returns its claims
func (s *AuthService) ValidateAgentToken(tokenString string) (*model.AgentClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AgentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AgentClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	// A respondent token parses into AgentClaims with the role and ID empty;
	// it must never open the back office
	if claims.Role != model.TokenRoleAgent || claims.AgentID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Identify issues a respondent token. This is what the quiz's identification
// challenge resolves to: once the token is presented, the auth gate lets the
// respondent advance.
func (s *AuthService) Identify(email string) (*model.IdentifyResponse, error) {
	respondentID := "resp_" + uuid.New().String()[:8]

	claims := &model.RespondentClaims{
		RespondentID: respondentID,
		Email:        email,
		Role:         model.TokenRoleRespondent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.IdentifyResponse{
		Token:        tokenString,
		RespondentID: respondentID,
	}, nil
}

// ValidateRespondentToken validates a respondent JWT and returns its claims
func (s *AuthService) ValidateRespondentToken(tokenString string) (*model.RespondentClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.RespondentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.RespondentClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != model.TokenRoleRespondent || claims.RespondentID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
