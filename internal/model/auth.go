package model

import "github.com/golang-jwt/jwt/v5"

// Token roles separate the two JWT audiences. Both tokens are signed with the
// same secret, so each validator must reject tokens minted for the other role.
const (
	TokenRoleAgent      = "agent"
	TokenRoleRespondent = "respondent"
)

// AgentClaims are JWT claims for back-office (agent) authentication
type AgentClaims struct {
	AgentID string `json:"agentId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// RespondentClaims are JWT claims for identified quiz respondents. The auth
// gate only checks presence and validity; the email is carried for CRM sync.
type RespondentClaims struct {
	RespondentID string `json:"respondentId"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for agent login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful agent login
type LoginResponse struct {
	Token   string `json:"token"`
	AgentID string `json:"agentId"`
}

// IdentifyRequest is the request body for respondent identification
type IdentifyRequest struct {
	Email string `json:"email"`
}

// IdentifyResponse is returned after a respondent identifies
type IdentifyResponse struct {
	Token        string `json:"token"`
	RespondentID string `json:"respondentId"`
}
