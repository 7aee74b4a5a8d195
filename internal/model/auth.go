package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for an administrator session
type AdminClaims struct {
	AdminID string `json:"adminId"`
	jwt.RegisteredClaims
}

// CandidateClaims are JWT claims for a candidate token, scoped to one
// directory user
type CandidateClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// LoginRequest is the admin login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued admin token
type LoginResponse struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// CandidateTokenRequest asks for a token scoped to a directory user
type CandidateTokenRequest struct {
	UserID string `json:"userId"`
}

// CandidateTokenResponse carries the issued candidate token
type CandidateTokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
