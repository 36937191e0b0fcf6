package planner

import (
	"encoding/json"
	"net/http"
	"strings"

	"sku_scorecard/internal/auth"
)

// Refresh validates a refresh token and issues a new access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Missing Token", http.StatusUnauthorized)
		return
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		http.Error(w, "Malformed Token", http.StatusUnauthorized)
		return
	}

	claims, err := auth.ValidateToken(parts[1])
	if err != nil {
		http.Error(w, "Invalid Token", http.StatusUnauthorized)
		return
	}
	if claims.TokenType != "REFRESH" {
		http.Error(w, "Invalid Token Type", http.StatusUnauthorized)
		return
	}

	newAccessToken, _ := auth.GenerateAccessToken(claims.AnalystID, claims.Email)

	json.NewEncoder(w).Encode(map[string]string{
		"access_token": newAccessToken,
	})
}
