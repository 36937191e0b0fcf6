package planner

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"sku_scorecard/internal/auth"
	"sku_scorecard/internal/store"
)

type AuthHandler struct {
	store *store.AnalystStore
}

func NewAuthHandler(s *store.AnalystStore) *AuthHandler {
	return &AuthHandler{store: s}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	hashedPwd, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	analyst := store.Analyst{
		Email:        req.Email,
		PasswordHash: string(hashedPwd),
	}
	if err := h.store.Create(r.Context(), analyst); err != nil {
		http.Error(w, "Registration failed. Email might exist.", http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Registered!"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	analyst, err := h.store.GetByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(analyst.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, _ := auth.GenerateAccessToken(analyst.ID, analyst.Email)
	refreshToken, _ := auth.GenerateRefreshToken(analyst.ID, analyst.Email)

	// The stored refresh token is the session: login invalidates any older one.
	expiry := time.Now().Add(7 * 24 * time.Hour)
	if err := h.store.SetRefreshToken(r.Context(), analyst.Email, refreshToken, expiry); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
