package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/matchplay/services"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler mints API tokens for callers presenting the admin key.
type AuthHandler struct {
	adminKeyHash string
	jwtSecret    string
	tokenTTL     time.Duration
}

func NewAuthHandler(adminKeyHash, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		adminKeyHash: adminKeyHash,
		jwtSecret:    jwtSecret,
		tokenTTL:     24 * time.Hour,
	}
}

// CreateToken handles POST /auth/token.
func (h *AuthHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AdminKey string `json:"admin_key"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.adminKeyHash), []byte(input.AdminKey)); err != nil {
		unauthorizedResponse(w, r, services.ErrAuthenticationFailed.Error())
		return
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(h.tokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"token": signed}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
