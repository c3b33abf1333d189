package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Navaneeth2707/Remindiary/internal/database"
	"github.com/Navaneeth2707/Remindiary/internal/models"
	"github.com/Navaneeth2707/Remindiary/internal/services"
	"github.com/Navaneeth2707/Remindiary/pkg/utils"
)

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse returns only anonymous profile data.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// extractBearerToken pulls the token out of an Authorization header.
func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// requireAuth validates the session and returns the authenticated user's ID.
// Returns ("", false) if not authenticated.
func requireAuth(r *http.Request) (string, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return "", false
	}
	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		return "", false
	}
	return userID.String(), true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Signup handles user registration.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: err.Error()})
		return
	}
	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Password must be at least 8 characters"})
		return
	}

	normalizedUsername := utils.NormalizeUsername(req.Username)

	var existingUsername string
	err := database.PostgresDB.QueryRow(
		"SELECT username FROM users WHERE LOWER(username) = $1",
		normalizedUsername,
	).Scan(&existingUsername)
	if err == nil {
		writeJSON(w, http.StatusConflict, AuthResponse{Success: false, Message: "Username is already taken"})
		return
	}
	if err != sql.ErrNoRows {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create account"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create account"})
		return
	}

	var userID uuid.UUID
	var createdAt time.Time
	err = database.PostgresDB.QueryRow(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, normalizedUsername, passwordHash).Scan(&userID, &createdAt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to create account"})
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Account created but sign-in failed. Please sign in."})
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Token:   token,
		User: &models.User{
			ID:        userID.String(),
			Username:  normalizedUsername,
			CreatedAt: createdAt,
			IsActive:  true,
		},
	})
}

// Signin handles user login.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, AuthResponse{Success: false, Message: "Username and password are required"})
		return
	}

	normalizedUsername := utils.NormalizeUsername(req.Username)

	var userID uuid.UUID
	var passwordHash string
	var createdAt time.Time
	err := database.PostgresDB.QueryRow(`
		SELECT id, password_hash, created_at FROM users
		WHERE LOWER(username) = $1 AND is_active = TRUE
	`, normalizedUsername).Scan(&userID, &passwordHash, &createdAt)
	if err != nil {
		// Same message for unknown user and bad password
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid username or password"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, passwordHash)
	if err != nil || !ok {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Invalid username or password"})
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, AuthResponse{Success: false, Message: "Failed to sign in"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in successfully",
		Token:   token,
		User: &models.User{
			ID:        userID.String(),
			Username:  normalizedUsername,
			CreatedAt: createdAt,
			IsActive:  true,
		},
	})
}

// GetMe returns the authenticated user's anonymous profile.
func GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Authentication required"})
		return
	}

	var username string
	var createdAt time.Time
	err := database.PostgresDB.QueryRow(`
		SELECT username, created_at FROM users WHERE id = $1 AND is_active = TRUE
	`, userID).Scan(&username, &createdAt)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, AuthResponse{Success: false, Message: "Session is no longer valid"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "OK",
		User: &models.User{
			ID:        userID,
			Username:  username,
			CreatedAt: createdAt,
			IsActive:  true,
		},
	})
}

// Signout invalidates the current session.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		services.InvalidateSession(token)
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Signed out"})
}
