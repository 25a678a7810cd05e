package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"mudra/db"
	"mudra/globals"
	"mudra/middleware"
	"mudra/models"
	"mudra/rdx"
	"mudra/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const (
	refreshTokenTTL = 7 * 24 * time.Hour
	accessTokenTTL  = 15 * time.Minute
)

func sendError(w http.ResponseWriter, code int, msg string) {
	utils.RespondWithError(w, code, msg)
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		sendError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(input.Password) < 8 {
		sendError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	// Check if user already exists
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"email": input.Email}).Err()
	if err == nil {
		sendError(w, http.StatusConflict, "User already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		sendError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Hash error: %v", err)
		sendError(w, http.StatusInternalServerError, "Could not process password")
		return
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = strings.SplitN(input.Email, "@", 2)[0]
	}

	user := models.User{
		UserID:       "u" + utils.GenerateRandomString(10),
		Username:     displayName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         []string{"user"},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(context.TODO(), user); err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if err := rdx.RdxSet("users:"+user.UserID, user.Username); err != nil {
		log.Printf("Redis cache failed: %v", err)
	}

	utils.SendResponse(w, http.StatusCreated, map[string]string{"userid": user.UserID}, "Registration successful", nil)
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		sendError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{"email": input.Email}).Decode(&storedUser)
	if err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.PasswordHash), []byte(input.Password)); err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	_, err = db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": storedUser.UserID},
		bson.M{
			"$set": bson.M{
				"refresh_token":  hashToken(refreshToken),
				"refresh_expiry": time.Now().Add(refreshTokenTTL),
				"last_login":     time.Now(),
			},
		},
	)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to store refresh token")
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":        tokenString,
		"refreshToken": refreshToken,
		"userid":       storedUser.UserID,
	}, "Login successful", nil)
}

func refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.RefreshToken == "" {
		sendError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	var storedUser models.User
	err := db.UserCollection.FindOne(context.TODO(), bson.M{
		"refresh_token":  hashToken(input.RefreshToken),
		"refresh_expiry": bson.M{"$gt": time.Now()},
	}).Decode(&storedUser)
	if err != nil {
		sendError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	tokenString, err := generateAccessToken(storedUser)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxHset("tokki", storedUser.UserID, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.SendResponse(w, http.StatusOK, map[string]string{
		"token":  tokenString,
		"userid": storedUser.UserID,
	}, "Token refreshed", nil)
}

func logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		sendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := rdx.RdxHdel("tokki", userID); err != nil {
		log.Printf("Redis token removal failed: %v", err)
	}

	_, err := db.UserCollection.UpdateOne(
		context.TODO(),
		bson.M{"userid": userID},
		bson.M{"$unset": bson.M{"refresh_token": "", "refresh_expiry": ""}},
	)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	utils.SendResponse(w, http.StatusOK, nil, "Logged out successfully", nil)
}

// sessionHandler is the session observer: it reports the current user
// handle for a bearer token, or absence.
func sessionHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"authenticated": false})
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(context.TODO(), bson.M{"userid": claims.UserID}).Decode(&user); err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"authenticated": false})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"authenticated": true,
		"userid":        user.UserID,
		"username":      user.Username,
		"email":         user.Email,
		"role":          user.Role,
	})
}

func generateAccessToken(user models.User) (string, error) {
	claims := middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.UserID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
