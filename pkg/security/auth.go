package security

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"assettrack/internal/repository"
	"assettrack/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecretOnce sync.Once
	jwtSecret     []byte
)

func secret() []byte {
	jwtSecretOnce.Do(func() {
		value := os.Getenv("JWT_SECRET")
		if value == "" {
			// .env may not have been loaded yet when this package is
			// used outside of the server entrypoint.
			_ = godotenv.Load()
			value = os.Getenv("JWT_SECRET")
		}
		if value == "" {
			log.Println("Warning: JWT_SECRET is not set, tokens cannot be issued or verified")
		}
		jwtSecret = []byte(value)
	})
	return jwtSecret
}

func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "username", "password_hash", "role", "is_superuser").
		From("users").
		Where(goqu.Ex{"username": username})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("unknown user: %s", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID string, role string, username string, superuser bool) (string, error) {
	key := secret()
	if len(key) == 0 {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}

	claims := jwt.MapClaims{
		"userID":    userID,
		"role":      role,
		"username":  username,
		"superuser": superuser,
		"exp":       time.Now().Add(time.Hour * 120).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}
