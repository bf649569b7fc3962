package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

// IssueToken generates a signed JWT for a user. The role claim carries the
// admin flag so the middleware can gate admin-only routes without a DB hit.
func IssueToken(user *models.User) (string, error) {
	role := "user"
	if user.IsAdmin {
		role = "admin"
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
