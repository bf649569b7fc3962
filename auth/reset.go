package auth

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rizwan-khalid06/Buyzi-app/models"
)

const resetTokenTTL = time.Hour

// Mailer delivers the password reset link. Tests swap in a recorder.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through the SMTP relay configured via SMTP_HOST,
// SMTP_PORT, SMTP_USER, SMTP_PASSWORD and SMTP_FROM.
type SMTPMailer struct{}

func (SMTPMailer) Send(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	if host == "" || port == "" || from == "" {
		return errors.New("smtp configuration missing")
	}

	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
	}
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}

type ResetRequestInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Password  string `json:"password" binding:"required,min=6"`
	Password2 string `json:"password2" binding:"required"`
}

// POST /api/user/resetPassword
func SendPasswordResetHandler(db *gorm.DB, mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You are not registered."})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		reset := models.PasswordResetToken{
			Token:     uuid.NewString(),
			UserID:    user.ID,
			ExpiresAt: time.Now().Add(resetTokenTTL),
		}
		if err := db.Create(&reset).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
			return
		}

		base := os.Getenv("FRONTEND_BASE_URL")
		if base == "" {
			base = "http://localhost:3000"
		}
		link := fmt.Sprintf("%s/api/user/reset/%d/%s", base, user.ID, reset.Token)
		body := "Click the following link to reset your password: " + link

		if err := mailer.Send(user.Email, "Reset your password", body); err != nil {
			log.Printf("❌ Failed to send reset email to %s: %v", user.Email, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Error sending password reset email."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"msg": "Password reset link sent. Check your email."})
	}
}

// POST /api/user/resetPassword/:uid/:token
func ResetPasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ResetPasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Password != input.Password2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password and confirm password do not match"})
			return
		}

		uid := c.Param("uid")
		tokenStr := c.Param("token")

		var reset models.PasswordResetToken
		err := db.Where("token = ? AND user_id = ?", tokenStr, uid).First(&reset).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Token is not valid or expired"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if time.Now().After(reset.ExpiresAt) {
			db.Delete(&reset)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Token is not valid or expired"})
			return
		}

		hash, err := hashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
				Update("password", hash).Error; err != nil {
				return err
			}
			// Token is single use.
			return tx.Delete(&reset).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"msg": "Password reset successful"})
	}
}
