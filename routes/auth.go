package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rizwan-khalid06/Buyzi-app/auth"
	"github.com/rizwan-khalid06/Buyzi-app/middleware"
)

// SetupAuthRoutes registers the "/api/user/*" account endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, mailer auth.Mailer) {
	userGroup := api.Group("/user")
	{
		userGroup.POST("/register", auth.RegisterHandler(db))
		userGroup.POST("/login", auth.LoginHandler(db))
		userGroup.POST("/resetPassword", auth.SendPasswordResetHandler(db, mailer))
		userGroup.POST("/resetPassword/:uid/:token", auth.ResetPasswordHandler(db))

		protected := userGroup.Group("")
		protected.Use(middleware.ValidateToken)
		{
			protected.GET("/profile", auth.ProfileHandler(db))
			protected.POST("/changePassword", auth.ChangePasswordHandler(db))
		}
	}
}
