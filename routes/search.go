package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	modelapiControllers "github.com/rizwan-khalid06/Buyzi-app/controllers/modelapi"
	voicesearchControllers "github.com/rizwan-khalid06/Buyzi-app/controllers/voicesearch"
	"github.com/rizwan-khalid06/Buyzi-app/middleware"
)

// SetupSearchRoutes registers the visual and voice search endpoints.
func SetupSearchRoutes(api *gin.RouterGroup, db *gorm.DB,
	classifier modelapiControllers.Classifier, transcriber voicesearchControllers.Transcriber) {

	api.POST("/classify", middleware.OptionalToken, modelapiControllers.ClassifyImage(db, classifier))
	api.POST("/voice-search", voicesearchControllers.VoiceSearch(transcriber))
}
