package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rizwan-khalid06/Buyzi-app/auth"
	modelapiControllers "github.com/rizwan-khalid06/Buyzi-app/controllers/modelapi"
	voicesearchControllers "github.com/rizwan-khalid06/Buyzi-app/controllers/voicesearch"
	"github.com/rizwan-khalid06/Buyzi-app/notify"
)

// Deps collects the external collaborators the handlers need. main wires the
// real clients; tests wire stubs.
type Deps struct {
	Sender      notify.Sender
	Classifier  modelapiControllers.Classifier
	Transcriber voicesearchControllers.Transcriber
	Mailer      auth.Mailer
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db, deps.Mailer)
	SetupProductRoutes(api, db)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db, deps.Sender)
	SetupFavouriteRoutes(api, db)
	SetupSearchRoutes(api, db, deps.Classifier, deps.Transcriber)
}
