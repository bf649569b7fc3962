package modelapiControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/rizwan-khalid06/Buyzi-app/controllers/product"
	"github.com/rizwan-khalid06/Buyzi-app/models"
)

// ConfidenceThreshold below which a prediction is treated as "no match".
const ConfidenceThreshold = 0.65

const classifyTimeout = 15 * time.Second

type Prediction struct {
	ClassName  string  `json:"class_name"`
	Confidence float64 `json:"confidence"`
}

// Classifier is the inference collaborator. The model itself lives in an
// external service; this API only forwards the image and interprets the
// prediction.
type Classifier interface {
	Classify(ctx context.Context, filename string, image io.Reader) (*Prediction, error)
}

// HTTPClassifier posts images to the inference service at CLASSIFIER_URL.
type HTTPClassifier struct {
	Client *http.Client
}

func NewHTTPClassifier() *HTTPClassifier {
	return &HTTPClassifier{Client: &http.Client{}}
}

func (h *HTTPClassifier) Classify(ctx context.Context, filename string, image io.Reader) (*Prediction, error) {
	endpoint := os.Getenv("CLASSIFIER_URL")
	if endpoint == "" {
		return nil, errors.New("classifier service not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier error (%d): %s", resp.StatusCode, string(body))
	}

	var prediction Prediction
	if err := json.Unmarshal(body, &prediction); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}
	return &prediction, nil
}

// ClassifyImage predicts a category for an uploaded image and returns the
// matching products. A low-confidence prediction is a 200 with an empty
// product list, not an error.
// POST /api/classify
func ClassifyImage(db *gorm.DB, classifier Classifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(c.Request.Context(), classifyTimeout)
		defer cancel()

		prediction, err := classifier.Classify(ctx, fileHeader.Filename, file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Classification service error: " + err.Error()})
			return
		}

		if prediction.Confidence < ConfidenceThreshold {
			c.JSON(http.StatusOK, gin.H{
				"error":      "No products found: Image does not match any known category",
				"class_name": nil,
				"confidence": prediction.Confidence,
				"products":   []productcontroller.ProductResponse{},
			})
			return
		}

		category, ok := models.NormalizeCategory(prediction.ClassName)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Predicted class has no matching category"})
			return
		}

		var products []models.Product
		if err := db.Where("category = ?", category).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		var userID uint
		if val, exists := c.Get("user_id"); exists {
			if id, ok := val.(uint); ok {
				userID = id
			}
		}
		resp, err := productcontroller.ProductListResponse(db, products, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"class_name": prediction.ClassName,
			"confidence": prediction.Confidence,
			"products":   resp,
		})
	}
}
