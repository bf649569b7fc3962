package voicesearchControllers

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
)

// ErrUnintelligible means the service processed the audio but could not
// extract text from it. User-correctable.
var ErrUnintelligible = errors.New("could not understand audio")

const transcribeTimeout = 15 * time.Second

// Transcriber is the speech-to-text collaborator.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// HTTPTranscriber posts audio to the speech service at SPEECH_API_URL.
type HTTPTranscriber struct {
	Client *http.Client
}

func NewHTTPTranscriber() *HTTPTranscriber {
	return &HTTPTranscriber{Client: &http.Client{}}
}

type speechResponse struct {
	TranscribedText string `json:"transcribed_text"`
	Error           string `json:"error,omitempty"`
}

func (h *HTTPTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	endpoint := os.Getenv("SPEECH_API_URL")
	if endpoint == "" {
		return "", errors.New("speech service not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech service error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed speechResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse speech response: %w", err)
	}
	if parsed.TranscribedText == "" {
		return "", ErrUnintelligible
	}
	return parsed.TranscribedText, nil
}

// VoiceSearch transcribes an uploaded audio clip so the client can feed the
// text into the product search box.
// POST /api/voice-search
func VoiceSearch(transcriber Transcriber) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("audio")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audio"})
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(c.Request.Context(), transcribeTimeout)
		defer cancel()

		text, err := transcriber.Transcribe(ctx, fileHeader.Filename, file)
		if err != nil {
			if errors.Is(err, ErrUnintelligible) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Could not understand audio"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Speech recognition service error: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"transcribed_text": text})
	}
}
