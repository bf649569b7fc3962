package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// DispatchResult is attached to the order response; a failed dispatch is
// reported, never retried, and never fails the order.
type DispatchResult struct {
	Status     string `json:"status"`
	MessageSID string `json:"message_sid,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Sender dispatches order confirmations. The Twilio client implements it;
// tests stub it.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, phone string, orderID uint) DispatchResult
}

// TwilioWhatsApp sends WhatsApp messages through Twilio's Messages API.
// Configured via TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and
// TWILIO_WHATSAPP_NUMBER; TWILIO_API_URL overrides the endpoint in tests.
type TwilioWhatsApp struct {
	Client *http.Client
}

func NewTwilioWhatsApp() *TwilioWhatsApp {
	return &TwilioWhatsApp{Client: &http.Client{}}
}

type twilioMessageResponse struct {
	SID     string `json:"sid"`
	Message string `json:"message"` // error detail on non-2xx
}

func (t *TwilioWhatsApp) SendOrderConfirmation(ctx context.Context, phone string, orderID uint) DispatchResult {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_WHATSAPP_NUMBER")
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return DispatchResult{Status: StatusFailed, Error: "Missing Twilio configuration"}
	}

	apiURL := os.Getenv("TWILIO_API_URL")
	if apiURL == "" {
		apiURL = "https://api.twilio.com"
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", apiURL, accountSID)

	body := fmt.Sprintf("Thank you for your purchase! Your order (ID: %d) has been successfully confirmed. "+
		"We appreciate your business and look forward to serving you again. Happy shopping with Buyzi!", orderID)

	form := url.Values{}
	form.Set("From", "whatsapp:"+fromNumber)
	form.Set("To", "whatsapp:"+phone)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return DispatchResult{Status: StatusFailed, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(accountSID, authToken)

	resp, err := t.Client.Do(req)
	if err != nil {
		return DispatchResult{Status: StatusFailed, Error: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed twilioMessageResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return DispatchResult{Status: StatusFailed, Error: fmt.Sprintf("unexpected Twilio response: %s", string(raw))}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := parsed.Message
		if detail == "" {
			detail = fmt.Sprintf("Twilio API error (%d)", resp.StatusCode)
		}
		return DispatchResult{Status: StatusFailed, Error: detail}
	}

	return DispatchResult{Status: StatusSuccess, MessageSID: parsed.SID}
}
