package notifyapi

import (
	"encoding/json"

	"github.com/dmitrymomot/notifykit/pkg/recipient"
)

// Fixed attributes of every notification sent through the wizard.
const (
	ChannelEmail           = "EMAIL"
	TypeInfo               = "info"
	CategoryAdministrative = "administrative"
	PriorityMedium         = "medium"
)

// SendRequest is the body of POST /api/notifications/send.
type SendRequest struct {
	Subject     string                `json:"subject"`
	Message     string                `json:"message"`
	HTML        bool                  `json:"html"`
	HTMLContent string                `json:"htmlContent,omitempty"`
	Channel     string                `json:"channel"`
	Type        string                `json:"type"`
	Category    string                `json:"category"`
	Priority    string                `json:"priority"`
	TemplateID  *string               `json:"templateId"`
	Recipients  []recipient.Recipient `json:"recipients"`
}

// NewSendRequest fills the fixed fields. htmlContent mirrors the message when
// it is HTML.
func NewSendRequest(subject, message string, isHTML bool, templateID *string, recipients []recipient.Recipient) SendRequest {
	req := SendRequest{
		Subject:    subject,
		Message:    message,
		HTML:       isHTML,
		Channel:    ChannelEmail,
		Type:       TypeInfo,
		Category:   CategoryAdministrative,
		Priority:   PriorityMedium,
		TemplateID: templateID,
		Recipients: recipients,
	}
	if isHTML {
		req.HTMLContent = message
	}
	if req.Recipients == nil {
		req.Recipients = []recipient.Recipient{}
	}
	return req
}

// envelope is the common response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
