package wizard

import (
	"fmt"

	"github.com/dmitrymomot/notifykit/pkg/recipient"
	"github.com/dmitrymomot/notifykit/pkg/sanitizer"
)

// State is a point-in-time copy of the wizard.
type State struct {
	Step              Step                  `json:"step"`
	Recipients        []recipient.Recipient `json:"recipients"`
	Subject           string                `json:"subject"`
	Message           string                `json:"message"`
	IsHTML            bool                  `json:"isHtml"`
	AppliedTemplateID *string               `json:"appliedTemplateId"`
}

// Summary is what the review step shows before sending.
type Summary struct {
	EmailCount int
	GroupCount int
	UserCount  int
	Total      int
	Subject    string
	Preview    string
	IsHTML     bool
	TemplateID string
}

const previewLength = 160

func summarize(s State) Summary {
	emails, groups, users := recipient.Counts(s.Recipients)
	sum := Summary{
		EmailCount: emails,
		GroupCount: groups,
		UserCount:  users,
		Total:      len(s.Recipients),
		Subject:    s.Subject,
		Preview:    sanitizer.Preview(s.Message, s.IsHTML, previewLength),
		IsHTML:     s.IsHTML,
	}
	if s.AppliedTemplateID != nil {
		sum.TemplateID = *s.AppliedTemplateID
	}
	return sum
}

// Confirmation renders the question asked before dispatch.
func (s Summary) Confirmation() string {
	msg := fmt.Sprintf("Send %q to %d email(s)", s.Subject, s.EmailCount)
	if s.GroupCount > 0 {
		msg += fmt.Sprintf(" and %d group(s)", s.GroupCount)
	}
	if s.UserCount > 0 {
		msg += fmt.Sprintf(" and %d user(s)", s.UserCount)
	}
	return msg + "?"
}
