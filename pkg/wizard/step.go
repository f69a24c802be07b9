package wizard

import (
	"strconv"
	"strings"
)

// Step is a wizard page, numbered from 1.
type Step int

const (
	StepTemplate Step = iota + 1
	StepRecipients
	StepContent
	StepReview
)

// FirstStep and LastStep bound the valid range.
const (
	FirstStep = StepTemplate
	LastStep  = StepReview
)

// Valid reports whether s is within range.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepTemplate:
		return "template"
	case StepRecipients:
		return "recipients"
	case StepContent:
		return "content"
	case StepReview:
		return "review"
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// CanAdvance reports whether the wizard may leave step given s.
// Template and review steps always pass; the recipient step needs at least
// one recipient; the content step needs a non-blank subject and message.
func CanAdvance(step Step, s State) bool {
	switch step {
	case StepTemplate, StepReview:
		return true
	case StepRecipients:
		return len(s.Recipients) > 0
	case StepContent:
		return strings.TrimSpace(s.Subject) != "" && strings.TrimSpace(s.Message) != ""
	}
	return false
}
