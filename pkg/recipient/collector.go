package recipient

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Collector holds the ordered recipient list of one wizard session.
type Collector struct {
	list  []Recipient
	input string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Recipients returns a copy of the current list.
func (c *Collector) Recipients() []Recipient {
	return slices.Clone(c.list)
}

func (c *Collector) Len() int {
	return len(c.list)
}

// EmailCount is the number of email recipients.
func (c *Collector) EmailCount() int {
	emails, _, _ := Counts(c.list)
	return emails
}

// GroupCount is the number of role recipients.
func (c *Collector) GroupCount() int {
	_, groups, _ := Counts(c.list)
	return groups
}

// SetInput replaces the single-address input buffer.
func (c *Collector) SetInput(s string) {
	c.input = s
}

// Input returns the single-address input buffer.
func (c *Collector) Input() string {
	return c.input
}

// AddInput adds the buffered address. The buffer is cleared only on success.
func (c *Collector) AddInput() error {
	return c.AddSingle(c.input)
}

// AddSingle validates and appends one address.
func (c *Collector) AddSingle(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if !IsValidEmail(trimmed) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, trimmed)
	}

	value, ok := normalize(trimmed)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, trimmed)
	}
	if c.has(TypeEmail, value) {
		return fmt.Errorf("%w: %s", ErrDuplicate, value)
	}

	c.list = append(c.list, Recipient{Type: TypeEmail, Value: value, Label: value})
	c.input = ""
	return nil
}

// AddBulk extracts every address from text and appends the ones not yet
// present, in order of first appearance. It returns how many were added.
func (c *Collector) AddBulk(text string) (int, error) {
	return c.addEmails(ExtractEmails(text))
}

// AddFromFile imports addresses from an uploaded file. CSV files are scanned
// line by line, XLSX files cell by cell, anything else as free text.
func (c *Collector) AddFromFile(content []byte, filename string) (int, error) {
	var found []string
	switch fileKind(filename) {
	case ".csv":
		found = extractFromCSV(string(content))
	case ".xlsx":
		var err error
		if found, err = extractFromXLSX(content); err != nil {
			return 0, err
		}
	default:
		found = ExtractEmails(string(content))
	}

	if len(found) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyFile, filename)
	}
	return c.addEmails(found)
}

// AddFromReader reads r fully and delegates to AddFromFile.
func (c *Collector) AddFromReader(r io.Reader, filename string) (int, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	return c.AddFromFile(content, filename)
}

// AddGroup appends a role recipient. Roles are not de-duplicated.
// An empty label is derived from the key ("all_teachers" -> "All Teachers").
func (c *Collector) AddGroup(roleKey, label string) error {
	roleKey = strings.TrimSpace(roleKey)
	if roleKey == "" {
		return ErrInvalidGroup
	}
	if strings.TrimSpace(label) == "" {
		label = cases.Title(language.BrazilianPortuguese).String(strings.NewReplacer("_", " ", "-", " ").Replace(roleKey))
	}
	c.list = append(c.list, Recipient{Type: TypeRole, Value: roleKey, Label: label})
	return nil
}

// AddUser appends a single user recipient, unique by id.
func (c *Collector) AddUser(userID, label string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidUser
	}
	if c.has(TypeUser, userID) {
		return fmt.Errorf("%w: user %s", ErrDuplicate, userID)
	}
	if strings.TrimSpace(label) == "" {
		label = userID
	}
	c.list = append(c.list, Recipient{Type: TypeUser, Value: userID, Label: label})
	return nil
}

// Remove deletes the recipient at index. Out-of-range indexes are ignored
// and reported with false.
func (c *Collector) Remove(index int) bool {
	if index < 0 || index >= len(c.list) {
		return false
	}
	c.list = slices.Delete(c.list, index, index+1)
	return true
}

// ClearAll empties the list.
func (c *Collector) ClearAll() {
	c.list = nil
}

// ExportAsText returns email recipient values, one per line.
func (c *Collector) ExportAsText() (string, error) {
	var values []string
	for _, r := range c.list {
		if r.Type == TypeEmail {
			values = append(values, r.Value)
		}
	}
	if len(values) == 0 {
		return "", ErrEmptyExport
	}
	return strings.Join(values, "\n"), nil
}

func (c *Collector) addEmails(found []string) (int, error) {
	seen := make(map[string]struct{}, len(c.list)+len(found))
	for _, r := range c.list {
		if r.Type == TypeEmail {
			seen[r.Value] = struct{}{}
		}
	}

	added := make([]Recipient, 0, len(found))
	for _, raw := range found {
		value, valid := normalize(raw)
		if !valid {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		added = append(added, Recipient{Type: TypeEmail, Value: value, Label: value})
	}

	if len(added) == 0 {
		return 0, ErrNoMatch
	}
	c.list = append(c.list, added...)
	return len(added), nil
}

func (c *Collector) has(t Type, value string) bool {
	return slices.ContainsFunc(c.list, func(r Recipient) bool {
		return r.Type == t && r.Value == value
	})
}
