package recipient

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrymomot/notifykit/pkg/sanitizer"
)

const emailPattern = `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`

var (
	emailRegex     = regexp.MustCompile(emailPattern)
	fullEmailRegex = regexp.MustCompile(`^` + emailPattern + `$`)
)

// IsValidEmail reports whether s, after trimming, is a single local@domain.tld address.
func IsValidEmail(s string) bool {
	return fullEmailRegex.MatchString(strings.TrimSpace(s))
}

// ExtractEmails returns every address found in text, in order of appearance.
// Matches are returned as found; normalization happens when they are added.
func ExtractEmails(text string) []string {
	return emailRegex.FindAllString(text, -1)
}

// extractFromCSV scans each line on its own so addresses may sit in any column.
func extractFromCSV(content string) []string {
	var found []string
	for line := range strings.Lines(content) {
		found = append(found, ExtractEmails(line)...)
	}
	return found
}

// extractFromXLSX scans every cell of every sheet in row order.
func extractFromXLSX(content []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	defer f.Close()

	var found []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %w", ErrReadFile, sheet, err)
		}
		for _, row := range rows {
			for _, cell := range row {
				found = append(found, ExtractEmails(cell)...)
			}
		}
	}
	return found, nil
}

func fileKind(filename string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
}

// normalize returns the stored form of an address. Normalizing can leave an
// address invalid ("..@x.com" becomes "@x.com"); ok is false in that case.
func normalize(email string) (value string, ok bool) {
	value = sanitizer.NormalizeEmail(email)
	return value, IsValidEmail(value)
}
