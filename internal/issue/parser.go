// Package issue extracts structured requests from issue-tracker titles and
// bodies. Issues are filled in by humans via an issue template, so parsing is
// deliberately permissive: labeled fields ("**Field:** value") are matched
// case-insensitively anywhere in the body.
package issue

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Action selects the manifest mutation requested by an issue title.
type Action string

// Actions recognized from issue title prefixes.
const (
	ActionArchive Action = "archive"
	ActionRestore Action = "restore"
)

// ErrNoAction indicates the issue title or body did not identify an
// archive/restore request.
var ErrNoAction = errors.New("could not parse action or **Company id:** from issue")

// Request is a parsed company-creation request. It lives for a single run
// and is never persisted.
type Request struct {
	Name    string
	Website string
	Tone    string
}

// DefaultTone is used when the issue omits the **Tone:** field.
const DefaultTone = "Professional"

var (
	nameRe    = regexp.MustCompile(`(?i)\*\*Company name:\*\*\s*(.+)`)
	websiteRe = regexp.MustCompile(`(?i)\*\*Website:\*\*\s*(.+)`)
	toneRe    = regexp.MustCompile(`(?i)\*\*Tone:\*\*\s*(.+)`)
	idRe      = regexp.MustCompile(`(?i)\*\*Company id:\*\*\s*([a-z0-9\-]+)`)
)

// ParseCreate extracts a Request from a create-company issue body.
// A website of exactly "-" means "no public site" and is treated as absent.
func ParseCreate(body string) (Request, error) {
	name := findField(nameRe, body)
	if name == "" {
		return Request{}, fmt.Errorf("could not parse **Company name:** from issue body")
	}

	website := findField(websiteRe, body)
	if website == "-" {
		website = ""
	}

	tone := findField(toneRe, body)
	if tone == "" {
		tone = DefaultTone
	}

	return Request{Name: name, Website: website, Tone: tone}, nil
}

// ParseAction extracts an archive/restore action and the target company id.
// The title must start with "Archive company:" or "Restore company:"
// (case-insensitive) and the body must contain a **Company id:** field.
func ParseAction(title, body string) (Action, string, error) {
	var action Action
	switch lowered := strings.ToLower(strings.TrimSpace(title)); {
	case strings.HasPrefix(lowered, "archive company:"):
		action = ActionArchive
	case strings.HasPrefix(lowered, "restore company:"):
		action = ActionRestore
	}

	companyID := findField(idRe, strings.TrimSpace(body))

	if action == "" || companyID == "" {
		return "", "", ErrNoAction
	}
	return action, companyID, nil
}

func findField(re *regexp.Regexp, body string) string {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
