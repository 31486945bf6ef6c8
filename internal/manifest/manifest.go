// Package manifest reads and rewrites sites.json, the JSON file that lists
// every company micro-site and drives the landing page.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound indicates the requested company id has no manifest entry.
var ErrNotFound = errors.New("company id not found")

// Entry describes one company site in the directory.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
	LogoURL     string `json:"logoUrl"`
	Archived    bool   `json:"archived"`
}

// Manifest is the top-level sites.json document.
type Manifest struct {
	Updated string  `json:"updated"`
	Sites   []Entry `json:"sites"`
}

// Clock supplies the current time (injectable for deterministic tests).
type Clock interface {
	Now() time.Time
}

// Manager owns all reads and writes of the manifest file. Writes replace the
// whole file via temp file + rename; concurrent invocations still race
// last-write-wins on the file as a whole, which the triggering CI system
// makes rare enough to accept.
type Manager struct {
	path  string
	clock Clock
}

// NewManager creates a Manager for the manifest at path.
func NewManager(path string, clock Clock) *Manager {
	return &Manager{path: path, clock: clock}
}

// Path returns the manifest file location.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the manifest, tolerating a missing or corrupt file by returning
// an empty document. Creation-time paths must work on a fresh checkout.
func (m *Manager) Load() Manifest {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return Manifest{}
	}
	var doc Manifest
	if err := json.Unmarshal(data, &doc); err != nil {
		return Manifest{}
	}
	return doc
}

// LoadStrict reads the manifest and fails if it is missing or malformed.
// Archive/restore must reference an existing record, so unlike Load there is
// no empty-document fallback.
func (m *Manager) LoadStrict() (Manifest, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, fmt.Errorf("%s not found; run generate at least once", m.path)
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var doc Manifest
	if err := json.Unmarshal(data, &doc); err != nil {
		return Manifest{}, fmt.Errorf("manifest %s has invalid format: %w", m.path, err)
	}
	return doc, nil
}

// Upsert records a company in the manifest, creating the entry when absent.
// Name and description are always overwritten; tag and logoUrl are only
// filled in when unset so manual edits survive re-runs.
func (m *Manager) Upsert(slug, name, description, defaultTag, defaultLogoURL string) error {
	doc := m.Load()

	idx := findEntry(doc.Sites, slug)
	if idx < 0 {
		doc.Sites = append(doc.Sites, Entry{
			ID:   slug,
			Path: fmt.Sprintf("/%s/", slug),
		})
		idx = len(doc.Sites) - 1
	}

	entry := &doc.Sites[idx]
	entry.Name = name
	entry.Description = description
	if entry.Tag == "" {
		entry.Tag = defaultTag
	}
	if entry.LogoURL == "" {
		entry.LogoURL = defaultLogoURL
	}

	return m.save(doc)
}

// SetArchived flips the archived flag on an existing entry. The manifest
// must already exist and contain the id.
func (m *Manager) SetArchived(slug string, archived bool) error {
	doc, err := m.LoadStrict()
	if err != nil {
		return err
	}

	idx := findEntry(doc.Sites, slug)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	doc.Sites[idx].Archived = archived

	return m.save(doc)
}

func findEntry(sites []Entry, slug string) int {
	for i := range sites {
		if sites[i].ID == slug {
			return i
		}
	}
	return -1
}

// save stamps the document and rewrites the whole file atomically with
// 2-space indentation and a trailing newline, keeping version-control diffs
// readable.
func (m *Manager) save(doc Manifest) error {
	doc.Updated = m.clock.Now().UTC().Format("2006-01-02")
	if doc.Sites == nil {
		doc.Sites = []Entry{}
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	payload = append(payload, '\n')

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create manifest dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".sites-*.json")
	if err != nil {
		return fmt.Errorf("create temp manifest: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp manifest: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp manifest: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}

	success = true
	return nil
}
