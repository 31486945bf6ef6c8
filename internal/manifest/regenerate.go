package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RegenerateOptions control the filesystem resync.
type RegenerateOptions struct {
	// Root is the directory whose top-level folders are company sites.
	Root string
	// ExcludeDirs are infrastructure folders that never count as companies.
	ExcludeDirs []string
	// DefaultTag is applied to folders with no prior manifest entry.
	DefaultTag string
	// LogoBaseURL is the external asset convention prefix.
	LogoBaseURL string
}

var titleCaser = cases.Title(language.English)

// Regenerate rebuilds the manifest from the folders on disk. The filesystem
// is authoritative: folders that contain an index.html become entries,
// everything else is dropped. Previously known name/description/tag/logo/
// archived values are preserved per id.
func (m *Manager) Regenerate(opts RegenerateOptions) (Manifest, error) {
	dirs, err := detectCompanyDirs(opts.Root, opts.ExcludeDirs)
	if err != nil {
		return Manifest{}, err
	}

	existing := make(map[string]Entry)
	for _, e := range m.Load().Sites {
		if e.ID != "" {
			existing[e.ID] = e
		}
	}

	sites := make([]Entry, 0, len(dirs))
	for _, d := range dirs {
		old := existing[d]
		entry := Entry{
			ID:          d,
			Name:        old.Name,
			Path:        fmt.Sprintf("/%s/", d),
			Description: old.Description,
			Tag:         old.Tag,
			LogoURL:     old.LogoURL,
			Archived:    old.Archived,
		}
		if entry.Name == "" {
			entry.Name = titleCaser.String(strings.ReplaceAll(d, "-", " "))
		}
		if entry.Tag == "" {
			entry.Tag = opts.DefaultTag
		}
		if entry.LogoURL == "" {
			entry.LogoURL = fmt.Sprintf("%s/%s/logo.png", opts.LogoBaseURL, d)
		}
		sites = append(sites, entry)
	}

	doc := Manifest{Sites: sites}
	if err := m.save(doc); err != nil {
		return Manifest{}, err
	}
	// save stamped the document; reload so callers see the written form.
	return m.Load(), nil
}

// detectCompanyDirs lists top-level folders that hold a rendered page,
// sorted alphabetically.
func detectCompanyDirs(root string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read site root %s: %w", root, err)
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if _, skip := excluded[name]; skip {
			continue
		}
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, name, "index.html")); err != nil {
			continue
		}
		dirs = append(dirs, name)
	}

	sort.Strings(dirs)
	return dirs, nil
}
