package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rulekit-labs/rulekit/internal/branding"
)

// IndexEntry is a module summary stored in the discovery cache and used by
// search and list output.
type IndexEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Dir         string   `json:"dir"`
}

// CachedIndex holds a cached set of discovered modules along with the registry
// modification time used for invalidation.
type CachedIndex struct {
	Entries  []IndexEntry `json:"entries"`
	RootMod  int64        `json:"root_mod"` // latest mtime (unix) under the root
	CachedAt time.Time    `json:"cached_at"`
}

// DefaultCachePath returns the default cache file path: ~/.rulekit/registry-cache.json.
func DefaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, branding.HomeDir(), "registry-cache.json"), nil
}

// ScanCached returns module index entries for the registry root, using the
// cache file when still valid. A stale or missing cache triggers a full scan
// and a best-effort cache rewrite.
func ScanCached(root, cachePath string) ([]IndexEntry, error) {
	currentMod := latestMtime(root)

	if cached, err := loadCache(cachePath); err == nil && cached.RootMod == currentMod && currentMod != 0 {
		return cached.Entries, nil
	}

	catalog, err := Scan(root)
	if err != nil {
		return nil, err
	}

	entries := indexEntries(catalog)

	writeCache(cachePath, entries, currentMod)

	return entries, nil
}

// indexEntries flattens a catalog into cacheable summaries.
func indexEntries(catalog *Catalog) []IndexEntry {
	modules := catalog.Modules()
	entries := make([]IndexEntry, len(modules))
	for i, m := range modules {
		entries[i] = IndexEntry{
			ID:          m.ID,
			Name:        m.Descriptor.Name,
			Version:     m.Descriptor.Version,
			Description: m.Descriptor.Description,
			Tags:        m.Descriptor.Tags,
			Dir:         m.Dir,
		}
	}
	return entries
}

// loadCache reads and parses the cache file.
func loadCache(path string) (*CachedIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx CachedIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// writeCache serializes the index to disk. Failures are silently ignored.
func writeCache(path string, entries []IndexEntry, rootMod int64) {
	idx := CachedIndex{
		Entries:  entries,
		RootMod:  rootMod,
		CachedAt: time.Now(),
	}
	data, err := json.Marshal(idx)
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	_ = os.WriteFile(path, data, 0644)
}

// latestMtime returns the latest modification time (unix seconds) across the
// root and its first two directory levels. This is a lightweight check that
// catches added or removed modules without a full walk.
func latestMtime(root string) int64 {
	var latest int64
	bump := func(path string) {
		if fi, err := os.Stat(path); err == nil {
			if t := fi.ModTime().Unix(); t > latest {
				latest = t
			}
		}
	}

	bump(root)

	entries, err := os.ReadDir(root)
	if err != nil {
		return latest
	}
	for _, entry := range entries {
		if !entry.IsDir() || skippedNames[entry.Name()] {
			continue
		}
		sub := filepath.Join(root, entry.Name())
		bump(sub)

		subEntries, err := os.ReadDir(sub)
		if err != nil {
			continue
		}
		for _, se := range subEntries {
			if se.IsDir() && !skippedNames[se.Name()] {
				bump(filepath.Join(sub, se.Name()))
			}
		}
	}
	return latest
}
