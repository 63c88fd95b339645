package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"jiji-catalog/models"
	"jiji-catalog/utils"
)

// AdLog owns the ads.json file. Ads are appended at most once, keyed by
// sanitized lower-cased title, and every append rewrites the whole file so
// a crash mid-run loses only ads still in flight. All mutation goes through
// a single mutex: concurrent batch completions cannot drop each other's
// records around the read-modify-write of the file.
type AdLog struct {
	mu    sync.Mutex
	path  string
	ads   []*models.Ad
	known *utils.TitleSet
}

// OpenAdLog loads any previously persisted ads from path. A missing file
// yields an empty log; an unparseable one is treated as a fresh start.
func OpenAdLog(path string) (*AdLog, error) {
	l := &AdLog{
		path:  path,
		known: utils.NewTitleSet(),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("adlog: read %q: %w", path, err)
	}

	var ads []*models.Ad
	if err := json.Unmarshal(data, &ads); err != nil {
		// Corrupt log: start fresh rather than refusing to harvest.
		return l, nil
	}

	for _, ad := range ads {
		// Hand-edited files can carry null elements; drop them.
		if ad == nil {
			continue
		}
		l.ads = append(l.ads, ad)
		l.known.Add(utils.DedupKey(ad.Title))
	}
	return l, nil
}

// Len returns the number of logged ads.
func (l *AdLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ads)
}

// Contains reports whether an ad with the given dedup key is already logged.
func (l *AdLog) Contains(key string) bool {
	return l.known.Contains(key)
}

// Ads returns a snapshot of the logged collection.
func (l *AdLog) Ads() []*models.Ad {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.Ad, len(l.ads))
	copy(out, l.ads)
	return out
}

// Append adds ad to the log and rewrites the file. Returns false without
// writing when an ad with the same dedup key is already present.
func (l *AdLog) Append(ad *models.Ad) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.known.Add(utils.DedupKey(ad.Title)) {
		return false, nil
	}

	l.ads = append(l.ads, ad)

	if err := l.flushLocked(); err != nil {
		return true, err
	}
	return true, nil
}

func (l *AdLog) flushLocked() error {
	data, err := json.MarshalIndent(l.ads, "", "  ")
	if err != nil {
		return fmt.Errorf("adlog: marshal: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("adlog: write %q: %w", l.path, err)
	}
	return nil
}
