// Package settings persists the site settings document as a single JSON file.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lepinkainen/movieway/internal/fileutil"
)

// lastUpdatedLayout matches JavaScript's Date.toISOString output.
const lastUpdatedLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	// ErrNotFound is returned when the settings file is missing or unreadable.
	ErrNotFound = errors.New("settings not found")
	// ErrInvalidSection is returned for an empty section name.
	ErrInvalidSection = errors.New("invalid settings section")
)

// Document is the whole settings document keyed by section name.
type Document map[string]any

// Write describes one successful write, handed to the Recorder.
type Write struct {
	Section   string // empty for full-document writes
	WrittenAt time.Time
	Document  []byte
}

// Recorder receives every successful write.
type Recorder interface {
	RecordWrite(ctx context.Context, w Write) error
}

// Store reads and writes the settings file. Writes are serialized; reads are
// lock-free because every write replaces the file atomically.
type Store struct {
	path     string
	mu       sync.Mutex
	now      func() time.Time
	recorder Recorder
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for advanced.lastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRecorder attaches a write recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Read loads the document. Any failure is reported as ErrNotFound.
func (s *Store) Read() (Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrNotFound, s.path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s is not a JSON object", ErrNotFound, s.path)
	}
	return doc, nil
}

// WriteFull stamps advanced.lastUpdated and replaces the whole document.
// doc itself is left unmodified.
func (s *Store) WriteFull(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(ctx, "", doc)
}

// PatchSection shallow-merges fields into doc[name] and writes the result.
// Fields absent from the patch keep their current values.
func (s *Store) PatchSection(ctx context.Context, name string, fields map[string]any) error {
	if name == "" {
		return ErrInvalidSection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Read()
	if err != nil {
		return err
	}

	doc[name] = mergeSection(doc[name], fields)
	return s.writeLocked(ctx, name, doc)
}

func (s *Store) writeLocked(ctx context.Context, section string, doc Document) error {
	now := s.now().UTC()
	stamped := stamp(doc, now)

	data, err := json.MarshalIndent(stamped, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		slog.Error("Failed to save settings", "path", s.path, "error", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if s.recorder != nil {
		w := Write{Section: section, WrittenAt: now, Document: data}
		if err := s.recorder.RecordWrite(ctx, w); err != nil {
			slog.Warn("Failed to record settings revision", "section", section, "error", err)
		}
	}
	return nil
}

// stamp returns a copy of doc with advanced.lastUpdated set to now.
func stamp(doc Document, now time.Time) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}

	advanced := map[string]any{}
	if existing, ok := doc["advanced"].(map[string]any); ok {
		for k, v := range existing {
			advanced[k] = v
		}
	}
	advanced["lastUpdated"] = now.Format(lastUpdatedLayout)
	out["advanced"] = advanced
	return out
}

func mergeSection(current any, fields map[string]any) map[string]any {
	merged := map[string]any{}
	if existing, ok := current.(map[string]any); ok {
		for k, v := range existing {
			merged[k] = v
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

// DefaultDocument returns the document written by `settings init`.
func DefaultDocument() Document {
	return Document{
		"site": map[string]any{
			"title":       defaultSiteTitle,
			"description": defaultSiteDescription,
		},
		"announcement": map[string]any{
			"enabled":      false,
			"text":         "",
			"showAllPages": false,
		},
		"homepage": map[string]any{
			"moviesPerSection": defaultMoviesPerSection,
		},
		"ads": map[string]any{
			"enabled":     true,
			"adSenseCode": "",
			"topBanner": map[string]any{
				"enabled": false, "code": "", "height": "90px",
				"backgroundColor": defaultBannerBackground, "borderRadius": defaultBannerRadius,
			},
			"bottomBanner": map[string]any{
				"enabled": false, "code": "", "height": "120px",
				"backgroundColor": defaultBannerBackground, "borderRadius": defaultBannerRadius,
			},
			"sidebarBanner": map[string]any{
				"enabled": false, "code": "", "width": "200px", "height": "300px",
				"backgroundColor": defaultBannerBackground, "borderRadius": defaultBannerRadius,
			},
		},
		"advanced": map[string]any{},
	}
}
