package api

import "time"

// Document is the full persisted record for one editable text unit.
// ID is immutable for the document's lifetime; LastModified moves only
// on content saves, so LastModified >= CreatedAt always holds.
type Document struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}

// CatalogEntry is the per-document row in the catalog. The catalog is
// ordered by creation and carries no content.
type CatalogEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

type FontFamily string

const (
	FontSystem FontFamily = "system"
	FontSerif  FontFamily = "serif"
	FontMono   FontFamily = "mono"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Display bounds for settings values. Save paths clamp rather than
// reject: these are preferences with no correctness impact.
const (
	MinFontSize   = 12
	MaxFontSize   = 24
	MinLineHeight = 1.2
	MaxLineHeight = 2.0
)

// Settings are per-document display preferences. A document with no
// stored Settings record uses DefaultSettings.
type Settings struct {
	FontSize     int        `json:"font_size"`
	LineHeight   float64    `json:"line_height"`
	FontFamily   FontFamily `json:"font_family"`
	Theme        Theme      `json:"theme"`
	LastModified time.Time  `json:"last_modified"`
}

func DefaultSettings() Settings {
	return Settings{
		FontSize:   14,
		LineHeight: 1.6,
		FontFamily: FontSystem,
		Theme:      ThemeLight,
	}
}

// Clamped returns a copy with numeric values pulled to the nearest bound
// and enum values reset to defaults when unrecognized.
func (s Settings) Clamped() Settings {
	if s.FontSize < MinFontSize {
		s.FontSize = MinFontSize
	}
	if s.FontSize > MaxFontSize {
		s.FontSize = MaxFontSize
	}
	if s.LineHeight < MinLineHeight {
		s.LineHeight = MinLineHeight
	}
	if s.LineHeight > MaxLineHeight {
		s.LineHeight = MaxLineHeight
	}
	switch s.FontFamily {
	case FontSystem, FontSerif, FontMono:
	default:
		s.FontFamily = FontSystem
	}
	switch s.Theme {
	case ThemeLight, ThemeDark:
	default:
		s.Theme = ThemeLight
	}
	return s
}

// AppState is the singleton recovery hint. LastActiveID is best-effort:
// if it names a missing document, startup ignores it.
type AppState struct {
	LastActiveID string `json:"last_active_id"`
}
