package engine

import (
	"github.com/silviuClosca/languageForge/internal/storage"
)

const settingsFile = "settings.json"

// Themes lists the selectable theme names; the first is the default.
var Themes = []string{"anki_auto", "light", "dark", "zen", "high_contrast", "japanese_pastel"}

// FontSizes lists the selectable font sizes.
var FontSizes = []string{"small", "medium", "large"}

// DefaultSettings returns the stock preferences.
func DefaultSettings() storage.Settings {
	return storage.Settings{FontSize: "medium", OpenOnStartup: false, Theme: "anki_auto"}
}

// LoadSettings merges the stored document over the defaults key by key:
// unknown keys are ignored, missing or wrong-typed values keep their
// defaults. Settings live at the data root, shared across profiles.
func (s *Service) LoadSettings() storage.Settings {
	m := storage.Load(s.root, settingsFile, map[string]any{})
	cfg := DefaultSettings()
	cfg.FontSize = asString(m["font_size"], cfg.FontSize)
	cfg.OpenOnStartup = asBool(m["open_on_startup"])
	cfg.Theme = asString(m["theme"], cfg.Theme)
	return cfg
}

// SaveSettings writes the known settings keys and nothing else.
func (s *Service) SaveSettings(cfg storage.Settings) {
	s.root.Save(settingsFile, cfg)
}
