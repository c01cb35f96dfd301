package engine

import (
	"testing"

	"github.com/silviuClosca/languageForge/internal/storage"
)

func TestLoadSettingsDefaults(t *testing.T) {
	svc := newTestService(t)

	got := svc.LoadSettings()
	want := storage.Settings{FontSize: "medium", OpenOnStartup: false, Theme: "anki_auto"}
	if got != want {
		t.Fatalf("settings=%+v, want %+v", got, want)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	svc := newTestService(t)

	cfg := storage.Settings{FontSize: "large", OpenOnStartup: true, Theme: "zen"}
	svc.SaveSettings(cfg)
	if got := svc.LoadSettings(); got != cfg {
		t.Fatalf("settings=%+v, want %+v", got, cfg)
	}
}

func TestLoadSettingsMergesOverDefaults(t *testing.T) {
	svc := newTestService(t)

	// Wrong-typed values keep their defaults; unknown keys are ignored.
	svc.root.Save("settings.json", map[string]any{
		"font_size":       12,
		"theme":           "dark",
		"open_on_startup": 1,
		"someday_maybe":   true,
	})

	got := svc.LoadSettings()
	if got.FontSize != "medium" {
		t.Fatalf("font_size=%q, want default for non-string", got.FontSize)
	}
	if got.Theme != "dark" {
		t.Fatalf("theme=%q, want dark", got.Theme)
	}
	if !got.OpenOnStartup {
		t.Fatalf("open_on_startup not coerced from 1")
	}
}

func TestThemeAndFontSizeLists(t *testing.T) {
	if Themes[0] != DefaultSettings().Theme {
		t.Fatalf("first theme %q is not the default %q", Themes[0], DefaultSettings().Theme)
	}
	found := false
	for _, f := range FontSizes {
		if f == DefaultSettings().FontSize {
			found = true
		}
	}
	if !found {
		t.Fatalf("default font size %q not offered", DefaultSettings().FontSize)
	}
}
