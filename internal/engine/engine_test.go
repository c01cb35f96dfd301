package engine

import (
	"testing"

	"github.com/silviuClosca/languageForge/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(t.TempDir(), nil)
	svc.Init()
	return svc
}

func TestProfileIsolation(t *testing.T) {
	svc := newTestService(t)

	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[0] = "Finish graded reader"
	if !svc.SaveGoalsForMonth(g, "test") {
		t.Fatalf("save goals suppressed")
	}
	svc.ToggleSkill("2025-06-10", SkillReading)
	svc.SaveSettings(storage.Settings{FontSize: "large", OpenOnStartup: true, Theme: "dark"})

	if res := svc.Registry().Create("French"); !res.OK {
		t.Fatalf("create profile: %s", res.Message)
	}
	if !svc.Registry().SetActive("french") {
		t.Fatalf("switch to french failed")
	}

	if got := svc.LoadGoalsForMonth("2025-06").Goals[0]; got != "" {
		t.Fatalf("goals leaked across profiles: %q", got)
	}
	if svc.Activity().Done("2025-06-10", string(SkillReading)) {
		t.Fatalf("activity leaked across profiles")
	}
	if got := svc.LoadSettings().Theme; got != "dark" {
		t.Fatalf("theme=%q after switch, want dark shared across profiles", got)
	}

	if !svc.Registry().SetActive(storage.DefaultProfileID) {
		t.Fatalf("switch back failed")
	}
	if got := svc.LoadGoalsForMonth("2025-06").Goals[0]; got != "Finish graded reader" {
		t.Fatalf("goals[0]=%q after switching back, want original text", got)
	}
}

func TestStateSurvivesServiceRestart(t *testing.T) {
	dir := t.TempDir()

	svc := NewService(dir, nil)
	svc.Init()
	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[1] = "Shadow one podcast episode"
	g.Completed[1] = true
	svc.SaveGoalsForMonth(g, "test")
	svc.SaveRadarSnapshot(storage.RadarSnapshot{Month: "2025-06", Reading: 3, Listening: 2})
	svc.ToggleSkill("2025-06-10", SkillSpeaking)

	svc2 := NewService(dir, nil)
	svc2.Init()

	got := svc2.LoadGoalsForMonth("2025-06")
	if got.Goals[1] != "Shadow one podcast episode" || !got.Completed[1] {
		t.Fatalf("goals after restart = %+v", got)
	}
	if snap := svc2.SnapshotForMonth("2025-06"); snap.Reading != 3 || snap.Listening != 2 {
		t.Fatalf("snapshot after restart = %+v", snap)
	}
	if !svc2.Activity().Done("2025-06-10", string(SkillSpeaking)) {
		t.Fatalf("activity lost after restart")
	}
}
