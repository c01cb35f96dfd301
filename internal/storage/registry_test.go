package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(NewStore(t.TempDir(), nil), nil)
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My  Language!!", "my_language!!"},
		{"  spaced out  ", "spaced_out"},
		{`a/b\c:d*e?f"g<h>i|j`, "abcdefghij"},
		{"..secret", "secret"},
		{"__Weird__Name__", "weird_name"},
		{"UPPER Case", "upper_case"},
		{"///", ""},
		{"", ""},
		{strings.Repeat("a", 40), strings.Repeat("a", 30)},
	}
	for _, c := range cases {
		got := SanitizeName(c.in)
		if got != c.want {
			t.Fatalf("SanitizeName(%q)=%q, want %q", c.in, got, c.want)
		}
		if again := SanitizeName(c.in); again != got {
			t.Fatalf("SanitizeName(%q) not deterministic: %q vs %q", c.in, got, again)
		}
	}
}

func TestActiveIDDefaultsOnFreshState(t *testing.T) {
	reg := newTestRegistry(t)
	if got := reg.ActiveID(); got != DefaultProfileID {
		t.Fatalf("ActiveID()=%q, want %q", got, DefaultProfileID)
	}
}

func TestActiveIDFallsBackToFirstProfile(t *testing.T) {
	reg := newTestRegistry(t)
	reg.save(registryDoc{
		ActiveProfile: "ghost",
		Profiles: []Profile{
			{ID: "spanish", DisplayName: "Spanish"},
			{ID: "french", DisplayName: "French"},
		},
	})

	if got := reg.ActiveID(); got != "spanish" {
		t.Fatalf("ActiveID()=%q, want spanish", got)
	}
}

func TestActiveIDSurvivesCorruptRegistry(t *testing.T) {
	reg := newTestRegistry(t)
	if err := os.WriteFile(reg.store.Path(registryFile), []byte("{{{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := reg.ActiveID(); got != DefaultProfileID {
		t.Fatalf("ActiveID()=%q, want %q", got, DefaultProfileID)
	}
}

func TestSetActivePersistsAndStampsLastUsed(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	if res := reg.Create("Spanish"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}

	if reg.SetActive("ghost") {
		t.Fatalf("SetActive(ghost) succeeded")
	}
	if !reg.SetActive("spanish") {
		t.Fatalf("SetActive(spanish) failed")
	}
	if got := reg.ActiveID(); got != "spanish" {
		t.Fatalf("ActiveID()=%q, want spanish", got)
	}

	// A fresh registry over the same store sees the switch.
	fresh := NewRegistry(reg.store, nil)
	if got := fresh.ActiveID(); got != "spanish" {
		t.Fatalf("fresh ActiveID()=%q, want spanish", got)
	}
	for _, p := range fresh.List() {
		if p.ID == "spanish" && p.LastUsed == "" {
			t.Fatalf("last_used not stamped")
		}
	}
}

func TestCreateValidation(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()

	cases := []struct {
		name    string
		message string
	}{
		{"", "Profile name is too short."},
		{strings.Repeat("x", 31), "Profile name must be 30 characters or less."},
		{"///", "Profile name contains only invalid characters."},
		{"Default", "'Default' is a reserved name."},
		{"Settings", "'Settings' is a reserved name."},
	}
	for _, c := range cases {
		res := reg.Create(c.name)
		if res.OK {
			t.Fatalf("Create(%q) succeeded, want failure", c.name)
		}
		if res.Message != c.message {
			t.Fatalf("Create(%q) message=%q, want %q", c.name, res.Message, c.message)
		}
	}
}

func TestCreateProfileMakesDirectory(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()

	res := reg.Create("My Language")
	if !res.OK {
		t.Fatalf("create: %s", res.Message)
	}
	if res.Message != "Profile 'My Language' created successfully." {
		t.Fatalf("message=%q", res.Message)
	}
	fi, err := os.Stat(filepath.Join(reg.ProfilesRoot(), "my_language"))
	if err != nil || !fi.IsDir() {
		t.Fatalf("profile directory missing: %v", err)
	}
	if !reg.Exists("my_language") {
		t.Fatalf("profile not registered")
	}
	name, ok := reg.DisplayName("my_language")
	if !ok || name != "My Language" {
		t.Fatalf("DisplayName=%q ok=%v", name, ok)
	}
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	if res := reg.Create("My Language"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}

	// Different display name, same slug.
	res := reg.Create("my  LANGUAGE")
	if res.OK {
		t.Fatalf("duplicate slug accepted")
	}
	if !strings.Contains(res.Message, "already exists") {
		t.Fatalf("message=%q", res.Message)
	}
}

func TestCreateEnforcesProfileCap(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()

	for i := 0; i < MaxProfiles-1; i++ {
		if res := reg.Create(fmt.Sprintf("Lang %02d", i)); !res.OK {
			t.Fatalf("create %d: %s", i, res.Message)
		}
	}
	res := reg.Create("one too many")
	if res.OK {
		t.Fatalf("create beyond cap succeeded")
	}
	if res.Message != "Maximum profiles (50) reached. Delete unused profiles first." {
		t.Fatalf("message=%q", res.Message)
	}
}

func TestDeleteProtections(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	if res := reg.Create("Spanish"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}
	if !reg.SetActive("spanish") {
		t.Fatalf("switch to spanish")
	}

	if res := reg.Delete(DefaultProfileID); res.OK || res.Message != "Cannot delete the default profile." {
		t.Fatalf("delete default: ok=%v message=%q", res.OK, res.Message)
	}
	if res := reg.Delete("spanish"); res.OK || !strings.Contains(res.Message, "currently active") {
		t.Fatalf("delete active: ok=%v message=%q", res.OK, res.Message)
	}
	if res := reg.Delete("ghost"); res.OK || res.Message != "Profile 'ghost' does not exist." {
		t.Fatalf("delete ghost: ok=%v message=%q", res.OK, res.Message)
	}
}

func TestDeleteRemovesProfileAndDirectory(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	if res := reg.Create("Spanish"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}
	dir := filepath.Join(reg.ProfilesRoot(), "spanish")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("stat before delete: %v", err)
	}

	res := reg.Delete("spanish")
	if !res.OK || res.Message != "Profile deleted successfully." {
		t.Fatalf("delete: ok=%v message=%q", res.OK, res.Message)
	}
	if reg.Exists("spanish") {
		t.Fatalf("profile still registered")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("directory still present: %v", err)
	}
}

func TestRename(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	if res := reg.Create("Spanish"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}

	if res := reg.Rename("ghost", "Castilian"); res.OK || res.Message != "Profile 'ghost' does not exist." {
		t.Fatalf("rename ghost: ok=%v message=%q", res.OK, res.Message)
	}
	if res := reg.Rename("spanish", strings.Repeat("x", 31)); res.OK {
		t.Fatalf("rename accepted oversized name")
	}

	res := reg.Rename("spanish", "Castilian")
	if !res.OK || res.Message != "Profile renamed to 'Castilian'." {
		t.Fatalf("rename: ok=%v message=%q", res.OK, res.Message)
	}
	name, ok := reg.DisplayName("spanish")
	if !ok || name != "Castilian" {
		t.Fatalf("DisplayName after rename=%q ok=%v", name, ok)
	}
}

func TestCleanupOrphans(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	if res := reg.Create("Spanish"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}
	root := reg.ProfilesRoot()
	if err := os.MkdirAll(filepath.Join(root, "stray"), 0o755); err != nil {
		t.Fatalf("mkdir stray: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "note.txt"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if got := reg.CleanupOrphans(); got != 1 {
		t.Fatalf("CleanupOrphans()=%d, want 1", got)
	}
	if _, err := os.Stat(filepath.Join(root, "stray")); !os.IsNotExist(err) {
		t.Fatalf("stray dir survived")
	}
	if _, err := os.Stat(filepath.Join(root, "spanish")); err != nil {
		t.Fatalf("registered dir removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "note.txt")); err != nil {
		t.Fatalf("plain file removed: %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	reg := newTestRegistry(t)

	reg.Init()
	reg.Init()

	profiles := reg.List()
	if len(profiles) != 1 || profiles[0].ID != DefaultProfileID {
		t.Fatalf("profiles=%+v, want single default", profiles)
	}
	if got := reg.ActiveID(); got != DefaultProfileID {
		t.Fatalf("ActiveID()=%q, want %q", got, DefaultProfileID)
	}
	if _, err := os.Stat(filepath.Join(reg.ProfilesRoot(), DefaultProfileID)); err != nil {
		t.Fatalf("default dir missing: %v", err)
	}
}

func TestInitRestoresMissingDefault(t *testing.T) {
	reg := newTestRegistry(t)
	reg.save(registryDoc{
		ActiveProfile: "spanish",
		Profiles:      []Profile{{ID: "spanish", DisplayName: "Spanish"}},
	})

	reg.Init()

	if !reg.Exists(DefaultProfileID) {
		t.Fatalf("default profile not restored")
	}
}

func TestCreateStampsTimestamps(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	restore := now
	now = func() time.Time { return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC) }
	defer func() { now = restore }()

	if res := reg.Create("Spanish"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}
	for _, p := range reg.List() {
		if p.ID != "spanish" {
			continue
		}
		if p.CreatedAt != "2025-06-15T10:30:00" {
			t.Fatalf("created_at=%q", p.CreatedAt)
		}
		if p.LastUsed != "2025-06-15T10:30:00" {
			t.Fatalf("last_used=%q", p.LastUsed)
		}
		return
	}
	t.Fatalf("spanish profile not listed")
}

func TestProfileStoreIsolation(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	if res := reg.Create("Spanish"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}
	ps := NewProfileStore(reg, nil)

	ps.Store().Save("tracker.json", DailyActivity{"2025-06-15": {"reading": true}})

	if !reg.SetActive("spanish") {
		t.Fatalf("switch to spanish")
	}
	if got := Load(ps.Store(), "tracker.json", DailyActivity{}); len(got) != 0 {
		t.Fatalf("spanish sees default's tracker: %v", got)
	}

	if !reg.SetActive(DefaultProfileID) {
		t.Fatalf("switch back")
	}
	got := Load(ps.Store(), "tracker.json", DailyActivity{})
	if !got["2025-06-15"]["reading"] {
		t.Fatalf("default tracker lost: %v", got)
	}
}

func TestProfileStoreExplicitProfile(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Init()
	if res := reg.Create("Spanish"); !res.OK {
		t.Fatalf("create: %s", res.Message)
	}
	ps := NewProfileStore(reg, nil)

	ps.StoreFor("spanish").Save("dailyplan.json", DailyPlan{Tasks: [PlanSlots]string{"shadow a podcast"}})

	// Active profile is still default; the explicit store wrote elsewhere.
	if got := Load(ps.Store(), "dailyplan.json", DailyPlan{}); got.Tasks[0] != "" {
		t.Fatalf("default plan contaminated: %+v", got)
	}
	got := Load(ps.StoreFor("spanish"), "dailyplan.json", DailyPlan{})
	if got.Tasks[0] != "shadow a podcast" {
		t.Fatalf("explicit profile plan=%+v", got)
	}
	if ps.DirFor("") != ps.Dir() {
		t.Fatalf("DirFor(\"\") should resolve to the active dir")
	}
}
