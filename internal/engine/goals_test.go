package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/silviuClosca/languageForge/internal/storage"
)

func TestLoadGoalsForMonthAbsent(t *testing.T) {
	svc := newTestService(t)

	g := svc.LoadGoalsForMonth("2025-06")
	if g.Month != "2025-06" {
		t.Fatalf("month=%q, want 2025-06", g.Month)
	}
	for i := 0; i < storage.GoalSlots; i++ {
		if g.Goals[i] != "" || g.Completed[i] {
			t.Fatalf("slot %d not blank: %+v", i, g)
		}
		if g.Categories[i] != DefaultCategory {
			t.Fatalf("categories[%d]=%q, want %q", i, g.Categories[i], DefaultCategory)
		}
		if g.Subtasks[i] == nil || g.SubtasksDone[i] == nil {
			t.Fatalf("slot %d subtask slices nil", i)
		}
	}
}

func TestGoalsSaveLoadRoundTrip(t *testing.T) {
	svc := newTestService(t)

	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[0] = "Read one chapter a day"
	g.Completed[0] = true
	g.Categories[0] = "Reading"
	g.Reflections[0] = "Easier than expected"
	g.Subtasks[0] = []string{"Pick the book", "Chapters 1-10"}
	g.SubtasksDone[0] = []bool{true, false}
	g.Goals[2] = "Write a journal entry weekly"
	g.Notes = "Focus month"
	if !svc.SaveGoalsForMonth(g, "test") {
		t.Fatalf("save suppressed")
	}

	got := svc.LoadGoalsForMonth("2025-06")
	if got.Goals != g.Goals || got.Completed != g.Completed {
		t.Fatalf("goals round trip: got %+v", got)
	}
	if got.Categories != g.Categories || got.Reflections != g.Reflections {
		t.Fatalf("categories/reflections round trip: got %+v", got)
	}
	if !reflect.DeepEqual(got.Subtasks[0], g.Subtasks[0]) || !reflect.DeepEqual(got.SubtasksDone[0], g.SubtasksDone[0]) {
		t.Fatalf("subtasks round trip: got %+v %+v", got.Subtasks[0], got.SubtasksDone[0])
	}
	if got.Notes != "Focus month" {
		t.Fatalf("notes=%q, want Focus month", got.Notes)
	}
	if got.CreatedAt[0] == "" || got.CreatedAt[2] == "" {
		t.Fatalf("created_at not stamped: %+v", got.CreatedAt)
	}
	if got.CompletedAt[0] == "" || got.CompletedAt[2] != "" {
		t.Fatalf("completed_at wrong: %+v", got.CompletedAt)
	}
}

func TestLoadGoalsNormalizesLegacyDoc(t *testing.T) {
	svc := newTestService(t)

	// Short arrays, wrong-typed entries, 0/1 flags, subtasks_done out of
	// step with subtasks, an extra array element beyond the slot count.
	legacy := map[string]any{
		"2025-04": map[string]any{
			"goals":         []any{"Learn 200 words", 42, "Extra", "beyond slots"},
			"completed":     []any{1, "yes"},
			"categories":    []any{"Vocabulary", nil},
			"subtasks":      []any{[]any{"Anki deck", 7}, "not a list"},
			"subtasks_done": []any{[]any{1, true, true}},
			"notes":         123,
			"archived":      0,
		},
	}
	svc.Profiles().Store().Save("goals_v2.json", legacy)

	g := svc.LoadGoalsForMonth("2025-04")
	if g.Goals != [storage.GoalSlots]string{"Learn 200 words", "", "Extra"} {
		t.Fatalf("goals=%v", g.Goals)
	}
	if g.Completed != [storage.GoalSlots]bool{true, false, false} {
		t.Fatalf("completed=%v", g.Completed)
	}
	if g.Categories != [storage.GoalSlots]string{"Vocabulary", DefaultCategory, DefaultCategory} {
		t.Fatalf("categories=%v", g.Categories)
	}
	if !reflect.DeepEqual(g.Subtasks[0], []string{"Anki deck", ""}) {
		t.Fatalf("subtasks[0]=%v", g.Subtasks[0])
	}
	if !reflect.DeepEqual(g.SubtasksDone[0], []bool{true, true}) {
		t.Fatalf("subtasks_done[0]=%v", g.SubtasksDone[0])
	}
	if len(g.Subtasks[1]) != 0 || len(g.SubtasksDone[1]) != 0 {
		t.Fatalf("slot 1 subtasks not empty: %v %v", g.Subtasks[1], g.SubtasksDone[1])
	}
	if g.Notes != "" || g.Archived {
		t.Fatalf("notes=%q archived=%v", g.Notes, g.Archived)
	}

	// Loading again yields the identical record.
	if again := svc.LoadGoalsForMonth("2025-04"); !reflect.DeepEqual(g, again) {
		t.Fatalf("normalization not stable:\n%+v\n%+v", g, again)
	}
}

func TestLoadGoalsCorruptMonthYieldsBlank(t *testing.T) {
	svc := newTestService(t)

	svc.Profiles().Store().Save("goals_v2.json", map[string]any{
		"2025-04": "not an object",
	})
	g := svc.LoadGoalsForMonth("2025-04")
	if g.Goals[0] != "" || g.Archived {
		t.Fatalf("corrupt month not blank: %+v", g)
	}
}

func TestSaveGoalsBlankOverwriteGuard(t *testing.T) {
	svc := newTestService(t)

	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[0] = "Finish B1 textbook"
	g.Notes = "Keep momentum"
	if !svc.SaveGoalsForMonth(g, "editor") {
		t.Fatalf("initial save suppressed")
	}

	if svc.SaveGoalsForMonth(blankGoals("2025-06"), "stale-editor") {
		t.Fatalf("blank save over existing data not suppressed")
	}
	got := svc.LoadGoalsForMonth("2025-06")
	if got.Goals[0] != "Finish B1 textbook" || got.Notes != "Keep momentum" {
		t.Fatalf("existing data wiped: %+v", got)
	}

	// A blank save is fine when the month has nothing stored yet.
	if !svc.SaveGoalsForMonth(blankGoals("2025-07"), "editor") {
		t.Fatalf("blank save of fresh month suppressed")
	}
}

func TestSaveGoalsWhitespaceCountsAsBlank(t *testing.T) {
	svc := newTestService(t)

	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[1] = "Real goal"
	svc.SaveGoalsForMonth(g, "editor")

	ws := blankGoals("2025-06")
	ws.Goals[0] = "   "
	ws.Notes = "\n\t"
	ws.Subtasks[2] = []string{" "}
	ws.SubtasksDone[2] = []bool{false}
	if svc.SaveGoalsForMonth(ws, "stale-editor") {
		t.Fatalf("whitespace-only save not suppressed")
	}
	if got := svc.LoadGoalsForMonth("2025-06"); got.Goals[1] != "Real goal" {
		t.Fatalf("goals[1]=%q, want Real goal", got.Goals[1])
	}
}

func TestSaveGoalsTimestampCarryForward(t *testing.T) {
	svc := newTestService(t)
	restore := now
	defer func() { now = restore }()

	now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[0] = "Hold a 5 minute conversation"
	svc.SaveGoalsForMonth(g, "editor")

	got := svc.LoadGoalsForMonth("2025-06")
	if got.CreatedAt[0] != "2025-06-01T09:00:00" {
		t.Fatalf("created_at=%q, want 2025-06-01T09:00:00", got.CreatedAt[0])
	}

	// A later save from a caller that never saw the stamps keeps them.
	now = func() time.Time { return time.Date(2025, 6, 20, 18, 30, 0, 0, time.UTC) }
	edit := blankGoals("2025-06")
	edit.Goals[0] = "Hold a 5 minute conversation"
	edit.Completed[0] = true
	svc.SaveGoalsForMonth(edit, "other-editor")

	got = svc.LoadGoalsForMonth("2025-06")
	if got.CreatedAt[0] != "2025-06-01T09:00:00" {
		t.Fatalf("created_at overwritten: %q", got.CreatedAt[0])
	}
	if got.CompletedAt[0] != "2025-06-20T18:30:00" {
		t.Fatalf("completed_at=%q, want 2025-06-20T18:30:00", got.CompletedAt[0])
	}

	// Completing again later never moves the first completion stamp.
	now = func() time.Time { return time.Date(2025, 6, 25, 8, 0, 0, 0, time.UTC) }
	got.Completed[0] = true
	got.CompletedAt[0] = ""
	svc.SaveGoalsForMonth(got, "editor")
	if again := svc.LoadGoalsForMonth("2025-06"); again.CompletedAt[0] != "2025-06-20T18:30:00" {
		t.Fatalf("completed_at moved: %q", again.CompletedAt[0])
	}
}

func TestClearGoalSlot(t *testing.T) {
	svc := newTestService(t)

	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[0] = "Keep this"
	g.Goals[1] = "Clear this"
	g.Completed[1] = true
	g.Reflections[1] = "done early"
	g.Subtasks[1] = []string{"a", "b"}
	g.SubtasksDone[1] = []bool{true, true}
	svc.SaveGoalsForMonth(g, "editor")

	cleared := svc.ClearGoalSlot("2025-06", 1)
	if cleared.Goals[1] != "" || cleared.Completed[1] || cleared.Reflections[1] != "" {
		t.Fatalf("slot 1 not cleared: %+v", cleared)
	}
	if len(cleared.Subtasks[1]) != 0 || len(cleared.SubtasksDone[1]) != 0 {
		t.Fatalf("slot 1 subtasks not cleared: %v", cleared.Subtasks[1])
	}
	if cleared.CreatedAt[1] != "" || cleared.CompletedAt[1] != "" {
		t.Fatalf("slot 1 stamps not cleared: %+v", cleared)
	}
	if cleared.Goals[0] != "Keep this" {
		t.Fatalf("slot 0 damaged: %+v", cleared)
	}

	// The clear must stick even though the remaining record could look
	// blank to the overwrite guard.
	got := svc.LoadGoalsForMonth("2025-06")
	if got.Goals[1] != "" || got.CreatedAt[1] != "" {
		t.Fatalf("clear did not persist: %+v", got)
	}
	if got.Goals[0] != "Keep this" {
		t.Fatalf("slot 0 lost after clear: %+v", got)
	}
}

func TestClearGoalSlotOutOfRange(t *testing.T) {
	svc := newTestService(t)

	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[0] = "Untouched"
	svc.SaveGoalsForMonth(g, "editor")

	svc.ClearGoalSlot("2025-06", -1)
	svc.ClearGoalSlot("2025-06", storage.GoalSlots)
	if got := svc.LoadGoalsForMonth("2025-06"); got.Goals[0] != "Untouched" {
		t.Fatalf("out-of-range clear touched data: %+v", got)
	}
}

func TestAutoArchivePastGoals(t *testing.T) {
	svc := newTestService(t)

	for _, month := range []string{"2025-04", "2025-05", "2025-07", "2025-08"} {
		g := svc.LoadGoalsForMonth(month)
		g.Goals[0] = "Goal for " + month
		svc.SaveGoalsForMonth(g, "editor")
	}

	// A hand-edited record with a field this code does not know about.
	raw := storage.Load(svc.Profiles().Store(), "goals_v2.json", map[string]json.RawMessage{})
	var m map[string]any
	if err := json.Unmarshal(raw["2025-04"], &m); err != nil {
		t.Fatalf("decode 2025-04: %v", err)
	}
	m["custom_color"] = "#aabbcc"
	data, _ := json.Marshal(m)
	raw["2025-04"] = data
	svc.Profiles().Store().Save("goals_v2.json", raw)

	if got := svc.AutoArchivePastGoals("2025-07"); got != 2 {
		t.Fatalf("archived %d months, want 2", got)
	}
	if !svc.LoadGoalsForMonth("2025-04").Archived || !svc.LoadGoalsForMonth("2025-05").Archived {
		t.Fatalf("past months not archived")
	}
	if svc.LoadGoalsForMonth("2025-07").Archived || svc.LoadGoalsForMonth("2025-08").Archived {
		t.Fatalf("current or future month archived")
	}

	// Unknown fields survive the archive pass.
	raw = storage.Load(svc.Profiles().Store(), "goals_v2.json", map[string]json.RawMessage{})
	m = nil
	if err := json.Unmarshal(raw["2025-04"], &m); err != nil {
		t.Fatalf("decode archived 2025-04: %v", err)
	}
	if m["custom_color"] != "#aabbcc" {
		t.Fatalf("custom field lost: %v", m["custom_color"])
	}

	if got := svc.AutoArchivePastGoals("2025-07"); got != 0 {
		t.Fatalf("second pass archived %d months, want 0", got)
	}
}

func TestCheckGoalsEditable(t *testing.T) {
	svc := newTestService(t)

	if err := svc.CheckGoalsEditable("2025-06"); err != nil {
		t.Fatalf("fresh month not editable: %v", err)
	}

	g := svc.LoadGoalsForMonth("2025-05")
	g.Goals[0] = "Old goal"
	g.Archived = true
	svc.SaveGoalsForMonth(g, "editor")

	err := svc.CheckGoalsEditable("2025-05")
	var archived ArchivedError
	if !errors.As(err, &archived) {
		t.Fatalf("err=%v, want ArchivedError", err)
	}
	if archived.Month != "2025-05" {
		t.Fatalf("archived month=%q, want 2025-05", archived.Month)
	}
}

func TestAllGoalsSorted(t *testing.T) {
	svc := newTestService(t)

	for _, month := range []string{"2025-07", "2025-01", "2025-03"} {
		g := svc.LoadGoalsForMonth(month)
		g.Goals[0] = "Goal"
		svc.SaveGoalsForMonth(g, "editor")
	}

	all := svc.AllGoals()
	if len(all) != 3 {
		t.Fatalf("len=%d, want 3", len(all))
	}
	want := []string{"2025-01", "2025-03", "2025-07"}
	for i, g := range all {
		if g.Month != want[i] {
			t.Fatalf("months[%d]=%q, want %q", i, g.Month, want[i])
		}
	}
}

func TestSaveGoalsLeavesOtherMonthsRaw(t *testing.T) {
	svc := newTestService(t)

	// A month with an unknown field must survive saves of other months
	// byte for byte.
	svc.Profiles().Store().Save("goals_v2.json", map[string]any{
		"2025-03": map[string]any{"goals": []any{"Old"}, "legacy_flag": true},
	})
	before := storage.Load(svc.Profiles().Store(), "goals_v2.json", map[string]json.RawMessage{})

	g := svc.LoadGoalsForMonth("2025-06")
	g.Goals[0] = "New month"
	svc.SaveGoalsForMonth(g, "editor")

	after := storage.Load(svc.Profiles().Store(), "goals_v2.json", map[string]json.RawMessage{})
	if string(after["2025-03"]) != string(before["2025-03"]) {
		t.Fatalf("untouched month changed:\nbefore %s\nafter  %s", before["2025-03"], after["2025-03"])
	}
	if _, ok := after["2025-06"]; !ok {
		t.Fatalf("saved month missing")
	}
}
