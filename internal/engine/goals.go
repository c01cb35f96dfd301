package engine

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/silviuClosca/languageForge/internal/storage"
)

// goalsFile is versioned so legacy writers still touching goals.json
// never interfere with this document.
const goalsFile = "goals_v2.json"

// monthRecord is the on-disk shape of one month inside goals_v2.json.
// The fixed-size arrays marshal as plain JSON arrays.
type monthRecord struct {
	Month        string                      `json:"month"`
	Goals        [storage.GoalSlots]string   `json:"goals"`
	Completed    [storage.GoalSlots]bool     `json:"completed"`
	Notes        string                      `json:"notes"`
	Archived     bool                        `json:"archived"`
	Categories   [storage.GoalSlots]string   `json:"categories"`
	Reflections  [storage.GoalSlots]string   `json:"reflections"`
	Subtasks     [storage.GoalSlots][]string `json:"subtasks"`
	SubtasksDone [storage.GoalSlots][]bool   `json:"subtasks_done"`
	CreatedAt    [storage.GoalSlots]string   `json:"created_at"`
	CompletedAt  [storage.GoalSlots]string   `json:"completed_at"`
	LastSavedBy  string                      `json:"last_saved_by,omitempty"`
}

// goalsDoc keeps months the module is not touching as raw JSON, so a
// save of one month can never degrade another month's record.
type goalsDoc map[string]json.RawMessage

func (s *Service) loadGoalsDoc() goalsDoc {
	doc := storage.Load(s.profiles.Store(), goalsFile, goalsDoc{})
	if doc == nil {
		return goalsDoc{}
	}
	return doc
}

// LoadGoalsForMonth returns the month's record normalized to the fixed
// shape: every array exactly GoalSlots long, each SubtasksDone slot
// padded or truncated to its Subtasks slot, scalars coerced to their
// expected type. An absent month yields a blank record. Normalizing an
// already normalized record changes nothing.
func (s *Service) LoadGoalsForMonth(month string) storage.MonthlyGoals {
	g, _ := normalizeMonth(month, s.loadGoalsDoc()[month])
	return g
}

// CheckGoalsEditable returns an ArchivedError when the month's record
// is archived. Mutating flows call this before applying edits; reads
// are always allowed.
func (s *Service) CheckGoalsEditable(month string) error {
	if s.LoadGoalsForMonth(month).Archived {
		return ArchivedError{Month: month}
	}
	return nil
}

// SaveGoalsForMonth writes the month's record using a fresh
// read-modify-write of the whole document. When a record already exists
// for the month and g is effectively blank (no goal text, no completed
// flag, no reflection, no subtask text, no notes), the save is
// suppressed and false is returned: a stale empty editor must not wipe
// richer data saved elsewhere. Creation and completion timestamps are
// stamped here against the persisted record, so they survive any
// caller and are never overwritten once set. source is kept in the
// record as debug metadata.
func (s *Service) SaveGoalsForMonth(g storage.MonthlyGoals, source string) bool {
	doc := s.loadGoalsDoc()
	prev, hasPrev := normalizeMonth(g.Month, doc[g.Month])

	if hasPrev && effectivelyBlank(g) {
		return false
	}

	ts := timestamp()
	for i := 0; i < storage.GoalSlots; i++ {
		if hasPrev && prev.CreatedAt[i] != "" {
			g.CreatedAt[i] = prev.CreatedAt[i]
		} else if g.CreatedAt[i] == "" && strings.TrimSpace(g.Goals[i]) != "" {
			g.CreatedAt[i] = ts
		}
		if hasPrev && prev.CompletedAt[i] != "" {
			g.CompletedAt[i] = prev.CompletedAt[i]
		} else if g.CompletedAt[i] == "" && g.Completed[i] {
			g.CompletedAt[i] = ts
		}
	}

	s.writeMonth(doc, g, source)
	return true
}

// ClearGoalSlot resets one slot of a month to its blank state,
// including both timestamps, and writes directly. The blank-overwrite
// guard does not apply: this is the explicit clear flow, not an
// accidental empty save.
func (s *Service) ClearGoalSlot(month string, slot int) storage.MonthlyGoals {
	g := s.LoadGoalsForMonth(month)
	if slot < 0 || slot >= storage.GoalSlots {
		return g
	}
	g.Goals[slot] = ""
	g.Completed[slot] = false
	g.Categories[slot] = DefaultCategory
	g.Reflections[slot] = ""
	g.Subtasks[slot] = []string{}
	g.SubtasksDone[slot] = []bool{}
	g.CreatedAt[slot] = ""
	g.CompletedAt[slot] = ""

	s.writeMonth(s.loadGoalsDoc(), g, "clear")
	return g
}

// AutoArchivePastGoals marks every stored month before currentMonth as
// archived and returns how many changed. Records are touched in raw
// form so unknown fields survive. The current month and future months
// are never modified; running it again archives nothing new.
func (s *Service) AutoArchivePastGoals(currentMonth string) int {
	doc := s.loadGoalsDoc()
	archived := 0
	for month, raw := range doc {
		if month >= currentMonth {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil || m == nil {
			continue
		}
		if asBool(m["archived"]) {
			continue
		}
		m["archived"] = true
		data, err := json.Marshal(m)
		if err != nil {
			continue
		}
		doc[month] = data
		archived++
	}
	if archived > 0 {
		s.profiles.Store().Save(goalsFile, doc)
	}
	return archived
}

// AllGoals returns every stored month normalized, sorted ascending.
func (s *Service) AllGoals() []storage.MonthlyGoals {
	doc := s.loadGoalsDoc()
	months := make([]string, 0, len(doc))
	for month := range doc {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]storage.MonthlyGoals, 0, len(months))
	for _, month := range months {
		g, _ := normalizeMonth(month, doc[month])
		out = append(out, g)
	}
	return out
}

func (s *Service) writeMonth(doc goalsDoc, g storage.MonthlyGoals, source string) {
	rec := monthRecord{
		Month:        g.Month,
		Goals:        g.Goals,
		Completed:    g.Completed,
		Notes:        g.Notes,
		Archived:     g.Archived,
		Categories:   g.Categories,
		Reflections:  g.Reflections,
		Subtasks:     g.Subtasks,
		SubtasksDone: g.SubtasksDone,
		CreatedAt:    g.CreatedAt,
		CompletedAt:  g.CompletedAt,
		LastSavedBy:  source,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		s.log.Debugw("encode month record failed", "month", g.Month, "err", err)
		return
	}
	doc[g.Month] = data
	s.profiles.Store().Save(goalsFile, doc)
}

func blankGoals(month string) storage.MonthlyGoals {
	g := storage.MonthlyGoals{Month: month}
	for i := 0; i < storage.GoalSlots; i++ {
		g.Categories[i] = DefaultCategory
		g.Subtasks[i] = []string{}
		g.SubtasksDone[i] = []bool{}
	}
	return g
}

// normalizeMonth rebuilds one month from its raw stored form. The bool
// reports whether raw held a JSON object at all; anything else (absent
// month, corrupt entry) yields a blank record and false.
func normalizeMonth(month string, raw json.RawMessage) (storage.MonthlyGoals, bool) {
	g := blankGoals(month)
	if raw == nil {
		return g, false
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return g, false
	}

	fillStrings(&g.Goals, m["goals"], "")
	fillBools(&g.Completed, m["completed"])
	fillStrings(&g.Categories, m["categories"], DefaultCategory)
	fillStrings(&g.Reflections, m["reflections"], "")
	fillStrings(&g.CreatedAt, m["created_at"], "")
	fillStrings(&g.CompletedAt, m["completed_at"], "")
	g.Notes = asString(m["notes"], "")
	g.Archived = asBool(m["archived"])

	st := asList(m["subtasks"])
	sd := asList(m["subtasks_done"])
	for i := 0; i < storage.GoalSlots; i++ {
		items := []string{}
		if i < len(st) {
			for _, v := range asList(st[i]) {
				items = append(items, asString(v, ""))
			}
		}
		done := make([]bool, len(items))
		if i < len(sd) {
			for j, v := range asList(sd[i]) {
				if j < len(done) {
					done[j] = asBool(v)
				}
			}
		}
		g.Subtasks[i] = items
		g.SubtasksDone[i] = done
	}
	return g, true
}

// effectivelyBlank reports whether g carries no user content: all goal
// text, reflections and subtask text blank, nothing completed, no
// notes. Categories and the archived flag do not count as content.
func effectivelyBlank(g storage.MonthlyGoals) bool {
	for i := 0; i < storage.GoalSlots; i++ {
		if strings.TrimSpace(g.Goals[i]) != "" {
			return false
		}
		if g.Completed[i] {
			return false
		}
		if strings.TrimSpace(g.Reflections[i]) != "" {
			return false
		}
		for _, st := range g.Subtasks[i] {
			if strings.TrimSpace(st) != "" {
				return false
			}
		}
	}
	return strings.TrimSpace(g.Notes) == ""
}

func fillStrings(dst *[storage.GoalSlots]string, v any, def string) {
	items := asList(v)
	for i := 0; i < storage.GoalSlots && i < len(items); i++ {
		dst[i] = asString(items[i], def)
	}
}

func fillBools(dst *[storage.GoalSlots]bool, v any) {
	items := asList(v)
	for i := 0; i < storage.GoalSlots && i < len(items); i++ {
		dst[i] = asBool(items[i])
	}
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func asInt(v any) int {
	f, _ := v.(float64)
	return int(f)
}

// asBool accepts JSON booleans and the 0/1 integers some legacy
// documents stored; everything else reads as false.
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	default:
		return false
	}
}
