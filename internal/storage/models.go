package storage

// GoalSlots is the fixed number of goal slots per month.
const GoalSlots = 3

// PlanSlots is the fixed number of daily plan task slots.
const PlanSlots = 4

// Profile identifies one isolated data set. ID is a filesystem-safe slug
// derived once at creation and never changed; DisplayName is free text.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
	LastUsed    string `json:"last_used"`
}

// registryDoc is the on-disk shape of profiles.json.
type registryDoc struct {
	ActiveProfile string    `json:"active_profile"`
	Profiles      []Profile `json:"profiles"`
	Version       string    `json:"version,omitempty"`
}

// MonthlyGoals is the normalized in-memory record for one month. The
// fixed-size arrays carry the "exactly three slots" invariant in the
// type; SubtasksDone[i] always has the same length as Subtasks[i] after
// a load. On disk the record lives under its month key in goals_v2.json.
type MonthlyGoals struct {
	Month        string
	Goals        [GoalSlots]string
	Completed    [GoalSlots]bool
	Categories   [GoalSlots]string
	Reflections  [GoalSlots]string
	Subtasks     [GoalSlots][]string
	SubtasksDone [GoalSlots][]bool
	CreatedAt    [GoalSlots]string
	CompletedAt  [GoalSlots]string
	Notes        string
	Archived     bool
}

// RadarSnapshot holds one month's self-assessment, one integer per
// skill. Zero means "not entered"; the nominal entry range is 1-5.
type RadarSnapshot struct {
	Month     string `json:"month"`
	Reading   int    `json:"reading"`
	Listening int    `json:"listening"`
	Speaking  int    `json:"speaking"`
	Writing   int    `json:"writing"`
}

// DailyActivity maps "YYYY-MM-DD" dates to per-skill done flags. The
// map is sparse: an absent date or skill means not practiced.
type DailyActivity map[string]map[string]bool

// Done reports whether skill was practiced on date. Absent dates and
// skills read as false.
func (a DailyActivity) Done(date, skill string) bool {
	return a[date][skill]
}

// DailyPlan is the day's task list plus the legacy startup flag.
type DailyPlan struct {
	Tasks         [PlanSlots]string `json:"tasks"`
	ShowOnStartup bool              `json:"show_on_startup"`
}

// ResourceItem is one curated learning resource. The list order in
// resources.json is the display order; nothing deduplicates entries.
type ResourceItem struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Link     string   `json:"link"`
	Notes    string   `json:"notes"`
	DeckName string   `json:"deck_name,omitempty"`
	Tags     []string `json:"tags"`
}

// Settings is the process-wide preference document. It is stored at the
// data root, not per profile.
type Settings struct {
	FontSize      string `json:"font_size"`
	OpenOnStartup bool   `json:"open_on_startup"`
	Theme         string `json:"theme"`
}
