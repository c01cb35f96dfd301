package engine

import (
	"github.com/silviuClosca/languageForge/internal/storage"
)

const dailyPlanFile = "dailyplan.json"

// LoadDailyPlan returns the plan with exactly PlanSlots task slots.
// Older documents stored morning/afternoon/evening instead of a tasks
// list; when no tasks are stored those seed the first three slots.
func (s *Service) LoadDailyPlan() storage.DailyPlan {
	m := storage.Load(s.profiles.Store(), dailyPlanFile, map[string]any{})

	var p storage.DailyPlan
	items := asList(m["tasks"])
	if len(items) == 0 {
		items = []any{m["morning"], m["afternoon"], m["evening"]}
	}
	for i := 0; i < storage.PlanSlots && i < len(items); i++ {
		p.Tasks[i] = asString(items[i], "")
	}
	p.ShowOnStartup = asBool(m["show_on_startup"])
	return p
}

// SaveDailyPlan writes the plan. Legacy fields are dropped; the saved
// document always has the tasks-list shape.
func (s *Service) SaveDailyPlan(p storage.DailyPlan) {
	s.profiles.Store().Save(dailyPlanFile, p)
}

// ShowDashboardOnStartup reports whether the dashboard should open
// without being asked for. Settings are the source of truth; the legacy
// per-profile plan flag is respected when settings say no.
func (s *Service) ShowDashboardOnStartup() bool {
	if s.LoadSettings().OpenOnStartup {
		return true
	}
	return s.LoadDailyPlan().ShowOnStartup
}
