package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/silviuClosca/languageForge/internal/storage"
)

const trackerFile = "tracker.json"

// MonthStats summarizes one month of practice.
type MonthStats struct {
	Month         string
	DaysInMonth   int
	ActiveDays    int
	LongestStreak int
	SkillCounts   map[Skill]int
	SkillPercent  map[Skill]int
}

// WeekStats summarizes one Monday-to-Sunday week.
type WeekStats struct {
	Start      string
	ActiveDays int
	Percent    int
}

// Activity returns the full practice map, coercing each stored day to
// skill→bool. Days that fail to decode are skipped; a missing or
// corrupt document yields an empty map.
func (s *Service) Activity() storage.DailyActivity {
	raw := storage.Load(s.profiles.Store(), trackerFile, map[string]json.RawMessage{})
	out := make(storage.DailyActivity, len(raw))
	for date, dayRaw := range raw {
		var m map[string]any
		if err := json.Unmarshal(dayRaw, &m); err != nil || m == nil {
			continue
		}
		day := make(map[string]bool, len(m))
		for skill, v := range m {
			day[skill] = asBool(v)
		}
		out[date] = day
	}
	return out
}

// SaveActivity writes the whole practice map.
func (s *Service) SaveActivity(a storage.DailyActivity) {
	s.profiles.Store().Save(trackerFile, a)
}

// ToggleSkill flips one skill on one date and returns the new value.
// It always reloads from storage first, so a toggle never clobbers
// edits made through another surface with a stale in-memory copy. A
// date touched for the first time is seeded with every skill false.
func (s *Service) ToggleSkill(date string, skill Skill) bool {
	a := s.Activity()
	day := a[date]
	if day == nil {
		day = make(map[string]bool, len(Skills))
		for _, sk := range Skills {
			day[string(sk)] = false
		}
		a[date] = day
	}
	val := !day[string(skill)]
	day[string(skill)] = val
	s.SaveActivity(a)
	return val
}

// MonthActivityStats walks every day of a "YYYY-MM" month: a day with
// at least one skill done is active, the longest streak counts
// consecutive active days within the month, and per-skill percentages
// are taken against the days in the month (truncated). An unparseable
// month yields zero stats.
func (s *Service) MonthActivityStats(month string) MonthStats {
	stats := MonthStats{
		Month:        month,
		SkillCounts:  make(map[Skill]int, len(Skills)),
		SkillPercent: make(map[Skill]int, len(Skills)),
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return stats
	}
	stats.DaysInMonth = first.AddDate(0, 1, -1).Day()

	a := s.Activity()
	prefix := first.Format("2006-01")
	streak := 0
	for day := 1; day <= stats.DaysInMonth; day++ {
		date := fmt.Sprintf("%s-%02d", prefix, day)
		if anySkillDone(a, date) {
			stats.ActiveDays++
			streak++
			if streak > stats.LongestStreak {
				stats.LongestStreak = streak
			}
		} else {
			streak = 0
		}
		for _, skill := range Skills {
			if a.Done(date, string(skill)) {
				stats.SkillCounts[skill]++
			}
		}
	}
	for _, skill := range Skills {
		stats.SkillPercent[skill] = 100 * stats.SkillCounts[skill] / stats.DaysInMonth
	}
	return stats
}

// WeekConsistency reports active days in the Monday-started week
// containing date ("YYYY-MM-DD") and the truncated percentage of 7.
func (s *Service) WeekConsistency(date string) WeekStats {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return WeekStats{}
	}
	offset := (int(t.Weekday()) + 6) % 7
	start := t.AddDate(0, 0, -offset)

	a := s.Activity()
	stats := WeekStats{Start: start.Format("2006-01-02")}
	for i := 0; i < 7; i++ {
		if anySkillDone(a, start.AddDate(0, 0, i).Format("2006-01-02")) {
			stats.ActiveDays++
		}
	}
	stats.Percent = 100 * stats.ActiveDays / 7
	return stats
}

func anySkillDone(a storage.DailyActivity, date string) bool {
	for _, skill := range Skills {
		if a.Done(date, string(skill)) {
			return true
		}
	}
	return false
}
