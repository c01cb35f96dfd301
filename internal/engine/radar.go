package engine

import (
	"encoding/json"
	"math"
	"time"

	"github.com/silviuClosca/languageForge/internal/storage"
)

const radarFile = "radar.json"

// maxDeviation is the mean absolute deviation that maps to a balance
// score of zero; roughly the worst case for 1-5 ratings.
const maxDeviation = 2.0

type radarDoc map[string]json.RawMessage

func (s *Service) loadRadarDoc() radarDoc {
	doc := storage.Load(s.profiles.Store(), radarFile, radarDoc{})
	if doc == nil {
		return radarDoc{}
	}
	return doc
}

// SaveRadarSnapshot upserts the month's snapshot. Ratings are clamped
// into [0,5] on the way in; loads pass stored values through as-is.
func (s *Service) SaveRadarSnapshot(snap storage.RadarSnapshot) {
	snap.Reading = clampRating(snap.Reading)
	snap.Listening = clampRating(snap.Listening)
	snap.Speaking = clampRating(snap.Speaking)
	snap.Writing = clampRating(snap.Writing)

	doc := s.loadRadarDoc()
	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Debugw("encode radar snapshot failed", "month", snap.Month, "err", err)
		return
	}
	doc[snap.Month] = data
	s.profiles.Store().Save(radarFile, doc)
}

// Snapshots returns every stored snapshot keyed by month.
func (s *Service) Snapshots() map[string]storage.RadarSnapshot {
	doc := s.loadRadarDoc()
	out := make(map[string]storage.RadarSnapshot, len(doc))
	for month, raw := range doc {
		out[month] = decodeSnapshot(month, raw)
	}
	return out
}

// SnapshotForMonth returns the month's snapshot, zero-valued when none
// is stored.
func (s *Service) SnapshotForMonth(month string) storage.RadarSnapshot {
	raw, ok := s.loadRadarDoc()[month]
	if !ok {
		return storage.RadarSnapshot{Month: month}
	}
	return decodeSnapshot(month, raw)
}

// PreviousSnapshot returns the stored snapshot immediately preceding
// month in sorted order. It reports false when month itself has no
// snapshot or nothing earlier is stored; trends are only shown for
// months that have data of their own.
func (s *Service) PreviousSnapshot(month string) (storage.RadarSnapshot, bool) {
	doc := s.loadRadarDoc()
	if _, ok := doc[month]; !ok {
		return storage.RadarSnapshot{}, false
	}
	prev := ""
	for m := range doc {
		if m < month && m > prev {
			prev = m
		}
	}
	if prev == "" {
		return storage.RadarSnapshot{}, false
	}
	return decodeSnapshot(prev, doc[prev]), true
}

// DaysSinceLastSnapshot returns whole days between the first of the
// most recent snapshot month and today. It reports false when nothing
// is stored or the newest month key does not parse.
func (s *Service) DaysSinceLastSnapshot() (int, bool) {
	doc := s.loadRadarDoc()
	if len(doc) == 0 {
		return 0, false
	}
	last := ""
	for month := range doc {
		if month > last {
			last = month
		}
	}
	t, err := time.Parse("2006-01-02", last+"-01")
	if err != nil {
		return 0, false
	}
	n := now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(t) / (24 * time.Hour)), true
}

// BalanceIndex maps a snapshot to a 0-100 score: the closer the four
// ratings sit to each other, the higher the score. Mean absolute
// deviation 0 maps to 100 and maxDeviation or more maps to 0. It
// reports false when all four ratings are zero, meaning nothing was
// entered.
func BalanceIndex(snap storage.RadarSnapshot) (int, bool) {
	values := [...]float64{
		float64(snap.Reading),
		float64(snap.Listening),
		float64(snap.Speaking),
		float64(snap.Writing),
	}
	entered := false
	for _, v := range values {
		if v != 0 {
			entered = true
			break
		}
	}
	if !entered {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	var dev float64
	for _, v := range values {
		dev += math.Abs(v - avg)
	}
	dev /= float64(len(values))

	score := 100 * (1 - math.Min(dev, maxDeviation)/maxDeviation)
	n := int(math.Round(score))
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return n, true
}

// Trends compares two snapshots skill by skill.
func Trends(current, previous storage.RadarSnapshot) map[Skill]Trend {
	trends := make(map[Skill]Trend, len(Skills))
	for _, skill := range Skills {
		cur := Rating(current, skill)
		prev := Rating(previous, skill)
		switch {
		case cur > prev:
			trends[skill] = TrendUp
		case cur < prev:
			trends[skill] = TrendDown
		default:
			trends[skill] = TrendSame
		}
	}
	return trends
}

// Rating returns one skill's value from a snapshot.
func Rating(snap storage.RadarSnapshot, skill Skill) int {
	switch skill {
	case SkillReading:
		return snap.Reading
	case SkillListening:
		return snap.Listening
	case SkillSpeaking:
		return snap.Speaking
	case SkillWriting:
		return snap.Writing
	default:
		return 0
	}
}

func decodeSnapshot(month string, raw json.RawMessage) storage.RadarSnapshot {
	snap := storage.RadarSnapshot{Month: month}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return snap
	}
	snap.Reading = asInt(m["reading"])
	snap.Listening = asInt(m["listening"])
	snap.Speaking = asInt(m["speaking"])
	snap.Writing = asInt(m["writing"])
	return snap
}

func clampRating(v int) int {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
