package engine

// Skill is one of the four tracked language skills.
type Skill string

const (
	SkillReading   Skill = "reading"
	SkillListening Skill = "listening"
	SkillSpeaking  Skill = "speaking"
	SkillWriting   Skill = "writing"
)

// Skills lists the tracked skills in display order.
var Skills = []Skill{SkillReading, SkillListening, SkillSpeaking, SkillWriting}

func (s Skill) IsValid() bool {
	switch s {
	case SkillReading, SkillListening, SkillSpeaking, SkillWriting:
		return true
	default:
		return false
	}
}

// Trend is the direction of a skill rating between two snapshots.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendSame Trend = "same"
)

// GoalCategories are the selectable goal categories, first entry is the
// slot default.
var GoalCategories = []string{
	"General",
	"Reading",
	"Listening",
	"Speaking",
	"Writing",
	"Vocabulary",
	"Grammar",
}

// DefaultCategory fills category slots that were never set.
const DefaultCategory = "General"
