package engine

import (
	"fmt"
	"strings"
	"time"
)

// ParseSkill parses user input to a Skill.
// Supported: reading, listening, speaking, writing, plus short forms
// read, listen, speak, write.
func ParseSkill(input string) (Skill, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "reading", "read":
		return SkillReading, nil
	case "listening", "listen":
		return SkillListening, nil
	case "speaking", "speak":
		return SkillSpeaking, nil
	case "writing", "write":
		return SkillWriting, nil
	default:
		return "", fmt.Errorf("unknown skill %q (one of reading, listening, speaking, writing)", input)
	}
}

// ParseMonth validates a "YYYY-MM" month id and returns it in canonical
// zero-padded form. Empty input means the current month.
func ParseMonth(input string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return CurrentMonthID(), nil
	}
	t, err := time.Parse("2006-01", in)
	if err != nil {
		return "", fmt.Errorf("invalid month %q (expected YYYY-MM)", in)
	}
	return t.Format("2006-01"), nil
}

// ParseDate validates a "YYYY-MM-DD" date and returns it in canonical
// zero-padded form. Empty input means today.
func ParseDate(input string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return Today(), nil
	}
	t, err := time.Parse("2006-01-02", in)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", in)
	}
	return t.Format("2006-01-02"), nil
}

// ParseTags splits a comma-separated tag string, trimming whitespace
// and dropping blanks.
func ParseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
