package engine

import "fmt"

// ArchivedError indicates a month's goals are archived and refuse edits.
// This is returned by mutation checks and should be shown to the user.
type ArchivedError struct {
	Month string
}

func (e ArchivedError) Error() string {
	if e.Month == "" {
		return "month is archived and read-only"
	}
	return fmt.Sprintf("month %s is archived and read-only", e.Month)
}
