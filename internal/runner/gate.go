package runner

import "time"

// Gate decides whether a run executes at all. Evaluation runs on the
// configured weekday; a force flag or an explicit date range overrides
// the schedule. Skipping is a valid, non-error outcome.
type Gate struct {
	ScheduleDay time.Weekday
}

func (g Gate) ShouldRun(now time.Time, force bool, explicitRange bool) bool {
	if force || explicitRange {
		return true
	}
	return now.Weekday() == g.ScheduleDay
}
