package publish

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/slide-cms-api/internal/models"
)

// Window is the effective time/day publishing constraint applied to an
// article after merging row-level overrides with its own fields.
type Window struct {
	Start *string
	End   *string
	Days  *string
}

// EffectiveWindow resolves the window actually applied to an article.
// For a sub-article the parent row's override fields take precedence
// field-by-field over the sub-article's own; for a main article its own
// row-override fields take precedence over its individual fields. A row
// can override the start time without touching the days.
func EffectiveWindow(a *models.Article, parent *models.Article) Window {
	row := a
	if parent != nil {
		row = parent
	}
	return Window{
		Start: pick(row.RowPublishTimeStart, a.PublishTimeStart),
		End:   pick(row.RowPublishTimeEnd, a.PublishTimeEnd),
		Days:  pick(row.RowPublishDays, a.PublishDays),
	}
}

func pick(override, own *string) *string {
	if override != nil && *override != "" {
		return override
	}
	return own
}

// IsAllowed reports whether the given instant falls inside the window.
// Both the time check and the day check must pass; absence of a
// constraint always passes.
func (w Window) IsAllowed(now time.Time) bool {
	return w.timeAllowed(now) && w.daysAllowed(now)
}

func (w Window) timeAllowed(now time.Time) bool {
	if w.Start == nil || *w.Start == "" || w.End == nil || *w.End == "" {
		return true
	}

	start, okStart := parseMinutes(*w.Start)
	end, okEnd := parseMinutes(*w.End)
	if !okStart || !okEnd {
		// Malformed stored values are rejected at the write boundary;
		// anything that slipped through fails open.
		return true
	}

	minute := now.Hour()*60 + now.Minute()

	if start <= end {
		return minute >= start && minute <= end
	}
	// Window crosses midnight: allowed on both arcs
	return minute >= start || minute <= end
}

func (w Window) daysAllowed(now time.Time) bool {
	if w.Days == nil {
		return true
	}
	spec := strings.TrimSpace(*w.Days)
	if spec == "" || strings.EqualFold(spec, models.PublishDaysAll) {
		return true
	}

	var days []string
	if err := json.Unmarshal([]byte(spec), &days); err != nil {
		// Fail open: a visibility bug should show content, not hide it
		return true
	}

	today := strings.ToLower(now.Weekday().String())
	for _, d := range days {
		if strings.ToLower(strings.TrimSpace(d)) == today {
			return true
		}
	}
	return false
}

// parseMinutes converts an "HH:MM" string to minutes since midnight
func parseMinutes(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
