package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"group-scheduler/core/constants"
	"group-scheduler/modules/calendar/entity"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

const (
	icsProductID      = "-//group-scheduler//availability//EN"
	icsFloatingLayout = "20060102T150405"
)

var rruleWeekdays = map[string]rrule.Weekday{
	"MONDAY":    rrule.MO,
	"TUESDAY":   rrule.TU,
	"WEDNESDAY": rrule.WE,
	"THURSDAY":  rrule.TH,
	"FRIDAY":    rrule.FR,
	"SATURDAY":  rrule.SA,
	"SUNDAY":    rrule.SU,
}

// BuildICS renders blocks as weekly recurring events starting on or after the
// date of now, and exceptions as all-day events. Block times are floating
// (no time zone).
func BuildICS(groupID uuid.UUID, blocks entity.RecurringBlocks, exceptions entity.Exceptions, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("Group availability")

	stamp := now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for _, b := range blocks {
		start, end, rule, err := weeklyOccurrence(b, today)
		if err != nil {
			return nil, err
		}

		ev := cal.AddEvent(entryUID(groupID, "block", b.Weekday, b.StartTime, b.EndTime))
		ev.SetDtStampTime(stamp)
		ev.SetSummary("Available")
		ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(icsFloatingLayout))
		ev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(icsFloatingLayout))
		ev.AddRrule(rule)
		ev.SetTimeTransparency(ical.TransparencyTransparent)
	}

	for _, e := range exceptions {
		startDate, err := time.Parse(constants.DateLayout, e.StartDate)
		if err != nil {
			return nil, fmt.Errorf("exception start date %q: %w", e.StartDate, err)
		}
		endDate, err := time.Parse(constants.DateLayout, e.EndDate)
		if err != nil {
			return nil, fmt.Errorf("exception end date %q: %w", e.EndDate, err)
		}

		ev := cal.AddEvent(entryUID(groupID, "exception", e.StartDate, e.EndDate, strconv.FormatBool(e.Available)))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(startDate)
		// DTEND is exclusive for all-day events.
		ev.SetAllDayEndAt(endDate.AddDate(0, 0, 1))
		if e.Available {
			ev.SetSummary("Available")
			ev.SetTimeTransparency(ical.TransparencyTransparent)
		} else {
			ev.SetSummary("Unavailable")
			ev.SetTimeTransparency(ical.TransparencyOpaque)
		}
	}

	return []byte(cal.Serialize()), nil
}

// weeklyOccurrence returns the first occurrence of b on or after day together
// with the RRULE value describing the recurrence.
func weeklyOccurrence(b entity.RecurringBlock, day time.Time) (time.Time, time.Time, string, error) {
	wd, ok := rruleWeekdays[b.Weekday]
	if !ok {
		return time.Time{}, time.Time{}, "", fmt.Errorf("unknown weekday %q", b.Weekday)
	}
	st, err := time.Parse(constants.TimeLayout, b.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("block start time %q: %w", b.StartTime, err)
	}
	et, err := time.Parse(constants.TimeLayout, b.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("block end time %q: %w", b.EndTime, err)
	}

	dtstart := time.Date(day.Year(), day.Month(), day.Day(), st.Hour(), st.Minute(), 0, 0, time.UTC)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{wd},
		Dtstart:   dtstart,
	})
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}
	first := r.After(dtstart, true)

	rule := rrule.ROption{Freq: rrule.WEEKLY, Byweekday: []rrule.Weekday{wd}}
	return first, first.Add(et.Sub(st)), rule.RRuleString(), nil
}

func entryUID(groupID uuid.UUID, parts ...string) string {
	return uuid.NewSHA1(groupID, []byte(strings.Join(parts, "|"))).String() + "@group-scheduler"
}
