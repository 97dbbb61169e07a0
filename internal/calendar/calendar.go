package calendar

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contact"
)

// Generator converts the birthdays of a Directory into an iCalendar feed.
type Generator struct {
	Clock contact.Clock // Interface for time mocking.

	// FormatSummary allows the command layer to inject localized event titles.
	// age is 0 for the year of birth.
	FormatSummary func(name string, age int) string
}

// Generate builds the calendar. It returns the ICS data and the number of
// contacts that contributed at least one event.
func (g *Generator) Generate(ctx context.Context, d *contact.Directory) ([]byte, int, error) {
	start := time.Now()
	cal := ical.NewCalendar()

	// Set standard iCalendar headers
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// Use Local time for logic, convert to UTC only for ICS stamping.
	// Birthdays are defined by the local calendar date of the person, not an absolute UTC timestamp.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	withEvents := 0
	for _, r := range d.Records() {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		b, ok := r.Birthday()
		if !ok {
			continue
		}

		events := g.createEvents(r.Name().String(), b.Date(), now, r.UID().String())
		if len(events) > 0 {
			withEvents++
		}
		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// An empty directory still yields a valid, minimal VCALENDAR.
	if len(cal.Children) == 0 {
		g.logSuccess(0, 0, start)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(withEvents, len(cal.Children), start)
	return buf.Bytes(), withEvents, nil
}

func (g *Generator) logSuccess(contacts, events int, start time.Time) {
	slog.Info(config.MsgCalendarDone,
		config.LogKeyComponent, config.CompCalendar,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyCount, contacts),
			slog.Int(config.LogKeyEvents, events),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
}

// createEvents generates calendar events for CurrentYear-1, CurrentYear, and CurrentYear+1.
// It ensures no events are created before the person is born.
func (g *Generator) createEvents(name string, birthDate time.Time, now time.Time, uidBase string) []*ical.Event {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	for _, y := range targetYears {
		if y < birthDate.Year() {
			continue
		}
		age := y - birthDate.Year()

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, g.summary(name, age))

		// time.Date normalizes Feb 29 to March 1st in non-leap years.
		eventDate := time.Date(y, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events
}

func (g *Generator) summary(name string, age int) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(name, age)
	}
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummary, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}
