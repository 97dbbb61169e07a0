package calendar_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/calendar"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contact"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func directoryWith(t *testing.T, entries map[string]string) *contact.Directory {
	t.Helper()
	d := contact.NewDirectory()
	for name, bday := range entries {
		r, err := contact.NewRecord(name)
		require.NoError(t, err)
		if bday != "" {
			require.NoError(t, r.AddBirthday(bday))
		}
		d.AddRecord(r)
	}
	return d
}

func TestGenerate_Success(t *testing.T) {
	d := directoryWith(t, map[string]string{"John Doe": "01.01.2000", "No Birthday": ""})
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)},
	}

	icsData, count, err := gen.Generate(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "Only contacts with a birthday are counted")

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR", "Should start with VCALENDAR")
	assert.Contains(t, icsStr, "PRODID:"+config.ICalProdid)
	assert.Contains(t, icsStr, "SUMMARY:Birthday: John Doe (25)", "Should contain the event summary")
	assert.Contains(t, icsStr, "DTSTAMP:20250101T100000Z")
	assert.NotContains(t, icsStr, "No Birthday")
}

func TestGenerate_ParsesBack(t *testing.T) {
	d := directoryWith(t, map[string]string{"John Doe": "14.07.1985"})
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	icsData, _, err := gen.Generate(context.Background(), d)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(strings.NewReader(string(icsData))).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 3)

	r, _ := d.Find("John Doe")
	uid, err := events[1].Props.Text(config.PropUID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s-2025@%s", r.UID(), config.ICalDomain), uid, "UIDs are stable across exports")
}

func TestGenerate_YearRange(t *testing.T) {
	// Events for previous, current and next year (3 in total).
	d := directoryWith(t, map[string]string{"Range Test": "31.12.1990"})
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	icsData, _, err := gen.Generate(context.Background(), d)
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20241231", "Should include previous year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20251231", "Should include current year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20261231", "Should include next year")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestGenerate_LeapDay(t *testing.T) {
	d := directoryWith(t, map[string]string{"Leap Baby": "29.02.2000"})
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
	}

	icsData, _, err := gen.Generate(context.Background(), d)
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240229", "2024 is a leap year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250301", "Non-leap year falls on March 1st")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260301")
}

func TestGenerate_BabyBornThisYear(t *testing.T) {
	// Baby born on 2025-05-01, now is 2025-01-01: 2024 skipped, 2025 birth, 2026 one year.
	d := directoryWith(t, map[string]string{"Baby": "01.05.2025"})
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		FormatSummary: func(name string, age int) string {
			if age == 0 {
				return fmt.Sprintf("Birthday: %s (Birth)", name)
			}
			return fmt.Sprintf("Birthday: %s (%d)", name, age)
		},
	}

	icsData, _, err := gen.Generate(context.Background(), d)
	require.NoError(t, err)

	icsStr := string(icsData)
	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:20240501", "Should NOT generate event before birth")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250501")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (Birth)")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260501")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (1)")
	assert.Equal(t, 2, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestGenerate_EmptyDirectory(t *testing.T) {
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	icsData, count, err := gen.Generate(context.Background(), contact.NewDirectory())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, config.StubVCalendar, string(icsData))
}

func TestGenerate_FutureBirth(t *testing.T) {
	d := directoryWith(t, map[string]string{"Future Baby": "01.01.2027"})
	gen := &calendar.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	icsData, count, err := gen.Generate(context.Background(), d)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NotContains(t, string(icsData), "BEGIN:VEVENT")
}

func TestGenerate_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &calendar.Generator{Clock: MockClock{CurrentTime: time.Now()}}
	_, _, err := gen.Generate(ctx, directoryWith(t, map[string]string{"John Doe": "01.01.2000"}))

	assert.Equal(t, context.Canceled, err, "Should return context canceled error")
}
