package contact

import "time"

// Upcoming is one result of the birthday window query.
type Upcoming struct {
	// Name is the record key.
	Name string

	// Birthday is the stored date of birth.
	Birthday Birthday

	// Date is the celebrated day inside the window, in the location of "today".
	Date time.Time

	// Age is the age the person turns on Date.
	Age int
}

// UpcomingBirthdays returns the records whose next birthday falls within the
// inclusive window [today, today+days], in Directory order.
//
// A birthday already past this year is taken from next year, so the window
// crosses Dec 31. Feb 29 is celebrated on Mar 1 in non-leap years.
func (d *Directory) UpcomingBirthdays(today time.Time, days int) []Upcoming {
	if days < 0 {
		days = 0
	}
	loc := today.Location()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, days)

	var out []Upcoming
	for _, r := range d.Records() {
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		next := nextOccurrence(start, b.Date())
		if next.After(end) {
			continue
		}
		out = append(out, Upcoming{
			Name:     r.name.value,
			Birthday: b,
			Date:     next,
			Age:      next.Year() - b.Date().Year(),
		})
	}
	return out
}

// nextOccurrence maps birthDate onto the year of todayStart, or onto the next
// year if that day has already passed.
func nextOccurrence(todayStart time.Time, birthDate time.Time) time.Time {
	loc := todayStart.Location()

	// time.Date normalizes Feb 29 to March 1st if the year is not a leap year.
	candidate := time.Date(todayStart.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(todayStart.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}
	return candidate
}
