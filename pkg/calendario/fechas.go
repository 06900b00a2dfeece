package calendario

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Lima is the fixed civil timezone every date computation runs in, so a date
// maps to the same weekday no matter where the service is deployed.
var Lima = time.FixedZone("UTC-5", -5*60*60)

const dateLayout = "2006-01-02"

var nowFunc = time.Now

var weekdays = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miércoles": time.Wednesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sábado":    time.Saturday,
	"sabado":    time.Saturday,
}

// DateRange lists every date of the inclusive range [start, end] in
// YYYY-MM-DD form. Unparseable dates or start after end produce an empty
// range; the condition is logged rather than returned, and expansion simply
// yields nothing for that event.
func DateRange(start, end string) []string {
	from, err := time.ParseInLocation(dateLayout, start, Lima)
	if err != nil {
		log.Warnf("invalid start date %q: %v", start, err)
		return nil
	}
	to, err := time.ParseInLocation(dateLayout, end, Lima)
	if err != nil {
		log.Warnf("invalid end date %q: %v", end, err)
		return nil
	}
	if from.After(to) {
		log.Warnf("start date %s is after end date %s", start, end)
		return nil
	}
	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

// Expand materializes one event per concrete calendar date the source event
// occupies, with start and end both rewritten to that date. Without a
// repetition list the whole range is emitted; with one ("Lunes,Miércoles",
// case-insensitive, accented or not), only matching weekdays are. The source
// event is never modified.
func Expand(ev Event) []Event {
	start := ev.Get(KeyFechaInicio)
	end := ev.Get(KeyFechaFin)
	repeated := strings.TrimSpace(ev.Get(KeyDiasRepetidos))

	if repeated == "" {
		if start == end || end == "" {
			return []Event{ev.onDate(start)}
		}
		var out []Event
		for _, date := range DateRange(start, end) {
			out = append(out, ev.onDate(date))
		}
		return out
	}

	wanted := make(map[time.Weekday]bool)
	for _, name := range strings.Split(repeated, ",") {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			log.Warnf("unknown weekday %q in repetition list", strings.TrimSpace(name))
			continue
		}
		wanted[day] = true
	}

	var out []Event
	for _, date := range DateRange(start, end) {
		d, err := time.ParseInLocation(dateLayout, date, Lima)
		if err != nil {
			continue
		}
		if wanted[d.Weekday()] {
			out = append(out, ev.onDate(date))
		}
	}
	return out
}

// FormatDateLocal renders a YYYY-MM-DD date as dd-mm-yy for display. Values
// that do not parse are returned unchanged.
func FormatDateLocal(date string) string {
	d, err := time.ParseInLocation(dateLayout, date, Lima)
	if err != nil {
		return date
	}
	return d.Format("02-01-06")
}

// Today returns the current date in the fixed UTC-5 zone.
func Today() string {
	return nowFunc().In(Lima).Format(dateLayout)
}
