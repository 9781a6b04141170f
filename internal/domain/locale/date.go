package locale

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel is returned for timestamps that could not be parsed.
// Downstream code treats it as "date unknown", never as a real date.
var Sentinel = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// monthAbbreviations maps localized month-name abbreviations (2-5
// letters, as printed on marketplace invoices in en/de/fr/es/it/nl)
// to month numbers.
var monthAbbreviations = map[string]time.Month{
	"jan": time.January, "janv": time.January, "genn": time.January,
	"gen": time.January, "ene": time.January,
	"febr": time.February, "feb": time.February, "févr": time.February,
	"fév": time.February, "fev": time.February, "febbr": time.February,
	"febb": time.February,
	"maar": time.March, "maa": time.March, "mar": time.March,
	"mars": time.March, "märz": time.March, "mär": time.March,
	"marz": time.March,
	"apr": time.April, "avr": time.April,
	"mei": time.May, "may": time.May, "mai": time.May, "maj": time.May,
	"magg": time.May, "mag": time.May, "mayo": time.May,
	"jun": time.June, "juin": time.June, "giug": time.June,
	"giu": time.June,
	"jul": time.July, "juil": time.July, "jui": time.July,
	"lugl": time.July, "lug": time.July,
	"aug": time.August, "août": time.August, "aoû": time.August,
	"agos": time.August, "ago": time.August,
	"sept": time.September, "sep": time.September, "sett": time.September,
	"set": time.September,
	"okt": time.October, "otto": time.October, "ott": time.October,
	"nov": time.November,
	"dec": time.December, "déc": time.December, "dez": time.December,
	"dic": time.December,
}

var (
	// "9 ene. 2018 12:33:58 UTC"
	namedMonthDate = regexp.MustCompile(`^(\d{1,2})\s*([^\d\s.\-_]{2,5})\.?\s*(\d{2,4})\s*(\d{1,2}):(\d{1,2}):(\d{1,2})\s[A-Z]+$`)
	// "03.01.2018 09:41:31 UTC"
	numericDate = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2,4})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})\s[A-Z]+$`)
)

// fallbackLayouts are tried when neither export shape matches.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime parses a marketplace timestamp string. Two shapes are
// accepted: day + localized month name + year + time + timezone token,
// and the fully numeric day.month.year form. Anything else falls back
// to standard layouts; when all of that fails it returns Sentinel and
// false so a bad date never aborts a run.
func ParseDateTime(raw string) (time.Time, bool) {
	if m := namedMonthDate.FindStringSubmatch(raw); m != nil {
		if month, ok := lookupMonth(m[2]); ok {
			if ts, ok := buildTime(m[3], month, m[1], m[4], m[5], m[6]); ok {
				return ts, true
			}
		}
	}
	if m := numericDate.FindStringSubmatch(raw); m != nil {
		monthNum, _ := strconv.Atoi(m[2])
		if monthNum >= 1 && monthNum <= 12 {
			if ts, ok := buildTime(m[3], time.Month(monthNum), m[1], m[4], m[5], m[6]); ok {
				return ts, true
			}
		}
	}
	for _, layout := range fallbackLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return Sentinel, false
}

func lookupMonth(name string) (time.Month, bool) {
	month, ok := monthAbbreviations[strings.ToLower(name)]
	return month, ok
}

func buildTime(year string, month time.Month, day, hour, minute, second string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	d, _ := strconv.Atoi(day)
	h, _ := strconv.Atoi(hour)
	mi, _ := strconv.Atoi(minute)
	sec, _ := strconv.Atoi(second)

	ts := time.Date(y, month, d, h, mi, sec, 0, time.UTC)
	// time.Date normalizes out-of-range components ("32.01." becomes
	// February 1st); reject anything that did not round-trip.
	if ts.Year() != y || ts.Month() != month || ts.Day() != d ||
		ts.Hour() != h || ts.Minute() != mi || ts.Second() != sec {
		return time.Time{}, false
	}
	return ts, true
}
