package service

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD or YYYYMMDD")

var Seoul = loadSeoul()

func loadSeoul() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// ParseServeDate turns the date selector value into a calendar day in Seoul.
// An empty value selects the current day.
func ParseServeDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		local := now.In(Seoul)
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Seoul), nil
	}

	for _, layout := range []string{"2006-01-02", "20060102"} {
		if len(raw) != len(layout) {
			continue
		}
		if date, err := time.ParseInLocation(layout, raw, Seoul); err == nil {
			return date, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func NEISDate(date time.Time) string {
	return date.Format("20060102")
}
