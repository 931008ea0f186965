package calendar

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var monthNames = [12]string{
	"حمل", "ثور", "جوزا", "سرطان", "اسد", "سنبله",
	"میزان", "عقرب", "قوس", "جدی", "دلو", "حوت",
}

// approximationDay stands in for the unknown day when only year and month are recorded.
const approximationDay = 15

// MonthName returns the Persian name of Jalaali month m, or "Month m" when m is out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("Month %d", m)
	}
	return monthNames[m-1]
}

// MonthLabel renders the Jalaali month that contains t as "<name> <year>".
func MonthLabel(t time.Time) string {
	d, err := FromTime(t)
	if err != nil {
		return t.UTC().Format("2006-01")
	}
	return fmt.Sprintf("%s %d", MonthName(d.Month), d.Year)
}

// ApproximateGregorian converts a Jalaali year and month without a day to midnight UTC of the
// 15th of that month. It reports false when either part is missing, non-numeric or the month
// is outside [1,12].
func ApproximateGregorian(year, month string) (time.Time, bool) {
	jy, ok := parseInt(year)
	if !ok || jy == 0 {
		return time.Time{}, false
	}
	jm, ok := parseInt(month)
	if !ok || jm < 1 || jm > 12 {
		return time.Time{}, false
	}
	t, err := ToGregorian(jy, jm, approximationDay)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseJalaali parses "YYYY-MM-DD" or "YYYY/MM/DD" as a Jalaali day.
func ParseJalaali(s string) (Date, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !IsValid(d.Year, d.Month, d.Day) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseDay reads a "YYYY-MM-DD" day, as a Jalaali date when jalaali is set and as a Gregorian
// date otherwise. The result is UTC midnight.
func ParseDay(s string, jalaali bool) (time.Time, error) {
	if !jalaali {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return t, nil
	}
	d, err := ParseJalaali(s)
	if err != nil {
		return time.Time{}, err
	}
	return ToGregorian(d.Year, d.Month, d.Day)
}

// GregorianOrNow converts d and falls back to today's date (UTC midnight) when d does not exist.
func GregorianOrNow(ctx context.Context, d Date) time.Time {
	t, err := ToGregorian(d.Year, d.Month, d.Day)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("jalaali", d.String()).Msg("falling back to current date")
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t
}

func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
