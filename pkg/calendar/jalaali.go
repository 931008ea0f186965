// Package calendar converts between the Gregorian and the Persian solar (Jalaali) calendars.
//
// Conversion is delegated to go-jalaali, which is exact for Jalaali years -61 through 3177. This
// package adds Gregorian validation, a comparable Date value and UTC midnight results.
package calendar

import (
	"errors"
	"fmt"
	"time"

	jalaali "github.com/jalaali/go-jalaali"
)

var ErrInvalidDate = errors.New("calendar: invalid date")

// Date is a day in the Jalaali calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// ToJalaali converts a Gregorian day to its Jalaali equivalent.
func ToJalaali(gy int, gm time.Month, gd int) (Date, error) {
	if !validGregorian(gy, gm, gd) {
		return Date{}, fmt.Errorf("%w: gregorian %04d-%02d-%02d", ErrInvalidDate, gy, int(gm), gd)
	}
	jy, jm, jd, err := jalaali.ToJalaali(gy, gm, gd)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return Date{Year: jy, Month: int(jm), Day: jd}, nil
}

// FromTime returns the Jalaali day of t, read in UTC.
func FromTime(t time.Time) (Date, error) {
	u := t.UTC()
	return ToJalaali(u.Year(), u.Month(), u.Day())
}

// ToGregorian converts a Jalaali day to midnight UTC of the matching Gregorian day.
func ToGregorian(jy, jm, jd int) (time.Time, error) {
	if !IsValid(jy, jm, jd) {
		return time.Time{}, fmt.Errorf("%w: jalaali %04d/%02d/%02d", ErrInvalidDate, jy, jm, jd)
	}
	gy, gm, gd, err := jalaali.ToGregorian(jy, jalaali.Month(jm), jd)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return time.Date(gy, gm, gd, 0, 0, 0, 0, time.UTC), nil
}

// IsValid reports whether jy/jm/jd names an existing Jalaali day.
func IsValid(jy, jm, jd int) bool {
	return jalaali.IsValidDate(jy, jm, jd)
}

// IsLeap reports whether jy is a Jalaali leap year. Years outside the supported range are not.
func IsLeap(jy int) bool {
	leap, err := jalaali.IsLeapYear(jy)
	return err == nil && leap
}

// MonthLength returns the number of days in the given Jalaali month, or 0 when the month does not
// exist.
func MonthLength(jy, jm int) int {
	if jm < 1 || jm > 12 {
		return 0
	}
	n, err := jalaali.MonthLength(jy, jm)
	if err != nil {
		return 0
	}
	return n
}

func validGregorian(gy int, gm time.Month, gd int) bool {
	if gm < time.January || gm > time.December || gd < 1 {
		return false
	}
	t := time.Date(gy, gm, gd, 0, 0, 0, 0, time.UTC)
	return t.Year() == gy && t.Month() == gm && t.Day() == gd
}
