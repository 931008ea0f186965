package calendar

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJalaali_KnownDates(t *testing.T) {
	tests := []struct {
		name     string
		gy       int
		gm       time.Month
		gd       int
		expected Date
	}{
		{name: "nowruz 1403", gy: 2024, gm: time.March, gd: 20, expected: Date{1403, 1, 1}},
		{name: "nowruz 1404", gy: 2025, gm: time.March, gd: 21, expected: Date{1404, 1, 1}},
		{name: "last day of leap year 1403", gy: 2025, gm: time.March, gd: 20, expected: Date{1403, 12, 30}},
		{name: "mid esfand", gy: 2024, gm: time.March, gd: 10, expected: Date{1402, 12, 20}},
		{name: "unix epoch", gy: 1970, gm: time.January, gd: 1, expected: Date{1348, 10, 11}},
		{name: "start of mehr", gy: 2016, gm: time.September, gd: 22, expected: Date{1395, 7, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToJalaali(tt.gy, tt.gm, tt.gd)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestToGregorian_KnownDates(t *testing.T) {
	got, err := ToGregorian(1404, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 22, 0, 0, 0, 0, time.UTC), got)

	got, err = ToGregorian(1403, 12, 30)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), got)
}

func TestRoundTrip_MultiCentury(t *testing.T) {
	start := time.Date(1700, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2200, time.December, 31, 0, 0, 0, 0, time.UTC)

	prev := Date{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		j, err := ToJalaali(d.Year(), d.Month(), d.Day())
		require.NoError(t, err, d.Format("2006-01-02"))

		back, err := ToGregorian(j.Year, j.Month, j.Day)
		require.NoError(t, err, j.String())
		if !back.Equal(d) {
			t.Fatalf("round trip of %s gave %s via %s", d.Format("2006-01-02"), back.Format("2006-01-02"), j)
		}

		if prev != (Date{}) {
			assert.True(t, isNextDay(prev, j), "%s does not follow %s", j, prev)
		}
		prev = j
	}
}

func isNextDay(prev, next Date) bool {
	if prev.Day < MonthLength(prev.Year, prev.Month) {
		return next == Date{prev.Year, prev.Month, prev.Day + 1}
	}
	if prev.Month < 12 {
		return next == Date{prev.Year, prev.Month + 1, 1}
	}
	return next == Date{prev.Year + 1, 1, 1}
}

func TestToGregorian_InvalidInput(t *testing.T) {
	cases := [][3]int{
		{1403, 13, 1},
		{1403, 0, 1},
		{1402, 12, 30}, // 1402 is not a leap year
		{1403, 7, 31},
		{4000, 1, 1},
	}
	for _, c := range cases {
		_, err := ToGregorian(c[0], c[1], c[2])
		assert.ErrorIs(t, err, ErrInvalidDate, "%v", c)
	}
}

func TestToJalaali_InvalidGregorian(t *testing.T) {
	_, err := ToJalaali(2023, time.February, 29)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ToJalaali(3900, time.January, 1)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestLeapYearsAndMonthLength(t *testing.T) {
	assert.True(t, IsLeap(1403))
	assert.False(t, IsLeap(1402))
	assert.True(t, IsLeap(1399))
	assert.False(t, IsLeap(4000))

	assert.Equal(t, 31, MonthLength(1402, 1))
	assert.Equal(t, 30, MonthLength(1402, 7))
	assert.Equal(t, 29, MonthLength(1402, 12))
	assert.Equal(t, 30, MonthLength(1403, 12))
	assert.Zero(t, MonthLength(1403, 13))
	assert.Zero(t, MonthLength(4000, 12))

	assert.True(t, IsValid(1403, 12, 30))
	assert.False(t, IsValid(1402, 12, 30))
}

func TestApproximateGregorian(t *testing.T) {
	t.Run("uses the 15th of the month", func(t *testing.T) {
		for jm := 1; jm <= 12; jm++ {
			got, ok := ApproximateGregorian("1403", strconv.Itoa(jm))
			require.True(t, ok)
			j, err := FromTime(got)
			require.NoError(t, err)
			assert.Equal(t, Date{1403, jm, 15}, j)
			assert.Equal(t, time.UTC, got.Location())
			assert.Zero(t, got.Hour())
		}
	})

	t.Run("rejects unusable parts", func(t *testing.T) {
		cases := [][2]string{
			{"", "3"},
			{"1403", ""},
			{"abc", "3"},
			{"1403", "x"},
			{"1403", "0"},
			{"1403", "13"},
			{"0", "3"},
		}
		for _, c := range cases {
			_, ok := ApproximateGregorian(c[0], c[1])
			assert.False(t, ok, "%v", c)
		}
	})
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "حمل", MonthName(1))
	assert.Equal(t, "حوت", MonthName(12))
	assert.Equal(t, "Month 0", MonthName(0))
	assert.Equal(t, "Month 13", MonthName(13))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "حوت 1402", MonthLabel(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParseJalaali(t *testing.T) {
	d, err := ParseJalaali("1404-03-01")
	require.NoError(t, err)
	assert.Equal(t, Date{1404, 3, 1}, d)

	d, err = ParseJalaali("1403/12/30")
	require.NoError(t, err)
	assert.Equal(t, Date{1403, 12, 30}, d)

	_, err = ParseJalaali("1402/12/30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseJalaali("yesterday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2024-03-20", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDay("1403-01-01", true)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDay("2024-02-30", false)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDay("1403-13-01", true)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGregorianOrNow(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, time.Date(2025, time.May, 22, 0, 0, 0, 0, time.UTC), GregorianOrNow(ctx, Date{1404, 3, 1}))

	got := GregorianOrNow(ctx, Date{1404, 13, 1})
	now := time.Now().UTC()
	assert.Equal(t, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), got)
}
