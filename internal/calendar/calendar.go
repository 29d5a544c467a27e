// Package calendar converts epoch seconds to calendar fields the same way the
// device firmware does: whole years are peeled off with a divisible-by-4 leap
// rule only. The Gregorian century exception is deliberately not applied, so
// 2100 is treated as a leap year. Dates produced by this package must stay
// bit-for-bit compatible with the display, not with proleptic Gregorian time.
package calendar

// Date is a broken-down calendar instant. Weekday is intentionally absent:
// the time-sync client supplies it, this package never computes it.
type Date struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-31
	Hour   int
	Minute int
	Second int
}

const secondsPerDay = 86400

func isLeap(year int) bool {
	return year%4 == 0
}

// DaysInMonth returns the length of month in year under the simplified leap
// rule. Month is 1-based.
func DaysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	default:
		return 30
	}
}

func daysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

// FromEpoch converts non-negative epoch seconds to a Date. It is total over
// the input domain; negative inputs are clamped to the epoch origin.
func FromEpoch(epoch int64) Date {
	if epoch < 0 {
		epoch = 0
	}

	d := Date{
		Second: int(epoch % 60),
		Minute: int((epoch / 60) % 60),
		Hour:   int((epoch / 3600) % 24),
	}

	days := int(epoch / secondsPerDay)

	year := 1970
	for days >= daysInYear(year) {
		days -= daysInYear(year)
		year++
	}

	month := 1
	for days >= DaysInMonth(month, year) {
		days -= DaysInMonth(month, year)
		month++
	}

	d.Year = year
	d.Month = month
	d.Day = days + 1
	return d
}

// Epoch is the inverse of FromEpoch under the same simplified leap rule.
func (d Date) Epoch() int64 {
	days := 0
	for y := 1970; y < d.Year; y++ {
		days += daysInYear(y)
	}
	for m := 1; m < d.Month; m++ {
		days += DaysInMonth(m, d.Year)
	}
	days += d.Day - 1

	return int64(days)*secondsPerDay + int64(d.Hour)*3600 + int64(d.Minute)*60 + int64(d.Second)
}
