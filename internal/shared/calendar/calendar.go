// Package calendar models timezone-naive calendar dates.
//
// Payroll rules only care about which day of the week a date falls on and how
// many days a month has. Both are computed arithmetically here so that the
// answer never depends on the server's local zone or on how a timestamp was
// parsed.
package calendar

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const layout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
	ErrInvalidYear  = errors.New("year must be between 1900 and 9999")
)

// Date is a day on the proleptic Gregorian calendar without a time or zone.
type Date struct {
	Year  int
	Month int
	Day   int
}

// sakamoto month offsets
var monthOffsets = [12]int{0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4}

func New(year, month, day int) (Date, error) {
	if err := ValidateMonth(month, year); err != nil {
		return Date{}, err
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDate, day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustNew is New for literals known to be valid.
func MustNew(year, month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime takes the calendar fields of t as seen in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Parse reads YYYY-MM-DD. A trailing time component (as produced by some
// JSON encoders of date columns) is ignored rather than converted.
func Parse(v string) (Date, error) {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, 'T'); i == 10 {
		v = v[:i]
	}
	parts := strings.Split(v, "-")
	if len(parts) != 3 || len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, ErrInvalidDate
	}

	nums := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, ErrInvalidDate
		}
		nums[i] = n
	}

	d, err := New(nums[0], nums[1], nums[2])
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return d, nil
}

func ValidateMonth(month, year int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	if year < 1900 || year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// MonthRange returns the first and last day of the month.
func MonthRange(year, month int) (Date, Date) {
	return Date{Year: year, Month: month, Day: 1},
		Date{Year: year, Month: month, Day: DaysInMonth(year, month)}
}

// DaysOfMonth lists every date of the month in order.
func DaysOfMonth(year, month int) []Date {
	n := DaysInMonth(year, month)
	out := make([]Date, n)
	for i := 0; i < n; i++ {
		out[i] = Date{Year: year, Month: month, Day: i + 1}
	}
	return out
}

// PreviousMonth returns the month before (year, month).
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// Weekday uses Sakamoto's method; Sunday is 0.
func (d Date) Weekday() time.Weekday {
	y := d.Year
	if d.Month < 3 {
		y--
	}
	return time.Weekday((y + y/4 - y/100 + y/400 + monthOffsets[d.Month-1] + d.Day) % 7)
}

func (d Date) IsSunday() bool {
	return d.Weekday() == time.Sunday
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// InMonth reports whether d belongs to (year, month).
func (d Date) InMonth(year, month int) bool {
	return d.Year == year && d.Month == month
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as a plain YYYY-MM-DD literal.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan accepts what postgres drivers return for a date column. A time.Time
// is read field by field in its own location, never converted.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = FromTime(v)
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", src)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
