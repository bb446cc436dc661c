package date

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

// YearMonthFormat is the format used to represent year-month buckets as strings.
const YearMonthFormat = "2006-01"

// YearMonth identifies one calendar month, the bucket granularity of all
// ledger figures.
type YearMonth struct {
	y int
	m time.Month
}

// YM returns a normalized YearMonth for the given year and month.
// An out-of-range month rolls over into the adjacent year.
func YM(year int, month time.Month) YearMonth {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{y: t.Year(), m: t.Month()}
}

// Year returns the bucket's year.
func (ym YearMonth) Year() int { return ym.y }

// Month returns the bucket's month.
func (ym YearMonth) Month() time.Month { return ym.m }

// Prev returns the immediately preceding month, crossing the year boundary
// at January.
func (ym YearMonth) Prev() YearMonth { return YM(ym.y, ym.m-1) }

// Next returns the immediately following month.
func (ym YearMonth) Next() YearMonth { return YM(ym.y, ym.m+1) }

// Compare returns -1, 0 or +1 comparing ym chronologically with x.
func (ym YearMonth) Compare(x YearMonth) int {
	switch {
	case ym.y != x.y:
		if ym.y < x.y {
			return -1
		}
		return 1
	case ym.m != x.m:
		if ym.m < x.m {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Before reports whether ym is chronologically before x.
func (ym YearMonth) Before(x YearMonth) bool { return ym.Compare(x) < 0 }

// After reports whether ym is chronologically after x.
func (ym YearMonth) After(x YearMonth) bool { return ym.Compare(x) > 0 }

// IsZero reports whether the bucket is the zero value.
func (ym YearMonth) IsZero() bool { return ym == YearMonth{} }

// String formats the bucket as "YYYY-MM".
func (ym YearMonth) String() string {
	return time.Date(ym.y, ym.m, 1, 0, 0, 0, 0, time.UTC).Format(YearMonthFormat)
}

// Months iterates chronologically over every month from ym through 'to',
// boundaries included. It yields nothing when 'to' is before ym.
func (ym YearMonth) Months(to YearMonth) iter.Seq[YearMonth] {
	return func(yield func(YearMonth) bool) {
		for p := ym; !p.After(to); p = p.Next() {
			if !yield(p) {
				return
			}
		}
	}
}

// ParseYearMonth parses a YearMonth from a "YYYY-MM" string. It is lenient
// and accepts a single-digit month like "2025-7".
func ParseYearMonth(str string) (YearMonth, error) {
	on, err := time.Parse("2006-1", str)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q want format %q: %w", str, YearMonthFormat, err)
	}
	return YM(on.Year(), on.Month()), nil
}

// MustParseYearMonth is like ParseYearMonth but panics on error.
func MustParseYearMonth(str string) YearMonth {
	ym, err := ParseYearMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return ym
}

// UnmarshalJSON implements the json specific way to unmarshal a year-month from a json string.
func (ym *YearMonth) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	p, err := ParseYearMonth(str)
	if err != nil {
		return err
	}
	*ym = p
	return nil
}

// MarshalJSON implements the json specific way to marshal a year-month to a json string.
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	str := ym.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*YearMonth)(nil)
var _ json.Unmarshaler = (*YearMonth)(nil)
