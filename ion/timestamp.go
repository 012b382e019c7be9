package ion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	iongo "github.com/amazon-ion/ion-go/ion"
)

// Precision is the granularity of a Timestamp.
type Precision uint8

const (
	NoPrecision Precision = iota
	Year
	Month
	Day
	Minute
	Second
	Fraction
)

func (p Precision) String() string {
	switch p {
	case Year:
		return "year"
	case Month:
		return "month"
	case Day:
		return "day"
	case Minute:
		return "minute"
	case Second:
		return "second"
	case Fraction:
		return "fraction"
	default:
		return "none"
	}
}

// Timestamp is a point in time with an explicit precision and a local
// offset which may be unknown. Timestamps at Day precision or coarser
// carry no offset.
type Timestamp struct {
	t           time.Time
	precision   Precision
	offsetKnown bool
	fracDigits  int
}

// NewTimestamp returns t truncated to precision p. The offset is t's
// zone offset for Minute precision and finer. At Fraction precision the
// number of fractional digits is the fewest that represent t's
// nanoseconds, at least one.
func NewTimestamp(t time.Time, p Precision) Timestamp {
	ts := Timestamp{t: t, precision: p, offsetKnown: p >= Minute}
	switch p {
	case Year:
		ts.t = time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	case Month:
		ts.t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case Day:
		ts.t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case Minute:
		ts.t = t.Truncate(time.Minute)
	case Second:
		ts.t = t.Truncate(time.Second)
	case Fraction:
		ns := strconv.Itoa(t.Nanosecond() + 1e9)[1:]
		ts.fracDigits = max(1, len(strings.TrimRight(ns, "0")))
	}
	return ts
}

// NewTimestampUnknownOffset is NewTimestamp for a time whose local offset
// is unknown. t is interpreted in UTC.
func NewTimestampUnknownOffset(t time.Time, p Precision) Timestamp {
	ts := NewTimestamp(t.UTC(), p)
	ts.offsetKnown = false
	return ts
}

// Time returns the instant.
func (ts Timestamp) Time() time.Time { return ts.t }

// Precision returns the timestamp precision.
func (ts Timestamp) Precision() Precision { return ts.precision }

// OffsetKnown reports whether the local offset is known.
func (ts Timestamp) OffsetKnown() bool { return ts.offsetKnown }

// Equal reports whether both timestamps have the same instant, precision,
// fractional digits and local offset.
func (ts Timestamp) Equal(o Timestamp) bool {
	if ts.precision != o.precision || ts.offsetKnown != o.offsetKnown || ts.fracDigits != o.fracDigits {
		return false
	}
	_, a := ts.t.Zone()
	_, b := o.t.Zone()
	return ts.t.Equal(o.t) && (!ts.offsetKnown || a == b)
}

// String renders ts in Ion text notation, e.g. "2019T" or
// "2019-01-02T03:04:05.6Z".
func (ts Timestamp) String() string {
	s := ts.ion().String()
	if ts.precision == Day {
		s = strings.TrimSuffix(s, "T")
	}
	return s
}

func (ts Timestamp) ion() iongo.Timestamp {
	kind := iongo.TimezoneUnspecified
	t := ts.t
	if ts.precision >= Minute && ts.offsetKnown {
		kind = iongo.TimezoneLocal
		if _, off := t.Zone(); off == 0 {
			kind = iongo.TimezoneUTC
			t = t.UTC()
		}
	} else if ts.precision >= Minute {
		t = t.UTC()
	}
	switch ts.precision {
	case Month:
		return iongo.NewTimestamp(t, iongo.TimestampPrecisionMonth, kind)
	case Day:
		return iongo.NewTimestamp(t, iongo.TimestampPrecisionDay, kind)
	case Minute:
		return iongo.NewTimestamp(t, iongo.TimestampPrecisionMinute, kind)
	case Second:
		return iongo.NewTimestamp(t, iongo.TimestampPrecisionSecond, kind)
	case Fraction:
		return iongo.NewTimestampWithFractionalSeconds(t, iongo.TimestampPrecisionNanosecond, kind, uint8(ts.fracDigits))
	}
	return iongo.NewTimestamp(t, iongo.TimestampPrecisionYear, kind)
}

// timestampText is the lexical form: year, month, day, then an optional
// time of day which requires an offset.
var timestampText = regexp.MustCompile(`^([0-9]{4})(?:T|-([0-9]{2})(?:T|-([0-9]{2})(?:T?|T([0-9]{2}):([0-9]{2})(?::([0-9]{2})(?:\.([0-9]*))?)?(Z|[+-][0-9]{2}:[0-9]{2}))))$`)

// ParseTimestamp parses Ion timestamp text.
func ParseTimestamp(s string) (Timestamp, error) {
	bad := func(why string) (Timestamp, error) {
		return Timestamp{}, fmt.Errorf("%w: timestamp %q: %s", ErrParse, s, why)
	}
	m := timestampText.FindStringSubmatch(s)
	if m == nil {
		return bad("syntax")
	}
	year, _ := strconv.Atoi(m[1])
	text, offset := s, 0
	var err error
	if m[2] != "" {
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return bad("month")
		}
		if m[3] != "" {
			day, _ := strconv.Atoi(m[3])
			if day < 1 || day > daysIn(year, month) {
				return bad("day")
			}
			if m[4] == "" {
				text = m[1] + "-" + m[2] + "-" + m[3]
			}
		}
	}
	if m[4] != "" {
		if hour, _ := strconv.Atoi(m[4]); hour > 23 {
			return bad("hour")
		}
		if minute, _ := strconv.Atoi(m[5]); minute > 59 {
			return bad("minute")
		}
		if sec, _ := strconv.Atoi(m[6]); sec > 59 {
			return bad("second")
		}
		switch frac := m[7]; {
		case strings.Contains(s, ".") && frac == "":
			return bad("fraction")
		case len(frac) > 9:
			return bad("fraction longer than nanoseconds")
		}
		if offset, err = parseOffset(m[8]); err != nil {
			return bad(err.Error())
		}
	}
	v, err := iongo.ParseTimestamp(text)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: timestamp %q: %w", ErrParse, s, err)
	}
	ts := Timestamp{t: v.GetDateTime()}
	switch v.GetPrecision() {
	case iongo.TimestampPrecisionYear:
		ts.precision = Year
	case iongo.TimestampPrecisionMonth:
		ts.precision = Month
	case iongo.TimestampPrecisionDay:
		ts.precision = Day
	case iongo.TimestampPrecisionMinute:
		ts.precision = Minute
	case iongo.TimestampPrecisionSecond:
		ts.precision = Second
	case iongo.TimestampPrecisionNanosecond:
		ts.precision = Fraction
		ts.fracDigits = int(v.GetNumberOfFractionalSeconds())
	default:
		return bad("precision")
	}
	if ts.precision >= Minute {
		ts.offsetKnown = m[8] != "-00:00"
		ts.t = ts.t.UTC()
		if offset != 0 {
			ts.t = ts.t.In(time.FixedZone("", offset))
		}
	} else {
		ts.t = time.Date(ts.t.Year(), ts.t.Month(), ts.t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return ts, nil
}

// MustParseTimestamp is ParseTimestamp that panics on error.
func MustParseTimestamp(s string) Timestamp {
	ts, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func parseOffset(s string) (int, error) {
	if s == "Z" {
		return 0, nil
	}
	h, err1 := strconv.Atoi(s[1:3])
	m, err2 := strconv.Atoi(s[4:6])
	if err1 != nil || err2 != nil || h > 23 || m > 59 {
		return 0, fmt.Errorf("offset")
	}
	off := h*3600 + m*60
	if s[0] == '-' {
		off = -off
	}
	return off, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
