// Package dates normalizes loosely specified dates into canonical ISO-8601
// strings suitable for *arr API query parameters.
package dates

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"

	minYear = 1
	maxYear = 9999
)

// Kind identifies which variant an Input holds.
type Kind int

const (
	kindNone Kind = iota
	KindDateTime
	KindDate
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindDateTime:
		return "datetime"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	default:
		return "none"
	}
}

// Input is a date supplied by a caller: a date with time of day, a calendar
// date, or an unvalidated text token. The zero Input holds nothing.
type Input struct {
	kind  Kind
	t     time.Time
	year  int
	month time.Month
	day   int
	text  string
}

// DateTime wraps a date with time of day. Only the wall clock of t is used;
// no zone conversion happens.
func DateTime(t time.Time) Input {
	return Input{kind: KindDateTime, t: t}
}

// Date wraps a calendar date. Out-of-range fields are reported by Normalize
// rather than rolled over.
func Date(year int, month time.Month, day int) Input {
	return Input{kind: KindDate, year: year, month: month, day: day}
}

// DateOf wraps the calendar date of t, dropping the time of day.
func DateOf(t time.Time) Input {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Text wraps a free-form token such as "1/27/20" or "27-01-2020".
func Text(s string) Input {
	return Input{kind: KindText, text: s}
}

// Kind reports the variant held by in.
func (in Input) Kind() Kind { return in.kind }

// IsZero reports whether in holds no value.
func (in Input) IsZero() bool { return in.kind == kindNone }

func (in Input) String() string {
	switch in.kind {
	case KindDateTime:
		return in.t.Format(time.RFC3339Nano)
	case KindDate:
		return fmt.Sprintf("%04d-%02d-%02d", in.year, int(in.month), in.day)
	case KindText:
		return in.text
	default:
		return ""
	}
}

// Normalize returns the canonical ISO-8601 form of in:
//
//	DateTime  2006-01-02T15:04:05 (seconds precision, no offset)
//	Date      2006-01-02
//	Text      2006-01-02T15:04:05 (midnight when the token has no time)
//
// Text tokens are resolved by Parse. Any failure, including the zero Input,
// yields an *UnparseableDateError.
func Normalize(in Input) (string, error) {
	switch in.kind {
	case KindDateTime:
		if !validYear(in.t.Year()) {
			return "", &UnparseableDateError{Input: in.String()}
		}
		return in.t.Format(dateTimeLayout), nil

	case KindDate:
		t := time.Date(in.year, in.month, in.day, 0, 0, 0, 0, time.UTC)
		y, m, d := t.Date()
		if y != in.year || m != in.month || d != in.day || !validYear(y) {
			return "", &UnparseableDateError{Input: in.String()}
		}
		return t.Format(dateLayout), nil

	case KindText:
		t, err := Parse(in.text)
		if err != nil {
			return "", err
		}
		return t.Format(dateTimeLayout), nil

	default:
		return "", &UnparseableDateError{Input: in.String()}
	}
}

// FromValue adapts common Go values to an Input: time.Time becomes DateTime,
// string becomes Text and a nil *time.Time becomes the zero Input.
func FromValue(v any) (Input, error) {
	switch x := v.(type) {
	case Input:
		return x, nil
	case time.Time:
		return DateTime(x), nil
	case *time.Time:
		if x == nil {
			return Input{}, nil
		}
		return DateTime(*x), nil
	case string:
		return Text(x), nil
	case nil:
		return Input{}, nil
	default:
		return Input{}, &UnparseableDateError{Input: fmt.Sprintf("%v (%T)", v, v)}
	}
}

func validYear(y int) bool {
	return y >= minYear && y <= maxYear
}
