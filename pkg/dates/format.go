package dates

import (
	"strings"
	"time"
)

// Order is the sequence in which year, month and day appear in a date token.
type Order int

const (
	MonthDayYear Order = iota
	DayMonthYear
	YearMonthDay
)

func (o Order) String() string {
	switch o {
	case MonthDayYear:
		return "M-D-Y"
	case DayMonthYear:
		return "D-M-Y"
	case YearMonthDay:
		return "Y-M-D"
	default:
		return "unknown"
	}
}

// Format describes one candidate interpretation of a text token.
type Format struct {
	Order      Order
	Separator  string
	YearDigits int // 2 or 4
}

// Layout returns the time.Parse layout for the format. Month and day accept
// one or two digits; the year must have exactly YearDigits digits.
func (f Format) Layout() string {
	year := "2006"
	if f.YearDigits == 2 {
		year = "06"
	}
	var fields []string
	switch f.Order {
	case MonthDayYear:
		fields = []string{"1", "2", year}
	case DayMonthYear:
		fields = []string{"2", "1", year}
	default:
		fields = []string{year, "1", "2"}
	}
	return strings.Join(fields, f.Separator)
}

func (f Format) String() string {
	return f.Order.String() + " sep=" + f.Separator + " year=" + yearLabel(f.YearDigits)
}

func yearLabel(digits int) string {
	if digits == 2 {
		return "YY"
	}
	return "YYYY"
}

// candidateOrders and candidateSeparators fix the search order. The first
// candidate that parses wins, so "01/02/19" reads as January 2, 2019.
var (
	candidateOrders     = []Order{MonthDayYear, DayMonthYear, YearMonthDay}
	candidateSeparators = []string{"-", "/"}
	candidateFormats    = buildCandidates()
)

func buildCandidates() []Format {
	formats := make([]Format, 0, len(candidateOrders)*len(candidateSeparators)*2)
	for _, o := range candidateOrders {
		for _, sep := range candidateSeparators {
			formats = append(formats,
				Format{Order: o, Separator: sep, YearDigits: 2},
				Format{Order: o, Separator: sep, YearDigits: 4},
			)
		}
	}
	return formats
}

// Candidates returns the ordered list of formats tried for text input.
func Candidates() []Format {
	out := make([]Format, len(candidateFormats))
	copy(out, candidateFormats)
	return out
}

// Parse interprets a free-form date token by trying every candidate format in
// order and returning the first range-valid match. Years outside 1-9999 are
// rejected. Two-digit years pivot at
// 69: 00-68 become 2000-2068 and 69-99 become 1969-1999.
//
// Tokens already in the canonical date-time form are accepted after the
// candidates are exhausted.
func Parse(text string) (time.Time, error) {
	t, _, err := parse(text)
	return t, err
}

// Match is like Parse but also reports which format matched. The returned
// Format is the zero value when the canonical date-time form matched.
func Match(text string) (time.Time, Format, error) {
	return parse(text)
}

func parse(text string) (time.Time, Format, error) {
	token := strings.TrimSpace(text)
	if token == "" {
		return time.Time{}, Format{}, &UnparseableDateError{Input: text}
	}

	for _, f := range candidateFormats {
		t, err := time.Parse(f.Layout(), token)
		if err == nil && validYear(t.Year()) {
			return t, f, nil
		}
	}

	// time.Parse accepts fractional seconds the layout does not name, so
	// the token must be exactly as long as the layout.
	if len(token) == len(dateTimeLayout) {
		if t, err := time.Parse(dateTimeLayout, token); err == nil && validYear(t.Year()) {
			return t, Format{}, nil
		}
	}

	return time.Time{}, Format{}, &UnparseableDateError{Input: text}
}
