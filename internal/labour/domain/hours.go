package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// HoursPrecision is the number of fraction digits reported for hours
const HoursPrecision = 1

// Hours is an exact decimal number of hours. The zero value is 0.
type Hours struct {
	d decimal.Decimal
}

// NewHours wraps a decimal value
func NewHours(d decimal.Decimal) Hours {
	return Hours{d: d}
}

// ParseHours parses a decimal string such as "2.5"
func ParseHours(s string) (Hours, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Hours{}, fmt.Errorf("invalid hours %q: %w", s, err)
	}
	return Hours{d: d}, nil
}

// MustHours is ParseHours for literals in tests and fixtures
func MustHours(s string) Hours {
	h, err := ParseHours(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Add returns h + o without rounding
func (h Hours) Add(o Hours) Hours {
	return Hours{d: h.d.Add(o.d)}
}

// Sub returns h - o without rounding
func (h Hours) Sub(o Hours) Hours {
	return Hours{d: h.d.Sub(o.d)}
}

// Round rounds half to even at HoursPrecision digits
func (h Hours) Round() Hours {
	return Hours{d: h.d.RoundBank(HoursPrecision)}
}

// Abs returns the absolute value
func (h Hours) Abs() Hours {
	return Hours{d: h.d.Abs()}
}

// Decimal exposes the underlying value
func (h Hours) Decimal() decimal.Decimal {
	return h.d
}

// Equal compares values numerically, so 2 equals 2.0
func (h Hours) Equal(o Hours) bool {
	return h.d.Equal(o.d)
}

// GreaterThan reports h > o
func (h Hours) GreaterThan(o Hours) bool {
	return h.d.GreaterThan(o.d)
}

// IsZero reports whether h is 0
func (h Hours) IsZero() bool {
	return h.d.IsZero()
}

// String formats with exactly HoursPrecision digits
func (h Hours) String() string {
	return h.d.StringFixedBank(HoursPrecision)
}

// MarshalJSON writes an unquoted number with one fraction digit
func (h Hours) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings
func (h *Hours) UnmarshalJSON(data []byte) error {
	return h.d.UnmarshalJSON(data)
}

// Value implements driver.Valuer
func (h Hours) Value() (driver.Value, error) {
	return h.String(), nil
}

// Scan implements sql.Scanner
func (h *Hours) Scan(value interface{}) error {
	return h.d.Scan(value)
}

// PeriodHours accumulates hours per period. It is indexed by Period.
type PeriodHours [PeriodCount]Hours

// Add adds hours to a period
func (p *PeriodHours) Add(period Period, hours Hours) {
	p[period] = p[period].Add(hours)
}

// Get returns the hours of a period
func (p PeriodHours) Get(period Period) Hours {
	return p[period]
}

// Total sums all periods
func (p PeriodHours) Total() Hours {
	var total Hours
	for _, h := range p {
		total = total.Add(h)
	}
	return total
}

// Breakdown rounds every period and maps it to the output keys
func (p PeriodHours) Breakdown() PeriodBreakdown {
	return PeriodBreakdown{
		Period1: p[Morning].Round(),
		Period2: p[Afternoon].Round(),
		Period3: p[Evening].Round(),
		Period4: p[LateNight].Round(),
	}
}

// PeriodBreakdown is the serialized per-period split of a labour entry
type PeriodBreakdown struct {
	Period1 Hours `json:"period1"`
	Period2 Hours `json:"period2"`
	Period3 Hours `json:"period3"`
	Period4 Hours `json:"period4"`
}

// Get returns the hours of a period
func (b PeriodBreakdown) Get(period Period) Hours {
	switch period {
	case Morning:
		return b.Period1
	case Afternoon:
		return b.Period2
	case Evening:
		return b.Period3
	default:
		return b.Period4
	}
}

// Total sums all periods
func (b PeriodBreakdown) Total() Hours {
	return b.Period1.Add(b.Period2).Add(b.Period3).Add(b.Period4)
}
