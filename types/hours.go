package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Hours represents a duration of billable work in hundredths of an hour.
// All arithmetic is integer-only — no floating point drift across
// aggregation. HoursFromFloat(3.5) stores 350.
type Hours int64

// HoursFromFloat converts a decimal hour count to Hours, rounding to the
// nearest hundredth (half away from zero).
func HoursFromFloat(hours float64) Hours {
	scaled := hours * 100
	if scaled >= 0 {
		return Hours(int64(scaled + 0.5))
	}
	return Hours(int64(scaled - 0.5))
}

// HoursFromDuration converts a time.Duration to Hours, rounding to the
// nearest hundredth of an hour.
func HoursFromDuration(d time.Duration) Hours {
	const centihour = time.Hour / 100
	half := centihour / 2
	if d >= 0 {
		return Hours((d + half) / centihour)
	}
	return Hours((d - half) / centihour)
}

// Add adds two Hours values.
func (h Hours) Add(other Hours) Hours { return h + other }

// Subtract subtracts another Hours value.
func (h Hours) Subtract(other Hours) Hours { return h - other }

// IsZero returns true if the value is zero.
func (h Hours) IsZero() bool { return h == 0 }

// IsPositive returns true if the value is greater than zero.
func (h Hours) IsPositive() bool { return h > 0 }

// IsNegative returns true if the value is less than zero.
func (h Hours) IsNegative() bool { return h < 0 }

// Float64 returns the value as decimal hours.
func (h Hours) Float64() float64 { return float64(h) / 100 }

// Duration returns the value as a time.Duration.
func (h Hours) Duration() time.Duration {
	return time.Duration(h) * (time.Hour / 100)
}

// Cost returns the monetary cost of working these hours at the given
// hourly rate. The result is rounded to the nearest minor unit, half
// away from zero. 3.5 hours at NZ$90.00/h = NZ$315.00 exactly.
func (h Hours) Cost(rate Money) Money {
	product := rate.Amount * int64(h)

	var amount int64
	switch {
	case product >= 0:
		amount = (product + 50) / 100
	default:
		amount = (product - 50) / 100
	}

	return Money{Amount: amount, Currency: rate.Currency}
}

// String returns the decimal representation with two places: "7.50".
func (h Hours) String() string {
	v := int64(h)
	neg := v < 0
	if neg {
		v = -v
	}

	s := fmt.Sprintf("%d.%02d", v/100, v%100)
	if neg {
		return "-" + s
	}
	return s
}

// MarshalJSON implements json.Marshaler. Hours serialize as decimal
// hours: 350 hundredths marshal as 3.5.
func (h Hours) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Float64())
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Hours) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("hours: unmarshal %q: %w", data, err)
	}

	*h = HoursFromFloat(v)

	return nil
}

// SumHours calculates the sum of multiple Hours values.
func SumHours(values ...Hours) Hours {
	var total Hours
	for _, v := range values {
		total += v
	}
	return total
}
