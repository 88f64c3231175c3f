package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHoursFromFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected Hours
	}{
		{"Whole", 8, 800},
		{"Half", 3.5, 350},
		{"Quarter", 0.25, 25},
		{"Hundredth", 0.01, 1},
		{"Rounds up", 1.005, 101},
		{"Rounds down", 1.004, 100},
		{"Zero", 0, 0},
		{"Negative", -2.5, -250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HoursFromFloat(tt.input); got != tt.expected {
				t.Errorf("HoursFromFloat(%v): got %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHoursFromDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected Hours
	}{
		{"One hour", time.Hour, 100},
		{"Half hour", 30 * time.Minute, 50},
		{"Working day", 8 * time.Hour, 800},
		{"Quarter hour", 15 * time.Minute, 25},
		{"Rounds to hundredth", 37 * time.Second, 1},
		{"Rounds down to zero", 10 * time.Second, 0},
		{"Zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HoursFromDuration(tt.input); got != tt.expected {
				t.Errorf("HoursFromDuration(%v): got %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHoursArithmetic(t *testing.T) {
	if got := HoursFromFloat(3.5).Add(HoursFromFloat(4.25)); got != 775 {
		t.Errorf("Add: got %d, want 775", got)
	}
	if got := HoursFromFloat(8).Subtract(HoursFromFloat(1.5)); got != 650 {
		t.Errorf("Subtract: got %d, want 650", got)
	}
}

func TestHoursCost(t *testing.T) {
	tests := []struct {
		name     string
		hours    Hours
		rate     Money
		expected Money
	}{
		{"Whole hours", HoursFromFloat(8), NZD(8500), NZD(68000)},
		{"Half hour", HoursFromFloat(3.5), NZD(9000), NZD(31500)},
		{"Quarter hour", HoursFromFloat(0.25), NZD(8500), NZD(2125)},
		{"Odd rate rounds", HoursFromFloat(0.01), NZD(150), NZD(2)}, // 1.5 cents rounds up
		{"Zero hours", 0, NZD(8500), NZD(0)},
		{"USD rate", HoursFromFloat(2), USD(10000), USD(20000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.hours.Cost(tt.rate)
			if !got.Equal(tt.expected) {
				t.Errorf("Cost: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHoursString(t *testing.T) {
	tests := []struct {
		hours    Hours
		expected string
	}{
		{HoursFromFloat(7.5), "7.50"},
		{HoursFromFloat(0.25), "0.25"},
		{HoursFromFloat(40), "40.00"},
		{0, "0.00"},
		{HoursFromFloat(-2.5), "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.hours.String(); got != tt.expected {
				t.Errorf("String: got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestHoursJSON(t *testing.T) {
	h := HoursFromFloat(3.5)

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != "3.5" {
		t.Errorf("JSON: got %s, want 3.5", string(data))
	}

	var restored Hours
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if restored != h {
		t.Errorf("Round-trip: got %d, want %d", restored, h)
	}
}

func TestSumHours(t *testing.T) {
	tests := []struct {
		name     string
		values   []Hours
		expected Hours
	}{
		{"Empty", []Hours{}, 0},
		{"Single", []Hours{350}, 350},
		{"Multiple", []Hours{800, 425, 150}, 1375},
		{"With negatives", []Hours{800, -50}, 750},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SumHours(tt.values...); got != tt.expected {
				t.Errorf("SumHours: got %d, want %d", got, tt.expected)
			}
		})
	}
}

func BenchmarkHoursCost(b *testing.B) {
	h := HoursFromFloat(7.5)
	rate := NZD(8500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = h.Cost(rate)
	}
}
