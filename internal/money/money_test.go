package money

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Cents
		wantErr bool
	}{
		{in: "12.34", want: 1234},
		{in: "12,34", want: 1234},
		{in: "12", want: 1200},
		{in: "0.5", want: 50},
		{in: ".5", want: 50},
		{in: "12.345", want: 1234}, // third decimal < 5 rounds down
		{in: "12.346", want: 1235}, // third decimal >= 5 rounds up
		{in: " 7.00 ", want: 700},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "-1.00", wantErr: true},
		{in: "+1.00", wantErr: true},
		{in: "1.2.3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "12.3a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidAmount", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want Cents
	}{
		{in: 100.00, want: 10000},
		{in: 33.33, want: 3333},
		{in: 0.1, want: 10},
		{in: 29.99, want: 2999}, // 29.99 is not exactly representable
		{in: -50.00, want: -5000},
		{in: 0, want: 0},
	}
	for _, tt := range tests {
		if got := FromFloat(tt.in); got != tt.want {
			t.Errorf("FromFloat(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPositiveFromFloat(t *testing.T) {
	if _, err := PositiveFromFloat(0); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("PositiveFromFloat(0) error = %v, want ErrInvalidAmount", err)
	}
	if _, err := PositiveFromFloat(-1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("PositiveFromFloat(-1) error = %v, want ErrInvalidAmount", err)
	}
	got, err := PositiveFromFloat(12.34)
	if err != nil || got != 1234 {
		t.Errorf("PositiveFromFloat(12.34) = %d, %v; want 1234, nil", got, err)
	}
}

// The boundary contract: two-decimal amounts survive Cents → float → Cents.
func TestFloatRoundTrip(t *testing.T) {
	for _, c := range []Cents{0, 1, 99, 100, 3333, 6666, 10000, 123456789} {
		if got := FromFloat(c.Float()); got != c {
			t.Errorf("round trip of %d cents gave %d", c, got)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   Cents
		want string
	}{
		{in: 1234, want: "12.34"},
		{in: -5, want: "-0.05"},
		{in: 0, want: "0.00"},
		{in: 100, want: "1.00"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Cents(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
