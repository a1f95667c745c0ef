package money

import (
	"errors"
	"testing"

	"github.com/govalues/decimal"
)

func TestExchangeRate_ZeroValue(t *testing.T) {
	got := ExchangeRate{}
	if got.Base() != XXX {
		t.Errorf("ExchangeRate{}.Base() = %v, want %v", got.Base(), XXX)
	}
	if got.Quote() != XXX {
		t.Errorf("ExchangeRate{}.Quote() = %v, want %v", got.Quote(), XXX)
	}
	if !got.Decimal().IsZero() {
		t.Errorf("ExchangeRate{}.Decimal().IsZero() = false, want true")
	}
}

func TestNewExchRate(t *testing.T) {
	tests := []struct {
		base, quote Currency
		rate        string
		wantOk      bool
	}{
		{USD, CAD, "1.3", true},
		{USD, EUR, "1.2000", true},
		{USD, EUR, "-1.2000", false},
		{USD, EUR, "0", false},
		{USD, USD, "0.9999", false},
		{USD, USD, "1.0000", true},
		{USD, USD, "1.0001", false},
	}
	for _, tt := range tests {
		rate := decimal.MustParse(tt.rate)
		_, err := NewExchRate(tt.base, tt.quote, rate)
		if !tt.wantOk && !errors.Is(err, ErrInvalidRate) {
			t.Errorf("NewExchRate(%v, %v, %v) error = %v, want %v", tt.base, tt.quote, rate, err, ErrInvalidRate)
		}
		if tt.wantOk && err != nil {
			t.Errorf("NewExchRate(%v, %v, %v) failed: %v", tt.base, tt.quote, rate, err)
		}
	}
}

func TestParseExchRate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		got, err := ParseExchRate("usd", "cad", "1.3")
		if err != nil {
			t.Fatalf("ParseExchRate(\"usd\", \"cad\", \"1.3\") failed: %v", err)
		}
		if got.Base() != USD || got.Quote() != CAD || got.String() != "USD/CAD 1.3" {
			t.Errorf("ParseExchRate(\"usd\", \"cad\", \"1.3\") = %q, want %q", got, "USD/CAD 1.3")
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			base, quote, rate string
		}{
			"no data": {"", "", ""},
			"base 1":  {"AAA", "USD", "30000"},
			"quote 1": {"USD", "AAA", "0.00003"},
			"rate 1":  {"USD", "EUR", "x.0000"},
			"rate 2":  {"USD", "USD", "0.9999"},
			"rate 3":  {"USD", "EUR", "0.0"},
			"rate 4":  {"USD", "EUR", "-0.9999"},
		}
		for name, tt := range tests {
			_, err := ParseExchRate(tt.base, tt.quote, tt.rate)
			if err == nil {
				t.Errorf("%v: ParseExchRate(%q, %q, %q) did not fail", name, tt.base, tt.quote, tt.rate)
			}
		}
	})
}

func TestMustParseExchRate(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustParseExchRate(\"USD\", \"EUR\", \"0\") did not panic")
		}
	}()
	MustParseExchRate("USD", "EUR", "0")
}

func TestExchangeRate_Inv(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			base, quote, rate, want string
		}{
			{"USD", "EUR", "0.5", "2"},
			{"USD", "CAD", "1.3", "0.7692307692307692308"},
			{"EUR", "JPY", "4", "0.25"},
		}
		for _, tt := range tests {
			r := MustParseExchRate(tt.base, tt.quote, tt.rate)
			got, err := r.Inv()
			if err != nil {
				t.Errorf("%q.Inv() failed: %v", r, err)
				continue
			}
			if got.Base() != r.Quote() || got.Quote() != r.Base() {
				t.Errorf("%q.Inv() = %q, currencies are not swapped", r, got)
			}
			if want := decimal.MustParse(tt.want); got.Decimal().Cmp(want) != 0 {
				t.Errorf("%q.Inv() = %q, want %v", r, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		q := ExchangeRate{}
		if _, err := q.Inv(); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("%q.Inv() error = %v, want %v", q, err, ErrInvalidRate)
		}
	})
}

func TestExchangeRate_Conv(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			base, quote, rate, amount, want string
		}{
			{"JPY", "USD", "0.0075", "100", "0.7500"},
			{"EUR", "USD", "1.0995", "100.00", "109.950000"},
			{"OMR", "USD", "2.59765", "100.000", "259.76500000"},
			{"USD", "CAD", "1.3", "1", "1.300"},
		}
		for _, tt := range tests {
			r := MustParseExchRate(tt.base, tt.quote, tt.rate)
			a := MustParseAmount(tt.base, tt.amount)
			got, err := r.Conv(a)
			if err != nil {
				t.Errorf("%q.Conv(%q) failed: %v", r, a, err)
				continue
			}
			want := MustParseAmount(tt.quote, tt.want)
			if got != want {
				t.Errorf("%q.Conv(%q) = %q, want %q", r, a, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		r := MustParseExchRate("USD", "CAD", "1.3")
		a := MustParseAmount("EUR", "1")
		if _, err := r.Conv(a); !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("%q.Conv(%q) error = %v, want %v", r, a, err, ErrCurrencyMismatch)
		}
	})
}
