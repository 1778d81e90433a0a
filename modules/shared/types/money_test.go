package types

import (
	"errors"
	"testing"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("12.99", "USD")
	if err != nil {
		t.Fatalf("NewMoneyFromString: %v", err)
	}
	if got := m.Amount().String(); got != "12.99" {
		t.Errorf("amount = %s, want 12.99", got)
	}
	if m.Currency() != "USD" {
		t.Errorf("currency = %s, want USD", m.Currency())
	}
}

func TestNewMoneyFromStringInvalid(t *testing.T) {
	if _, err := NewMoneyFromString("not-a-number", "USD"); err == nil {
		t.Error("expected error for malformed amount")
	}
	if _, err := NewMoneyFromString("10.00", ""); err == nil {
		t.Error("expected error for missing currency")
	}
}

func TestMoneyMultiplyExact(t *testing.T) {
	// 3 x 12.99 must be exactly 38.97, not 38.970000000000002.
	m := MustNewMoneyFromString("12.99", "USD")
	got := m.Multiply(3)
	if got.Amount().String() != "38.97" {
		t.Errorf("3 x 12.99 = %s, want 38.97", got.Amount().String())
	}
}

func TestMoneyAdd(t *testing.T) {
	a := MustNewMoneyFromString("0.10", "USD")
	b := MustNewMoneyFromString("0.20", "USD")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !sum.Equals(MustNewMoneyFromString("0.30", "USD")) {
		t.Errorf("0.10 + 0.20 = %s, want 0.30", sum.Amount().String())
	}
}

func TestMoneyAddCurrencyMismatch(t *testing.T) {
	a := MustNewMoneyFromString("1.00", "USD")
	b := MustNewMoneyFromString("1.00", "EUR")

	if _, err := a.Add(b); err == nil {
		t.Error("expected error adding different currencies")
	}
}

func TestMoneyEqualsIgnoresScale(t *testing.T) {
	a := MustNewMoneyFromString("10", "USD")
	b := MustNewMoneyFromString("10.00", "USD")
	if !a.Equals(b) {
		t.Error("10 USD should equal 10.00 USD")
	}
}

func TestParseIDInvalid(t *testing.T) {
	if _, err := ParseBookID("not-a-uuid"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
}
