package amount

import (
	"math"
	"testing"
)

func TestMoneyRange(t *testing.T) {
	tests := []struct {
		amount   Amount
		expected bool
	}{
		{0, true},
		{1, true},
		{MaxMoney, true},
		{MaxMoney + 1, false},
		{-1, false},
		{math.MinInt64, false},
		{math.MaxInt64, false},
	}

	for _, test := range tests {
		result := MoneyRange(test.amount)
		if result != test.expected {
			t.Errorf("TestMoneyRange: MoneyRange(%d): expected %t but got %t",
				test.amount, test.expected, result)
		}
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name        string
		a, b        Amount
		expectedSum Amount
		expectedOK  bool
	}{
		{"zeroes", 0, 0, 0, true},
		{"up to max", MaxMoney - 1, 1, MaxMoney, true},
		{"over max", MaxMoney, 1, MaxMoney + 1, false},
		{"negative result", 0, -1, -1, false},
		{"int64 overflow", math.MaxInt64, 1, 0, false},
		{"int64 underflow", math.MinInt64, -1, 0, false},
		{"two max amounts", MaxMoney, MaxMoney, 2 * MaxMoney, false},
	}

	for _, test := range tests {
		sum, ok := test.a.Add(test.b)
		if ok != test.expectedOK {
			t.Errorf("TestAdd: %s: expected ok %t but got %t", test.name, test.expectedOK, ok)
		}
		if sum != test.expectedSum {
			t.Errorf("TestAdd: %s: expected sum %d but got %d", test.name, test.expectedSum, sum)
		}
	}
}

func TestNegate(t *testing.T) {
	negated, ok := MaxMoney.Negate()
	if !ok || negated != -MaxMoney {
		t.Fatalf("TestNegate: expected (%d, true), got (%d, %t)", -MaxMoney, negated, ok)
	}
	if _, ok := Amount(math.MinInt64).Negate(); ok {
		t.Fatalf("TestNegate: negating MinInt64 unexpectedly succeeded")
	}
}

func TestInMagnitudeRange(t *testing.T) {
	if !(-MaxMoney).InMagnitudeRange() || !MaxMoney.InMagnitudeRange() {
		t.Fatalf("TestInMagnitudeRange: bounds should be in range")
	}
	if (MaxMoney + 1).InMagnitudeRange() || (-MaxMoney - 1).InMagnitudeRange() {
		t.Fatalf("TestInMagnitudeRange: values past the bounds should be out of range")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		amount   Amount
		expected string
	}{
		{0, "0.00000000 LTZ"},
		{1, "0.00000001 LTZ"},
		{150_000_000, "1.50000000 LTZ"},
		{-250_000_000, "-2.50000000 LTZ"},
		{math.MinInt64, "-92233720368.54775808 LTZ"},
	}

	for _, test := range tests {
		if result := test.amount.String(); result != test.expected {
			t.Errorf("TestString: %d: expected %q but got %q", int64(test.amount), test.expected, result)
		}
	}
}
