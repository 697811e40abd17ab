package money

import "testing"

func TestFromMajorString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
	}{
		{"10.00", 1000},
		{"0.01", 1},
		{"12.5", 1250},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := FromMajorString(tc.in)
		if err != nil {
			t.Fatalf("FromMajorString(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("FromMajorString(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	if _, err := FromMajorString("not-a-number"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestToMajorString(t *testing.T) {
	t.Parallel()

	if got := ToMajorString(1000); got != "10.00" {
		t.Fatalf("ToMajorString(1000) = %s", got)
	}
	if got := ToMajorString(5); got != "0.05" {
		t.Fatalf("ToMajorString(5) = %s", got)
	}
}

func TestApplyDiscountPercent(t *testing.T) {
	t.Parallel()

	// 20% off 100.00 -> 80.00, the exact bulk-order price list formula.
	if got := ApplyDiscountPercent(10000, 20); got != 8000 {
		t.Fatalf("20%% off 10000 = %d", got)
	}
	// Zero discount degenerates to the catalog price, no special-casing.
	if got := ApplyDiscountPercent(12345, 0); got != 12345 {
		t.Fatalf("0%% off should be identity, got %d", got)
	}
	// Rounding: 15% off 999 = 849.15 -> 849.
	if got := ApplyDiscountPercent(999, 15); got != 849 {
		t.Fatalf("15%% off 999 = %d", got)
	}
	// Half-away rounding: 25% off 2 = 1.5 -> 2.
	if got := ApplyDiscountPercent(2, 25); got != 2 {
		t.Fatalf("25%% off 2 = %d", got)
	}
	if got := ApplyDiscountPercent(500, 100); got != 0 {
		t.Fatalf("100%% discount should zero the price, got %d", got)
	}
}
