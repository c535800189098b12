package determinism

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestHashJSONStableAcrossMapOrder(t *testing.T) {
	a := map[string]int{"cement": 1, "sand": 2, "steel": 3}
	b := map[string]int{"steel": 3, "cement": 1, "sand": 2}

	ha, err := HashJSON(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := HashJSON(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Errorf("hashes differ: %s vs %s", ha.Hex(), hb.Hex())
	}
	if len(ha.Short()) != 12 {
		t.Errorf("short hash length = %d", len(ha.Short()))
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.00", "0.00"},
		{"999.50", "999.50"},
		{"1000.00", "1,000.00"},
		{"1234567.89", "1,234,567.89"},
		{"-45000", "-45,000"},
		{"123456", "123,456"},
	}
	for _, tt := range tests {
		if got := GroupThousands(tt.in); got != tt.want {
			t.Errorf("GroupThousands(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	m := NewMoney(decimal.RequireFromString("1250000.5"), "INR")
	if got := m.String(); got != "INR 1,250,000.50" {
		t.Errorf("String() = %q", got)
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]bool{"tile": true, "brick": true, "paint": true})
	want := []string{"brick", "paint", "tile"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
