package batch

import (
	"errors"
	"testing"
)

func TestIncrement(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "1"},
		{"ITEM-001", "ITEM-002"},
		{"ITEM-009", "ITEM-010"},
		{"099", "100"},
		{"0099", "0100"},
		{"9", "10"},
		{"PROD100", "PROD101"},
		{"A1B2", "A1B3"},
	}

	for _, tt := range tests {
		got, err := Increment(tt.in)
		if err != nil {
			t.Errorf("Increment(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Increment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIncrementNoSuffix(t *testing.T) {
	for _, in := range []string{"ABC", "ITEM-", "12X"} {
		_, err := Increment(in)
		if !errors.Is(err, ErrNoNumericSuffix) {
			t.Errorf("Increment(%q) error = %v, want ErrNoNumericSuffix", in, err)
		}
	}
}

func TestExpand(t *testing.T) {
	items, err := Expand("ITEM-9000", "Widget", "$9.99", 2)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	want := []struct{ data, name string }{
		{"ITEM-9000", "Widget 1"},
		{"ITEM-9001", "Widget 2"},
	}
	for i, w := range want {
		if items[i].Data != w.data {
			t.Errorf("item %d data = %q, want %q", i, items[i].Data, w.data)
		}
		if items[i].Name != w.name {
			t.Errorf("item %d name = %q, want %q", i, items[i].Name, w.name)
		}
		if items[i].Price != "$9.99" {
			t.Errorf("item %d price = %q, want %q", i, items[i].Price, "$9.99")
		}
	}
}

func TestExpandOverflowGrowsWidth(t *testing.T) {
	items, err := Expand("ITEM-099", "", "", 3)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	want := []string{"ITEM-099", "ITEM-100", "ITEM-101"}
	for i, w := range want {
		if items[i].Data != w {
			t.Errorf("item %d data = %q, want %q", i, items[i].Data, w)
		}
	}
}

func TestExpandPreservesZeroPadding(t *testing.T) {
	items, err := Expand("SKU-0007", "", "", 2)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if items[0].Data != "SKU-0007" || items[1].Data != "SKU-0008" {
		t.Errorf("got %q, %q, want SKU-0007, SKU-0008", items[0].Data, items[1].Data)
	}
}

func TestExpandBareNames(t *testing.T) {
	items, err := Expand("X1", "", "", 2)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if items[0].Name != "1" || items[1].Name != "2" {
		t.Errorf("names = %q, %q, want 1, 2", items[0].Name, items[1].Name)
	}
}

func TestExpandErrors(t *testing.T) {
	if _, err := Expand("NOPE", "Widget", "", 3); !errors.Is(err, ErrNoNumericSuffix) {
		t.Errorf("Expand without suffix error = %v, want ErrNoNumericSuffix", err)
	}
	if _, err := Expand("", "Widget", "", 3); !errors.Is(err, ErrNoNumericSuffix) {
		t.Errorf("Expand with empty start error = %v, want ErrNoNumericSuffix", err)
	}
	if _, err := Expand("ITEM-1", "Widget", "", 0); err == nil {
		t.Error("Expand with count 0 should fail")
	}
	if _, err := Expand("ITEM-1", "Widget", "", -7); err == nil {
		t.Error("Expand with negative count should fail")
	}
}

func TestExpandCountCap(t *testing.T) {
	items, err := Expand("ITEM-1", "", "", MaxCount)
	if err != nil {
		t.Fatalf("Expand at the cap failed: %v", err)
	}
	if len(items) != MaxCount {
		t.Fatalf("got %d items, want %d", len(items), MaxCount)
	}

	for _, n := range []int{MaxCount + 1, 2000000000} {
		if _, err := Expand("ITEM-1", "", "", n); err == nil {
			t.Errorf("Expand with count %d should fail", n)
		}
	}
}
