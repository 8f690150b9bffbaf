package reconstruct

import "testing"

func TestFixSpacing(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"letter-digit seam", "Invoice2024", "Invoice 2024"},
		{"glued amounts", "10.00200.00", "10.00 200.00"},
		{"camel case seam", "TotalAmount", "Total Amount"},
		{"already correct", "Total Amount Due", "Total Amount Due"},
		{"empty", "", ""},
		{"multiple seams in one line", "Qty2 Amount10.00300.00", "Qty 2 Amount 10.00 300.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixSpacing(tt.input); got != tt.want {
				t.Errorf("FixSpacing(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFixSpacingTerminates(t *testing.T) {
	// A long alternating string forces many passes; the cap must still
	// return in bounded time.
	input := ""
	for i := 0; i < 100; i++ {
		input += "a1"
	}
	_ = FixSpacing(input)
}
