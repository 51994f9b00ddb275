package collection

import "testing"

func TestMoney_Arithmetic(t *testing.T) {
	price := M(12.50)

	if got := price.MulQty(3); !got.Equal(M(37.50)) {
		t.Errorf("MulQty(3) = %s, want $37.50", got)
	}
	if got := M(100).DivQty(4); !got.Equal(M(25)) {
		t.Errorf("DivQty(4) = %s, want $25.00", got)
	}
	if got := price.Sub(M(10)).MulQty(2); !got.Equal(M(5)) {
		t.Errorf("gain = %s, want $5.00", got)
	}
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		amount Money
		want   string
	}{
		{M(0), "$0.00"},
		{M(45), "$45.00"},
		{M(1234.5), "$1,234.50"},
		{M(-90), "-$90.00"},
	}
	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	if got := M(5).SignedString(); got != "+$5.00" {
		t.Errorf("SignedString() = %q, want %q", got, "+$5.00")
	}
	if got := M(0).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want %q", got, "-")
	}
}

func TestParseMoney(t *testing.T) {
	got, err := ParseMoney("12.34")
	if err != nil {
		t.Fatalf("ParseMoney() failed: %v", err)
	}
	if !got.Equal(M(12.34)) {
		t.Errorf("ParseMoney() = %s, want $12.34", got)
	}
	if _, err := ParseMoney("twelve"); err == nil {
		t.Error("ParseMoney() should reject non-numeric input")
	}
}
