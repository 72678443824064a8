package currency

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Code
		wantErr bool
	}{
		{"USD", USD, false},
		{"usd", USD, false},
		{" jpy ", JPY, false},
		{"EUR", EUR, false},
		{"CHF", "", true},
		{"", "", true},
		{"DOLLARS", "", true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMinorUnits(t *testing.T) {
	if JPY.MinorUnits() != 0 {
		t.Errorf("JPY minor units = %d, want 0", JPY.MinorUnits())
	}
	for _, code := range Codes() {
		if code == JPY {
			continue
		}
		if code.MinorUnits() != 2 {
			t.Errorf("%s minor units = %d, want 2", code, code.MinorUnits())
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := USD.FormatAmount(40.1667); got != "$40.17" {
		t.Errorf("USD.FormatAmount = %q, want $40.17", got)
	}
	if got := JPY.FormatAmount(1500.0); got != "¥1500" {
		t.Errorf("JPY.FormatAmount = %q, want ¥1500", got)
	}
}
