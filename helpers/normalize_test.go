package helpers

import (
	"testing"
	"time"
)

func TestToDollars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "billions", input: "1.5B", expected: 1_500_000_000},
		{name: "millions", input: "763M", expected: 763_000_000},
		{name: "thousands", input: "920K", expected: 920_000},
		{name: "trillions", input: "2.1T", expected: 2_100_000_000_000},
		{name: "lowercase suffix", input: "1.5b", expected: 1_500_000_000},
		{name: "thousands separators", input: "1,234,567", expected: 1_234_567},
		{name: "separators with suffix", input: "1,200.5M", expected: 1_200_500_000},
		{name: "plain number", input: "42", expected: 42},
		{name: "dash placeholder", input: "-", expected: 0},
		{name: "em dash placeholder", input: "—", expected: 0},
		{name: "n/a placeholder", input: "N/A", expected: 0},
		{name: "empty string", input: "", expected: 0},
		{name: "whitespace only", input: "   ", expected: 0},
		{name: "garbage", input: "not a number", expected: 0},
		{name: "bare suffix", input: "B", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToDollars(tt.input); got != tt.expected {
				t.Errorf("ToDollars(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSessionOf(t *testing.T) {
	tests := []struct {
		input    string
		expected ReportSession
	}{
		{"Before Open", SessionBeforeOpen},
		{"After Close", SessionAfterClose},
		{"  Before Open  ", SessionBeforeOpen},
		{"", SessionUnknown},
		{"During Market", SessionUnknown},
	}

	for _, tt := range tests {
		if got := SessionOf(tt.input); got != tt.expected {
			t.Errorf("SessionOf(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseReportDate(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso", input: "2024-03-04", want: "2024-03-04"},
		{name: "month day year", input: "Mar 4, 2024", want: "2024-03-04"},
		{name: "month day no year", input: "Mar 4", want: "2024-03-04"},
		{name: "garbage", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReportDate(tt.input, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReportDate(%q): %v", tt.input, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseReportDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestFearCategory(t *testing.T) {
	tests := []struct {
		value    int
		expected SentimentCategory
	}{
		{0, SentimentExtremeFear},
		{25, SentimentExtremeFear},
		{26, SentimentFear},
		{44, SentimentFear},
		{45, SentimentNeutral},
		{55, SentimentNeutral},
		{56, SentimentGreed},
		{74, SentimentGreed},
		{75, SentimentExtremeGreed},
		{100, SentimentExtremeGreed},
		{-1, SentimentUnknown},
		{101, SentimentUnknown},
	}

	for _, tt := range tests {
		if got := FearCategory(tt.value); got != tt.expected {
			t.Errorf("FearCategory(%d) = %q, want %q", tt.value, got, tt.expected)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("NVDA\nNVIDIA Corporation"); got != "NVDA" {
		t.Errorf("FirstLine = %q, want NVDA", got)
	}
	if got := FirstLine("NVDA"); got != "NVDA" {
		t.Errorf("FirstLine = %q, want NVDA", got)
	}
}
