package shared

import (
	"testing"
	"time"
)

func TestUTCDay(t *testing.T) {
	tc := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "already midnight UTC",
			in:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "truncates time of day",
			in:   time.Date(2024, 3, 15, 23, 59, 59, 1234, time.UTC),
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "converts zone before truncating",
			in:   time.Date(2024, 3, 15, 22, 0, 0, 0, time.FixedZone("west", -5*3600)),
			want: time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := UTCDay(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("UTCDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	tc := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "plain day",
			in:   "2024-03-15",
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 timestamp",
			in:   "2024-03-15T18:30:00Z",
			want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset",
			in:   "2024-03-15T23:30:00-05:00",
			want: time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			in:      "not-a-date",
			wantErr: true,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDay(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDay(%q) unexpected error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDay(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	first := GenerateToken()
	second := GenerateToken()

	if first == second {
		t.Error("tokens should be unique")
	}
	if len(first) < 64 {
		t.Errorf("token too short: %d chars", len(first))
	}
}
