package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			name: "rfc3339",
			in:   "2024-01-15T10:30:00Z",
			want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset",
			in:   "2024-01-15T13:30:00+03:00",
			want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "epoch milliseconds",
			in:   "1705314600000",
			want: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "date only",
			in:   "2024-01-15",
			want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
		{
			name:    "garbage",
			in:      "not-a-date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	if got := Format(ts, ModeWide); got != "15 January 2024" {
		t.Errorf("ModeWide = %q", got)
	}
	if got := Format(ts, ModeStandard); got != "2024-01-15" {
		t.Errorf("ModeStandard = %q", got)
	}
	if got := Format(ts, ModeStandardWithTime); got != "2024-01-15 10:30" {
		t.Errorf("ModeStandardWithTime = %q", got)
	}
	if got := Format(ts, ModeWideWithTime); got != "15 January 2024, 10:30" {
		t.Errorf("ModeWideWithTime = %q", got)
	}
}

func TestFormatOrPlaceholder(t *testing.T) {
	if got := FormatOrPlaceholder(nil, ModeWide); got != "--" {
		t.Errorf("nil date = %q, want --", got)
	}
	ts := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatOrPlaceholder(&ts, ModeWide); got != "15 January 2024" {
		t.Errorf("got %q", got)
	}
}

func TestFlexTime_UnmarshalJSON(t *testing.T) {
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
	}{
		{"string timestamp", `{"date_created":"2024-01-15T10:30:00Z"}`},
		{"epoch millis number", `{"date_created":1705314600000}`},
		{"epoch millis string", `{"date_created":"1705314600000"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				DateCreated FlexTime `json:"date_created"`
			}
			if err := json.Unmarshal([]byte(tt.in), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !payload.DateCreated.Equal(want) {
				t.Errorf("got %v, want %v", payload.DateCreated.Time, want)
			}
		})
	}
}

func TestFlexTime_Null(t *testing.T) {
	var payload struct {
		DateCreated FlexTime `json:"date_created"`
	}
	if err := json.Unmarshal([]byte(`{"date_created":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.DateCreated.IsZero() {
		t.Errorf("expected zero time for null, got %v", payload.DateCreated.Time)
	}
}

func TestFlexTime_MarshalJSON(t *testing.T) {
	f := FlexTime{Time: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15T10:30:00Z"` {
		t.Errorf("got %s", b)
	}

	b, err = json.Marshal(FlexTime{})
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("zero time = %s, want null", b)
	}
}
