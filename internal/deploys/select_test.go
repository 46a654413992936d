package deploys

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"deploy-dashboard/internal/models"
)

func versions(deploys []models.Deploy) []string {
	out := make([]string, 0, len(deploys))
	for _, d := range deploys {
		out = append(out, d.Version)
	}
	return out
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		input    []models.Deploy
		expected []string
	}{
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "single deploy",
			input:    []models.Deploy{{Version: "v1", DateFinished: "2024-01-01T00:00:00Z"}},
			expected: []string{"v1"},
		},
		{
			name: "newest first truncated to two",
			input: []models.Deploy{
				{Version: "v1", DateFinished: "2024-01-01T00:00:00Z"},
				{Version: "v2", DateFinished: "2024-03-01T00:00:00Z"},
				{Version: "v3", DateFinished: "2024-02-01T00:00:00Z"},
			},
			expected: []string{"v2", "v3"},
		},
		{
			name: "unparsable dates sort last",
			input: []models.Deploy{
				{Version: "broken", DateFinished: "not a date"},
				{Version: "empty"},
				{Version: "old", DateFinished: "2020-05-01T10:00:00Z"},
			},
			expected: []string{"old", "broken"},
		},
		{
			name: "undated deploys keep input order",
			input: []models.Deploy{
				{Version: "a"},
				{Version: "b", DateFinished: "garbage"},
				{Version: "c"},
			},
			expected: []string{"a", "b"},
		},
		{
			name: "mixed layouts compare by instant",
			input: []models.Deploy{
				{Version: "sqlite", DateFinished: "2024-06-01 12:00:00"},
				{Version: "offset", DateFinished: "2024-06-01T13:30:00+02:00"},
				{Version: "day", DateFinished: "2024-05-31"},
			},
			expected: []string{"sqlite", "offset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := versions(Select(tt.input))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Select() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSelectLengthAndOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	offsets := []int{5, 1, 9, 3, 7, 2, 8}

	for n := 0; n <= len(offsets); n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			input := make([]models.Deploy, 0, n)
			for i, h := range offsets[:n] {
				input = append(input, models.Deploy{
					Version:      fmt.Sprintf("v%d", i),
					DateFinished: base.Add(time.Duration(h) * time.Hour).Format(time.RFC3339),
				})
			}

			got := Select(input)

			want := min(DeployCount, n)
			if len(got) != want {
				t.Fatalf("len(Select()) = %d, want %d", len(got), want)
			}
			for i := 1; i < len(got); i++ {
				prev, _ := ParseFinished(got[i-1].DateFinished)
				cur, _ := ParseFinished(got[i].DateFinished)
				if prev.Before(cur) {
					t.Errorf("deploy %d (%s) finished before deploy %d (%s)", i-1, prev, i, cur)
				}
			}
		})
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	input := []models.Deploy{
		{Version: "v1", DateFinished: "2024-01-01T00:00:00Z"},
		{Version: "v2", DateFinished: "2024-03-01T00:00:00Z"},
		{Version: "v3", DateFinished: "2024-02-01T00:00:00Z"},
	}
	original := append([]models.Deploy(nil), input...)

	Select(input)

	if !reflect.DeepEqual(input, original) {
		t.Errorf("input mutated: got %v, want %v", input, original)
	}
}

func TestParseFinished(t *testing.T) {
	tests := []struct {
		value  string
		want   time.Time
		wantOK bool
	}{
		{"2024-03-01T00:00:00Z", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-01T00:00:00.123Z", time.Date(2024, 3, 1, 0, 0, 0, 123000000, time.UTC), true},
		{"2024-03-01T00:00:00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-01 08:15:00", time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC), true},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParseFinished(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("ParseFinished(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseFinished(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
