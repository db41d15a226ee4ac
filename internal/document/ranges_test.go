package document

import (
	"errors"
	"testing"
)

func TestParseRanges(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		pageCount int
		want      []int
		wantErr   bool
	}{
		{"range plus single", "1-3,5", 10, []int{0, 1, 2, 4}, false},
		{"empty means all", "", 5, []int{0, 1, 2, 3, 4}, false},
		{"blank means all", "   ", 3, []int{0, 1, 2}, false},
		{"out of range dropped", "20", 5, []int{}, false},
		{"partially out of range", "4-8", 5, []int{3, 4}, false},
		{"spaces around tokens", " 2 , 4-5 ", 10, []int{1, 3, 4}, false},
		{"trailing comma", "1,", 5, []int{0}, false},
		{"non-numeric token", "abc", 5, nil, true},
		{"non-numeric range start", "x-3", 5, nil, true},
		{"non-numeric range end", "1-y", 5, nil, true},
		{"reversed range", "5-2", 10, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRanges(tt.spec, tt.pageCount)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRanges(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if tt.wantErr {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("ParseRanges(%q) error type = %T, want *ParseError", tt.spec, err)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseRanges(%q) = %v, want %v", tt.spec, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseRanges(%q)[%d] = %d, want %d", tt.spec, i, got[i], tt.want[i])
				}
			}
		})
	}
}
