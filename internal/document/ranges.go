package document

import (
	"strconv"
	"strings"
)

// ParseRanges parses a comma-separated list of 1-based page numbers and
// inclusive ranges ("1-4,6,8-9") into zero-based indices. An empty or
// blank spec denotes all pages. Indices outside [0, pageCount) are
// silently dropped; malformed tokens fail with a *ParseError rather than
// silently producing wrong indices.
func ParseRanges(spec string, pageCount int) ([]int, error) {
	if strings.TrimSpace(spec) == "" {
		all := make([]int, pageCount)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	var result []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, &ParseError{Token: part, Reason: "range start is not a number"}
			}
			end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, &ParseError{Token: part, Reason: "range end is not a number"}
			}
			if end < start {
				return nil, &ParseError{Token: part, Reason: "range end precedes start"}
			}
			for p := start; p <= end; p++ {
				result = append(result, p-1)
			}
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil {
			return nil, &ParseError{Token: part, Reason: "not a number"}
		}
		result = append(result, p-1)
	}

	kept := result[:0]
	for _, idx := range result {
		if idx >= 0 && idx < pageCount {
			kept = append(kept, idx)
		}
	}
	return kept, nil
}
