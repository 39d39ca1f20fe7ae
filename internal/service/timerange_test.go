package service

import "testing"

func TestParseTimeRangeTwoTimestamps(t *testing.T) {
	start, end := parseTimeRange("2025/04/23 11:59 ~ 2025/07/23 11:59")
	if start != "2025/04/23 11:59" {
		t.Fatalf("unexpected start: %q", start)
	}
	if end != "2025/07/23 11:59" {
		t.Fatalf("unexpected end: %q", end)
	}
}

func TestParseTimeRangeKeepsEncounteredOrder(t *testing.T) {
	// Short month/day/hour forms must match too.
	start, end := parseTimeRange("2025/7/2 3:00 至 2025/7/23 11:59")
	if start != "2025/7/2 3:00" || end != "2025/7/23 11:59" {
		t.Fatalf("unexpected range: %q .. %q", start, end)
	}
}

func TestParseTimeRangeVersionTrigger(t *testing.T) {
	start, end := parseTimeRange("3.4版本更新后 ~ 2025/07/23 11:59")
	if start != "3.4版本更新后" {
		t.Fatalf("unexpected start: %q", start)
	}
	if end != "2025/07/23 11:59" {
		t.Fatalf("unexpected end: %q", end)
	}
}

func TestParseTimeRangeVersionTriggerWithoutVersionNumber(t *testing.T) {
	start, end := parseTimeRange("版本更新后 ~ 2025/07/23 11:59")
	if start != "未知版本版本更新后" {
		t.Fatalf("unexpected start: %q", start)
	}
	if end != "2025/07/23 11:59" {
		t.Fatalf("unexpected end: %q", end)
	}
}

func TestParseTimeRangeSingleTimestampIsEnd(t *testing.T) {
	start, end := parseTimeRange("2025/07/23 11:59")
	if start != "" {
		t.Fatalf("expected empty start, got %q", start)
	}
	if end != "2025/07/23 11:59" {
		t.Fatalf("unexpected end: %q", end)
	}
}

func TestParseTimeRangeSeparatorFallback(t *testing.T) {
	cases := []struct {
		in    string
		start string
		end   string
	}{
		{"TBD ~ 一周以后", "TBD", "一周以后"},
		{"开服 - 待定", "开服", "待定"},
		{"开服 至 待定", "开服", "待定"},
	}

	for _, tc := range cases {
		start, end := parseTimeRange(tc.in)
		if start != tc.start || end != tc.end {
			t.Fatalf("parseTimeRange(%q) = (%q, %q), want (%q, %q)",
				tc.in, start, end, tc.start, tc.end)
		}
	}
}

func TestParseTimeRangeSeparatorPriority(t *testing.T) {
	// "~" splits before "-" when both appear.
	start, end := parseTimeRange("a-b ~ c")
	if start != "a-b" || end != "c" {
		t.Fatalf("unexpected split: %q .. %q", start, end)
	}
}

func TestParseTimeRangeNoMatchReturnsOriginal(t *testing.T) {
	start, end := parseTimeRange("  敬请期待\n ")
	if start != "敬请期待" {
		t.Fatalf("unexpected start: %q", start)
	}
	if end != "" {
		t.Fatalf("expected empty end, got %q", end)
	}
}

func TestParseTimeRangeCollapsesWhitespace(t *testing.T) {
	start, end := parseTimeRange("2025/04/23   11:59\n~\t2025/07/23 11:59")
	if start != "2025/04/23 11:59" || end != "2025/07/23 11:59" {
		t.Fatalf("unexpected range: %q .. %q", start, end)
	}
}
