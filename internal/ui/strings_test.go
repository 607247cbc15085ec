package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/var/log/very/long/path/app.log", 16)
	if len([]rune(got)) != 16 {
		t.Fatalf("truncateMiddle length = %d, want 16 (%q)", len([]rune(got)), got)
	}
	if got[len(got)-7:] != "app.log" {
		t.Fatalf("truncateMiddle = %q, want it to keep the file name", got)
	}
}

func TestClipLines(t *testing.T) {
	lines := clipLines("one\ntwo\nthree", 2, 2)
	if len(lines) != 2 || lines[0] != "on" || lines[1] != "tw" {
		t.Fatalf("clipLines = %q", lines)
	}
}
