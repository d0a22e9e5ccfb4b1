package util

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"  hello  ", 10, "hello"},
		{"hello world", 5, "hello"},
		{"héllo", 2, "hé"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Fatalf("Truncate(%q,%d): got=%q want=%q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if d, err := ParseDate(""); err != nil || d != nil {
		t.Fatalf("empty: got=%v err=%v", d, err)
	}
	d, err := ParseDate("2024-03-05")
	if err != nil || d.Year() != 2024 || d.Month() != 3 || d.Day() != 5 {
		t.Fatalf("date: got=%v err=%v", d, err)
	}
	if _, err := ParseDate("2024-03-05T10:00:00Z"); err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestCleanStrings(t *testing.T) {
	got := CleanStrings([]string{" a", "", "b", "a", "  "})
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
	if got := CleanStrings(nil); got == nil || len(got) != 0 {
		t.Fatalf("nil input should yield empty slice, got=%v", got)
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil || id == GenerateID() {
		t.Fatalf("unexpected id %q", id)
	}
}
