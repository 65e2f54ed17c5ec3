package normalization

import (
	"testing"
)

func TestStripMarkup_RemovesTags(t *testing.T) {
	got := StripMarkup(`<script>alert("x")</script>Felt <b>good</b> this week`)
	if got != "Felt good this week" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
}

func TestStripMarkup_TrimsWhitespace(t *testing.T) {
	got := StripMarkup("  slept well  ")
	if got != "slept well" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}

func TestStripMarkup_KeepsPlainPunctuation(t *testing.T) {
	got := StripMarkup("ups & downs, 7/10")
	if got != "ups & downs, 7/10" {
		t.Fatalf("plain text should pass through, got %q", got)
	}
}

func TestStripMarkupPtr_NilStaysNil(t *testing.T) {
	if got := StripMarkupPtr(nil); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
}

func TestStripMarkupPtr_EmptyAfterCleaningBecomesNil(t *testing.T) {
	in := "<img src=x>"
	if got := StripMarkupPtr(&in); got != nil {
		t.Fatalf("expected nil after stripping, got %q", *got)
	}
}

func TestParseInputString_LowersAndTrims(t *testing.T) {
	if got := ParseInputString("  Client@Example.COM "); got != "client@example.com" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
