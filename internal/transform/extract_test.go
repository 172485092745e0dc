package transform

import "testing"

func TestExtractFenced(t *testing.T) {
	in := "```python\ndef f():\n    pass\n```"
	want := "def f():\n    pass"

	if got := Extract(in); got != want {
		t.Errorf("Extract = %q, want %q", got, want)
	}
}

func TestExtractFencedNoLanguage(t *testing.T) {
	in := "```\nplain\n```"

	if got := Extract(in); got != "plain" {
		t.Errorf("Extract = %q, want %q", got, "plain")
	}
}

func TestExtractUnfencedUnchanged(t *testing.T) {
	in := "no fences here\njust text"

	if got := Extract(in); got != in {
		t.Errorf("Extract changed unfenced input: %q", got)
	}
}

func TestExtractTrailingNewline(t *testing.T) {
	in := "```go\nx := 1\n```\n"

	if got := Extract(in); got != "x := 1" {
		t.Errorf("Extract = %q, want %q", got, "x := 1")
	}
}

func TestExtractOpeningFenceOnly(t *testing.T) {
	in := "```go\nunclosed"

	if got := Extract(in); got != in {
		t.Errorf("Extract changed input with unmatched fence: %q", got)
	}
}

func TestExtractInteriorFencesKept(t *testing.T) {
	in := "```md\nsome text\n```go\ncode\n```"

	want := "some text\n```go\ncode"
	if got := Extract(in); got != want {
		t.Errorf("Extract = %q, want %q", got, want)
	}
}

func TestExtractEmpty(t *testing.T) {
	if got := Extract(""); got != "" {
		t.Errorf("Extract(\"\") = %q", got)
	}
}
