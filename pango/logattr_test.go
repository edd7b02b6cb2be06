// SPDX-License-Identifier: Unlicense OR MIT

package pango

import "testing"

func TestComputeLogAttrsWordBoundaries(t *testing.T) {
	text := "go rocks"
	attrs := ComputeLogAttrs(text)
	if len(attrs) != len([]rune(text))+1 {
		t.Fatalf("expected one LogAttr per character plus a sentinel, got %d", len(attrs))
	}
	if !attrs[0].WordStart {
		t.Errorf("expected the first character to start a word")
	}
	if !attrs[2].WordEnd {
		t.Errorf("expected a word boundary after %q", text[:2])
	}
	if !attrs[3].WordStart {
		t.Errorf("expected a new word to start after the space")
	}
	last := attrs[len(attrs)-1]
	if !last.MandatoryBreak || !last.LineBreak {
		t.Errorf("expected the sentinel entry to force a mandatory break")
	}
}

func TestComputeLogAttrsMandatoryBreakOnNewline(t *testing.T) {
	text := "one\ntwo"
	attrs := ComputeLogAttrs(text)
	brokeAfterOne := false
	for i, a := range attrs {
		if a.MandatoryBreak && i == 4 {
			brokeAfterOne = true
		}
	}
	if !brokeAfterOne {
		t.Errorf("expected a mandatory break right after the newline character")
	}
}

func TestComputeLogAttrsSentenceBoundaries(t *testing.T) {
	text := "First. Second."
	attrs := ComputeLogAttrs(text)
	if !attrs[0].SentenceStart {
		t.Errorf("expected the first character to start a sentence")
	}
	foundSentenceBoundary := false
	for _, a := range attrs {
		if a.SentenceEnd {
			foundSentenceBoundary = true
		}
	}
	if !foundSentenceBoundary {
		t.Errorf("expected at least one sentence-end boundary in %q", text)
	}
}

func TestComputeLogAttrsWhitespaceFlag(t *testing.T) {
	text := "a b"
	attrs := ComputeLogAttrs(text)
	if attrs[0].White {
		t.Errorf("expected 'a' to not be flagged as whitespace")
	}
	if !attrs[1].White {
		t.Errorf("expected the space character to be flagged as whitespace")
	}
}
