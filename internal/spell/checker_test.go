package spell

import (
	"testing"
	"time"
)

func TestKnownWord(t *testing.T) {
	c := NewChecker()

	tests := []struct {
		word string
		want bool
	}{
		{"hello", true},
		{"world", true},
		{"the", true},
		{"Writing", true}, // case-insensitive
		{"helllo", false},
		{"wrold", false},
		{"", true},
	}

	for _, tt := range tests {
		if got := c.KnownWord(tt.word); got != tt.want {
			t.Errorf("KnownWord(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestCheckReportsOffsets(t *testing.T) {
	c := NewChecker()
	issues := c.Check("the helllo word")

	var spelling []Issue
	for _, is := range issues {
		if is.Kind == KindSpelling {
			spelling = append(spelling, is)
		}
	}
	if len(spelling) != 1 {
		t.Fatalf("spelling issues = %+v", spelling)
	}
	if spelling[0].Start != 4 || spelling[0].End != 10 {
		t.Errorf("issue span = [%d,%d), want [4,10)", spelling[0].Start, spelling[0].End)
	}
	if spelling[0].Word != "helllo" {
		t.Errorf("issue word = %q", spelling[0].Word)
	}
}

func TestCheckSkipsAcronymsAndNumbers(t *testing.T) {
	c := NewChecker()
	for _, is := range c.Check("NASA sent 3 ships") {
		if is.Kind == KindSpelling && (is.Word == "NASA" || is.Word == "3") {
			t.Errorf("should not flag %q", is.Word)
		}
	}
}

func TestGrammarDoubledWord(t *testing.T) {
	c := NewChecker()
	issues := c.Check("The the story begins")

	found := false
	for _, is := range issues {
		if is.Kind == KindGrammar && is.Start == 4 && is.End == 7 {
			found = true
		}
	}
	if !found {
		t.Errorf("doubled word not flagged: %+v", issues)
	}
}

func TestGrammarLowercaseSentenceStart(t *testing.T) {
	c := NewChecker()
	issues := c.Check("Good start. bad start")

	found := false
	for _, is := range issues {
		if is.Kind == KindGrammar && is.Word == "bad" {
			found = true
		}
	}
	if !found {
		t.Errorf("lowercase sentence start not flagged: %+v", issues)
	}
}

func TestTrainExtendsVocabulary(t *testing.T) {
	c := NewChecker()
	if c.KnownWord("inkwell") {
		t.Skip("word unexpectedly in base dictionary")
	}
	c.Train([]string{"inkwell"})
	if !c.KnownWord("inkwell") {
		t.Error("trained word still unknown")
	}
}

func TestServiceDeliversResult(t *testing.T) {
	svc := NewService(NewChecker(), nil)
	svc.Request(3, 7, "a helllo there")

	select {
	case res := <-svc.Results():
		if res.Index != 3 || res.Generation != 7 {
			t.Errorf("result = %+v", res)
		}
		if len(res.Issues) == 0 {
			t.Error("expected at least one issue")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no result delivered")
	}
}

func TestServiceSupersededRequestDropped(t *testing.T) {
	svc := NewService(NewChecker(), nil)

	// The second request supersedes the first before either completes is
	// not guaranteed, so request, then bump the generation and request
	// again; only generation 2 may arrive last.
	svc.Request(0, 1, "first helllo text")
	svc.Request(0, 2, "second helllo text")

	deadline := time.After(5 * time.Second)
	var got []Result
	for len(got) < 1 {
		select {
		case res := <-svc.Results():
			got = append(got, res)
			if res.Generation == 2 {
				return // newest result arrived; older one was dropped or preceded it
			}
		case <-deadline:
			t.Fatal("no results delivered")
		}
	}
}
