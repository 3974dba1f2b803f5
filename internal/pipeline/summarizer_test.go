package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gibbsgresge/CrisisEventSite/models"
)

func longSource(origin string) models.SourceText {
	return models.SourceText{
		Origin: origin,
		Body:   strings.Repeat("Evacuations continue as the storm approaches the coast. ", 5),
	}
}

func TestSummarize_SkipsShortSources(t *testing.T) {
	llm := &fakeProvider{fn: func(string) (string, error) {
		t.Fatal("generator must not be called for a short source")
		return "", nil
	}}
	s := NewSummarizer(llm, discardLogger())

	got := s.Summarize(context.Background(), models.SourceText{Origin: "x", Body: "too short"}, "Hurricane")
	if got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestSummarize_LengthFloorCountsCharactersNotBytes(t *testing.T) {
	// 60 characters but 120 bytes: still under the floor.
	llm := &fakeProvider{fn: func(string) (string, error) { return "summary", nil }}
	s := NewSummarizer(llm, discardLogger())

	src := models.SourceText{Origin: "x", Body: strings.Repeat("é", 60)}
	if got := s.Summarize(context.Background(), src, "Flood"); got != "" {
		t.Fatalf("expected multi-byte short source to be skipped, got %q", got)
	}
	if llm.callCount() != 0 {
		t.Fatalf("expected 0 generator calls, got %d", llm.callCount())
	}

	// 100 characters of multi-byte text clears the floor.
	src.Body = strings.Repeat("é", 100)
	if got := s.Summarize(context.Background(), src, "Flood"); got != "summary" {
		t.Fatalf("expected 100-char source to be summarized, got %q", got)
	}
}

func TestSummarize_TrimsBeforeMeasuring(t *testing.T) {
	// 99 meaningful chars padded with whitespace must still be skipped.
	body := "   " + strings.Repeat("a", MinSourceChars-1) + "   \n"
	llm := &fakeProvider{fn: func(string) (string, error) { return "summary", nil }}
	s := NewSummarizer(llm, discardLogger())

	if got := s.Summarize(context.Background(), models.SourceText{Body: body}, "Flood"); got != "" {
		t.Fatalf("expected padded short source to be skipped, got %q", got)
	}
	if llm.callCount() != 0 {
		t.Fatalf("expected 0 generator calls, got %d", llm.callCount())
	}
}

func TestSummarize_GeneratorFailureYieldsEmpty(t *testing.T) {
	llm := &fakeProvider{fn: func(string) (string, error) {
		return "", errors.New("model down")
	}}
	s := NewSummarizer(llm, discardLogger())

	if got := s.Summarize(context.Background(), longSource("a"), "Wildfire"); got != "" {
		t.Fatalf("expected empty summary on generator failure, got %q", got)
	}
}

func TestSummarizeAll_PreservesOrderAndLength(t *testing.T) {
	llm := &fakeProvider{fn: func(prompt string) (string, error) {
		// Echo a marker derived from the source so slots are distinguishable.
		for i := 0; i < 5; i++ {
			if strings.Contains(prompt, fmt.Sprintf("marker-%d", i)) {
				return fmt.Sprintf("summary-%d", i), nil
			}
		}
		return "unknown", nil
	}}
	s := NewSummarizer(llm, discardLogger())

	sources := make([]models.SourceText, 5)
	for i := range sources {
		sources[i] = models.SourceText{
			Origin: fmt.Sprintf("url-%d", i),
			Body:   fmt.Sprintf("marker-%d ", i) + strings.Repeat("x", MinSourceChars),
		}
	}

	got := s.SummarizeAll(context.Background(), sources, "Earthquake")
	if len(got) != len(sources) {
		t.Fatalf("expected %d summaries, got %d", len(sources), len(got))
	}
	for i, sm := range got {
		if sm.Index != i {
			t.Fatalf("slot %d carries index %d", i, sm.Index)
		}
		if want := fmt.Sprintf("summary-%d", i); sm.Body != want {
			t.Fatalf("slot %d: expected %q, got %q", i, want, sm.Body)
		}
	}
}

func TestSummarizeAll_ExclusionProperty(t *testing.T) {
	// Sources under the length floor never reach the generator, whatever
	// the mix. Mirrors feeding 1000 short synthetic sources through.
	llm := &fakeProvider{fn: func(string) (string, error) { return "summary", nil }}
	s := NewSummarizer(llm, discardLogger())

	sources := make([]models.SourceText, 1000)
	for i := range sources {
		sources[i] = models.SourceText{Body: strings.Repeat("z", i%MinSourceChars)}
	}

	got := s.SummarizeAll(context.Background(), sources, "Tornado")
	for i, sm := range got {
		if sm.Body != "" {
			t.Fatalf("short source %d produced a summary", i)
		}
	}
	if llm.callCount() != 0 {
		t.Fatalf("expected 0 generator calls for short sources, got %d", llm.callCount())
	}
}
