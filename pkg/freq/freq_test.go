package freq

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bastiangx/pgalyzer/pkg/document"
)

const lamb = "mary had a little lamb mary had a little lamb"

func TestWordsScenario(t *testing.T) {
	doc := document.Load(lamb, true)
	got := Words(doc)
	expected := Counts{"mary": 2, "had": 2, "a": 2, "little": 2, "lamb": 2}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Words = %v, want %v", got, expected)
	}
}

func TestNGrams(t *testing.T) {
	doc := document.Load("a b c\nb c\n\nd", false)

	testCases := []struct {
		n        int
		expected Counts
	}{
		{1, Counts{"a": 1, "b": 2, "c": 2, "d": 1}},
		{2, Counts{"a b": 1, "b c": 2}},
		{3, Counts{"a b c": 1}},
		{4, Counts{}},
	}

	for _, tc := range testCases {
		got, err := NGrams(doc, tc.n)
		if err != nil {
			t.Fatalf("NGrams(%d): %v", tc.n, err)
		}
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("NGrams(%d) = %v, want %v", tc.n, got, tc.expected)
		}
	}
}

func TestNGramsNeverCrossLines(t *testing.T) {
	doc := document.Load("x y\nz w", false)
	got, _ := NGrams(doc, 2)
	if _, ok := got["y z"]; ok {
		t.Error("bigram crossed a line boundary")
	}
}

func TestNGramsInvalidSize(t *testing.T) {
	doc := document.Load("a b", false)
	for _, n := range []int{0, -1} {
		if _, err := NGrams(doc, n); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NGrams(%d) err = %v, want ErrInvalidSize", n, err)
		}
	}
}

func TestNGramWindowSum(t *testing.T) {
	text := "the quick brown fox\njumps over\n\nthe lazy dog again and again\none"
	doc := document.Load(text, false)

	for n := 1; n <= 7; n++ {
		counts, err := NGrams(doc, n)
		if err != nil {
			t.Fatalf("NGrams(%d): %v", n, err)
		}
		expected := 0
		for _, line := range doc.Lines() {
			if w := len(line) - n + 1; w > 0 {
				expected += w
			}
		}
		if got := Total(counts); got != expected {
			t.Errorf("n=%d: total %d, want %d", n, got, expected)
		}
	}
}

func TestWordsMatchesUnigrams(t *testing.T) {
	doc := document.Load("The cat and the Cat\nand THE end", false)
	unigrams, _ := NGrams(doc, 1)
	if words := Words(doc); !reflect.DeepEqual(words, unigrams) {
		t.Errorf("Words = %v, NGrams(1) = %v", words, unigrams)
	}
}

func TestRank(t *testing.T) {
	counts := Counts{
		"the":     3,
		"Project": 2,
		"apple":   2,
		"The":     2,
		"the end": 1,
		"Zebra":   1,
		"zebra":   1,
	}
	got := Rank(counts)
	expected := []Entry{
		{"the", 3},
		{"apple", 2},
		{"Project", 2},
		{"The", 2},
		{"the end", 1},
		{"Zebra", 1},
		{"zebra", 1},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Rank = %v, want %v", got, expected)
	}
}

func TestRankDeterministic(t *testing.T) {
	doc := document.Load("b a B A c b a C", false)
	first := Rank(Words(doc))
	for i := 0; i < 20; i++ {
		if again := Rank(Words(doc)); !reflect.DeepEqual(first, again) {
			t.Fatalf("ranking changed between runs: %v vs %v", first, again)
		}
	}
}

func TestTop(t *testing.T) {
	counts := Counts{"a": 3, "b": 2, "c": 1}
	if got := Top(counts, 2); !reflect.DeepEqual(got, []Entry{{"a", 3}, {"b", 2}}) {
		t.Errorf("Top(2) = %v", got)
	}
	if got := Top(counts, 0); len(got) != 3 {
		t.Errorf("Top(0) returned %d entries, want 3", len(got))
	}
	if got := Top(counts, 10); len(got) != 3 {
		t.Errorf("Top(10) returned %d entries, want 3", len(got))
	}
}

func BenchmarkNGrams(b *testing.B) {
	doc := document.Load(lamb+"\n"+lamb+"\n"+lamb, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = NGrams(doc, 2)
	}
}
