package jsonfile

import "testing"

type record struct {
	id   string
	tags []string
}

func recID(r record) string     { return r.id }
func recTags(r record) []string { return r.tags }

func TestEquals(t *testing.T) {
	records := []record{{id: "a"}, {id: "b"}, {id: "a"}}

	got, ok := findOne(records, Equals[record, string]{Field: recID, Value: "b"})
	if !ok || got.id != "b" {
		t.Fatalf("expected to find b, got %v %v", got, ok)
	}

	if _, ok := findOne(records, Equals[record, string]{Field: recID, Value: "z"}); ok {
		t.Fatalf("expected no match for z")
	}
}

func TestFindOne_ReturnsFirstInCollectionOrder(t *testing.T) {
	records := []record{
		{id: "1", tags: []string{"x"}},
		{id: "2", tags: []string{"x"}},
	}

	got, ok := findOne(records, ArrayContains[record, string]{Field: recTags, Value: "x"})
	if !ok || got.id != "1" {
		t.Fatalf("expected first match (id 1), got %v %v", got, ok)
	}
}

func TestArrayContains(t *testing.T) {
	records := []record{
		{id: "1", tags: []string{"a", "b"}},
		{id: "2", tags: []string{"b", "c"}},
		{id: "3", tags: nil},
	}

	matches := findAll(records, ArrayContains[record, string]{Field: recTags, Value: "b"})
	if len(matches) != 2 || matches[0].id != "1" || matches[1].id != "2" {
		t.Fatalf("unexpected matches: %v", matches)
	}

	if got := findAll(records, ArrayContains[record, string]{Field: recTags, Value: "z"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestArrayContainsAll(t *testing.T) {
	records := []record{
		{id: "1", tags: []string{"a", "b"}},
		{id: "2", tags: []string{"b", "a"}},
		{id: "3", tags: []string{"a"}},
	}

	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{name: "pair in either element order", values: []string{"a", "b"}, want: []string{"1", "2"}},
		{name: "reversed query order", values: []string{"b", "a"}, want: []string{"1", "2"}},
		{name: "single value", values: []string{"a"}, want: []string{"1", "2", "3"}},
		{name: "missing value", values: []string{"a", "z"}, want: nil},
		{name: "empty values matches everything", values: nil, want: []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := findAll(records, ArrayContainsAll[record, string]{Field: recTags, Values: tt.values})
			if len(matches) != len(tt.want) {
				t.Fatalf("expected %d matches, got %d", len(tt.want), len(matches))
			}
			for i, m := range matches {
				if m.id != tt.want[i] {
					t.Errorf("match %d: expected id %s, got %s", i, tt.want[i], m.id)
				}
			}
		})
	}
}
