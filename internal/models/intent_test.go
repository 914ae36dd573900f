// ABOUTME: Tests for Catalog lookup and tag listing
// ABOUTME: Verifies indexing, duplicates, and nil safety
package models

import "testing"

func testCatalog() *Catalog {
	return &Catalog{Intents: []Intent{
		{Tag: "приветствие", Responses: []string{"Привет!"}},
		{Tag: TagFarewell, Responses: []string{"Пока!"}},
		{Tag: "приветствие", Responses: []string{"duplicate"}},
	}}
}

func TestCatalog_Lookup(t *testing.T) {
	c := testCatalog()

	in, ok := c.Lookup("приветствие")
	if !ok {
		t.Fatal("Lookup(приветствие) not found")
	}
	if in.Responses[0] != "Привет!" {
		t.Errorf("Responses[0] = %q, want first entry to win", in.Responses[0])
	}

	if _, ok := c.Lookup("нет_такого"); ok {
		t.Error("Lookup(нет_такого) should miss")
	}
}

func TestCatalog_Has(t *testing.T) {
	c := testCatalog()
	if !c.Has(TagFarewell) {
		t.Error("Has(TagFarewell) = false, want true")
	}
	if c.Has(TagSearch) {
		t.Error("Has(TagSearch) = true, want false")
	}
}

func TestCatalog_Tags(t *testing.T) {
	c := testCatalog()
	tags := c.Tags()
	if len(tags) != 3 {
		t.Fatalf("len(Tags()) = %d, want 3", len(tags))
	}
	if tags[1] != TagFarewell {
		t.Errorf("Tags()[1] = %q, want %q", tags[1], TagFarewell)
	}
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *Catalog
	if _, ok := c.Lookup(TagTime); ok {
		t.Error("nil catalog Lookup should miss")
	}
	if c.Tags() != nil {
		t.Error("nil catalog Tags should be nil")
	}
}

func TestCatalog_IndexMatchesScan(t *testing.T) {
	scanned := testCatalog()
	indexed := testCatalog()
	indexed.Index()

	for _, tag := range []Tag{"приветствие", TagFarewell, TagSearch} {
		a, okA := scanned.Lookup(tag)
		b, okB := indexed.Lookup(tag)
		if okA != okB {
			t.Fatalf("Lookup(%q) ok mismatch: scan=%v index=%v", tag, okA, okB)
		}
		if okA && a.Responses[0] != b.Responses[0] {
			t.Errorf("Lookup(%q) = %q (index), want %q (scan)", tag, b.Responses[0], a.Responses[0])
		}
	}
}
