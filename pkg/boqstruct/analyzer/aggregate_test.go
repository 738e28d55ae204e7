package analyzer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ldgradnja/boqstruct-go/pkg/boqstruct/models"
)

// classifyAll classifies rows laid out under testHeader at index 0.
func classifyAll(rows ...[]string) []models.ClassifiedRow {
	ctx := testContext(0)
	out := make([]models.ClassifiedRow, 0, len(rows)+1)
	out = append(out, Classify(rawRow(0, testHeader...), ctx))
	for i, cells := range rows {
		out = append(out, Classify(rawRow(i+1, cells...), ctx))
	}
	return out
}

func TestAggregateParentHeading(t *testing.T) {
	rows := classifyAll(
		[]string{"8", "Paint removal", "", "0", "0", "0"},
		[]string{"", "Walls", "m2", "20", "2", "40"},
		[]string{"", "Ceiling", "m2", "10", "2", "20"},
	)

	agg := Aggregate(rows, testColumns)

	parent := agg.Rows[1]
	if parent.Tag != models.TagData || !parent.Included {
		t.Fatalf("Expected parent to become an included data row, got %s (%s)", parent.Tag, parent.Reason)
	}
	it := parent.Item
	if it.Ordinal != 8 {
		t.Errorf("Expected ordinal 8, got %d", it.Ordinal)
	}
	if !it.Quantity.Equal(dec("30")) || !it.TotalPrice.Equal(dec("60")) || !it.UnitPrice.Equal(dec("2")) {
		t.Errorf("Expected 30 x 2 = 60, got %s x %s = %s", it.Quantity, it.UnitPrice, it.TotalPrice)
	}
	if !strings.Contains(it.Description, "Walls") || !strings.Contains(it.Description, "Ceiling") {
		t.Errorf("Expected description to contain both sub-descriptions, got %q", it.Description)
	}
	if it.Unit != "m2" {
		t.Errorf("Expected unit taken from sub-rows, got %q", it.Unit)
	}

	for _, i := range []int{2, 3} {
		child := agg.Rows[i]
		if child.Included || child.Tag != models.TagSection || child.Reason != models.ReasonAbsorbed {
			t.Errorf("Row %d: expected absorbed section, got %s (%s, included=%v)", i, child.Tag, child.Reason, child.Included)
		}
		if child.Item.Ordinal != 8 {
			t.Errorf("Row %d: expected ordinal rewritten to 8, got %d", i, child.Item.Ordinal)
		}
		if !strings.HasPrefix(child.Item.Description, "Paint removal") {
			t.Errorf("Row %d: expected parent prefix, got %q", i, child.Item.Description)
		}
	}

	if len(agg.Absorptions) != 1 {
		t.Fatalf("Expected 1 absorption, got %d", len(agg.Absorptions))
	}
	a := agg.Absorptions[0]
	if a.Parent != 1 || a.Pattern != models.PatternParentHeading || len(a.Rows) != 2 || a.Rows[0] != 2 || a.Rows[1] != 3 {
		t.Errorf("Unexpected absorption %+v", a)
	}
}

func TestAggregateSubOrdinal(t *testing.T) {
	rows := classifyAll(
		[]string{"5", "Zidanje", "m2", "0", "12", "0"},
		[]string{"5.1", "Prizemlje", "m2", "10", "12", "120"},
		[]string{""},
		[]string{"5b", "Sprat", "m2", "5.555", "12", "66.66"},
		[]string{"6", "Malterisanje", "m2", "15", "3", "45"},
	)

	agg := Aggregate(rows, testColumns)

	it := agg.Rows[1].Item
	if agg.Rows[1].Tag != models.TagData || it.Ordinal != 5 {
		t.Fatalf("Expected parent item 5, got %s %+v", agg.Rows[1].Tag, it)
	}
	if !it.Quantity.Equal(dec("15.56")) {
		t.Errorf("Expected quantity round(15.555, 2) = 15.56, got %s", it.Quantity)
	}
	if !it.TotalPrice.Equal(dec("186.66")) {
		t.Errorf("Expected total 186.66, got %s", it.TotalPrice)
	}
	if !it.UnitPrice.Equal(dec("12")) {
		t.Errorf("Expected unit price recomputed as 186.66 / 15.56 = 12.00, got %s", it.UnitPrice)
	}
	if it.Description != "Zidanje" {
		t.Errorf("Expected parent description kept, got %q", it.Description)
	}

	for _, i := range []int{2, 4} {
		if agg.Rows[i].Included {
			t.Errorf("Row %d: expected absorbed row to be excluded", i)
		}
	}
	if agg.Rows[3].Tag != models.TagEmpty {
		t.Errorf("Expected empty row untouched, got %s", agg.Rows[3].Tag)
	}
	if next := agg.Rows[5]; next.Tag != models.TagData || !next.Included || next.Item.Ordinal != 6 {
		t.Errorf("Expected scan to stop at item 6, got %s %+v", next.Tag, next.Item)
	}
	if len(agg.Absorptions) != 1 || agg.Absorptions[0].Pattern != models.PatternSubOrdinal {
		t.Errorf("Expected one sub-ordinal absorption, got %+v", agg.Absorptions)
	}
}

func TestAggregateKeepsCompleteParent(t *testing.T) {
	rows := classifyAll(
		[]string{"3", "Beton", "m3", "2", "100", "200"},
		[]string{"", "Dodatak za pumpu", "kpl", "1", "50", "50"},
	)

	agg := Aggregate(rows, testColumns)

	if len(agg.Absorptions) != 0 {
		t.Fatalf("Expected no absorption, got %+v", agg.Absorptions)
	}
	if !agg.Rows[1].Item.TotalPrice.Equal(dec("200")) {
		t.Errorf("Expected parent total unchanged, got %s", agg.Rows[1].Item.TotalPrice)
	}
	if !agg.Rows[2].Included || agg.Rows[2].Item.Ordinal != 0 {
		t.Errorf("Expected trailing row to stay an independent item")
	}
}

func TestAggregateLumpSumParentAbsorbsHeadless(t *testing.T) {
	rows := classifyAll(
		[]string{"4", "Skela", "kpl", "", "", "500"},
		[]string{"", "Montaža", "m2", "100", "3", ""},
		[]string{"", "Demontaža", "m2", "100", "1.5", ""},
	)

	agg := Aggregate(rows, testColumns)

	it := agg.Rows[1].Item
	if len(agg.Absorptions) != 1 {
		t.Fatalf("Expected one absorption, got %d", len(agg.Absorptions))
	}
	if !it.Quantity.Equal(dec("200")) || !it.TotalPrice.Equal(dec("450")) || !it.UnitPrice.Equal(dec("2.25")) {
		t.Errorf("Expected 200 x 2.25 = 450, got %s x %s = %s", it.Quantity, it.UnitPrice, it.TotalPrice)
	}
}

func TestAggregateStopsAtForeignSubOrdinal(t *testing.T) {
	rows := classifyAll(
		[]string{"5", "Zidanje", "m2", "0", "0", "0"},
		[]string{"", "Prizemlje", "m2", "10", "12", "120"},
		[]string{"7.1", "Tuđa stavka", "m2", "1", "1", "1"},
	)

	agg := Aggregate(rows, testColumns)

	if len(agg.Absorptions) != 1 || len(agg.Absorptions[0].Rows) != 1 {
		t.Fatalf("Expected one row absorbed, got %+v", agg.Absorptions)
	}
	if !agg.Rows[3].Included {
		t.Errorf("Expected foreign sub-ordinal row to stay included")
	}
}

func TestAggregateStopsAtSection(t *testing.T) {
	rows := classifyAll(
		[]string{"5", "Zidanje", "m2", "0", "0", "0"},
		[]string{"II", "FASADERSKI RADOVI"},
		[]string{"", "Prizemlje", "m2", "10", "12", "120"},
	)

	agg := Aggregate(rows, testColumns)

	if len(agg.Absorptions) != 0 {
		t.Fatalf("Expected no absorption across a section, got %+v", agg.Absorptions)
	}
	if !agg.Rows[1].IsParentHeading() {
		t.Errorf("Expected childless parent heading to stay a heading, got %s (%s)", agg.Rows[1].Tag, agg.Rows[1].Reason)
	}
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	rows := classifyAll(
		[]string{"8", "Paint removal", "", "0", "0", "0"},
		[]string{"", "Walls", "m2", "20", "2", "40"},
		[]string{"", "Ceiling", "m2", "10", "2", "20"},
	)
	before, err := json.Marshal(rows)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	first := Aggregate(rows, testColumns)
	second := Aggregate(rows, testColumns)

	after, _ := json.Marshal(rows)
	if string(before) != string(after) {
		t.Errorf("Aggregate modified its input")
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("Aggregate is not deterministic")
	}
}
