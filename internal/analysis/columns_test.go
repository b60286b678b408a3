package analysis

import "testing"

func TestColumnFrequency(t *testing.T) {
	cells := []string{
		"Great service and great food",
		"the FOOD was cold",
		"",
		"service was slow, food ok",
	}
	got := ColumnFrequency(cells, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 words, got %+v", got)
	}
	if got[0].Word != "food" || got[0].Count != 3 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	// "great", "service" and "was" all appear twice; first appearance wins ties.
	if got[1].Word != "great" || got[2].Word != "service" {
		t.Fatalf("unexpected tie order: %+v", got)
	}
}

func TestColumnFrequencySkipsShortWords(t *testing.T) {
	got := ColumnFrequency([]string{"a an ox of it"}, 0)
	if len(got) != 0 {
		t.Fatalf("expected no words, got %+v", got)
	}
}

func TestColumnFrequencyDefaultLimit(t *testing.T) {
	cells := []string{"alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"}
	got := ColumnFrequency(cells, 0)
	if len(got) != DefaultColumnTop {
		t.Fatalf("expected %d words, got %d", DefaultColumnTop, len(got))
	}
	if got[0].Word != "alpha" || got[DefaultColumnTop-1].Word != "juliet" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
