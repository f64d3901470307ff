package quiz

import (
	"testing"
)

func TestNormalizeItems_CanonicalShape(t *testing.T) {
	raw := []RawItem{{
		"id":          "q1",
		"question_md": "  What is $2+2$?  ",
		"choices":     map[string]any{"A": "3", "B": "4", "C": "5", "D": "6"},
		"correct":     "b",
		"explanation_md": "Basic addition.",
		"skill_tag":      "arithmetic",
	}}
	items := NormalizeItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	it := items[0]
	if it.ID != "q1" {
		t.Errorf("got id %q, want q1", it.ID)
	}
	if it.QuestionMD != "What is $2+2$?" {
		t.Errorf("got question %q", it.QuestionMD)
	}
	if it.Correct != "B" {
		t.Errorf("got correct %q, want B", it.Correct)
	}
	if it.SkillTag != "arithmetic" {
		t.Errorf("got skill_tag %q", it.SkillTag)
	}
}

func TestNormalizeItems_KeyAliases(t *testing.T) {
	raw := []RawItem{{
		"uuid":        "u-9",
		"question":    "Alias question?",
		"choices":     map[string]any{"A": "yes", "B": "no"},
		"correct":     "A",
		"explanation": "Alias explanation",
	}}
	items := NormalizeItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].ID != "u-9" {
		t.Errorf("got id %q, want u-9", items[0].ID)
	}
	if items[0].QuestionMD != "Alias question?" {
		t.Errorf("got question %q", items[0].QuestionMD)
	}
	if items[0].ExplanationMD != "Alias explanation" {
		t.Errorf("got explanation %q", items[0].ExplanationMD)
	}
}

func TestNormalizeItems_IndexedChoices(t *testing.T) {
	raw := []RawItem{{
		"id":      "q2",
		"choices": map[string]any{"0": "first", "1": "second", "2": "third", "3": "fourth"},
		"correct": "D",
	}}
	items := NormalizeItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	want := map[string]string{"A": "first", "B": "second", "C": "third", "D": "fourth"}
	for label, text := range want {
		if items[0].Choices[label] != text {
			t.Errorf("choice %s = %q, want %q", label, items[0].Choices[label], text)
		}
	}
}

func TestNormalizeItems_UnknownChoiceShape(t *testing.T) {
	raw := []RawItem{{"id": "q3", "choices": []any{"a", "b"}}}
	items := NormalizeItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if len(items[0].Choices) != 0 {
		t.Errorf("got choices %v, want empty", items[0].Choices)
	}
}

func TestNormalizeItems_InvalidCorrectBecomesEmpty(t *testing.T) {
	raw := []RawItem{{
		"id":      "q4",
		"choices": map[string]any{"A": "x", "B": "y"},
		"correct": "E",
	}}
	items := NormalizeItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Correct != "" {
		t.Errorf("got correct %q, want empty", items[0].Correct)
	}
}

func TestNormalizeItems_RejectsCorrectWithoutChoice(t *testing.T) {
	// correct 指向不存在的选项时题目不可作答，应剔除
	raw := []RawItem{
		{"id": "bad", "choices": map[string]any{"A": "x", "B": "y"}, "correct": "D"},
		{"id": "good", "choices": map[string]any{"A": "x", "B": "y"}, "correct": "A"},
	}
	items := NormalizeItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].ID != "good" {
		t.Errorf("kept %q, want good", items[0].ID)
	}
}

func TestNormalizeItems_LatexNormalized(t *testing.T) {
	raw := []RawItem{{
		"id":          "q5",
		"question_md": `Compute \frac{1}{2} + \frac{1}{4}`,
		"choices":     map[string]any{"A": "3/4"},
		"correct":     "A",
	}}
	items := NormalizeItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	want := `Compute $\frac{1}{2}$ + $\frac{1}{4}$`
	if items[0].QuestionMD != want {
		t.Errorf("got %q, want %q", items[0].QuestionMD, want)
	}
}

func TestNormalizeItems_NumericChoiceValues(t *testing.T) {
	raw := []RawItem{{
		"id":      "q6",
		"choices": map[string]any{"A": float64(3), "B": float64(4)},
		"correct": "B",
	}}
	items := NormalizeItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Choices["A"] != "3" || items[0].Choices["B"] != "4" {
		t.Errorf("got choices %v", items[0].Choices)
	}
}
