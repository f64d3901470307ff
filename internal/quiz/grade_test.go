package quiz

import "testing"

func sampleItems() []Item {
	return []Item{
		{
			ID:            "q1",
			QuestionMD:    "What is $2+2$?",
			Choices:       map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"},
			Correct:       "B",
			ExplanationMD: "Add the two numbers.",
		},
		{
			ID:      "q2",
			Choices: map[string]string{"A": "yes", "B": "no"},
			Correct: "A",
		},
	}
}

func TestGrade_AllCorrect(t *testing.T) {
	res := Grade(sampleItems(), []Answer{
		{ID: "q1", Selected: "B"},
		{ID: "q2", Selected: "A"},
	})
	if res.Score != 2 || res.Total != 2 || res.Submitted != 2 {
		t.Fatalf("got score=%d total=%d submitted=%d, want 2/2/2", res.Score, res.Total, res.Submitted)
	}
	for _, r := range res.Results {
		if !r.IsCorrect {
			t.Errorf("item %s marked incorrect", r.ID)
		}
	}
}

func TestGrade_WrongAnswerCarriesExplanation(t *testing.T) {
	res := Grade(sampleItems(), []Answer{{ID: "q1", Selected: "C"}})
	if res.Score != 0 || res.Total != 1 {
		t.Fatalf("got score=%d total=%d, want 0/1", res.Score, res.Total)
	}
	r := res.Results[0]
	if r.IsCorrect {
		t.Error("wrong answer marked correct")
	}
	if r.Correct != "B" || r.Selected != "C" {
		t.Errorf("got correct=%q selected=%q", r.Correct, r.Selected)
	}
	if r.ExplanationMD != "Add the two numbers." {
		t.Errorf("got explanation %q", r.ExplanationMD)
	}
}

func TestGrade_UnknownAnswerIDSkipped(t *testing.T) {
	// 找不到对应题目的答案只计入 submitted，不进结果
	res := Grade(sampleItems(), []Answer{
		{ID: "q1", Selected: "B"},
		{ID: "missing", Selected: "A"},
	})
	if res.Score != 1 || res.Total != 1 || res.Submitted != 2 {
		t.Fatalf("got score=%d total=%d submitted=%d, want 1/1/2", res.Score, res.Total, res.Submitted)
	}
	if len(res.Results) != 1 || res.Results[0].ID != "q1" {
		t.Errorf("got results %+v", res.Results)
	}
}

func TestGrade_CaseSensitiveSelection(t *testing.T) {
	// 比较严格按字面，小写 b 不算对
	res := Grade(sampleItems(), []Answer{{ID: "q1", Selected: "b"}})
	if res.Score != 0 {
		t.Errorf("got score=%d, want 0", res.Score)
	}
}

func TestGrade_NoAnswers(t *testing.T) {
	res := Grade(sampleItems(), nil)
	if res.Score != 0 || res.Total != 0 || res.Submitted != 0 {
		t.Fatalf("got score=%d total=%d submitted=%d, want 0/0/0", res.Score, res.Total, res.Submitted)
	}
	if len(res.Results) != 0 {
		t.Errorf("got %d results, want 0", len(res.Results))
	}
}

func TestGrade_Deterministic(t *testing.T) {
	answers := []Answer{
		{ID: "q2", Selected: "B"},
		{ID: "q1", Selected: "B"},
	}
	first := Grade(sampleItems(), answers)
	for i := 0; i < 5; i++ {
		again := Grade(sampleItems(), answers)
		if len(again.Results) != len(first.Results) {
			t.Fatalf("result count changed: %d vs %d", len(again.Results), len(first.Results))
		}
		for j := range again.Results {
			if again.Results[j] != first.Results[j] {
				t.Fatalf("result order changed at %d: %+v vs %+v", j, again.Results[j], first.Results[j])
			}
		}
	}
	// 结果顺序跟随提交顺序
	if first.Results[0].ID != "q2" || first.Results[1].ID != "q1" {
		t.Errorf("got order %s,%s want q2,q1", first.Results[0].ID, first.Results[1].ID)
	}
}

func TestFallbackItems(t *testing.T) {
	items := FallbackItems("fractions", 3)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if !IsFallback(items) {
		t.Error("fallback items not recognized")
	}
	if IsFallback(sampleItems()) {
		t.Error("real items misidentified as fallback")
	}
	for _, it := range items {
		if it.Correct != "A" {
			t.Errorf("item %s correct=%q, want A", it.ID, it.Correct)
		}
		if len(it.Choices) != 4 {
			t.Errorf("item %s has %d choices, want 4", it.ID, len(it.Choices))
		}
	}
}
