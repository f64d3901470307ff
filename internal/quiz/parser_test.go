package quiz

import (
	"testing"
)

func TestParseItems_DirectJSON(t *testing.T) {
	raw := `{"items":[{"id":"1","question_md":"Q?","correct":"A"}]}`
	items := ParseItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0]["id"] != "1" {
		t.Errorf("got id %v, want \"1\"", items[0]["id"])
	}
}

func TestParseItems_FencedCodeBlock(t *testing.T) {
	raw := "Here you go:\n```json\n{\"items\":[{\"id\":\"1\",\"correct\":\"B\"}]}\n```\nEnjoy!"
	items := ParseItems(raw)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0]["correct"] != "B" {
		t.Errorf("got correct %v, want \"B\"", items[0]["correct"])
	}
}

func TestParseItems_FencedCaseInsensitive(t *testing.T) {
	raw := "```JSON\n{\"items\":[{\"id\":\"x\"}]}\n```"
	if items := ParseItems(raw); len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
}

func TestParseItems_EmbeddedInProse(t *testing.T) {
	raw := `Sure! The quiz is {"items":[{"id":"7"}]} — hope it helps.`
	items := ParseItems(raw)
	if len(items) != 1 || items[0]["id"] != "7" {
		t.Fatalf("got %v, want single item with id 7", items)
	}
}

func TestParseItems_TrailingComma(t *testing.T) {
	raw := `{"items":[{"id":"1","correct":"A",}]}`
	items := ParseItems(raw)
	if len(items) != 1 {
		t.Fatalf("trailing comma not repaired, got %v", items)
	}
}

func TestParseItems_SmartQuotesAndBareKeys(t *testing.T) {
	raw := "{items:[{id:“1”,correct:“C”}]}"
	items := ParseItems(raw)
	if len(items) != 1 {
		t.Fatalf("repair chain failed, got %v", items)
	}
	if items[0]["correct"] != "C" {
		t.Errorf("got correct %v, want \"C\"", items[0]["correct"])
	}
}

func TestParseItems_NoJSONAtAll(t *testing.T) {
	if items := ParseItems("I'm sorry, I can't produce a quiz right now."); items != nil {
		t.Errorf("got %v, want nil", items)
	}
}

func TestParseItems_MissingItemsKey(t *testing.T) {
	if items := ParseItems(`{"questions":[{"id":"1"}]}`); items != nil {
		t.Errorf("got %v, want nil when items key absent", items)
	}
}

func TestParseItems_TopLevelArrayRejected(t *testing.T) {
	if items := ParseItems(`[{"id":"1"}]`); items != nil {
		t.Errorf("got %v, want nil for top-level array", items)
	}
}
