package quiz

import (
	"fmt"
	"strings"
)

// FallbackItems 解析彻底失败时的兜底测验，保证生成接口永远返回结构完整的卷子
func FallbackItems(topic string, n int) []Item {
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Item{
			ID:         fmt.Sprintf("fallback-%d", i+1),
			QuestionMD: fmt.Sprintf("Which option best matches the topic '%s'?", topic),
			Choices: map[string]string{
				"A": topic,
				"B": "Not related",
				"C": "Unsure",
				"D": "Skip",
			},
			Correct:       "A",
			ExplanationMD: "The topic itself is the best match.",
			SkillTag:      "fallback",
		})
	}
	return items
}

// IsFallback 判断一批题目是否来自兜底生成
func IsFallback(items []Item) bool {
	return len(items) > 0 && strings.HasPrefix(items[0].ID, "fallback-")
}
