package quiz

import (
	"fmt"
	"strings"

	"edumate_backend/internal/latex"
)

// Item 规范化后的测验题，正文和解析都已做过 LaTeX 整形
type Item struct {
	ID            string            `json:"id"`
	QuestionMD    string            `json:"question_md"`
	Choices       map[string]string `json:"choices"`
	Correct       string            `json:"correct"`
	ExplanationMD string            `json:"explanation_md"`
	SkillTag      string            `json:"skill_tag"`
}

var choiceLabels = []string{"A", "B", "C", "D"}

// NormalizeItems 把 LLM 回复里五花八门的条目形状映射为规范的 Item。
// correct 标签指向不存在选项的题目无法作答，直接剔除。
func NormalizeItems(raw []RawItem) []Item {
	out := make([]Item, 0, len(raw))
	for _, it := range raw {
		choices := normalizeChoices(it["choices"])
		correct := normalizeCorrect(stringValue(it["correct"]))

		if correct != "" {
			if _, ok := choices[correct]; !ok {
				continue
			}
		}

		out = append(out, Item{
			ID:            firstString(it, "id", "uuid", "qid"),
			QuestionMD:    latex.Normalize(strings.TrimSpace(firstString(it, "question_md", "question"))),
			Choices:       choices,
			Correct:       correct,
			ExplanationMD: latex.Normalize(strings.TrimSpace(firstString(it, "explanation_md", "explanation"))),
			SkillTag:      stringValue(it["skill_tag"]),
		})
	}
	return out
}

// normalizeChoices 接受 A-D 直接键或 "0".."3" 位置编码，其他形状视为无选项
func normalizeChoices(v any) map[string]string {
	fixed := make(map[string]string)
	m, ok := v.(map[string]any)
	if !ok {
		return fixed
	}
	for _, label := range choiceLabels {
		if val, ok := m[label]; ok {
			fixed[label] = stringValue(val)
		}
	}
	if len(fixed) > 0 {
		return fixed
	}
	for i := 0; i < 4; i++ {
		if _, ok := m[fmt.Sprint(i)]; !ok {
			return fixed
		}
	}
	for i, label := range choiceLabels {
		fixed[label] = stringValue(m[fmt.Sprint(i)])
	}
	return fixed
}

// normalizeCorrect 取首字符大写，只接受 A/B/C/D，其余归为空串
func normalizeCorrect(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	s = s[:1]
	for _, label := range choiceLabels {
		if s == label {
			return s
		}
	}
	return ""
}

func firstString(it RawItem, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(it[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON 数字默认解码为 float64，整数值不带小数位输出
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
