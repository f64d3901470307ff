package quiz

// Answer 学生对单题的作答
type Answer struct {
	ID       string `json:"id" binding:"required"`
	Selected string `json:"selected" binding:"required"`
}

// ItemResult 单题判分结果，附带解析供前端即时展示
type ItemResult struct {
	ID            string `json:"id"`
	IsCorrect     bool   `json:"is_correct"`
	Selected      string `json:"selected"`
	Correct       string `json:"correct"`
	ExplanationMD string `json:"explanation_md"`
}

// GradingResult 整卷判分结果。
// Total 只统计能匹配到题目的作答；Submitted 是提交的作答总数，
// 两者之差即引用了未知题目 id 而被丢弃的作答数。
type GradingResult struct {
	Score     int          `json:"score"`
	Total     int          `json:"total"`
	Submitted int          `json:"submitted"`
	Results   []ItemResult `json:"results"`
}

// Grade 按题目 id 匹配作答并严格比对选项标签，无部分得分。
// 纯函数：同样的 items+answers 永远得到同样的结果。
func Grade(items []Item, answers []Answer) GradingResult {
	index := make(map[string]*Item, len(items))
	for i := range items {
		if _, ok := index[items[i].ID]; !ok {
			index[items[i].ID] = &items[i]
		}
	}

	result := GradingResult{
		Submitted: len(answers),
		Results:   make([]ItemResult, 0, len(answers)),
	}

	for _, ans := range answers {
		item, ok := index[ans.ID]
		if !ok {
			// 引用了不存在的题目，跳过
			continue
		}
		correct := ans.Selected == item.Correct
		if correct {
			result.Score++
		}
		result.Results = append(result.Results, ItemResult{
			ID:            ans.ID,
			IsCorrect:     correct,
			Selected:      ans.Selected,
			Correct:       item.Correct,
			ExplanationMD: item.ExplanationMD,
		})
	}

	result.Total = len(result.Results)
	return result
}
