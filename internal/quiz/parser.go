package quiz

import (
	"encoding/json"
	"regexp"
	"strings"
)

// RawItem LLM 返回的未经规范化的测验条目
type RawItem map[string]any

var fencedJSONRe = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")

// ParseItems 从 LLM 的原始回复里提取 items 列表。
// 三级策略依次尝试：直接解析 → 提取 JSON 片段 → 轻度修复后解析，
// 全部失败返回 nil，调用方必须用兜底测验替代，绝不向上抛错。
func ParseItems(raw string) []RawItem {
	if items, ok := decodeItems(raw); ok {
		return items
	}

	blk := extractJSONBlock(raw)
	if items, ok := decodeItems(blk); ok {
		return items
	}

	if items, ok := decodeItems(repairJSON(blk)); ok {
		return items
	}

	return nil
}

func decodeItems(s string) ([]RawItem, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	rawItems, ok := obj["items"]
	if !ok {
		return nil, false
	}
	var items []RawItem
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return nil, false
	}
	return items, true
}

// extractJSONBlock 优先取 ```json 围栏里的内容，否则取首个 { 到末个 } 之间的片段
func extractJSONBlock(text string) string {
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}

var (
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*):`)
)

// repairJSON 轻度语法修复：弯引号转直引号、去掉悬挂逗号、给裸键名补引号
func repairJSON(s string) string {
	s = strings.NewReplacer("“", `"`, "”", `"`, "’", "'").Replace(s)
	s = trailingCommaRe.ReplaceAllString(s, "${1}")
	return bareKeyRe.ReplaceAllString(s, `${1}"${2}"${3}:`)
}
