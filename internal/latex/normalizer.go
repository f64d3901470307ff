package latex

import (
	"regexp"
	"strings"
)

// blockEnvs 需要按块级(display)数学渲染的 LaTeX 环境
var blockEnvs = map[string]bool{
	"aligned": true,
	"array":   true,
	"cases":   true,
	"matrix":  true,
	"pmatrix": true,
	"bmatrix": true,
	"vmatrix": true,
}

// Normalize 把 LLM 输出里混乱的 LaTeX 记号整理成前端 KaTeX 可渲染的形式：
// 块级数学用 $$...$$，行内数学用 $...$。
// 纯函数，任何输入都不会报错，重复调用结果不变。
func Normalize(text string) string {
	if text == "" {
		return text
	}
	text = repairEnvDelimiters(text)
	text = repairLineBreaks(text)
	text = wrapEnvironments(text)
	text = convertLegacyDelimiters(text)
	text = wrapBoxed(text)
	text = collapseDollarRuns(text)
	text = wrapInlineCommands(text)
	text = collapseDollarRuns(text)
	text = unescapeCurrency(text)
	return spaceBlocks(text)
}

// isSingleDollar 判断 s[i] 是否是孤立的 $（前后都不是 $）
func isSingleDollar(s string, i int) bool {
	if i >= len(s) || s[i] != '$' {
		return false
	}
	if i+1 < len(s) && s[i+1] == '$' {
		return false
	}
	if i > 0 && s[i-1] == '$' {
		return false
	}
	return true
}

// envKeywordAt 检测 s[i:] 是否以 \begin 或 \end 记号开头（允许 \begin${name} 的分裂形式）
func envKeywordAt(s string, i int) bool {
	for _, kw := range []string{`\begin`, `\end`} {
		if !strings.HasPrefix(s[i:], kw) {
			continue
		}
		j := i + len(kw)
		if j < len(s) && s[j] == '$' {
			j++
		}
		if j < len(s) && s[j] == '{' {
			return true
		}
	}
	return false
}

// scanEnvToken 解析 \begin{name} / \end{name}，兼容 \begin${name} 这类分裂残渣。
// 返回关键字(begin/end)、环境名和消耗的长度。
func scanEnvToken(s string, i int) (kw, name string, n int, ok bool) {
	for _, k := range []string{"begin", "end"} {
		tok := `\` + k
		if !strings.HasPrefix(s[i:], tok) {
			continue
		}
		j := i + len(tok)
		if j < len(s) && s[j] == '$' {
			j++ // \end${name} 中混入的 $
		}
		if j >= len(s) || s[j] != '{' {
			continue
		}
		close := strings.IndexByte(s[j:], '}')
		if close < 0 {
			continue
		}
		name = s[j+1 : j+close]
		if name == "" || strings.ContainsAny(name, `\$ `) {
			continue
		}
		return k, name, j + close + 1 - i, true
	}
	return "", "", 0, false
}

// repairEnvDelimiters 修复被 $ 撕裂的环境定界符：
// $\begin{x}...$\end${x}$ 及其各种变体全部收敛为干净的 \begin{x}...\end{x}。
func repairEnvDelimiters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		// \begin/\end 前面的孤立 $ 是残渣，丢弃
		if isSingleDollar(s, i) {
			j := i + 1
			for j < len(s) && s[j] == ' ' {
				j++
			}
			if envKeywordAt(s, j) {
				i = j
				continue
			}
		}
		if kw, name, n, ok := scanEnvToken(s, i); ok {
			b.WriteString(`\` + kw + `{` + name + `}`)
			i += n
			// \begin{x}$content$... 和 ...$\end{x}$ 里贴着定界符的孤立 $ 一并清除
			if isSingleDollar(s, i) {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// repairLineBreaks 把 LLM 常犯的 || 换行写法替换为 \\，
// 并把 3 个以上连续反斜杠压回 2 个，避免重复替换叠加。
func repairLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "||", `\\`)
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		run := 0
		for i+run < len(s) && s[i+run] == '\\' {
			run++
		}
		if run >= 3 {
			b.WriteString(`\\`)
		} else {
			b.WriteString(s[i : i+run])
		}
		i += run
	}
	return b.String()
}

// wrapEnvironments 给完整的已知块级环境包上 $$，已经包裹的不再处理
func wrapEnvironments(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	i := 0
	for i < len(s) {
		kw, name, n, ok := scanEnvToken(s, i)
		if !ok || kw != "begin" || !blockEnvs[name] {
			b.WriteByte(s[i])
			i++
			continue
		}
		endTok := `\end{` + name + `}`
		rel := strings.Index(s[i+n:], endTok)
		if rel < 0 {
			// 缺 \end 的残缺环境原样保留
			b.WriteByte(s[i])
			i++
			continue
		}
		close := i + n + rel + len(endTok)
		span := s[i:close]
		// 定界符和环境之间允许夹空格，如 $$ \begin{cases}...\end{cases} $$
		out := b.String()
		before := strings.HasSuffix(strings.TrimRight(out, " \t"), "$$")
		after := strings.HasPrefix(strings.TrimLeft(s[close:], " \t"), "$$")
		if before && after {
			b.WriteString(span)
		} else {
			b.WriteString("$$")
			b.WriteString(span)
			b.WriteString("$$")
		}
		i = close
	}
	return b.String()
}

// convertLegacyDelimiters 把 \[...\] 转为 $$...$$，\(...\) 转为 $...$
func convertLegacyDelimiters(s string) string {
	s = convertPair(s, `\[`, `\]`, "$$")
	return convertPair(s, `\(`, `\)`, "$")
}

func convertPair(s, open, close, delim string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], open) {
			rel := strings.Index(s[i+len(open):], close)
			if rel >= 0 {
				b.WriteString(delim)
				b.WriteString(s[i+len(open) : i+len(open)+rel])
				b.WriteString(delim)
				i += len(open) + rel + len(close)
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// wrapBoxed 把最终答案 \boxed{...} 包成块级数学
func wrapBoxed(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	i := 0
	for i < len(s) {
		if !strings.HasPrefix(s[i:], `\boxed{`) {
			b.WriteByte(s[i])
			i++
			continue
		}
		start := i + len(`\boxed{`)
		rel := strings.IndexByte(s[start:], '}')
		if rel < 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		close := start + rel + 1
		prevDollar := i > 0 && s[i-1] == '$'
		nextDollar := close < len(s) && s[close] == '$'
		if prevDollar || nextDollar {
			b.WriteString(s[i:close])
		} else {
			b.WriteString("$$")
			b.WriteString(s[i:close])
			b.WriteString("$$")
		}
		i = close
	}
	return b.String()
}

// scanBraceGroup 消耗一个配平的 {...}，返回结束下标（含右括号）
func scanBraceGroup(s string, i int) (int, bool) {
	if i >= len(s) || s[i] != '{' {
		return i, false
	}
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j + 1, true
			}
		}
	}
	return i, false
}

// scanCommand 解析 \word 及其后续的若干 {..} 参数（\frac{1}{2}、\sqrt{2}、\pi）
func scanCommand(s string, i int) (end int, word string, ok bool) {
	if i >= len(s) || s[i] != '\\' {
		return i, "", false
	}
	j := i + 1
	for j < len(s) && isLetter(s[j]) {
		j++
	}
	if j == i+1 {
		return i, "", false
	}
	word = s[i+1 : j]
	for j < len(s) && s[j] == '{' {
		next, balanced := scanBraceGroup(s, j)
		if !balanced {
			break
		}
		j = next
	}
	return j, word, true
}

// scanScript 解析单字母上下标 x_{...} / x^{...}，花括号内允许嵌套命令
func scanScript(s string, i int) (end int, ok bool) {
	if i >= len(s) || !isLetter(s[i]) {
		return i, false
	}
	j := i + 1
	if j >= len(s) || (s[j] != '_' && s[j] != '^') {
		return i, false
	}
	end, ok = scanBraceGroup(s, j+1)
	return end, ok
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// wrapInlineCommands 把数学定界符之外的裸 LaTeX 命令和上下标包进 $...$。
// 扫描时跟踪 $ / $$ 的开闭状态；紧邻 $ 的命令视为已包裹，不再处理。
func wrapInlineCommands(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	i := 0
	inline, block := false, false
	for i < len(s) {
		c := s[i]
		// 转义的 \$ 是货币符号，不参与状态切换
		if c == '\\' && i+1 < len(s) && s[i+1] == '$' {
			b.WriteString(s[i : i+2])
			i += 2
			continue
		}
		// \\ 换行
		if c == '\\' && i+1 < len(s) && s[i+1] == '\\' {
			b.WriteString(`\\`)
			i += 2
			continue
		}
		if c == '$' {
			if i+1 < len(s) && s[i+1] == '$' {
				block = !block
				b.WriteString("$$")
				i += 2
				continue
			}
			inline = !inline
			b.WriteByte(c)
			i++
			continue
		}
		if !inline && !block {
			prevDollar := i > 0 && s[i-1] == '$'
			if !prevDollar {
				if end, ok := scanScript(s, i); ok {
					if !(end < len(s) && s[end] == '$') && !(i > 0 && isLetter(s[i-1])) {
						b.WriteByte('$')
						b.WriteString(s[i:end])
						b.WriteByte('$')
						i = end
						continue
					}
				}
				if end, word, ok := scanCommand(s, i); ok && word != "begin" && word != "end" {
					if !(end < len(s) && s[end] == '$') {
						b.WriteByte('$')
						b.WriteString(s[i:end])
						b.WriteByte('$')
						i = end
						continue
					}
				}
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// collapseDollarRuns 清理上游步骤叠加出来的 $$$$
func collapseDollarRuns(s string) string {
	for strings.Contains(s, "$$$$") {
		s = strings.ReplaceAll(s, "$$$$", "$$")
	}
	return s
}

// 货币写法：\$ 后面直接跟金额（可带千分位和两位小数）
var currencyRe = regexp.MustCompile(`\\\$(\d+(?:,\d{3})*(?:\.\d{2})?)`)

// unescapeCurrency 把货币语境的转义 \$ 还原为字面 $，避免被当成数学定界符
func unescapeCurrency(s string) string {
	return currencyRe.ReplaceAllString(s, `$$${1}`)
}

var newlineRunRe = regexp.MustCompile(`\n{3,}`)

// spaceBlocks 保证 $$...$$ 块与正文之间有空行，并压缩多余空行。
// 块两侧原有的空格并入补出的空行，不留尾随空格。
func spaceBlocks(s string) string {
	out := make([]byte, 0, len(s)+8)
	i := 0
	for i < len(s) {
		if !strings.HasPrefix(s[i:], "$$") {
			out = append(out, s[i])
			i++
			continue
		}
		rel := strings.Index(s[i+2:], "$$")
		if rel < 0 || strings.ContainsRune(s[i+2:i+2+rel], '$') {
			out = append(out, '$', '$')
			i += 2
			continue
		}
		close := i + 2 + rel + 2
		for len(out) > 0 && (out[len(out)-1] == ' ' || out[len(out)-1] == '\t') {
			out = out[:len(out)-1]
		}
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n', '\n')
		}
		out = append(out, s[i:close]...)
		j := close
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if j < len(s) && s[j] != '\n' {
			out = append(out, '\n', '\n')
			close = j
		}
		i = close
	}
	return newlineRunRe.ReplaceAllString(string(out), "\n\n")
}
