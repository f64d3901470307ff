package latex

import (
	"strings"
	"testing"
)

func TestNormalize_EmptyPassthrough(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(%q) = %q, want empty", "", got)
	}
}

func TestNormalize_WrapsCasesEnvironment(t *testing.T) {
	in := `\begin{cases}x+y=5\\x-y=3\end{cases}`
	want := `$$\begin{cases}x+y=5\\x-y=3\end{cases}$$`
	if got := Normalize(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_RepairsDoublePipeLineBreaks(t *testing.T) {
	broken := `\begin{cases}x+y=5||x-y=3\end{cases}`
	correct := `\begin{cases}x+y=5\\x-y=3\end{cases}`
	if got, want := Normalize(broken), Normalize(correct); got != want {
		t.Errorf("broken form normalized to %q, correct form to %q", got, want)
	}
}

func TestNormalize_CollapsesBackslashRuns(t *testing.T) {
	// 重复替换叠加出的 \\\\ 要压回 \\
	in := `\begin{aligned}a\\\\b\end{aligned}`
	want := `$$\begin{aligned}a\\b\end{aligned}$$`
	if got := Normalize(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_RepairsSplitDelimiters(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"dollar wrapped begin and split end", `$\begin{aligned}x&=1\\y&=2$\end${aligned}$`},
		{"split end only", `\begin{aligned}x&=1\\y&=2\end${aligned}`},
		{"dollars inside environment", `\begin{aligned}$x&=1\\y&=2$\end{aligned}`},
		{"dollar before begin with space", `$ \begin{aligned}x&=1\\y&=2$\end${aligned}$`},
	}
	want := `$$\begin{aligned}x&=1\\y&=2\end{aligned}$$`
	for _, tc := range cases {
		if got := Normalize(tc.in); got != want {
			t.Errorf("%s: got %q, want %q", tc.name, got, want)
		}
	}
}

func TestNormalize_LegacyDelimiters(t *testing.T) {
	if got, want := Normalize(`\[x^2+1\]`), "$$x^2+1$$"; got != want {
		t.Errorf("display: got %q, want %q", got, want)
	}
	if got, want := Normalize(`Here \(x+1\) inline`), "Here $x+1$ inline"; got != want {
		t.Errorf("inline: got %q, want %q", got, want)
	}
}

func TestNormalize_BoxedBecomesBlock(t *testing.T) {
	got := Normalize(`The answer is \boxed{42}.`)
	want := "The answer is\n\n$$\\boxed{42}$$\n\n."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_WrapsBareCommandsInline(t *testing.T) {
	cases := []struct{ in, want string }{
		{`What is \frac{1}{2} of 10?`, `What is $\frac{1}{2}$ of 10?`},
		{`Compute \sqrt{16} first`, `Compute $\sqrt{16}$ first`},
		{`The constant \pi is irrational`, `The constant $\pi$ is irrational`},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_LeavesWrappedCommandsAlone(t *testing.T) {
	in := `The value $\frac{1}{2}$ stays`
	if got := Normalize(in); got != in {
		t.Errorf("got %q, want unchanged %q", got, in)
	}
}

func TestNormalize_Subscripts(t *testing.T) {
	cases := []struct{ in, want string }{
		{`the term x_{1} here`, `the term $x_{1}$ here`},
		{`raise x^{2} now`, `raise $x^{2}$ now`},
		{`value a_{\text{new}} updated`, `value $a_{\text{new}}$ updated`},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_CurrencyPreserved(t *testing.T) {
	cases := []struct{ in, want string }{
		{`Price: \$5.00`, `Price: $5.00`},
		{`Total \$1,234.56 due`, `Total $1,234.56 due`},
		{`Pay \$7 now`, `Pay $7 now`},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_BlockSpacing(t *testing.T) {
	// 原文与块之间补空行，块前的尾随空格归入正文
	got := Normalize(`Solve: \begin{matrix}1&2\end{matrix} done`)
	want := "Solve:\n\n$$\\begin{matrix}1&2\\end{matrix}$$\n\ndone"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_PaddedDelimitersStayWrapped(t *testing.T) {
	// 定界符内侧带空格的已包裹环境不能再包一层
	cases := []string{
		"$$ \\begin{cases}x\\end{cases} $$",
		"$$ \\begin{cases}x\\end{cases}$$",
		"$$\\begin{cases}x\\end{cases} $$",
	}
	for _, in := range cases {
		if got := Normalize(in); got != in {
			t.Errorf("Normalize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestNormalize_CollapsesNewlineRuns(t *testing.T) {
	if got, want := Normalize("a\n\n\n\nb"), "a\n\nb"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`\begin{cases}x+y=5||x-y=3\end{cases}`,
		`$\begin{aligned}x&=1\\y&=2$\end${aligned}$`,
		`The answer is \boxed{42}.`,
		`What is \frac{1}{2} of 10?`,
		`Price: \$5.00 plus \$1,234.56`,
		`the term x_{1} and a_{\text{new}}`,
		`\[x^2\] then \(y\) inline`,
		"prose\n\n$$\\begin{pmatrix}1\\\\2\\end{pmatrix}$$\n\nmore prose",
		"$$ \\begin{cases}x\\end{cases} $$",
		`plain text with no math at all`,
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestNormalize_MixedProseAndJSONUntouched(t *testing.T) {
	// 正文里的两个裸分数被包裹，JSON 结构字符不受影响
	in := `Use \frac{1}{2} and \frac{3}{4}: {"items":[{"id":"1"}]}`
	got := Normalize(in)
	if !strings.Contains(got, `$\frac{1}{2}$`) || !strings.Contains(got, `$\frac{3}{4}$`) {
		t.Errorf("fractions not wrapped: %q", got)
	}
	if !strings.Contains(got, `{"items":[{"id":"1"}]}`) {
		t.Errorf("JSON structure altered: %q", got)
	}
}
