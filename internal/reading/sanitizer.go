package reading

import (
	"regexp"
	"strings"
)

var (
	// cjkNumbering 中文序号 "1、" "2）" "3．"，不属于Markdown语法
	cjkNumbering = regexp.MustCompile(`(?m)^(?:\d{1,3}[、．）][ \t]*)+`)
	excessBreaks = regexp.MustCompile(`\n{3,}`)
)

// 清洗到结果不再变化为止的最大轮数
const maxSanitizePasses = 4

// sanitizer 去除Markdown装饰和重复标题
type sanitizer struct {
	anywhere *regexp.Regexp // 装饰符号 + 标题 + 冒号或行尾
	leading  *regexp.Regexp // 文本开头的 "标题："
}

func newSanitizer(headings []string) *sanitizer {
	s := &sanitizer{}
	if len(headings) == 0 {
		return s
	}

	quoted := make([]string, len(headings))
	for i, h := range headings {
		quoted[i] = regexp.QuoteMeta(h)
	}
	alt := `(?:` + strings.Join(quoted, "|") + `)`

	s.anywhere = regexp.MustCompile(`(?im)(?:` + emojiClass + `[ \t]*)+` + alt + `[ \t]*(?:[:：]|$)`)
	s.leading = regexp.MustCompile(`(?i)^(?:\s*(?:` + emojiClass + `)*\s*` + alt + `\s*[:：])+\s*`)
	return s
}

// sanitize 对已清洗的文本再次调用结果不变
func (s *sanitizer) sanitize(text string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := s.clean(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func (s *sanitizer) clean(text string) string {
	text = trimLines(strings.ReplaceAll(text, "\r\n", "\n"))
	text = cjkNumbering.ReplaceAllString(text, "")
	text = stripMarkdown(text)
	text = s.removeHeadings(text)

	text = trimLines(text)
	text = excessBreaks.ReplaceAllString(text, "\n\n")
	return markLineBreaks(text)
}

// removeHeadings 删除重复标题，删除后可能拼出新的标题，重复到不再变化
func (s *sanitizer) removeHeadings(text string) string {
	if s.anywhere == nil {
		return text
	}
	for {
		next := s.anywhere.ReplaceAllString(text, "")
		if next == text {
			break
		}
		text = next
	}
	return s.leading.ReplaceAllString(strings.TrimSpace(text), "")
}

// trimLines 去除每行首尾空白以及整段首尾空白
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// markLineBreaks 单个换行替换为换行标记，空行保留
func markLineBreaks(text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\n' {
			b.WriteByte(c)
			continue
		}
		prev := i > 0 && text[i-1] == '\n'
		next := i+1 < len(text) && text[i+1] == '\n'
		if prev || next {
			b.WriteByte(c)
		} else {
			b.WriteString(LineBreak)
		}
	}
	return b.String()
}
