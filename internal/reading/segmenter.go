package reading

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// degenerateLength 单段落超过该长度时按句子重新切分
	degenerateLength = 300
	// degenerateMinFragment 重新切分后保留的最短句子
	degenerateMinFragment = 50

	sentenceTerminators = "。！？"
	defaultTerminator   = "。"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t\f\v\x{3000}]*\n\s*`)

// Segment 将原始文本切分为有序的候选单元
func Segment(raw string) []Unit {
	text := normalizeInput(raw)

	var units []Unit
	for _, p := range paragraphBreak.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			units = append(units, Unit{Text: p, Index: len(units)})
		}
	}

	if len(units) == 1 && units[0].Len() > degenerateLength {
		return resegment(units[0].Text)
	}
	return units
}

// resegment 处理没有空行分隔的长文本
func resegment(text string) []Unit {
	var units []Unit
	for _, s := range splitSentences(text, sentenceTerminators) {
		if runeLen(s.body) < degenerateMinFragment {
			continue
		}
		units = append(units, Unit{Text: s.terminated(), Index: len(units)})
	}
	return units
}

// normalizeInput 统一换行符并做NFC规范化
func normalizeInput(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text)
}

// sentence 按分隔符切出的片段，term为原有的结束符
type sentence struct {
	body string
	term string
}

func (s sentence) terminated() string {
	if s.term == "" {
		return s.body + defaultTerminator
	}
	return s.body + s.term
}

// splitSentences 按给定分隔符切分，片段去除首尾空白，空片段丢弃
func splitSentences(text, delimiters string) []sentence {
	var (
		result  []sentence
		current strings.Builder
	)

	flush := func(term string) {
		body := strings.TrimSpace(current.String())
		current.Reset()
		if body != "" {
			result = append(result, sentence{body: body, term: term})
		}
	}

	for _, char := range text {
		if strings.ContainsRune(delimiters, char) {
			flush(string(char))
			continue
		}
		current.WriteRune(char)
	}
	flush("")

	return result
}
