package reading

import "strings"

const (
	guidanceDelimiters = "。！；"

	// longFragmentMin 长段落拆分后片段须超过该长度
	longFragmentMin = 20
	// longFragmentCount 至少拆出这么多片段才按句输出
	longFragmentCount = 3
)

// splitGuidance 按句拆分建议类文本，不足两条时返回nil
func splitGuidance(text string) []string {
	var items []string
	for _, s := range splitSentences(text, guidanceDelimiters) {
		body := trimFragment(s.body)
		if body == "" {
			continue
		}
		term := s.term
		if term != "！" {
			term = defaultTerminator
		}
		items = append(items, body+term)
	}
	if len(items) < 2 {
		return nil
	}
	return items
}

// splitLongDefault 拆分未命中规则的长段落，不足三句时返回nil
func splitLongDefault(text string) []string {
	var fragments []string
	for _, s := range splitSentences(text, sentenceTerminators) {
		body := trimFragment(s.body)
		if runeLen(body) <= longFragmentMin {
			continue
		}
		fragments = append(fragments, sentence{body: body, term: s.term}.terminated())
	}
	if len(fragments) < longFragmentCount {
		return nil
	}
	return fragments
}

// countTerminators 统计句末标点数量
func countTerminators(text string) int {
	n := 0
	for _, r := range text {
		if strings.ContainsRune(sentenceTerminators, r) {
			n++
		}
	}
	return n
}

// trimFragment 去掉片段首尾残留的换行标记和列表符号
func trimFragment(s string) string {
	for {
		prev := s
		s = strings.TrimSpace(s)
		s = strings.TrimPrefix(s, LineBreak)
		s = strings.TrimSuffix(s, LineBreak)
		s = strings.TrimPrefix(s, strings.TrimSpace(Bullet))
		if s == prev {
			return s
		}
	}
}
