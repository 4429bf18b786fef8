package reading

import (
	"regexp"
	"sort"
	"strings"
)

// conceptGroup 概念词及其对应的标记符号，Markers[0]为主标记
type conceptGroup struct {
	Name     string
	Triggers []string
	Markers  []string
}

var conceptGroups = []conceptGroup{
	{Name: "love", Triggers: []string{"爱情", "感情", "恋爱", "桃花"}, Markers: []string{"💕", "❤️", "💖"}},
	{Name: "career", Triggers: []string{"事业", "工作", "职业"}, Markers: []string{"💼", "🏢", "📈"}},
	{Name: "wealth", Triggers: []string{"财运", "财富", "金钱", "收入"}, Markers: []string{"💰", "💎", "🪙"}},
	{Name: "health", Triggers: []string{"健康", "身体", "养生"}, Markers: []string{"🌿", "💪", "🏥"}},
	{Name: "future", Triggers: []string{"未来", "将来", "前景"}, Markers: []string{"🔮", "🌅"}},
	{Name: "opportunity", Triggers: []string{"机会", "机遇", "契机"}, Markers: []string{"🍀", "🚪"}},
	{Name: "challenge", Triggers: []string{"挑战", "困难", "阻碍"}, Markers: []string{"⚡", "🧗"}},
	{Name: "success", Triggers: []string{"成功", "成就", "突破"}, Markers: []string{"🏆", "🎉"}},
	{Name: "happiness", Triggers: []string{"幸福", "快乐", "喜悦"}, Markers: []string{"😊", "🌈"}},
	{Name: "balance", Triggers: []string{"平衡", "和谐", "稳定"}, Markers: []string{"⚖️", "☯️"}},
	{Name: "change", Triggers: []string{"变化", "转变", "改变"}, Markers: []string{"🔄", "🦋"}},
	{Name: "communication", Triggers: []string{"沟通", "交流", "表达"}, Markers: []string{"💬", "🗣️"}},
	{Name: "confidence", Triggers: []string{"自信", "信心", "勇气"}, Markers: []string{"✨", "🦁"}},
	{Name: "innovation", Triggers: []string{"创新", "创意", "灵感"}, Markers: []string{"💡", "🚀"}},
	// 与wealth共用"财运"，同一位置只由先出现的组标记
	{Name: "fortune", Triggers: []string{"运势", "运气", "好运", "财运"}, Markers: []string{"🌟", "🍀"}},
	{Name: "astrology", Triggers: []string{"星座", "星盘", "行星"}, Markers: []string{"⭐", "🪐"}},
	{Name: "fate", Triggers: []string{"命运", "缘分", "命中"}, Markers: []string{"🎴", "🌌"}},
}

var (
	// allMarkers 所有组的标记，长的在前
	allMarkers = collectMarkers(conceptGroups)

	parenthetical = regexp.MustCompile(`（[^（）]*）|\([^()]*\)`)
)

func collectMarkers(groups []conceptGroup) []string {
	var markers []string
	for _, g := range groups {
		markers = append(markers, g.Markers...)
	}
	sort.SliceStable(markers, func(i, j int) bool {
		return len(markers[i]) > len(markers[j])
	})
	return markers
}

// insertion 在原文byte偏移处插入标记
type insertion struct {
	pos    int
	marker string
}

// Enrich 为概念词添加主题标记，并把括号内的补充说明包装为注释
func Enrich(text string) string {
	return annotateParentheticals(insertMarkers(text))
}

// insertMarkers 每组只在第一个触发词前插入一次
func insertMarkers(text string) string {
	var inserts []insertion
	taken := make(map[int]struct{})

	for _, g := range conceptGroups {
		pos := firstTrigger(text, g.Triggers)
		if pos < 0 {
			continue
		}
		if _, ok := taken[pos]; ok {
			continue
		}
		if markedAt(text, pos, allMarkers) || hasGroupMarker(text, pos, g.Markers) {
			continue
		}
		taken[pos] = struct{}{}
		inserts = append(inserts, insertion{pos: pos, marker: g.Markers[0]})
	}

	if len(inserts) == 0 {
		return text
	}

	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].pos < inserts[j].pos })

	var b strings.Builder
	last := 0
	for _, ins := range inserts {
		b.WriteString(text[last:ins.pos])
		b.WriteString(ins.marker)
		last = ins.pos
	}
	b.WriteString(text[last:])
	return b.String()
}

// firstTrigger 返回最早出现的触发词的byte偏移，没有则返回-1
func firstTrigger(text string, triggers []string) int {
	first := -1
	for _, t := range triggers {
		if i := strings.Index(text, t); i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	return first
}

// hasGroupMarker 紧挨在触发词之前或之后任意位置已有本组标记
func hasGroupMarker(text string, pos int, markers []string) bool {
	for _, m := range markers {
		if strings.HasSuffix(text[:pos], m) || strings.Contains(text[pos:], m) {
			return true
		}
	}
	return false
}

// markedAt 触发词前已经有任意概念标记
func markedAt(text string, pos int, markers []string) bool {
	for _, m := range markers {
		if strings.HasSuffix(text[:pos], m) {
			return true
		}
	}
	return false
}

// annotateParentheticals 已包装过的括号内容不会重复包装
func annotateParentheticals(text string) string {
	matches := parenthetical.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		wrapped := strings.HasSuffix(text[:start], NoteOpen) && strings.HasPrefix(text[end:], NoteClose)
		b.WriteString(text[last:start])
		if wrapped {
			b.WriteString(text[start:end])
		} else {
			b.WriteString(NoteOpen + text[start:end] + NoteClose)
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}
