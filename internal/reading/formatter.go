package reading

import "strings"

// fallbackFragmentMin 兜底切分时片段须超过该长度
const fallbackFragmentMin = 15

// Format 使用指定配置格式化文本
// 仅在配置ID未知时返回错误
func Format(content string, id ProfileID) ([]Block, error) {
	p, err := LookupProfile(id)
	if err != nil {
		return nil, err
	}
	return p.Format(content), nil
}

// Format 将原始解读文本转换为有序的内容块
// 对任意非空输入至少返回一个内容块，空白输入返回空切片
func (p *Profile) Format(content string) []Block {
	if strings.TrimSpace(content) == "" {
		return []Block{}
	}

	a := &assembler{profile: p}
	topics := newTopicTracker(p.Topics)

	for _, u := range filterUnits(Segment(content), p) {
		if !topics.admit(u.Text) {
			continue
		}
		a.addUnit(u)
	}

	if len(a.blocks) == 0 {
		a.fallback(content)
	}
	return a.blocks
}

// assembler 按单元顺序收集内容块并分配序号
type assembler struct {
	profile *Profile
	blocks  []Block
}

func (a *assembler) emit(c Category, text string, item bool) {
	a.blocks = append(a.blocks, Block{
		Category: c,
		Label:    a.profile.Label(c),
		Text:     text,
		Order:    len(a.blocks),
		Item:     item,
	})
}

func (a *assembler) addUnit(u Unit) {
	p := a.profile
	category, matched := p.Classify(u.Text)

	clean := p.Sanitize(u.Text)
	if clean == "" {
		return
	}

	switch {
	case matched && category == CategoryGuidance:
		items := splitGuidance(clean)
		if items == nil {
			a.emit(category, Enrich(clean), false)
			return
		}
		for _, item := range items {
			a.emit(category, Enrich(item), true)
		}

	case matched:
		a.emit(category, Enrich(clean), false)

	case u.Len() > p.ResplitThreshold && countTerminators(u.Text) > 2:
		fragments := splitLongDefault(clean)
		if fragments == nil {
			a.emit(p.DefaultCategory, Enrich(clean), false)
			return
		}
		for _, f := range fragments {
			a.emit(p.DefaultCategory, Enrich(f), false)
		}

	default:
		a.emit(p.DefaultCategory, Enrich(clean), false)
	}
}

// fallback 正常流程没有产出时，直接基于原文按句切分，仍不足则整段输出
func (a *assembler) fallback(raw string) {
	p := a.profile
	text := normalizeInput(raw)

	var fragments []string
	for _, s := range splitSentences(text, sentenceTerminators) {
		if runeLen(s.body) > fallbackFragmentMin {
			fragments = append(fragments, s.terminated())
		}
	}

	if len(fragments) >= 2 {
		for _, f := range fragments {
			if clean := p.Sanitize(f); clean != "" {
				a.emit(p.DefaultCategory, Enrich(clean), false)
			}
		}
		if len(a.blocks) > 0 {
			return
		}
	}

	whole := p.Sanitize(text)
	if whole == "" {
		whole = strings.TrimSpace(text)
	}
	a.emit(p.DefaultCategory, Enrich(whole), false)
}
