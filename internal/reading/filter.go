package reading

import (
	"regexp"
	"strings"
)

// decorEmoji 生成文本中常见的装饰符号
const decorEmoji = "⭐🌟✨💫🔮🎯💡📌📝🌙☀💼💰❤💕💖🍀⚡🔥👉🌈🎴🃏🏆🌿💪✅📖🔍🌸💎"

var (
	emojiClass = `[` + decorEmoji + `]\x{FE0F}?`

	// headingOnly 1-3个装饰符号 + 2-8个文字 + 可选冒号
	headingOnly = regexp.MustCompile(`^(?:` + emojiClass + `){1,3}\s*[\p{Han}A-Za-z]{2,8}\s*[:：]?$`)

	// labelledStatement "标签：正文。" 形式的短句，不受最短长度限制
	labelledStatement = regexp.MustCompile(`(?s)^(?:` + emojiClass + `){0,3}\s*[\p{Han}A-Za-z]{2,8}[:：]\s*\S.*[。！？!?]$`)
)

// keepUnit 判断单元是否包含实质内容
func keepUnit(u Unit, p *Profile) bool {
	text := strings.TrimSpace(u.Text)
	if headingOnly.MatchString(text) {
		return false
	}
	if runeLen(text) < p.MinUnitLength && !labelledStatement.MatchString(text) {
		return false
	}
	return true
}

// filterUnits 丢弃过短或只有标题的单元，保持原有顺序
func filterUnits(units []Unit, p *Profile) []Unit {
	kept := make([]Unit, 0, len(units))
	for _, u := range units {
		if keepUnit(u, p) {
			kept = append(kept, u)
		}
	}
	return kept
}
