package reading

import (
	"errors"
	"strings"
)

// ErrUnknownProfile 未知的解读配置
var ErrUnknownProfile = errors.New("unknown profile")

// ProfileID 解读配置标识
type ProfileID string

const (
	// ProfileGeneric 通用命理解读
	ProfileGeneric ProfileID = "generic"
	// ProfilePlain 白话解读
	ProfilePlain ProfileID = "plain"
	// ProfileTarot 塔罗牌解读
	ProfileTarot ProfileID = "tarot"
)

// Category 内容块分类
type Category string

const (
	CategoryTitle       Category = "title"
	CategoryPersonality Category = "personality"
	CategoryFortune     Category = "fortune"
	CategoryCareer      Category = "career"
	CategoryWealth      Category = "wealth"
	CategoryLove        Category = "love"
	CategoryHealth      Category = "health"
	CategoryGuidance    Category = "guidance"
	CategorySummary     Category = "summary"
	CategoryDefault     Category = "default"
)

// 渲染层负责把这些语义标记转换为实际的展示样式
const (
	StrongOpen  = "[b]"
	StrongClose = "[/b]"
	EmOpen      = "[i]"
	EmClose     = "[/i]"
	NoteOpen    = "[note]"
	NoteClose   = "[/note]"
	Bullet      = "• "
	LineBreak   = "[br]"
)

// Block 格式化输出的内容块
type Block struct {
	Category Category `json:"category" yaml:"category"` // 分类
	Label    string   `json:"label" yaml:"label"`       // 分类展示名称
	Text     string   `json:"text" yaml:"text"`         // 清洗后的文本
	Order    int      `json:"order" yaml:"order"`       // 输出顺序
	Item     bool     `json:"item,omitempty" yaml:"item,omitempty"`
}

// Unit 待分类的文本单元
type Unit struct {
	Text  string // 段落或句子文本
	Index int    // 在单元序列中的位置
}

// Len 返回单元的字符数
func (u Unit) Len() int {
	return runeLen(u.Text)
}

// TopicGroup 用于去重的主题关键词组
type TopicGroup struct {
	Name     string   `yaml:"name"`
	Triggers []string `yaml:"triggers"`
}

// Matches 判断文本是否命中该主题
func (g TopicGroup) Matches(text string) bool {
	return containsAny(text, g.Triggers)
}

// Rule 有序分类规则
// 文本包含任一Include且不包含任何Exclude时命中
type Rule struct {
	Category Category `yaml:"category"`
	Include  []string `yaml:"include"`
	Exclude  []string `yaml:"exclude,omitempty"`
}

// Matches 判断规则是否命中
func (r Rule) Matches(text string) bool {
	return containsAny(text, r.Include) && !containsAny(text, r.Exclude)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return len([]rune(s))
}
