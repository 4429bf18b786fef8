package reading

import (
	"fmt"
	"sort"
)

// Profile 一套完整的分类配置
// 进程生命周期内只读，可被并发调用共享
type Profile struct {
	ID               ProfileID           `yaml:"id"`
	Name             string              `yaml:"name"`
	Rules            []Rule              `yaml:"rules"`
	Topics           []TopicGroup        `yaml:"topics"`
	MinUnitLength    int                 `yaml:"min_unit_length"`
	ResplitThreshold int                 `yaml:"resplit_threshold"`
	DefaultCategory  Category            `yaml:"default_category"`
	Labels           map[Category]string `yaml:"labels"`
	Headings         []string            `yaml:"headings"`

	sanitizer *sanitizer
}

// Label 返回分类的展示名称
func (p *Profile) Label(c Category) string {
	if label, ok := p.Labels[c]; ok {
		return label
	}
	return p.Labels[p.DefaultCategory]
}

// Classify 按规则顺序返回第一个命中的分类
func (p *Profile) Classify(text string) (Category, bool) {
	for _, rule := range p.Rules {
		if rule.Matches(text) {
			return rule.Category, true
		}
	}
	return "", false
}

// Sanitize 使用该配置的重复标题列表清洗文本
func (p *Profile) Sanitize(text string) string {
	return p.sanitizer.sanitize(text)
}

// headingPhrases 标签与额外标题合并后按长度倒序排列
func (p *Profile) headingPhrases() []string {
	seen := make(map[string]struct{})
	var phrases []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		phrases = append(phrases, s)
	}
	for _, label := range p.Labels {
		add(label)
	}
	for _, h := range p.Headings {
		add(h)
	}
	sort.SliceStable(phrases, func(i, j int) bool {
		li, lj := runeLen(phrases[i]), runeLen(phrases[j])
		if li != lj {
			return li > lj
		}
		return phrases[i] < phrases[j]
	})
	return phrases
}

var (
	profiles     = make(map[ProfileID]*Profile)
	profileOrder []ProfileID
)

func registerProfile(p *Profile) {
	p.sanitizer = newSanitizer(p.headingPhrases())
	profiles[p.ID] = p
	profileOrder = append(profileOrder, p.ID)
}

// LookupProfile 根据ID获取配置
func LookupProfile(id ProfileID) (*Profile, error) {
	p, ok := profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	return p, nil
}

// Profiles 按注册顺序返回全部配置
func Profiles() []*Profile {
	out := make([]*Profile, 0, len(profileOrder))
	for _, id := range profileOrder {
		out = append(out, profiles[id])
	}
	return out
}

// IsValidProfile 判断配置ID是否存在
func IsValidProfile(id string) bool {
	_, ok := profiles[ProfileID(id)]
	return ok
}

func init() {
	registerProfile(genericProfile())
	registerProfile(plainProfile())
	registerProfile(tarotProfile())
}
