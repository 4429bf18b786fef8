package reading

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupProfile(t *testing.T) {
	for _, id := range []ProfileID{ProfileGeneric, ProfilePlain, ProfileTarot} {
		p, err := LookupProfile(id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.NotEmpty(t, p.Rules)
		assert.NotNil(t, p.sanitizer)
	}

	_, err := LookupProfile("unknown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProfile))
	assert.Contains(t, err.Error(), "unknown")
}

func TestProfilesOrder(t *testing.T) {
	ps := Profiles()
	require.Len(t, ps, 3)
	assert.Equal(t, ProfileGeneric, ps[0].ID)
	assert.Equal(t, ProfilePlain, ps[1].ID)
	assert.Equal(t, ProfileTarot, ps[2].ID)

	assert.True(t, IsValidProfile("tarot"))
	assert.False(t, IsValidProfile("Tarot"))
	assert.False(t, IsValidProfile(""))
}

func TestProfileLabel(t *testing.T) {
	generic := mustProfile(t, ProfileGeneric)
	assert.Equal(t, "性格分析", generic.Label(CategoryPersonality))
	assert.Equal(t, "详细解读", generic.Label(CategoryDefault))

	tarot := mustProfile(t, ProfileTarot)
	assert.Equal(t, "牌意解读", tarot.Label(CategoryPersonality), "缺少的分类使用默认分类的名称")
}

// TestClassify 测试规则顺序决定优先级
func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		profile ProfileID
		text    string
		want    Category
		matched bool
	}{
		{"career", ProfileGeneric, "今年事业发展顺利，工作上会有贵人相助。", CategoryCareer, true},
		{"career excluded by wealth words", ProfileGeneric, "事业上升带动财运，收入明显增加。", CategoryWealth, true},
		{"health before guidance", ProfileGeneric, "建议多注意身体，按时作息。", CategoryHealth, true},
		{"fortune excluded by topic words", ProfileGeneric, "今年感情方面会有新的进展。", CategoryLove, true},
		{"title first", ProfileGeneric, "核心要点：性格与事业都很突出。", CategoryTitle, true},
		{"plain health excluded by guidance", ProfilePlain, "建议多注意身体，按时休息。", CategoryGuidance, true},
		{"plain colloquial wealth", ProfilePlain, "这段时间存款会慢慢变多。", CategoryWealth, true},
		{"tarot relationship", ProfileTarot, "这段关系中你们需要更多沟通。", CategoryLove, true},
		{"tarot career excluded by finance", ProfileTarot, "事业上会遇到财务压力。", CategoryWealth, true},
		{"tarot timing", ProfileTarot, "当前的时机还不成熟。", CategoryFortune, true},
		{"no match", ProfileGeneric, "天气晴朗，适合出门散步。", "", false},
		{"no match plain", ProfilePlain, "天气晴朗，适合出门散步。", "", false},
		{"no match tarot", ProfileTarot, "天气晴朗，适合出门散步。", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustProfile(t, tt.profile)
			got, ok := p.Classify(tt.text)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeadingPhrasesLongestFirst(t *testing.T) {
	phrases := mustProfile(t, ProfileGeneric).headingPhrases()
	require.NotEmpty(t, phrases)

	seen := make(map[string]bool)
	for i, ph := range phrases {
		assert.False(t, seen[ph], "短语不应重复: %s", ph)
		seen[ph] = true
		if i > 0 {
			assert.GreaterOrEqual(t, runeLen(phrases[i-1]), runeLen(ph))
		}
	}
	assert.True(t, seen["建议"])
	assert.True(t, seen["Summary"])
}

func TestMethodTitle(t *testing.T) {
	assert.Equal(t, "八字命理解读", MethodTitle("bazi"))
	assert.Equal(t, "塔罗牌解读", MethodTitle(" Tarot "))
	assert.Equal(t, "命理解读", MethodTitle("palmistry"))
	assert.Equal(t, "命理解读", MethodTitle(""))
}
