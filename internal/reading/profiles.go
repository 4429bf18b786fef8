package reading

// 三套配置的规则表
// 顺序即优先级：标题标记 → 具体领域 → 建议 → 总结

var (
	wealthWords   = []string{"财运", "财富", "金钱", "收入", "理财", "投资", "钱财"}
	guidanceWords = []string{"建议", "提醒", "不妨", "应该", "注意事项"}
)

func genericProfile() *Profile {
	return &Profile{
		ID:   ProfileGeneric,
		Name: "通用命理解读",
		Rules: []Rule{
			{Category: CategoryTitle, Include: []string{"核心要点", "核心解读", "命盘概述", "整体格局", "总体概述"}},
			{Category: CategoryPersonality, Include: []string{"性格", "个性", "脾气", "性情", "为人"}},
			{
				Category: CategoryFortune,
				Include:  []string{"运势", "流年", "时运", "大运", "未来", "今年", "近期"},
				Exclude:  []string{"事业", "工作", "财运", "感情", "婚姻", "健康"},
			},
			// 事业与财运同时出现时归入财运
			{
				Category: CategoryCareer,
				Include:  []string{"事业", "工作", "职业", "职场", "创业", "升职"},
				Exclude:  wealthWords,
			},
			{Category: CategoryWealth, Include: wealthWords},
			{Category: CategoryLove, Include: []string{"感情", "爱情", "婚姻", "桃花", "恋爱", "伴侣"}},
			{Category: CategoryHealth, Include: []string{"健康", "身体", "养生", "作息", "疾病"}},
			{Category: CategoryGuidance, Include: guidanceWords},
			{Category: CategorySummary, Include: []string{"总结", "总的来说", "总而言之", "综上"}},
		},
		Topics: []TopicGroup{
			{Name: "personality", Triggers: []string{"性格", "个性", "脾气"}},
			{Name: "career", Triggers: []string{"事业", "工作", "职业", "创业"}},
			{Name: "wealth", Triggers: []string{"财运", "财富", "金钱", "理财"}},
			{Name: "love", Triggers: []string{"感情", "爱情", "婚姻", "桃花"}},
			{Name: "health", Triggers: []string{"健康", "身体", "养生"}},
			{Name: "fortune", Triggers: []string{"运势", "流年", "未来"}},
		},
		MinUnitLength:    20,
		ResplitThreshold: 200,
		DefaultCategory:  CategoryDefault,
		Labels: map[Category]string{
			CategoryTitle:       "核心解读",
			CategoryPersonality: "性格分析",
			CategoryFortune:     "运势分析",
			CategoryCareer:      "事业发展",
			CategoryWealth:      "财运分析",
			CategoryLove:        "感情婚姻",
			CategoryHealth:      "健康提示",
			CategoryGuidance:    "建议",
			CategorySummary:     "总结",
			CategoryDefault:     "详细解读",
		},
		Headings: []string{
			"核心要点", "命盘概述", "整体运势", "事业运势", "财运运势",
			"感情运势", "健康运势", "开运建议", "温馨提示", "综合建议", "Summary",
		},
	}
}

func plainProfile() *Profile {
	return &Profile{
		ID:   ProfilePlain,
		Name: "白话解读",
		Rules: []Rule{
			{Category: CategoryTitle, Include: []string{"一句话总结", "简单来说", "核心要点"}},
			{Category: CategoryPersonality, Include: []string{"性格", "脾气", "个性", "为人"}},
			{
				Category: CategoryFortune,
				Include:  []string{"运气", "运势", "未来", "以后", "将来"},
				Exclude:  []string{"工作", "上班", "钱", "感情", "身体"},
			},
			{Category: CategoryCareer, Include: []string{"工作", "事业", "上班", "职业", "创业"}},
			// 与通用配置相反：工作和钱同时出现时归入事业
			{
				Category: CategoryWealth,
				Include:  []string{"钱", "财", "收入", "存款"},
				Exclude:  []string{"工作", "上班"},
			},
			{Category: CategoryLove, Include: []string{"感情", "恋爱", "另一半", "婚姻", "对象"}},
			{
				Category: CategoryHealth,
				Include:  []string{"身体", "健康", "睡眠", "休息"},
				Exclude:  guidanceWords,
			},
			{Category: CategoryGuidance, Include: append([]string{"可以试试", "记得"}, guidanceWords...)},
			{Category: CategorySummary, Include: []string{"总的来说", "总之", "最后"}},
		},
		Topics: []TopicGroup{
			{Name: "personality", Triggers: []string{"性格", "脾气", "个性"}},
			{Name: "career", Triggers: []string{"工作", "事业", "上班", "创业"}},
			{Name: "wealth", Triggers: []string{"钱", "收入", "存款"}},
			{Name: "love", Triggers: []string{"感情", "恋爱", "另一半"}},
			{Name: "health", Triggers: []string{"身体", "健康", "睡眠"}},
			{Name: "future", Triggers: []string{"未来", "以后", "将来"}},
		},
		MinUnitLength:    10,
		ResplitThreshold: 200,
		DefaultCategory:  CategoryDefault,
		Labels: map[Category]string{
			CategoryTitle:       "一句话看懂",
			CategoryPersonality: "你的性格",
			CategoryFortune:     "运气走向",
			CategoryCareer:      "工作",
			CategoryWealth:      "钱财",
			CategoryLove:        "感情",
			CategoryHealth:      "身体",
			CategoryGuidance:    "给你的建议",
			CategorySummary:     "总的来说",
			CategoryDefault:     "解读",
		},
		Headings: []string{"性格分析", "事业发展", "财运分析", "感情婚姻", "健康提示", "建议", "总结"},
	}
}

func tarotProfile() *Profile {
	return &Profile{
		ID:   ProfileTarot,
		Name: "塔罗牌解读",
		Rules: []Rule{
			{Category: CategoryTitle, Include: []string{"牌阵概览", "整体牌面", "本次占卜", "牌阵解读"}},
			{Category: CategoryLove, Include: []string{"感情", "爱情", "恋人", "关系", "伴侣"}},
			{
				Category: CategoryCareer,
				Include:  []string{"事业", "工作", "职场", "学业"},
				Exclude:  []string{"财务", "金钱", "财运"},
			},
			{Category: CategoryWealth, Include: []string{"财务", "金钱", "财运", "收入"}},
			{Category: CategoryFortune, Include: []string{"过去", "现在", "未来", "当前", "时机"}},
			{Category: CategoryHealth, Include: []string{"健康", "身体", "精力"}},
			{Category: CategoryGuidance, Include: []string{"建议", "指引", "提醒", "不妨"}},
			{Category: CategorySummary, Include: []string{"总结", "总的来说", "综合来看"}},
		},
		Topics: []TopicGroup{
			{Name: "love", Triggers: []string{"感情", "爱情", "恋人"}},
			{Name: "career", Triggers: []string{"事业", "工作", "学业"}},
			{Name: "wealth", Triggers: []string{"财务", "金钱", "财运"}},
			{Name: "health", Triggers: []string{"健康", "身体"}},
		},
		MinUnitLength:    20,
		ResplitThreshold: 200,
		DefaultCategory:  CategoryDefault,
		Labels: map[Category]string{
			CategoryTitle:    "牌阵概览",
			CategoryFortune:  "时机与走向",
			CategoryCareer:   "事业学业",
			CategoryWealth:   "财务状况",
			CategoryLove:     "感情关系",
			CategoryHealth:   "身心状态",
			CategoryGuidance: "塔罗指引",
			CategorySummary:  "总结",
			CategoryDefault:  "牌意解读",
		},
		Headings: []string{"牌面解读", "核心要点", "建议", "Tarot Reading"},
	}
}
