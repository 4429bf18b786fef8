package reading

import "strings"

const defaultMethodTitle = "命理解读"

// methodTitles 测算方式对应的展示标题，只用于标注输出
var methodTitles = map[string]string{
	"bazi":      "八字命理解读",
	"ziwei":     "紫微斗数解读",
	"tarot":     "塔罗牌解读",
	"astrology": "星座运势解读",
	"zodiac":    "生肖运势解读",
	"name":      "姓名测算解读",
	"iching":    "周易卦象解读",
}

// MethodTitle 返回测算方式的展示标题，未知方式返回通用标题
func MethodTitle(method string) string {
	if title, ok := methodTitles[strings.ToLower(strings.TrimSpace(method))]; ok {
		return title
	}
	return defaultMethodTitle
}
