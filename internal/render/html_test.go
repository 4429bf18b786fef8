package render

import (
	"strings"
	"testing"

	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownSections(t *testing.T) {
	blocks := []reading.Block{
		{Category: reading.CategoryPersonality, Label: "性格分析", Text: "你很[b]坚强[/b]。", Order: 0},
		{Category: reading.CategoryGuidance, Label: "建议", Text: "早睡早起。", Order: 1, Item: true},
		{Category: reading.CategoryGuidance, Label: "建议", Text: "多喝水。", Order: 2, Item: true},
		{Category: reading.CategoryDefault, Label: "详细解读", Text: "保持耐心[note]（下半年）[/note]", Order: 3},
	}

	md := Markdown("八字命理解读", blocks)

	assert.True(t, strings.HasPrefix(md, "# 八字命理解读\n\n"))
	assert.Equal(t, 3, strings.Count(md, "## "), "相邻同类内容块共用一个小标题")
	assert.Contains(t, md, "你很**坚强**。")
	assert.Contains(t, md, "- 早睡早起。\n- 多喝水。\n\n## 详细解读")
	assert.Contains(t, md, `保持耐心<span class="note">（下半年）</span>`)
}

func TestMarkdownEscapesPlainText(t *testing.T) {
	blocks := []reading.Block{
		{Category: reading.CategoryDefault, Label: "解读", Text: "1*2 #3 <tag>"},
	}
	md := Markdown("", blocks)
	assert.Contains(t, md, `1\*2 \#3 &lt;tag&gt;`)
}

func TestHTML(t *testing.T) {
	blocks := []reading.Block{
		{Category: reading.CategoryPersonality, Label: "性格分析", Text: "你很[b]坚强[/b]。[br]做事[i]踏实[/i]。"},
		{Category: reading.CategoryGuidance, Label: "建议", Text: "早睡早起。", Item: true},
		{Category: reading.CategoryGuidance, Label: "建议", Text: "多喝水。", Item: true},
		{Category: reading.CategoryDefault, Label: "详细解读", Text: "注意<script>alert(1)</script>"},
	}

	page := HTML("紫微斗数解读", blocks)

	require.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>紫微斗数解读</title>")
	assert.Contains(t, page, "<h1>紫微斗数解读</h1>")
	assert.Contains(t, page, "<h2>性格分析</h2>")
	assert.Contains(t, page, "<strong>坚强</strong>")
	assert.Contains(t, page, "<em>踏实</em>")
	assert.Contains(t, page, "<br")
	assert.Contains(t, page, "<ul>")
	assert.Contains(t, page, "早睡早起。")
	assert.NotContains(t, page, "<script>")
}

func TestHTMLEmpty(t *testing.T) {
	page := HTML("", nil)
	assert.Contains(t, page, `<article class="reading">`)
	assert.NotContains(t, page, "<h1>")
}
