package render

import (
	"fmt"
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/fyerfyer/reading-formatter/internal/reading"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// markerPattern 匹配内容块中的语义标记
var markerPattern = regexp.MustCompile(`\[(?:/?b|/?i|/?note|br)\]`)

var markdownMarkers = map[string]string{
	reading.StrongOpen:  "**",
	reading.StrongClose: "**",
	reading.EmOpen:      "*",
	reading.EmClose:     "*",
	reading.NoteOpen:    `<span class="note">`,
	reading.NoteClose:   `</span>`,
	reading.LineBreak:   "\\\n",
}

// markdownEscaper 转义会被Markdown解释的字符
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`#`, `\#`,
	`~`, `\~`,
	`|`, `\|`,
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
)

const pageTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { max-width: 720px; margin: 2em auto; font-family: "PingFang SC", "Microsoft YaHei", sans-serif; line-height: 1.8; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: .2em; }
.note { color: #888; font-size: .9em; }
</style>
</head>
<body>
<article class="reading">
%s</article>
</body>
</html>
`

// Markdown 按分类分节生成Markdown文本，相邻同类内容块共用一个小标题
func Markdown(title string, blocks []reading.Block) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("# " + markdownEscaper.Replace(title) + "\n\n")
	}

	inList := false
	for i, blk := range blocks {
		if i == 0 || blocks[i-1].Category != blk.Category {
			if inList {
				b.WriteString("\n")
				inList = false
			}
			b.WriteString("## " + markdownEscaper.Replace(blk.Label) + "\n\n")
		}

		if blk.Item {
			// 列表项内不能出现空行
			text := strings.ReplaceAll(blk.Text, "\n\n", reading.LineBreak)
			b.WriteString("- " + inline(text) + "\n")
			inList = true
			continue
		}
		if inList {
			b.WriteString("\n")
			inList = false
		}
		b.WriteString(inline(blk.Text) + "\n\n")
	}
	return b.String()
}

// HTML 生成可打印的完整HTML页面
func HTML(title string, blocks []reading.Block) string {
	md := Markdown("", blocks)

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML([]byte(md), p, renderer)

	heading := ""
	if title != "" {
		heading = "<h1>" + stdhtml.EscapeString(title) + "</h1>\n"
	}
	return fmt.Sprintf(pageTemplate, stdhtml.EscapeString(title), heading+string(body))
}

// inline 转义普通文本并把语义标记换成Markdown写法
func inline(text string) string {
	var b strings.Builder
	last := 0
	for _, m := range markerPattern.FindAllStringIndex(text, -1) {
		b.WriteString(markdownEscaper.Replace(text[last:m[0]]))
		b.WriteString(markdownMarkers[text[m[0]:m[1]]])
		last = m[1]
	}
	b.WriteString(markdownEscaper.Replace(text[last:]))
	return b.String()
}
