package reading

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// markdownExtensions 允许词内强调和不带空格的#标题，列表和引用可以紧跟正文；$和行首冒号按普通字符处理
const markdownExtensions = (parser.CommonExtensions | parser.NoEmptyLineBeforeBlock) &^
	(parser.NoIntraEmphasis | parser.SpaceHeadings | parser.MathJax | parser.DefinitionLists)

var (
	blankLines = regexp.MustCompile(`\n{2,}`)

	// 解析期间把已有的语义标记换成私有区字符，避免被识别为链接
	markerGuard = strings.NewReplacer(
		StrongOpen, "\uE000", StrongClose, "\uE001",
		EmOpen, "\uE002", EmClose, "\uE003",
		NoteOpen, "\uE004", NoteClose, "\uE005",
		LineBreak, "\uE006",
	)
	markerRestore = strings.NewReplacer(
		"\uE000", StrongOpen, "\uE001", StrongClose,
		"\uE002", EmOpen, "\uE003", EmClose,
		"\uE004", NoteOpen, "\uE005", NoteClose,
		"\uE006", LineBreak,
	)
)

// stripMarkdown 解析Markdown并输出纯文本，粗体和斜体转为语义标记
// 空行分隔的段落分别解析，段落内的块之间用单个换行连接
func stripMarkdown(text string) string {
	text = markerGuard.Replace(text)

	var paragraphs []string
	for _, chunk := range blankLines.Split(text, -1) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		// Parser不可复用，每段新建
		doc := parser.NewWithExtensions(markdownExtensions).Parse([]byte(chunk + "\n"))
		if lines := blockLines(doc); len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return markerRestore.Replace(strings.Join(paragraphs, "\n\n"))
}

// blockLines 按块输出文本，分隔线和空块不输出
func blockLines(n ast.Node) []string {
	switch node := n.(type) {
	case *ast.HorizontalRule:
		return nil
	case *ast.Paragraph, *ast.Heading:
		return nonBlank(inlineText(node))
	case *ast.CodeBlock, *ast.HTMLBlock:
		return nonBlank(string(node.AsLeaf().Literal))
	case *ast.TableRow:
		cells := make([]string, 0, len(node.Children))
		for _, c := range node.Children {
			if s := strings.TrimSpace(inlineText(c)); s != "" {
				cells = append(cells, s)
			}
		}
		return nonBlank(strings.Join(cells, " "))
	case *ast.ListItem:
		lines := childLines(node)
		// 有序列表只去掉序号
		if len(lines) > 0 && node.ListFlags&ast.ListTypeOrdered == 0 {
			lines[0] = Bullet + lines[0]
		}
		return lines
	default:
		return childLines(n)
	}
}

func childLines(n ast.Node) []string {
	var lines []string
	for _, c := range n.GetChildren() {
		lines = append(lines, blockLines(c)...)
	}
	return lines
}

func inlineText(n ast.Node) string {
	var b strings.Builder
	writeInline(&b, n)
	return b.String()
}

func writeInline(b *strings.Builder, n ast.Node) {
	for _, c := range n.GetChildren() {
		switch node := c.(type) {
		case *ast.Strong:
			b.WriteString(StrongOpen)
			writeInline(b, node)
			b.WriteString(StrongClose)
		case *ast.Emph:
			b.WriteString(EmOpen)
			writeInline(b, node)
			b.WriteString(EmClose)
		case *ast.Hardbreak, *ast.Softbreak:
			b.WriteString("\n")
		case *ast.HTMLSpan:
			// 丢弃行内标签，标签之间的文字是独立节点
		default:
			if leaf := c.AsLeaf(); leaf != nil {
				b.Write(leaf.Literal)
			} else {
				writeInline(b, c)
			}
		}
	}
}

func nonBlank(s string) []string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return []string{s}
}
