package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Renderer converts a constrained markdown subset (headings, lists, fenced
// and inline code, bold, italic, paragraphs) to sanitized HTML. All literal
// text is escaped exactly once, before any tag is emitted, so no input can
// inject markup. Rendering never fails: anything that does not match a
// construct is emitted as escaped plain text.
type Renderer struct {
	// HighlightCode switches fenced code emission to chroma syntax
	// highlighting for recognized language tags. The default emission is
	// <pre><code class="language-X">...</code></pre>.
	HighlightCode bool
}

var defaultRenderer = Renderer{}

// Render renders raw markdown with the default renderer.
func Render(raw string) string {
	return defaultRenderer.Render(raw)
}

func (r Renderer) Render(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return strings.TrimSpace(r.emit(parse(raw)))
}

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockList
	blockCode
)

type block struct {
	kind    blockKind
	level   int    // headings
	ordered bool   // lists
	lang    string // fenced code
	lines   []string
}

var (
	unorderedItemPattern = regexp.MustCompile(`^\s{0,3}[-*]\s+(.*)$`)
	orderedItemPattern   = regexp.MustCompile(`^\s{0,3}\d+\.\s+(.*)$`)
)

// parse scans the input line by line into block-level nodes. Block boundaries
// are decided per line: a heading or list marker always terminates the
// preceding run, a blank line separates paragraphs, and a fence that never
// closes stays literal paragraph text.
func parse(raw string) []block {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	var blocks []block
	var para []string
	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, block{kind: blockParagraph, lines: para})
			para = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "```"):
			end := -1
			for j := i + 1; j < len(lines); j++ {
				if strings.TrimSpace(lines[j]) == "```" {
					end = j
					break
				}
			}
			if end < 0 {
				// unterminated fence: keep the line as literal text
				para = append(para, line)
				continue
			}
			flushPara()
			blocks = append(blocks, block{
				kind:  blockCode,
				lang:  strings.TrimSpace(strings.TrimPrefix(trimmed, "```")),
				lines: lines[i+1 : end],
			})
			i = end
		case trimmed == "":
			flushPara()
		case headingLevel(trimmed) > 0:
			flushPara()
			level := headingLevel(trimmed)
			blocks = append(blocks, block{
				kind:  blockHeading,
				level: level,
				lines: []string{strings.TrimSpace(trimmed[level:])},
			})
		case unorderedItemPattern.MatchString(line), orderedItemPattern.MatchString(line):
			flushPara()
			ordered := orderedItemPattern.MatchString(line)
			items := []string{itemText(line, ordered)}
			for i+1 < len(lines) && matchesItem(lines[i+1], ordered) {
				i++
				items = append(items, itemText(lines[i], ordered))
			}
			blocks = append(blocks, block{kind: blockList, ordered: ordered, lines: items})
		default:
			para = append(para, line)
		}
	}
	flushPara()

	return blocks
}

// headingLevel returns 1-3 for "# ".."### " prefixes and 0 otherwise.
func headingLevel(trimmed string) int {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level < 1 || level > 3 || level >= len(trimmed) || trimmed[level] != ' ' {
		return 0
	}
	return level
}

func matchesItem(line string, ordered bool) bool {
	if ordered {
		return orderedItemPattern.MatchString(line)
	}
	return unorderedItemPattern.MatchString(line)
}

func itemText(line string, ordered bool) string {
	p := unorderedItemPattern
	if ordered {
		p = orderedItemPattern
	}
	return p.FindStringSubmatch(line)[1]
}

func (r Renderer) emit(blocks []block) string {
	var b strings.Builder

	// A document that is a single plain text run stays bare: escaped text
	// with <br> line breaks, no paragraph wrapper.
	wrap := !(len(blocks) == 1 && blocks[0].kind == blockParagraph)

	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		switch blk.kind {
		case blockCode:
			b.WriteString(r.codeHTML(blk))
		case blockHeading:
			fmt.Fprintf(&b, "<h%d>%s</h%d>", blk.level, inline(blk.lines[0]), blk.level)
		case blockList:
			tag := "ul"
			if blk.ordered {
				tag = "ol"
			}
			b.WriteString("<" + tag + ">")
			for _, item := range blk.lines {
				b.WriteString("<li>" + inline(item) + "</li>")
			}
			b.WriteString("</" + tag + ">")
		case blockParagraph:
			rendered := make([]string, len(blk.lines))
			for j, line := range blk.lines {
				rendered[j] = inline(line)
			}
			body := strings.Join(rendered, "<br>")
			if wrap {
				body = "<p>" + body + "</p>"
			}
			b.WriteString(body)
		}
	}

	return b.String()
}

func (r Renderer) codeHTML(blk block) string {
	content := strings.TrimSpace(strings.Join(blk.lines, "\n"))
	if r.HighlightCode && blk.lang != "" {
		if highlighted, ok := highlightCode(content, blk.lang); ok {
			return highlighted
		}
	}
	if blk.lang == "" {
		return "<pre><code>" + html.EscapeString(content) + "</code></pre>"
	}
	return `<pre><code class="language-` + html.EscapeString(blk.lang) + `">` +
		html.EscapeString(content) + "</code></pre>"
}

var (
	inlineCodePattern = regexp.MustCompile("`([^`\n]+)`")
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern     = regexp.MustCompile(`\*([^*\n]+)\*`)
)

// inline renders one line of text: code spans are escaped verbatim, the rest
// is escaped and then gets a single non-recursive emphasis pass.
func inline(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range inlineCodePattern.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(emphasis(html.EscapeString(s[last:m[0]])))
		b.WriteString("<code>" + html.EscapeString(s[m[2]:m[3]]) + "</code>")
		last = m[1]
	}
	b.WriteString(emphasis(html.EscapeString(s[last:])))
	return b.String()
}

func emphasis(s string) string {
	s = boldPattern.ReplaceAllString(s, "<strong>$1</strong>")
	return italicPattern.ReplaceAllString(s, "<em>$1</em>")
}
