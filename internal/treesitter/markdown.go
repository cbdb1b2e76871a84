package treesitter

import (
	"context"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	tree_sitter_markdown_inline "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown-inline"

	"github.com/kobzarvs/kedit/internal/highlight"
)

type mdFenceBlock struct {
	lang            string
	blockStartRow   int
	blockEndRow     int
	contentStartRow int
	contentEndRow   int
}

// addMarkdownInline layers inline markup (emphasis, links, code spans) over
// the block-level spans. Fenced code is highlighted with its own grammar
// when one is known and drawn as a string otherwise.
func (t *docTokenizer) addMarkdownInline(tree *sitter.Tree, lines []string) {
	root := tree.RootNode()
	skip := make(map[int]bool)
	for _, block := range collectMarkdownFencedBlocks(root, []byte(strings.Join(lines, "\n"))) {
		for row := block.blockStartRow; row <= block.blockEndRow; row++ {
			skip[row] = true
		}
		t.addFencedBlock(block, lines)
	}

	inlineParser := sitter.NewParser()
	inlineParser.SetLanguage(tree_sitter_markdown_inline.GetLanguage())
	for row, line := range lines {
		if skip[row] || line == "" {
			continue
		}
		source := []byte(line)
		inlineTree, err := inlineParser.ParseCtx(context.Background(), nil, source)
		if err != nil || inlineTree == nil {
			continue
		}
		spans := queryHighlights(t.inline, inlineTree, source, []string{line})
		t.rows[row] = append(t.rows[row], spans[0]...)
	}
}

func (t *docTokenizer) addFencedBlock(block mdFenceBlock, lines []string) {
	end := block.contentEndRow
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if block.contentStartRow > end {
		return
	}
	content := lines[block.contentStartRow : end+1]
	if g, ok := t.fences[block.lang]; ok {
		if spans, ok := highlightFence(g, content); ok {
			for i, row := range spans {
				t.rows[block.contentStartRow+i] = append(t.rows[block.contentStartRow+i], row...)
			}
			return
		}
	}
	for i, line := range content {
		if line == "" {
			continue
		}
		t.rows[block.contentStartRow+i] = append(t.rows[block.contentStartRow+i],
			highlight.Span{Start: 0, End: utf8.RuneCountInString(line), Scope: "string"})
	}
}

func highlightFence(g grammar, content []string) ([][]highlight.Span, bool) {
	source := []byte(strings.Join(content, "\n"))
	parser := sitter.NewParser()
	parser.SetLanguage(g.lang)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil, false
	}
	return queryHighlights(g.query, tree, source, content), true
}

func collectMarkdownFencedBlocks(root *sitter.Node, source []byte) []mdFenceBlock {
	if root == nil {
		return nil
	}
	var blocks []mdFenceBlock
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if n.Type() == "fenced_code_block" {
			if block, ok := buildMarkdownFenceBlock(n, source); ok {
				blocks = append(blocks, block)
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if child := n.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return blocks
}

func buildMarkdownFenceBlock(node *sitter.Node, source []byte) (mdFenceBlock, bool) {
	block := mdFenceBlock{
		blockStartRow:   int(node.StartPoint().Row),
		blockEndRow:     int(node.EndPoint().Row),
		contentStartRow: -1,
		contentEndRow:   -1,
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "info_string":
			if block.lang == "" {
				block.lang = extractFenceLang(child, source)
			}
		case "code_fence_content":
			block.contentStartRow = int(child.StartPoint().Row)
			block.contentEndRow = int(child.EndPoint().Row)
			// content ends at column 0 of the closing fence row
			if child.EndPoint().Column == 0 && block.contentEndRow > block.contentStartRow {
				block.contentEndRow--
			}
		}
	}
	if block.contentStartRow < 0 || block.contentEndRow < block.contentStartRow {
		return mdFenceBlock{}, false
	}
	block.lang = normalizeFenceLang(block.lang)
	return block, true
}

func extractFenceLang(infoNode *sitter.Node, source []byte) string {
	for i := 0; i < int(infoNode.NamedChildCount()); i++ {
		if child := infoNode.NamedChild(i); child != nil && child.Type() == "language" {
			return extractNodeText(child, source)
		}
	}
	fields := strings.Fields(extractNodeText(infoNode, source))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func extractNodeText(node *sitter.Node, source []byte) string {
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return strings.TrimSpace(string(source[start:end]))
}

func normalizeFenceLang(info string) string {
	s := strings.TrimSpace(info)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	s = strings.TrimPrefix(s, ".")
	s = strings.ToLower(s)
	switch s {
	case "golang":
		return "go"
	case "yml":
		return "yaml"
	case "shell", "sh", "zsh":
		return "bash"
	default:
		return s
	}
}
