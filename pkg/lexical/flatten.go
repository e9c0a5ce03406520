package lexical

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ToMarkdown flattens a serialized editor document into markdown for prompt
// assembly. Content that is not editor JSON (already plain text or markdown)
// is returned unchanged, as is anything that fails to parse.
func ToMarkdown(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, `{"root":`) {
		return content
	}

	var root Root
	if err := json.Unmarshal([]byte(trimmed), &root); err != nil {
		return content
	}

	var sb strings.Builder
	walk(root.Root, &sb, 0)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func walk(node Node, sb *strings.Builder, depth int) {
	switch node.Type {
	case "root":
		for _, child := range node.Children {
			walk(child, sb, depth)
		}

	case "heading":
		level := 1
		if len(node.Tag) == 2 && node.Tag[0] == 'h' {
			level = int(node.Tag[1] - '0')
		}
		if level < 1 || level > 6 {
			level = 1
		}
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(" ")
		walkInline(node.Children, sb)
		sb.WriteString("\n\n")

	case "paragraph":
		walkInline(node.Children, sb)
		sb.WriteString("\n\n")

	case "quote":
		sb.WriteString("> ")
		walkInline(node.Children, sb)
		sb.WriteString("\n\n")

	case "code":
		sb.WriteString("```")
		sb.WriteString(node.Language)
		sb.WriteString("\n")
		walkInline(node.Children, sb)
		sb.WriteString("\n```\n\n")

	case "list":
		writeList(node, sb, depth)
		if depth == 0 {
			sb.WriteString("\n")
		}

	case "horizontalrule":
		sb.WriteString("---\n\n")

	default:
		for _, child := range node.Children {
			walk(child, sb, depth)
		}
	}
}

func walkInline(nodes []Node, sb *strings.Builder) {
	for _, node := range nodes {
		switch node.Type {
		case "text":
			writeText(node, sb)
		case "link":
			sb.WriteString("[")
			walkInline(node.Children, sb)
			sb.WriteString(fmt.Sprintf("](%s)", node.URL))
		case "linebreak":
			sb.WriteString("\n")
		default:
			walkInline(node.Children, sb)
		}
	}
}

func writeText(node Node, sb *strings.Builder) {
	format := 0
	switch f := node.Format.(type) {
	case float64:
		format = int(f)
	case int:
		format = f
	}

	var open, close string
	if format&FormatCode != 0 {
		open, close = "`", "`"
	} else {
		if format&FormatBold != 0 {
			open += "**"
			close = "**" + close
		}
		if format&FormatItalic != 0 {
			open += "_"
			close = "_" + close
		}
		if format&FormatStrikethrough != 0 {
			open += "~~"
			close = "~~" + close
		}
	}

	sb.WriteString(open)
	sb.WriteString(node.Text)
	sb.WriteString(close)
}

func writeList(node Node, sb *strings.Builder, depth int) {
	index := 1
	if node.Start > 0 {
		index = node.Start
	}

	for _, item := range node.Children {
		if item.Type != "listitem" {
			continue
		}

		sb.WriteString(strings.Repeat("  ", depth))
		switch node.ListType {
		case "number":
			sb.WriteString(fmt.Sprintf("%d. ", index))
			index++
		case "check":
			if item.Checked {
				sb.WriteString("- [x] ")
			} else {
				sb.WriteString("- [ ] ")
			}
		default:
			sb.WriteString("- ")
		}

		for _, child := range item.Children {
			if child.Type == "list" {
				sb.WriteString("\n")
				writeList(child, sb, depth+1)
			} else if child.Type == "text" || child.Type == "link" {
				walkInline([]Node{child}, sb)
			} else {
				walkInline(child.Children, sb)
			}
		}
		sb.WriteString("\n")
	}
}
