package inspect

import (
	"bytes"
	"fmt"
	"html"
	"strings"
)

// CSS class vocabulary consumed by the client-side script. The set is closed:
// fragments emitted by this package never use a class outside this list (plus
// the semantic tags in repr.go).
const (
	classCaret          = "caret"
	classOnClickExpand  = "register-onclick-expand"
	classCaretInvisible = "caret-invisible"
	classPreview        = "preview"
	classCollapsible    = "collapsible"
	classKeyMain        = "key-main"
	classSwitch         = "content-switch"
	classVersionShort   = "content-version-short"
	classSwitchExpand   = "content-switch-expand"
	classOnClickSwitch  = "register-onclick-switch"
	classVersionLong    = "content-version-long"
)

// escape HTML-escapes a display string before embedding.
func escape(s string) string { return html.EscapeString(s) }

// span wraps content in a <span> with the given class attribute.
// Classes come from the closed vocabulary and are never escaped.
func span(class, content string) string {
	return fmt.Sprintf(`<span class="%s">%s</span>`, class, content)
}

// li emits the <li> header shell for a node. Clickable nodes register the
// expand handler; leaves get an invisible caret so indentation stays aligned.
func li(id string, clickable bool, content string) string {
	caret := classCaret + " " + classCaretInvisible
	if clickable {
		caret = classCaret + " " + classOnClickExpand
	}
	return fmt.Sprintf(`<li id="%s"><span class="%s">%s</span></li>`, id, caret, content)
}

// ul wraps child headers in the collapsible container shown on expansion.
func ul(items []string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<ul class="%s">`, classCollapsible)
	for _, item := range items {
		buf.WriteString(item)
	}
	buf.WriteString(`</ul>`)
	return buf.String()
}

// StaticHTML renders the subtree rooted at n with every expandable node
// already expanded, down to maxDepth levels. Unlike the header/inner
// protocol it needs no client-side fetching, so the result can be written
// to a file. A maxDepth of 0 or less renders only the root header.
func StaticHTML(n *Node, maxDepth int) string {
	return ul([]string{staticItem(n, 0, maxDepth)})
}

func staticItem(n *Node, depth, maxDepth int) string {
	header := n.HeaderHTML()
	if n.IsLeaf() || depth >= maxDepth {
		return header
	}
	kids := n.Children()
	items := make([]string, len(kids))
	for i, c := range kids {
		items[i] = staticItem(c, depth+1, maxDepth)
	}
	// Nest the child list inside the header's <li>.
	return strings.TrimSuffix(header, "</li>") + ul(items) + "</li>"
}
