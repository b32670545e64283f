package server

import (
	"fmt"

	"github.com/objscope/objscope/pkg/inspect"
)

// pageShell is the static wrapper around the root fragment. The embedded
// script implements the two client-side behaviors the fragments rely on:
// caret clicks fetch the node's inner fragment from /node/{id}, and
// content-switch clicks toggle the short and long versions of a long repr.
const pageShell = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>objscope</title>
<style>
body { font-family: monospace; margin: 1em 2em; }
ul.collapsible { list-style: none; padding-left: 1.2em; }
li { margin: 0.1em 0; }
.caret { cursor: pointer; user-select: none; }
.caret::before { content: "\25B8"; display: inline-block; width: 1em; }
.caret.open::before { content: "\25BE"; }
.caret-invisible::before { visibility: hidden; }
.key-main { color: #268bd2; }
.null { color: #93a1a1; }
.number { color: #2aa198; }
.boolean { color: #b58900; }
.string { color: #859900; }
.error { color: #dc322f; }
.preview { color: #6c71c4; }
.content-version-long { display: none; }
.content-switch-expand { cursor: pointer; }
</style>
</head>
<body>
<ul class="collapsible">
%s
</ul>
<script>
document.addEventListener("click", async (ev) => {
  const sw = ev.target.closest(".register-onclick-switch");
  if (sw) {
    for (const el of sw.querySelectorAll(".content-version-short, .content-version-long")) {
      el.style.display = el.style.display === "inline" ? "" :
        (getComputedStyle(el).display === "none" ? "inline" : "none");
    }
    return;
  }
  const caret = ev.target.closest(".register-onclick-expand");
  if (!caret) return;
  const item = caret.closest("li");
  if (caret.classList.toggle("open")) {
    if (!item.querySelector("ul")) {
      const resp = await fetch("/node/" + item.id);
      if (resp.ok) item.insertAdjacentHTML("beforeend", await resp.text());
    }
  } else {
    const inner = item.querySelector("ul");
    if (inner) inner.remove();
  }
});
</script>
</body>
</html>
`

// renderPage wraps the root node's header fragment in the page shell.
func renderPage(root *inspect.Node) string {
	return fmt.Sprintf(pageShell, root.HeaderHTML())
}
