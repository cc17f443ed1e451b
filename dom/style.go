package dom

import (
	"strings"

	"github.com/beevik/etree"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// inlineDeclarations scans an inline style attribute and calls fn for every
// property declaration with the lower-cased property name and raw value.
func inlineDeclarations(style string, fn func(prop, value string)) {
	if strings.TrimSpace(style) == "" {
		return
	}
	p := css.NewParser(parse.NewInputString(style), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			var val strings.Builder
			for _, t := range p.Values() {
				val.Write(t.Data)
			}
			fn(strings.ToLower(string(data)), strings.TrimSpace(val.String()))
		}
	}
}

// OutOfFlowStyle reports whether an inline style positions the element outside
// normal flow (absolutely or fixed positioned overlays).
func OutOfFlowStyle(style string) bool {
	var out bool
	inlineDeclarations(style, func(prop, value string) {
		if prop != "position" {
			return
		}
		switch strings.ToLower(value) {
		case "absolute", "fixed":
			out = true
		}
	})
	return out
}

// HasDistinguishingStyle reports whether the element carries inline styling a
// reader would notice across a merge seam: a visible border, a background or
// non-zero padding. Such elements must never be auto-merged.
func HasDistinguishingStyle(el *etree.Element) bool {
	style := el.SelectAttrValue("style", "")
	var distinguishing bool
	inlineDeclarations(style, func(prop, value string) {
		switch {
		case strings.HasPrefix(prop, "border"):
			if value != "" && !strings.Contains(value, "none") && !strings.HasPrefix(value, "0") {
				distinguishing = true
			}
		case prop == "background" || strings.HasPrefix(prop, "background-"):
			if value != "" && value != "none" && value != "transparent" {
				distinguishing = true
			}
		case prop == "padding" || strings.HasPrefix(prop, "padding-"):
			if value != "" && !strings.HasPrefix(value, "0") {
				distinguishing = true
			}
		}
	})
	return distinguishing
}
