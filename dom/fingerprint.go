package dom

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/unicode/norm"
)

// Fingerprint returns a stable digest of the multiset of text leaves in flow
// content under root. Reflow only moves, splits and merges flow children, so
// the fingerprint must be identical before and after any number of passes.
// Footers and excluded elements are skipped: footers may legitimately be
// cloned onto new pages. Text is NFC-normalized so byte-level encoding
// differences do not produce false mismatches.
func Fingerprint(root *etree.Element) string {
	var leaves []string
	collectTextLeaves(root, &leaves)
	sort.Strings(leaves)
	h := sha256.New()
	for _, s := range leaves {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func collectTextLeaves(el *etree.Element, out *[]string) {
	for _, child := range el.Child {
		switch t := child.(type) {
		case *etree.CharData:
			if s := strings.TrimSpace(t.Data); s != "" {
				*out = append(*out, norm.NFC.String(s))
			}
		case *etree.Element:
			if IsFooter(t) || Excluded(t) {
				continue
			}
			if _, ok := nonContentTags[t.Tag]; ok {
				continue
			}
			collectTextLeaves(t, out)
		}
	}
}
