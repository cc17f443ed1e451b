package process

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"golang.org/x/net/html/charset"
)

// Extensions we are willing to treat as paginatable markup.
var docExtensions = map[string]struct{}{
	".html":  {},
	".htm":   {},
	".xhtml": {},
	".xml":   {},
}

func hasDocExtension(path string) bool {
	_, ok := docExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// isArchiveFile reports whether path points to a real zip archive. A wrong
// extension with zip content still counts, a zip extension with garbage
// inside does not.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.IsType(head[:n], matchers.TypeZip), nil
}

// isDocFile checks both the extension and the leading bytes, decoded with
// whatever encoding the content advertises.
func isDocFile(path string) (bool, error) {
	if !hasDocExtension(path) {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 1024)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return looksLikeMarkup(head[:n]), nil
}

// isDocInArchive is isDocFile for zip entries.
func isDocInArchive(f *zip.File) (bool, error) {
	if !hasDocExtension(f.FileHeader.Name) {
		return false, nil
	}

	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	head := make([]byte, 1024)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return looksLikeMarkup(head[:n]), nil
}

func looksLikeMarkup(head []byte) bool {
	enc, _, _ := charset.DetermineEncoding(head, "")
	decoded, err := enc.NewDecoder().Bytes(head)
	if err != nil {
		decoded = head
	}
	s := strings.TrimLeft(string(decoded), "\uFEFF \t\r\n")
	return strings.HasPrefix(s, "<")
}

// selectReader wraps r so the document parser always sees UTF-8, sniffing
// BOMs and meta charset declarations.
func selectReader(r io.Reader) io.Reader {
	if cr, err := charset.NewReader(r, ""); err == nil {
		return cr
	}
	return r
}
