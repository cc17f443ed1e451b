package process

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	fixzip "github.com/hidez8891/zip"
)

// bundler collects written output files so a run with wrapping enabled can
// pack them into a single archive at the end.
type bundler struct {
	dst   string
	files map[string]string // archive entry -> path on disk
}

func newBundler(dst string) *bundler {
	return &bundler{dst: dst, files: make(map[string]string)}
}

func (b *bundler) add(path string) {
	name, err := filepath.Rel(b.dst, path)
	if err != nil || strings.HasPrefix(name, "..") {
		name = filepath.Base(path)
	}
	b.files[filepath.ToSlash(name)] = path
}

// write packs collected outputs into bundlePath. Entries are written with a
// plain zip writer first and then rewritten without data descriptor records,
// some consumers choke on those.
func (b *bundler) write(bundlePath string) error {
	if len(b.files) == 0 {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(bundlePath), "bundle-*.zip")
	if err != nil {
		return fmt.Errorf("unable to create temporary bundle: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := writeBundleEntries(tmp, b.files); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to finish temporary bundle: %w", err)
	}
	return copyZipWithoutDataDescriptors(tmpName, bundlePath)
}

func writeBundleEntries(out io.Writer, files map[string]string) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	w := zip.NewWriter(out)
	for _, name := range names {
		src, err := os.Open(files[name])
		if err != nil {
			return fmt.Errorf("unable to open output file (%s): %w", files[name], err)
		}
		entry, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			src.Close()
			return fmt.Errorf("unable to create bundle entry (%s): %w", name, err)
		}
		_, err = io.Copy(entry, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("unable to write bundle entry (%s): %w", name, err)
		}
	}
	return w.Close()
}

func copyZipWithoutDataDescriptors(from, to string) error {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}
