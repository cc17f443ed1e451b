package process

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"repage/archive"
	"repage/misc"
	"repage/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("process")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite, env.Wrap = cmd.Bool("nodirs"), cmd.Bool("overwrite"), cmd.Bool("wrap")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	cp := cmd.String("force-zip-cp")
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	p := &processor{env: env, log: log}
	if env.Wrap {
		p.bundle = newBundler(dst)
	}

	if err := p.process(ctx, src, dst); err != nil {
		return err
	}
	if p.bundle != nil {
		bundlePath := filepath.Join(dst, misc.GetAppName()+"-bundle.zip")
		if err := p.bundle.write(bundlePath); err != nil {
			return fmt.Errorf("unable to wrap outputs: %w", err)
		}
		log.Info("Outputs wrapped", zap.String("bundle", bundlePath), zap.Int("files", len(p.bundle.files)))
	}
	return p.errs
}

// processor carries per-run state, per-document failures accumulate in errs
// without stopping the run.
type processor struct {
	env    *state.LocalEnv
	log    *zap.Logger
	bundle *bundler
	errs   error
}

func (p *processor) fail(msg string, err error, fields ...zap.Field) {
	p.log.Error(msg, append(fields, zap.Error(err))...)
	p.errs = multierr.Append(p.errs, err)
}

// process determines the input type (directory, archive, or single file) and
// dispatches accordingly. The source may point inside an archive.
func (p *processor) process(ctx context.Context, src, dst string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := p.processDir(ctx, head, dst); err != nil {
				return errors.New("unable to process directory")
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := p.processArchive(ctx, head, tail, "", dst); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		doc, err := isDocFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if doc && len(tail) == 0 {
			// we have a document, it cannot have tail
			if file, err := os.Open(head); err != nil {
				p.fail("Unable to process file", err, zap.String("file", head))
			} else {
				defer file.Close()
				if err := p.processDoc(ctx, file, filepath.Base(head), dst); err != nil {
					p.fail("Unable to process file", err, zap.String("file", head))
				}
			}
			break
		}
		return fmt.Errorf("input was not recognized as paginatable document (%s)", head)

	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks the directory tree finding documents and archives.
// Traversal is depth first with siblings in natural order so page numbering
// and logs come out the same on every platform.
func (p *processor) processDir(ctx context.Context, dir, dst string) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			p.log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = walkNatural(dir, func(path string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			p.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := p.processArchive(ctx, path, "", filepath.Dir(strings.TrimPrefix(path, dir)), dst); err != nil {
				p.fail("Unable to process archive", err, zap.String("file", path))
			}
			return nil
		}

		doc, err := isDocFile(path)
		if err != nil {
			p.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !doc {
			p.log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			p.fail("Unable to process file", err, zap.String("file", path))
			return nil
		}
		defer file.Close()

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := p.processDoc(ctx, file, src, dst); err != nil {
			p.fail("Unable to process file", err, zap.String("file", path))
		}
		return nil
	})
	return err
}

// walkNatural is a recursive directory walk with entries ordered by
// natural.Less instead of the lexical order ReadDir returns.
func walkNatural(dir string, fn func(path string, d fs.DirEntry) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	slicesSortNatural(entries)

	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		if d.IsDir() {
			if err := walkNatural(path, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(path, d); err != nil {
			return err
		}
	}
	return nil
}

func slicesSortNatural(entries []fs.DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return natural.Less(entries[i].Name(), entries[j].Name())
	})
}

// processArchive walks all files inside an archive, finds documents under
// "pathIn" and processes them.
func (p *processor) processArchive(ctx context.Context, path, pathIn, pathOut, dst string) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			p.log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	err = archive.Walk(path, pathIn, func(archiveName string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := isDocInArchive(f)
		if err != nil {
			p.log.Warn("Skipping file in archive",
				zap.String("archive", archiveName), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if !doc {
			p.log.Debug("Skipping file, not recognized as document", zap.String("archive", archiveName), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			p.fail("Unable to process file in archive", err,
				zap.String("archive", archiveName), zap.String("file", f.FileHeader.Name))
			return nil
		}
		defer r.Close()

		cp := p.env.CodePage

		pathInArchive := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				p.log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		if err := p.processDoc(ctx, r, filepath.Join(pathOut, pathInArchive), dst); err != nil {
			p.fail("Unable to process file in archive", err,
				zap.String("archive", archiveName), zap.String("file", f.FileHeader.Name))
		}
		return nil
	})
	return err
}

// processDoc paginates a single document. "src" is the source path relative
// to the original input (just the base name for a directly specified file,
// the relative path for directory and archive members), "dst" is the
// destination directory.
func (p *processor) processDoc(ctx context.Context, r io.Reader, src string, dst string) (rerr error) {
	env := p.env

	var outputName string

	p.log.Info("Pagination starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: broken markup can surface as parser panics deep in the tree
		// walk, if multiple documents are being processed we do not want to stop.
		if r := recover(); r != nil {
			p.log.Error("Pagination ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("pagination panic: %v", r)
		} else {
			p.log.Info("Pagination completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	doc, pages, err := paginateDocument(ctx, r, src, p.log)
	if err != nil {
		return fmt.Errorf("unable to paginate document (%s): %w", src, err)
	}

	values := newValues(documentTitle(doc, src), src, pages)
	outputName = buildOutputPath(values, src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		p.log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := doc.WriteToFile(outputName); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	if p.bundle != nil {
		p.bundle.add(outputName)
	}
	return nil
}
