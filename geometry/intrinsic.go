package geometry

import (
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"go.uber.org/zap"

	// Register decoders for intrinsic size probing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FileIntrinsic returns an IntrinsicFunc that resolves image references
// relative to baseDir and probes their intrinsic dimensions: DecodeConfig for
// raster formats, the SVG viewbox for vector images. Failures are logged and
// reported as not-ok so the estimator falls back to its default image height.
func FileIntrinsic(baseDir string, log *zap.Logger) IntrinsicFunc {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("intrinsic")

	return func(src string) (float64, float64, bool) {
		if src == "" || strings.Contains(src, "://") {
			return 0, 0, false
		}
		if !safeImagePath(src) {
			log.Warn("Ignoring image reference outside image root", zap.String("src", src))
			return 0, 0, false
		}
		name := filepath.Join(baseDir, filepath.FromSlash(src))

		f, err := os.Open(name)
		if err != nil {
			log.Debug("Unable to open referenced image", zap.String("src", src), zap.Error(err))
			return 0, 0, false
		}
		defer f.Close()

		if strings.EqualFold(filepath.Ext(name), ".svg") {
			icon, err := oksvg.ReadIconStream(f)
			if err != nil || icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
				log.Debug("Unable to read SVG viewbox", zap.String("src", src), zap.Error(err))
				return 0, 0, false
			}
			return icon.ViewBox.W, icon.ViewBox.H, true
		}

		cfg, _, err := image.DecodeConfig(f)
		if err != nil {
			log.Debug("Unable to decode image header", zap.String("src", src), zap.Error(err))
			return 0, 0, false
		}
		return float64(cfg.Width), float64(cfg.Height), true
	}
}

// safeImagePath rejects references that could resolve outside the image
// root: absolute paths and those containing ".." components.
func safeImagePath(src string) bool {
	if path.IsAbs(src) || filepath.IsAbs(filepath.FromSlash(src)) || strings.HasPrefix(src, `\`) {
		return false
	}
	for _, part := range strings.FieldsFunc(src, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}
