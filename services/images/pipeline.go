// Package images implements the profile-image upload pipeline: validate the
// incoming file, replace whatever image the identity already owns, and record
// the stored filename. The stored filename is derived from the identity, not
// from the uploaded name, so each user owns at most one image file.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ChrisMayes22/upload-and-serve-image/apperrors"
	"github.com/ChrisMayes22/upload-and-serve-image/db"
	"github.com/ChrisMayes22/upload-and-serve-image/pkg/logger"
	"github.com/ChrisMayes22/upload-and-serve-image/pkg/metrics"
)

// AllowedExtensions is the fixed extension allow-list. Extensions are folded
// to lowercase before comparison, so `.JPG` uploads are accepted and stored
// as `.jpg`.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}

// legacyUpperJPG is probed by the stale-file sweep: older deployments stored
// uppercase `.JPG` files verbatim.
const legacyUpperJPG = ".JPG"

// Pipeline stores uploaded images in a content directory and records the
// resulting filename in the user store.
type Pipeline struct {
	dir   string
	store *db.Store
}

// New creates a pipeline writing into dir, creating it if needed.
func New(dir string, store *db.Store) (*Pipeline, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Pipeline{dir: dir, store: store}, nil
}

// Dir returns the content directory.
func (p *Pipeline) Dir() string {
	return p.dir
}

// Store runs the full upload pipeline for one file and returns the stored
// filename. On a validation failure nothing is written and nothing is
// deleted; the user's prior image is untouched.
func (p *Pipeline) Store(username, originalName string, src io.Reader) (string, error) {
	if !usernameSafe(username) {
		metrics.UploadRejectsTotal.WithLabelValues("identity").Inc()
		return "", apperrors.NewIllegalAccessAttempt()
	}

	ext := strings.ToLower(extensionOf(originalName))
	if !extensionAllowed(ext) {
		metrics.UploadRejectsTotal.WithLabelValues("extension").Inc()
		return "", apperrors.NewIllegalFileType(AllowedExtensions)
	}

	content, err := io.ReadAll(src)
	if err != nil {
		return "", apperrors.NewStorageWriteFailure("read upload", err)
	}

	// The file must decode as the format its extension claims.
	_, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil || format != formatForExtension(ext) {
		metrics.UploadRejectsTotal.WithLabelValues("content").Inc()
		return "", apperrors.NewIllegalFileType(AllowedExtensions)
	}

	filename := username + ext
	if err := p.writeAtomic(filename, content); err != nil {
		return "", err
	}

	p.sweepStale(username, filename)

	if err := p.store.UpsertImageName(username, filename); err != nil {
		return "", err
	}

	metrics.UploadsTotal.Inc()
	return filename, nil
}

// writeAtomic writes content to a temp file in the content directory and
// renames it over the destination, so a prior image is replaced in one step
// and an aborted request never leaves a half-written image under the final
// name.
func (p *Pipeline) writeAtomic(filename string, content []byte) error {
	tmp, err := os.CreateTemp(p.dir, ".upload-*")
	if err != nil {
		return apperrors.NewStorageWriteFailure("create temp file", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.NewStorageWriteFailure("write image", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewStorageWriteFailure("close image", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(p.dir, filename)); err != nil {
		os.Remove(tmp.Name())
		return apperrors.NewStorageWriteFailure("rename image", err)
	}

	return nil
}

// sweepStale removes every other candidate image for the identity. Changing
// the file type (.png -> .jpg) would otherwise orphan the old file, since the
// new name no longer overwrites it. Runs exactly once per successful upload,
// after the new file is in place. Candidates that are case-fold-equal to the
// just-written name are skipped: on a case-insensitive filesystem they are
// the new file itself.
func (p *Pipeline) sweepStale(username, keep string) {
	candidates := make([]string, 0, len(AllowedExtensions)+1)
	candidates = append(candidates, AllowedExtensions...)
	candidates = append(candidates, legacyUpperJPG)

	for _, ext := range candidates {
		name := username + ext
		if strings.EqualFold(name, keep) {
			continue
		}
		err := os.Remove(filepath.Join(p.dir, name))
		switch {
		case err == nil:
			metrics.StaleFilesSweptTotal.Inc()
		case !errors.Is(err, os.ErrNotExist):
			// A surviving stale file breaks the one-image-per-user
			// expectation; leave a trace.
			logger.Warn("failed to remove stale image %s: %v", name, err)
		}
	}
}

// usernameSafe reports whether username can form a filename that stays
// inside the content directory. The stored name is `username + ext`, so a
// username carrying a path separator or dot-segment would write (and sweep)
// outside the directory.
func usernameSafe(username string) bool {
	if username == "" || username == "." || username == ".." {
		return false
	}
	return !strings.ContainsAny(username, `/\`)
}

// extensionOf returns the substring from the last '.' to the end. A name
// with no dot is returned whole; such a value can never match the allow-list,
// so dotless uploads are rejected.
func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name
	}
	return name[idx:]
}

func extensionAllowed(ext string) bool {
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// formatForExtension maps an allow-listed extension to the format name
// reported by image.DecodeConfig.
func formatForExtension(ext string) string {
	switch ext {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".tif", ".tiff":
		return "tiff"
	case ".bmp":
		return "bmp"
	default:
		return ""
	}
}
