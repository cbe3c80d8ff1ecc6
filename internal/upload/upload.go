package upload

import (
	"errors"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxFileSize bounds every upload (profile images, gallery images, payment
// proofs) to 5 MB.
const MaxFileSize = 5 << 20

var (
	ErrTooLarge        = errors.New("file exceeds the 5 MB limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

var proofTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// Saver writes uploaded files under a base directory that the server also
// exposes as /uploads.
type Saver struct {
	baseDir string
}

func NewSaver(baseDir string) *Saver {
	return &Saver{baseDir: baseDir}
}

// SaveImage stores a JPEG/PNG upload under baseDir/<subdir> and returns the
// public /uploads path.
func (s *Saver) SaveImage(c *gin.Context, fh *multipart.FileHeader, subdir string) (string, error) {
	return s.save(c, fh, subdir, imageTypes)
}

// SaveProof additionally accepts PDF, for proof-of-payment documents.
func (s *Saver) SaveProof(c *gin.Context, fh *multipart.FileHeader, subdir string) (string, error) {
	return s.save(c, fh, subdir, proofTypes)
}

func (s *Saver) save(c *gin.Context, fh *multipart.FileHeader, subdir string, allowed map[string]string) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	want, ok := allowed[ext]
	if !ok {
		return "", ErrUnsupportedType
	}

	// The declared content type must agree with the extension; jpg and jpeg
	// share a MIME type.
	if got := fh.Header.Get("Content-Type"); got != "" && got != want {
		return "", ErrUnsupportedType
	}

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(fh, filepath.Join(dir, name)); err != nil {
		return "", err
	}

	return "/" + path.Join("uploads", subdir, name), nil
}
