package upload

import (
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func header(filename, contentType string, size int64) *multipart.FileHeader {
	hdr := textproto.MIMEHeader{}
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: filename,
		Header:   hdr,
		Size:     size,
	}
}

func TestSaveImageRejectsOversizedFile(t *testing.T) {
	s := NewSaver(t.TempDir())

	_, err := s.SaveImage(testContext(), header("big.png", "image/png", MaxFileSize+1), "profile")
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	// Exactly at the limit is still fine as far as validation goes; the
	// save then fails because there is no real file behind the header.
	_, err = s.SaveImage(testContext(), header("edge.png", "image/png", MaxFileSize), "profile")
	if errors.Is(err, ErrTooLarge) || errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("limit-sized file must pass validation, got %v", err)
	}
}

func TestSaveImageRejectsUnsupportedExtensions(t *testing.T) {
	s := NewSaver(t.TempDir())

	for _, name := range []string{"anim.gif", "doc.pdf", "noext", "shell.png.sh"} {
		_, err := s.SaveImage(testContext(), header(name, "", 100), "gallery")
		if !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("SaveImage(%q) = %v, want ErrUnsupportedType", name, err)
		}
	}
}

func TestSaveImageRejectsMismatchedContentType(t *testing.T) {
	s := NewSaver(t.TempDir())

	_, err := s.SaveImage(testContext(), header("photo.png", "image/jpeg", 100), "gallery")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for mismatched content type, got %v", err)
	}

	// jpg and jpeg share a MIME type.
	_, err = s.SaveImage(testContext(), header("photo.jpg", "image/jpeg", 100), "gallery")
	if errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("jpg with image/jpeg must pass validation, got %v", err)
	}
}

func TestSaveProofAcceptsPDF(t *testing.T) {
	s := NewSaver(t.TempDir())

	// PDF is only valid for proofs, never for images.
	if _, err := s.SaveImage(testContext(), header("receipt.pdf", "application/pdf", 100), "proofs"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("images must reject pdf, got %v", err)
	}
	if _, err := s.SaveProof(testContext(), header("receipt.pdf", "application/pdf", 100), "proofs"); errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("proofs must accept pdf, got %v", err)
	}
}
