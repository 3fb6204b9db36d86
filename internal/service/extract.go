package service

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/anusasana/portal/internal/dto"
	"github.com/anusasana/portal/pkg/apperror"
	"github.com/anusasana/portal/pkg/storage"
)

// TextExtractor converts an uploaded file into plain text given its declared
// media type. The production implementation would call an OCR/vision backend
// and a document converter; StubExtractor stands in for both.
type TextExtractor interface {
	Extract(ctx context.Context, r io.Reader, mediaType, filename string) (string, error)
}

// StubExtractor is an explicitly labeled fake. It reads the upload and
// returns fixed simulated text per format; only text/plain content passes
// through unchanged. Do not mistake its output for real OCR.
type StubExtractor struct{}

func (StubExtractor) Extract(_ context.Context, r io.Reader, mediaType, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return "This is a simulated OCR extraction of the handwritten text.", nil
	case mediaType == "application/pdf":
		return "This is a simulated extraction of the PDF text layer.", nil
	case mediaType == "application/vnd.oasis.opendocument.text":
		return "This is a simulated extraction of the converted ODT document.", nil
	case mediaType == "text/plain" || strings.HasPrefix(mediaType, "text/plain;"):
		return string(data), nil
	default:
		return "Unsupported file format.", nil
	}
}

type ExtractService interface {
	// ExtractFromUpload extracts text from a multipart upload and, when
	// upload storage is configured, keeps a copy of the original file.
	ExtractFromUpload(ctx context.Context, fh *multipart.FileHeader) (*dto.ExtractResult, error)
}

type extractService struct {
	extractor    TextExtractor
	fileStorage  storage.FileStorage
	uploadFolder string
}

// NewExtractService wires the extraction collaborator. fileStorage may be nil;
// extraction then runs without retaining the original upload.
func NewExtractService(extractor TextExtractor, fileStorage storage.FileStorage, uploadFolder string) ExtractService {
	return &extractService{
		extractor:    extractor,
		fileStorage:  fileStorage,
		uploadFolder: uploadFolder,
	}
}

func (s *extractService) ExtractFromUpload(ctx context.Context, fh *multipart.FileHeader) (*dto.ExtractResult, error) {
	mediaType := fh.Header.Get("Content-Type")

	var fileURL *string
	if s.fileStorage != nil {
		f, err := fh.Open()
		if err != nil {
			return nil, apperror.New(http.StatusInternalServerError, "failed to read uploaded file", apperror.ErrUpstream)
		}
		url, err := s.fileStorage.UploadFile(ctx, f, s.uploadFolder, fh.Filename)
		f.Close()
		if err != nil {
			// Extraction still proceeds; the retained copy is best-effort.
			log.Printf("failed to store uploaded file %q: %v", fh.Filename, err)
		} else {
			fileURL = &url
		}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "failed to read uploaded file", apperror.ErrUpstream)
	}
	defer f.Close()

	text, err := s.extractor.Extract(ctx, f, mediaType, fh.Filename)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "text extraction failed", apperror.ErrUpstream)
	}

	return &dto.ExtractResult{
		Filename: fh.Filename,
		Text:     text,
		FileURL:  fileURL,
	}, nil
}
