package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/repository"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
	"github.com/alaadin007/learnable-connect-hub-sub002/pkg/logger"
)

// maxExtractBytes caps how much text is pulled into the documents table for
// tutor retrieval.
const maxExtractBytes = 512 * 1024

var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
}

type DocumentService struct {
	docRepo *repository.DocumentRepository
	storage StorageProvider
}

func NewDocumentService(docRepo *repository.DocumentRepository, storage StorageProvider) *DocumentService {
	return &DocumentService{docRepo: docRepo, storage: storage}
}

// Upload stores the file and extracts text asynchronously when the format
// supports it.
func (s *DocumentService) Upload(ctx context.Context, schoolID, uploaderID uint, title string, fileHeader *multipart.FileHeader) (*model.Document, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	storageKey := fmt.Sprintf("documents/%d/%s%s", schoolID, uuid.New().String(), ext)

	contentType := fileHeader.Header.Get("Content-Type")
	if err := s.storage.Put(ctx, storageKey, file, fileHeader.Size, contentType); err != nil {
		return nil, err
	}

	if title == "" {
		title = fileHeader.Filename
	}

	doc := &model.Document{
		SchoolID:    schoolID,
		UploaderID:  uploaderID,
		Title:       title,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		StorageKey:  storageKey,
		Status:      model.DocumentPending,
	}
	if err := s.docRepo.Create(doc); err != nil {
		return nil, err
	}

	go s.extractText(doc.ID, storageKey, ext)

	return doc, nil
}

// extractText populates extracted_text for plain-text formats. Other formats
// are marked ready without text and stay searchable by title.
func (s *DocumentService) extractText(docID uint, storageKey, ext string) {
	ctx := context.Background()

	if !textExtensions[ext] {
		if err := s.docRepo.UpdateStatus(docID, model.DocumentReady, ""); err != nil {
			logger.Log.Error("Failed to mark document ready", zap.Uint("documentID", docID), zap.Error(err))
		}
		return
	}

	reader, err := s.storage.Get(ctx, storageKey)
	if err != nil {
		logger.Log.Error("Failed to read document for extraction", zap.Uint("documentID", docID), zap.Error(err))
		_ = s.docRepo.UpdateStatus(docID, model.DocumentFailed, "")
		return
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, maxExtractBytes))
	if err != nil {
		logger.Log.Error("Failed to read document content", zap.Uint("documentID", docID), zap.Error(err))
		_ = s.docRepo.UpdateStatus(docID, model.DocumentFailed, "")
		return
	}

	text := string(raw)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}

	if err := s.docRepo.UpdateStatus(docID, model.DocumentReady, text); err != nil {
		logger.Log.Error("Failed to store extracted text", zap.Uint("documentID", docID), zap.Error(err))
	}
}

func (s *DocumentService) List(schoolID uint, page, pageSize int) ([]model.Document, int64, error) {
	return s.docRepo.ListBySchool(schoolID, page, pageSize)
}

func (s *DocumentService) Get(docID, schoolID uint) (*model.Document, error) {
	doc, err := s.docRepo.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.SchoolID != schoolID {
		return nil, util.ErrDocumentNotFound
	}
	return doc, nil
}

// Download streams the stored file.
func (s *DocumentService) Download(ctx context.Context, docID, schoolID uint) (*model.Document, io.ReadCloser, error) {
	doc, err := s.Get(docID, schoolID)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.storage.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, reader, nil
}

func (s *DocumentService) Delete(ctx context.Context, docID, schoolID uint) error {
	doc, err := s.Get(docID, schoolID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		logger.Log.Warn("Failed to delete stored object", zap.String("key", doc.StorageKey), zap.Error(err))
	}
	return s.docRepo.Delete(docID)
}
