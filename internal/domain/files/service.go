package files

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

// PatientChecker is the narrow view of the patients module the file
// subsystem needs: whether a referenced patient exists at all.
type PatientChecker interface {
	Exists(ctx context.Context, patientID int64) (bool, error)
}

// Service owns the consistency between blobs on disk and metadata rows.
// Neither the DiskStore nor the Repository enforces it alone.
type Service struct {
	repo         Repository
	store        *DiskStore
	patients     PatientChecker
	allowedTypes map[string]bool
	maxSize      int64
}

func NewService(repo Repository, store *DiskStore, patients PatientChecker, allowedTypes []string, maxSize int64) *Service {
	types := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		types[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &Service{
		repo:         repo,
		store:        store,
		patients:     patients,
		allowedTypes: types,
		maxSize:      maxSize,
	}
}

// Upload validates the incoming file, writes the blob, then creates the
// metadata row. Validation happens before any write so a rejected request
// leaves no partial state.
func (s *Service) Upload(ctx context.Context, patientID int64, fileType string, fileHeader *multipart.FileHeader) (*File, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}
	fileType = strings.ToLower(strings.TrimSpace(fileType))
	if !s.allowedTypes[fileType] {
		return nil, ErrInvalidFileType
	}

	if s.patients != nil {
		exists, err := s.patients.Exists(ctx, patientID)
		if err != nil {
			return nil, fmt.Errorf("failed to check patient: %w", err)
		}
		if !exists {
			return nil, ErrPatientNotFound
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	relPath, err := s.store.Save(src, fileHeader.Filename)
	if err != nil {
		return nil, err
	}

	file := &File{
		PatientID:  patientID,
		FilePath:   relPath,
		FileType:   fileType,
		UploadedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, file); err != nil {
		// Blob is on disk but has no record. Reclaim it; if even that
		// fails, leave a trace for manual reconciliation.
		if removed, rmErr := s.store.Remove(relPath); rmErr != nil || !removed {
			log.Printf("orphaned blob after metadata write failure path=%s patient_id=%d remove_err=%v", relPath, patientID, rmErr)
		}
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return file, nil
}

// ListByPatient returns the patient's file records in upload order.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*File, error) {
	return s.repo.ListByPatientID(ctx, patientID)
}

// Resolve maps a file id to its record and absolute blob path, verifying
// the blob still exists. A record whose blob is gone is reported as
// ErrFileMissing, distinct from an id that never existed.
func (s *Service) Resolve(ctx context.Context, fileID int64) (*File, string, error) {
	file, err := s.repo.GetByID(ctx, fileID)
	if err != nil {
		return nil, "", err
	}

	if !s.store.Exists(file.FilePath) {
		log.Printf("metadata without blob file_id=%d path=%s", file.ID, file.FilePath)
		return nil, "", ErrFileMissing
	}

	return file, s.store.Abs(file.FilePath), nil
}

// Delete removes the blob first, then the metadata row. If the row delete
// fails the leftover is a record pointing at a missing blob, which Resolve
// already detects and reports; the reverse order would leave an orphaned
// blob nothing can find.
func (s *Service) Delete(ctx context.Context, fileID int64) error {
	file, err := s.repo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}

	removed, err := s.store.Remove(file.FilePath)
	if err != nil {
		return err
	}
	if !removed {
		// Goal state "blob absent" already holds.
		log.Printf("blob already absent on delete file_id=%d path=%s", file.ID, file.FilePath)
	}

	if err := s.repo.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

// ExportArchive streams a zip of the patient's existing blobs to w, one
// entry at a time, never materializing the archive. Entries keep their
// 1-based listing position as a name prefix; a missing blob is skipped
// without renumbering the rest.
func (s *Service) ExportArchive(ctx context.Context, patientID int64, w io.Writer) error {
	list, err := s.repo.ListByPatientID(ctx, patientID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return ErrNoFiles
	}

	zw := zip.NewWriter(w)
	for i, file := range list {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !s.store.Exists(file.FilePath) {
			log.Printf("skipping missing blob in archive file_id=%d path=%s", file.ID, file.FilePath)
			continue
		}

		entry, err := zw.Create(fmt.Sprintf("%d_%s", i+1, filepath.Base(file.FilePath)))
		if err != nil {
			return fmt.Errorf("failed to create archive entry: %w", err)
		}

		src, err := s.store.Open(file.FilePath)
		if err != nil {
			return fmt.Errorf("failed to open blob for archive: %w", err)
		}
		_, err = io.Copy(entry, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("failed to write archive entry: %w", err)
		}
	}

	return zw.Close()
}
