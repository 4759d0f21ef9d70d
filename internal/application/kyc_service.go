package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

var (
	ErrStorageNotConfigured    = errors.New("gcs not configured")
	ErrUnsupportedDocumentType = helpers.ErrUnsupportedDocumentType
)

// KYCService manages the identity record of the authenticated user.
type KYCService struct {
	Repo      repo.KYCRepository
	GCS       *storage.Client
	GCSBucket string
	Notifier  *Notifier
	Logger    *logrus.Logger
	Now       func() time.Time
}

func NewKYCService(r repo.KYCRepository, gcs *storage.Client, gcsBucket string, notifier *Notifier, logger *logrus.Logger) *KYCService {
	return &KYCService{
		Repo:      r,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Notifier:  notifier,
		Logger:    logger,
		Now:       time.Now,
	}
}

type CreateKYCInput struct {
	LegalName      string
	DocumentType   string
	DocumentNumber string
	DOB            time.Time
	Address        string
	Country        string
}

// UpdateKYCInput applies only the non-nil fields. Status is not user-editable;
// reviewers go through SetStatus.
type UpdateKYCInput struct {
	LegalName      *string
	DocumentType   *string
	DocumentNumber *string
	DOB            *time.Time
	Address        *string
	Country        *string
}

func (s *KYCService) Get(ctx context.Context, userID uuid.UUID) (*entity.KYC, error) {
	k, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, ErrKYCNotFound
	}
	return k, nil
}

func (s *KYCService) Create(ctx context.Context, u *entity.User, in CreateKYCInput) (*entity.KYC, error) {
	exists, err := s.Repo.ExistsByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrKYCAlreadyExists
	}
	now := s.Now().UTC()
	k := &entity.KYC{
		ID:             uuid.New(),
		UserID:         u.ID,
		LegalName:      strings.TrimSpace(in.LegalName),
		DocumentType:   strings.TrimSpace(in.DocumentType),
		DocumentNumber: strings.TrimSpace(in.DocumentNumber),
		DOB:            in.DOB,
		Address:        strings.TrimSpace(in.Address),
		Country:        strings.ToUpper(strings.TrimSpace(in.Country)),
		Status:         entity.KYCPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Add(ctx, k); err != nil {
		if errors.Is(err, repo.ErrDuplicateKYC) {
			return nil, ErrKYCAlreadyExists
		}
		return nil, err
	}
	s.Notifier.KYCSubmitted(ctx, u, k)
	return k, nil
}

func (s *KYCService) Update(ctx context.Context, userID uuid.UUID, in UpdateKYCInput) (*entity.KYC, error) {
	k, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.LegalName != nil {
		k.LegalName = strings.TrimSpace(*in.LegalName)
	}
	if in.DocumentType != nil {
		k.DocumentType = strings.TrimSpace(*in.DocumentType)
	}
	if in.DocumentNumber != nil {
		k.DocumentNumber = strings.TrimSpace(*in.DocumentNumber)
	}
	if in.DOB != nil {
		k.DOB = *in.DOB
	}
	if in.Address != nil {
		k.Address = strings.TrimSpace(*in.Address)
	}
	if in.Country != nil {
		k.Country = strings.ToUpper(strings.TrimSpace(*in.Country))
	}
	k.UpdatedAt = s.Now().UTC()
	if err := s.Repo.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

// SetStatus records a review decision.
func (s *KYCService) SetStatus(ctx context.Context, userID uuid.UUID, status entity.KYCStatus) (*entity.KYC, error) {
	if !status.Valid() {
		return nil, ErrInvalidKYCStatus
	}
	k, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	k.Status = status
	k.UpdatedAt = s.Now().UTC()
	if err := s.Repo.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

// Delete is idempotent: deleting a missing record succeeds.
func (s *KYCService) Delete(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.Repo.ExistsByUserID(ctx, userID)
	if err != nil || !exists {
		return err
	}
	return s.Repo.DeleteByUserID(ctx, userID)
}

// UploadDocument stores the identity document scan in GCS and links it to the record.
// Only JPEG, PNG and PDF scans are accepted.
func (s *KYCService) UploadDocument(ctx context.Context, userID uuid.UUID, r io.Reader, filename, contentType string) (*entity.KYC, error) {
	k, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, ErrStorageNotConfigured
	}
	objectPath, err := helpers.DocumentObjectPath(userID.String(), contentType)
	if err != nil {
		return nil, err
	}
	uri, err := helpers.UploadDocument(ctx, s.GCS, s.GCSBucket, objectPath, contentType, map[string]string{
		"user_id":           userID.String(),
		"kyc_id":            k.ID.String(),
		"original_filename": filename,
	}, r)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID.String()).Error("kyc document upload failed")
		}
		return nil, err
	}
	k.DocumentURL = uri
	k.UpdatedAt = s.Now().UTC()
	if err := s.Repo.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}
