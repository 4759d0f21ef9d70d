package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/ornakala-backend/config"
	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	"github.com/oksasatya/ornakala-backend/pkg/mailer"
	tpl "github.com/oksasatya/ornakala-backend/pkg/mailer/templates"
)

func newKYCInput() CreateKYCInput {
	return CreateKYCInput{
		LegalName:      " Ana Maria ",
		DocumentType:   "passport",
		DocumentNumber: "X1234567",
		DOB:            time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		Address:        "Jl. Sudirman 1",
		Country:        "id",
	}
}

func TestKYCService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	pub := &recordingPublisher{}
	svc := NewKYCService(f.kyc, nil, "", NewNotifier(pub, &config.Config{MailSendEnabled: true}, nil), nil)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	_, err := svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, ErrKYCNotFound)

	k, err := svc.Create(ctx, u, newKYCInput())
	require.NoError(t, err)
	assert.Equal(t, entity.KYCPending, k.Status)
	assert.Equal(t, "Ana Maria", k.LegalName)
	assert.Equal(t, "ID", k.Country)

	require.Len(t, pub.jobs, 1)
	assert.Equal(t, tpl.KYCSubmitted, pub.jobs[0].(mailer.EmailJob).Template)

	_, err = svc.Create(ctx, u, newKYCInput())
	assert.ErrorIs(t, err, ErrKYCAlreadyExists)

	addr := "Jl. Thamrin 2"
	updated, err := svc.Update(ctx, u.ID, UpdateKYCInput{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, addr, updated.Address)
	assert.Equal(t, "X1234567", updated.DocumentNumber)
	assert.Equal(t, entity.KYCPending, updated.Status)

	approved, err := svc.SetStatus(ctx, u.ID, entity.KYCApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.KYCApproved, approved.Status)

	_, err = svc.SetStatus(ctx, u.ID, entity.KYCStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidKYCStatus)

	require.NoError(t, svc.Delete(ctx, u.ID))
	require.NoError(t, svc.Delete(ctx, u.ID))
	_, err = svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, ErrKYCNotFound)
}

func TestKYCService_UpdateMissing(t *testing.T) {
	f := newFixture(t)
	svc := NewKYCService(f.kyc, nil, "", nil, nil)
	name := "x"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateKYCInput{LegalName: &name})
	assert.ErrorIs(t, err, ErrKYCNotFound)
}

func TestKYCService_UploadWithoutStorage(t *testing.T) {
	f := newFixture(t)
	svc := NewKYCService(f.kyc, nil, "", nil, nil)
	u := f.register(t, "a@b.com", "Passw0rd")
	ctx := context.Background()

	_, err := svc.UploadDocument(ctx, u.ID, strings.NewReader("scan"), "id.png", "image/png")
	assert.ErrorIs(t, err, ErrKYCNotFound)

	_, err = svc.Create(ctx, u, newKYCInput())
	require.NoError(t, err)
	_, err = svc.UploadDocument(ctx, u.ID, strings.NewReader("scan"), "id.png", "image/png")
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}
