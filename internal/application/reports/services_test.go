package reports_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/scamshield/internal/application"
	appreports "github.com/bryanwahyu/scamshield/internal/application/reports"
	domain "github.com/bryanwahyu/scamshield/internal/domain/reports"
	"github.com/bryanwahyu/scamshield/internal/domain/scans"
	"github.com/bryanwahyu/scamshield/internal/infra/db/memory"
)

type fakeStore struct {
	key         string
	body        []byte
	contentType string
	err         error
	deleted     []string
	deleteErr   error
}

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.key, f.body, f.contentType = key, b, contentType
	return "http://minio.local/evidence/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

type failingRepo struct{ domain.Repository }

func (failingRepo) Save(context.Context, *domain.Report) error { return errors.New("db down") }

func newService(store domain.EvidenceStore) *appreports.Service {
	return &appreports.Service{
		Repo:     memory.NewReportRepository(),
		Evidence: store,
		Clock:    application.FixedClock{T: time.Date(2026, 3, 1, 10, 20, 0, 0, time.UTC)},
	}
}

func validCommand() appreports.SubmitCommand {
	return appreports.SubmitCommand{
		UserID:      "priya@example.com",
		ScamType:    "Phishing (Bank / UPI / KYC)",
		Channel:     "sms",
		Description: "Message asked me to update KYC through a link",
		Contact:     " +91 90000 00000 ",
	}
}

func TestSubmit_Validation(t *testing.T) {
	svc := newService(nil)
	tests := []struct {
		name   string
		mutate func(*appreports.SubmitCommand)
		want   error
	}{
		{"missing scam type", func(c *appreports.SubmitCommand) { c.ScamType = "" }, domain.ErrScamTypeRequired},
		{"unknown scam type", func(c *appreports.SubmitCommand) { c.ScamType = "Romance" }, domain.ErrInvalidScamType},
		{"unknown channel", func(c *appreports.SubmitCommand) { c.Channel = "pager" }, scans.ErrInvalidType},
		{"short description", func(c *appreports.SubmitCommand) { c.Description = "scam" }, domain.ErrDescriptionTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)
			_, err := svc.Submit(context.Background(), cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmit_WithoutEvidence(t *testing.T) {
	svc := newService(nil)

	rep, err := svc.Submit(context.Background(), validCommand())
	require.NoError(t, err)

	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, scans.TypeSMS, rep.Channel)
	assert.Equal(t, "+91 90000 00000", rep.Contact)
	assert.Empty(t, rep.EvidenceURL)

	list, err := svc.List(context.Background(), "priya@example.com", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rep.ID, list[0].ID)
}

func TestSubmit_StoresEvidence(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store)
	cmd := validCommand()
	cmd.Evidence = &appreports.Evidence{
		Filename:    "../../screen shot.png",
		ContentType: "image/png",
		Size:        4,
		Body:        bytes.NewReader([]byte("\x89PNG")),
	}

	rep, err := svc.Submit(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, "reports/priya@example.com/"+string(rep.ID)+"/screen_shot.png", store.key)
	assert.Equal(t, "image/png", store.contentType)
	assert.Equal(t, []byte("\x89PNG"), store.body)
	assert.Equal(t, "http://minio.local/evidence/"+store.key, rep.EvidenceURL)
}

func TestSubmit_EvidenceRules(t *testing.T) {
	tests := []struct {
		name  string
		store domain.EvidenceStore
		ev    appreports.Evidence
		want  error
	}{
		{"no store", nil, appreports.Evidence{ContentType: "image/png", Size: 1}, domain.ErrEvidenceUnavailable},
		{"too large", &fakeStore{}, appreports.Evidence{ContentType: "image/png", Size: appreports.MaxEvidenceBytes + 1}, domain.ErrEvidenceTooLarge},
		{"bad type", &fakeStore{}, appreports.Evidence{ContentType: "application/x-msdownload", Size: 1}, domain.ErrEvidenceType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(tt.store)
			cmd := validCommand()
			ev := tt.ev
			ev.Body = bytes.NewReader([]byte("x"))
			cmd.Evidence = &ev
			_, err := svc.Submit(context.Background(), cmd)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmit_UploadFailureIsNotSaved(t *testing.T) {
	svc := newService(&fakeStore{err: errors.New("bucket missing")})
	cmd := validCommand()
	cmd.Evidence = &appreports.Evidence{Filename: "a.pdf", ContentType: "application/pdf", Size: 1, Body: bytes.NewReader([]byte("x"))}

	_, err := svc.Submit(context.Background(), cmd)
	require.Error(t, err)

	list, err := svc.List(context.Background(), "priya@example.com", 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSubmit_SaveFailureRemovesEvidence(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store)
	svc.Repo = failingRepo{}
	cmd := validCommand()
	cmd.Evidence = &appreports.Evidence{Filename: "chat.png", ContentType: "image/png", Size: 1, Body: bytes.NewReader([]byte("x"))}

	_, err := svc.Submit(context.Background(), cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")

	require.NotEmpty(t, store.key)
	assert.Equal(t, []string{store.key}, store.deleted)
}

func TestSubmit_SaveFailureReportsCleanupError(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("bucket offline")}
	svc := newService(store)
	svc.Repo = failingRepo{}
	cmd := validCommand()
	cmd.Evidence = &appreports.Evidence{Filename: "chat.png", ContentType: "image/png", Size: 1, Body: bytes.NewReader([]byte("x"))}

	_, err := svc.Submit(context.Background(), cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.Contains(t, err.Error(), "bucket offline")
}

func TestSubmit_SaveFailureWithoutEvidence(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store)
	svc.Repo = failingRepo{}

	_, err := svc.Submit(context.Background(), validCommand())
	require.Error(t, err)
	assert.Empty(t, store.deleted)
}
