package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"propel_backend/internal/email"
)

// fakeProvider записывает вызовы вместо отправки
type fakeProvider struct {
	verifications []string
	resets        []string
	reports       []string
	lastPDF       []byte
}

func (f *fakeProvider) Send(e *email.Email) error { return nil }

func (f *fakeProvider) SendVerification(to, token string) error {
	f.verifications = append(f.verifications, to+":"+token)
	return nil
}

func (f *fakeProvider) SendPasswordReset(to, token string) error {
	f.resets = append(f.resets, to+":"+token)
	return nil
}

func (f *fakeProvider) SendReport(to, propertyAddress string, pdf []byte) error {
	f.reports = append(f.reports, to+":"+propertyAddress)
	f.lastPDF = pdf
	return nil
}

func TestDeliverEmailJob_Verification(t *testing.T) {
	provider := &fakeProvider{}

	err := DeliverEmailJob(provider, EmailJob{
		Kind:  EmailKindVerification,
		To:    "user@test.com",
		Token: "tok-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"user@test.com:tok-1"}, provider.verifications)
}

func TestDeliverEmailJob_PasswordReset(t *testing.T) {
	provider := &fakeProvider{}

	err := DeliverEmailJob(provider, EmailJob{
		Kind:  EmailKindPasswordReset,
		To:    "user@test.com",
		Token: "tok-2",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"user@test.com:tok-2"}, provider.resets)
}

func TestDeliverEmailJob_Report(t *testing.T) {
	provider := &fakeProvider{}

	err := DeliverEmailJob(provider, EmailJob{
		Kind:            EmailKindReport,
		To:              "landlord@test.com",
		PropertyAddress: "12 Baker Street",
		PDF:             []byte("%PDF-1.4"),
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"landlord@test.com:12 Baker Street"}, provider.reports)
	assert.Equal(t, []byte("%PDF-1.4"), provider.lastPDF)
}

func TestDeliverEmailJob_UnknownKindIsDropped(t *testing.T) {
	provider := &fakeProvider{}

	// Неизвестный kind не должен крутиться в requeue-цикле
	err := DeliverEmailJob(provider, EmailJob{Kind: "newsletter", To: "user@test.com"})
	assert.NoError(t, err)
	assert.Empty(t, provider.verifications)
	assert.Empty(t, provider.resets)
	assert.Empty(t, provider.reports)
}
