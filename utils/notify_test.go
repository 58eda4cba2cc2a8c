package utils

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"warrantyhub/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type sentMail struct {
	To, Subject, Body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

func withMailer(t *testing.T, m Mailer) {
	t.Helper()
	prev := Email
	Email = m
	t.Cleanup(func() { Email = prev })
}

func TestStatusMessagesFallBackForUnknownStatus(t *testing.T) {
	assert.Contains(t, ClaimStatusMessage("approved"), "approved")
	assert.Contains(t, ClaimStatusMessage("Under_Review"), "under review")
	assert.Equal(t, claimStatusFallback, ClaimStatusMessage("escalated"))
	assert.Equal(t, warrantyStatusFallback, WarrantyStatusMessage("transferred"))
	assert.Contains(t, WarrantyStatusMessage(models.WarrantyStatusClaimed), "claimed")
}

func TestHumanStatus(t *testing.T) {
	assert.Equal(t, "Under Review", humanStatus("under_review"))
	assert.Equal(t, "Approved", humanStatus("approved"))
	assert.Equal(t, "Updated", humanStatus(""))
}

func TestSendClaimStatusChangedIncludesNotes(t *testing.T) {
	mailer := &recordingMailer{}
	withMailer(t, mailer)

	notes := "replaced <unit> shipped"
	claim := models.Claim{
		ExternalID: "CLM-ABC",
		AdminNotes: &notes,
		Status:     models.ClaimStatus{Name: models.ClaimStatusCompleted},
		Warranty: &models.Warranty{
			ExternalID:   "IKG-000000000001",
			CustomerName: "Asha",
			Email:        "asha@example.com",
			PurchaseDate: datatypes.Date(time.Now()),
		},
	}

	require.NoError(t, SendClaimStatusChanged(context.Background(), claim))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "asha@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "Completed")
	assert.Contains(t, mailer.sent[0].Body, "replaced &lt;unit&gt; shipped")
	assert.Contains(t, mailer.sent[0].Body, "claim_id=CLM-ABC")
}

func TestSendClaimStatusChangedNeedsWarranty(t *testing.T) {
	withMailer(t, &recordingMailer{})
	assert.Error(t, SendClaimStatusChanged(context.Background(), models.Claim{ExternalID: "CLM-X"}))
}

func TestNotifyBestEffortSwallowsAndCounts(t *testing.T) {
	before := testutil.ToFloat64(NotificationFailures.WithLabelValues("test_kind"))

	assert.NotPanics(t, func() {
		NotifyBestEffort("test_kind", logrus.Fields{"x": 1}, func(context.Context) error {
			return errors.New("provider down")
		})
	})

	after := testutil.ToFloat64(NotificationFailures.WithLabelValues("test_kind"))
	assert.Equal(t, before+1, after)
}
