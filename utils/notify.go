package utils

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"warrantyhub/config"
	"warrantyhub/models"

	"github.com/sirupsen/logrus"
)

// Notification kinds, used as metric labels and log fields.
const (
	NotifyWarrantyRegistered = "warranty_registered"
	NotifyWarrantyStatus     = "warranty_status"
	NotifyClaimCreated       = "claim_created"
	NotifyClaimStatus        = "claim_status"
	NotifyAdminDigest        = "admin_digest"
)

var warrantyStatusMessages = map[string]string{
	models.WarrantyStatusRegistered: "Your warranty is registered and active. Keep your warranty ID safe, you will need it to file a claim.",
	models.WarrantyStatusClaimed:    "A claim against your warranty has been honoured. Your warranty is now marked as claimed.",
	models.WarrantyStatusExpired:    "Your warranty period has ended. Thank you for choosing us.",
	models.WarrantyStatusVoid:       "Your warranty has been voided. Please contact support if you believe this is a mistake.",
}

const warrantyStatusFallback = "The status of your warranty has been updated."

var claimStatusMessages = map[string]string{
	models.ClaimStatusPending:     "We have received your claim and it is waiting to be picked up by our team.",
	models.ClaimStatusUnderReview: "Your claim is under review. We will get back to you shortly.",
	models.ClaimStatusApproved:    "Good news! Your claim has been approved. We will arrange the repair or replacement.",
	models.ClaimStatusRejected:    "Unfortunately your claim could not be approved.",
	models.ClaimStatusShipped:     "Your replacement or repaired product has been shipped.",
	models.ClaimStatusCompleted:   "Your claim has been completed and closed.",
}

const claimStatusFallback = "The status of your claim has been updated."

// WarrantyStatusMessage returns the customer-facing text for a warranty status.
func WarrantyStatusMessage(status string) string {
	if msg, ok := warrantyStatusMessages[models.NormalizeStatusName(status)]; ok {
		return msg
	}
	return warrantyStatusFallback
}

// ClaimStatusMessage returns the customer-facing text for a claim status.
func ClaimStatusMessage(status string) string {
	if msg, ok := claimStatusMessages[models.NormalizeStatusName(status)]; ok {
		return msg
	}
	return claimStatusFallback
}

// NotifyBestEffort runs send and swallows its error after logging and counting it.
func NotifyBestEffort(kind string, fields logrus.Fields, send func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := send(ctx); err != nil {
		NotificationFailures.WithLabelValues(kind).Inc()
		logrus.WithError(err).WithFields(fields).WithField("kind", kind).Warn("Notification failed")
	}
}

func sendSMSIfEnabled(ctx context.Context, mobile, message string) error {
	if SMS == nil || mobile == "" {
		return nil
	}
	return SMS.SendSMS(ctx, mobile, message)
}

func humanStatus(name string) string {
	if name == "" {
		return "Updated"
	}
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToUpper(name[:1]) + name[1:]
}

// SendWarrantyRegistered confirms a new registration to the customer.
func SendWarrantyRegistered(ctx context.Context, w models.Warranty) error {
	subject := "Warranty Registered: " + w.ExternalID
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for registering your product warranty.</p>
		<div class="info-box">
			<strong>Warranty ID:</strong> %s<br>
			<strong>Purchase date:</strong> %s<br>
			<strong>Purchase price:</strong> %.2f
		</div>
		<p>%s</p>
	`, html.EscapeString(w.CustomerName), w.ExternalID, time.Time(w.PurchaseDate).Format("02 Jan 2006"),
		w.PurchasePrice, WarrantyStatusMessage(models.WarrantyStatusRegistered))

	emailErr := Email.Send(ctx, w.Email, subject, emailTemplate("Warranty Registration Successful", body))
	smsErr := sendSMSIfEnabled(ctx, w.Mobile,
		fmt.Sprintf("Your warranty is registered. Warranty ID: %s", w.ExternalID))
	return errors.Join(emailErr, smsErr)
}

// SendWarrantyStatusChanged tells the customer about an admin status change.
func SendWarrantyStatusChanged(ctx context.Context, w models.Warranty) error {
	status := w.Status.Name
	subject := fmt.Sprintf("Warranty %s: %s", w.ExternalID, humanStatus(status))
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The status of your warranty <strong>%s</strong> is now <strong>%s</strong>.</p>
		<div class="info-box">%s</div>
	`, html.EscapeString(w.CustomerName), w.ExternalID, humanStatus(status), WarrantyStatusMessage(status))

	emailErr := Email.Send(ctx, w.Email, subject, emailTemplate("Warranty Status Update", body))
	smsErr := sendSMSIfEnabled(ctx, w.Mobile,
		fmt.Sprintf("Warranty %s status: %s", w.ExternalID, humanStatus(status)))
	return errors.Join(emailErr, smsErr)
}

// SendClaimCreated confirms a new claim to the customer.
func SendClaimCreated(ctx context.Context, c models.Claim, w models.Warranty) error {
	subject := "Claim Received: " + c.ExternalID
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your claim for warranty <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Claim ID:</strong> %s<br>
			<strong>Issue:</strong> %s
		</div>
		<p>%s</p>
		<a href="%s" class="btn">Track your claim</a>
	`, html.EscapeString(w.CustomerName), w.ExternalID, c.ExternalID, html.EscapeString(c.DefectDescription),
		ClaimStatusMessage(c.Status.Name), trackingLink(c.ExternalID))

	emailErr := Email.Send(ctx, w.Email, subject, emailTemplate("Claim Submitted", body))
	smsErr := sendSMSIfEnabled(ctx, w.Mobile,
		fmt.Sprintf("Claim %s received for warranty %s.", c.ExternalID, w.ExternalID))
	return errors.Join(emailErr, smsErr)
}

// SendClaimStatusChanged tells the customer about a claim status change.
// c.Warranty must be loaded.
func SendClaimStatusChanged(ctx context.Context, c models.Claim) error {
	if c.Warranty == nil {
		return errors.New("claim warranty not loaded")
	}
	w := *c.Warranty
	status := c.Status.Name

	notes := ""
	if c.AdminNotes != nil && *c.AdminNotes != "" {
		notes = fmt.Sprintf(`<p><strong>Notes from our team:</strong> %s</p>`, html.EscapeString(*c.AdminNotes))
	}

	subject := fmt.Sprintf("Claim %s: %s", c.ExternalID, humanStatus(status))
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The status of your claim <strong>%s</strong> is now <strong>%s</strong>.</p>
		<div class="info-box">%s</div>
		%s
		<a href="%s" class="btn">Track your claim</a>
	`, html.EscapeString(w.CustomerName), c.ExternalID, humanStatus(status), ClaimStatusMessage(status),
		notes, trackingLink(c.ExternalID))

	emailErr := Email.Send(ctx, w.Email, subject, emailTemplate("Claim Status Update", body))
	smsErr := sendSMSIfEnabled(ctx, w.Mobile,
		fmt.Sprintf("Claim %s status: %s", c.ExternalID, humanStatus(status)))
	return errors.Join(emailErr, smsErr)
}

// SendAdminOTP emails a login code to an administrator.
func SendAdminOTP(ctx context.Context, email, name, code string, ttl time.Duration) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Use the code below to sign in to the admin console.</p>
		<p class="code">%s</p>
		<p>The code expires in %d minutes. Do not share it with anyone.</p>
	`, html.EscapeString(name), code, int(ttl.Minutes()))

	return Email.Send(ctx, email, "Your admin login code", emailTemplate("Admin Login Verification", body))
}

// SendStaleClaimDigest reminds an admin about claims waiting in review.
func SendStaleClaimDigest(ctx context.Context, adminEmail string, count int64) error {
	body := fmt.Sprintf(`
		<p>Hello,</p>
		<div class="info-box">
			<strong>%d</strong> claim(s) have been under review for more than 7 days.
		</div>
		<p>Please review them in the admin console.</p>
	`, count)

	return Email.Send(ctx, adminEmail, fmt.Sprintf("%d claims awaiting review", count), emailTemplate("Pending Claims Digest", body))
}

func trackingLink(claimExternalID string) string {
	base := "/track"
	if config.AppConfig != nil && config.AppConfig.TrackingURL != "" {
		base = config.AppConfig.TrackingURL
	}
	return base + "?claim_id=" + claimExternalID
}
