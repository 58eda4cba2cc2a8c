package utils

import (
	"context"
	"fmt"
	"time"

	"warrantyhub/config"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// SMSSender delivers a plain text SMS.
type SMSSender interface {
	SendSMS(ctx context.Context, mobile, message string) error
}

// SMS is the process-wide SMS sender. Nil means SMS is disabled.
var SMS SMSSender

// NewSMSSender returns a gateway sender when SMS_API_URL is set, nil otherwise.
func NewSMSSender(cfg *config.Config) SMSSender {
	if cfg.SMSApiURL == "" {
		return nil
	}
	return &HTTPSMSSender{
		client: resty.New().
			SetBaseURL(cfg.SMSApiURL).
			SetTimeout(10 * time.Second).
			SetRetryCount(0),
		apiKey:   cfg.SMSApiKey,
		senderID: cfg.SMSSenderID,
	}
}

// HTTPSMSSender calls a bulk-SMS gateway that takes its parameters on the query string.
type HTTPSMSSender struct {
	client   *resty.Client
	apiKey   string
	senderID string
}

type smsGatewayResponse struct {
	Return  bool     `json:"return"`
	Message []string `json:"message"`
}

func (s *HTTPSMSSender) SendSMS(ctx context.Context, mobile, message string) error {
	var out smsGatewayResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"authorization": s.apiKey,
			"sender_id":     s.senderID,
			"route":         "q",
			"message":       message,
			"numbers":       mobile,
		}).
		SetResult(&out).
		Get("")
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms gateway: status %d: %s", resp.StatusCode(), resp.String())
	}

	logrus.WithField("mobile", mobile).Debug("SMS sent")
	return nil
}
