package service

import (
	"context"

	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/pkg/logger"
	"multibagger-scanner/pkg/telegram"
	"multibagger-scanner/pkg/utils"
)

// NewMatchAlertingScanner wraps a ScannerService so that every scan with at least one match is
// pushed to Telegram. Delivery runs in the background and never affects the scan response.
func NewMatchAlertingScanner(inner ScannerService, notifier telegram.Notifier, log *logger.Logger) ScannerService {
	if notifier == nil {
		return inner
	}
	return &matchAlertingScanner{ScannerService: inner, notifier: notifier, log: log}
}

type matchAlertingScanner struct {
	ScannerService
	notifier telegram.Notifier
	log      *logger.Logger
}

func (s *matchAlertingScanner) Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error) {
	resp, err := s.ScannerService.Scan(ctx, req)
	if err != nil {
		return nil, err
	}
	messages := telegram.FormatScanMatches(resp)
	if len(messages) == 0 {
		return resp, nil
	}

	utils.GoSafe(s.log, func() {
		for _, msg := range messages {
			if err := s.notifier.SendMessage(msg); err != nil {
				s.log.Error("Failed to send scan alert", logger.ErrorField(err), logger.IntField("matches", resp.Matches))
				return
			}
		}
	})
	return resp, nil
}
