package mcp

import (
	"context"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
	"github.com/custodia-labs/stackprobe/internal/core/services"
)

// mockScanService is a mock implementation of driving.ScanService.
// It feeds pages into detector when set.
type mockScanService struct {
	detector driving.DetectorService
	pages    []domain.Page
	err      error
	warning  string
	requests []domain.ScanRequest
}

func (m *mockScanService) Scan(
	_ context.Context,
	req domain.ScanRequest,
	_ ...driving.ScanOption,
) (*domain.ScanResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}

	valid := 0
	if m.detector != nil {
		m.detector.Reset("scan-1")
		for _, p := range m.pages {
			if m.detector.Ingest(p) {
				valid++
			}
		}
	}
	result := &domain.ScanResult{
		SessionID:     "scan-1",
		Source:        req.Label(),
		PagesReceived: len(m.pages),
		ValidPages:    valid,
		Message:       "2 pages crawled in 1s",
		Partial:       m.warning != "",
		Warning:       m.warning,
	}
	if m.detector != nil {
		result.Summary = m.detector.Summary()
	}
	return result, nil
}

func (m *mockScanService) Status() domain.ScanStatus {
	return domain.ScanStatus{}
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.Settings) error { return nil }

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) SetAPIKey(_ string) error { return nil }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.Settings { return domain.DefaultSettings() }

func (m *mockSettingsService) Path() string { return "" }

func examplePages() []domain.Page {
	return []domain.Page{
		{URL: "https://a.test/", Content: "<html>__NEXT_DATA__ wp-content</html>"},
		{URL: "https://a.test/about", Content: "<html>wp-content</html>"},
	}
}

func newSession() driving.DetectorService {
	return services.NewDetectorService(nil)
}
