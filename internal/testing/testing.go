// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"

	"github.com/syruplabs/syrup/internal/models"
)

// MockProvider is a configurable test double for [services.Provider].
type MockProvider struct {
	ProviderSource models.Source
	Metrics        []models.DailyMetric
	Err            error
	Calls          int
}

func (m *MockProvider) Fetch(ctx context.Context, externalID string, sinceDays int) ([]models.DailyMetric, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Metrics, nil
}

func (m *MockProvider) Source() models.Source { return m.ProviderSource }
func (m *MockProvider) Name() string          { return string(m.ProviderSource) }

// MockGenerator is a test double for [answers.Generator]. It records the last
// prompt it saw so tests can assert on prompt construction.
type MockGenerator struct {
	Response   string
	Err        error
	LastPrompt string
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
