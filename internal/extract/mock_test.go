package extract

import (
	"context"

	"github.com/sells-group/intake-cli/internal/augment"
)

// mockProvider implements augment.Provider for testing.
type mockProvider struct {
	documentResult   *augment.Result
	textResult       *augment.Result
	supplementResult *augment.Result
	err              error

	documentCalls    int
	textCalls        int
	supplementCalls  int
	supplementFields []string
}

func (m *mockProvider) ExtractFromDocument(_ context.Context, _ []byte, _ string) (*augment.Result, error) {
	m.documentCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.documentResult, nil
}

func (m *mockProvider) ExtractFromText(_ context.Context, _, _ string) (*augment.Result, error) {
	m.textCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.textResult, nil
}

func (m *mockProvider) SupplementFields(_ context.Context, _, _ string, fields []string) (*augment.Result, error) {
	m.supplementCalls++
	m.supplementFields = fields
	if m.err != nil {
		return nil, m.err
	}
	return m.supplementResult, nil
}
