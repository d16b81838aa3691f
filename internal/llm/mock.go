package llm

import (
	"context"
	"strings"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Chunks   []string
	Err      error

	mu      sync.Mutex
	Prompts []string
}

func (m *MockClient) record(prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
}

// LastPrompt devuelve el último prompt recibido.
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.record(prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response == "" && len(m.Chunks) > 0 {
		return strings.Join(m.Chunks, ""), nil
	}
	return m.Response, nil
}

// GenerateStream emite Chunks en orden; si no hay, emite Response completo.
func (m *MockClient) GenerateStream(ctx context.Context, prompt string, onChunk func(string) error) (string, error) {
	m.record(prompt)
	if m.Err != nil {
		return "", m.Err
	}
	chunks := m.Chunks
	if len(chunks) == 0 {
		chunks = []string{m.Response}
	}
	var sb strings.Builder
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		sb.WriteString(c)
		if onChunk != nil {
			if err := onChunk(c); err != nil {
				return "", err
			}
		}
	}
	return sb.String(), nil
}
