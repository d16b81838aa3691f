package llm

import "context"

// LLMClient define la interfaz para generar respuestas con un LLM.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StreamingClient emite la respuesta por partes; devuelve el texto completo al terminar.
type StreamingClient interface {
	LLMClient
	GenerateStream(ctx context.Context, prompt string, onChunk func(string) error) (string, error)
}

// Stream usa streaming si el cliente lo soporta; si no, emite la respuesta en un solo chunk.
func Stream(ctx context.Context, client LLMClient, prompt string, onChunk func(string) error) (string, error) {
	if sc, ok := client.(StreamingClient); ok {
		return sc.GenerateStream(ctx, prompt, onChunk)
	}
	text, err := client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if onChunk != nil && text != "" {
		if err := onChunk(text); err != nil {
			return "", err
		}
	}
	return text, nil
}
