package liquid

import (
	"context"
	"fmt"
	"time"

	"github.com/osteele/liquid"
	"github.com/osteele/liquid/render"
)

// Limits applied to every render
const (
	DefaultRenderTimeout   = 5 * time.Second
	DefaultMaxTemplateSize = 100 * 1024 // 100KB
)

// Renderer renders Liquid templates with personalization data
type Renderer interface {
	Render(ctx context.Context, content string, data map[string]interface{}) (string, error)
}

// SecureEngine wraps the Liquid engine with a render timeout and a size cap
type SecureEngine struct {
	timeout time.Duration
	maxSize int
	engine  *liquid.Engine
}

// NewSecureEngine creates a Liquid engine with default limits
func NewSecureEngine() *SecureEngine {
	return NewSecureEngineWithOptions(DefaultRenderTimeout, DefaultMaxTemplateSize)
}

// NewSecureEngineWithOptions creates a Liquid engine with custom limits.
// Output expressions are HTML-escaped, so recipient data cannot inject markup.
func NewSecureEngineWithOptions(timeout time.Duration, maxSize int) *SecureEngine {
	engine := liquid.NewEngine()
	engine.SetAutoEscapeReplacer(render.HtmlEscaper)

	return &SecureEngine{
		timeout: timeout,
		maxSize: maxSize,
		engine:  engine,
	}
}

// Render parses and renders content. It gives up when the timeout elapses or ctx is done.
func (s *SecureEngine) Render(ctx context.Context, content string, data map[string]interface{}) (string, error) {
	if len(content) > s.maxSize {
		return "", fmt.Errorf("template size (%d bytes) exceeds maximum allowed size (%d bytes)", len(content), s.maxSize)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errorChan <- fmt.Errorf("panic during liquid rendering: %v", r)
			}
		}()

		rendered, err := s.engine.ParseAndRenderString(content, data)
		if err != nil {
			errorChan <- fmt.Errorf("liquid rendering failed: %w", err)
			return
		}

		resultChan <- rendered
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return "", err
	case <-ctx.Done():
		if ctx.Err() == context.Canceled {
			return "", fmt.Errorf("liquid rendering canceled: %w", ctx.Err())
		}
		return "", fmt.Errorf("liquid rendering timeout after %v (possible infinite loop or excessive computation)", s.timeout)
	}
}
