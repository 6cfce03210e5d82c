// Package invoke wraps a provider with the response cache and the retry
// policy. Stages call it from Execute and nowhere else.
package invoke

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/code2tutorial/internal/cache"
	"github.com/jorge-barreto/code2tutorial/internal/fileblocks"
	"github.com/jorge-barreto/code2tutorial/internal/llm"
	"github.com/jorge-barreto/code2tutorial/internal/logging"
	"github.com/jorge-barreto/code2tutorial/internal/metrics"
	"github.com/jorge-barreto/code2tutorial/internal/retry"
)

// Invoker is safe to share between stages of one run. Zero-valued optional
// fields fall back to no cache, the default policy, a real sleep, a
// discarding logger and no metrics.
type Invoker struct {
	Provider llm.Provider
	Cache    cache.Store
	Policy   retry.Policy
	Sleep    retry.Sleeper
	Logger   *slog.Logger
	Metrics  metrics.Recorder
}

// Text returns the provider's free-text answer to prompt.
func (i *Invoker) Text(ctx context.Context, prompt string) (string, error) {
	if raw, ok := i.lookup(prompt); ok {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return text, nil
		}
		i.logger().Warn("ignoring unreadable cache entry")
	}

	resp, err := i.call(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	i.store(prompt, resp.Text)
	return resp.Text, nil
}

// Structured returns a decoded value (lists, maps, scalars) for prompt.
// Adapters that support schemas are asked for typed output; for the rest
// the answer text is parsed, and a parse failure is never retried.
func (i *Invoker) Structured(ctx context.Context, prompt string, schema llm.Schema) (any, error) {
	if raw, ok := i.lookup(prompt); ok {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		i.logger().Warn("ignoring unreadable cache entry")
	}

	resp, err := i.call(ctx, prompt, &schema)
	if err != nil {
		return nil, err
	}
	v, err := decode(resp)
	if err != nil {
		return nil, err
	}
	i.store(prompt, v)
	return v, nil
}

func decode(resp llm.Response) (any, error) {
	if resp.Kind == llm.Structured {
		return resp.Value, nil
	}
	payload := fileblocks.Payload(resp.Text)
	var v any
	if err := yaml.Unmarshal([]byte(payload), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}
	return v, nil
}

func (i *Invoker) call(ctx context.Context, prompt string, schema *llm.Schema) (llm.Response, error) {
	log := i.logger()
	rec := i.recorder()
	name := i.Provider.Name()
	log.Debug("prompt", "provider", name, "chars", len(prompt), "text", prompt)

	var resp llm.Response
	hooks := retry.Hooks{
		Retryable: llm.IsTransient,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			rec.IncRetry(name)
			log.Warn("provider call failed, retrying",
				"provider", name,
				"attempt", attempt,
				"delay", delay,
				"error", err)
		},
	}
	err := retry.Do(ctx, i.policy(), i.Sleep, hooks, func(ctx context.Context) error {
		r, err := i.once(ctx, prompt, schema)
		rec.IncProviderCall(name, err == nil)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return llm.Response{}, err
	}
	log.Debug("response", "provider", name, "kind", resp.Kind.String(), "chars", len(resp.Text))
	return resp, nil
}

func (i *Invoker) once(ctx context.Context, prompt string, schema *llm.Schema) (llm.Response, error) {
	if schema != nil {
		if sp, ok := i.Provider.(llm.StructuredProvider); ok {
			v, err := sp.CompleteStructured(ctx, prompt, *schema)
			if err != nil {
				return llm.Response{}, err
			}
			return llm.Response{Kind: llm.Structured, Value: v}, nil
		}
	}
	text, err := i.Provider.Complete(ctx, prompt)
	if err != nil {
		return llm.Response{}, err
	}
	return llm.Response{Kind: llm.PlainText, Text: text}, nil
}

func (i *Invoker) lookup(prompt string) (json.RawMessage, bool) {
	if i.Cache == nil {
		return nil, false
	}
	raw, ok := i.Cache.Get(prompt)
	i.recorder().IncCacheLookup(ok)
	if ok {
		i.logger().Debug("cache hit", "chars", len(prompt))
	}
	return raw, ok
}

func (i *Invoker) store(prompt string, v any) {
	if i.Cache == nil {
		return
	}
	if err := i.Cache.Put(prompt, v); err != nil {
		i.logger().Warn("cache write failed", "error", err)
	}
}

func (i *Invoker) policy() retry.Policy {
	if i.Policy.Attempts <= 0 {
		return retry.DefaultPolicy()
	}
	return i.Policy
}

func (i *Invoker) logger() *slog.Logger {
	if i.Logger == nil {
		return logging.Nop()
	}
	return i.Logger
}

func (i *Invoker) recorder() metrics.Recorder {
	if i.Metrics == nil {
		return metrics.NoopRecorder{}
	}
	return i.Metrics
}
