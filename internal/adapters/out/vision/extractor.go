// Package vision reads order numbers off ticket photos with a multimodal
// LLM reached through langchaingo's OpenAI client. Gemini is used through
// its OpenAI compatible endpoint by default.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"
	"scantrack/internal/pkg/metrics"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel   = "gemini-2.5-flash"

	// NotFoundMarker is what the model answers when no number is visible.
	NotFoundMarker = "NOT_FOUND"

	prompt = "Analiza esta imagen de un documento. Encuentra el número de pedido. " +
		"Suele estar etiquetado como 'Nº Pedido', 'Pedido', 'Order #', o similar. " +
		"Devuelve ÚNICAMENTE el número de pedido como texto plano, sin ninguna explicación adicional. " +
		"Si no se encuentra un número de pedido claro, devuelve la palabra '" + NotFoundMarker + "'."
)

// ModelFactory builds a client for one API key.
type ModelFactory func(key string) (llms.Model, error)

// OpenAIModelFactory returns a ModelFactory for an OpenAI compatible API.
func OpenAIModelFactory(baseURL, model string) ModelFactory {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return func(key string) (llms.Model, error) {
		return openai.New(
			openai.WithToken(key),
			openai.WithBaseURL(baseURL),
			openai.WithModel(model),
		)
	}
}

// Extractor implements ports.OrderIDExtractor.
type Extractor struct {
	keys     *KeyStore
	newModel ModelFactory
	model    string
	logger   *zap.Logger
}

func NewExtractor(keys *KeyStore, newModel ModelFactory, model string, logger *zap.Logger) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{keys: keys, newModel: newModel, model: model, logger: logger}
}

// ExtractOrderID returns the raw text the model read. Failures are
// *ports.VisionError; key related kinds also block the key.
func (e *Extractor) ExtractOrderID(ctx context.Context, image []byte, mimeType string) (string, error) {
	text, err := e.extract(ctx, image, mimeType)
	if err != nil {
		kind, _ := ports.VisionErrorKindOf(err)
		metrics.VisionErrorsTotal.WithLabelValues(kind.String()).Inc()
		e.logger.Warn("order id extraction failed", zap.Stringer("kind", kind), zap.Error(err))
		return "", err
	}
	return text, nil
}

func (e *Extractor) extract(ctx context.Context, image []byte, mimeType string) (string, error) {
	key, err := e.keys.Key()
	if err != nil {
		return "", err
	}

	client, err := e.newModel(key)
	if err != nil {
		return "", ports.NewVisionError(ports.VisionTransient, err)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	resp, err := client.GenerateContent(ctx,
		[]llms.MessageContent{{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt), llms.ImageURLPart(dataURL)},
		}},
		llms.WithModel(e.model),
		llms.WithTemperature(0),
	)
	if err != nil {
		kind := Classify(err)
		if kind.IsFatal() {
			e.keys.Invalidate(kind)
			return "", ports.NewVisionError(kind, errs.NewAuthErrorWithCause("vision", "api key rejected", err))
		}
		return "", ports.NewVisionError(kind, err)
	}

	if len(resp.Choices) == 0 {
		return "", ports.NewVisionError(ports.VisionNotFound, errors.New("empty response"))
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" || strings.EqualFold(text, NotFoundMarker) {
		return "", ports.NewVisionError(ports.VisionNotFound, errors.New("no order number in the image"))
	}
	return text, nil
}

// Classify maps a provider error to a VisionErrorKind by its message.
func Classify(err error) ports.VisionErrorKind {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key not valid"),
		strings.Contains(msg, "api_key_invalid"),
		strings.Contains(msg, "incorrect api key"),
		strings.Contains(msg, "status code: 401"):
		return ports.VisionKeyInvalid
	case strings.Contains(msg, "permission_denied"),
		strings.Contains(msg, "status code: 403"):
		return ports.VisionAuthError
	default:
		return ports.VisionTransient
	}
}
