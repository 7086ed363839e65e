package vision_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"scantrack/internal/adapters/out/vision"
	"scantrack/internal/core/ports"
	"scantrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	answer   string
	err      error
	messages []llms.MessageContent
}

func (m *fakeModel) GenerateContent(
	_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption,
) (*llms.ContentResponse, error) {
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.answer}}}, nil
}

func (m *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return m.answer, m.err
}

func factoryFor(model *fakeModel, keys *[]string) vision.ModelFactory {
	return func(key string) (llms.Model, error) {
		if keys != nil {
			*keys = append(*keys, key)
		}
		return model, nil
	}
}

func Test_ExtractorReturnsTrimmedAnswer(t *testing.T) {
	model := &fakeModel{answer: "  ORD-77 \n"}
	var usedKeys []string
	ex := vision.NewExtractor(vision.NewKeyStore("k1", ""), factoryFor(model, &usedKeys), "", nil)

	text, err := ex.ExtractOrderID(t.Context(), []byte{0xff, 0xd8}, "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "ORD-77", text)
	assert.Equal(t, []string{"k1"}, usedKeys)
	require.Len(t, model.messages, 1)
	require.Len(t, model.messages[0].Parts, 2)

	img, ok := model.messages[0].Parts[1].(llms.ImageURLContent)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(img.URL, "data:image/jpeg;base64,"))
}

func Test_ExtractorMapsNotFoundAnswer(t *testing.T) {
	for _, answer := range []string{"", "NOT_FOUND", " not_found "} {
		ex := vision.NewExtractor(vision.NewKeyStore("k1", ""), factoryFor(&fakeModel{answer: answer}, nil), "", nil)

		_, err := ex.ExtractOrderID(t.Context(), []byte("x"), "image/png")

		kind, ok := ports.VisionErrorKindOf(err)
		assert.True(t, ok, answer)
		assert.Equal(t, ports.VisionNotFound, kind, answer)
	}
}

func Test_ExtractorWithoutKeyFailsBeforeCallingModel(t *testing.T) {
	var usedKeys []string
	ex := vision.NewExtractor(vision.NewKeyStore(" ", ""), factoryFor(&fakeModel{answer: "X"}, &usedKeys), "", nil)

	_, err := ex.ExtractOrderID(t.Context(), []byte("x"), "image/png")

	kind, _ := ports.VisionErrorKindOf(err)
	assert.Equal(t, ports.VisionKeyMissing, kind)
	assert.True(t, errors.Is(err, errs.ErrAuth))
	assert.Empty(t, usedKeys)
}

func Test_ExtractorBlocksKeyOnInvalidKey(t *testing.T) {
	keys := vision.NewKeyStore("bad", "gemini-2.5-flash")
	model := &fakeModel{err: errors.New("API key not valid. Please pass a valid API key.")}
	ex := vision.NewExtractor(keys, factoryFor(model, nil), "", nil)

	_, err := ex.ExtractOrderID(t.Context(), []byte("x"), "image/png")

	kind, _ := ports.VisionErrorKindOf(err)
	assert.Equal(t, ports.VisionKeyInvalid, kind)
	assert.True(t, errors.Is(err, errs.ErrAuth))

	status := keys.Status()
	assert.True(t, status.Blocked)
	assert.Equal(t, ports.VisionKeyInvalid, status.Reason)

	// blocked keys fail fast until replaced
	model.err = nil
	model.answer = "ORD-1"
	_, err = ex.ExtractOrderID(t.Context(), []byte("x"), "image/png")
	kind, _ = ports.VisionErrorKindOf(err)
	assert.Equal(t, ports.VisionKeyInvalid, kind)

	require.NoError(t, keys.SetKey("good"))
	text, err := ex.ExtractOrderID(t.Context(), []byte("x"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", text)
}

func Test_ExtractorKeepsKeyOnTransientFailure(t *testing.T) {
	keys := vision.NewKeyStore("k1", "")
	ex := vision.NewExtractor(keys, factoryFor(&fakeModel{err: errors.New("dial tcp: i/o timeout")}, nil), "", nil)

	_, err := ex.ExtractOrderID(t.Context(), []byte("x"), "image/png")

	kind, _ := ports.VisionErrorKindOf(err)
	assert.Equal(t, ports.VisionTransient, kind)
	assert.False(t, keys.Status().Blocked)
}

func Test_Classify(t *testing.T) {
	cases := map[string]ports.VisionErrorKind{
		"API key not valid":                        ports.VisionKeyInvalid,
		"API returned unexpected status code: 401": ports.VisionKeyInvalid,
		"PERMISSION_DENIED: caller lacks access":   ports.VisionAuthError,
		"API returned unexpected status code: 503": ports.VisionTransient,
		"connection reset by peer":                 ports.VisionTransient,
	}
	for msg, want := range cases {
		assert.Equal(t, want, vision.Classify(errors.New(msg)), msg)
	}
}

func Test_KeyStoreSetKey(t *testing.T) {
	keys := vision.NewKeyStore("", "m")
	status := keys.Status()
	assert.False(t, status.Configured)
	assert.Equal(t, ports.VisionKeyMissing, status.Reason)

	err := keys.SetKey("  ")
	assert.True(t, errors.Is(err, errs.ErrValueIsRequired))

	require.NoError(t, keys.SetKey(" new-key "))
	key, err := keys.Key()
	require.NoError(t, err)
	assert.Equal(t, "new-key", key)
	assert.Equal(t, ports.VisionStatus{Configured: true, Model: "m"}, keys.Status())
}
