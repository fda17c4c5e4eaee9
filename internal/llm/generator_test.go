package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiwoo-han/testcase-gen/constants"
	"github.com/jiwoo-han/testcase-gen/internal/common"
)

type fakeBackend struct {
	response string
	err      error
	calls    int
}

func (f *fakeBackend) GenerateText(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func newTestGenerator(t *testing.T, b TextGenerator) *Generator {
	t.Helper()
	g, err := NewGenerator(b, nil)
	require.NoError(t, err)
	return g
}

func TestNewGeneratorRequiresBackend(t *testing.T) {
	_, err := NewGenerator(nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestGenerateParsesCleanResponse(t *testing.T) {
	g := newTestGenerator(t, &fakeBackend{response: `{
		"testItems": [
			{"number": "TC-01", "category": "상점", "content": "구매 버튼 탭", "result": "아이템이 지급된다"}
		]
	}`})

	doc, err := g.Generate(context.Background(), "some plan text")
	require.NoError(t, err)
	require.Len(t, doc.TestItems, 1)
	assert.Equal(t, "TC-01", doc.TestItems[0].Number)
	assert.Equal(t, "상점", doc.TestItems[0].Category)
}

func TestGenerateRecoversFencedResponseWithProse(t *testing.T) {
	g := newTestGenerator(t, &fakeBackend{
		response: "Sure! Here is the JSON:\n```json\n" +
			`{"testItems": [{"number": "TC-01", "category": "퀘스트", "content": "수락", "result": "진행됨",}]}` +
			"\n```\nHope this helps.",
	})

	doc, err := g.Generate(context.Background(), "plan")
	require.NoError(t, err)
	require.Len(t, doc.TestItems, 1)
	assert.Equal(t, "퀘스트", doc.TestItems[0].Category)
}

func TestGenerateGibberishFallsBackToSentinel(t *testing.T) {
	g := newTestGenerator(t, &fakeBackend{response: "I could not produce any structured output, sorry."})

	doc, err := g.Generate(context.Background(), "plan")
	require.NoError(t, err, "unrecoverable payload must soft-fail, not error")
	require.Len(t, doc.TestItems, 1)
	assert.Equal(t, constants.ParseErrorCategory, doc.TestItems[0].Category)
	assert.True(t, doc.IsParseErrorSentinel())
}

func TestGenerateRejectsTestItemsObject(t *testing.T) {
	// testItems must be a sequence; a single object falls through to the
	// sentinel document.
	g := newTestGenerator(t, &fakeBackend{
		response: `{"testItems": {"number": "TC-01", "category": "상점"}}`,
	})

	doc, err := g.Generate(context.Background(), "plan")
	require.NoError(t, err)
	assert.True(t, doc.IsParseErrorSentinel())
}

func TestGenerateRejectsNonObjectItems(t *testing.T) {
	g := newTestGenerator(t, &fakeBackend{
		response: `{"testItems": ["TC-01", "TC-02"]}`,
	})

	doc, err := g.Generate(context.Background(), "plan")
	require.NoError(t, err)
	assert.True(t, doc.IsParseErrorSentinel())
}

func TestGenerateBackendErrorIsServiceUnavailable(t *testing.T) {
	g := newTestGenerator(t, &fakeBackend{err: errors.New("connection refused")})

	_, err := g.Generate(context.Background(), "plan")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestGenerateBraceScanRecoversTrailingBraceProse(t *testing.T) {
	// The trailing prose contains '}', so the first-{/last-} slice parses
	// garbage; the balanced scan recovers the object.
	g := newTestGenerator(t, &fakeBackend{
		response: `{"testItems": [{"number": "TC-01", "category": "A", "content": "c", "result": "r"}]}` +
			" trailing note: use {curly} style }",
	})

	doc, err := g.Generate(context.Background(), "plan")
	require.NoError(t, err)
	require.Len(t, doc.TestItems, 1)
	assert.Equal(t, "TC-01", doc.TestItems[0].Number)
}
