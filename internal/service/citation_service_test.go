package service

import (
	"context"
	"errors"
	"testing"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"
	"github.com/besmartbusiness/lawyer-app/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cannedProvider returns a fixed completion regardless of the prompt.
type cannedProvider struct {
	response string
}

func (p cannedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.response, nil
}

func (p cannedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.response, nil
}

func TestSuggest_ParsesTaggedCitations(t *testing.T) {
	svc := NewCitationService(cannedProvider{response: `[
		{"type": "paragraph", "citation": "§ 536 BGB", "explanation": "Mietminderung bei Mängeln"},
		{"type": "judgment", "citation": "BGH, Urteil vom 12.03.2020 - VIII ZR 31/19", "explanation": "Schimmelbefall"}
	]`}, 5, nopLogger{})

	citations, err := svc.Suggest(context.Background(), "Mietmangel, Schimmel im Schlafzimmer")
	require.NoError(t, err)

	require.Len(t, citations, 2)
	assert.Equal(t, entity.CitationKindParagraph, citations[0].Kind)
	assert.Equal(t, "§ 536 BGB", citations[0].Reference)
	assert.Equal(t, entity.CitationKindJudgment, citations[1].Kind)
}

func TestSuggest_StripsMarkdownFence(t *testing.T) {
	svc := NewCitationService(cannedProvider{response: "```json\n[{\"type\": \"paragraph\", \"citation\": \"§ 280 BGB\"}]\n```"}, 5, nopLogger{})

	citations, err := svc.Suggest(context.Background(), "Schadensersatz")
	require.NoError(t, err)
	require.Len(t, citations, 1)
	assert.Equal(t, "§ 280 BGB", citations[0].Reference)
}

func TestSuggest_DropsUnknownKindsAndEmptyReferences(t *testing.T) {
	svc := NewCitationService(cannedProvider{response: `[
		{"type": "paragraph", "citation": "§ 823 BGB"},
		{"type": "statute", "citation": "§ 1 UWG"},
		{"type": "judgment", "citation": ""}
	]`}, 5, nopLogger{})

	citations, err := svc.Suggest(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, citations, 1)
	assert.Equal(t, "§ 823 BGB", citations[0].Reference)
}

func TestSuggest_CapsAtMaxSuggestions(t *testing.T) {
	svc := NewCitationService(cannedProvider{response: `[
		{"type": "paragraph", "citation": "§ 1"},
		{"type": "paragraph", "citation": "§ 2"},
		{"type": "paragraph", "citation": "§ 3"}
	]`}, 2, nopLogger{})

	citations, err := svc.Suggest(context.Background(), "x")
	require.NoError(t, err)
	assert.Len(t, citations, 2)
}

func TestSuggest_MalformedResponseIsGenerationError(t *testing.T) {
	svc := NewCitationService(cannedProvider{response: "Hier sind einige Fundstellen: § 536 BGB"}, 5, nopLogger{})

	_, err := svc.Suggest(context.Background(), "x")
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeGenerationFailed, appErr.Code)
}

func TestSuggest_ProviderFailureIsGenerationError(t *testing.T) {
	svc := NewCitationService(failingProvider{err: errors.New("quota exceeded")}, 5, nopLogger{})

	_, err := svc.Suggest(context.Background(), "x")
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeGenerationFailed, appErr.Code)
}
