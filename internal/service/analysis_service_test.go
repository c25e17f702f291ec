package service

import (
	"context"
	"errors"
	"testing"

	"github.com/besmartbusiness/lawyer-app/internal/entity"
	"github.com/besmartbusiness/lawyer-app/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeContract_ParsesFlaggedClauses(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: `[
		{
			"clause_text": "Die Vertragsstrafe beträgt 5% der Auftragssumme je Kalendertag.",
			"risk_level": "high",
			"risk_explanation": "Die Strafe ist der Höhe nach unbegrenzt.",
			"alternative_formulation": "Die Vertragsstrafe ist auf insgesamt 5% der Auftragssumme begrenzt.",
			"market_comparison": "Marktüblich sind 0,2% je Werktag, begrenzt auf 5% insgesamt."
		},
		{
			"clause_text": "Der Gerichtsstand ist der Sitz des Auftraggebers.",
			"risk_level": "low",
			"risk_explanation": "Üblich, aber für den Mandanten unbequem.",
			"alternative_formulation": "Gerichtsstand ist der Sitz des Auftragnehmers.",
			"market_comparison": "Beide Varianten sind verbreitet."
		}
	]`}, nopLogger{})

	clauses, err := svc.AnalyzeContract(context.Background(), "§ 7 Vertragsstrafe ... § 12 Gerichtsstand ...")
	require.NoError(t, err)

	require.Len(t, clauses, 2)
	assert.Equal(t, entity.ClauseRiskHigh, clauses[0].RiskLevel)
	assert.Contains(t, clauses[0].Alternative, "begrenzt")
	assert.Equal(t, entity.ClauseRiskLow, clauses[1].RiskLevel)
}

func TestAnalyzeContract_DropsUnusableClauses(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: `[
		{"clause_text": "Haftung unbegrenzt.", "risk_level": "extreme"},
		{"clause_text": "", "risk_level": "high"},
		{"clause_text": "Zahlungsziel 90 Tage.", "risk_level": "medium", "risk_explanation": "Weit über dem Üblichen."}
	]`}, nopLogger{})

	clauses, err := svc.AnalyzeContract(context.Background(), "Vertragstext")
	require.NoError(t, err)

	require.Len(t, clauses, 1)
	assert.Equal(t, "Zahlungsziel 90 Tage.", clauses[0].ClauseText)
}

func TestAnalyzeContract_EmptyTextRejected(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: "[]"}, nopLogger{})

	_, err := svc.AnalyzeContract(context.Background(), "   ")
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeValidationFailed, appErr.Code)
}

func TestAnalyzeContract_MalformedResponseMapsToGenerationError(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: "Hier ist meine Analyse:"}, nopLogger{})

	_, err := svc.AnalyzeContract(context.Background(), "Vertragstext")
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeGenerationFailed, appErr.Code)
}

func TestCaseStrategy_ParsesAllFourSections(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: "```json\n" + `{
		"timeline": [{"date": "2026-01-15", "event": "Vertragsschluss"}],
		"disputed_points": [{"point": "Liegt ein Sachmangel gemäß § 434 BGB vor?", "explanation": "Kern des Anspruchs."}],
		"evidence_analysis": [
			{"evidence": "Kaufvertrag vom 15.01.2026", "status": "available"},
			{"evidence": "Übergabeprotokoll", "status": "missing", "suggestion": "Beim Verkäufer anfordern."}
		],
		"argument_outline": [{"section": "I. Anspruch auf Nacherfüllung", "arguments": ["Sachmangel bei Gefahrübergang"]}]
	}` + "\n```"}, nopLogger{})

	strategy, err := svc.CaseStrategy(context.Background(), "Kaufpreisminderung wegen Mängeln.", []string{"Kaufvertrag ..."})
	require.NoError(t, err)

	require.Len(t, strategy.Timeline, 1)
	assert.Equal(t, "2026-01-15", strategy.Timeline[0].Date)
	require.Len(t, strategy.DisputedPoints, 1)
	require.Len(t, strategy.EvidenceAnalysis, 2)
	assert.Equal(t, entity.EvidenceMissing, strategy.EvidenceAnalysis[1].Status)
	assert.Equal(t, "Beim Verkäufer anfordern.", strategy.EvidenceAnalysis[1].Suggestion)
	require.Len(t, strategy.ArgumentOutline, 1)
	assert.Equal(t, "I. Anspruch auf Nacherfüllung", strategy.ArgumentOutline[0].Section)
}

func TestCaseStrategy_NormalizesEvidenceStatus(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: `{
		"timeline": [],
		"disputed_points": [],
		"evidence_analysis": [{"evidence": "Zeugenaussage", "status": "unknown", "suggestion": "irrelevant"}],
		"argument_outline": []
	}`}, nopLogger{})

	strategy, err := svc.CaseStrategy(context.Background(), "Zusammenfassung", []string{"Dokument"})
	require.NoError(t, err)

	require.Len(t, strategy.EvidenceAnalysis, 1)
	assert.Equal(t, entity.EvidenceAvailable, strategy.EvidenceAnalysis[0].Status)
	assert.Empty(t, strategy.EvidenceAnalysis[0].Suggestion)
}

func TestCaseStrategy_RequiresAtLeastOneDocument(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: "{}"}, nopLogger{})

	_, err := svc.CaseStrategy(context.Background(), "Zusammenfassung", nil)
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeValidationFailed, appErr.Code)
}

func TestSummarize_ReturnsTrimmedSummary(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: "\nKernaussagen: Der Kläger fordert Nacherfüllung.\n"}, nopLogger{})

	summary, err := svc.Summarize(context.Background(), "Langer Schriftsatz ...", SummaryAudienceLawyer)
	require.NoError(t, err)
	assert.Equal(t, "Kernaussagen: Der Kläger fordert Nacherfüllung.", summary)
}

func TestSummarize_EmptyAudienceDefaultsToLawyer(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: "Zusammenfassung."}, nopLogger{})

	summary, err := svc.Summarize(context.Background(), "Schriftsatz", "")
	require.NoError(t, err)
	assert.Equal(t, "Zusammenfassung.", summary)
}

func TestSummarize_UnknownAudienceRejected(t *testing.T) {
	svc := NewAnalysisService(cannedProvider{response: "Zusammenfassung."}, nopLogger{})

	_, err := svc.Summarize(context.Background(), "Schriftsatz", "judge")
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeValidationFailed, appErr.Code)
}

func TestCaseStrategy_ProviderFailureMapsToGenerationError(t *testing.T) {
	svc := NewAnalysisService(failingProvider{err: errors.New("backend down")}, nopLogger{})

	_, err := svc.CaseStrategy(context.Background(), "Zusammenfassung", []string{"Dokument"})
	require.Error(t, err)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeGenerationFailed, appErr.Code)
}
