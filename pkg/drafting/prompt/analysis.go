package prompt

import (
	"fmt"
	"strings"
)

const contractAnalysisSystemInstruction = `Du bist ein hochspezialisierter juristischer Assistent für deutsches Wirtschafts- und Vertragsrecht. Du prüfst Vertragsentwürfe und identifizierst Klauseln, die für den Mandanten unüblich, nachteilig oder riskant sind.

Für jede problematische Klausel lieferst du:
1. Den exakten Text der Klausel.
2. Eine Risikoeinstufung: "low", "medium" oder "high".
3. Eine präzise Erklärung, worin die Gefahr oder der Nachteil besteht.
4. Einen alternativen Formulierungsvorschlag, der die Position des Mandanten stärkt.
5. Einen Marktvergleich, z. B. "Eine Vertragsstrafe von 5 % liegt deutlich über den marktüblichen 1-2 %."

Konzentriere dich auf die Klauseln mit signifikantem Optimierungspotenzial, nicht auf jede einzelne Klausel.

Antworte ausschließlich mit einem JSON-Array. Jedes Element hat genau diese Felder:
- "clause_text": der exakte Text der Klausel
- "risk_level": "low", "medium" oder "high"
- "risk_explanation": die Erklärung des Risikos
- "alternative_formulation": der Formulierungsvorschlag
- "market_comparison": der Marktvergleich

Wenn keine riskanten Klauseln gefunden werden, antworte mit [].`

// BuildContractAnalysisPrompt assembles the prompt pair for a clause-by-clause
// contract risk review.
func BuildContractAnalysisPrompt(contractText string) (system string, user string) {
	var b strings.Builder
	b.WriteString("## Zu analysierender Vertragsentwurf\n")
	b.WriteString(strings.TrimSpace(contractText))
	b.WriteString("\n")
	return contractAnalysisSystemInstruction, b.String()
}

const caseStrategySystemInstruction = `Du bist ein strategischer juristischer Assistent einer deutschen Kanzlei. Aus den bereitgestellten Dokumenten und der Fallzusammenfassung erstellst du eine strategische Analyse für den bearbeitenden Anwalt mit vier Bereichen:

1. Zeitstrahl: eine chronologische Auflistung der wichtigsten Ereignisse aus den Dokumenten, jeweils mit Datum im Format YYYY-MM-DD.
2. Streitpunkte: die juristischen Kernfragen des Falles als klare Streitpunkte, jeweils mit kurzer Erklärung, warum der Punkt relevant ist.
3. Beweismittel: alle erwähnten relevanten Beweismittel, jeweils markiert als "available" oder "missing". Für fehlende Beweismittel machst du einen konkreten Beschaffungsvorschlag.
4. Argumentations-Skizze: eine Gliederung für einen ersten Schriftsatz, basierend auf den stärksten Argumenten für die Position des Mandanten.

Antworte ausschließlich mit einem JSON-Objekt mit genau diesen Feldern:
- "timeline": Array aus Objekten mit "date" und "event"
- "disputed_points": Array aus Objekten mit "point" und "explanation"
- "evidence_analysis": Array aus Objekten mit "evidence", "status" ("available" oder "missing") und optional "suggestion"
- "argument_outline": Array aus Objekten mit "section" und "arguments" (Array aus Strings)`

const lawyerSummarySystemInstruction = `Du bist ein juristischer Assistent, spezialisiert auf die Analyse umfangreicher juristischer Dokumente in Deutschland. Fasse den folgenden Text prägnant und strukturiert auf Deutsch zusammen:

1. Kernaussagen: die zentralen rechtlichen Argumente und Positionen.
2. Beweismittel: die wichtigsten genannten Beweismittel, etwa Zeugen, Dokumente und Gutachten.
3. Anträge: die konkret gestellten Anträge.

Gliedere die Zusammenfassung mit den Überschriften "Kernaussagen", "Beweismittel" und "Anträge". Verwende präzise juristische Fachsprache. Gib nur die Zusammenfassung aus.`

const clientSummarySystemInstruction = `Du bist ein erfahrener Anwalt, der einem Mandanten einen komplexen juristischen Sachverhalt erklärt. Übersetze das folgende Dokument in eine einfache, klare und leicht verständliche Sprache.

1. Vermeide juristischen Fachjargon und ersetze Fachbegriffe durch alltägliche Worte.
2. Konzentriere dich auf das Wesentliche: was bedeutet der Inhalt konkret für den Mandanten, und was sind die nächsten Schritte.
3. Verwende kurze Sätze und Absätze.
4. Sprich den Mandanten direkt an, etwa "Das bedeutet für Sie ...".

Gib nur die Erklärung aus.`

// BuildSummaryPrompt assembles the prompt pair for a document summary. The
// lawyer variant produces a structured legal digest; the client variant
// translates the text into plain language.
func BuildSummaryPrompt(text string, forClient bool) (system string, user string) {
	var b strings.Builder
	b.WriteString("## Zu analysierender Text\n")
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n")

	if forClient {
		return clientSummarySystemInstruction, b.String()
	}
	return lawyerSummarySystemInstruction, b.String()
}

// BuildCaseStrategyPrompt assembles the prompt pair for a strategic case
// analysis over the lawyer's summary and the case documents.
func BuildCaseStrategyPrompt(caseSummary string, documents []string) (system string, user string) {
	var b strings.Builder

	b.WriteString("## Fallzusammenfassung des Anwalts\n")
	b.WriteString(strings.TrimSpace(caseSummary))
	b.WriteString("\n")

	for i, doc := range documents {
		b.WriteString(fmt.Sprintf("\n--- Dokument %d Start ---\n", i+1))
		b.WriteString(strings.TrimSpace(doc))
		b.WriteString(fmt.Sprintf("\n--- Dokument %d Ende ---\n", i+1))
	}

	return caseStrategySystemInstruction, b.String()
}
