package prompt

import (
	"fmt"
	"strings"
)

// CaseMetadata carries the matter context a draft is produced for.
type CaseMetadata struct {
	Court      string
	CaseNumber string
	Claimant   string
	Defendant  string
	Subject    string
}

// ResolvedBlock is a retrieval entry that was resolved for the draft.
type ResolvedBlock struct {
	Name    string
	Content string
}

// DraftInput is everything the drafting prompt is assembled from.
type DraftInput struct {
	Notes      string // Notes with command tokens already stripped
	Transcript string
	Metadata   *CaseMetadata
	Template   *ResolvedBlock
	TextBlocks []ResolvedBlock
}

const draftSystemInstruction = `Du bist ein erfahrener juristischer Mitarbeiter einer deutschen Anwaltskanzlei. Du entwirfst Schriftsätze in formellem Kanzleideutsch.

Regeln:
1. Verwende ausschließlich die bereitgestellten Informationen. Erfinde keine Tatsachen, Aktenzeichen oder Fundstellen.
2. Wenn eine Vorlage bereitgestellt wird, folge ihrer Struktur und Gliederung.
3. Bereitgestellte Textbausteine übernimmst du wortgleich an passender Stelle in den Entwurf.
4. Das Rubrum erstellst du aus den Angaben zur Akte. Fehlen Angaben, lasse die betreffende Zeile weg.
5. Gib nur den Schriftsatz selbst aus, ohne Kommentare oder Erläuterungen.`

const transcriptHeader = "--- Diktat ---"

// BuildDraftPrompt assembles the user prompt for a draft request. The system
// instruction is returned separately so providers that support a system role
// can use it.
func BuildDraftPrompt(input DraftInput) (system string, user string) {
	var b strings.Builder

	if input.Metadata != nil {
		b.WriteString("## Angaben zur Akte\n")
		writeMetaLine(&b, "Gericht", input.Metadata.Court)
		writeMetaLine(&b, "Aktenzeichen", input.Metadata.CaseNumber)
		writeMetaLine(&b, "Kläger", input.Metadata.Claimant)
		writeMetaLine(&b, "Beklagter", input.Metadata.Defendant)
		writeMetaLine(&b, "Gegenstand", input.Metadata.Subject)
		b.WriteString("\n")
	}

	if input.Template != nil {
		b.WriteString(fmt.Sprintf("## Vorlage: %s\n", input.Template.Name))
		b.WriteString(input.Template.Content)
		b.WriteString("\n\n")
	}

	if len(input.TextBlocks) > 0 {
		b.WriteString("## Textbausteine (wortgleich zu übernehmen)\n")
		for _, block := range input.TextBlocks {
			b.WriteString(fmt.Sprintf("[%s]\n%s\n\n", block.Name, block.Content))
		}
	}

	b.WriteString("## Notizen\n")
	b.WriteString(strings.TrimSpace(input.Notes))
	b.WriteString("\n")

	if strings.TrimSpace(input.Transcript) != "" {
		b.WriteString("\n")
		b.WriteString(transcriptHeader)
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(input.Transcript))
		b.WriteString("\n")
	}

	b.WriteString("\nErstelle daraus den vollständigen Schriftsatz.")

	return draftSystemInstruction, b.String()
}

func writeMetaLine(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.WriteString(fmt.Sprintf("%s: %s\n", label, value))
}

const citationSystemInstruction = `Du bist ein juristischer Rechercheassistent für deutsches Recht. Du schlägst zu einem Sachverhalt einschlägige Normen und Entscheidungen vor.

Antworte ausschließlich mit einem JSON-Array. Jedes Element hat genau diese Felder:
- "type": "paragraph" für Normen oder "judgment" für Entscheidungen
- "citation": die Fundstelle, z. B. "§ 536 BGB" oder "BGH, Urteil vom 12.03.2008 - VIII ZR 71/07"
- "explanation": ein Satz auf Deutsch, warum die Fundstelle einschlägig ist

Schlage höchstens %d Fundstellen vor. Gib nur sicher einschlägige Fundstellen an. Wenn keine passen, antworte mit [].`

// BuildCitationPrompt assembles the prompt pair for citation suggestions.
// maxSuggestions caps how many entries the model is asked for.
func BuildCitationPrompt(notes string, transcript string, maxSuggestions int) (system string, user string) {
	var b strings.Builder
	b.WriteString("## Sachverhalt\n")
	b.WriteString(strings.TrimSpace(notes))
	b.WriteString("\n")

	if strings.TrimSpace(transcript) != "" {
		b.WriteString("\n")
		b.WriteString(transcriptHeader)
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(transcript))
		b.WriteString("\n")
	}

	return fmt.Sprintf(citationSystemInstruction, maxSuggestions), b.String()
}
