package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDraftPrompt_IncludesAllSections(t *testing.T) {
	system, user := BuildDraftPrompt(DraftInput{
		Notes:      "Mietminderung wegen Schimmelbefall",
		Transcript: "Der Mandant berichtet von Feuchtigkeit im Schlafzimmer.",
		Metadata: &CaseMetadata{
			Court:      "AG München",
			CaseNumber: "412 C 1234/26",
			Claimant:   "Max Mustermann",
			Defendant:  "Hausverwaltung Meier GmbH",
		},
		Template: &ResolvedBlock{Name: "Klageschrift", Content: "I. Rubrum\nII. Anträge\nIII. Begründung"},
		TextBlocks: []ResolvedBlock{
			{Name: "HAFTUNG", Content: "Der Vermieter haftet gemäß § 536a BGB."},
		},
	})

	assert.Contains(t, system, "Schriftsätze")
	assert.Contains(t, user, "AG München")
	assert.Contains(t, user, "412 C 1234/26")
	assert.Contains(t, user, "## Vorlage: Klageschrift")
	assert.Contains(t, user, "II. Anträge")
	assert.Contains(t, user, "Der Vermieter haftet gemäß § 536a BGB.")
	assert.Contains(t, user, "Mietminderung wegen Schimmelbefall")
	assert.Contains(t, user, "--- Diktat ---")
	assert.Contains(t, user, "Feuchtigkeit im Schlafzimmer")
}

func TestBuildDraftPrompt_OmitsEmptySections(t *testing.T) {
	_, user := BuildDraftPrompt(DraftInput{Notes: "Kurze Notiz"})

	assert.NotContains(t, user, "## Vorlage")
	assert.NotContains(t, user, "Textbausteine")
	assert.NotContains(t, user, "--- Diktat ---")
	assert.NotContains(t, user, "Angaben zur Akte")
	assert.Contains(t, user, "Kurze Notiz")
}

func TestBuildDraftPrompt_SkipsBlankMetadataLines(t *testing.T) {
	_, user := BuildDraftPrompt(DraftInput{
		Notes:    "Notiz",
		Metadata: &CaseMetadata{Court: "LG Berlin"},
	})

	assert.Contains(t, user, "Gericht: LG Berlin")
	assert.NotContains(t, user, "Aktenzeichen:")
	assert.NotContains(t, user, "Kläger:")
}

func TestBuildCitationPrompt(t *testing.T) {
	system, user := BuildCitationPrompt("Kündigung wegen Eigenbedarf", "", 5)

	assert.Contains(t, system, "JSON-Array")
	assert.Contains(t, system, "höchstens 5")
	assert.Contains(t, user, "Kündigung wegen Eigenbedarf")
	assert.NotContains(t, user, "--- Diktat ---")
}
