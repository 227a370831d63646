package analysis

import (
	"fmt"

	"meeting-scribe/internal/app/conversation"
)

const systemPrompt = "You are an assistant that rewrites meeting transcripts as structured notes. " +
	"Break the transcript into discrete speaker turns and infer different speakers when the " +
	"language indicates a change in perspective (for example questions versus answers). " +
	"Stay faithful to the original speech: never abridge or skip any part of the transcript. " +
	"Include concise action items."

func userPrompt(transcript, targetLanguage string) string {
	return fmt.Sprintf(
		"Transcript:\n%s\n\n"+
			"Produce key points, keywords and action items in %s, and a Speaker A/B/... "+
			"conversation log. Output JSON with the fields language, summary.key_points, "+
			"summary.keywords, summary.action_items and conversation. Each conversation entry "+
			"needs speaker, original_text, translated_text (in %s) and notes (nullable). "+
			"Split turns by meaning; the concatenated original_text fields must cover the "+
			"entire transcript, allowing only sentence splitting and light punctuation fixes, "+
			"never omissions or invented content. When multiple speakers are apparent, label "+
			"them Speaker A/B/...; keep a single speaker when unsure. Leave notes null unless "+
			"a clarification is genuinely needed.",
		transcript, targetLanguage, targetLanguage,
	)
}

func correctivePrompt(transcript string, m conversation.Metrics) string {
	return fmt.Sprintf(
		"The previous conversation output did not fully cover the transcript: coverage was "+
			"about %.0f%% and similarity about %.0f%%. Re-split the transcript and emit every "+
			"part verbatim with its translation, so that the concatenated original_text fields "+
			"match the transcript in length and meaning with nothing left out:\n%s",
		m.CoverageRatio*100, m.Similarity*100, transcript,
	)
}
