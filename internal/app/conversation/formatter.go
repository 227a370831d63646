package conversation

import (
	"fmt"
	"strings"

	"meeting-scribe/internal/app/model"
)

const (
	speakerPrefix = "Speaker "

	// defaultSpeakerKey groups chunks whose diarization tag is missing.
	defaultSpeakerKey = "speaker_0"
)

// speakerLabel maps the Nth distinct raw tag to a canonical label:
// Speaker A..Z, then Speaker X26, X27, ...
func speakerLabel(ordinal int) string {
	if ordinal < 26 {
		return speakerPrefix + string(rune('A'+ordinal))
	}
	return fmt.Sprintf("%sX%d", speakerPrefix, ordinal)
}

// LabelSpeakers relabels raw diarization tags (SPEAKER_00, speaker_0, ...)
// to canonical Speaker A/B/... labels in order of first appearance. It
// returns the relabeled chunks and the raw-tag mapping.
func LabelSpeakers(chunks []model.TranscriptChunk) ([]model.TranscriptChunk, map[string]string) {
	mapping := make(map[string]string)
	relabeled := make([]model.TranscriptChunk, 0, len(chunks))

	for _, chunk := range chunks {
		key := chunk.Speaker
		if key == "" {
			key = defaultSpeakerKey
		}
		if _, ok := mapping[key]; !ok {
			mapping[key] = speakerLabel(len(mapping))
		}
		chunk.Speaker = mapping[key]
		relabeled = append(relabeled, chunk)
	}
	return relabeled, mapping
}

// MergeRuns collapses adjacent chunks sharing the same speaker label into a
// single turn, space-joining their texts. Translations, when supplied, are
// joined the same way; a nil translations slice leaves TranslatedText nil
// for every turn. Comparison is exact string equality on the relabeled tag.
func MergeRuns(chunks []model.TranscriptChunk, translations []string) []model.ConversationTurn {
	var dialogue []model.ConversationTurn

	for idx, chunk := range chunks {
		var translated string
		hasTranslation := translations != nil && idx < len(translations)
		if hasTranslation {
			translated = translations[idx]
		}

		if n := len(dialogue); n > 0 && dialogue[n-1].Speaker == chunk.Speaker {
			last := &dialogue[n-1]
			last.OriginalText = strings.TrimSpace(last.OriginalText + " " + chunk.Text)
			if translated != "" {
				existing := ""
				if last.TranslatedText != nil {
					existing = *last.TranslatedText
				}
				joined := strings.TrimSpace(existing + " " + translated)
				last.TranslatedText = &joined
			}
			continue
		}

		speaker := chunk.Speaker
		if speaker == "" {
			speaker = speakerLabel(0)
		}
		turn := model.ConversationTurn{
			Speaker:      speaker,
			OriginalText: chunk.Text,
		}
		if hasTranslation {
			t := translated
			turn.TranslatedText = &t
		}
		dialogue = append(dialogue, turn)
	}
	return dialogue
}
