package analysis

import (
	"encoding/json"
	"strings"

	"meeting-scribe/internal/app/model"
)

// Payload mirrors the structured output requested from the analysis model.
type Payload struct {
	Language     string    `json:"language"`
	Summary      Summary   `json:"summary"`
	Conversation []RawTurn `json:"conversation"`
}

// Summary holds the model-produced summary artefacts.
type Summary struct {
	KeyPoints   []string `json:"key_points"`
	Keywords    []string `json:"keywords"`
	ActionItems []string `json:"action_items"`
}

// RawTurn is one conversation entry as returned by the model, before
// sanitation.
type RawTurn struct {
	Speaker        string  `json:"speaker"`
	OriginalText   string  `json:"original_text"`
	TranslatedText string  `json:"translated_text"`
	Notes          *string `json:"notes"`
}

// responseSchema is the JSON schema sent with every structured-output
// request so the model cannot drop required fields.
var responseSchema = json.RawMessage(`{
  "type": "object",
  "additionalProperties": false,
  "required": ["language", "summary", "conversation"],
  "properties": {
    "language": {"type": "string"},
    "summary": {
      "type": "object",
      "additionalProperties": false,
      "required": ["key_points", "keywords", "action_items"],
      "properties": {
        "key_points": {"type": "array", "items": {"type": "string"}},
        "keywords": {"type": "array", "items": {"type": "string"}},
        "action_items": {"type": "array", "items": {"type": "string"}}
      }
    },
    "conversation": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["speaker", "original_text", "translated_text", "notes"],
        "properties": {
          "speaker": {"type": "string"},
          "original_text": {"type": "string"},
          "translated_text": {"type": "string"},
          "notes": {"type": ["string", "null"]}
        }
      }
    }
  }
}`)

// ParsePayload decodes a structured-output body. A body that is not valid
// JSON yields an empty payload rather than an error so the retry loop can
// treat it as a failed attempt.
func ParsePayload(body string) Payload {
	var p Payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return Payload{}
	}
	return p
}

// SanitizeConversation normalizes the model's raw turns: missing speakers
// get positional labels, fields are trimmed, an empty translation falls back
// to the original text, and empty notes become nil.
func SanitizeConversation(raw []RawTurn) []model.ConversationTurn {
	sanitized := make([]model.ConversationTurn, 0, len(raw))
	for idx, turn := range raw {
		speaker := strings.TrimSpace(turn.Speaker)
		if speaker == "" {
			speaker = positionalSpeaker(idx)
		}

		original := strings.TrimSpace(turn.OriginalText)
		translated := strings.TrimSpace(turn.TranslatedText)
		if translated == "" {
			translated = original
		}

		var notes *string
		if turn.Notes != nil {
			if trimmed := strings.TrimSpace(*turn.Notes); trimmed != "" {
				notes = &trimmed
			}
		}

		sanitized = append(sanitized, model.ConversationTurn{
			Speaker:        speaker,
			OriginalText:   original,
			TranslatedText: &translated,
			Notes:          notes,
		})
	}
	return sanitized
}

// FallbackConversation wraps the whole transcript in a single synthetic turn
// used when structured reconstruction fails verification.
func FallbackConversation(transcript string) []model.ConversationTurn {
	original := strings.TrimSpace(transcript)
	translated := original
	return []model.ConversationTurn{{
		Speaker:        positionalSpeaker(0),
		OriginalText:   original,
		TranslatedText: &translated,
	}}
}

func positionalSpeaker(idx int) string {
	if idx < 26 {
		return "Speaker " + string(rune('A'+idx))
	}
	return "Speaker X"
}

func ensureStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
