package export

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"meeting-scribe/internal/app/model"
)

const (
	fontName = "Times New Roman"
	bodySize = 12
)

// WriteDocx renders a meeting analysis as a Word document at outputPath.
func WriteDocx(analysis model.MeetingAnalysis, title, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addHeading(doc, title, 16)
	addBody(doc, fmt.Sprintf("Detected language: %s", analysis.Language))

	if analysis.ConversationFallback {
		addBody(doc, "Note: the conversation could only be reconstructed as a single block; review and edit manually.")
	} else if analysis.CoverageRatio < 0.95 {
		addBody(doc, fmt.Sprintf("Note: estimated conversation coverage is about %.0f%%; manual review recommended.", analysis.CoverageRatio*100))
	}

	if len(analysis.SummaryPoints) > 0 {
		addHeading(doc, "Summary", 14)
		for _, point := range analysis.SummaryPoints {
			addBody(doc, "• "+point)
		}
	}

	if len(analysis.ActionItems) > 0 {
		addHeading(doc, "Action items", 14)
		for i, item := range analysis.ActionItems {
			addBody(doc, fmt.Sprintf("%d. %s", i+1, item))
		}
	}

	if len(analysis.Keywords) > 0 {
		addHeading(doc, "Keywords", 14)
		addBody(doc, strings.Join(analysis.Keywords, ", "))
	}

	addHeading(doc, "Conversation", 14)
	for _, turn := range analysis.Conversation {
		p := doc.AddParagraph("")
		p.AddText(turn.Speaker).Font(fontName).Size(bodySize).Color("000000").Bold(true)

		addBody(doc, "Original: "+turn.OriginalText)
		if turn.TranslatedText != nil && *turn.TranslatedText != turn.OriginalText {
			addBody(doc, "Translation: "+*turn.TranslatedText)
		}
		if turn.Notes != nil {
			addBody(doc, "Notes: "+*turn.Notes)
		}
	}

	addHeading(doc, "Full transcript", 14)
	addBody(doc, analysis.Transcript)

	return doc.SaveTo(outputPath)
}

func addHeading(doc *docx.RootDoc, text string, size uint64) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(size).Color("000000").Bold(true)
}

func addBody(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(bodySize).Color("000000")
}
