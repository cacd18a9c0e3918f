package handler

import (
	"fmt"
	"strings"

	"translator/internal/domain"
	"translator/internal/report"
	"translator/internal/service"
)

const pageSize = 5

// formatEntry renders an entry as the word followed by numbered translations
func formatEntry(entry domain.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s", entry.Word)
	if len(entry.Translations) == 0 {
		b.WriteString("\n   (no translations)")
	}
	for i, translation := range entry.Translations {
		fmt.Fprintf(&b, "\n   %d. %s", i+1, translation)
	}
	return b.String()
}

// formatEntries renders entries separated by blank lines
func formatEntries(entries []domain.Entry) string {
	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = formatEntry(entry)
	}
	return strings.Join(parts, "\n\n")
}

// formatStats renders vocabulary usage
func formatStats(st service.Stats) string {
	return fmt.Sprintf(
		"📊 Vocabulary %q\n\nEntries: %d of %d\nTranslations: %d (up to %d per entry)\nUnsaved changes: %s",
		st.BaseName, st.Entries, st.Capacity, st.Translations, st.TranslationCapacity, yesNo(st.Dirty),
	)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// outcomeText renders err for a chat message
func outcomeText(err error) string {
	prefix := "❌ "
	if domain.IsWarning(err) {
		prefix = "⚠️ "
	}

	text := prefix + report.Message(err)
	if tip := report.Tip(err); tip != "" {
		text += "\n💡 " + strings.Replace(tip, `the "Add Entry" action`, "/add", 1)
	}
	return text
}

// pageSlice returns the entries on page (1-based, clamped) and the page count
func pageSlice(entries []domain.Entry, page int) ([]domain.Entry, int, int) {
	totalPages := (len(entries) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(entries))
	return entries[start:end], page, totalPages
}

// parseTranslateArgs splits "word translation words" at the first space
func parseTranslateArgs(payload string) (string, string, error) {
	word, translation, ok := strings.Cut(strings.TrimSpace(payload), " ")
	translation = strings.TrimSpace(translation)
	if !ok || word == "" || translation == "" {
		return "", "", fmt.Errorf("%w: expected a word and a translation", domain.ErrInvalidInput)
	}
	return word, translation, nil
}
