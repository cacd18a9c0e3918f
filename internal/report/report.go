package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"translator/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const unknownError = "The program encountered an unknown error."

// messages maps refinements first, then taxonomy members, to what the user reads
var messages = []struct {
	err  error
	text string
}{
	{domain.ErrUnknownAction, "Unknown ID, please pick from the provided options."},
	{domain.ErrInvalidFileName, "The file name is invalid. Use at most 27 characters and no path separators."},
	{domain.ErrDuplicateWord, "An entry with this word already exists."},
	{domain.ErrDuplicateTranslation, "The entry already contains this translation."},
	{domain.ErrFileCreationFailed, "The program could not create or overwrite the file."},
	{domain.ErrFileReadingFailed, "The program could not open and read the file."},
	{domain.ErrNoEntriesPresent, "No entries are present at the moment."},
	{domain.ErrMaxedEntries, "You have reached the maximum number of entries."},
	{domain.ErrMaxedTranslations, "You have reached the maximum number of translations."},
	{domain.ErrNoEntriesWithTranslation, "There's no entry containing the translation you provided."},
	{domain.ErrNoEntriesWithWord, "There's no entry containing the word you provided."},
}

var tips = map[*domain.Outcome]string{
	domain.ErrNoEntriesWithTranslation: `Use the "Add Entry" action to add an entry containing the translation.`,
	domain.ErrNoEntriesWithWord:        `Use the "Add Entry" action to add an entry containing the word.`,
}

// Message returns the user-facing text for err
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.text
		}
	}

	if errors.Is(err, domain.ErrInvalidInput) {
		detail := strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
		return fmt.Sprintf("The input is invalid: %s.", detail)
	}

	return unknownError
}

// Tip returns a hint for resolving err, or an empty string
func Tip(err error) string {
	return tips[domain.Classify(err)]
}

// Reporter prints outcomes and entries to a terminal
type Reporter struct {
	out io.Writer

	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	tipStyle     lipgloss.Style
	successStyle lipgloss.Style
	wordStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	cellStyle    lipgloss.Style
}

// New creates a reporter writing to out. Colors are dropped when out is not a terminal.
func New(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:          out,
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warningStyle: r.NewStyle().Foreground(lipgloss.Color("11")),
		tipStyle:     r.NewStyle().Foreground(lipgloss.Color("10")),
		successStyle: r.NewStyle().Foreground(lipgloss.Color("10")),
		wordStyle:    r.NewStyle().Bold(true).Underline(true),
		headerStyle:  r.NewStyle().Bold(true).Padding(0, 1),
		cellStyle:    r.NewStyle().Padding(0, 1),
	}
}

// Report prints err as an error or a warning depending on its severity.
// A nil err prints nothing.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	if domain.IsWarning(err) {
		r.Warning(err)
		return
	}
	r.Error(err)
}

func (r *Reporter) Error(err error) {
	fmt.Fprintln(r.out, r.errorStyle.Render("ERROR: "+Message(err)))
}

func (r *Reporter) Warning(err error) {
	fmt.Fprintln(r.out, r.warningStyle.Render(Message(err)))
	if tip := Tip(err); tip != "" {
		fmt.Fprintln(r.out, r.tipStyle.Render("TIP: "+tip))
	}
}

func (r *Reporter) Success(msg string) {
	fmt.Fprintln(r.out, r.successStyle.Render(msg))
}

// Println prints msg without styling
func (r *Reporter) Println(msg string) {
	fmt.Fprintln(r.out, msg)
}

// Entry prints the word followed by a numbered table of its translations
func (r *Reporter) Entry(entry domain.Entry) {
	fmt.Fprintln(r.out, r.RenderEntry(entry))
}

// Entries prints every entry, separated by blank lines
func (r *Reporter) Entries(entries []domain.Entry) {
	for i, entry := range entries {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		r.Entry(entry)
	}
}

// RenderEntry returns what Entry prints
func (r *Reporter) RenderEntry(entry domain.Entry) string {
	title := r.wordStyle.Render(entry.Word)
	if len(entry.Translations) == 0 {
		return title + "\n(no translations)"
	}

	rows := make([][]string, len(entry.Translations))
	for i, translation := range entry.Translations {
		rows[i] = []string{strconv.Itoa(i + 1), translation}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Translation").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.headerStyle
			}
			return r.cellStyle
		})

	return title + "\n" + t.String()
}
