package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordwall/pkg/vocab"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// WordListModel - Interactive flashcard browser
// =============================================================================

// toggleFunc flips the mastered state of the word with the given ID.
type toggleFunc func(id string, mastered bool) (vocab.Word, error)

// toggledMsg reports the outcome of a toggle.
type toggledMsg struct {
	word vocab.Word
	err  error
}

// WordListModel is the bubbletea model for browsing words. Translations
// stay hidden until revealed, so the list doubles as a flashcard deck.
type WordListModel struct {
	Words    []vocab.Word
	Cursor   int
	Offset   int
	Height   int
	Revealed bool
	Status   string

	toggle toggleFunc
}

// NewWordListModel creates a browser over words.
func NewWordListModel(words []vocab.Word, toggle toggleFunc) WordListModel {
	return WordListModel{Words: words, Height: 15, toggle: toggle}
}

func (m WordListModel) Init() tea.Cmd {
	return nil
}

func (m WordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Words)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "t":
			m.Revealed = !m.Revealed
		case " ", "enter", "m":
			if len(m.Words) == 0 || m.toggle == nil {
				return m, nil
			}
			w := m.Words[m.Cursor]
			toggle := m.toggle
			return m, func() tea.Msg {
				updated, err := toggle(w.ID, !w.Mastered)
				return toggledMsg{word: updated, err: err}
			}
		}
	case toggledMsg:
		if msg.err != nil {
			m.Status = styleIconError.Render(iconError) + " " + msg.err.Error()
			return m, nil
		}
		for i := range m.Words {
			if m.Words[i].ID == msg.word.ID {
				m.Words[i] = msg.word
			}
		}
		m.Status = styleIconSuccess.Render(iconSuccess) + " " + msg.word.Text + " is now " + msg.word.State().String()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m WordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Words"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle mastered  t show translations  q quit"))
	b.WriteString("\n\n")

	if len(m.Words) == 0 {
		b.WriteString(listDimStyle.Render("  No words yet. Add some with: wordwall add <word> <translation>"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Words))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		w := m.Words[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		translation := "·····"
		if m.Revealed {
			translation = w.Translation
		}
		mark := ""
		if w.Mastered {
			mark = iconMastered
		}
		rows = append(rows, []string{cursor, w.Text, translation, mark})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Word", "Translation", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Words) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Words[idx].Mastered {
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Words))))
	if m.Status != "" {
		b.WriteString("  " + m.Status)
	}
	return b.String()
}

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse words and toggle mastered interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store *vocab.Store) error {
				model := NewWordListModel(store.All(), storeToggle(ctx, store))
				if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
					return err
				}
				printStats(store.Stats())
				return nil
			})
		},
	}
}

func storeToggle(ctx context.Context, store *vocab.Store) toggleFunc {
	return func(id string, mastered bool) (vocab.Word, error) {
		w, _, err := store.SetMastered(ctx, id, mastered)
		return w, err
	}
}
