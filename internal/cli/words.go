package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordwall/pkg/errors"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

// stdin is read by confirmation prompts. Tests replace it.
var stdin io.Reader = os.Stdin

// withStore opens the store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(*vocab.Store) error) error {
	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// addCommand creates the "add" command.
func (c *CLI) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <word> [translation]",
		Short: "Add a word",
		Long: `Add a word with its translation.

Without a translation, the configured provider (translate.provider) is asked
for a suggestion. This needs OPENAI_API_KEY or GEMINI_API_KEY.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			word := args[0]
			var translation string
			if len(args) == 2 {
				translation = args[1]
			}
			return c.withStore(ctx, func(store *vocab.Store) error {
				if strings.TrimSpace(translation) == "" {
					tr, err := c.suggest(ctx, word)
					if err != nil {
						return err
					}
					translation = tr
				}
				w, err := store.Add(ctx, word, translation)
				if err != nil {
					return err
				}
				printSuccess("Added %s", StyleHighlight.Render(w.String()))
				return nil
			})
		},
	}
}

func (c *CLI) suggest(ctx context.Context, word string) (string, error) {
	if err := errors.ValidateWord(word); err != nil {
		return "", err
	}
	tr := c.newTranslator(ctx)
	if tr == nil {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"translation required (or set an API key for %s suggestions)", c.settings().Translate.Provider)
	}

	spin := startSpinner(ctx, "Asking "+tr.Provider().Name()+"...")
	out, err := tr.Suggest(ctx, word)
	if err != nil {
		spin.fail("No suggestion")
		return "", err
	}
	spin.done()
	printInfo("Suggested %s", StyleHighlight.Render(out))
	return out, nil
}

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		mastered, unmastered, asJSON bool
		search                       string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List words",
		Long: `List words in order.

--search keeps the words whose text or translation contains the keyword,
ignoring case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store *vocab.Store) error {
				words := vocab.Search(filterWords(store.All(), mastered, unmastered), search)
				if asJSON {
					enc := json.NewEncoder(stdout)
					enc.SetIndent("", "  ")
					enc.SetEscapeHTML(false)
					return enc.Encode(words)
				}
				switch {
				case len(words) == 0 && strings.TrimSpace(search) != "":
					printInfo("No words match %q", strings.TrimSpace(search))
					return nil
				case len(words) == 0:
					printInfo("No words")
					return nil
				}
				fmt.Fprintln(stdout, wordTable(words))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&mastered, "mastered", false, "only mastered words")
	cmd.Flags().BoolVar(&unmastered, "unmastered", false, "only unmastered words")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only words or translations containing `keyword`")
	cmd.MarkFlagsMutuallyExclusive("mastered", "unmastered")
	return cmd
}

func filterWords(words []vocab.Word, mastered, unmastered bool) []vocab.Word {
	if !mastered && !unmastered {
		return words
	}
	out := words[:0:0]
	for _, w := range words {
		if w.Mastered == mastered {
			out = append(out, w)
		}
	}
	return out
}

// editCommand creates the "edit" command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <word|index|id> <word> <translation>",
		Short: "Change a word and its translation",
		Long:  "Change a word and its translation. The mastered state is kept.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store *vocab.Store) error {
				old, err := store.Lookup(args[0])
				if err != nil {
					return err
				}
				w, err := store.Update(ctx, old.ID, args[1], args[2])
				if err != nil {
					return err
				}
				printSuccess("Updated %s", StyleHighlight.Render(w.String()))
				return nil
			})
		},
	}
}

// removeCommand creates the "remove" command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <word|index|id>...",
		Aliases: []string{"rm"},
		Short:   "Remove words",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store *vocab.Store) error {
				// Resolve every reference first so indexes refer to the
				// list as the user saw it.
				targets, err := lookupAll(store, args)
				if err != nil {
					return err
				}
				for _, w := range targets {
					if _, err := store.Remove(ctx, w.ID); err != nil {
						return err
					}
					printSuccess("Removed %s", w.Text)
				}
				return nil
			})
		},
	}
}

func lookupAll(store *vocab.Store, refs []string) ([]vocab.Word, error) {
	seen := make(map[string]bool, len(refs))
	var out []vocab.Word
	for _, ref := range refs {
		w, err := store.Lookup(ref)
		if err != nil {
			return nil, err
		}
		if !seen[w.ID] {
			seen[w.ID] = true
			out = append(out, w)
		}
	}
	return out, nil
}

// masterCommand creates the "master" or "unmaster" command.
func (c *CLI) masterCommand(mastered bool) *cobra.Command {
	use, short := "master", "Mark words as mastered"
	if !mastered {
		use, short = "unmaster", "Mark words as not yet mastered"
	}

	return &cobra.Command{
		Use:   use + " <word|index|id>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store *vocab.Store) error {
				targets, err := lookupAll(store, args)
				if err != nil {
					return err
				}
				for _, t := range targets {
					w, changed, err := store.SetMastered(ctx, t.ID, mastered)
					if err != nil {
						return err
					}
					if !changed {
						printDetail("%s is already %s", w.Text, w.State())
						continue
					}
					printSuccess("%s is now %s", StyleHighlight.Render(w.Text), w.State())
				}
				return nil
			})
		},
	}
}

// resetCommand creates the "reset" command.
func (c *CLI) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Mark every word as not yet mastered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store *vocab.Store) error {
				n, err := store.ResetMastered(ctx)
				if err != nil {
					return err
				}
				printSuccess("Reset %d words", n)
				return nil
			})
		},
	}
}

// clearCommand creates the "clear" command.
func (c *CLI) clearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store *vocab.Store) error {
				if !yes && !confirm(fmt.Sprintf("Remove all %d words?", store.Len())) {
					printWarning("Aborted")
					return nil
				}
				if err := store.Clear(ctx); err != nil {
					return err
				}
				printSuccess("Cleared all words")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a yes/no question on stdin. Anything but y or yes is no.
func confirm(question string) bool {
	fmt.Fprint(stdout, question+" [y/N] ")
	line, _ := bufio.NewReader(stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <word|index|id>",
		Short: "Print a word's translation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store *vocab.Store) error {
				w, err := store.Lookup(args[0])
				if err != nil {
					return err
				}
				printKeyValue(w.Text, StyleHighlight.Render(w.Translation))
				printDetail("%s · added %s", w.State(), w.CreatedAt.Format("2006-01-02"))
				return nil
			})
		},
	}
}

// statsCommand creates the "stats" command.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store *vocab.Store) error {
				printStats(store.Stats())
				return nil
			})
		},
	}
}
