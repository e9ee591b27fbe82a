package cli

import (
	"time"

	"github.com/spf13/cobra"

	vocabio "github.com/matzehuels/wordwall/pkg/io"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

// importCommand creates the "import" command.
func (c *CLI) importCommand() *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import words from JSON, YAML or text",
		Long: `Import words from a file. The format follows the extension:

  .json         [{"word": "...", "translation": "...", "mastered": false}]
  .yaml, .yml   the same list in YAML
  .txt          one "word = translation" pair per line

The import replaces the current list unless --merge is given, in which case
new words are appended and duplicates skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			words, err := vocabio.Import(args[0])
			if err != nil {
				return err
			}
			return c.withStore(ctx, func(store *vocab.Store) error {
				if merge {
					n, err := store.Merge(ctx, words)
					if err != nil {
						return err
					}
					printSuccess("Merged %d new words", n)
					printDetail("%d skipped as duplicates · %d total", len(words)-n, store.Len())
					return nil
				}
				if err := store.ReplaceAll(ctx, words); err != nil {
					return err
				}
				printSuccess("Imported %d words", store.Len())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "append to the current list instead of replacing it")
	return cmd
}

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export words to JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store *vocab.Store) error {
				path := output
				if path == "" {
					path = vocabio.DefaultExportName(time.Now(), format)
				}
				if err := vocabio.Export(path, store.All(), format); err != nil {
					return err
				}
				printSuccess("Exported %d words", store.Len())
				printFile(path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: vocabulary_YYYY-MM-DD.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", vocabio.FormatJSON, "output format: json, yaml")
	return cmd
}
