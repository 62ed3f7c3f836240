package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fjglira/issuebench/internal/domain"
	"github.com/fjglira/issuebench/internal/parser"
	"github.com/fjglira/issuebench/internal/pipeline"
	"github.com/fjglira/issuebench/internal/scanner"
)

var (
	compileExcludes  []string
	compileRecursive bool
)

// documentExtensions are the file types compile picks up in a directory.
var documentExtensions = []string{"md", "markdown", "adoc", "asciidoc"}

var compileCmd = &cobra.Command{
	Use:   "compile <path>",
	Short: "Compile local markdown or AsciiDoc documents and print the plans",
	Long: `Parses and compiles documents the same way an issue body is, and prints each
resulting plan as YAML. A directory is scanned for documents. Nothing is
installed or run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		comp, err := newCompiler(cfg)
		if err != nil {
			return err
		}

		files, err := scanner.NewScanner(documentExtensions, compileExcludes, compileRecursive).Scan(args[0])
		if err != nil {
			return err
		}
		if len(files) == 0 {
			log.Warnf("No documents found under %s", args[0])
			return nil
		}

		p := pipeline.New(pipeline.Deps{Registry: parser.NewDefaultRegistry(), Compiler: comp}, pipeline.Reactions{}, log)
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()

		for _, path := range files {
			content, err := os.ReadFile(path)
			if err != nil {
				return domain.NewErrorWithSuggestion("parse", path, 0,
					"failed to read file",
					"check that the file exists and has read permissions",
					err)
			}

			plan, err := p.Compile(path, filepath.Ext(path), content)
			if err != nil {
				return err
			}
			if plan.Title == "" {
				plan.Title = path
			}
			if err := enc.Encode(plan); err != nil {
				return fmt.Errorf("failed to encode plan: %w", err)
			}
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().StringSliceVar(&compileExcludes, "exclude", nil, "glob patterns to skip when scanning a directory")
	compileCmd.Flags().BoolVar(&compileRecursive, "recursive", true, "descend into subdirectories")
	rootCmd.AddCommand(compileCmd)
}
