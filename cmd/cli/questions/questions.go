// Package questions holds the CLI commands for managing the question
// library: importing packs hosts share as CSV or JSON, exporting them back
// out, and seeding the starter packs.
package questions

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/game"
	"github.com/jvirtane/barfeud/internal/importexport"
	"github.com/jvirtane/barfeud/internal/logging"
	"github.com/jvirtane/barfeud/internal/repositories"
	"github.com/jvirtane/barfeud/internal/seed"
	"github.com/jvirtane/barfeud/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "questions",
	Title: "Question library operations",
}

func init() {
	Import.Flags().String("set", "", "name for the imported question set (defaults to the file name)")
	Export.Flags().String("out", "", "output file (defaults to stdout)")
	Export.Flags().String("format", "json", "export format: json or csv")
	FastMoneyExport.Flags().String("out", "", "output file (defaults to stdout)")
}

func openRepository(ctx context.Context) (*repositories.QuestionRepository, func(), error) {
	url, ok := os.LookupEnv("BARFEUD_SQLITE_URL")
	if !ok {
		url = "./barfeud.sqlite"
	}
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	})))
	db, err := sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open database", slog.String("url", url))
	}
	closeDB := func() {
		_ = db.Close()
	}
	return repositories.NewQuestionRepository(db, logger), closeDB, nil
}

var Import = &cobra.Command{
	Use:     "import [file]",
	GroupID: "questions",
	Short:   "Import a question set",
	Long:    `Imports board questions from a CSV or JSON file into the question library.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		setName, err := cmd.Flags().GetString("set")
		if err != nil {
			return errors.Wrap(err, "read set flag")
		}
		if setName == "" {
			setName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "read file", slog.String("path", path))
		}

		var questions []game.Question
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			questions, err = importexport.ParseCSV(strings.NewReader(string(data)))
		} else {
			questions, err = importexport.ParseJSON(data)
		}
		if err != nil {
			return errors.Wrap(err, "parse questions", slog.String("path", path))
		}

		ctx := cmd.Context()
		repo, closeDB, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		if err = repo.ImportSet(ctx, setName, questions); err != nil {
			return errors.Wrap(err, "import set", slog.String("set", setName))
		}
		cmd.Printf("imported %d questions into set %q\n", len(questions), setName)
		return nil
	},
}

var Export = &cobra.Command{
	Use:     "export [set]",
	GroupID: "questions",
	Short:   "Export a question set",
	Long:    `Exports a question set as JSON or CSV in the interchange format hosts share.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setName := args[0]
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return errors.Wrap(err, "read format flag")
		}

		ctx := cmd.Context()
		repo, closeDB, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		set, err := repo.GetSet(ctx, setName)
		if err != nil {
			return errors.Wrap(err, "get set", slog.String("set", setName))
		}

		out, closeOut, err := outputWriter(cmd)
		if err != nil {
			return err
		}
		defer closeOut()

		switch format {
		case "csv":
			return importexport.WriteCSV(out, set.Questions)
		case "json":
			return importexport.WriteJSON(out, set.Name, set.Questions)
		default:
			return errors.New("unknown format", slog.String("format", format))
		}
	},
}

var FastMoneyImport = &cobra.Command{
	Use:     "fast-money-import [file]",
	GroupID: "questions",
	Short:   "Replace the fast money pack",
	Long:    `Replaces the fast money pack with the prompts from a JSON file.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "read file", slog.String("path", args[0]))
		}
		questions, err := importexport.ParseFastMoneyJSON(data)
		if err != nil {
			return errors.Wrap(err, "parse fast money pack")
		}

		ctx := cmd.Context()
		repo, closeDB, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		if err = repo.ReplaceFastMoney(ctx, questions); err != nil {
			return errors.Wrap(err, "replace fast money pack")
		}
		cmd.Printf("replaced fast money pack with %d prompts\n", len(questions))
		return nil
	},
}

var FastMoneyExport = &cobra.Command{
	Use:     "fast-money-export",
	GroupID: "questions",
	Short:   "Export the fast money pack",
	Long:    `Exports the fast money pack as JSON.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, closeDB, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		questions, err := repo.FastMoney(ctx)
		if err != nil {
			return errors.Wrap(err, "load fast money pack")
		}

		out, closeOut, err := outputWriter(cmd)
		if err != nil {
			return err
		}
		defer closeOut()

		return importexport.WriteFastMoneyJSON(out, "fast-money", questions)
	},
}

var Seed = &cobra.Command{
	Use:     "seed",
	GroupID: "questions",
	Short:   "Load the starter packs",
	Long:    `Loads the starter question set and fast money pack into an empty library.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, closeDB, err := openRepository(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		if err = repo.EnsureSeeded(ctx); err != nil {
			return errors.Wrap(err, "seed library")
		}
		cmd.Printf("library seeded with %q and the default fast money pack\n", seed.SetName)
		return nil
	},
}

// outputWriter resolves the --out flag into a writer, defaulting to stdout.
func outputWriter(cmd *cobra.Command) (io.Writer, func(), error) {
	path, err := cmd.Flags().GetString("out")
	if err != nil {
		return nil, nil, errors.Wrap(err, "read out flag")
	}
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create output file", slog.String("path", path))
	}
	return file, func() { _ = file.Close() }, nil
}
