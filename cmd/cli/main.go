package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/jvirtane/barfeud/cmd/cli/questions"
	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(questions.Group)
	rootCmd.AddCommand(questions.Import)
	rootCmd.AddCommand(questions.Export)
	rootCmd.AddCommand(questions.FastMoneyImport)
	rootCmd.AddCommand(questions.FastMoneyExport)
	rootCmd.AddCommand(questions.Seed)
}

var rootCmd = &cobra.Command{
	Use:  "barfeud-cli",
	Long: `Command line utilities for Barfeud https://github.com/jvirtane/barfeud`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
