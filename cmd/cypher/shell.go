package main

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/graphbound/cypher-driver/cypher"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive statement shell",
	Long: `shell opens a transaction against the endpoint and executes each line
you type within it. Meta commands:

  :commit    commit the open transaction and start a new one
  :rollback  discard the open transaction and start a new one
  :quit      roll back and exit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		rl, err := readline.New("cypher> ")
		if err != nil {
			return err
		}
		defer rl.Close()

		cmd.Printf("Connected to %s\n", engine.URI())
		return runShell(cmd, engine, rl)
	},
}

func runShell(cmd *cobra.Command, engine *cypher.Engine, rl *readline.Instance) error {
	ctx := cmd.Context()
	tx := engine.Begin()
	defer func() {
		if !tx.Finished() {
			tx.Rollback(ctx)
		}
	}()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":exit":
			return nil
		case line == ":commit":
			if err := tx.Commit(ctx); err != nil {
				cmd.PrintErrln("Error:", err)
			} else {
				cmd.Println("Committed.")
			}
			tx = engine.Begin()
		case line == ":rollback":
			if err := tx.Rollback(ctx); err != nil {
				cmd.PrintErrln("Error:", err)
			} else {
				cmd.Println("Rolled back.")
			}
			tx = engine.Begin()
		case strings.HasPrefix(line, ":"):
			cmd.PrintErrf("Unknown command %s\n", line)
		default:
			result, err := tx.Execute(line, nil)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				continue
			}
			if err := tx.Process(ctx); err != nil {
				cmd.PrintErrln("Error:", err)
				tx = engine.Begin()
				continue
			}
			if err := printResult(cmd, result); err != nil {
				cmd.PrintErrln("Error:", err)
			}
		}
	}
}
