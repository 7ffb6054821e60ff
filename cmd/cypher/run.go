package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphbound/cypher-driver/cypher"
)

var runCmd = &cobra.Command{
	Use:   "run <statement>",
	Short: "Execute a single statement and print its records",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		params, err := parseParams(flagParams)
		if err != nil {
			return err
		}

		statement := strings.Join(args, " ")
		result, err := engine.Execute(cmd.Context(), statement, params)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&flagParams, "param", nil,
		"bound parameter as key=value, value parsed as JSON (repeatable)")
}

func printResult(cmd *cobra.Command, result *cypher.Result) error {
	keys, err := result.Keys()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		cmd.Println(strings.Join(keys, "\t"))
	}

	records, err := result.Records()
	if err != nil {
		return err
	}
	for _, record := range records {
		fields := make([]string, record.Len())
		for i := range fields {
			fields[i] = fmt.Sprint(record.GetByIndex(i))
		}
		cmd.Println(strings.Join(fields, "\t"))
	}
	return nil
}
