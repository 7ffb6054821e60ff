package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/graphbound/cypher-driver/cypher"
	"github.com/graphbound/cypher-driver/rest"
)

var (
	flagURI      string
	flagUsername string
	flagPassword string
	flagVerbose  bool
	flagParams   []string
)

var rootCmd = &cobra.Command{
	Use:   "cypher",
	Short: "Statement client for a transactional graph endpoint",
	Long: `cypher executes statements against a graph database's transactional
HTTP endpoint, either one-shot or in an interactive shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagURI, "uri",
		"http://localhost:7474/db/data/transaction", "transactional endpoint URI")
	rootCmd.PersistentFlags().StringVarP(&flagUsername, "username", "u", "", "basic auth username")
	rootCmd.PersistentFlags().StringVarP(&flagPassword, "password", "p", "", "basic auth password")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger() (*zap.Logger, error) {
	if !flagVerbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	return cfg.Build()
}

func newEngine() (*cypher.Engine, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}

	clientOpts := rest.DefaultClientOptions()
	clientOpts.Username = flagUsername
	clientOpts.Password = flagPassword
	clientOpts.Logger = log

	return cypher.NewEngine(flagURI, &cypher.Options{
		Resolver: rest.NewClient(&clientOpts),
		Logger:   log,
	}), nil
}

// parseParams turns repeated key=value flags into bound parameters. Values
// are decoded as JSON when possible and fall back to plain strings.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			decoded = value
		}
		params[key] = decoded
	}
	return params, nil
}
