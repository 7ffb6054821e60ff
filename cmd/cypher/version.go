package main

import (
	"github.com/spf13/cobra"

	"github.com/graphbound/cypher-driver/rest"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the driver version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("cypher-driver " + rest.Version)
	},
}
