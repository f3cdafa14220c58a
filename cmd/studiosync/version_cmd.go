package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiosync/studiosync/internal/version"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Detailed())
		},
	}
}
