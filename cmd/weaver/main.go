package main

import (
	"os"

	"github.com/simonhull/firebird-suite/weaver/fledge/output"
	"github.com/simonhull/firebird-suite/weaver/internal/commands"
)

func main() {
	env := commands.DefaultEnv()

	rootCmd := commands.RootCmd(env)
	rootCmd.AddCommand(commands.AuthCmd(env))
	rootCmd.AddCommand(commands.StorageCmd(env))
	rootCmd.AddCommand(commands.VersionCmd())

	err := rootCmd.Execute()
	env.Close()
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
