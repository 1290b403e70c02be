package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/lucas-albers-lz4/jsonimg/pkg/debug"
	"github.com/lucas-albers-lz4/jsonimg/pkg/exitcodes"
)

// main is the entry point of the application.
func main() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	debug.InitFromEnv()

	os.Exit(run(os.Args[1:]))
}

// run executes the root command and maps its error to an exit code.
func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitcodes.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if code, ok := exitcodes.IsExitCodeError(err); ok {
		return code
	}
	return exitcodes.ExitGeneralRuntimeError
}
