package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/autoinsight-io/autoinsight/internal/cli"
	"github.com/autoinsight-io/autoinsight/pkg/autoinsight"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(autoinsight.ExitPanic)
		}
	}()

	if os.Getenv("AUTOINSIGHT_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(autoinsight.ExitCodeForError(err))
	}
}
