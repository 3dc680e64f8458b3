// Package main provides orgtext, a tool to parse, query and rewrite outline
// documents.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calvinalkan/orgtext/internal/cli"
)

// exitInterrupted is the exit code after a second interrupt.
const exitInterrupted = 130

func main() {
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, envMap(os.Environ()), cancelOnce(signals)))
}

// cancelOnce hands the first signal to the running command, which stops at
// its next safe point. Writes go through a rename, so a second signal exits
// right away without leaving a partial document behind.
func cancelOnce(signals <-chan os.Signal) <-chan os.Signal {
	first := make(chan os.Signal, 1)

	go func() {
		first <- <-signals

		<-signals
		os.Exit(exitInterrupted)
	}()

	return first
}

func envMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))

	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return env
}
