package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tomz197/oranges/internal/loop"
	"github.com/tomz197/oranges/internal/storage"
	"golang.org/x/term"
)

func main() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts := loop.Options{}

	// Score persists across runs when the config dir is writable.
	if path, err := storage.DefaultPath(); err == nil {
		if store, err := storage.OpenFile(path); err == nil {
			opts.Store = store
		}
	}

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
