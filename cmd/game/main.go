package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/EhoAdan/Trabalho-1-de-SO/internal/config"
	"github.com/EhoAdan/Trabalho-1-de-SO/internal/draw"
	"github.com/EhoAdan/Trabalho-1-de-SO/internal/session"
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

	var opts session.Options
	if v := config.GetEnv("GAME_DIFFICULTY", ""); v != "" {
		d, err := config.ParseDifficulty(v)
		if err != nil {
			_ = term.Restore(fd, oldState)
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		opts.Difficulty = d
	}
	opts.Seed = config.GetEnvInt64("GAME_SEED", 0)

	reader := bufio.NewReader(os.Stdin)
	if err := session.Run(context.Background(), reader, os.Stdout, draw.StdoutSize, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
