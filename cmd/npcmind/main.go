package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joeycumines/npcmind/internal/command"
	"github.com/joeycumines/npcmind/internal/config"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := command.NewRegistry("npcmind")
	registry.Register(command.NewHelpCommand(registry))
	registry.Register(command.NewVersionCommand(version))
	registry.Register(command.NewConfigCommand(cfg, path))
	registry.Register(command.NewRunCommand(cfg))
	registry.Register(command.NewWatchCommand(cfg))

	return registry.Run(args, stdout, stderr)
}
