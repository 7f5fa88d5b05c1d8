package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joeycumines/npcmind/internal/config"
	"github.com/joeycumines/npcmind/internal/logging"
	"github.com/joeycumines/npcmind/internal/sim"
	"github.com/joeycumines/npcmind/internal/termui"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when watch is not attached to a terminal.
var ErrNotTerminal = errors.New("watch requires an interactive terminal")

// WatchCommand runs the world behind the interactive debug board.
type WatchCommand struct {
	*BaseCommand
	config *config.Config
	sim    simFlags
	logs   logFlags

	isTerminal func(fd int) bool
	runProgram func(model tea.Model, opts ...tea.ProgramOption) error
}

// NewWatchCommand creates a new watch command.
func NewWatchCommand(cfg *config.Config) *WatchCommand {
	return &WatchCommand{
		BaseCommand: NewBaseCommand(
			"watch",
			"Run the simulation with the interactive debug board",
			"watch [options]",
		),
		config:     cfg,
		isTerminal: term.IsTerminal,
		runProgram: func(model tea.Model, opts ...tea.ProgramOption) error {
			_, err := tea.NewProgram(model, opts...).Run()
			return err
		},
	}
}

// SetupFlags configures the flags for the watch command.
func (c *WatchCommand) SetupFlags(fs *flag.FlagSet) {
	c.sim.setup(fs)
	c.logs.setup(fs)
}

// Execute runs the board until the user quits.
func (c *WatchCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}
	out, ok := stdout.(*os.File)
	if !ok || !c.isTerminal(int(out.Fd())) {
		return ErrNotTerminal
	}

	settings, err := c.sim.resolve(c.config)
	if err != nil {
		return err
	}
	lc, err := resolveLogConfig(c.logs, c.config)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(lc.options.Level)
	if err != nil {
		return err
	}
	ring := logging.NewRing(lc.bufferSize, level)
	lc.options.Ring = ring

	// the board owns the terminal, so logs only go to the ring and the file
	logger, closer, err := logging.Setup(lc.options, nil)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	board := termui.NewBoard()
	world, err := sim.NewWorld(settings, sim.WithLogger(logger), sim.WithReporter(board))
	if err != nil {
		return err
	}
	defer world.Close()

	model := termui.New(world, board, ring)
	if err := c.runProgram(model, tea.WithAltScreen(), tea.WithOutput(out)); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
