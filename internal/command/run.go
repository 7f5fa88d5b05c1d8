package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/config"
	"github.com/joeycumines/npcmind/internal/logging"
	"github.com/joeycumines/npcmind/internal/sim"
)

// RunCommand runs the world headless and prints a summary.
type RunCommand struct {
	*BaseCommand
	config *config.Config
	sim    simFlags
	logs   logFlags
	ticks  int
}

// NewRunCommand creates a new run command.
func NewRunCommand(cfg *config.Config) *RunCommand {
	return &RunCommand{
		BaseCommand: NewBaseCommand(
			"run",
			"Run the simulation headless and print a summary",
			"run [options]",
		),
		config: cfg,
	}
}

// SetupFlags configures the flags for the run command.
func (c *RunCommand) SetupFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.ticks, "ticks", 0, "Number of ticks to simulate (default from config)")
	c.sim.setup(fs)
	c.logs.setup(fs)
}

// Execute runs the simulation.
func (c *RunCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		_, _ = fmt.Fprintf(stderr, "unexpected arguments: %v\n", args)
		return fmt.Errorf("unexpected arguments")
	}

	settings, err := c.sim.resolve(c.config)
	if err != nil {
		return err
	}
	ticks := c.ticks
	if ticks <= 0 {
		ticks = settings.Ticks
	}

	lc, err := resolveLogConfig(c.logs, c.config)
	if err != nil {
		return err
	}
	logger, closer, err := logging.Setup(lc.options, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	world, err := sim.NewWorld(settings, sim.WithLogger(logger))
	if err != nil {
		return err
	}
	defer world.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = world.Run(ctx, ticks)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "interrupted")
	}
	printSummary(stdout, world)
	return nil
}

func printSummary(w io.Writer, world *sim.World) {
	stats := world.Stats()
	_, _ = fmt.Fprintf(w, "Simulated %d ticks (%.1fs), seed %d\n\n",
		stats.Ticks, world.Now().Seconds(), world.Settings().Seed)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NPC\tGOAL\tACTION\tPOSITION\tRECORDS\tSTRONGEST")
	for _, n := range world.NPCs() {
		goal, action := "-", "-"
		if g := n.Planner().ActiveGoal(); g != nil {
			goal = g.Name()
		}
		if a := n.Planner().ActiveAction(); a != nil {
			action = a.Name()
		}
		strongest := "-"
		if r, ok := n.Engine().Strongest(); ok {
			strongest = fmt.Sprintf("%s %s %.2f", r.Key, r.Band(), r.Score)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			n.Name(), goal, action, n.Walker().Position(), n.Engine().Len(), strongest)
	}
	_ = tw.Flush()

	events := make([]string, 0, len(stats.Events))
	for e := awareness.EventSuspicious; e <= awareness.EventFullyLost; e++ {
		events = append(events, fmt.Sprintf("%s=%d", e, stats.Events[e]))
	}
	_, _ = fmt.Fprintf(w, "\nEvents: %s\n", strings.Join(events, " "))
	_, _ = fmt.Fprintf(w, "Sounds: %d (jumps %d)\n", stats.Sounds, stats.Jumps)
}
