// gputemp polls GPU temperature sensors and reports them live, as JSON,
// or as a one-line digest. NVIDIA's management library is the preferred
// source; hosts without it fall back to the OS sensor table.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/luki/gputemp/internal/monitor"
	"github.com/luki/gputemp/internal/render"
	"github.com/luki/gputemp/internal/sensor"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// exitError carries an exit code for failures that were already reported
// on stderr.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }
func (e exitError) ExitCode() int { return e.code }

func run(args []string) error {
	flags := pflag.NewFlagSet("gputemp", pflag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "print one snapshot as JSON and exit")
	shortOut := flags.BoolP("short", "s", false, "print a one-line summary and exit")
	flags.BoolP("help", "h", false, "show help")
	flags.Usage = func() { printHelp(flags) }

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flags)
			return nil
		}
		return err
	}

	if help, _ := flags.GetBool("help"); help {
		printHelp(flags)
		return nil
	}

	if rest := flags.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	if *jsonOut && *shortOut {
		fmt.Fprintln(os.Stderr, "error: --json and --short are mutually exclusive")
		return exitError{1}
	}

	collector := sensor.NewCollector()

	switch {
	case *jsonOut:
		return runJSON(collector)
	case *shortOut:
		return runShort(collector)
	default:
		return runLive(collector)
	}
}

func runJSON(c *sensor.Collector) error {
	snap := c.Poll()
	if err := reportFailedPoll(os.Stderr, snap); err != nil {
		return err
	}
	if err := render.WriteJSON(os.Stdout, snap); err != nil {
		fmt.Fprintf(os.Stderr, "error: encoding snapshot: %v\n", err)
		return exitError{1}
	}
	return nil
}

func runShort(c *sensor.Collector) error {
	snap := c.Poll()
	if err := reportFailedPoll(os.Stderr, snap); err != nil {
		return err
	}
	fmt.Println(render.ShortLine(snap))
	return nil
}

// reportFailedPoll prints the snapshot diagnostic to w when a one-shot poll
// produced a problem and nothing to show. A diagnostic next to real readings
// (a vendor failure papered over by the fallback) is not fatal.
func reportFailedPoll(w io.Writer, snap sensor.Snapshot) error {
	if snap.Diagnostic == "" || len(snap.Readings) > 0 {
		return nil
	}
	fmt.Fprintln(w, snap.Diagnostic)
	if len(snap.SensorKeys) > 0 {
		fmt.Fprintf(w, "Available sensor keys: %s\n", strings.Join(snap.SensorKeys, ", "))
	}
	return exitError{1}
}

func runLive(c *sensor.Collector) error {
	if err := monitor.Run(c); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	fmt.Println("Monitoring stopped.")
	return nil
}

func printHelp(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gputemp reads and displays GPU temperatures.

Reads GPU temperatures through the NVIDIA management library when it is
available, falling back to the operating system's generic temperature
sensors (amdgpu, nouveau, and friends). By default it runs a live view
that refreshes every two seconds; press q or ctrl+c to stop.

Usage:
  gputemp [flags]

Examples:
  # Live table, refreshed every 2 seconds
  gputemp

  # One snapshot as pretty-printed JSON
  gputemp --json

  # One-line summary, e.g. for a status bar
  gputemp -s

Flags:
`)
	flags.SetOutput(os.Stderr)
	flags.PrintDefaults()
}
