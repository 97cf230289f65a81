package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/wbrown/imgedit"
	"github.com/wbrown/imgedit/imageutil"
	"github.com/wbrown/imgedit/internal/config"
	"golang.org/x/term"
)

const usage = `Usage: imgedit [flags] [command args...]

Runs one command given as arguments, the commands in -script, or reads
commands from standard input. Commands:

  load <path> <name>                 save <path> <name>
  brighten <n> <src> <dst>           darken <n> <src> <dst>
  horizontal-flip <src> <dst>        vertical-flip <src> <dst>
  red-component <src> <dst>          (also green, blue, value,
                                      intensity, luma)
  blur <src> <dst>                   sharpen <src> <dst>
  greyscale <src> <dst>              sepia <src> <dst>
  downsize <w%> <h%> <src> <dst>     histogram <path> <name>

Interactive only:

  list                               info <name>
  quit

Flags:
`

func main() {
	configFile := flag.String("config", "",
		"Path to the YAML config (default: imgedit.yaml if present)")
	scriptFile := flag.String("script", "",
		"Path to a script with one command per line")
	verbose := flag.Bool("v", false,
		"Log every operation")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
	} else {
		cfg, err = config.LoadOptional("")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	resolved, err := cfg.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	level := resolved.LogLevel
	if *verbose {
		level = slog.LevelDebug
	}
	imgedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level})))

	model := imgedit.NewModel(resolved.ModelOptions()...)

	switch {
	case flag.NArg() > 0:
		cmd, err := imgedit.ParseCommand(strings.Join(flag.Args(), " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		if err := model.Run(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *scriptFile != "":
		if err := runScript(model, *scriptFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if err := repl(model, os.Stdin, os.Stdout, interactive); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// runScript parses the whole script before running any of it.
func runScript(model *imgedit.Model, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cmds, err := imgedit.ParseScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return model.RunAll(cmds)
}

// repl reads commands line by line. With a terminal attached it prompts
// and keeps going after a failed command; otherwise the first failure
// ends the run.
func repl(model *imgedit.Model, in io.Reader, out io.Writer, interactive bool) error {
	scanner := bufio.NewScanner(in)
	prompt := func() {
		if interactive {
			fmt.Fprint(out, "> ")
		}
	}

	prompt()
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		err := execLine(model, out, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			if !interactive {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		prompt()
	}
	return scanner.Err()
}

var errQuit = errors.New("quit")

// execLine runs one line, handling the commands that only make sense at
// the prompt.
func execLine(model *imgedit.Model, out io.Writer, line string) error {
	if imgedit.IsBlankOrComment(line) {
		return nil
	}
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return errQuit
	case "list":
		for _, name := range model.Names() {
			img, err := model.Image(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-16s %dx%d\n", name, img.Width(), img.Height())
		}
		return nil
	case "info":
		if len(fields) != 2 {
			return imageutil.InvalidArgumentError("info", "info takes 1 argument, got %d", len(fields)-1)
		}
		return printInfo(model, out, fields[1])
	}

	cmd, err := imgedit.ParseCommand(line)
	if err != nil {
		return err
	}
	return model.Run(cmd)
}

// printInfo prints the size of name and a text histogram of its
// intensities, as wide as the terminal allows.
func printInfo(model *imgedit.Model, out io.Writer, name string) error {
	img, err := model.Image(name)
	if err != nil {
		return err
	}
	h, err := model.Histogram(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %dx%d\n", name, img.Width(), img.Height())
	printHistogram(out, &h, terminalWidth())
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// histogramRows is the number of value buckets in the text histogram.
const histogramRows = 16

func printHistogram(out io.Writer, h *imageutil.Histogram, width int) {
	var buckets [histogramRows]int
	for v, n := range h.Intensity {
		buckets[v*histogramRows/256] += n
	}
	peak := 0
	for _, n := range buckets {
		peak = max(peak, n)
	}

	barWidth := max(width-12, 10)
	step := 256 / histogramRows
	for i, n := range buckets {
		bar := 0
		if peak > 0 {
			bar = n * barWidth / peak
		}
		fmt.Fprintf(out, "%3d-%3d |%s\n", i*step, (i+1)*step-1, strings.Repeat("#", bar))
	}
}
