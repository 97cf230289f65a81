package imgedit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wbrown/imgedit/imageutil"
)

// Command is one editing operation with its parameters. The set of
// commands is closed; Model.Run handles every variant.
type Command interface {
	command()
}

type (
	// Load decodes Path into Name.
	Load struct{ Path, Name string }
	// Save encodes Name to Path.
	Save struct{ Path, Name string }
	// Brighten adds Amount to every channel.
	Brighten struct {
		Amount   int
		Src, Dst string
	}
	// Darken subtracts Amount from every channel.
	Darken struct {
		Amount   int
		Src, Dst string
	}
	// Flip mirrors along Axis.
	Flip struct {
		Axis     imageutil.FlipAxis
		Src, Dst string
	}
	// Component extracts one greyscale component.
	Component struct {
		Component imageutil.Component
		Src, Dst  string
	}
	Blur      struct{ Src, Dst string }
	Sharpen   struct{ Src, Dst string }
	Greyscale struct{ Src, Dst string }
	Sepia     struct{ Src, Dst string }
	// Downsize shrinks to a percentage of the source size.
	Downsize struct {
		WidthPercent, HeightPercent int
		Src, Dst                    string
	}
	// Histogram writes a histogram chart of Name to Path.
	Histogram struct{ Path, Name string }
)

func (Load) command()      {}
func (Save) command()      {}
func (Brighten) command()  {}
func (Darken) command()    {}
func (Flip) command()      {}
func (Component) command() {}
func (Blur) command()      {}
func (Sharpen) command()   {}
func (Greyscale) command() {}
func (Sepia) command()     {}
func (Downsize) command()  {}
func (Histogram) command() {}

// Run executes cmd against the model.
func (m *Model) Run(cmd Command) error {
	switch c := cmd.(type) {
	case Load:
		return m.Load(c.Path, c.Name)
	case Save:
		return m.Save(c.Path, c.Name)
	case Brighten:
		return m.Brighten(c.Amount, c.Src, c.Dst)
	case Darken:
		return m.Darken(c.Amount, c.Src, c.Dst)
	case Flip:
		return m.Flip(c.Axis, c.Src, c.Dst)
	case Component:
		return m.GreyscaleComponent(c.Component, c.Src, c.Dst)
	case Blur:
		return m.Blur(c.Src, c.Dst)
	case Sharpen:
		return m.Sharpen(c.Src, c.Dst)
	case Greyscale:
		return m.Greyscale(c.Src, c.Dst)
	case Sepia:
		return m.Sepia(c.Src, c.Dst)
	case Downsize:
		return m.Downsize(c.WidthPercent, c.HeightPercent, c.Src, c.Dst)
	case Histogram:
		return m.SaveHistogram(c.Path, c.Name)
	default:
		return imageutil.InvalidArgumentError("run", "unknown command %T", cmd)
	}
}

// RunAll executes cmds in order and stops at the first failure.
func (m *Model) RunAll(cmds []Command) error {
	for i, cmd := range cmds {
		if err := m.Run(cmd); err != nil {
			Logger().Warn("command failed", "index", i, "command", fmt.Sprintf("%T", cmd), "err", err)
			return fmt.Errorf("command %d: %w", i+1, err)
		}
	}
	return nil
}

var flipKeywords = map[string]imageutil.FlipAxis{
	"horizontal-flip": imageutil.FlipHorizontal,
	"vertical-flip":   imageutil.FlipVertical,
}

var componentKeywords = map[string]imageutil.Component{
	"red-component":       imageutil.ComponentRed,
	"green-component":     imageutil.ComponentGreen,
	"blue-component":      imageutil.ComponentBlue,
	"value-component":     imageutil.ComponentValue,
	"intensity-component": imageutil.ComponentIntensity,
	"luma-component":      imageutil.ComponentLuma,
}

// ParseCommand parses one script line such as "brighten 10 koala koala-bright".
//
// Recognised forms:
//
//	load <path> <name>
//	save <path> <name>
//	brighten|darken <amount> <src> <dst>
//	horizontal-flip|vertical-flip <src> <dst>
//	red-|green-|blue-|value-|intensity-|luma-component <src> <dst>
//	blur|sharpen|greyscale|sepia <src> <dst>
//	downsize <width-percent> <height-percent> <src> <dst>
//	histogram <path> <name>
//
// File commands take the path first. Amounts must be non-negative
// integers and percents positive integers.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, imageutil.InvalidArgumentError("parse", "empty command")
	}
	keyword, args := strings.ToLower(fields[0]), fields[1:]

	want := func(n int) error {
		if len(args) != n {
			return imageutil.InvalidArgumentError("parse",
				"%s takes %d arguments, got %d", keyword, n, len(args))
		}
		return nil
	}

	if axis, ok := flipKeywords[keyword]; ok {
		if err := want(2); err != nil {
			return nil, err
		}
		return Flip{Axis: axis, Src: args[0], Dst: args[1]}, nil
	}
	if component, ok := componentKeywords[keyword]; ok {
		if err := want(2); err != nil {
			return nil, err
		}
		return Component{Component: component, Src: args[0], Dst: args[1]}, nil
	}

	switch keyword {
	case "load", "save", "histogram":
		if err := want(2); err != nil {
			return nil, err
		}
		switch keyword {
		case "load":
			return Load{Path: args[0], Name: args[1]}, nil
		case "save":
			return Save{Path: args[0], Name: args[1]}, nil
		default:
			return Histogram{Path: args[0], Name: args[1]}, nil
		}
	case "brighten", "darken":
		if err := want(3); err != nil {
			return nil, err
		}
		amount, err := parseInt(keyword, "increment", args[0], 0)
		if err != nil {
			return nil, err
		}
		if keyword == "brighten" {
			return Brighten{Amount: amount, Src: args[1], Dst: args[2]}, nil
		}
		return Darken{Amount: amount, Src: args[1], Dst: args[2]}, nil
	case "blur", "sharpen", "greyscale", "sepia":
		if err := want(2); err != nil {
			return nil, err
		}
		switch keyword {
		case "blur":
			return Blur{Src: args[0], Dst: args[1]}, nil
		case "sharpen":
			return Sharpen{Src: args[0], Dst: args[1]}, nil
		case "greyscale":
			return Greyscale{Src: args[0], Dst: args[1]}, nil
		default:
			return Sepia{Src: args[0], Dst: args[1]}, nil
		}
	case "downsize":
		if err := want(4); err != nil {
			return nil, err
		}
		wp, err := parseInt(keyword, "width percent", args[0], 1)
		if err != nil {
			return nil, err
		}
		hp, err := parseInt(keyword, "height percent", args[1], 1)
		if err != nil {
			return nil, err
		}
		return Downsize{WidthPercent: wp, HeightPercent: hp, Src: args[2], Dst: args[3]}, nil
	default:
		return nil, imageutil.InvalidArgumentError("parse", "unknown command %q", keyword)
	}
}

// parseInt parses s as an integer no smaller than least.
func parseInt(keyword, what, s string, least int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, imageutil.InvalidArgumentError("parse", "%s %s %q is not an integer", keyword, what, s)
	}
	if n < least {
		return 0, imageutil.InvalidArgumentError("parse", "%s %s must be at least %d, got %d", keyword, what, least, n)
	}
	return n, nil
}

// IsBlankOrComment reports whether a script line carries no command.
func IsBlankOrComment(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || strings.HasPrefix(line, "#")
}

// ParseScript parses every command in r, one per line. Blank lines and
// lines starting with # are skipped. Errors name the offending line.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if IsBlankOrComment(line) {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return cmds, nil
}
