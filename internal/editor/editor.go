// Package editor dispatches confirmed candidates: launching the
// configured editor for local files, or printing the selection for
// callers composing pick into shell pipelines.
package editor

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/Paintersrp/pick/internal/config"
	"github.com/Paintersrp/pick/internal/picker"
	"github.com/Paintersrp/pick/internal/source"
)

// Editor opens file candidates with the workspace's editor template.
type Editor struct {
	Template config.CommandTemplate
}

func (e *Editor) Dispatch(c picker.Candidate, a picker.Action) error {
	f, ok := c.(source.File)
	if !ok {
		return fmt.Errorf("cannot open %q in an editor", c.Display())
	}

	cmd := e.Command(f.Path, a)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}
	return nil
}

// Command builds the editor invocation for an action. Launched as a fresh
// process, the default and replace actions collapse to a plain open; the
// split actions ask vim-compatible editors for a split window.
func (e *Editor) Command(path string, a picker.Action) *exec.Cmd {
	args := append([]string(nil), e.Template.Args...)

	switch a {
	case picker.ActionHSplit:
		args = append(args, "-c", "split")
	case picker.ActionVSplit:
		args = append(args, "-c", "vsplit")
	}

	args = append(args, path)
	return exec.Command(e.Template.Exec, args...)
}

// Printer writes the selection to a stream, one path per line.
type Printer struct {
	Out io.Writer
}

func (p *Printer) Dispatch(c picker.Candidate, _ picker.Action) error {
	switch v := c.(type) {
	case source.File:
		_, err := fmt.Fprintln(p.Out, v.Path)
		return err
	case source.Object:
		_, err := fmt.Fprintln(p.Out, v.URI())
		return err
	default:
		_, err := fmt.Fprintln(p.Out, c.Display())
		return err
	}
}
