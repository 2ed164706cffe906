package build

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
)

// Prompter asks the user for input.
type Prompter interface {
	// Select returns the index of the chosen item.
	Select(label string, items []string) (int, error)
	// Input returns a line of text accepted by validate.
	Input(label string, validate func(string) error) (string, error)
}

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// NewTerminalPrompter returns a Prompter running promptui on the terminal.
func NewTerminalPrompter(stdin io.ReadCloser, stdout io.WriteCloser) Prompter {
	return &terminalPrompter{stdin: stdin, stdout: stdout}
}

type terminalPrompter struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

// Select implements Prompter.
func (p *terminalPrompter) Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   len(items),
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}
	index, _, err := prompt.Run()
	return index, convertPromptError(err)
}

// Input implements Prompter.
func (p *terminalPrompter) Input(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
		Stdin:    p.stdin,
		Stdout:   p.stdout,
	}
	value, err := prompt.Run()
	return value, convertPromptError(err)
}

func convertPromptError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return ErrAborted
	default:
		return err
	}
}
