// Package clipboard copies pixel values out of the viewer, through the
// system clipboard locally and OSC52 escape sequences over SSH.
package clipboard

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method tells which mechanism delivered the text.
type Method string

const (
	MethodSystem Method = "system clipboard"
	MethodOSC52  Method = "terminal (OSC52)"
)

// Clipboard provides unified clipboard access with OSC52 support for SSH.
type Clipboard struct {
	// Last copied text, kept for when no clipboard accepts it
	last string
	// Whether we're likely in an SSH session
	isSSH bool
	// Output writer for OSC52 sequences (typically os.Stdout)
	output io.Writer
	// System clipboard writer
	writeSystem func(string) error
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithEnv replaces os.Getenv for SSH detection.
func WithEnv(getenv func(string) string) Option {
	return func(c *Clipboard) { c.isSSH = isSSHSession(getenv) }
}

// WithSystemWriter replaces the system clipboard writer.
func WithSystemWriter(fn func(string) error) Option {
	return func(c *Clipboard) { c.writeSystem = fn }
}

// New creates a new Clipboard instance.
func New(output io.Writer, opts ...Option) *Clipboard {
	if output == nil {
		output = os.Stdout
	}
	c := &Clipboard{
		isSSH:       isSSHSession(os.Getenv),
		output:      output,
		writeSystem: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// isSSHSession detects if we're running in an SSH session.
func isSSHSession(getenv func(string) string) bool {
	for _, v := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION"} {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// Copy copies the given text to the clipboard.
// In SSH sessions, it uses OSC52 escape sequences.
// Locally, it tries the system clipboard first, then falls back to OSC52.
func (c *Clipboard) Copy(text string) (Method, error) {
	c.last = text

	if c.isSSH {
		return MethodOSC52, c.copyOSC52(text)
	}
	if err := c.writeSystem(text); err != nil {
		return MethodOSC52, c.copyOSC52(text)
	}
	return MethodSystem, nil
}

// copyOSC52 copies text using OSC52 escape sequence.
func (c *Clipboard) copyOSC52(text string) error {
	seq := osc52.New(text)
	_, err := io.WriteString(c.output, seq.String())
	return err
}

// Last returns the most recently copied text.
func (c *Clipboard) Last() string {
	return c.last
}

// IsSSH returns true if we're in an SSH session.
func (c *Clipboard) IsSSH() bool {
	return c.isSSH
}
