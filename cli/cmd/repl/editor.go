package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
)

const defaultEditor = "vi"

// editContextCommand implements [tea.ExecCommand] for the edit-decode-retry
// loop. It writes the current context as YAML to a temp file, opens the
// user's editor, and decodes the result. On a decode error the user is
// prompted to re-edit; declining keeps the previous context.
type editContextCommand struct {
	data    lang.Context
	ctxFunc func() context.Context
	newData lang.Context
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editContextCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editContextCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editContextCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. An emptied file leaves newData nil, which
// cancels the edit.
func (c *editContextCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := lang.FormatContext(ctx, &buf, c.data, lang.FormatYAML, 2); err != nil {
		return err
	}

	f, err := os.CreateTemp("", "tmpl-repl-*.yaml")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	f.Close()

	content := buf.Bytes()

	for {
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		content, err = os.ReadFile(path)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(content)) == 0 {
			return nil
		}

		data, decodeErr := lang.DecodeContext(ctx, bytes.NewReader(content))
		c.logger.TraceContext(ctx, "editor decode attempt",
			slog.Int("content_length", len(content)),
			slog.Bool("success", decodeErr == nil))

		if decodeErr == nil {
			c.newData = data

			return nil
		}

		fmt.Fprintf(c.stderr, "\nDecode error: %s\n", decodeErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		if r := strings.ToLower(strings.TrimSpace(scanner.Text())); r == "n" || r == "no" {
			return ErrEditDeclined
		}
	}
}

// runEditor runs $EDITOR (or vi) on path with the given streams.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
