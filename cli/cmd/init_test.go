package cmd_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmpl/cli/cmd"
)

type initCLI struct {
	Level    string        `default:"info"`
	Depth    int           `default:"64"`
	Pretty   bool          `negatable:""`
	Timeout  time.Duration `default:"5s"`
	Tags     []string      `default:"a,b"`
	Empty    string
	Internal string `hidden:""`

	Init cmd.Init `cmd:""`
}

func parseInit(t *testing.T, path string, args ...string) (*initCLI, *kong.Context) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli,
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.Vars{cmd.ConfigIdentifier: path},
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return &cli, ktx
}

func TestInit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")

	cli, ktx := parseInit(t, path, "--level=debug", "--pretty", "init")
	if err := cli.Init.Run(cmd.WithContext(t.Context(), ktx)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	got := string(b)

	for _, want := range []string{
		"level: debug\n",
		"depth: 64\n",
		"pretty: true\n",
		"timeout: 5s\n",
		"tags:\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("config does not contain %q:\n%s", want, got)
		}
	}

	for _, unwanted := range []string{"help", "empty", "internal"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("config contains %q:\n%s", unwanted, got)
		}
	}

	if strings.Index(got, "level:") > strings.Index(got, "depth:") {
		t.Errorf("config keys not in declaration order:\n%s", got)
	}
}

func TestInit_Exists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("old: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cli, ktx := parseInit(t, path, "init")

	err := cli.Init.Run(cmd.WithContext(t.Context(), ktx))
	if !errors.Is(err, cmd.ErrWriteConfig) || !errors.Is(err, cmd.ErrFileExists) {
		t.Fatalf("Run() error = %v, want ErrWriteConfig wrapping ErrFileExists", err)
	}

	cli, ktx = parseInit(t, path, "--level=warn", "init", "--force")
	if err := cli.Init.Run(cmd.WithContext(t.Context(), ktx)); err != nil {
		t.Fatalf("Run() with --force error = %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(b); strings.Contains(got, "old") || !strings.Contains(got, "level: warn\n") {
		t.Errorf("config not overwritten:\n%s", got)
	}
}
