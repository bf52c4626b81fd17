package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tmpl/cli/cmd"
	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/pkg"
)

// CLI is the top-level command-line interface for tmpl.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	MaxDepth int              `default:"${maxDepth}" help:"Maximum nesting depth of if and for blocks" name:"max-depth"`
	Version  kong.VersionFlag `help:"Print version and exit"                                           short:"V"`

	Render   cmd.Render   `cmd:"" default:"withargs" help:"Render a template"`
	Eval     cmd.Eval     `cmd:""                    help:"Evaluate an expression"`
	Segments cmd.Segments `cmd:""                    help:"Print the segments of a template"`
	AST      cmd.AST      `cmd:""                    help:"Print the tree of an expression"        name:"ast"`
	Serve    cmd.Serve    `cmd:""                    help:"Serve rendered templates over HTTP"`
	Repl     cmd.Repl     `cmd:""                    help:"Evaluate expressions interactively"`
	Init     cmd.Init     `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the tmpl CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier:     configFilePath,
		cmd.CacheIdentifier:      cacheDir(),
		cmd.HistoryIdentifier:    cachePath(baseHistory),
		cmd.FormatEnumIdentifier: strings.Join(lang.Formats, ","),
		"maxDepth":               strconv.Itoa(lang.DefaultMaxDepth),
		"version":                pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithOptions(ctx, lang.WithMaxDepth(cli.MaxDepth))

	return ktx.Run()
}
