// Package cmd implements the animtiming CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (sample, table, plot, check).
package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/timing/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "animtiming",
	Short: "animtiming - inspect animation effect timing",
	Long: `animtiming evaluates animation effect timing described in YAML files.
It reports phases, iterations and eased progress the way a browser
engine computes them, for time-based and progress-based timelines.

Use "animtiming <command> --help" for more information about a command.`,
	Usage: "animtiming <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// output receives command output. Tests replace it.
var output io.Writer = os.Stdout

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() (err error) {
	defer errors.RecoverWithCallback("animtiming", func(r any) {
		err = fmt.Errorf("internal error: %v", r)
	})
	return run(os.Args[1:])
}

func run(args []string) error {
	// Handle no arguments
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags
	var (
		filteredArgs []string
		verbose      bool
	)
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(output, "animtiming version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			verbose = true
			errors.SetHandler(&errors.LogHandler{Verbose: true})
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	err := cmd.Run(cmdArgs)
	var te *errors.TimingError
	if verbose && stderrors.As(err, &te) {
		errors.Report(te)
	}
	return err
}

func printHelp(cmd *Command) {
	fmt.Fprintln(output, cmd.Long)
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Usage:")
	fmt.Fprintf(output, "  %s\n", cmd.Usage)
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(output, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Flags:")
	fmt.Fprintln(output, "  -h, --help           Show help for a command")
	fmt.Fprintln(output, "  -v, --version        Show version information")
	fmt.Fprintln(output, "  --verbose            Log errors with kinds, fields and stack traces")
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Examples:")
	fmt.Fprintln(output, "  animtiming check fade.yaml               Validate an effect")
	fmt.Fprintln(output, "  animtiming sample fade.yaml 0s 250ms 1s  Sample at three local times")
	fmt.Fprintln(output, "  animtiming plot fade.yaml -o fade.png    Draw the progress curve")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(output, cmd.Long)
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Usage:")
	fmt.Fprintf(output, "  %s\n", cmd.Usage)
}

// flagValue returns the value following a flag at args[i], accepting both
// "--flag value" and "--flag=value". ok is false when args[i] is not name.
func flagValue(args []string, i int, name string) (value string, next int, ok bool, err error) {
	arg := args[i]
	if v, found := strings.CutPrefix(arg, name+"="); found {
		return v, i, true, nil
	}
	if arg != name {
		return "", i, false, nil
	}
	if i+1 >= len(args) {
		return "", i, true, fmt.Errorf("%s requires a value", name)
	}
	return args[i+1], i + 1, true, nil
}
