package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the "interactive" command: a REPL that dispatches
// to the other subcommands' RunE directly, so the app's clients and store
// are only ever initialized once per session.
func InteractiveCmd(app *AppContext, root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (initialize once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without
re-initializing clients and the store each time. Runs until 'exit' or 'quit'.
Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("starting interactive session. Type 'help' for commands, 'exit' or 'quit' to leave.")

			siblings := make(map[string]*cobra.Command)
			for _, sub := range root.Commands() {
				if sub.Name() != "interactive" && sub.Name() != "completion" && sub.Name() != "help" {
					siblings[sub.Name()] = sub
				}
			}

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts, err := parseCommandLine(line)
				if err != nil {
					fmt.Printf("error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}

				name, cmdArgs := parts[0], parts[1:]
				switch name {
				case "exit", "quit":
					fmt.Println("goodbye")
					return nil
				case "help":
					printInteractiveHelp(siblings)
					continue
				}

				target, ok := siblings[name]
				if !ok {
					fmt.Printf("unknown command: %s (type 'help' for available commands)\n\n", name)
					continue
				}

				target.Flags().VisitAll(func(f *pflag.Flag) {
					f.Changed = false
					_ = f.Value.Set(f.DefValue)
				})
				if err := target.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("error parsing flags: %v\n\n", err)
					continue
				}
				parsedArgs := target.Flags().Args()
				if err := target.Args(target, parsedArgs); err != nil {
					fmt.Printf("error: %v\n\n", err)
					continue
				}
				if target.RunE != nil {
					if err := target.RunE(target, parsedArgs); err != nil {
						fmt.Printf("error: %v\n\n", err)
					}
				}
			}

			return scanner.Err()
		},
	}

	return cmd
}

func printInteractiveHelp(cmds map[string]*cobra.Command) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\navailable commands:")
	for _, name := range names {
		c := cmds[name]
		fmt.Printf("  %-30s %s\n", c.Use, c.Short)
	}
	fmt.Println("  help                           show this help message")
	fmt.Println("  exit, quit                     exit the interactive session")
}

// parseCommandLine splits a line into arguments, respecting single and
// double quotes.
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune

	for i, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}

		if i == len(line)-1 && inQuote != 0 {
			return nil, fmt.Errorf("unclosed quote: %c", inQuote)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args, nil
}
