// Command logicdb is a driver for the logicdb deductive query engine: a
// read-eval-print loop that accepts (assert! ITEM) forms and queries,
// printing one line per result frame. The syntax reader, pretty
// printing, and command dispatch here are all external to the core
// engine (pkg/logicdb), which only ever sees already-parsed Terms.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"
	"github.com/olekukonko/tablewriter"
	"github.com/ryanuber/columnize"

	"github.com/gitrdm/logicdb/internal/sexpr"
	"github.com/gitrdm/logicdb/pkg/logicdb"
)

const appVersion = "0.1.0"

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "logicdb",
		Level: hclog.Warn,
	})
	db := logicdb.NewDatabase(logicdb.WithLogger(logger))

	app := cli.NewCLI("logicdb", appVersion)
	app.Args = os.Args[1:]
	app.Commands = map[string]cli.CommandFactory{
		"repl": func() (cli.Command, error) {
			return &replCommand{db: db, logger: logger, in: os.Stdin, out: os.Stdout}, nil
		},
		"query": func() (cli.Command, error) {
			return &queryCommand{db: db, logger: logger, out: os.Stdout}, nil
		},
		"facts": func() (cli.Command, error) {
			return &factsCommand{db: db, out: os.Stdout}, nil
		},
	}

	exitStatus, err := app.Run()
	if err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
	os.Exit(exitStatus)
}

// replCommand implements the driver loop described in spec §6: read one
// surface expression, dispatch (assert! ITEM) to the database, otherwise
// evaluate it as a query and print one line per result frame.
type replCommand struct {
	db     *logicdb.Database
	logger hclog.Logger
	in     io.Reader
	out    io.Writer
}

func (c *replCommand) Help() string {
	return "Usage: logicdb repl\n\n  Starts an interactive read-eval-print loop.\n  Forms of the shape (assert! ITEM) add a fact or rule;\n  anything else is evaluated as a query."
}

func (c *replCommand) Synopsis() string {
	return "Start an interactive query session"
}

func (c *replCommand) Run(_ []string) int {
	prompt := color.New(color.FgCyan).SprintFunc()
	errColor := color.New(color.FgRed).SprintFunc()

	scanner := bufio.NewScanner(c.in)
	fmt.Fprintln(c.out, prompt("logicdb> "), "type an (assert! ITEM) form or a query; Ctrl-D to exit")
	for {
		fmt.Fprint(c.out, prompt("logicdb> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := c.evalLine(line); err != nil {
			fmt.Fprintln(c.out, errColor("error:"), err)
		}
	}
	return 0
}

func (c *replCommand) evalLine(line string) error {
	term, _, err := sexpr.Read(line)
	if err != nil {
		return err
	}
	if assertItem, ok := isAssertForm(term); ok {
		if err := c.db.Add(assertItem); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "ok")
		return nil
	}
	return runQuery(c.db, term, c.out)
}

// isAssertForm reports whether term is (assert! ITEM), returning ITEM.
func isAssertForm(term logicdb.Term) (logicdb.Term, bool) {
	items, ok := logicdb.ToSlice(term)
	if !ok || len(items) != 2 {
		return nil, false
	}
	tag, ok := items[0].(logicdb.Constant)
	if !ok {
		return nil, false
	}
	if s, ok := tag.Value.(string); !ok || s != "assert!" {
		return nil, false
	}
	return items[1], true
}

// queryCommand runs a single query passed on the command line, for
// scripting and one-shot invocations outside the REPL.
type queryCommand struct {
	db     *logicdb.Database
	logger hclog.Logger
	out    io.Writer
}

func (c *queryCommand) Help() string {
	return "Usage: logicdb query '(job ?who ?title)'\n\n  Evaluates a single query and prints every result."
}

func (c *queryCommand) Synopsis() string {
	return "Run a single query and exit"
}

func (c *queryCommand) Run(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "error: query expects exactly one argument")
		return 1
	}
	term, _, err := sexpr.Read(args[0])
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return 1
	}
	if err := runQuery(c.db, term, c.out); err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return 1
	}
	return 0
}

// runQuery evaluates query against db, printing one line per result
// frame. The lines pass through columnize, but each holds a single field
// (no "|" delimiter), so no column alignment takes place.
func runQuery(db *logicdb.Database, query logicdb.Term, out io.Writer) error {
	stream, err := logicdb.Eval(db, query)
	if err != nil {
		return err
	}

	var lines []string
	var frame *logicdb.Frame
	var ok bool
	for {
		frame, stream, ok, err = logicdb.Next(stream)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		resolved := logicdb.Instantiate(query, frame, logicdb.DisplayUnbound)
		lines = append(lines, resolved.String())
	}

	if len(lines) == 0 {
		fmt.Fprintln(out, "no results")
		return nil
	}
	fmt.Fprintln(out, columnize.SimpleFormat(lines))
	return nil
}

// factsCommand lists every ground assertion currently stored in db as a
// table. The driver loads no facts before running a command, so a
// standalone `logicdb facts` run prints an empty table.
type factsCommand struct {
	db  *logicdb.Database
	out io.Writer
}

func (c *factsCommand) Help() string     { return "Usage: logicdb facts\n\n  Lists every stored assertion." }
func (c *factsCommand) Synopsis() string { return "List stored assertions" }

func (c *factsCommand) Run(_ []string) int {
	// Fetching with a bare variable pattern forces the non-indexed path,
	// returning every assertion regardless of head symbol.
	all := c.db.FetchAssertions(logicdb.Variable{Name: "_"})

	table := tablewriter.NewTable(c.out)
	table.Header([]string{"#", "assertion"})
	for i, t := range all {
		table.Append([]string{fmt.Sprintf("%d", i+1), t.String()})
	}
	table.Render()
	return 0
}
