// internal/cli/cli.go
// Interactive secretary console over the service layer.

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"o-event/internal/models"
	"o-event/internal/services"
)

// CLI is the interactive console used at the secretary desk. Commands are
// resolved by unique prefix; an ambiguous prefix is reported as unknown.
type CLI struct {
	services *services.Container
	in       *bufio.Scanner
	out      io.Writer
	logger   *log.Logger
	quit     bool
}

// New creates a console bound to the given streams.
func New(container *services.Container, in io.Reader, out io.Writer, logger *log.Logger) *CLI {
	return &CLI{
		services: container,
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   logger,
	}
}

var commandNames = []string{
	"help", "day", "ls", "edit", "add", "assign", "modify", "register", "summary", "quit",
}

// ResolveCommand resolves a possibly-abbreviated command name. An exact
// match always wins; otherwise the prefix must match exactly one command.
func ResolveCommand(input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("empty command")
	}
	var matches []string
	for _, name := range commandNames {
		if name == input {
			return name, nil
		}
		if strings.HasPrefix(name, input) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return "", fmt.Errorf("unknown command %q", input)
}

// Run reads and dispatches commands until quit or EOF. The returned error
// is non-nil only for unhandled failures; per-command problems are
// reported and the loop continues.
func (c *CLI) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "o-event console. Type 'help' for commands.")
	for !c.quit {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			break
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		name, err := ResolveCommand(fields[0])
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			continue
		}

		if err := c.dispatch(ctx, name, fields[1:]); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return c.in.Err()
}

func (c *CLI) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "help":
		return c.cmdHelp()
	case "day":
		return c.cmdDay(ctx, args)
	case "ls":
		return c.cmdLs(ctx, args)
	case "edit":
		return c.cmdEdit(ctx, args)
	case "add":
		return c.cmdAdd(ctx)
	case "assign":
		return c.cmdAssign(ctx)
	case "modify":
		return c.cmdModify(ctx, args)
	case "register":
		return c.cmdRegister(ctx, args)
	case "summary":
		return c.cmdSummary(ctx, args)
	case "quit":
		c.quit = true
		return nil
	}
	return fmt.Errorf("unknown command %q", name)
}

func (c *CLI) cmdHelp() error {
	fmt.Fprintln(c.out, "commands:")
	fmt.Fprintln(c.out, "  help                 show this help")
	fmt.Fprintln(c.out, "  day <n>              switch the current day")
	fmt.Fprintln(c.out, "  ls [query]           list competitors")
	fmt.Fprintln(c.out, "  edit <id|query>      edit a competitor's fields")
	fmt.Fprintln(c.out, "  add                  register a new competitor")
	fmt.Fprintln(c.out, "  assign               assign start slots for the current day")
	fmt.Fprintln(c.out, "  modify <card id>     reprocess a stored card readout")
	fmt.Fprintln(c.out, "  register <id|query>  record an on-site payment")
	fmt.Fprintln(c.out, "  summary [max_place]  per-group standings for the current day")
	fmt.Fprintln(c.out, "  quit                 exit")
	return nil
}

func (c *CLI) cmdDay(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: day <n>")
	}
	day, err := strconv.Atoi(args[0])
	if err != nil || day < 1 {
		return fmt.Errorf("malformed day %q", args[0])
	}
	if err := c.services.Event.SetCurrentDay(ctx, day); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "current day set to %d\n", day)
	return nil
}

func (c *CLI) cmdLs(ctx context.Context, args []string) error {
	competitors, err := c.services.Registration.ListCompetitors(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	for _, comp := range competitors {
		fmt.Fprintf(c.out, "%-36s %-8s %-6s sid=%-8d %s\n", comp.ID, comp.Reg, comp.Group, comp.SID, comp.FullName())
	}
	fmt.Fprintf(c.out, "%d competitor(s)\n", len(competitors))
	return nil
}

// findOne resolves an id-or-query argument to exactly one competitor.
func (c *CLI) findOne(ctx context.Context, arg string) (*models.Competitor, error) {
	if comp, err := c.services.Registration.GetCompetitor(ctx, arg); err == nil {
		return comp, nil
	}
	matches, err := c.services.Registration.ListCompetitors(ctx, arg)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no competitor matches %q", arg)
	case 1:
		return &matches[0], nil
	}
	return nil, fmt.Errorf("%d competitors match %q, be more specific", len(matches), arg)
}

func (c *CLI) cmdEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: edit <id|query>")
	}
	comp, err := c.findOne(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(c.out, "%v\n", err)
		return nil
	}

	fmt.Fprintf(c.out, "editing %s (%s). Enter field=value lines, empty line to finish.\n", comp.FullName(), comp.ID)
	fields := make(map[string]string)
	for {
		fmt.Fprint(c.out, "field> ")
		if !c.in.Scan() {
			break
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			break
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			fmt.Fprintln(c.out, "expected field=value")
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if len(fields) == 0 {
		fmt.Fprintln(c.out, "nothing changed")
		return nil
	}

	updated, err := c.services.Registration.EditCompetitor(ctx, comp.ID, fields)
	if err != nil {
		fmt.Fprintf(c.out, "%v\n", err)
		return nil
	}
	fmt.Fprintf(c.out, "updated %s\n", updated.FullName())
	return nil
}

func (c *CLI) cmdAdd(ctx context.Context) error {
	prompt := func(label string) string {
		fmt.Fprintf(c.out, "%s: ", label)
		if !c.in.Scan() {
			return ""
		}
		return strings.TrimSpace(c.in.Text())
	}

	sid, err := strconv.Atoi(prompt("sid"))
	if err != nil {
		return fmt.Errorf("malformed sid")
	}
	comp := models.Competitor{
		SID:       sid,
		Reg:       prompt("reg"),
		Group:     prompt("group"),
		FirstName: prompt("first name"),
		LastName:  prompt("last name"),
		Notes:     prompt("notes"),
	}
	for _, part := range strings.Split(prompt("days (comma separated)"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil || day < 1 {
			return fmt.Errorf("malformed day %q", part)
		}
		comp.DeclaredDays = append(comp.DeclaredDays, day)
	}

	if err := c.services.Registration.CreateCompetitor(ctx, &comp); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "registered %s with id %s\n", comp.FullName(), comp.ID)
	return nil
}

func (c *CLI) cmdAssign(ctx context.Context) error {
	day, err := c.services.Event.CurrentDay(ctx)
	if err != nil {
		return err
	}
	seed := time.Now().UnixNano()
	assignments, err := c.services.Schedule.AssignDay(ctx, day, 0, seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "assigned %d start slots for day %d (seed %d)\n", len(assignments), day, seed)
	return nil
}

func (c *CLI) cmdModify(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: modify <card id>")
	}
	result, err := c.services.Card.Reprocess(ctx, args[0])
	if err != nil {
		if err == services.ErrNotFound {
			fmt.Fprintf(c.out, "no card with id %q\n", args[0])
			return nil
		}
		return err
	}
	fmt.Fprintf(c.out, "card reprocessed: status=%s sid=%d\n", result.Status, result.SID)
	return nil
}

func (c *CLI) cmdRegister(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: register <id|query>")
	}
	comp, err := c.findOne(ctx, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(c.out, "%v\n", err)
		return nil
	}

	fmt.Fprintf(c.out, "%s: declared %.2f, paid %.2f\n", comp.FullName(), comp.DeclaredFee, comp.PaidFee)
	fmt.Fprint(c.out, "amount: ")
	if !c.in.Scan() {
		return nil
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(c.in.Text()), 64)
	if err != nil {
		return fmt.Errorf("malformed amount")
	}

	updated, err := c.services.Registration.RecordPayment(ctx, comp.ID, amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "paid %.2f of %.2f\n", updated.PaidFee, updated.DeclaredFee)
	return nil
}

func (c *CLI) cmdSummary(ctx context.Context, args []string) error {
	maxPlace := 0
	if len(args) > 0 {
		var err error
		maxPlace, err = strconv.Atoi(args[0])
		if err != nil || maxPlace < 1 {
			return fmt.Errorf("malformed max_place %q", args[0])
		}
	}

	day, err := c.services.Event.CurrentDay(ctx)
	if err != nil {
		return err
	}
	results, err := c.services.Results.KioskResults(ctx, day)
	if err != nil {
		return err
	}

	groups := make([]string, 0, len(results))
	for g := range results {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, group := range groups {
		fmt.Fprintf(c.out, "-- %s --\n", group)
		for _, row := range results[group] {
			if maxPlace > 0 && (row.Position == nil || *row.Position > maxPlace) {
				continue
			}
			pos := "  -"
			if row.Position != nil {
				pos = fmt.Sprintf("%3d", *row.Position)
			}
			fmt.Fprintf(c.out, "%s. %-24s %-8s %8s %8s %s\n", pos, row.Name, row.Club, row.Result, row.Behind, row.Status)
		}
	}
	return nil
}
