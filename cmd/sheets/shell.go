package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dhruv-33/google-sheets/pkg/sheets"
	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

const helpText = `Commands:
  set <cell> [value]            store a value or =FORMULA (empty clears)
  format [cell] attr=value...   bold|italic|strike=true|false align=left|center|right
                                color=#rrggbb bg=#rrggbb
  toggle bold|italic|strike [cell]
  undo | redo
  rows add|remove [n]           default step is 50
  cols add|remove [n]
  sheet add | delete <name> | switch <name> | list
  select <cell>
  zoom <factor|percent>         %s
  theme light|dark
  show [cell]                   print a cell, or every non-empty cell
  help | quit
Cell arguments default to the selected cell. Formulas: SUM AVERAGE COUNT MAX MIN over A1:B3.
`

type actionKind int

const (
	actNone actionKind = iota
	actCommand
	actShow
	actList
	actHelp
	actQuit
)

// action is one parsed shell line.
type action struct {
	kind actionKind
	cmd  sheets.Command
	key  string
}

func command(cmd sheets.Command) action {
	return action{kind: actCommand, cmd: cmd}
}

// cutWord splits s into its first space-separated word and the trimmed remainder.
func cutWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func parseLine(line string) (action, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return action{}, nil
	}
	verb, rest := cutWord(line)
	switch strings.ToLower(verb) {
	case "set":
		key, value := cutWord(rest)
		if key == "" {
			return action{}, errors.New("usage: set <cell> [value]")
		}
		return command(sheets.Command{Type: sheets.CmdSetCell, Cell: strings.ToUpper(key), Value: value}), nil

	case "format":
		cmd := sheets.Command{Type: sheets.CmdFormatCell, Format: &models.FormatPatch{}}
		for _, field := range strings.Fields(rest) {
			name, val, ok := strings.Cut(field, "=")
			if !ok {
				if cmd.Cell != "" {
					return action{}, fmt.Errorf("unexpected argument %q", field)
				}
				cmd.Cell = strings.ToUpper(field)
				continue
			}
			if err := setAttr(cmd.Format, strings.ToLower(name), val); err != nil {
				return action{}, err
			}
		}
		if cmd.Format.Empty() {
			return action{}, errors.New("usage: format [cell] attr=value...")
		}
		return command(cmd), nil

	case "toggle":
		attr, key := cutWord(rest)
		if attr == "" {
			return action{}, errors.New("usage: toggle bold|italic|strike [cell]")
		}
		attr = strings.ToLower(attr)
		if attr == "strike" {
			attr = sheets.AttrStrikethrough
		}
		return command(sheets.Command{Type: sheets.CmdToggleFormat, Attr: attr, Cell: strings.ToUpper(key)}), nil

	case "undo":
		return command(sheets.Command{Type: sheets.CmdUndo}), nil
	case "redo":
		return command(sheets.Command{Type: sheets.CmdRedo}), nil

	case "rows", "cols":
		op, arg := cutWord(rest)
		n := 0
		if arg != "" {
			var err error
			if n, err = strconv.Atoi(arg); err != nil || n < 1 {
				return action{}, fmt.Errorf("invalid count %q", arg)
			}
		}
		types := map[string]string{
			"rows add": sheets.CmdAddRows, "rows remove": sheets.CmdRemoveRows,
			"cols add": sheets.CmdAddColumns, "cols remove": sheets.CmdRemoveColumns,
		}
		t, ok := types[strings.ToLower(verb)+" "+strings.ToLower(op)]
		if !ok {
			return action{}, fmt.Errorf("usage: %s add|remove [n]", strings.ToLower(verb))
		}
		return command(sheets.Command{Type: t, Count: n}), nil

	case "sheet":
		sub, name := cutWord(rest)
		switch strings.ToLower(sub) {
		case "add":
			return command(sheets.Command{Type: sheets.CmdAddSheet}), nil
		case "list", "":
			return action{kind: actList}, nil
		case "delete", "switch":
			if name == "" {
				return action{}, fmt.Errorf("usage: sheet %s <name>", strings.ToLower(sub))
			}
			t := sheets.CmdDeleteSheet
			if strings.ToLower(sub) == "switch" {
				t = sheets.CmdSwitchSheet
			}
			return command(sheets.Command{Type: t, Sheet: name}), nil
		}
		return action{}, errors.New("usage: sheet add | delete <name> | switch <name> | list")

	case "select":
		if rest == "" {
			return action{}, errors.New("usage: select <cell>")
		}
		return command(sheets.Command{Type: sheets.CmdSelectCell, Cell: strings.ToUpper(rest)}), nil

	case "zoom":
		z, err := parseZoom(rest)
		if err != nil {
			return action{}, err
		}
		return command(sheets.Command{Type: sheets.CmdSetZoom, Zoom: z}), nil

	case "theme":
		return command(sheets.Command{Type: sheets.CmdSetTheme, Theme: models.Theme(strings.ToLower(rest))}), nil

	case "show":
		return action{kind: actShow, key: strings.ToUpper(rest)}, nil
	case "help", "?":
		return action{kind: actHelp}, nil
	case "quit", "exit":
		return action{kind: actQuit}, nil
	}
	return action{}, fmt.Errorf("unknown command %q (type help)", verb)
}

func setAttr(p *models.FormatPatch, name, val string) error {
	switch name {
	case "bold", "italic", "strike", "strikethrough":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid %s value %q", name, val)
		}
		switch name {
		case "bold":
			p.Bold = &b
		case "italic":
			p.Italic = &b
		default:
			p.Strikethrough = &b
		}
	case "align":
		a := models.Align(strings.ToLower(val))
		p.Align = &a
	case "color":
		p.TextColor = &val
	case "bg", "background":
		p.BackgroundColor = &val
	default:
		return fmt.Errorf("unknown attribute %q", name)
	}
	return nil
}

func parseZoom(s string) (float64, error) {
	pct := strings.HasSuffix(s, "%")
	z, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid zoom %q", s)
	}
	if pct {
		z /= 100
	}
	return z, nil
}

// zoomChoices lists the accepted zoom factors as percentages.
func zoomChoices() string {
	zooms := sheets.SupportedZooms()
	out := make([]string, len(zooms))
	for i, z := range zooms {
		out[i] = strconv.FormatFloat(z*100, 'f', -1, 64) + "%"
	}
	return strings.Join(out, " ")
}

// execute runs act against wb and reports whether the shell should exit.
func execute(w io.Writer, wb *sheets.Workbook, act action) (bool, error) {
	switch act.kind {
	case actQuit:
		return true, nil
	case actHelp:
		fmt.Fprintf(w, helpText, zoomChoices())
	case actList:
		for _, name := range wb.Sheets() {
			marker := " "
			if name == wb.Active() {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %s\n", marker, name)
		}
	case actShow:
		if act.key == "" {
			return false, showSheet(w, wb)
		}
		cell, err := wb.Cell("", act.key)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(w, describe(act.key, cell))
	case actCommand:
		if err := wb.Apply(act.cmd); err != nil {
			return false, err
		}
		switch act.cmd.Type {
		case sheets.CmdSetCell:
			key := wb.Selection().Cell
			cell, _ := wb.Cell("", key)
			fmt.Fprintln(w, describe(key, cell))
		case sheets.CmdAddSheet:
			fmt.Fprintf(w, "added %s\n", wb.Active())
		}
	}
	return false, nil
}

func showSheet(w io.Writer, wb *sheets.Workbook) error {
	data, err := wb.Data("")
	if err != nil {
		return err
	}
	if len(data) == 0 {
		fmt.Fprintln(w, "(empty)")
		return nil
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, key := range cellref.SortKeys(keys) {
		fmt.Fprintln(tw, strings.Replace(describe(key, data[key]), " = ", "\t", 1))
	}
	return tw.Flush()
}

// describe renders a cell as `A1 = value  (=FORMULA) [bold ...]`.
func describe(key string, c models.CellFormat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s", key, strconv.Quote(c.Value))
	if c.HasFormula() {
		fmt.Fprintf(&b, "  (%s)", c.Formula)
	}
	var styles []string
	if c.Bold {
		styles = append(styles, "bold")
	}
	if c.Italic {
		styles = append(styles, "italic")
	}
	if c.Strikethrough {
		styles = append(styles, "strike")
	}
	if c.Align != "" {
		styles = append(styles, string(c.Align))
	}
	if c.TextColor != "" {
		styles = append(styles, "color="+c.TextColor)
	}
	if c.BackgroundColor != "" {
		styles = append(styles, "bg="+c.BackgroundColor)
	}
	if len(styles) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(styles, " "))
	}
	return b.String()
}

// runShell reads commands line by line until EOF or quit.
func runShell(in io.Reader, out io.Writer, wb *sheets.Workbook) error {
	prompt := func() {
		fmt.Fprintf(out, "%s!%s> ", wb.Active(), wb.Selection().Cell)
	}
	scanner := bufio.NewScanner(in)
	prompt()
	for scanner.Scan() {
		act, err := parseLine(scanner.Text())
		if err == nil {
			var quit bool
			if quit, err = execute(out, wb, act); quit {
				fmt.Fprintln(out)
				return nil
			}
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		prompt()
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
