package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/zoobzio/ormql"
	"github.com/zoobzio/ormql/internal/config"
)

// NewCommandsCommand creates the commands command.
func NewCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands [filter]",
		Short: "List AST commands",
		Long: `List every AST command with its sibling order per dialect, accepted
argument count and aggregate flags. An optional filter keeps commands whose
name contains it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			infos := ormql.Commands()
			if len(args) == 1 {
				infos = filterCommands(infos, args[0])
			}

			switch strings.ToLower(cfg.Output) {
			case "json":
				return renderCommandsJSON(cmd.OutOrStdout(), infos)
			case "md", "markdown":
				commandsTable(cmd.OutOrStdout(), infos).RenderMarkdown()
			default:
				commandsTable(cmd.OutOrStdout(), infos).Render()
			}
			return nil
		},
	}
}

func filterCommands(infos []ormql.CommandInfo, filter string) []ormql.CommandInfo {
	out := infos[:0:0]
	for _, info := range infos {
		if strings.Contains(info.Command.String(), filter) {
			out = append(out, info)
		}
	}
	return out
}

func commandsTable(w io.Writer, infos []ormql.CommandInfo) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"Command"}
	for _, d := range ormql.Dialects() {
		header = append(header, d.String())
	}
	header = append(header, "Args", "Flags")
	t.AppendHeader(header)

	for _, info := range infos {
		row := table.Row{info.Command.String()}
		for _, d := range ormql.Dialects() {
			row = append(row, orderText(info.Order[d]))
		}
		row = append(row, argsText(info), flagsText(info))
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d commands", len(infos))})
	return t
}

func orderText(n int) string {
	if n < 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func argsText(info ormql.CommandInfo) string {
	switch {
	case info.MaxArgs < 0 && info.MinArgs == 0:
		return "any"
	case info.MaxArgs < 0:
		return fmt.Sprintf("%d+", info.MinArgs)
	case info.MinArgs == info.MaxArgs:
		return strconv.Itoa(info.MinArgs)
	default:
		return fmt.Sprintf("%d-%d", info.MinArgs, info.MaxArgs)
	}
}

func flagsText(info ormql.CommandInfo) string {
	var flags []string
	if info.Aggregate {
		flags = append(flags, "aggregate")
	}
	if info.Star {
		flags = append(flags, "star")
	}
	if info.Distinct {
		flags = append(flags, "distinct")
	}
	if info.Negatable {
		flags = append(flags, "negatable")
	}
	return strings.Join(flags, ",")
}

type commandJSON struct {
	Name    string         `json:"name"`
	Order   map[string]int `json:"order"`
	MinArgs int            `json:"min_args"`
	MaxArgs int            `json:"max_args"`
	Flags   []string       `json:"flags,omitempty"`
}

func renderCommandsJSON(w io.Writer, infos []ormql.CommandInfo) error {
	out := make([]commandJSON, len(infos))
	for i, info := range infos {
		order := make(map[string]int, len(info.Order))
		for d, n := range info.Order {
			order[d.String()] = n
		}
		var flags []string
		if f := flagsText(info); f != "" {
			flags = strings.Split(f, ",")
		}
		out[i] = commandJSON{
			Name:    info.Command.String(),
			Order:   order,
			MinArgs: info.MinArgs,
			MaxArgs: info.MaxArgs,
			Flags:   flags,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
