package trace

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

// AnnotateOptions control the output of [Annotate].
type AnnotateOptions struct {
	// Plain writes one call per line followed by its explanation, instead
	// of a table.
	Plain bool
	// Color highlights failed calls.
	Color bool
	// Width at which explanations wrap in table output. Zero means 60.
	Width int
}

// Annotate writes events to w, each followed by an explanation.
//
// Events without a sequence number are numbered by their position.
func Annotate(w io.Writer, events []Event, opts AnnotateOptions) error {
	rows := make([][3]string, 0, len(events))
	for i, event := range events {
		seq := event.Seq()
		if seq == 0 {
			seq = i + 1
		}

		text, note := format(event, opts.Plain), explain(event)
		if opts.Color && event.Call != nil && event.Call.Failed() {
			text = color.New(color.FgRed).Render(text)
		}

		rows = append(rows, [3]string{strconv.Itoa(seq), text, note})
	}

	if opts.Plain {
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%s.\t%s\n", row[0], row[1]); err != nil {
				return err
			}
			if row[2] == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "\t%s\n", row[2]); err != nil {
				return err
			}
		}
		return nil
	}

	width := opts.Width
	if width == 0 {
		width = 60
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Call", "Explanation"})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(true)
	table.SetColWidth(width)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")

	for _, row := range rows {
		table.Append(row[:])
	}
	table.Render()

	return nil
}

func explain(event Event) string {
	switch {
	case event.Call != nil:
		return Explain(event.Call)
	case event.Exit != nil:
		return ExplainExit(event.Exit)
	default:
		return ""
	}
}
