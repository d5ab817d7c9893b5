package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/weathersafe/admin-console/internal/core/ports"
)

// Renderer prints screen state to the terminal. It holds no state of its own
// beyond the output writer.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// RenderView prints one screen: a spinner line while loading, the error line
// on a failed load, and otherwise the table. Zero rows render an explicit
// "none available" line, never a blank table.
func (r *Renderer) RenderView(v TableView) {
	fmt.Fprintf(r.out, "\n== %s ==\n", v.Title())

	phase, loadErr := v.State()
	switch phase {
	case PhaseIdle, PhaseLoading:
		fmt.Fprintln(r.out, "Loading...")
		return
	case PhaseLoadError:
		fmt.Fprintf(r.out, "Failed to load: %s\n", loadErr)
		return
	}

	headers, rows := v.Table()
	if len(rows) == 0 {
		fmt.Fprintln(r.out, "No records available.")
		return
	}

	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// RenderMenu prints the navigation menu for the logged-in role.
func (r *Renderer) RenderMenu(name string, menu []ScreenID) {
	fmt.Fprintf(r.out, "\nWelcome back %s\n", name)
	for i, id := range menu {
		fmt.Fprintf(r.out, "  %d) %s\n", i+1, id)
	}
	fmt.Fprintln(r.out, "  img <file>) upload an image")
	fmt.Fprintln(r.out, "  q) logout")
}

// RenderFieldErrors prints validation messages next to their field names.
func (r *Renderer) RenderFieldErrors(fields map[string][]string) {
	for field, msgs := range fields {
		for _, msg := range msgs {
			fmt.Fprintf(r.out, "  %s: %s\n", field, msg)
		}
	}
}

// Toast prints a transient line for a foreground push message. Display only;
// it never touches session or screen state.
func (r *Renderer) Toast(msg ports.PushMessage) {
	fmt.Fprintf(r.out, "\n[notification] %s: %s\n", msg.Title, msg.Body)
}
