package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/spf13/cobra"
)

// writerNotifier prints notices as lines: successes to out, errors to errOut.
type writerNotifier struct {
	out, errOut io.Writer
}

func (n writerNotifier) Notify(no form.Notice) {
	w, mark := n.out, formatter.StyleGreen.Render("✔")
	switch no.Kind {
	case form.NoticeError:
		w, mark = n.errOut, formatter.StyleRed.Render("✖")
	case form.NoticeInfo:
		mark = formatter.StyleBlue.Render("•")
	}
	line := mark + " " + formatter.Bold(no.Title)
	if no.Description != "" {
		line += "  " + no.Description
	}
	fmt.Fprintln(w, line)
}

// writerNavigator points the user at the screen the TUI would open next.
type writerNavigator struct {
	out io.Writer
}

func (n writerNavigator) Navigate(to route.Route) {
	fmt.Fprintln(n.out, formatter.Dim("→ "+to.String()))
}

// submitForm runs values through the same Submitter the TUI uses. Field
// errors are listed one per line before the error is returned.
func submitForm(cmd *cobra.Command, app *App, schema form.Schema, values form.Values, success string, action form.Action) error {
	sub := form.NewSubmitter(schema, action,
		form.WithLatency(app.Config.Latency),
		form.WithNotifier(writerNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}),
		form.WithNavigator(writerNavigator{out: cmd.OutOrStdout()}),
		form.WithLogger(app.logger()),
		form.WithTitles(success, ""),
	)

	stop := func() {}
	if app.interactive() {
		stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Submitting...")
	}
	_, err := sub.Submit(cmd.Context(), values)
	stop()

	if errs := sub.Errors(); len(errs) > 0 {
		for _, msg := range errs.Ordered(schema) {
			fmt.Fprintln(cmd.ErrOrStderr(), "  "+formatter.StyleRed.Render("- "+msg))
		}
	}
	return err
}
