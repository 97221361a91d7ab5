package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/form"
	"github.com/alexanderramin/fleksjobb/internal/route"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// fieldValidator backs inline validation in huh fields. It carries the
// same rules the Submitter runs, so inline and submit-time messages match.
var fieldValidator = form.NewValidator()

// formAction performs a form's side effect. Session changes and other
// effects that must reach the app model go through fx.
type formAction func(ctx context.Context, data form.Values, fx *effectQueue) (form.Receipt, error)

// formSpec describes one form screen.
type formSpec struct {
	title   string
	route   route.Route
	schema  form.Schema
	initial form.Values
	next    route.Route
	success string
	action  formAction

	intro  string
	links  map[string]route.Route      // keys that leave the form for another route
	layout func(v *formView) *huh.Form // nil builds one group from the schema
	footer func(v *formView) string
}

// formView binds a huh form to a form.Submitter. Fields edit a binding
// of plain strings and bools; submitting validates the whole set, waits
// out the latency in a command and settles with notices and navigation.
// Esc always leaves the form, whatever the submission state.
type formView struct {
	id      ViewID
	state   *SharedState
	spec    formSpec
	sub     *form.Submitter
	scope   *form.Scope
	effects *effectQueue
	bind    *binding
	form    *huh.Form
	errs    form.Errors
	busy    bool
	spin    spinner.Model
}

// submitDoneMsg carries the outcome of a background Complete back to the
// form view that started it.
type submitDoneMsg struct {
	view    *formView
	outcome form.Outcome
	err     error
}

func newFormView(state *SharedState, id ViewID, spec formSpec) *formView {
	fx := &effectQueue{}
	cfg := state.App.Config
	sub := form.NewSubmitter(spec.schema,
		func(ctx context.Context, data form.Values) (form.Receipt, error) {
			return spec.action(ctx, data, fx)
		},
		form.WithLatency(cfg.Latency),
		form.WithNotifier(fx),
		form.WithNavigator(fx),
		form.WithNext(spec.next),
		form.WithLogger(state.App.logger()),
		form.WithTitles(spec.success, ""),
	)
	v := &formView{
		id:      id,
		state:   state,
		spec:    spec,
		sub:     sub,
		scope:   form.NewScope(context.Background()),
		effects: fx,
		bind:    newBinding(spec.schema, spec.initial),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
	}
	v.form = v.buildForm()
	return v
}

func (v *formView) ID() ViewID          { return v.id }
func (v *formView) Title() string       { return v.spec.title }
func (v *formView) Route() route.Route  { return v.spec.route }
func (v *formView) Status() form.Status { return v.sub.Status() }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// Close cancels a submission still waiting on its latency.
func (v *formView) Close() {
	v.scope.Close()
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		if msg.view != v {
			return v, nil
		}
		return v, v.settle(msg)

	case spinner.TickMsg:
		if !v.busy {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, popView()
		case "ctrl+s":
			return v, v.submit()
		}
		if to, ok := v.spec.links[msg.String()]; ok && !v.busy {
			return v, func() tea.Msg { return navigateMsg{to: to, replace: true} }
		}
		if v.busy {
			return v, nil
		}
	}

	f, cmd := v.form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		v.form = hf
	}
	if v.form.State == huh.StateCompleted && !v.busy {
		return v, tea.Batch(cmd, v.submit())
	}
	return v, cmd
}

// submit starts a submission. Validation runs synchronously so a second
// submit in the same frame is ignored; the latency and the action run in
// a command tied to the view's scope.
func (v *formView) submit() tea.Cmd {
	data, err := v.sub.Begin(v.scope.Context(), v.bind.values())
	switch {
	case errors.Is(err, form.ErrInFlight):
		return nil
	case err != nil:
		v.errs = v.sub.Errors()
		v.form = v.buildForm()
		return tea.Batch(v.effects.flush(), v.form.Init())
	}
	v.errs = nil
	v.busy = true
	return tea.Batch(v.effects.flush(), v.spin.Tick, v.complete(data))
}

func (v *formView) complete(data form.Values) tea.Cmd {
	sub, scope := v.sub, v.scope
	return func() tea.Msg {
		done := make(chan submitDoneMsg, 1)
		if !scope.Go(func(ctx context.Context) {
			outcome, err := sub.Complete(ctx, data)
			done <- submitDoneMsg{view: v, outcome: outcome, err: err}
		}) {
			return nil
		}
		return <-done
	}
}

func (v *formView) settle(msg submitDoneMsg) tea.Cmd {
	v.busy = false
	fx := v.effects.flush()
	switch msg.outcome {
	case form.OutcomeFailed:
		v.errs = v.sub.Errors()
		v.form = v.buildForm()
		return tea.Batch(fx, v.form.Init())
	case form.OutcomeCanceled:
		return nil
	}
	return fx
}

func (v *formView) buildForm() *huh.Form {
	var f *huh.Form
	if v.spec.layout != nil {
		f = v.spec.layout(v)
	} else {
		fields := make([]huh.Field, 0, len(v.spec.schema.Fields))
		for _, sf := range v.spec.schema.Fields {
			fields = append(fields, v.field(sf))
		}
		f = huh.NewForm(huh.NewGroup(fields...))
	}
	return f.WithTheme(fleksjobbHuhTheme()).WithShowHelp(false)
}

// field builds the huh input for a schema field: a confirm for bools, a
// select for enum rules, a text area for long text and a single-line
// input otherwise.
func (v *formView) field(f form.Field) huh.Field {
	desc := v.errs[f.Name]
	validate := func(s string) error {
		return fieldValidator.ValidateField(context.Background(), f, s)
	}

	if f.Kind == form.KindBool {
		c := huh.NewConfirm().
			Title(f.Label).
			Affirmative("Yes").
			Negative("No").
			Value(v.bind.flag(f.Name))
		if f.Required() {
			c = c.Validate(func(b bool) error {
				return fieldValidator.ValidateField(context.Background(), f, b)
			})
		}
		if desc != "" {
			c = c.Description(desc)
		}
		return c
	}

	if opts := ruleOptions(f.Rules); len(opts) > 0 {
		s := huh.NewSelect[string]().
			Title(f.Label).
			Options(huh.NewOptions(opts...)...).
			Value(v.bind.text(f.Name))
		if desc != "" {
			s = s.Description(desc)
		}
		return s
	}

	if n := ruleMax(f.Rules); f.Kind == form.KindText && n > 200 {
		t := huh.NewText().
			Title(f.Label).
			Lines(4).
			CharLimit(n).
			Value(v.bind.text(f.Name)).
			Validate(validate)
		if desc != "" {
			t = t.Description(desc)
		}
		return t
	}

	in := huh.NewInput().
		Title(f.Label).
		Placeholder(placeholder(f)).
		Value(v.bind.text(f.Name)).
		Validate(validate)
	if strings.Contains(f.Name, "password") {
		in = in.EchoMode(huh.EchoModePassword)
	}
	if desc != "" {
		in = in.Description(desc)
	}
	return in
}

func (v *formView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.spec.intro != "" {
		b.WriteString("  " + v.spec.intro + "\n\n")
	}
	b.WriteString(v.form.View())
	if v.spec.footer != nil {
		if s := v.spec.footer(v); s != "" {
			b.WriteString("\n" + s)
		}
	}
	if len(v.errs) > 0 {
		b.WriteString("\n")
		for _, msg := range v.errs.Ordered(v.spec.schema) {
			b.WriteString("  " + formatter.StyleRed.Render("✖ "+msg) + "\n")
		}
	}
	if v.busy {
		b.WriteString("\n  " + v.spin.View() + " " + formatter.Dim("Submitting..."))
	}
	return b.String()
}

// setValue writes a field value directly, bypassing the widgets.
func (v *formView) setValue(name string, val any) {
	v.bind.set(name, val)
}

// ── binding ──────────────────────────────────────────────────────────────────

// binding holds the raw input of every schema field as the pointers huh
// widgets edit in place.
type binding struct {
	texts map[string]*string
	flags map[string]*bool
}

func newBinding(s form.Schema, initial form.Values) *binding {
	b := &binding{texts: map[string]*string{}, flags: map[string]*bool{}}
	for _, f := range s.Fields {
		if f.Kind == form.KindBool {
			val := initial.Bool(f.Name)
			b.flags[f.Name] = &val
			continue
		}
		val := initial.String(f.Name)
		b.texts[f.Name] = &val
	}
	return b
}

func (b *binding) text(name string) *string {
	p, ok := b.texts[name]
	if !ok {
		p = new(string)
		b.texts[name] = p
	}
	return p
}

func (b *binding) flag(name string) *bool {
	p, ok := b.flags[name]
	if !ok {
		p = new(bool)
		b.flags[name] = p
	}
	return p
}

func (b *binding) set(name string, val any) {
	switch x := val.(type) {
	case bool:
		*b.flag(name) = x
	case string:
		*b.text(name) = x
	case []string:
		*b.text(name) = strings.Join(x, ", ")
	}
}

func (b *binding) values() form.Values {
	out := make(form.Values, len(b.texts)+len(b.flags))
	for n, p := range b.texts {
		out[n] = *p
	}
	for n, p := range b.flags {
		out[n] = *p
	}
	return out
}

// ── rule helpers ─────────────────────────────────────────────────────────────

func ruleOptions(rules string) []string {
	for _, tag := range strings.Split(rules, ",") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(tag), "oneof="); ok {
			return strings.Fields(rest)
		}
	}
	return nil
}

func ruleMax(rules string) int {
	for _, tag := range strings.Split(rules, ",") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(tag), "max="); ok {
			n, _ := strconv.Atoi(rest)
			return n
		}
	}
	return 0
}

func placeholder(f form.Field) string {
	switch f.Kind {
	case form.KindDate:
		return "YYYY-MM-DD"
	case form.KindList:
		return "comma separated"
	case form.KindDecimal:
		return "e.g. 7.5"
	}
	return ""
}
