package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stroomai/leadgen/modules/brief"
	"github.com/stroomai/leadgen/modules/brief/wizard"
)

var errAborted = errors.New("brief not submitted")

func wizardCmd() *cobra.Command {
	var flags clientFlags
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Fill in a project brief step by step and submit it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := wizard.New(flags.client())
			return runWizard(cmd.Context(), w, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	return cmd
}

type choice struct {
	value string
	label string
}

func choices[T ~string](all []T, label func(T) string) []choice {
	out := make([]choice, len(all))
	for i, v := range all {
		out[i] = choice{value: string(v), label: label(v)}
	}
	return out
}

func fieldChoices(f wizard.Field) []choice {
	switch f {
	case wizard.FieldStage:
		return choices(brief.AllStages(), brief.Stage.Label)
	case wizard.FieldTimeline:
		return choices(brief.AllTimelines(), brief.Timeline.Label)
	case wizard.FieldDataAvailability:
		return choices(brief.AllDataAvailability(), brief.DataAvailability.Label)
	case wizard.FieldEngagementModel:
		return choices(brief.AllEngagementModels(), brief.EngagementModel.Label)
	case wizard.FieldBudgetRange:
		return choices(brief.AllBudgetRanges(), brief.BudgetRange.Label)
	default:
		return nil
	}
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(format string, args ...any) (string, error) {
	fmt.Fprintf(p.out, format, args...)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// runWizard walks the steps in order. An empty answer keeps the current
// value; "b" on the confirmation prompt goes back one step.
func runWizard(ctx context.Context, w *wizard.Wizard, in io.Reader, out io.Writer) error {
	p := &prompter{in: bufio.NewScanner(in), out: out}

	for !w.Submitted() {
		step := w.Step()
		fmt.Fprintf(out, "\n[%d/%d] %s\n", step, wizard.LastStep, step)

		for _, f := range step.Fields() {
			if err := askField(p, w, f); err != nil {
				return err
			}
		}

		verb := "continue"
		if step == wizard.LastStep {
			verb = "submit"
		}
		answer, err := p.ask("Press enter to %s or b to go back: ", verb)
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "b") {
			if err := w.Back(ctx); err != nil {
				fmt.Fprintln(out, err)
			}
			continue
		}

		if step != wizard.LastStep {
			if err := w.Next(ctx); err != nil {
				fmt.Fprintln(out, w.Error())
			}
			continue
		}

		if !w.CanSubmit() {
			fmt.Fprintln(out, "Please complete every required field before submitting.")
			continue
		}
		res, err := w.Submit(ctx)
		fmt.Fprintln(out, res.Message)
		if w.Submitted() {
			if res.ID != "" {
				fmt.Fprintf(out, "Reference: %s\n", res.ID)
			}
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, err)
		}
		if !res.Retryable() {
			continue
		}
		answer, err = p.ask("Retry now? [Y/n]: ")
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "n") {
			return errAborted
		}
	}
	return nil
}

func askField(p *prompter, w *wizard.Wizard, f wizard.Field) error {
	opts := fieldChoices(f)
	for {
		current := w.Value(f)
		label := f.String()
		if !f.Required() {
			label += " (optional)"
		}
		if f == wizard.FieldDescription {
			label = fmt.Sprintf("%s [%d/%d min]", label, w.DescriptionLength(), wizard.MinDescriptionLength)
		}
		for i, o := range opts {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.label)
		}

		answer, err := p.ask("%s [%s]: ", label, current)
		if err != nil {
			return err
		}
		if answer == "" {
			return nil
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(opts) {
			answer = opts[n-1].value
		}

		err = w.Set(f, answer)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, wizard.ErrInvalidValue):
			fmt.Fprintln(p.out, err)
		default:
			return err
		}
	}
}
