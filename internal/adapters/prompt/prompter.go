// Package prompt provides the terminal prompt engine that asks the composer's
// questions and collects the answers.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
)

// Logger defines the logging interface for the prompt engine.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
}

// ListPicker lets the user choose one entry of a list question interactively.
type ListPicker interface {
	// Pick returns the Value of the chosen entry.
	// Returns domain.ErrPromptAborted if the user cancels.
	Pick(ctx context.Context, title string, choices []domain.Choice, defaultValue string) (string, error)
}

// LinePrompter implements domain.Prompter by reading one line of input per question.
// List questions go through the ListPicker when one is configured.
type LinePrompter struct {
	in     *bufio.Reader
	out    io.Writer
	hl     domain.Highlighter
	picker ListPicker
	logger Logger
}

// NewLinePrompter creates a new LinePrompter. picker may be nil, in which case
// list questions are answered by number or by value.
func NewLinePrompter(in io.Reader, out io.Writer, hl domain.Highlighter, picker ListPicker, log Logger) *LinePrompter {
	return &LinePrompter{
		in:     bufio.NewReader(in),
		out:    out,
		hl:     hl,
		picker: picker,
		logger: log,
	}
}

// Prompt asks every question whose When predicate holds against the answers
// collected so far. Invalid input is reported and the same question is asked again.
func (p *LinePrompter) Prompt(ctx context.Context, questions []domain.Question) (*domain.Answers, error) {
	answers := &domain.Answers{}

	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPromptAborted, err)
		}

		if !q.Ask(*answers) {
			p.logger.Debug(ctx, "skipping question", map[string]interface{}{
				"question": q.Name,
			})
			continue
		}

		var err error
		switch q.Kind {
		case domain.KindList:
			err = p.askList(ctx, q, answers)
		case domain.KindConfirm:
			err = p.askConfirm(ctx, q, answers)
		default:
			err = p.askInput(ctx, q, answers)
		}
		if err != nil {
			return nil, err
		}
	}

	return answers, nil
}

func (p *LinePrompter) askInput(ctx context.Context, q domain.Question, answers *domain.Answers) error {
	for {
		p.printQuestion(q.Text(*answers), q.Default)

		value, err := p.readLine()
		if err != nil {
			return err
		}
		if value == "" {
			value = q.Default
		}

		if q.Transformer != nil {
			p.println("  " + q.Transformer(value, *answers))
		}

		if q.Filter != nil {
			value = q.Filter(value)
		}

		if q.Validate != nil {
			if verr := q.Validate(value, *answers); verr != nil {
				p.reportInvalid(ctx, q.Name, verr)
				continue
			}
		}

		return answers.SetString(q.Name, value)
	}
}

func (p *LinePrompter) askConfirm(ctx context.Context, q domain.Question, answers *domain.Answers) error {
	hint := "y/N"
	if q.DefaultConfirm {
		hint = "Y/n"
	}

	for {
		p.printf("? %s (%s) ", q.Text(*answers), hint)

		value, err := p.readLine()
		if err != nil {
			return err
		}

		confirmed, ok := parseConfirm(value, q.DefaultConfirm)
		if !ok {
			p.reportInvalid(ctx, q.Name, errors.New("please answer y or n"))
			continue
		}
		return answers.SetBool(q.Name, confirmed)
	}
}

func (p *LinePrompter) askList(ctx context.Context, q domain.Question, answers *domain.Answers) error {
	if p.picker != nil {
		value, err := p.picker.Pick(ctx, q.Text(*answers), q.Choices, q.Default)
		if err != nil {
			return err
		}
		return answers.SetString(q.Name, value)
	}

	for {
		p.printf("? %s\n", q.Text(*answers))
		for i, c := range q.Choices {
			marker := " "
			if c.Value == q.Default {
				marker = "*"
			}
			p.printf(" %s %2d) %s\n", marker, i+1, c.Name)
		}
		p.printf("> ")

		value, err := p.readLine()
		if err != nil {
			return err
		}

		choice, ok := pickChoice(q.Choices, value, q.Default)
		if !ok {
			p.reportInvalid(ctx, q.Name, fmt.Errorf("%q is not one of the listed options", value))
			continue
		}
		return answers.SetString(q.Name, choice)
	}
}

// pickChoice resolves input to a choice value: blank selects the default (or
// the first choice), a number selects by position, anything else must match a value.
func pickChoice(choices []domain.Choice, input, defaultValue string) (string, bool) {
	if len(choices) == 0 {
		return "", false
	}

	input = strings.TrimSpace(input)
	if input == "" {
		if defaultValue != "" {
			for _, c := range choices {
				if c.Value == defaultValue {
					return c.Value, true
				}
			}
		}
		return choices[0].Value, true
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1].Value, true
		}
		return "", false
	}

	for _, c := range choices {
		if strings.EqualFold(c.Value, input) {
			return c.Value, true
		}
	}
	return "", false
}

// parseConfirm interprets a yes/no answer; blank input yields the default.
func parseConfirm(input string, defaultValue bool) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return defaultValue, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

// printQuestion writes the prompt text with its default. Messages ending in a
// newline take their input on the following line.
func (p *LinePrompter) printQuestion(text, defaultValue string) {
	multiline := strings.HasSuffix(text, "\n")
	text = strings.TrimRight(text, "\n")
	if defaultValue != "" {
		text += " (" + defaultValue + ")"
	}
	if multiline {
		p.printf("? %s\n> ", text)
		return
	}
	p.printf("? %s ", text)
}

func (p *LinePrompter) reportInvalid(ctx context.Context, question string, err error) {
	p.println(p.hl.Fail(">> " + err.Error()))
	p.logger.Debug(ctx, "invalid answer", map[string]interface{}{
		"question": question,
		"reason":   err.Error(),
	})
}

// readLine returns one line of input without its line ending.
// Returns domain.ErrPromptAborted when input ends before a line is read.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", domain.ErrPromptAborted
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// printf and println are best-effort: a failed terminal write has no recovery.
func (p *LinePrompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *LinePrompter) println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}
