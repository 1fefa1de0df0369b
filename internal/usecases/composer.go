// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MyCarrier-DevOps/commit-composer/internal/domain"
	"github.com/MyCarrier-DevOps/commit-composer/internal/infrastructure/textwrap"
)

// Logger defines the logging interface required by the use cases.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// BreakingChangePrefix starts every breaking change note.
const BreakingChangePrefix = "BREAKING CHANGE: "

// conventionalOrder lists well-known type keys in the order they are offered.
var conventionalOrder = []string{
	"feat", "fix", "docs", "style", "refactor", "perf", "test", "build", "ci", "chore", "revert",
}

// NormalizeSubject trims the subject, lowercases its first letter and strips
// trailing dots. Whitespace uncovered by removing the dots is trimmed as well,
// so normalizing twice gives the same result.
func NormalizeSubject(raw string) string {
	subject := strings.TrimSpace(raw)
	if r, size := utf8.DecodeRuneInString(subject); size > 0 && unicode.IsUpper(r) {
		subject = string(unicode.ToLower(r)) + subject[size:]
	}
	return strings.TrimRightFunc(subject, func(r rune) bool {
		return r == '.' || unicode.IsSpace(r)
	})
}

// headerLength is the width taken by "type(scope): " before the subject.
func headerLength(answers domain.Answers) int {
	length := utf8.RuneCountInString(answers.Type) + 2
	if answers.Scope != "" {
		length += utf8.RuneCountInString(answers.Scope) + 2
	}
	return length
}

// usesBranchPrefix reports whether the header carries the branch segment.
func usesBranchPrefix(answers domain.Answers, branch domain.Branch) bool {
	return answers.PrefixWithBranchName && branch.Present()
}

// MaxSummaryLength is the number of characters left for the subject given the
// answers collected so far. It must be recomputed on every call because type
// and scope may still change before the subject is final.
func MaxSummaryLength(cfg domain.Config, answers domain.Answers, branch domain.Branch) int {
	branchPenalty := 0
	if usesBranchPrefix(answers, branch) {
		branchPenalty = utf8.RuneCountInString(branch.Name) + 1
	}
	return cfg.MaxHeaderWidth - headerLength(answers) - branchPenalty
}

// ValidateSubject checks the normalized subject against the current limit.
func ValidateSubject(cfg domain.Config, branch domain.Branch, subject string, answers domain.Answers) error {
	length := utf8.RuneCountInString(NormalizeSubject(subject))
	if length == 0 {
		return &domain.ValidationError{Err: domain.ErrSubjectRequired}
	}

	limit := MaxSummaryLength(cfg, answers, branch)
	if length > limit {
		return &domain.ValidationError{
			Err: domain.ErrSubjectTooLong,
			Detail: fmt.Sprintf(
				"subject length must be less than or equal to %d characters. Current length is %d characters.",
				limit, length,
			),
		}
	}
	return nil
}

// SubjectFeedback renders the raw subject prefixed by its normalized length,
// highlighted as passing or failing the current limit.
func SubjectFeedback(
	cfg domain.Config,
	branch domain.Branch,
	hl domain.Highlighter,
	subject string,
	answers domain.Answers,
) string {
	length := utf8.RuneCountInString(NormalizeSubject(subject))
	text := "(" + strconv.Itoa(length) + ") " + subject
	if length <= MaxSummaryLength(cfg, answers, branch) {
		return hl.Pass(text)
	}
	return hl.Fail(text)
}

// FilterScope trims the scope and lowercases it unless disabled.
func FilterScope(cfg domain.Config, scope string) string {
	scope = strings.TrimSpace(scope)
	if cfg.DisableScopeLowerCase {
		return scope
	}
	return strings.ToLower(scope)
}

// NeedsBreakingBody reports whether a breaking change was declared without a body.
func NeedsBreakingBody(answers domain.Answers) bool {
	return answers.IsBreaking && answers.Body == ""
}

// ValidateBreakingBody rejects a blank body for a breaking change.
func ValidateBreakingBody(value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.ValidationError{
			Err:    domain.ErrBodyRequired,
			Detail: "body is required for BREAKING CHANGE",
		}
	}
	return nil
}

// SortedTypeKeys returns the configured type keys, well-known conventional
// types first in their usual order, then the rest alphabetically.
func SortedTypeKeys(types map[string]domain.TypeDescriptor) []string {
	keys := make([]string, 0, len(types))
	seen := make(map[string]bool, len(types))
	for _, key := range conventionalOrder {
		if _, ok := types[key]; ok {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	var rest []string
	for key := range types {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// TypeChoices renders one choice per type as "key:" padded to the longest key, then the description.
func TypeChoices(types map[string]domain.TypeDescriptor) []domain.Choice {
	keys := SortedTypeKeys(types)

	width := 0
	for _, key := range keys {
		if n := utf8.RuneCountInString(key); n > width {
			width = n
		}
	}
	width++

	choices := make([]domain.Choice, 0, len(keys))
	for _, key := range keys {
		label := key + ":"
		label += strings.Repeat(" ", width-utf8.RuneCountInString(label))
		choices = append(choices, domain.Choice{
			Name:  label + " " + types[key].Description,
			Value: key,
		})
	}
	return choices
}

func staticMessage(text string) func(domain.Answers) string {
	return func(domain.Answers) string { return text }
}

// BuildQuestions returns the ordered question set for the given configuration
// and branch snapshot. The branch-prefix question exists only when the
// configuration asks for it.
func BuildQuestions(cfg domain.Config, branch domain.Branch, hl domain.Highlighter) []domain.Question {
	questions := []domain.Question{
		{
			Kind:    domain.KindList,
			Name:    domain.QuestionType,
			Message: staticMessage("Select the type of change that you're committing:"),
			Choices: TypeChoices(cfg.Types),
			Default: cfg.DefaultType,
		},
		{
			Kind:    domain.KindInput,
			Name:    domain.QuestionScope,
			Message: staticMessage("What is the scope of this change (e.g. component or file name): (press enter to skip)"),
			Default: cfg.DefaultScope,
			Filter: func(value string) string {
				return FilterScope(cfg, value)
			},
		},
	}

	if cfg.PrefixWithBranch {
		questions = append(questions, domain.Question{
			Kind:    domain.KindConfirm,
			Name:    domain.QuestionPrefixWithBranchName,
			Message: staticMessage(fmt.Sprintf("Do you want to prefix the subject with %s?", branch.Name)),
			When: func(domain.Answers) bool {
				return branch.Present()
			},
		})
	}

	questions = append(questions,
		domain.Question{
			Kind: domain.KindInput,
			Name: domain.QuestionSubject,
			Message: func(answers domain.Answers) string {
				return fmt.Sprintf(
					"Write a short, imperative tense description of the change (max %d chars):\n",
					MaxSummaryLength(cfg, answers, branch),
				)
			},
			Default: cfg.DefaultSubject,
			Validate: func(value string, answers domain.Answers) error {
				return ValidateSubject(cfg, branch, value, answers)
			},
			Transformer: func(value string, answers domain.Answers) string {
				return SubjectFeedback(cfg, branch, hl, value, answers)
			},
			Filter: NormalizeSubject,
		},
		domain.Question{
			Kind:    domain.KindInput,
			Name:    domain.QuestionBody,
			Message: staticMessage("Provide a longer description of the change: (press enter to skip)\n"),
			Default: cfg.DefaultBody,
		},
		domain.Question{
			Kind:    domain.KindConfirm,
			Name:    domain.QuestionIsBreaking,
			Message: staticMessage("Are there any breaking changes?"),
		},
		domain.Question{
			Kind:    domain.KindInput,
			Name:    domain.QuestionBreakingBody,
			Message: staticMessage("A BREAKING CHANGE commit requires a body. Please enter a longer description of the commit itself:\n"),
			Default: "-",
			When:    NeedsBreakingBody,
			Validate: func(value string, _ domain.Answers) error {
				return ValidateBreakingBody(value)
			},
		},
		domain.Question{
			Kind:    domain.KindInput,
			Name:    domain.QuestionBreaking,
			Message: staticMessage("Describe the breaking changes:\n"),
			When: func(answers domain.Answers) bool {
				return answers.IsBreaking
			},
		},
	)

	return questions
}

// Compose assembles the final commit message: the header, the wrapped body and
// the wrapped breaking change note, separated by blank lines. Empty parts are
// left out entirely.
func Compose(cfg domain.Config, answers domain.Answers, branch domain.Branch) string {
	wrapOptions := textwrap.Options{
		Width:   cfg.MaxLineWidth,
		Trim:    true,
		Newline: "\n",
	}

	scope := ""
	if answers.Scope != "" {
		scope = "(" + answers.Scope + ")"
	}

	branchSegment := ""
	if usesBranchPrefix(answers, branch) {
		branchSegment = "#" + branch.Name + " "
	}

	parts := []string{answers.Type + scope + ": " + branchSegment + NormalizeSubject(answers.Subject)}

	if answers.Body != "" {
		if body := textwrap.Wrap(answers.Body, wrapOptions); body != "" {
			parts = append(parts, body)
		}
	}

	if breaking := strings.TrimSpace(answers.Breaking); breaking != "" {
		breaking = BreakingChangePrefix + strings.TrimPrefix(breaking, BreakingChangePrefix)
		parts = append(parts, textwrap.Wrap(breaking, wrapOptions))
	}

	return strings.Join(parts, "\n\n")
}

// Composer is the prompter plugin handed to the host: it builds the question
// set and turns the final answers into the commit message.
type Composer struct {
	config      domain.Config
	resolver    domain.BranchResolver
	highlighter domain.Highlighter
	logger      Logger
	branch      domain.Branch
}

// NewComposer creates a new Composer with the given dependencies.
// The resolver is only consulted when the configuration enables branch prefixes.
func NewComposer(
	cfg domain.Config,
	resolver domain.BranchResolver,
	hl domain.Highlighter,
	log Logger,
) *Composer {
	return &Composer{
		config:      cfg,
		resolver:    resolver,
		highlighter: hl,
		logger:      log,
	}
}

// Questions resolves the branch snapshot (when branch prefixes are enabled) and
// returns the question set bound to it.
func (c *Composer) Questions(ctx context.Context) ([]domain.Question, error) {
	if c.config.PrefixWithBranch {
		branch, err := c.resolveBranch(ctx)
		if err != nil {
			return nil, err
		}
		c.branch = branch
	}

	questions := BuildQuestions(c.config, c.branch, c.highlighter)

	c.logger.Debug(ctx, "built question set", map[string]interface{}{
		"questions":          len(questions),
		"prefix_with_branch": c.config.PrefixWithBranch,
		"branch":             c.branch.Name,
		"max_header_width":   c.config.MaxHeaderWidth,
	})

	return questions, nil
}

// OnComplete composes the commit message from the final answers. When the
// answers ask for the branch prefix, the branch is resolved again and that
// second value is used for the header.
func (c *Composer) OnComplete(ctx context.Context, answers domain.Answers) (string, error) {
	branch := c.branch
	if c.config.PrefixWithBranch && answers.PrefixWithBranchName {
		resolved, err := c.resolveBranch(ctx)
		if err != nil {
			return "", err
		}
		if resolved != c.branch {
			c.logger.Warn(ctx, "branch changed while composing", map[string]interface{}{
				"prompted_branch": c.branch.Name,
				"current_branch":  resolved.Name,
			})
		}
		branch = resolved
	}

	message := Compose(c.config, answers, branch)

	c.logger.Debug(ctx, "composed commit message", map[string]interface{}{
		"type":        answers.Type,
		"scope":       answers.Scope,
		"is_breaking": answers.IsBreaking,
		"length":      len(message),
	})

	return message, nil
}

// Branch returns the branch snapshot taken by Questions.
func (c *Composer) Branch() domain.Branch {
	return c.branch
}

func (c *Composer) resolveBranch(ctx context.Context) (domain.Branch, error) {
	branch, err := c.resolver.ResolveBranch(ctx)
	if err != nil {
		return domain.Branch{}, fmt.Errorf("failed to resolve branch: %w", err)
	}
	if !branch.Present() {
		c.logger.Warn(ctx, "HEAD is detached; branch prefix is unavailable", nil)
	}
	return branch, nil
}
