// Package domain defines the core entities and interfaces for commit-composer.
package domain

// TypeDescriptor describes one selectable change type.
type TypeDescriptor struct {
	// Description is shown next to the type key in the type picker.
	Description string `mapstructure:"description"`

	// Title is a human-readable name for the type (e.g. "Features").
	Title string `mapstructure:"title"`
}

// Config holds the composer configuration for a single invocation.
// It is built once by the host and never mutated afterwards.
type Config struct {
	// Types maps the short type key (e.g. "feat") to its descriptor.
	Types map[string]TypeDescriptor `mapstructure:"types"`

	DefaultType    string `mapstructure:"defaultType"`
	DefaultScope   string `mapstructure:"defaultScope"`
	DefaultSubject string `mapstructure:"defaultSubject"`
	DefaultBody    string `mapstructure:"defaultBody"`

	// DisableScopeLowerCase keeps the scope casing as typed (only trimmed).
	DisableScopeLowerCase bool `mapstructure:"disableScopeLowerCase"`

	// PrefixWithBranch adds the branch-prefix confirmation question.
	PrefixWithBranch bool `mapstructure:"prefixWithBranch"`

	// MaxHeaderWidth is the maximum length of the header line.
	MaxHeaderWidth int `mapstructure:"maxHeaderWidth"`

	// MaxLineWidth is the column at which body and breaking notes are wrapped.
	MaxLineWidth int `mapstructure:"maxLineWidth"`
}

// Branch is the repository branch snapshot taken before prompting.
type Branch struct {
	// Name is the short branch name (empty string if HEAD is detached).
	Name string

	// IsDetached indicates HEAD does not point at a branch.
	IsDetached bool
}

// Present reports whether a branch name is available.
func (b Branch) Present() bool {
	return !b.IsDetached && b.Name != ""
}

// Question names, also used as keys when answers are stored.
const (
	QuestionType                 = "type"
	QuestionScope                = "scope"
	QuestionPrefixWithBranchName = "prefixWithBranchName"
	QuestionSubject              = "subject"
	QuestionBody                 = "body"
	QuestionIsBreaking           = "isBreaking"
	QuestionBreakingBody         = "breakingBody"
	QuestionBreaking             = "breaking"
)

// Answers is the record filled in by the prompt engine, one question at a time.
type Answers struct {
	Type                 string
	Scope                string
	PrefixWithBranchName bool
	Subject              string
	Body                 string
	IsBreaking           bool
	BreakingBody         string
	Breaking             string
}

// SetString stores a text answer under the given question name.
func (a *Answers) SetString(name, value string) error {
	switch name {
	case QuestionType:
		a.Type = value
	case QuestionScope:
		a.Scope = value
	case QuestionSubject:
		a.Subject = value
	case QuestionBody:
		a.Body = value
	case QuestionBreakingBody:
		a.BreakingBody = value
	case QuestionBreaking:
		a.Breaking = value
	default:
		return &UnknownQuestionError{Name: name}
	}
	return nil
}

// SetBool stores a confirmation answer under the given question name.
func (a *Answers) SetBool(name string, value bool) error {
	switch name {
	case QuestionPrefixWithBranchName:
		a.PrefixWithBranchName = value
	case QuestionIsBreaking:
		a.IsBreaking = value
	default:
		return &UnknownQuestionError{Name: name}
	}
	return nil
}

// QuestionKind tags the input style of a question.
type QuestionKind string

// Question kinds understood by the prompt engine.
const (
	KindList    QuestionKind = "list"
	KindInput   QuestionKind = "input"
	KindConfirm QuestionKind = "confirm"
)

// Choice is one option of a list question.
type Choice struct {
	// Name is the rendered label.
	Name string

	// Value is stored in the answers when the choice is picked.
	Value string
}

// Question describes a single prompt. Every function field is optional and
// must be pure: it may only read the answers collected so far.
type Question struct {
	Kind QuestionKind
	Name string

	// Message renders the prompt text from the partial answers.
	Message func(answers Answers) string

	// Default is used for list and input questions when the user enters nothing.
	Default string

	// DefaultConfirm is used for confirm questions when the user enters nothing.
	DefaultConfirm bool

	Choices []Choice

	// Validate checks the raw input; a non-nil error is shown and the question re-asked.
	Validate func(value string, answers Answers) error

	// Filter transforms the raw input before it is stored.
	Filter func(value string) string

	// Transformer renders feedback for the raw input.
	Transformer func(value string, answers Answers) string

	// When decides whether the question is asked at all.
	When func(answers Answers) bool
}

// Ask reports whether the question applies to the given partial answers.
func (q Question) Ask(answers Answers) bool {
	return q.When == nil || q.When(answers)
}

// Text returns the prompt text for the given partial answers.
func (q Question) Text(answers Answers) string {
	if q.Message == nil {
		return q.Name
	}
	return q.Message(answers)
}

// SessionOutput is the result of a completed composition session.
type SessionOutput struct {
	// Message is the composed commit message.
	Message string

	// Branch is the branch snapshot taken before prompting.
	Branch Branch

	// CommitHash is set when a commit was created.
	CommitHash string
}

// Default header and line widths.
const (
	DefaultMaxHeaderWidth = 100
	DefaultMaxLineWidth   = 100
)
