package engine

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/amadrinan/quiz/internal/quiz"
	"github.com/amadrinan/quiz/internal/render"
)

// Action tells the session host what to do after a line is consumed.
type Action int

const (
	// ActionContinue means the session keeps reading lines.
	ActionContinue Action = iota
	// ActionQuit means the session is over: close the transport.
	ActionQuit
)

// mode is the interpreter state between lines.
type mode int

const (
	modeIdle mode = iota
	modeAddQuestion
	modeAddAnswer
	modeEditQuestion
	modeEditAnswer
	modeTestAnswer
	modePlayAnswer
)

const promptText = "quiz > "

// Engine holds one session's interpreter state.
type Engine struct {
	store quiz.Store
	out   *render.Printer
	rng   *rand.Rand

	mode    mode
	pending quiz.Record // record being edited or tested
	first   string      // step-1 value of a two-step prompt
	round   *playRound
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand overrides the random source used by play mode.
// Tests use a fixed seed for deterministic draws.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// New creates an idle Engine bound to a store and an output sink.
func New(store quiz.Store, out *render.Printer, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		out:   out,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Greet writes the session banner and the first prompt.
func (e *Engine) Greet() {
	e.out.Big("Quiz", render.Green)
	e.prompt()
}

// Feed consumes one input line.
//
// Recoverable errors (missing/invalid id, not found, validation) are
// rendered to the user and the session continues. A non-nil error return
// means the store itself failed and the session must not continue.
func (e *Engine) Feed(ctx context.Context, line string) (Action, error) {
	switch e.mode {
	case modeAddQuestion:
		return e.stepAddQuestion(line)
	case modeAddAnswer:
		return e.stepAddAnswer(ctx, line)
	case modeEditQuestion:
		return e.stepEditQuestion(line)
	case modeEditAnswer:
		return e.stepEditAnswer(ctx, line)
	case modeTestAnswer:
		return e.stepTestAnswer(line)
	case modePlayAnswer:
		return e.stepPlayAnswer(ctx, line)
	}
	return e.dispatch(ctx, line)
}

// dispatch handles a line received in the idle state.
func (e *Engine) dispatch(ctx context.Context, line string) (Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		e.prompt()
		return ActionContinue, nil
	}
	cmd := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "help", "h":
		e.cmdHelp()
	case "list":
		return e.finish(e.cmdList(ctx))
	case "show":
		return e.finish(e.cmdShow(ctx, arg))
	case "add":
		e.mode = modeAddQuestion
	case "delete":
		return e.finish(e.cmdDelete(ctx, arg))
	case "edit":
		return e.finish(e.cmdEdit(ctx, arg))
	case "test":
		return e.finish(e.cmdTest(ctx, arg))
	case "play", "p":
		return e.finish(e.cmdPlay(ctx))
	case "credits":
		e.cmdCredits()
	case "quit", "q":
		e.out.Log("Goodbye, come back soon!")
		return ActionQuit, nil
	default:
		e.out.Logf("unknown command: '%s'", cmd)
		e.out.Log("use help to see all available commands")
	}
	e.prompt()
	return ActionContinue, nil
}

// finish renders recoverable errors, resets the interpreter state for
// them, and re-prompts. Store failures propagate to the host.
func (e *Engine) finish(err error) (Action, error) {
	if err != nil {
		if !quiz.IsRecoverable(err) {
			return ActionContinue, err
		}
		e.out.Errorf("%v", err)
		e.reset()
	}
	e.prompt()
	return ActionContinue, nil
}

func (e *Engine) reset() {
	e.mode = modeIdle
	e.pending = quiz.Record{}
	e.first = ""
	e.round = nil
}

// prompt writes the prompt matching the current state.
func (e *Engine) prompt() {
	switch e.mode {
	case modeAddQuestion:
		e.out.Prompt("Enter a question: ")
	case modeAddAnswer:
		e.out.Prompt("Enter the answer: ")
	case modeEditQuestion:
		e.out.Prompt("Enter a question [" + e.pending.Question + "]: ")
	case modeEditAnswer:
		e.out.Prompt("Enter the answer [" + e.pending.Answer + "]: ")
	case modeTestAnswer:
		e.out.Prompt(e.pending.Question + "? ")
	case modePlayAnswer:
		e.out.Prompt(e.round.current.Question + "? ")
	default:
		e.out.Prompt(promptText)
	}
}

func (e *Engine) cmdHelp() {
	e.out.Log("Commands:")
	e.out.Log("  h|help - Show this help.")
	e.out.Log("  list - List all existing quizzes.")
	e.out.Log("  show <id> - Show the question and the answer of the given quiz.")
	e.out.Log("  add - Add a new quiz interactively.")
	e.out.Log("  delete <id> - Delete the given quiz.")
	e.out.Log("  edit <id> - Edit the given quiz.")
	e.out.Log("  test <id> - Answer the given quiz.")
	e.out.Log("  p|play - Answer all quizzes in random order.")
	e.out.Log("  credits - Credits.")
	e.out.Log("  q|quit - Quit the program.")
}

func (e *Engine) cmdList(ctx context.Context) error {
	records, err := e.store.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		e.out.Logf("%d: %s", r.ID, r.Question)
	}
	return nil
}

func (e *Engine) cmdShow(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	r, err := e.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	e.out.Logf("%d: %s => %s", r.ID, r.Question, r.Answer)
	return nil
}

func (e *Engine) cmdDelete(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	return e.store.Delete(ctx, id)
}

func (e *Engine) cmdEdit(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	r, err := e.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	e.pending = r
	e.mode = modeEditQuestion
	return nil
}

func (e *Engine) cmdTest(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	r, err := e.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	e.pending = r
	e.mode = modeTestAnswer
	return nil
}

func (e *Engine) cmdCredits() {
	e.out.Log("Author(s):")
	e.out.Emph("  Alejandro Madriñán Fernández", render.Green)
}

func (e *Engine) stepAddQuestion(line string) (Action, error) {
	e.first = strings.TrimSpace(line)
	e.mode = modeAddAnswer
	e.prompt()
	return ActionContinue, nil
}

func (e *Engine) stepAddAnswer(ctx context.Context, line string) (Action, error) {
	question := e.first
	e.reset()
	r, err := e.store.Create(ctx, question, strings.TrimSpace(line))
	if err != nil {
		return e.finish(err)
	}
	e.out.Logf("Added: %s => %s", r.Question, r.Answer)
	e.prompt()
	return ActionContinue, nil
}

// stepEditQuestion consumes the replacement question. An empty reply
// keeps the current value shown in the prompt, standing in for the
// pre-typed edit buffer of an interactive terminal.
func (e *Engine) stepEditQuestion(line string) (Action, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		line = e.pending.Question
	}
	e.first = line
	e.mode = modeEditAnswer
	e.prompt()
	return ActionContinue, nil
}

func (e *Engine) stepEditAnswer(ctx context.Context, line string) (Action, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		line = e.pending.Answer
	}
	id, question := e.pending.ID, e.first
	e.reset()
	r, err := e.store.Update(ctx, id, question, line)
	if err != nil {
		return e.finish(err)
	}
	e.out.Logf("Changed quiz %d to: %s => %s", r.ID, r.Question, r.Answer)
	e.prompt()
	return ActionContinue, nil
}

func (e *Engine) stepTestAnswer(line string) (Action, error) {
	correct := quiz.MatchAnswer(e.pending.Answer, line)
	e.reset()
	if correct {
		e.out.Log("Your answer is correct.")
		e.out.Big("Correct", render.Green)
	} else {
		e.out.Log("Your answer is incorrect.")
		e.out.Big("Incorrect", render.Red)
	}
	e.prompt()
	return ActionContinue, nil
}

// parseID validates the <id> argument of show/delete/edit/test.
func parseID(arg string) (int, error) {
	if arg == "" {
		return 0, quiz.ErrMissingArgument
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, quiz.ErrInvalidArgument
	}
	return id, nil
}
