package engine

import (
	"context"
	"errors"
	"math/rand"
	"strconv"

	"github.com/amadrinan/quiz/internal/quiz"
	"github.com/amadrinan/quiz/internal/render"
)

// playRound is one randomized quiz round over all records stored at the
// moment the round started.
//
// The id snapshot is never re-synced mid-round: records added afterwards
// are not asked, and records deleted by another session are skipped when
// their load comes up NotFound. Each remaining id is drawn uniformly at
// random and removed from the set whether or not the reply is correct, so
// the set strictly shrinks every step.
type playRound struct {
	remaining []int
	score     int
	current   quiz.Record
}

// newPlayRound snapshots the current record ids.
func newPlayRound(ctx context.Context, store quiz.Store) (*playRound, error) {
	records, err := store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	r := &playRound{remaining: make([]int, 0, len(records))}
	for _, rec := range records {
		r.remaining = append(r.remaining, rec.ID)
	}
	return r, nil
}

// draw picks the next question uniformly at random from the remaining
// set. Returns false when the set is exhausted. Ids whose record has
// vanished since the snapshot are skipped.
func (r *playRound) draw(ctx context.Context, store quiz.Store, rng *rand.Rand) (bool, error) {
	for len(r.remaining) > 0 {
		i := rng.Intn(len(r.remaining))
		id := r.remaining[i]
		r.remaining = append(r.remaining[:i], r.remaining[i+1:]...)

		rec, err := store.GetByID(ctx, id)
		if errors.Is(err, quiz.ErrNotFound) {
			continue // deleted mid-round by another session
		}
		if err != nil {
			return false, err
		}
		r.current = rec
		return true, nil
	}
	return false, nil
}

// cmdPlay starts a round: snapshot, then ask the first question or end
// immediately when there is nothing to ask.
func (e *Engine) cmdPlay(ctx context.Context) error {
	round, err := newPlayRound(ctx, e.store)
	if err != nil {
		return err
	}
	e.round = round
	return e.askNext(ctx)
}

// askNext draws the next question or ends the round on exhaustion.
func (e *Engine) askNext(ctx context.Context) error {
	ok, err := e.round.draw(ctx, e.store, e.rng)
	if err != nil {
		return err
	}
	if !ok {
		e.out.Log("There is nothing left to ask.")
		e.endRound()
		return nil
	}
	e.mode = modePlayAnswer
	return nil
}

// endRound renders the final score and returns to the idle state.
func (e *Engine) endRound() {
	score := e.round.score
	e.reset()
	e.out.Log("End of round. Score:")
	e.out.Big(strconv.Itoa(score), render.Magenta)
}

// stepPlayAnswer consumes the reply to the current play question.
// Correct: bump the score, report it, ask the next question. Incorrect:
// the round ends with the final score render and no other feedback.
func (e *Engine) stepPlayAnswer(ctx context.Context, line string) (Action, error) {
	if !quiz.MatchAnswer(e.round.current.Answer, line) {
		e.endRound()
		e.prompt()
		return ActionContinue, nil
	}
	e.round.score++
	e.out.Logf("CORRECT - score: %d", e.round.score)
	if err := e.askNext(ctx); err != nil {
		return e.finish(err)
	}
	e.prompt()
	return ActionContinue, nil
}
