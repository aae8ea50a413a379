package engine

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/amadrinan/quiz/internal/store"
)

// Golden transcripts pin the exact session output byte for byte. The
// scripted commands avoid the figlet renderings (banner, test, play) so
// the fixtures stay readable.

func TestHelpScreenGolden(t *testing.T) {
	e, buf := newTestEngine(t, store.NewMemory())
	feed(t, e, "help")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "help", buf.Bytes())
}

func TestSessionTranscriptGolden(t *testing.T) {
	e, buf := newTestEngine(t, store.NewMemory())
	feed(t, e,
		"list",
		"show 2",
		"show",
		"show abc",
		"show 99",
		"add",
		"Capital de Peru",
		" Lima ",
		"show 5",
		"edit 5",
		"",
		"Lima",
		"delete 5",
		"lista",
		"quit",
	)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "session", buf.Bytes())
}
