package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadrinan/quiz/internal/quiz"
)

func TestOpenFile_SeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.json")

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// First run writes the seed set to disk immediately.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var persisted []persistedRecord
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Len(t, persisted, len(quiz.Seed()))
	assert.Equal(t, "Capital de Italia", persisted[0].Question)
}

func TestOpenFile_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse quiz file")
}

func TestFile_MutationsPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.json")
	ctx := context.Background()

	f, err := OpenFile(path)
	require.NoError(t, err)

	created, err := f.Create(ctx, "Capital de Peru", "Lima")
	require.NoError(t, err)
	require.NoError(t, f.Delete(ctx, 1))
	_, err = f.Update(ctx, 2, "Capital de Francia", "París")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	// seed(4) - deleted(1) + created(1)
	require.Len(t, all, len(quiz.Seed()))

	questions := make([]string, 0, len(all))
	for _, r := range all {
		questions = append(questions, r.Question)
	}
	assert.NotContains(t, questions, "Capital de Italia")
	assert.Contains(t, questions, created.Question)
}

func TestFile_IDsArePositionalOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.json")
	ctx := context.Background()

	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	for i, r := range all {
		assert.Equal(t, i+1, r.ID)
	}
}

func TestFile_CreateTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.json")

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	r, err := f.Create(context.Background(), "  q  ", "  a  ")
	require.NoError(t, err)
	assert.Equal(t, "q", r.Question)
	assert.Equal(t, "a", r.Answer)
}

func TestFile_DeleteMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.json")

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	err = f.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, quiz.ErrNotFound)
}
