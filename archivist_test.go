package papergen

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T) *Archivist {
	t.Helper()
	archive, err := OpenArchive(filepath.Join(t.TempDir(), "questions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })
	require.NoError(t, archive.CreateTables())
	return archive
}

func sampleQuestion(id string, number int) Question {
	return Question{
		SequenceNumber:   number,
		StableID:         id,
		StemPrimary:      "Which Article provides for the Finance Commission?",
		OptionsPrimary:   []string{"Article 280", "Article 281", "Article 324", "Article 352"},
		StemSecondary:    "वित्त आयोग का प्रावधान किस अनुच्छेद में है?",
		OptionsSecondary: []string{"अनुच्छेद 280", "अनुच्छेद 281", "अनुच्छेद 324", "अनुच्छेद 352"},
		Answer:           AnswerA,
		Blueprint:        "Subject: Polity & Governance\nTopic: Finance Commission",
		Subject:          "Polity & Governance",
		ReviewState:      ReviewPending,
		CreatedAt:        time.Now(),
	}
}

func TestSaveAndLoadQuestions(t *testing.T) {
	archive := newTestArchive(t)

	questions := []Question{
		sampleQuestion("id-1", 1),
		sampleQuestion("id-2", 2),
	}
	require.NoError(t, archive.SaveQuestions(questions, "batch-a"))

	got, err := archive.QuestionsByBatchKey("batch-a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "id-1", got[0].StableID)
	assert.Equal(t, 1, got[0].SequenceNumber)
	assert.Equal(t, AnswerA, got[0].Answer)
	assert.Len(t, got[0].OptionsPrimary, 4)
	assert.Len(t, got[0].OptionsSecondary, 4)
	assert.Equal(t, ReviewPending, got[0].ReviewState)
}

func TestSaveQuestionsUpsertsById(t *testing.T) {
	archive := newTestArchive(t)

	q := sampleQuestion("id-1", 1)
	require.NoError(t, archive.SaveQuestions([]Question{q}, "batch-a"))

	q.StemPrimary = "Revised question text"
	require.NoError(t, archive.SaveQuestions([]Question{q}, "batch-a"))

	got, err := archive.QuestionsByBatchKey("batch-a")
	require.NoError(t, err)
	require.Len(t, got, 1, "re-saving the same stable ID must not duplicate the row")
	assert.Equal(t, "Revised question text", got[0].StemPrimary)
}

func TestSaveQuestionsSanitizesBlueprint(t *testing.T) {
	archive := newTestArchive(t)

	q := sampleQuestion("id-1", 1)
	q.Blueprint = AnnotatePlan(q.Blueprint, "- Fact that must not be archived")
	require.NoError(t, archive.SaveQuestions([]Question{q}, "batch-a"))

	got, err := archive.QuestionsByBatchKey("batch-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotContains(t, got[0].Blueprint, referenceMarker)
	assert.Contains(t, got[0].Blueprint, "Finance Commission")
}

func TestBatchKeys(t *testing.T) {
	archive := newTestArchive(t)

	require.NoError(t, archive.SaveQuestions([]Question{sampleQuestion("id-1", 1)}, "batch-a"))
	require.NoError(t, archive.SaveQuestions([]Question{sampleQuestion("id-2", 1)}, "batch-b"))

	keys, err := archive.BatchKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{"batch-a", "batch-b"}, keys)

	exists, err := archive.BatchKeyExists("batch-a")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = archive.BatchKeyExists("batch-z")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMaxQuestionNumber(t *testing.T) {
	archive := newTestArchive(t)

	max, err := archive.MaxQuestionNumber("batch-a")
	require.NoError(t, err)
	assert.Zero(t, max, "empty batch starts at zero")

	require.NoError(t, archive.SaveQuestions([]Question{
		sampleQuestion("id-1", 3),
		sampleQuestion("id-2", 7),
	}, "batch-a"))

	max, err = archive.MaxQuestionNumber("batch-a")
	require.NoError(t, err)
	assert.Equal(t, 7, max)
}

func TestHistoryForDedupOnlySelected(t *testing.T) {
	archive := newTestArchive(t)

	selected := sampleQuestion("id-1", 1)
	selected.Blueprint = "Subject: Economy\nTopic: Repo Rate"
	rejected := sampleQuestion("id-2", 2)
	pending := sampleQuestion("id-3", 3)
	require.NoError(t, archive.SaveQuestions([]Question{selected, rejected, pending}, "batch-a"))

	require.NoError(t, archive.UpdateReviewState("id-1", ReviewSelected, ""))
	require.NoError(t, archive.UpdateReviewState("id-2", ReviewRejected, "Too easy"))

	blueprints, err := archive.HistoryForDedup()
	require.NoError(t, err)
	require.Len(t, blueprints, 1)
	assert.Equal(t, "Subject: Economy\nTopic: Repo Rate", blueprints[0])
}

func TestUpdateReviewState(t *testing.T) {
	archive := newTestArchive(t)
	require.NoError(t, archive.SaveQuestions([]Question{sampleQuestion("id-1", 1)}, "batch-a"))

	require.NoError(t, archive.UpdateReviewState("id-1", ReviewRejected, "Distractors too obvious"))

	got, err := archive.QuestionsByBatchKey("batch-a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ReviewRejected, got[0].ReviewState)
	assert.Equal(t, "Distractors too obvious", got[0].Feedback)
}
