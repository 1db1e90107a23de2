package repository

import (
	"testing"
	"time"

	"wellmind_backend/internal/model"
	"wellmind_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openAnswerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.ScreeningAnswer{}))
	return db
}

func appendBatch(t *testing.T, repo *ScreeningAnswerRepository, sessionScreeningID uint, submissionID string, stamp time.Time, optionIDs ...uint) {
	t.Helper()
	answers := make([]*model.ScreeningAnswer, len(optionIDs))
	for i, optionID := range optionIDs {
		answers[i] = &model.ScreeningAnswer{
			ScreeningSessionScreeningID: sessionScreeningID,
			ScreeningAnswerOptionID:     optionID,
			CreatedByAccountID:          1,
			SubmissionID:                submissionID,
		}
		answers[i].CreatedAt = stamp
	}
	require.NoError(t, repo.CreateAnswers(answers))
}

func TestCurrentAnswersByQuestion(t *testing.T) {
	db := openAnswerTestDB(t)
	repo := NewScreeningAnswerRepository(db)

	// Question 10 owns options 1-3, question 20 owns option 4.
	optionToQuestion := map[uint]uint{1: 10, 2: 10, 3: 10, 4: 20}

	t0 := time.Now()
	appendBatch(t, repo, 5, "sub-1", t0, 1, 2)                 // multi-select, two options
	appendBatch(t, repo, 5, "sub-2", t0.Add(time.Second), 3)   // resubmission supersedes both
	appendBatch(t, repo, 5, "sub-3", t0.Add(2*time.Second), 4) // a different question
	appendBatch(t, repo, 99, "sub-4", t0, 1, 2)                // a different session screening

	current, err := repo.CurrentAnswersByQuestion(5, optionToQuestion)
	require.NoError(t, err)

	require.Len(t, current[10], 1)
	assert.EqualValues(t, 3, current[10][0].ScreeningAnswerOptionID)
	require.Len(t, current[20], 1)
	assert.EqualValues(t, 4, current[20][0].ScreeningAnswerOptionID)

	// The superseded rows are still in the ledger.
	count, err := repo.CountAnswers(5)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

func TestCurrentAnswersKeepsWholeLatestBatch(t *testing.T) {
	db := openAnswerTestDB(t)
	repo := NewScreeningAnswerRepository(db)

	optionToQuestion := map[uint]uint{1: 10, 2: 10}

	t0 := time.Now()
	appendBatch(t, repo, 5, "sub-1", t0, 1)
	appendBatch(t, repo, 5, "sub-2", t0.Add(time.Second), 1, 2)

	current, err := repo.CurrentAnswersByQuestion(5, optionToQuestion)
	require.NoError(t, err)
	require.Len(t, current[10], 2)
	assert.EqualValues(t, 1, current[10][0].ScreeningAnswerOptionID)
	assert.EqualValues(t, 2, current[10][1].ScreeningAnswerOptionID)
}

func TestCurrentAnswersBreaksTimestampTiesByInsertionOrder(t *testing.T) {
	db := openAnswerTestDB(t)
	repo := NewScreeningAnswerRepository(db)

	optionToQuestion := map[uint]uint{1: 10, 2: 10}

	// MySQL DATETIME(3) truncation makes identical stamps realistic for
	// back-to-back submissions; supersession must still hold.
	t0 := time.Now()
	appendBatch(t, repo, 5, "sub-1", t0, 1)
	appendBatch(t, repo, 5, "sub-2", t0, 2)

	current, err := repo.CurrentAnswersByQuestion(5, optionToQuestion)
	require.NoError(t, err)
	require.Len(t, current[10], 1)
	assert.EqualValues(t, 2, current[10][0].ScreeningAnswerOptionID)
}

func TestCurrentAnswersRejectsForeignOptionRows(t *testing.T) {
	db := openAnswerTestDB(t)
	repo := NewScreeningAnswerRepository(db)

	appendBatch(t, repo, 5, "sub-1", time.Now(), 1, 77)

	_, err := repo.CurrentAnswersByQuestion(5, map[uint]uint{1: 10})
	var intErr *util.IntegrityError
	require.ErrorAs(t, err, &intErr)
	assert.Contains(t, err.Error(), "option 77")
}
