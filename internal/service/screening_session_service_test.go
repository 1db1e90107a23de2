package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"wellmind_backend/internal/model"
	"wellmind_backend/internal/repository"
	"wellmind_backend/internal/rules"
	"wellmind_backend/internal/util"
	"wellmind_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// recordingNotifier captures crisis dispatches so tests can assert the
// once-per-session guarantee.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []uint
}

func (n *recordingNotifier) NotifyCrisis(_ context.Context, sessionID uint, _ map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, sessionID)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

const sumScoringRule = `{"completed": answeredCount == questionCount, "score": totalScore}`

type optionSpec struct {
	text   string
	score  int
	crisis bool
}

type questionSpec struct {
	text    string
	format  model.AnswerFormat
	hint    model.ContentHint
	options []optionSpec
}

func frequencyOptions() []optionSpec {
	return []optionSpec{
		{text: "Not at all", score: 0},
		{text: "Several days", score: 1},
		{text: "More than half the days", score: 2},
		{text: "Nearly every day", score: 3},
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.Institution{},
		&model.Account{},
		&model.Screening{},
		&model.ScreeningVersion{},
		&model.ScreeningQuestion{},
		&model.ScreeningAnswerOption{},
		&model.ScreeningFlow{},
		&model.ScreeningFlowVersion{},
		&model.ScreeningSession{},
		&model.ScreeningSessionScreening{},
		&model.ScreeningAnswer{},
	))
	return db
}

func seedScreening(t *testing.T, db *gorm.DB, name, scoringRule string, specs []questionSpec) (model.Screening, []model.ScreeningQuestion) {
	t.Helper()
	screening := model.Screening{Name: name}
	require.NoError(t, db.Create(&screening).Error)
	version := model.ScreeningVersion{ScreeningID: screening.ID, VersionNumber: 1, ScoringRule: scoringRule}
	require.NoError(t, db.Create(&version).Error)
	for i, qs := range specs {
		q := model.ScreeningQuestion{
			ScreeningVersionID: version.ID,
			Text:               qs.text,
			AnswerFormat:       qs.format,
			ContentHint:        qs.hint,
			DisplayOrder:       i + 1,
		}
		require.NoError(t, db.Create(&q).Error)
		for j, os := range qs.options {
			opt := model.ScreeningAnswerOption{
				ScreeningQuestionID: q.ID,
				Text:                os.text,
				Score:               os.score,
				IndicatesCrisis:     os.crisis,
				DisplayOrder:        j + 1,
			}
			require.NoError(t, db.Create(&opt).Error)
		}
	}
	screening.ActiveVersionID = &version.ID
	require.NoError(t, db.Save(&screening).Error)

	questions, err := repository.NewScreeningRepository(db).ListQuestions(version.ID)
	require.NoError(t, err)
	return screening, questions
}

func seedFlow(t *testing.T, db *gorm.DB, institutionID, initialScreeningID uint, name, rule string) model.ScreeningFlow {
	t.Helper()
	flow := model.ScreeningFlow{InstitutionID: institutionID, Name: name}
	require.NoError(t, db.Create(&flow).Error)
	version := model.ScreeningFlowVersion{
		ScreeningFlowID:    flow.ID,
		VersionNumber:      1,
		InitialScreeningID: initialScreeningID,
		OrchestrationRule:  rule,
	}
	require.NoError(t, db.Create(&version).Error)
	flow.ActiveVersionID = &version.ID
	require.NoError(t, db.Save(&flow).Error)
	return flow
}

type sessionFixture struct {
	db         *gorm.DB
	svc        *ScreeningSessionService
	notifier   *recordingNotifier
	clinician  model.Account
	patient    model.Account
	flow       model.ScreeningFlow
	screeningA model.Screening
	screeningB model.Screening
	questionsA []model.ScreeningQuestion
	questionsB []model.ScreeningQuestion
}

// newSessionFixture seeds a two-stage intake: screening A always runs first,
// and a score of 3 or more on A routes the session to follow-up screening B.
// The second question of B carries a crisis-indicating option.
func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	db := openTestDB(t)

	institution := model.Institution{Name: "Riverbend Clinic"}
	require.NoError(t, db.Create(&institution).Error)
	clinician := model.Account{Name: "Dana", Email: "dana@riverbend.test", Password: "x", Role: model.Clinician, InstitutionID: institution.ID}
	patient := model.Account{Name: "Sam", Email: "sam@riverbend.test", Password: "x", Role: model.Patient, InstitutionID: institution.ID}
	require.NoError(t, db.Create(&clinician).Error)
	require.NoError(t, db.Create(&patient).Error)

	screeningA, questionsA := seedScreening(t, db, "Intake", sumScoringRule, []questionSpec{
		{text: "Little interest or pleasure in doing things", format: model.SingleSelect, options: frequencyOptions()},
		{text: "Feeling down, depressed, or hopeless", format: model.SingleSelect, options: frequencyOptions()},
	})
	screeningB, questionsB := seedScreening(t, db, "Follow-up", sumScoringRule, []questionSpec{
		{text: "Trouble falling or staying asleep", format: model.SingleSelect, options: frequencyOptions()},
		{text: "Thoughts that you would be better off dead", format: model.SingleSelect, options: []optionSpec{
			{text: "Not at all", score: 0},
			{text: "Several days", score: 1, crisis: true},
		}},
	})

	rule := fmt.Sprintf(`{
		"completed": allCompleted && (lastScreening.score < 3 || len(screenings) > 1),
		"crisisIndicated": crisisAnswered,
		"nextScreeningId": allCompleted && lastScreening.score >= 3 && len(screenings) == 1 ? %d : nil
	}`, screeningB.ID)
	flow := seedFlow(t, db, institution.ID, screeningA.ID, "Standard intake", rule)

	notifier := &recordingNotifier{}
	evaluator := rules.NewExprEvaluator(0)
	svc := NewScreeningSessionService(
		repository.NewScreeningSessionRepository(db),
		repository.NewScreeningAnswerRepository(db),
		repository.NewScreeningRepository(db),
		repository.NewScreeningFlowRepository(db),
		repository.NewAccountRepository(db),
		NewScoringService(evaluator),
		NewOrchestrationService(evaluator),
		notifier,
		repository.NewTxManager(db),
	)

	return &sessionFixture{
		db:         db,
		svc:        svc,
		notifier:   notifier,
		clinician:  clinician,
		patient:    patient,
		flow:       flow,
		screeningA: screeningA,
		screeningB: screeningB,
		questionsA: questionsA,
		questionsB: questionsB,
	}
}

func (f *sessionFixture) startSession(t *testing.T) *model.ScreeningSession {
	t.Helper()
	session, err := f.svc.CreateSession(context.Background(), f.flow.ID, f.patient.ID, f.clinician.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	return session
}

func (f *sessionFixture) currentScreening(t *testing.T, sessionID uint) *model.ScreeningSessionScreening {
	t.Helper()
	current, err := f.svc.Sessions.CurrentSessionScreening(sessionID)
	require.NoError(t, err)
	require.NotNil(t, current)
	return current
}

func (f *sessionFixture) answer(t *testing.T, sessionScreeningID uint, q model.ScreeningQuestion, optionIndex int) {
	t.Helper()
	_, err := f.svc.SubmitAnswers(context.Background(), sessionScreeningID, q.ID,
		[]AnswerSubmission{{AnswerOptionID: q.Options[optionIndex].ID}}, f.patient.ID)
	require.NoError(t, err)
}

func TestCreateSession(t *testing.T) {
	fix := newSessionFixture(t)

	session := fix.startSession(t)
	assert.False(t, session.Completed)
	assert.False(t, session.CrisisIndicated)

	screenings, err := fix.svc.Sessions.ListSessionScreenings(session.ID)
	require.NoError(t, err)
	require.Len(t, screenings, 1)
	assert.Equal(t, 1, screenings[0].ScreeningOrder)
	assert.Equal(t, *fix.screeningA.ActiveVersionID, screenings[0].ScreeningVersionID)

	// Starting a session pins the version: it is now in use and immutable.
	inUse, err := fix.svc.Catalog.VersionInUse(*fix.screeningA.ActiveVersionID)
	require.NoError(t, err)
	assert.True(t, inUse)

	sessions, err := fix.svc.ListSessionsForAccount(fix.patient.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)
}

func TestCreateSessionAggregatesViolations(t *testing.T) {
	fix := newSessionFixture(t)

	_, err := fix.svc.CreateSession(context.Background(), 999, 998, fix.clinician.ID)
	vErr, ok := util.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	require.Len(t, vErr.Violations, 2)
	assert.Equal(t, "flowId", vErr.Violations[0].Field)
	assert.Equal(t, "targetAccountId", vErr.Violations[1].Field)
}

func TestCreateSessionWithoutActiveFlowVersion(t *testing.T) {
	fix := newSessionFixture(t)

	dormant := model.ScreeningFlow{InstitutionID: fix.flow.InstitutionID, Name: "Dormant"}
	require.NoError(t, fix.db.Create(&dormant).Error)

	_, err := fix.svc.CreateSession(context.Background(), dormant.ID, fix.patient.ID, fix.clinician.ID)
	var cfgErr *util.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNextUnansweredQuestion(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	current := fix.currentScreening(t, session.ID)

	next, err := fix.svc.NextUnansweredQuestion(session.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, fix.questionsA[0].ID, next.Question.ID)

	fix.answer(t, current.ID, fix.questionsA[0], 0)

	next, err = fix.svc.NextUnansweredQuestion(session.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, fix.questionsA[1].ID, next.Question.ID)
}

func TestNextUnansweredQuestionUnknownSession(t *testing.T) {
	fix := newSessionFixture(t)

	next, err := fix.svc.NextUnansweredQuestion(4242)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestLowScoreSessionCompletes(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	current := fix.currentScreening(t, session.ID)

	fix.answer(t, current.ID, fix.questionsA[0], 1)
	fix.answer(t, current.ID, fix.questionsA[1], 1)

	reloaded, screenings, err := fix.svc.GetSession(session.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.True(t, reloaded.Completed)
	assert.False(t, reloaded.CrisisIndicated)
	require.Len(t, screenings, 1)
	assert.True(t, screenings[0].Completed)
	assert.Equal(t, 2, screenings[0].Score)

	next, err := fix.svc.NextUnansweredQuestion(session.ID)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestHighScoreRoutesToFollowUp(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	current := fix.currentScreening(t, session.ID)

	fix.answer(t, current.ID, fix.questionsA[0], 3)
	fix.answer(t, current.ID, fix.questionsA[1], 0)

	reloaded, screenings, err := fix.svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Completed)
	require.Len(t, screenings, 2)
	assert.Equal(t, 1, screenings[0].ScreeningOrder)
	assert.Equal(t, 2, screenings[1].ScreeningOrder)
	assert.Equal(t, *fix.screeningB.ActiveVersionID, screenings[1].ScreeningVersionID)

	next, err := fix.svc.NextUnansweredQuestion(session.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, fix.questionsB[0].ID, next.Question.ID)
	assert.Equal(t, screenings[1].ID, next.SessionScreening.ID)
}

func TestCrisisNotifiedOncePerSession(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	first := fix.currentScreening(t, session.ID)

	fix.answer(t, first.ID, fix.questionsA[0], 3)
	fix.answer(t, first.ID, fix.questionsA[1], 1)
	assert.Equal(t, 0, fix.notifier.count())

	second := fix.currentScreening(t, session.ID)
	require.NotEqual(t, first.ID, second.ID)

	// The crisis option on the last question flips the flag mid-screening.
	fix.answer(t, second.ID, fix.questionsB[1], 1)
	require.Equal(t, 1, fix.notifier.count())
	assert.Equal(t, session.ID, fix.notifier.calls[0])

	reloaded, _, err := fix.svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.CrisisIndicated)
	assert.False(t, reloaded.Completed)

	// Finishing the screening keeps the flag but must not dispatch again.
	fix.answer(t, second.ID, fix.questionsB[0], 0)
	assert.Equal(t, 1, fix.notifier.count())

	reloaded, _, err = fix.svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.CrisisIndicated)
	assert.True(t, reloaded.Completed)
}

func TestSubmitAnswersAggregatesViolations(t *testing.T) {
	fix := newSessionFixture(t)

	_, err := fix.svc.SubmitAnswers(context.Background(), 999, 998, nil, fix.patient.ID)
	vErr, ok := util.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	require.Len(t, vErr.Violations, 3)
	assert.Equal(t, "sessionScreeningId", vErr.Violations[0].Field)
	assert.Equal(t, "questionId", vErr.Violations[1].Field)
	assert.Equal(t, "answers", vErr.Violations[2].Field)
}

func TestSubmitAnswersRejectsForeignOption(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	current := fix.currentScreening(t, session.ID)

	foreign := fix.questionsA[1].Options[0]
	_, err := fix.svc.SubmitAnswers(context.Background(), current.ID, fix.questionsA[0].ID,
		[]AnswerSubmission{{AnswerOptionID: foreign.ID}}, fix.patient.ID)
	vErr, ok := util.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, "answers", vErr.Violations[0].Field)

	count, err := fix.svc.AnswerLedger.CountAnswers(current.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmitAnswersRejectsMultipleForSingleSelect(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	current := fix.currentScreening(t, session.ID)

	q := fix.questionsA[0]
	_, err := fix.svc.SubmitAnswers(context.Background(), current.ID, q.ID,
		[]AnswerSubmission{
			{AnswerOptionID: q.Options[0].ID},
			{AnswerOptionID: q.Options[1].ID},
		}, fix.patient.ID)
	vErr, ok := util.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, vErr.Violations, 1)
}

func TestCompletedSessionIsImmutable(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	current := fix.currentScreening(t, session.ID)

	fix.answer(t, current.ID, fix.questionsA[0], 0)
	fix.answer(t, current.ID, fix.questionsA[1], 0)

	_, err := fix.svc.SubmitAnswers(context.Background(), current.ID, fix.questionsA[0].ID,
		[]AnswerSubmission{{AnswerOptionID: fix.questionsA[0].Options[2].ID}}, fix.patient.ID)
	vErr, ok := util.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, "sessionScreeningId", vErr.Violations[0].Field)

	count, err := fix.svc.AnswerLedger.CountAnswers(current.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestResubmissionSupersedesWithoutDeleting(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	current := fix.currentScreening(t, session.ID)

	q := fix.questionsA[0]
	fix.answer(t, current.ID, q, 3)
	fix.answer(t, current.ID, q, 0)

	// Both rows stay in the ledger.
	count, err := fix.svc.AnswerLedger.CountAnswers(current.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Only the newer row is current, so the screening score tracks it.
	questions, err := fix.svc.Catalog.ListQuestions(current.ScreeningVersionID)
	require.NoError(t, err)
	currentAnswers, err := fix.svc.AnswerLedger.CurrentAnswersByQuestion(current.ID, optionToQuestion(questions))
	require.NoError(t, err)
	require.Len(t, currentAnswers[q.ID], 1)
	assert.Equal(t, q.Options[0].ID, currentAnswers[q.ID][0].ScreeningAnswerOptionID)

	fix.answer(t, current.ID, fix.questionsA[1], 0)
	reloaded, screenings, err := fix.svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Completed)
	assert.Equal(t, 0, screenings[0].Score)
}

func TestCorruptLedgerRowSurfacesIntegrityError(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	current := fix.currentScreening(t, session.ID)

	// A row referencing another screening's option can only appear through a
	// write outside the engine; scoring must halt on it, not drop it.
	corrupt := &model.ScreeningAnswer{
		ScreeningSessionScreeningID: current.ID,
		ScreeningAnswerOptionID:     fix.questionsB[0].Options[0].ID,
		CreatedByAccountID:          fix.patient.ID,
		SubmissionID:                "rogue",
	}
	require.NoError(t, fix.db.Create(corrupt).Error)

	_, err := fix.svc.SubmitAnswers(context.Background(), current.ID, fix.questionsA[0].ID,
		[]AnswerSubmission{{AnswerOptionID: fix.questionsA[0].Options[0].ID}}, fix.patient.ID)
	var intErr *util.IntegrityError
	require.ErrorAs(t, err, &intErr)
}

func TestSupersededScreeningRejectsAnswers(t *testing.T) {
	fix := newSessionFixture(t)
	session := fix.startSession(t)
	first := fix.currentScreening(t, session.ID)

	fix.answer(t, first.ID, fix.questionsA[0], 3)
	fix.answer(t, first.ID, fix.questionsA[1], 0)

	second := fix.currentScreening(t, session.ID)
	require.NotEqual(t, first.ID, second.ID)

	_, err := fix.svc.SubmitAnswers(context.Background(), first.ID, fix.questionsA[0].ID,
		[]AnswerSubmission{{AnswerOptionID: fix.questionsA[0].Options[0].ID}}, fix.patient.ID)
	vErr, ok := util.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	require.Len(t, vErr.Violations, 1)
	assert.Equal(t, "sessionScreeningId", vErr.Violations[0].Field)

	// The settled screening keeps its result.
	reloaded, err := fix.svc.Sessions.FindSessionScreeningByID(first.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Completed)
	assert.Equal(t, 3, reloaded.Score)
}

func TestDefectiveOrchestrationRuleRollsBack(t *testing.T) {
	fix := newSessionFixture(t)

	broken := seedFlow(t, fix.db, fix.flow.InstitutionID, fix.screeningA.ID, "Broken", `completed &&`)
	session, err := fix.svc.CreateSession(context.Background(), broken.ID, fix.patient.ID, fix.clinician.ID)
	require.NoError(t, err)
	current := fix.currentScreening(t, session.ID)

	_, err = fix.svc.SubmitAnswers(context.Background(), current.ID, fix.questionsA[0].ID,
		[]AnswerSubmission{{AnswerOptionID: fix.questionsA[0].Options[0].ID}}, fix.patient.ID)
	var evalErr *util.EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "orchestration", evalErr.RuleKind)

	// The whole unit of work rolled back: no ledger rows, no score.
	count, err := fix.svc.AnswerLedger.CountAnswers(current.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	reloaded, err := fix.svc.Sessions.FindSessionScreeningByID(current.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Completed)
	assert.Zero(t, reloaded.Score)
}

func TestContradictoryOrchestrationOutputIsFatal(t *testing.T) {
	fix := newSessionFixture(t)

	rule := fmt.Sprintf(`{"completed": true, "crisisIndicated": false, "nextScreeningId": %d}`, fix.screeningB.ID)
	contradictory := seedFlow(t, fix.db, fix.flow.InstitutionID, fix.screeningA.ID, "Contradictory", rule)
	session, err := fix.svc.CreateSession(context.Background(), contradictory.ID, fix.patient.ID, fix.clinician.ID)
	require.NoError(t, err)
	current := fix.currentScreening(t, session.ID)

	_, err = fix.svc.SubmitAnswers(context.Background(), current.ID, fix.questionsA[0].ID,
		[]AnswerSubmission{{AnswerOptionID: fix.questionsA[0].Options[0].ID}}, fix.patient.ID)
	var cfgErr *util.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	count, err := fix.svc.AnswerLedger.CountAnswers(current.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFreeTextAnswerNormalization(t *testing.T) {
	fix := newSessionFixture(t)

	screening, questions := seedScreening(t, fix.db, "Contact", sumScoringRule, []questionSpec{
		{text: "Best email to reach you", format: model.FreeText, hint: model.HintEmail, options: []optionSpec{
			{text: "Response", score: 0},
		}},
	})
	flow := seedFlow(t, fix.db, fix.flow.InstitutionID, screening.ID,
		"Contact intake", `{"completed": allCompleted, "crisisIndicated": false, "nextScreeningId": nil}`)
	session, err := fix.svc.CreateSession(context.Background(), flow.ID, fix.patient.ID, fix.clinician.ID)
	require.NoError(t, err)
	current := fix.currentScreening(t, session.ID)
	q := questions[0]

	_, err = fix.svc.SubmitAnswers(context.Background(), current.ID, q.ID,
		[]AnswerSubmission{{AnswerOptionID: q.Options[0].ID, Text: "not-an-email"}}, fix.patient.ID)
	vErr, ok := util.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, vErr.Violations, 1)

	ids, err := fix.svc.SubmitAnswers(context.Background(), current.ID, q.ID,
		[]AnswerSubmission{{AnswerOptionID: q.Options[0].ID, Text: "  Sam.Lee@Example.COM "}}, fix.patient.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	answers, err := fix.svc.AnswerLedger.ListAnswers(current.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "sam.lee@example.com", answers[0].Text)

	reloaded, _, err := fix.svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Completed)
}
