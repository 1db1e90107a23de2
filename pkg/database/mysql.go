package database

import (
	"fmt"
	"log"

	"wellmind_backend/internal/config"
	"wellmind_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedDemoContent(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}

// SeedDemoContent loads a demo institution and a two-stage PHQ intake flow
// when the catalog is empty: a PHQ-2 initial screening that branches into a
// PHQ-9-style follow-up at score >= 3, with a crisis-flagged option on the
// self-harm item.
func SeedDemoContent(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Screening{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	institution := &model.Institution{Name: "Demo Behavioral Health"}
	if err := db.Create(institution).Error; err != nil {
		return err
	}

	frequencyOptions := func(questionID uint, crisisOnMax bool) []model.ScreeningAnswerOption {
		labels := []string{"Not at all", "Several days", "More than half the days", "Nearly every day"}
		options := make([]model.ScreeningAnswerOption, len(labels))
		for i, label := range labels {
			options[i] = model.ScreeningAnswerOption{
				ScreeningQuestionID: questionID,
				Text:                label,
				Score:               i,
				IndicatesCrisis:     crisisOnMax && i == len(labels)-1,
				DisplayOrder:        i + 1,
			}
		}
		return options
	}

	completionRule := `{"completed": answeredCount == questionCount, "score": totalScore}`

	createScreening := func(name string, questionTexts []string, crisisOnLast bool) (*model.Screening, error) {
		screening := &model.Screening{Name: name}
		if err := db.Create(screening).Error; err != nil {
			return nil, err
		}
		version := &model.ScreeningVersion{
			ScreeningID: screening.ID,
			ScoringRule: completionRule,
		}
		if err := db.Create(version).Error; err != nil {
			return nil, err
		}
		for i, text := range questionTexts {
			question := &model.ScreeningQuestion{
				ScreeningVersionID: version.ID,
				Text:               text,
				AnswerFormat:       model.SingleSelect,
				DisplayOrder:       i + 1,
			}
			if err := db.Create(question).Error; err != nil {
				return nil, err
			}
			crisis := crisisOnLast && i == len(questionTexts)-1
			for _, option := range frequencyOptions(question.ID, crisis) {
				opt := option
				if err := db.Create(&opt).Error; err != nil {
					return nil, err
				}
			}
		}
		screening.ActiveVersionID = &version.ID
		return screening, db.Model(screening).Update("active_version_id", version.ID).Error
	}

	phq2, err := createScreening("PHQ-2", []string{
		"Over the last two weeks, how often have you had little interest or pleasure in doing things?",
		"Over the last two weeks, how often have you been feeling down, depressed, or hopeless?",
	}, false)
	if err != nil {
		return err
	}

	phq9, err := createScreening("PHQ-9 Follow-up", []string{
		"Over the last two weeks, how often have you had trouble falling or staying asleep, or sleeping too much?",
		"Over the last two weeks, how often have you been feeling tired or having little energy?",
		"Over the last two weeks, how often have you had thoughts that you would be better off dead or of hurting yourself?",
	}, true)
	if err != nil {
		return err
	}

	flow := &model.ScreeningFlow{
		InstitutionID: institution.ID,
		Name:          "Standard intake",
	}
	if err := db.Create(flow).Error; err != nil {
		return err
	}
	orchestrationRule := fmt.Sprintf(`{
  "crisisIndicated": crisisAnswered,
  "completed": allCompleted && (lastScreening.score < 3 || len(screenings) > 1),
  "nextScreeningId": allCompleted && lastScreening.score >= 3 && len(screenings) == 1 ? %d : nil
}`, phq9.ID)
	flowVersion := &model.ScreeningFlowVersion{
		ScreeningFlowID:    flow.ID,
		InitialScreeningID: phq2.ID,
		OrchestrationRule:  orchestrationRule,
	}
	if err := db.Create(flowVersion).Error; err != nil {
		return err
	}
	return db.Model(flow).Update("active_version_id", flowVersion.ID).Error
}
