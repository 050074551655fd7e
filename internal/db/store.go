package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bluff-this/internal/game"
)

// Store is the gorm-backed storage gateway. Every call runs through the
// retry policy; reads and writes that still fail afterwards come back as
// game.ErrUnavailable so callers can degrade to a waiting state.
type Store struct {
	conn  *gorm.DB
	retry retryPolicy
}

func NewStore(conn *gorm.DB, retryAttempts int, retryDelay time.Duration) *Store {
	return &Store{
		conn:  conn,
		retry: newRetryPolicy(retryAttempts, retryDelay),
	}
}

func (s *Store) State() (game.State, error) {
	var record GameState
	err := s.retry.run(func() error {
		record = GameState{ID: GameStateID, Phase: string(game.PhaseLobby)}
		return s.conn.FirstOrCreate(&record, GameState{ID: GameStateID}).Error
	})
	if err != nil {
		return game.State{}, err
	}
	return game.State{
		Phase:             game.Phase(record.Phase),
		CurrentQuestionID: record.CurrentQuestionID,
		TotalPlayers:      record.TotalPlayers,
	}, nil
}

func (s *Store) SetPhase(phase game.Phase, currentQuestionID *uint) error {
	return s.retry.run(func() error {
		return s.conn.Model(&GameState{}).
			Where("id = ?", GameStateID).
			Updates(map[string]any{
				"phase":               string(phase),
				"current_question_id": currentQuestionID,
			}).Error
	})
}

func (s *Store) SetTotalPlayers(n int) error {
	return s.retry.run(func() error {
		return s.conn.Model(&GameState{}).
			Where("id = ?", GameStateID).
			Update("total_players", n).Error
	})
}

func (s *Store) Questions() ([]game.Question, error) {
	var records []Question
	err := s.retry.run(func() error {
		records = nil
		return s.conn.Order("created_at, id").Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	questions := make([]game.Question, 0, len(records))
	for _, record := range records {
		questions = append(questions, questionFromRecord(record))
	}
	return questions, nil
}

func (s *Store) QuestionByID(id uint) (game.Question, error) {
	var record Question
	err := s.retry.run(func() error {
		return s.conn.First(&record, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.Question{}, fmt.Errorf("question %d: %w", id, game.ErrNotFound)
	}
	if err != nil {
		return game.Question{}, err
	}
	return questionFromRecord(record), nil
}

func (s *Store) InsertQuestion(text, correctAnswer string) (game.Question, error) {
	var record Question
	err := s.retry.run(func() error {
		record = Question{QuestionText: text, CorrectAnswer: correctAnswer}
		return s.conn.Create(&record).Error
	})
	if err != nil {
		return game.Question{}, err
	}
	return questionFromRecord(record), nil
}

func (s *Store) DeleteQuestions() error {
	return s.deleteAll(&Question{})
}

func (s *Store) PlayerByID(userID string) (game.Player, bool, error) {
	var record Player
	err := s.retry.run(func() error {
		return s.conn.First(&record, "user_id = ?", userID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.Player{}, false, nil
	}
	if err != nil {
		return game.Player{}, false, err
	}
	return playerFromRecord(record), true, nil
}

func (s *Store) InsertPlayer(p game.Player) error {
	err := s.retry.run(func() error {
		record := Player{UserID: p.UserID, Status: string(p.Status), CreatedAt: p.JoinedAt}
		return s.conn.Create(&record).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Concurrent join with the same nickname; first writer wins.
		return nil
	}
	return err
}

func (s *Store) SetPlayerStatus(userID string, status game.Status) error {
	return s.retry.run(func() error {
		return s.conn.Model(&Player{}).
			Where("user_id = ?", userID).
			Update("status", string(status)).Error
	})
}

func (s *Store) PlayersByStatus(status game.Status) ([]game.Player, error) {
	var records []Player
	err := s.retry.run(func() error {
		records = nil
		return s.conn.Where("status = ?", string(status)).Order("created_at, user_id").Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	players := make([]game.Player, 0, len(records))
	for _, record := range records {
		players = append(players, playerFromRecord(record))
	}
	return players, nil
}

func (s *Store) CountPlayers(status game.Status) (int, error) {
	var count int64
	err := s.retry.run(func() error {
		return s.conn.Model(&Player{}).Where("status = ?", string(status)).Count(&count).Error
	})
	return int(count), err
}

func (s *Store) DeletePlayers() error {
	return s.deleteAll(&Player{})
}

func (s *Store) Submissions(questionID uint) ([]game.Submission, error) {
	return s.findSubmissions(&questionID)
}

func (s *Store) AllSubmissions() ([]game.Submission, error) {
	return s.findSubmissions(nil)
}

func (s *Store) findSubmissions(questionID *uint) ([]game.Submission, error) {
	var records []PlayerInput
	err := s.retry.run(func() error {
		records = nil
		tx := s.conn.Order("created_at, id")
		if questionID != nil {
			tx = tx.Where("question_id = ?", *questionID)
		}
		return tx.Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	submissions := make([]game.Submission, 0, len(records))
	for _, record := range records {
		submissions = append(submissions, submissionFromRecord(record))
	}
	return submissions, nil
}

func (s *Store) SubmissionExists(questionID uint, userID string) (bool, error) {
	var count int64
	err := s.retry.run(func() error {
		return s.conn.Model(&PlayerInput{}).
			Where("question_id = ? AND user_id = ?", questionID, userID).
			Count(&count).Error
	})
	return count > 0, err
}

func (s *Store) InsertSubmission(questionID uint, userID, answerText string) (game.Submission, error) {
	var record PlayerInput
	err := s.retry.run(func() error {
		record = PlayerInput{QuestionID: questionID, UserID: userID, AnswerText: answerText}
		return s.conn.Create(&record).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The unique index caught a racing duplicate the existence check
		// missed.
		return game.Submission{}, fmt.Errorf("submission for question %d by %q: %w", questionID, userID, game.ErrAlreadyRecorded)
	}
	if err != nil {
		return game.Submission{}, err
	}
	return submissionFromRecord(record), nil
}

func (s *Store) SubmissionByID(id uint) (game.Submission, error) {
	var record PlayerInput
	err := s.retry.run(func() error {
		return s.conn.First(&record, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.Submission{}, fmt.Errorf("submission %d: %w", id, game.ErrNotFound)
	}
	if err != nil {
		return game.Submission{}, err
	}
	return submissionFromRecord(record), nil
}

func (s *Store) UpdateSubmissionText(id uint, answerText string) error {
	return s.retry.run(func() error {
		return s.conn.Model(&PlayerInput{}).
			Where("id = ?", id).
			Update("answer_text", answerText).Error
	})
}

func (s *Store) DeleteSubmissions() error {
	return s.deleteAll(&PlayerInput{})
}

func (s *Store) Votes(questionID uint) ([]game.Vote, error) {
	return s.findVotes(&questionID)
}

func (s *Store) AllVotes() ([]game.Vote, error) {
	return s.findVotes(nil)
}

func (s *Store) findVotes(questionID *uint) ([]game.Vote, error) {
	var records []PlayerVote
	err := s.retry.run(func() error {
		records = nil
		tx := s.conn.Order("created_at, id")
		if questionID != nil {
			tx = tx.Where("question_id = ?", *questionID)
		}
		return tx.Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	votes := make([]game.Vote, 0, len(records))
	for _, record := range records {
		votes = append(votes, voteFromRecord(record))
	}
	return votes, nil
}

func (s *Store) VoteExists(questionID uint, userID string) (bool, error) {
	var count int64
	err := s.retry.run(func() error {
		return s.conn.Model(&PlayerVote{}).
			Where("question_id = ? AND user_id = ?", questionID, userID).
			Count(&count).Error
	})
	return count > 0, err
}

func (s *Store) InsertVote(questionID uint, userID, votedFor string) (game.Vote, error) {
	var record PlayerVote
	err := s.retry.run(func() error {
		record = PlayerVote{QuestionID: questionID, UserID: userID, VotedFor: votedFor}
		return s.conn.Create(&record).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return game.Vote{}, fmt.Errorf("vote for question %d by %q: %w", questionID, userID, game.ErrAlreadyRecorded)
	}
	if err != nil {
		return game.Vote{}, err
	}
	return voteFromRecord(record), nil
}

func (s *Store) DeleteVotes() error {
	return s.deleteAll(&PlayerVote{})
}

func (s *Store) AppendLog(roundID *uint, logType string, details any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return s.retry.run(func() error {
		record := GameLog{RoundID: roundID, LogType: logType, Details: payload}
		return s.conn.Create(&record).Error
	})
}

func (s *Store) Logs() ([]game.LogEntry, error) {
	var records []GameLog
	err := s.retry.run(func() error {
		records = nil
		return s.conn.Order("created_at, id").Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	entries := make([]game.LogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, game.LogEntry{
			ID:        record.ID,
			RoundID:   record.RoundID,
			LogType:   record.LogType,
			Details:   json.RawMessage(record.Details),
			CreatedAt: record.CreatedAt,
		})
	}
	return entries, nil
}

func (s *Store) DeleteLogs() error {
	return s.deleteAll(&GameLog{})
}

func (s *Store) deleteAll(model any) error {
	return s.retry.run(func() error {
		return s.conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
	})
}

func questionFromRecord(record Question) game.Question {
	return game.Question{
		ID:            record.ID,
		Text:          record.QuestionText,
		CorrectAnswer: record.CorrectAnswer,
		CreatedAt:     record.CreatedAt,
	}
}

func playerFromRecord(record Player) game.Player {
	return game.Player{
		UserID:   record.UserID,
		Status:   game.Status(record.Status),
		JoinedAt: record.CreatedAt,
	}
}

func submissionFromRecord(record PlayerInput) game.Submission {
	return game.Submission{
		ID:         record.ID,
		QuestionID: record.QuestionID,
		UserID:     record.UserID,
		AnswerText: record.AnswerText,
		CreatedAt:  record.CreatedAt,
	}
}

func voteFromRecord(record PlayerVote) game.Vote {
	return game.Vote{
		ID:         record.ID,
		QuestionID: record.QuestionID,
		UserID:     record.UserID,
		VotedFor:   record.VotedFor,
		CreatedAt:  record.CreatedAt,
	}
}
