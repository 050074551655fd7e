package game

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded Gateway for tests and for running the
// server without a database. Inserts are atomic under the lock, so the
// check-then-insert race the contract documents cannot occur here.
type MemoryStore struct {
	mu sync.Mutex

	state State

	nextQuestionID   uint
	nextSubmissionID uint
	nextVoteID       uint
	nextLogID        uint

	questions   []Question
	players     []Player
	submissions []Submission
	votes       []Vote
	logs        []LogEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state:            State{Phase: PhaseLobby},
		nextQuestionID:   1,
		nextSubmissionID: 1,
		nextVoteID:       1,
		nextLogID:        1,
	}
}

func (m *MemoryStore) State() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *MemoryStore) SetPhase(phase Phase, currentQuestionID *uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Phase = phase
	if currentQuestionID == nil {
		m.state.CurrentQuestionID = nil
	} else {
		id := *currentQuestionID
		m.state.CurrentQuestionID = &id
	}
	return nil
}

func (m *MemoryStore) SetTotalPlayers(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.TotalPlayers = n
	return nil
}

func (m *MemoryStore) Questions() ([]Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Question, len(m.questions))
	copy(out, m.questions)
	return out, nil
}

func (m *MemoryStore) QuestionByID(id uint) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, question := range m.questions {
		if question.ID == id {
			return question, nil
		}
	}
	return Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
}

func (m *MemoryStore) InsertQuestion(text, correctAnswer string) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	question := Question{
		ID:            m.nextQuestionID,
		Text:          text,
		CorrectAnswer: correctAnswer,
		CreatedAt:     time.Now().UTC(),
	}
	m.nextQuestionID++
	m.questions = append(m.questions, question)
	return question, nil
}

func (m *MemoryStore) DeleteQuestions() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = nil
	return nil
}

func (m *MemoryStore) PlayerByID(userID string) (Player, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, player := range m.players {
		if player.UserID == userID {
			return player, true, nil
		}
	}
	return Player{}, false, nil
}

func (m *MemoryStore) InsertPlayer(p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, player := range m.players {
		if player.UserID == p.UserID {
			return nil
		}
	}
	m.players = append(m.players, p)
	return nil
}

func (m *MemoryStore) SetPlayerStatus(userID string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.players {
		if m.players[i].UserID == userID {
			m.players[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("player %q: %w", userID, ErrNotFound)
}

func (m *MemoryStore) PlayersByStatus(status Status) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Player
	for _, player := range m.players {
		if player.Status == status {
			out = append(out, player)
		}
	}
	return out, nil
}

func (m *MemoryStore) CountPlayers(status Status) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, player := range m.players {
		if player.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) DeletePlayers() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = nil
	return nil
}

func (m *MemoryStore) Submissions(questionID uint) ([]Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Submission
	for _, submission := range m.submissions {
		if submission.QuestionID == questionID {
			out = append(out, submission)
		}
	}
	return out, nil
}

func (m *MemoryStore) AllSubmissions() ([]Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Submission, len(m.submissions))
	copy(out, m.submissions)
	return out, nil
}

func (m *MemoryStore) SubmissionExists(questionID uint, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findSubmission(questionID, userID) >= 0, nil
}

func (m *MemoryStore) InsertSubmission(questionID uint, userID, answerText string) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findSubmission(questionID, userID) >= 0 {
		return Submission{}, fmt.Errorf("submission for question %d by %q: %w", questionID, userID, ErrAlreadyRecorded)
	}
	submission := Submission{
		ID:         m.nextSubmissionID,
		QuestionID: questionID,
		UserID:     userID,
		AnswerText: answerText,
		CreatedAt:  time.Now().UTC(),
	}
	m.nextSubmissionID++
	m.submissions = append(m.submissions, submission)
	return submission, nil
}

func (m *MemoryStore) SubmissionByID(id uint) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, submission := range m.submissions {
		if submission.ID == id {
			return submission, nil
		}
	}
	return Submission{}, fmt.Errorf("submission %d: %w", id, ErrNotFound)
}

func (m *MemoryStore) UpdateSubmissionText(id uint, answerText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.submissions {
		if m.submissions[i].ID == id {
			m.submissions[i].AnswerText = answerText
			return nil
		}
	}
	return fmt.Errorf("submission %d: %w", id, ErrNotFound)
}

func (m *MemoryStore) DeleteSubmissions() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = nil
	return nil
}

func (m *MemoryStore) Votes(questionID uint) ([]Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Vote
	for _, vote := range m.votes {
		if vote.QuestionID == questionID {
			out = append(out, vote)
		}
	}
	return out, nil
}

func (m *MemoryStore) AllVotes() ([]Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Vote, len(m.votes))
	copy(out, m.votes)
	return out, nil
}

func (m *MemoryStore) VoteExists(questionID uint, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findVote(questionID, userID) >= 0, nil
}

func (m *MemoryStore) InsertVote(questionID uint, userID, votedFor string) (Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findVote(questionID, userID) >= 0 {
		return Vote{}, fmt.Errorf("vote for question %d by %q: %w", questionID, userID, ErrAlreadyRecorded)
	}
	vote := Vote{
		ID:         m.nextVoteID,
		QuestionID: questionID,
		UserID:     userID,
		VotedFor:   votedFor,
		CreatedAt:  time.Now().UTC(),
	}
	m.nextVoteID++
	m.votes = append(m.votes, vote)
	return vote, nil
}

func (m *MemoryStore) DeleteVotes() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votes = nil
	return nil
}

func (m *MemoryStore) AppendLog(roundID *uint, logType string, details any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := LogEntry{
		ID:        m.nextLogID,
		LogType:   logType,
		Details:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if roundID != nil {
		id := *roundID
		entry.RoundID = &id
	}
	m.nextLogID++
	m.logs = append(m.logs, entry)
	return nil
}

func (m *MemoryStore) Logs() ([]LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.logs))
	copy(out, m.logs)
	return out, nil
}

func (m *MemoryStore) DeleteLogs() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = nil
	return nil
}

func (m *MemoryStore) findSubmission(questionID uint, userID string) int {
	for i, submission := range m.submissions {
		if submission.QuestionID == questionID && submission.UserID == userID {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) findVote(questionID uint, userID string) int {
	for i, vote := range m.votes {
		if vote.QuestionID == questionID && vote.UserID == userID {
			return i
		}
	}
	return -1
}
