package db

import (
	"time"

	"gorm.io/datatypes"
)

// The singleton game_state row. ID is always 1.
const GameStateID = 1

type Question struct {
	ID            uint      `gorm:"primaryKey"`
	QuestionText  string    `gorm:"type:text;not null"`
	CorrectAnswer string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (Question) TableName() string { return "questions" }

type GameState struct {
	ID                uint   `gorm:"primaryKey"`
	Phase             string `gorm:"size:32;not null"`
	CurrentQuestionID *uint
	TotalPlayers      int       `gorm:"not null;default:0"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (GameState) TableName() string { return "game_state" }

type Player struct {
	UserID    string    `gorm:"primaryKey;size:64"`
	Status    string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Player) TableName() string { return "players" }

type PlayerInput struct {
	ID         uint      `gorm:"primaryKey"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_inputs_question_user"`
	UserID     string    `gorm:"size:64;not null;uniqueIndex:idx_inputs_question_user"`
	AnswerText string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (PlayerInput) TableName() string { return "player_inputs" }

type PlayerVote struct {
	ID         uint      `gorm:"primaryKey"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_votes_question_user"`
	UserID     string    `gorm:"size:64;not null;uniqueIndex:idx_votes_question_user"`
	VotedFor   string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (PlayerVote) TableName() string { return "player_votes" }

type GameLog struct {
	ID        uint           `gorm:"primaryKey"`
	RoundID   *uint          `gorm:"index"`
	LogType   string         `gorm:"size:64;not null"`
	Details   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

func (GameLog) TableName() string { return "game_logs" }
