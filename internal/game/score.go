package game

import "sort"

const (
	pointsCorrect = 10
	pointsBluff   = 5
)

type bluffKey struct {
	questionID uint
	text       string
}

// TallyScores recomputes the leaderboard from the full history: +10 to a
// voter who picked the correct answer, +5 to a bluff's author for every
// other player fooled by it. Everyone who submitted or voted appears in
// the result, with zero if they earned nothing.
//
// When two players submit identical text for one question the later
// submission's author collects the bluff credit; the map key cannot tell
// them apart. Likewise a bluff identical to the correct answer earns
// credit on correct votes. Both are accepted limitations of the
// text-keyed design.
func TallyScores(questions []Question, submissions []Submission, votes []Vote) map[string]int {
	correctOf := make(map[uint]string, len(questions))
	for _, question := range questions {
		correctOf[question.ID] = question.CorrectAnswer
	}
	authorOf := make(map[bluffKey]string, len(submissions))
	for _, submission := range submissions {
		authorOf[bluffKey{submission.QuestionID, submission.AnswerText}] = submission.UserID
	}

	scores := make(map[string]int)
	for _, submission := range submissions {
		if _, ok := scores[submission.UserID]; !ok {
			scores[submission.UserID] = 0
		}
	}
	for _, vote := range votes {
		if _, ok := scores[vote.UserID]; !ok {
			scores[vote.UserID] = 0
		}
		if vote.VotedFor == correctOf[vote.QuestionID] {
			scores[vote.UserID] += pointsCorrect
		}
		if author, ok := authorOf[bluffKey{vote.QuestionID, vote.VotedFor}]; ok && author != vote.UserID {
			scores[author] += pointsBluff
		}
	}
	return scores
}

// Scores recomputes the full leaderboard mapping. Pure over storage
// contents: two calls without intervening writes return the same result.
func (e *Engine) Scores() (map[string]int, error) {
	questions, err := e.store.Questions()
	if err != nil {
		return nil, err
	}
	submissions, err := e.store.AllSubmissions()
	if err != nil {
		return nil, err
	}
	votes, err := e.store.AllVotes()
	if err != nil {
		return nil, err
	}
	return TallyScores(questions, submissions, votes), nil
}

type ScoreRow struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

// Leaderboard returns the scores ordered by points descending, ties
// broken by user id for stable output.
func (e *Engine) Leaderboard() ([]ScoreRow, error) {
	scores, err := e.Scores()
	if err != nil {
		return nil, err
	}
	rows := make([]ScoreRow, 0, len(scores))
	for userID, points := range scores {
		rows = append(rows, ScoreRow{UserID: userID, Points: points})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows, nil
}
