package game

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
	"sort"
)

// BuildVoteOptions returns the round's option set: every distinct
// submission text plus the correct answer, deduplicated and sorted into a
// canonical base order. A bluff that exactly matches the real answer, or
// two identical bluffs, collapse into one option; a coincidental match is
// then indistinguishable from the truth at voting and scoring time.
func BuildVoteOptions(question Question, submissions []Submission) []string {
	seen := map[string]struct{}{question.CorrectAnswer: {}}
	for _, submission := range submissions {
		seen[submission.AnswerText] = struct{}{}
	}
	options := make([]string, 0, len(seen))
	for option := range seen {
		options = append(options, option)
	}
	sort.Strings(options)
	return options
}

// ShuffleOptions permutes options in place, deterministically for a given
// seed.
func ShuffleOptions(options []string, seed int64) {
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
}

// OptionSeed derives the shuffle seed from the (question, viewer) pair,
// so a viewer sees the same order on every refresh during the voting
// phase while different viewers may see different orders.
func OptionSeed(questionID uint, viewerID string) int64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(questionID))
	h.Write(buf[:])
	h.Write([]byte(viewerID))
	return int64(h.Sum64())
}

// VoteOptions returns the canonical option set for a question.
func (e *Engine) VoteOptions(questionID uint) ([]string, error) {
	question, err := e.store.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	submissions, err := e.store.Submissions(questionID)
	if err != nil {
		return nil, err
	}
	return BuildVoteOptions(question, submissions), nil
}

// OptionsForViewer returns the option set in the viewer's fixed
// per-question order.
func (e *Engine) OptionsForViewer(questionID uint, viewerID string) ([]string, error) {
	options, err := e.VoteOptions(questionID)
	if err != nil {
		return nil, err
	}
	ShuffleOptions(options, OptionSeed(questionID, viewerID))
	return options, nil
}
