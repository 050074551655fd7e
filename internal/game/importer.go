package game

import (
	"bufio"
	"io"
	"strings"
)

type ParsedQuestion struct {
	Text          string
	CorrectAnswer string
}

// ParseQuestions reads line-oriented "question|answer" rows. Only the
// first delimiter splits, so the answer may itself contain pipes. Lines
// with no delimiter, or an empty question or answer after trimming, are
// skipped and counted separately; they never fail the batch.
func ParseQuestions(r io.Reader) (parsed []ParsedQuestion, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		index := strings.Index(line, "|")
		if index < 0 {
			skipped++
			continue
		}
		text := strings.TrimSpace(line[:index])
		answer := strings.TrimSpace(line[index+1:])
		if text == "" || answer == "" {
			skipped++
			continue
		}
		parsed = append(parsed, ParsedQuestion{Text: text, CorrectAnswer: answer})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return parsed, skipped, nil
}

// ImportQuestions parses the resource and inserts one Question per valid
// row, reporting how many were created and how many lines were dropped.
func (e *Engine) ImportQuestions(r io.Reader) (imported, skipped int, err error) {
	parsed, skipped, err := ParseQuestions(r)
	if err != nil {
		return 0, 0, err
	}
	for _, row := range parsed {
		if _, err := e.store.InsertQuestion(row.Text, row.CorrectAnswer); err != nil {
			return imported, skipped, err
		}
		imported++
	}
	e.appendLog(nil, "questions_imported", map[string]int{"imported": imported, "skipped": skipped})
	return imported, skipped, nil
}
