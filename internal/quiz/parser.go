package quiz

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	questionRe    = regexp.MustCompile(`Question:[ \t]*(.*)`)
	optionRe      = regexp.MustCompile(`(?m)^[ \t*_-]*([A-D])\)[ \t]*(.*)$`)
	correctRe     = regexp.MustCompile(`Correct Answer:[\s*_(\[]*([A-Z])\b`)
	explanationRe = regexp.MustCompile(`(?s)Explanation:\s*(.*)`)
)

// Parse разбирает текст модели вида
//
//	Question: <вопрос>
//	A) <вариант>
//	...
//	Correct Answer: <буква>
//	Explanation: <объяснение до конца текста>
//
// Parse никогда не паникует: любая внутренняя ошибка превращается
// в невалидный результат без вариантов и без правильного ответа.
func Parse(text string) (result ParsedQuiz) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("failed to parse quiz response", "panic", r)
			result = ParsedQuiz{CorrectIndex: -1}
		}
	}()

	result = ParsedQuiz{
		Question:     QuestionNotFound,
		CorrectIndex: -1,
	}

	if m := questionRe.FindStringSubmatch(text); m != nil {
		if question := cleanField(m[1]); question != "" {
			result.Question = question
		}
	}

	// варианты ищутся только до объяснения, чтобы строки вида "B) ..."
	// внутри многострочного объяснения не стали вариантами
	body := text
	if loc := explanationRe.FindStringIndex(text); loc != nil {
		body = text[:loc[0]]
	}

	for _, m := range optionRe.FindAllStringSubmatch(body, -1) {
		result.Letters = append(result.Letters, m[1])
		result.Options = append(result.Options, cleanField(m[2]))
	}

	if m := correctRe.FindStringSubmatch(text); m != nil {
		for i, letter := range result.Letters {
			if letter == m[1] {
				result.CorrectIndex = i
				break
			}
		}
	}

	if m := explanationRe.FindStringSubmatch(text); m != nil {
		result.Explanation = cleanField(m[1])
	}

	return result
}

// cleanField убирает пробелы и ведущую markdown разметку вроде "**".
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "*_")
	return strings.TrimSpace(s)
}
