package quiz

import (
	"context"
)

// TextSource возвращает сырой текст квиза от языковой модели.
type TextSource interface {
	RequestQuizText(ctx context.Context) (string, error)
}

// Service связывает генерацию, разбор и показ квиза.
type Service struct {
	source    TextSource
	formatter *Formatter
}

// NewService создаёт Service.
func NewService(source TextSource, formatter *Formatter) *Service {
	return &Service{
		source:    source,
		formatter: formatter,
	}
}

// Generate запрашивает текст у модели и разбирает его.
// Ошибка источника возвращается как есть; невалидный разбор — ErrUnparsable
// вместе с сырым текстом для диагностики.
func (s *Service) Generate(ctx context.Context) (ParsedQuiz, string, error) {
	raw, err := s.source.RequestQuizText(ctx)
	if err != nil {
		return ParsedQuiz{CorrectIndex: -1}, "", err
	}

	parsed := Parse(raw)
	if !parsed.Valid() {
		return parsed, raw, ErrUnparsable
	}

	return parsed, raw, nil
}

// Present показывает разобранный квиз и возвращает ключ корреляции.
func (s *Service) Present(ctx context.Context, q ParsedQuiz, p Presenter) (string, error) {
	return s.formatter.Present(ctx, q, p)
}

// Mode возвращает режим показа.
func (s *Service) Mode() Mode {
	return s.formatter.Mode()
}
