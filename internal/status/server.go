// Package status отдаёт состояние бота и пробную генерацию квиза по HTTP.
package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/letsssgooo/aiQuizBot/internal/llm"
	"github.com/letsssgooo/aiQuizBot/internal/quiz"
)

const shutdownTimeout = 5 * time.Second

// Previewer генерирует и разбирает квиз без отправки в чат.
type Previewer interface {
	Generate(ctx context.Context) (quiz.ParsedQuiz, string, error)
}

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Raw     string `json:"raw,omitempty"`
}

// PreviewResponse — разобранный квиз.
type PreviewResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Letters       []string `json:"letters"`
	CorrectIndex  int      `json:"correct_index"`
	CorrectLetter string   `json:"correct_letter"`
	Explanation   string   `json:"explanation"`
}

// Server — HTTP сервер статуса.
type Server struct {
	srv       *http.Server
	previewer Previewer
}

// NewServer создаёт сервер на addr.
func NewServer(addr string, previewer Previewer) *Server {
	s := &Server{previewer: previewer}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler возвращает маршрутизатор сервера.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run слушает addr до отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("status server started", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("status server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown status server: %w", err)
	}

	return nil
}

func (s *Server) routes() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/v1/quiz/preview", s.preview)

	return router
}

func (s *Server) preview(c *gin.Context) {
	q, raw, err := s.previewer.Generate(c.Request.Context())
	switch {
	case errors.Is(err, quiz.ErrUnparsable):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   http.StatusText(http.StatusUnprocessableEntity),
			Message: err.Error(),
			Raw:     raw,
		})
		return
	case errors.Is(err, llm.ErrCompletionUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   http.StatusText(http.StatusServiceUnavailable),
			Message: err.Error(),
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   http.StatusText(http.StatusInternalServerError),
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Question:      q.Question,
		Options:       q.Options,
		Letters:       q.Letters,
		CorrectIndex:  q.CorrectIndex,
		CorrectLetter: q.CorrectLetter(),
		Explanation:   q.Explanation,
	})
}
