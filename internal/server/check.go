package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/abhisek/listlab/internal/evaluation"
)

// checkAnswer handles POST /api/check-answer. A body that is not JSON, or
// whose question is not a string, is treated as a request without a
// question. Any other wrongly typed field is rejected by name.
func (s *Server) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req checkAnswerRequest

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, s.logger, http.StatusRequestEntityTooLarge, checkAnswerResponse{
				Feedback: "Request body too large",
				Reaction: evaluation.ReactionWarning,
			})
			return
		}
		s.logger.Warn("read check-answer body", "error", err)
	} else if err := decodeJSON(data, &req); err != nil {
		if msg, ok := mistypedField(err); ok {
			writeJSON(w, s.logger, http.StatusBadRequest, checkAnswerResponse{
				Feedback: "Invalid request: " + msg,
				Reaction: evaluation.ReactionWarning,
			})
			return
		}
		s.logger.Debug("check-answer body is not JSON", "error", err)
		req = checkAnswerRequest{}
	}

	if err := validate.Struct(&req); err != nil {
		writeJSON(w, s.logger, http.StatusBadRequest, checkAnswerResponse{
			Feedback: "Invalid request: " + formatValidationError(err).Error(),
			Reaction: evaluation.ReactionWarning,
		})
		return
	}

	out, err := s.evaluator.Check(r.Context(), evaluation.Input{
		Question: req.Question,
		Answer:   req.Answer,
		Context:  req.Context,
		Topic:    req.Topic,
		Attempt:  req.Attempt.Ptr(),
	})
	if err != nil && out.Status >= http.StatusInternalServerError {
		s.logger.Error("answer check failed", "request_id", out.RequestID, "error", err)
	}

	writeJSON(w, s.logger, out.Status, checkAnswerResponse{
		Feedback: out.Feedback,
		Reaction: out.Reaction,
	})
}
