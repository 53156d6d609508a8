package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/listlab/internal/lesson"
	"github.com/abhisek/listlab/internal/playback"
)

type lessonSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       int    `json:"steps"`
}

type framesResponse struct {
	LessonID int              `json:"lessonId"`
	StepID   string           `json:"stepId"`
	Frames   []playback.Frame `json:"frames"`
}

func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	lessons := s.catalog.Lessons()
	out := make([]lessonSummary, len(lessons))
	for i, l := range lessons {
		out[i] = lessonSummary{ID: l.ID, Title: l.Title, Description: l.Description, Steps: len(l.Steps)}
	}
	writeJSON(w, s.logger, http.StatusOK, out)
}

func (s *Server) getLesson(w http.ResponseWriter, r *http.Request) {
	id, err := lessonID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	l, err := s.catalog.Lesson(id)
	if err != nil {
		s.writeLookupError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, l)
}

// stepFrames returns every frame of a visualization step, from the first
// step to the last, so clients can replay without the engine.
func (s *Server) stepFrames(w http.ResponseWriter, r *http.Request) {
	step, ok := s.lookupStep(w, r)
	if !ok {
		return
	}
	if step.Kind != lesson.KindVisualization {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("step %q is not a visualization", step.ID))
		return
	}

	id, _ := lessonID(r)
	writeJSON(w, s.logger, http.StatusOK, framesResponse{
		LessonID: id,
		StepID:   step.ID,
		Frames:   playback.ForStep(step).Timeline(),
	})
}

func (s *Server) answerMCQ(w http.ResponseWriter, r *http.Request) {
	step, ok := s.lookupStep(w, r)
	if !ok {
		return
	}
	if step.Kind != lesson.KindMCQ || step.MCQ == nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("step %q is not a multiple choice question", step.ID))
		return
	}

	var req mcqRequest
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil {
		err = decodeJSON(data, &req)
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, formatValidationError(err))
		return
	}

	correct, err := step.MCQ.Check(req.OptionID)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, mcqResponse{Correct: correct, Explanation: step.MCQ.Explanation})
}

func (s *Server) lookupStep(w http.ResponseWriter, r *http.Request) (lesson.Step, bool) {
	id, err := lessonID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return lesson.Step{}, false
	}
	_, step, err := s.catalog.Step(id, chi.URLParam(r, "stepID"))
	if err != nil {
		s.writeLookupError(w, err)
		return lesson.Step{}, false
	}
	return step, true
}

func (s *Server) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, lesson.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err)
}

func lessonID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "lessonID")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid lesson id %q", raw)
	}
	return id, nil
}
