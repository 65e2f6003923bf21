package httpserver

import (
	"net/http"
)

type ratingCreateRequest struct {
	Score int `json:"score" validate:"gte=1,lte=10"`
}

func (s *Server) handleCreateRating(w http.ResponseWriter, r *http.Request) {
	movieID, err := movieIDParam(r)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	var req ratingCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		s.respondFailure(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := s.ratings.Create(r.Context(), movieID, req.Score)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondSuccess(w, http.StatusCreated, result)
}
