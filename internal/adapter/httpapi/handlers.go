package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/campuscoffee/pos-service/internal/domain"
)

func (s *Server) handleGetAll(w http.ResponseWriter, r *http.Request) {
	all, err := s.service.GetAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if all == nil {
		all = []domain.Pos{}
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		s.writeAPIError(w, errInvalidInput)
		return
	}

	pos, err := s.service.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pos)
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var pos domain.Pos
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		s.writeAPIError(w, errInvalidInput)
		return
	}
	if pos.Name == "" || !pos.Type.Valid() || !pos.Campus.Valid() {
		s.writeAPIError(w, errInvalidInput)
		return
	}

	saved, err := s.service.Upsert(r.Context(), pos)
	if err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if pos.ID == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Clear(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	nodeID, err := pathInt64(r, "nodeId")
	if err != nil {
		s.writeAPIError(w, errInvalidInput)
		return
	}

	pos, err := s.service.ImportFromOsmNode(r.Context(), nodeID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pos)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
