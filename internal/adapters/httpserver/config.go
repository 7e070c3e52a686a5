package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/phenrril/cotizador/internal/domain"
)

func (s *Server) apiProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.config.ListProjects(r.Context())
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		var p domain.Project
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeErr(w, 400, err)
			return
		}
		if err := s.config.CreateProject(r.Context(), &p, actor(r)); err != nil {
			writeErr(w, 400, err)
			return
		}
		writeJSON(w, 201, p)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiProjectByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/api/projects/"))
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.config.GetProject(r.Context(), id)
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, p)
	case http.MethodDelete:
		if err := s.config.DeleteProject(r.Context(), id); err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, map[string]string{"status": "deleted"})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiGroups(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.config.ListGroups(r.Context())
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		var g domain.CustomerGroup
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			writeErr(w, 400, err)
			return
		}
		if err := s.config.SaveGroup(r.Context(), &g, actor(r)); err != nil {
			writeErr(w, 400, err)
			return
		}
		writeJSON(w, 201, g)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiGroupByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/api/groups/"))
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	if err := s.config.DeleteGroup(r.Context(), id); err != nil {
		writeErr(w, httpStatus(err), err)
		return
	}
	writeJSON(w, 200, map[string]string{"status": "deleted"})
}

func groupIDParam(r *http.Request) uuid.UUID {
	id, _ := parseID(r.URL.Query().Get("group_id"))
	return id
}

func (s *Server) apiMaterialTypes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.config.ListMaterialTypes(r.Context(), groupIDParam(r))
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		var t domain.MaterialType
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			writeErr(w, 400, err)
			return
		}
		if err := s.config.SaveMaterialType(r.Context(), &t, actor(r)); err != nil {
			writeErr(w, 400, err)
			return
		}
		writeJSON(w, 201, t)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiMaterialTypeByID(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/config/materials/"), "/"), "/")
	id, ok := parseID(parts[0])
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	if len(parts) == 2 && parts[1] == "prefill" {
		rm, err := s.quotes.PrefillRawMaterial(r.Context(), id)
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, rm)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	if err := s.config.DeleteMaterialType(r.Context(), id); err != nil {
		writeErr(w, httpStatus(err), err)
		return
	}
	writeJSON(w, 200, map[string]string{"status": "deleted"})
}

func (s *Server) apiMachineTypes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.config.ListMachineTypes(r.Context(), groupIDParam(r))
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		var t domain.MouldingMachineType
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			writeErr(w, 400, err)
			return
		}
		if err := s.config.SaveMachineType(r.Context(), &t, actor(r)); err != nil {
			writeErr(w, 400, err)
			return
		}
		writeJSON(w, 201, t)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiMachineTypeByID(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/config/machines/"), "/"), "/")
	id, ok := parseID(parts[0])
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	if len(parts) == 2 && parts[1] == "prefill" {
		m, err := s.quotes.PrefillMachine(r.Context(), id)
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, m)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	if err := s.config.DeleteMachineType(r.Context(), id); err != nil {
		writeErr(w, httpStatus(err), err)
		return
	}
	writeJSON(w, 200, map[string]string{"status": "deleted"})
}

func (s *Server) apiAssemblyTypes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.config.ListAssemblyTypes(r.Context(), groupIDParam(r))
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		var t domain.AssemblyType
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			writeErr(w, 400, err)
			return
		}
		if err := s.config.SaveAssemblyType(r.Context(), &t, actor(r)); err != nil {
			writeErr(w, 400, err)
			return
		}
		writeJSON(w, 201, t)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiAssemblyTypeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/api/config/assembly-types/"))
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	if err := s.config.DeleteAssemblyType(r.Context(), id); err != nil {
		writeErr(w, httpStatus(err), err)
		return
	}
	writeJSON(w, 200, map[string]string{"status": "deleted"})
}

func (s *Server) apiPackagingTypes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.config.ListPackagingTypes(r.Context(), groupIDParam(r))
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		var t domain.PackagingType
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			writeErr(w, 400, err)
			return
		}
		if err := s.config.SavePackagingType(r.Context(), &t, actor(r)); err != nil {
			writeErr(w, 400, err)
			return
		}
		writeJSON(w, 201, t)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiPackagingTypeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/api/config/packaging-types/"))
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	if err := s.config.DeletePackagingType(r.Context(), id); err != nil {
		writeErr(w, httpStatus(err), err)
		return
	}
	writeJSON(w, 200, map[string]string{"status": "deleted"})
}
