package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/phenrril/cotizador/internal/adapters/excel"
	"github.com/phenrril/cotizador/internal/domain"
)

func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return 404
	case errors.Is(err, domain.ErrQuoteLocked),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrGroupInUse):
		return 409
	case errors.Is(err, domain.ErrGroupRequired):
		return 400
	default:
		return 500
	}
}

func (s *Server) apiQuotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		f := domain.QuoteFilter{
			Status: domain.QuoteStatus(r.URL.Query().Get("status")),
			Query:  r.URL.Query().Get("q"),
		}
		if id, ok := parseID(r.URL.Query().Get("project_id")); ok {
			f.ProjectID = id
		}
		f.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
		f.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
		list, total, err := s.quotes.ListQuotes(r.Context(), f)
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list, "total": total})
	case http.MethodPost:
		var q domain.Quote
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			writeErr(w, 400, err)
			return
		}
		if err := s.quotes.CreateQuote(r.Context(), &q, actor(r)); err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 201, q)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiQuoteByID(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/quotes/"), "/"), "/")
	id, ok := parseID(parts[0])
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	switch len(parts) {
	case 1:
		s.quoteRoot(w, r, id)
	case 2:
		s.quoteAction(w, r, id, parts[1])
	case 3:
		childID, ok := parseID(parts[2])
		if !ok {
			http.Error(w, "id inválido", 400)
			return
		}
		s.quoteChild(w, r, id, parts[1], childID)
	case 4, 5:
		s.assemblyChild(w, r, id, parts[1:])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) quoteRoot(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	switch r.Method {
	case http.MethodGet:
		q, err := s.quotes.GetQuote(r.Context(), id)
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, q)
	case http.MethodPut:
		var def domain.Quote
		if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
			writeErr(w, 400, err)
			return
		}
		def.ID = id
		q, err := s.quotes.UpdateDefinition(r.Context(), &def, actor(r))
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, q)
	case http.MethodDelete:
		if err := s.quotes.DeleteQuote(r.Context(), id); err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, map[string]string{"status": "deleted"})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) quoteAction(w http.ResponseWriter, r *http.Request, id uuid.UUID, action string) {
	switch action {
	case "summary":
		sum, err := s.quotes.Summary(r.Context(), id)
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, sum)
	case "timeline":
		s.quoteTimeline(w, r, id)
	case "complete", "reopen", "discard":
		if r.Method != http.MethodPost {
			http.Error(w, "method", 405)
			return
		}
		var q *domain.Quote
		var err error
		switch action {
		case "complete":
			q, err = s.quotes.MarkCompleted(r.Context(), id, actor(r))
		case "reopen":
			q, err = s.quotes.Reopen(r.Context(), id, actor(r))
		default:
			q, err = s.quotes.Discard(r.Context(), id, actor(r))
		}
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, q)
	case "sections":
		if r.Method != http.MethodPost {
			http.Error(w, "method", 405)
			return
		}
		var req struct {
			Section domain.Section `json:"section"`
			Done    bool           `json:"done"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, 400, err)
			return
		}
		q, err := s.quotes.SetSectionComplete(r.Context(), id, req.Section, req.Done, actor(r))
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, q)
	case "clone":
		if r.Method != http.MethodPost {
			http.Error(w, "method", 405)
			return
		}
		q, err := s.quotes.CloneQuote(r.Context(), id, actor(r))
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 201, q)
	case "export":
		s.quoteExport(w, r, id)
	case "raw-materials", "machines", "assemblies", "packagings", "transports":
		if r.Method != http.MethodPost {
			http.Error(w, "method", 405)
			return
		}
		s.addQuoteChild(w, r, id, action)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) quoteTimeline(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	switch r.Method {
	case http.MethodGet:
		entries, err := s.quotes.TimelineFor(r.Context(), id)
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, entries)
	case http.MethodPost:
		var req struct {
			Description string `json:"description"`
			Attachment  string `json:"attachment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, 400, err)
			return
		}
		if err := s.quotes.AddManualEntry(r.Context(), id, req.Description, req.Attachment, actor(r)); err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 201, map[string]string{"status": "created"})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) addQuoteChild(w http.ResponseWriter, r *http.Request, id uuid.UUID, kind string) {
	var err error
	var out any
	switch kind {
	case "raw-materials":
		var rm domain.RawMaterial
		if err = json.NewDecoder(r.Body).Decode(&rm); err == nil {
			err = s.quotes.AddRawMaterial(r.Context(), id, &rm, actor(r))
			out = rm
		}
	case "machines":
		var m domain.MouldingMachineDetail
		if err = json.NewDecoder(r.Body).Decode(&m); err == nil {
			err = s.quotes.AddMachine(r.Context(), id, &m, actor(r))
			out = m
		}
	case "assemblies":
		var a domain.Assembly
		if err = json.NewDecoder(r.Body).Decode(&a); err == nil {
			err = s.quotes.AddAssembly(r.Context(), id, &a, actor(r))
			out = a
		}
	case "packagings":
		var p domain.Packaging
		if err = json.NewDecoder(r.Body).Decode(&p); err == nil {
			err = s.quotes.AddPackaging(r.Context(), id, &p, actor(r))
			out = p
		}
	case "transports":
		var t domain.Transport
		if err = json.NewDecoder(r.Body).Decode(&t); err == nil {
			err = s.quotes.AddTransport(r.Context(), id, &t, actor(r))
			out = t
		}
	}
	if err != nil {
		writeErr(w, httpStatus(err), err)
		return
	}
	writeJSON(w, 201, out)
}

func (s *Server) quoteChild(w http.ResponseWriter, r *http.Request, quoteID uuid.UUID, kind string, childID uuid.UUID) {
	act := actor(r)
	switch r.Method {
	case http.MethodPut:
		var err error
		var out any
		switch kind {
		case "raw-materials":
			var rm domain.RawMaterial
			if err = json.NewDecoder(r.Body).Decode(&rm); err == nil {
				rm.ID = childID
				err = s.quotes.UpdateRawMaterial(r.Context(), quoteID, &rm, act)
				out = rm
			}
		case "machines":
			var m domain.MouldingMachineDetail
			if err = json.NewDecoder(r.Body).Decode(&m); err == nil {
				m.ID = childID
				err = s.quotes.UpdateMachine(r.Context(), quoteID, &m, act)
				out = m
			}
		case "assemblies":
			var a domain.Assembly
			if err = json.NewDecoder(r.Body).Decode(&a); err == nil {
				a.ID = childID
				err = s.quotes.UpdateAssembly(r.Context(), quoteID, &a, act)
				out = a
			}
		case "packagings":
			var p domain.Packaging
			if err = json.NewDecoder(r.Body).Decode(&p); err == nil {
				p.ID = childID
				err = s.quotes.UpdatePackaging(r.Context(), quoteID, &p, act)
				out = p
			}
		case "transports":
			var t domain.Transport
			if err = json.NewDecoder(r.Body).Decode(&t); err == nil {
				t.ID = childID
				err = s.quotes.UpdateTransport(r.Context(), quoteID, &t, act)
				out = t
			}
		default:
			http.NotFound(w, r)
			return
		}
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, out)
	case http.MethodDelete:
		var err error
		switch kind {
		case "raw-materials":
			err = s.quotes.DeleteRawMaterial(r.Context(), quoteID, childID, act)
		case "machines":
			err = s.quotes.DeleteMachine(r.Context(), quoteID, childID, act)
		case "assemblies":
			err = s.quotes.DeleteAssembly(r.Context(), quoteID, childID, act)
		case "packagings":
			err = s.quotes.DeletePackaging(r.Context(), quoteID, childID, act)
		case "transports":
			err = s.quotes.DeleteTransport(r.Context(), quoteID, childID, act)
		default:
			http.NotFound(w, r)
			return
		}
		if err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, map[string]string{"status": "deleted"})
	default:
		http.Error(w, "method", 405)
	}
}

// assemblyChild rutea /api/quotes/{id}/assemblies/{aid}/raw-materials[/{itemID}]
// y .../manufacturing-costs[/{itemID}].
func (s *Server) assemblyChild(w http.ResponseWriter, r *http.Request, quoteID uuid.UUID, parts []string) {
	if parts[0] != "assemblies" {
		http.NotFound(w, r)
		return
	}
	asmID, ok := parseID(parts[1])
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	kind := parts[2]
	act := actor(r)

	if len(parts) == 3 {
		if r.Method != http.MethodPost {
			http.Error(w, "method", 405)
			return
		}
		switch kind {
		case "raw-materials":
			var item domain.AssemblyRawMaterial
			if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
				writeErr(w, 400, err)
				return
			}
			if err := s.quotes.AddAssemblyRawMaterial(r.Context(), quoteID, asmID, &item, act); err != nil {
				writeErr(w, httpStatus(err), err)
				return
			}
			writeJSON(w, 201, item)
		case "manufacturing-costs":
			var c domain.ManufacturingPrintingCost
			if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
				writeErr(w, 400, err)
				return
			}
			if err := s.quotes.AddManufacturingCost(r.Context(), quoteID, asmID, &c, act); err != nil {
				writeErr(w, httpStatus(err), err)
				return
			}
			writeJSON(w, 201, c)
		default:
			http.NotFound(w, r)
		}
		return
	}

	itemID, ok := parseID(parts[3])
	if !ok {
		http.Error(w, "id inválido", 400)
		return
	}
	switch {
	case kind == "raw-materials" && r.Method == http.MethodPut:
		var item domain.AssemblyRawMaterial
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeErr(w, 400, err)
			return
		}
		item.ID = itemID
		if err := s.quotes.UpdateAssemblyRawMaterial(r.Context(), quoteID, asmID, &item, act); err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, item)
	case kind == "raw-materials" && r.Method == http.MethodDelete:
		if err := s.quotes.DeleteAssemblyRawMaterial(r.Context(), quoteID, asmID, itemID, act); err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, map[string]string{"status": "deleted"})
	case kind == "manufacturing-costs" && r.Method == http.MethodDelete:
		if err := s.quotes.DeleteManufacturingCost(r.Context(), quoteID, asmID, itemID, act); err != nil {
			writeErr(w, httpStatus(err), err)
			return
		}
		writeJSON(w, 200, map[string]string{"status": "deleted"})
	default:
		http.Error(w, "method", 405)
	}
}

// --- Excel ---

func (s *Server) apiQuoteTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := excel.BuildTemplate()
	if err != nil {
		writeErr(w, 500, err)
		return
	}
	sendXLSX(w, "quote_template.xlsx", data)
}

func (s *Server) apiQuoteImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	groupID, ok := parseID(r.URL.Query().Get("group_id"))
	if !ok {
		writeErr(w, 400, domain.ErrGroupRequired)
		return
	}
	data, err := readUpload(r)
	if err != nil {
		writeErr(w, 400, err)
		return
	}
	q, rep, err := excel.ParseQuote(data)
	if err != nil {
		writeErr(w, 400, err)
		return
	}
	q.CustomerGroupID = groupID
	if projectID, ok := parseID(r.URL.Query().Get("project_id")); ok {
		q.ProjectID = projectID
	}
	if err := s.quotes.CreateQuote(r.Context(), q, actor(r)); err != nil {
		writeErr(w, httpStatus(err), err)
		return
	}
	writeJSON(w, 201, map[string]any{"quote": q, "report": rep})
}

func (s *Server) quoteExport(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	q, err := s.quotes.GetQuote(r.Context(), id)
	if err != nil {
		writeErr(w, httpStatus(err), err)
		return
	}
	data, err := excel.ExportQuote(q)
	if err != nil {
		writeErr(w, 500, err)
		return
	}
	sendXLSX(w, fmt.Sprintf("quote_%s_v%s.xlsx", q.PartNumber, q.Version()), data)
}

// readUpload acepta multipart (campo "file") o el cuerpo crudo.
func readUpload(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, err
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return io.ReadAll(r.Body)
}

func sendXLSX(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(data)
}
