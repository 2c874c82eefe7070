package server

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/flosch/pongo2/v4"
	"github.com/gorilla/sessions"

	"github.com/UnknownOlympus/hrnet/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hrnet/internal/metrics"
	"github.com/UnknownOlympus/hrnet/internal/models"
	"github.com/UnknownOlympus/hrnet/internal/services/employees"
	"github.com/UnknownOlympus/hrnet/internal/tableview"
	"github.com/UnknownOlympus/hrnet/internal/validator"
)

const (
	flashSession  = "flash-session"
	flashSuccess  = "success"
	flashError    = "error"
	sessionKeyLen = 32
	maxBodyBytes  = 1 << 16
)

//go:embed templates/*.html
var templateFS embed.FS

// EmployeeService is the part of the submission pipeline used by the web handlers.
type EmployeeService interface {
	Submit(ctx context.Context, candidate models.Employee) (models.Employee, error)
	List(q tableview.Query) tableview.Page
}

// Web serves the add-employee form, the employee table and the JSON API.
type Web struct {
	log             *slog.Logger
	staff           EmployeeService
	metrics         *metrics.Metrics
	sessions        sessions.Store
	defaultPageSize int

	formTpl *pongo2.Template
	listTpl *pongo2.Template
}

// NewWeb builds the web handlers. An empty sessionKey generates a random one, so
// flash cookies do not survive a restart.
func NewWeb(
	log *slog.Logger,
	staff EmployeeService,
	metrics *metrics.Metrics,
	sessionKey string,
	defaultPageSize int,
) (*Web, error) {
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = make([]byte, sessionKeyLen)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
	}

	cookieStore := sessions.NewCookieStore(key)
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	formTpl, err := loadTemplate("templates/form.html")
	if err != nil {
		return nil, err
	}
	listTpl, err := loadTemplate("templates/list.html")
	if err != nil {
		return nil, err
	}

	return &Web{
		log:             log.With(slog.String("division", "web")),
		staff:           staff,
		metrics:         metrics,
		sessions:        cookieStore,
		defaultPageSize: tableview.NormalizePageSize(defaultPageSize),
		formTpl:         formTpl,
		listTpl:         listTpl,
	}, nil
}

func loadTemplate(name string) (*pongo2.Template, error) {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tpl, err := pongo2.FromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	return tpl, nil
}

// Routes returns the handler for every web and API route.
func (h *Web) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", h.instrument("home", http.RedirectHandler("/employees/new", http.StatusFound).ServeHTTP))
	mux.Handle("GET /employees/new", h.instrument("form", h.showForm))
	mux.Handle("POST /employees", h.instrument("submit", h.submitForm))
	mux.Handle("GET /employees", h.instrument("list", h.showList))
	mux.Handle("GET /api/employees", h.instrument("api_list", h.apiList))
	mux.Handle("POST /api/employees", h.instrument("api_submit", h.apiSubmit))

	return mux
}

func (h *Web) showForm(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Get(r, flashSession)
	if err != nil {
		// A cookie signed with another key decodes to a fresh session.
		h.log.DebugContext(r.Context(), "Discarding unreadable session", sl.Err(err))
	}

	ctx := pongo2.Context{
		"states":      models.States,
		"departments": models.Departments,
		"success":     firstFlash(session, flashSuccess),
		"error":       firstFlash(session, flashError),
	}

	if err = session.Save(r, w); err != nil {
		h.log.WarnContext(r.Context(), "Failed to save session", sl.Err(err))
	}

	h.render(w, r, h.formTpl, ctx)
}

func (h *Web) submitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	flashKey, message := flashSuccess, employees.SuccessMessage

	_, err := h.staff.Submit(r.Context(), models.BindForm(r.PostForm))
	if err != nil {
		flashKey, message = flashError, err.Error()
	}

	session, _ := h.sessions.Get(r, flashSession)
	session.AddFlash(message, flashKey)
	if err = session.Save(r, w); err != nil {
		h.log.WarnContext(r.Context(), "Failed to save flash message", sl.Err(err))
	}

	http.Redirect(w, r, "/employees/new", http.StatusSeeOther)
}

type column struct {
	Field     string
	Label     string
	Href      string
	Indicator string
}

func (h *Web) showList(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	// Picking a different filter dimension in the controls starts from an empty value.
	// Links without prev keep their value.
	if values.Has("prev") && values.Get(tableview.ParamFilter) != values.Get("prev") {
		values.Del(tableview.ParamValue)
	}

	state := tableview.ParseValues(values, h.defaultPageSize)
	page := h.staff.List(state.Query())
	state.PageIndex = page.PageIndex

	columns := make([]column, 0, len(models.Fields))
	for _, field := range models.Fields {
		next := state
		_ = next.ToggleSort(field)

		col := column{Field: field, Label: models.FieldLabels[field], Href: listHref(next)}
		if state.Sort.Field == field {
			col.Indicator = "▲"
			if state.Sort.Direction == tableview.Descending {
				col.Indicator = "▼"
			}
		}
		columns = append(columns, col)
	}

	rows := make([][]string, 0, len(page.Rows))
	for _, employee := range page.Rows {
		cells := make([]string, 0, len(models.Fields))
		for _, field := range models.Fields {
			cells = append(cells, employee.Display(field))
		}
		rows = append(rows, cells)
	}

	var prevHref, nextHref string
	if page.PageIndex > 0 {
		prev := state
		prev.PreviousPage()
		prevHref = listHref(prev)
	}
	if page.PageIndex < page.PageCount-1 {
		next := state
		next.NextPage()
		nextHref = listHref(next)
	}

	h.render(w, r, h.listTpl, pongo2.Context{
		"columns":      columns,
		"rows":         rows,
		"filterField":  state.Filter.Field,
		"filterValue":  state.Filter.Value,
		"sortField":    state.Sort.Field,
		"sortDir":      string(state.Sort.Direction),
		"pageSizes":    tableview.PageSizes,
		"pageSize":     page.PageSize,
		"pageNumber":   page.PageIndex + 1,
		"pageCount":    page.PageCount,
		"totalRows":    page.TotalRows,
		"totalRecords": page.TotalRecords,
		"prevHref":     prevHref,
		"nextHref":     nextHref,
	})
}

func (h *Web) apiList(w http.ResponseWriter, r *http.Request) {
	state := tableview.ParseValues(r.URL.Query(), h.defaultPageSize)
	h.writeJSON(w, r, http.StatusOK, h.staff.List(state.Query()))
}

func (h *Web) apiSubmit(w http.ResponseWriter, r *http.Request) {
	var candidate models.Employee

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&candidate); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	employee, err := h.staff.Submit(r.Context(), candidate)
	if err != nil {
		if verr, ok := validator.AsError(err); ok {
			h.writeJSON(w, r, http.StatusUnprocessableEntity, verr)
			return
		}
		h.log.ErrorContext(r.Context(), "Failed to submit employee", sl.Err(err))
		h.writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	h.writeJSON(w, r, http.StatusCreated, employee)
}

func (h *Web) render(w http.ResponseWriter, r *http.Request, tpl *pongo2.Template, ctx pongo2.Context) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.ExecuteWriter(ctx, w); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to render template", sl.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Web) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.ErrorContext(r.Context(), "Failed to write JSON response", sl.Err(err))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Web) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		if h.metrics != nil {
			h.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		}
	})
}

func firstFlash(session *sessions.Session, key string) string {
	for _, flash := range session.Flashes(key) {
		if msg, ok := flash.(string); ok {
			return msg
		}
	}
	return ""
}

func listHref(state tableview.ViewState) string {
	values := state.Values()
	values.Set("prev", state.Filter.Field)
	return (&url.URL{Path: "/employees", RawQuery: values.Encode()}).String()
}
