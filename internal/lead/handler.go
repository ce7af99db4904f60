package lead

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/remotescouts/landing/internal/shared"
	"github.com/remotescouts/landing/internal/view"
)

const contactAnchor = "/#contact"

// Form actions posted by the page.
const (
	actionUpdate = "update"
	actionSubmit = "submit"
)

// Handler wires HTTP endpoints for the landing page and its lead form.
type Handler struct {
	logger      *slog.Logger
	catalog     *Catalog
	store       *Store
	service     *Service
	validator   *Validator
	templates   *view.Engine
	csrfManager *shared.CSRFManager
	submitLimit int
}

// HandlerConfig groups the Handler dependencies.
type HandlerConfig struct {
	Logger      *slog.Logger
	Catalog     *Catalog
	Store       *Store
	Service     *Service
	Templates   *view.Engine
	CSRFManager *shared.CSRFManager
	// SubmitLimit caps submissions per client IP per minute; zero disables it.
	SubmitLimit int
}

// NewHandler constructs a Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:      logger,
		catalog:     cfg.Catalog,
		store:       cfg.Store,
		service:     cfg.Service,
		validator:   NewValidator(cfg.Catalog),
		templates:   cfg.Templates,
		csrfManager: cfg.CSRFManager,
		submitLimit: cfg.SubmitLimit,
	}
}

// MountRoutes registers the page and API routes on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showLanding)
	r.Post("/lead/toggle", h.handleToggle)
	h.limited(r).Post("/lead", h.handleForm)

	r.Route("/api/lead", func(r chi.Router) {
		r.Get("/", h.apiState)
		r.Patch("/", h.apiUpdate)
		r.Post("/toggle", h.apiToggle)
		h.limited(r).Post("/submit", h.apiSubmit)
	})
}

// limited throttles submissions per client IP.
func (h *Handler) limited(r chi.Router) chi.Router {
	if h.submitLimit <= 0 {
		return r
	}
	return r.With(httprate.LimitByIP(h.submitLimit, time.Minute))
}

func (h *Handler) showLanding(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	st := h.store.Load(sess)
	h.render(w, r, http.StatusOK, st)
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("lead form without session")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	st := h.store.Load(sess)
	h.applyForm(&st.Form, r)

	if r.PostFormValue("action") != actionSubmit {
		h.save(sess, st)
		http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
		return
	}

	if err := h.validator.Validate(st.Form); err != nil {
		h.logger.Debug("lead submit ignored", slog.Any("error", err))
		h.save(sess, st)
		h.render(w, r, http.StatusUnprocessableEntity, st)
		return
	}

	err := h.service.Submit(r.Context(), sess.ID, &st)
	switch {
	case errors.Is(err, ErrSubmissionPending):
		// The in-flight request owns the session state.
		http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
		return
	case err != nil && !errors.Is(err, ErrDelivery):
		h.logger.Error("lead submit", slog.Any("error", err))
	}
	h.save(sess, st)
	http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	st := h.store.Load(sess)
	if err := NewController(h.catalog, &st.Form).Toggle(r.PostFormValue("field"), r.PostFormValue("label")); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.save(sess, st)
	http.Redirect(w, r, contactAnchor, http.StatusSeeOther)
}

// applyForm copies a full page post into form through the controller.
// Order matters: the practice type decides which software labels count,
// and the custom text only sticks once the others option is selected.
func (h *Handler) applyForm(form *Form, r *http.Request) {
	ctl := NewController(h.catalog, form)
	ctl.SetCompanyName(r.PostFormValue("company_name"))
	if err := ctl.SetMinimumExperience(r.PostFormValue("minimum_experience")); err != nil {
		h.logger.Debug("ignore experience", slog.Any("error", err))
	}
	if practice := r.PostFormValue("practice_type"); practice != "" {
		if err := ctl.SetPracticeType(practice); err != nil {
			h.logger.Debug("ignore practice type", slog.Any("error", err))
		}
	}
	ctl.SelectPositions(r.PostForm["positions"])
	ctl.SelectSoftware(r.PostForm["software_systems"])
	ctl.SetCustomSoftware(r.PostFormValue("custom_software"))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, st State) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, err := h.csrfManager.EnsureToken(sess)
	if err != nil {
		h.logger.Error("csrf token", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	pending := sess != nil && h.service.Pending(sess.ID)
	data := view.TemplateData{
		Title:       "Remote Scouts Medical | HIPAA-compliant remote admin staffing",
		CSRFToken:   csrfToken,
		CurrentPath: r.URL.Path,
		Data:        newPageData(h.catalog, st, pending),
	}
	if err := h.templates.RenderStatus(w, status, "pages/landing.html", data); err != nil {
		h.logger.Error("render landing", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) save(sess *shared.Session, st State) {
	if err := h.store.Save(sess, st); err != nil {
		h.logger.Error("save lead state", slog.Any("error", err))
	}
}
