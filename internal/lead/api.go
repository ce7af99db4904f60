package lead

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/remotescouts/landing/internal/platform/httpx"
	"github.com/remotescouts/landing/internal/shared"
)

type updateRequest struct {
	CompanyName       *string `json:"companyName"`
	MinimumExperience *string `json:"minimumExperience"`
	PracticeType      *string `json:"practiceType"`
	CustomSoftware    *string `json:"customSoftware"`
}

type toggleRequest struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

func (h *Handler) apiState(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	h.respondState(w, sess, h.store.Load(sess))
}

func (h *Handler) apiUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	sess := shared.SessionFromContext(r.Context())
	st := h.store.Load(sess)
	ctl := NewController(h.catalog, &st.Form)
	if req.CompanyName != nil {
		ctl.SetCompanyName(*req.CompanyName)
	}
	if req.MinimumExperience != nil {
		if err := ctl.SetMinimumExperience(*req.MinimumExperience); err != nil {
			h.problem(w, err)
			return
		}
	}
	if req.PracticeType != nil {
		if err := ctl.SetPracticeType(*req.PracticeType); err != nil {
			h.problem(w, err)
			return
		}
	}
	if req.CustomSoftware != nil {
		ctl.SetCustomSoftware(*req.CustomSoftware)
	}
	h.save(sess, st)
	h.respondState(w, sess, st)
}

func (h *Handler) apiToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	sess := shared.SessionFromContext(r.Context())
	st := h.store.Load(sess)
	if err := NewController(h.catalog, &st.Form).Toggle(req.Field, req.Label); err != nil {
		h.problem(w, err)
		return
	}
	h.save(sess, st)
	h.respondState(w, sess, st)
}

func (h *Handler) apiSubmit(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.problem(w, shared.ErrSessionMissing)
		return
	}
	st := h.store.Load(sess)
	if err := h.validator.Validate(st.Form); err != nil {
		h.problem(w, err)
		return
	}
	err := h.service.Submit(r.Context(), sess.ID, &st)
	if errors.Is(err, ErrSubmissionPending) {
		h.problem(w, err)
		return
	}
	h.save(sess, st)
	if err != nil {
		h.problem(w, err)
		return
	}
	h.respondState(w, sess, st)
}

func (h *Handler) respondState(w http.ResponseWriter, sess *shared.Session, st State) {
	pending := sess != nil && h.service.Pending(sess.ID)
	httpx.JSON(w, http.StatusOK, newStateResponse(h.catalog, st, pending))
}

// problem maps lead errors onto RFC7807 responses. Delivery failures stay
// generic; the cause is only logged.
func (h *Handler) problem(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownField), errors.Is(err, ErrUnknownOption):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Choice", err.Error())
	case errors.Is(err, ErrNotReady):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Form Incomplete", err.Error())
	case errors.Is(err, ErrSubmissionPending):
		httpx.Problem(w, http.StatusConflict, "Submission Pending", "")
	case errors.Is(err, ErrDelivery):
		httpx.Problem(w, http.StatusBadGateway, "Delivery Failed", "There was an error submitting your request. Please try again.")
	default:
		h.logger.Error("lead api", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
