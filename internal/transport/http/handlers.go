package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/akshay-rawal/Quiz-Game/internal/app"
	"github.com/akshay-rawal/Quiz-Game/internal/auth"
	"github.com/akshay-rawal/Quiz-Game/internal/domain"
	"github.com/gorilla/mux"
)

// Handler wires the quiz use cases onto the HTTP surface.
type Handler struct {
	service *app.QuizService
	auth    *auth.Authenticator
	seedSet []domain.Question
}

func NewHandler(service *app.QuizService, authenticator *auth.Authenticator, seedSet []domain.Question) *Handler {
	return &Handler{service: service, auth: authenticator, seedSet: seedSet}
}

// Routes registers every endpoint on the router.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/questions/{category}/{userId}", h.GetQuestions).Methods(http.MethodGet)
	r.HandleFunc("/answersubmit", h.SubmitAnswer).Methods(http.MethodPost)
	r.HandleFunc("/leaderboard", h.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/insert-questions", h.InsertQuestions).Methods(http.MethodGet)
	r.HandleFunc("/ws", h.ServeWS).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
}

// GetQuestions serves one page of a category's questions. userId "guest"
// selects the ephemeral path; every other userId must match the caller's
// token identity.
func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	category, err := domain.ParseCategory(vars["category"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unknown category.")
		return
	}
	requestedUser := vars["userId"]

	var identity domain.Identity
	if requestedUser == domain.GuestUserID {
		identity = domain.Identity{UserID: domain.GuestUserID, Guest: true, SessionID: guestSessionID(r)}
	} else {
		resolved, httpErr := h.resolveIdentity(r)
		if httpErr != nil {
			httpErr.write(w)
			return
		}
		if resolved.Guest || resolved.UserID != requestedUser {
			writeMessage(w, http.StatusForbidden, "You are not authorized to access these questions.")
			return
		}
		identity = resolved
	}

	page := intQuery(r, "page", 0)
	limit := intQuery(r, "limit", 0)

	questionPage, err := h.service.ListQuestions(r.Context(), identity, category, page, limit)
	if err != nil {
		log.Printf("list questions failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Error fetching questions from the database.")
		return
	}
	writeJSON(w, http.StatusOK, questionPage)
}

type submitRequest struct {
	UserID         string `json:"userId"`
	QuestionID     string `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
}

type submitResponse struct {
	Message string `json:"message"`
	domain.SubmitResult
}

// SubmitAnswer is the canonical submission endpoint: idempotent on
// resubmission, guest-aware, and serialized per (identity, category).
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Body missing!")
		return
	}
	if req.UserID == "" || req.QuestionID == "" || req.SelectedOption == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	var identity domain.Identity
	if req.UserID == domain.GuestUserID {
		identity = domain.Identity{UserID: domain.GuestUserID, Guest: true, SessionID: guestSessionID(r)}
	} else {
		resolved, httpErr := h.resolveIdentity(r)
		if httpErr != nil {
			httpErr.write(w)
			return
		}
		if resolved.Guest || resolved.UserID != req.UserID {
			writeMessage(w, http.StatusForbidden, "You are not authorized to submit for this user.")
			return
		}
		identity = resolved
	}

	result, err := h.service.SubmitAnswer(r.Context(), identity, req.QuestionID, req.SelectedOption)
	switch {
	case errors.Is(err, domain.ErrQuestionNotFound):
		writeMessage(w, http.StatusNotFound, "Question not found.")
		return
	case errors.Is(err, domain.ErrGuestSessionNotFound):
		writeMessage(w, http.StatusNotFound, "Guest session not found.")
		return
	case err != nil:
		log.Printf("submit answer failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Error submitting answer.")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Message:      "Answer submitted successfully.",
		SubmitResult: result,
	})
}

type leaderboardResponse struct {
	Leaderboard []domain.SummaryRow `json:"leaderboard"`
}

// GetLeaderboard returns the caller's per-category score summary,
// highest total first. ?guest=true selects the ephemeral path.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	identity, httpErr := h.resolveIdentity(r)
	if httpErr != nil {
		httpErr.write(w)
		return
	}

	rows, err := h.service.GetSummary(r.Context(), identity)
	if err != nil {
		log.Printf("leaderboard failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Error fetching leaderboard.")
		return
	}
	if rows == nil {
		rows = []domain.SummaryRow{}
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{Leaderboard: rows})
}

// InsertQuestions seeds the built-in question set (idempotent upsert).
func (h *Handler) InsertQuestions(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SeedDefaults(r.Context(), h.seedSet); err != nil {
		log.Printf("seed questions failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to insert questions.")
		return
	}
	writeMessage(w, http.StatusOK, "Questions inserted successfully!")
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
