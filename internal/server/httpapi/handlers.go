// Package httpapi is the HTTP boundary of the server: routing, middleware,
// request decoding and the mapping of service errors to JSON responses.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/dmitrijs2005/moodjournal/internal/server/apierrors"
	"github.com/dmitrijs2005/moodjournal/internal/server/models"
	"github.com/dmitrijs2005/moodjournal/internal/server/services"
	"github.com/go-playground/validator/v10"
)

// maxRequestBody bounds JSON request bodies.
const maxRequestBody = 1 << 20

type UserService interface {
	TokenVerifier
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type ReflectionService interface {
	Reflect(ctx context.Context, req services.ReflectRequest) (json.RawMessage, error)
}

type EntryService interface {
	Save(ctx context.Context, req services.SaveEntryRequest) (*models.Entry, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*models.Entry, error)
}

type Handler struct {
	users       UserService
	reflections ReflectionService
	entries     EntryService
	validate    *validator.Validate
	logger      logging.Logger
}

func NewHandler(u UserService, r ReflectionService, e EntryService, l logging.Logger) *Handler {
	v := validator.New()
	// report JSON field names in validation messages
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		users:       u,
		reflections: r,
		entries:     e,
		validate:    v,
		logger:      l.With("module", "http_handler"),
	}
}

// decode reads a JSON body into dst and runs its validate tags.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(dst); err != nil {
		return apierrors.ErrBadRequest.WithMessage("Invalid request body")
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return apierrors.ErrValidation.WithMessage("Missing required fields: " + strings.Join(fields, ", "))
		}
		return apierrors.ErrBadRequest
	}

	return nil
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Signup handles POST /signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.users.Register(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Signup successful"})
}

// Register handles POST /register. The username is the identity key in the
// same credential store used by /signup.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.users.Register(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "User registered successfully!"})
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

type reflectRequest struct {
	Entry         string `json:"entry" validate:"required"`
	Mood          string `json:"mood" validate:"required"`
	MemoryContext string `json:"memoryContext"`
}

// Reflect handles POST /reflect and relays the provider payload unchanged.
func (h *Handler) Reflect(w http.ResponseWriter, r *http.Request) {
	var req reflectRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	payload, err := h.reflections.Reflect(r.Context(), services.ReflectRequest{
		Entry:         req.Entry,
		Mood:          req.Mood,
		MemoryContext: req.MemoryContext,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeRaw(w, http.StatusOK, payload)
}

type saveEntryRequest struct {
	Content  string `json:"content" validate:"required"`
	Mood     string `json:"mood"`
	Trigger  string `json:"trigger"`
	Response string `json:"response"`
	Date     string `json:"date"`
}

// SaveEntry handles POST /save-entry. It verifies the bearer token itself
// and always files the entry under the token's user.
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.users)
	if err != nil {
		h.logger.Warn(r.Context(), "save-entry rejected", "reason", err.Error())
		writeError(w, err)
		return
	}

	var req saveEntryRequest
	if err := h.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.entries.Save(r.Context(), services.SaveEntryRequest{
		UserID:   claims.UserID,
		Content:  req.Content,
		Mood:     req.Mood,
		Trigger:  req.Trigger,
		Response: req.Response,
		Date:     req.Date,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Entry saved successfully!", ID: entry.ID})
}

type entryResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	Trigger   string `json:"trigger,omitempty"`
	Response  string `json:"response"`
	Date      string `json:"date"`
	CreatedAt string `json:"createdAt"`
}

type entriesResponse struct {
	Entries []entryResponse `json:"entries"`
}

// ListEntries handles GET /entries?limit=N.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierrors.ErrUnauthenticated)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, apierrors.ErrBadRequest.WithMessage("limit must be an integer"))
			return
		}
		limit = n
	}

	items, err := h.entries.ListRecent(r.Context(), claims.UserID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := entriesResponse{Entries: make([]entryResponse, 0, len(items))}
	for _, e := range items {
		out.Entries = append(out.Entries, entryResponse{
			ID:        e.ID,
			Content:   e.Content,
			Mood:      e.Mood,
			Trigger:   e.Trigger,
			Response:  e.Response,
			Date:      e.Date,
			CreatedAt: e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
