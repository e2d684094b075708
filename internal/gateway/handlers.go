package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lendit/internal/models"
)

// passThrough forwards without any checks.
func (g *Gateway) passThrough(w http.ResponseWriter, r *http.Request) {
	g.forward(w, r, nil)
}

func (g *Gateway) validateID(w http.ResponseWriter, r *http.Request) {
	if _, err := pathID(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.forward(w, r, nil)
}

func (g *Gateway) validateUser(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.forward(w, r, nil)
}

func (g *Gateway) validateUserAndID(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := pathID(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.forward(w, r, nil)
}

func (g *Gateway) validatePage(w http.ResponseWriter, r *http.Request) {
	if err := checkPage(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.forward(w, r, nil)
}

func (g *Gateway) validateUserAndPage(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := checkPage(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.forward(w, r, nil)
}

func (g *Gateway) validateCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	body, err := decodeBody(r, &payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := checkEmail(payload.Email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.forward(w, r, bytes.NewReader(body))
}

func (g *Gateway) validateUpdateUser(w http.ResponseWriter, r *http.Request) {
	if _, err := pathID(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var patch models.UserPatch
	body, err := decodeBody(r, &patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Email != nil {
		if err := checkEmail(*patch.Email); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	g.forward(w, r, bytes.NewReader(body))
}

func (g *Gateway) validateCreateItem(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var payload struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Available   *bool   `json:"available"`
	}
	body, err := decodeBody(r, &payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if payload.Description == nil || strings.TrimSpace(*payload.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if payload.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}
	g.forward(w, r, bytes.NewReader(body))
}

func (g *Gateway) validateComment(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := pathID(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var payload struct {
		Text string `json:"text"`
	}
	body, err := decodeBody(r, &payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		writeError(w, http.StatusBadRequest, "text must not be blank")
		return
	}
	g.forward(w, r, bytes.NewReader(body))
}

func (g *Gateway) validateCreateBooking(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req models.BookingRequest
	body, err := decodeBody(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	if req.Start.IsZero() || req.End.IsZero() {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}
	if !req.End.After(req.Start) {
		writeError(w, http.StatusBadRequest, "end must be after start")
		return
	}
	if req.Start.Before(time.Now().UTC()) {
		writeError(w, http.StatusBadRequest, "start must not be in the past")
		return
	}
	g.forward(w, r, bytes.NewReader(body))
}

func (g *Gateway) validateApproveBooking(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := pathID(r, "id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := strconv.ParseBool(r.URL.Query().Get("approved")); err != nil {
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}
	g.forward(w, r, nil)
}

func (g *Gateway) validateBookingList(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := models.ParseBookingState(r.URL.Query().Get("state")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := checkPage(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.forward(w, r, nil)
}

func (g *Gateway) validateCreateRequest(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var payload struct {
		Description string `json:"description"`
	}
	body, err := decodeBody(r, &payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Description) == "" {
		writeError(w, http.StatusBadRequest, "description must not be blank")
		return
	}
	g.forward(w, r, bytes.NewReader(body))
}

// decodeBody читает тело целиком, чтобы после валидации переслать его без изменений.
func decodeBody(r *http.Request, dst any) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, err
	}
	return body, nil
}

func callerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(models.HeaderUserID))
	if raw == "" {
		return 0, fmt.Errorf("header %s is required", models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("header %s must be a positive integer", models.HeaderUserID)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

func checkPage(r *http.Request) error {
	query := r.URL.Query()
	page := models.PageRequest{From: 0, Size: models.DefaultPageSize}
	if raw := query.Get("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("from must be an integer")
		}
		page.From = v
	}
	if raw := query.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("size must be an integer")
		}
		page.Size = v
	}
	return page.Validate()
}

func checkEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("email is malformed")
	}
	return nil
}
