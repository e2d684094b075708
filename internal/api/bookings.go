package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lendit/internal/metrics"
	"lendit/internal/models"
)

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), bookerID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	metrics.IncBooking(booking.Status)
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}

	booking, err := s.bookings.ApproveBooking(r.Context(), ownerID, bookingID, approved)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	metrics.IncBooking(booking.Status)
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.GetBookingForUser(r.Context(), userID, bookingID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.handleBookingList(w, r, false)
}

func (s *Server) handleOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.handleBookingList(w, r, true)
}

func (s *Server) handleBookingList(w http.ResponseWriter, r *http.Request, ownerView bool) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	state, err := models.ParseBookingState(r.URL.Query().Get("state"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var bookings []models.Booking
	if ownerView {
		bookings, err = s.bookings.GetBookingsForOwner(r.Context(), userID, state, page)
	} else {
		bookings, err = s.bookings.GetBookingsForBooker(r.Context(), userID, state, page)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
