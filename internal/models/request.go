package models

import "time"

// ItemRequest is a user's posted need for an item that is not listed yet.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemRequestDetail is a request enriched with the items listed against it.
type ItemRequestDetail struct {
	ItemRequest
	Items []Item `json:"items"`
}
