package domain

import "time"

type Review struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
