package domain

import "time"

type Review struct {
	HotelID int64     `json:"-"`
	User    string    `json:"user"`
	Comment string    `json:"comment"`
	Rating  int       `json:"rating"` // 1..5
	Date    time.Time `json:"date"`
}

type PageQuery struct {
	Limit int
}

type ReviewsPage struct {
	Items []Review `json:"items"`
}
