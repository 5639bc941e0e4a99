package domain

import "time"

// Link maps a unique slug to a destination URL.
type Link struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Destination string    `json:"destination"`
	Author      int64     `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicLink is the projection returned by the API: the four core
// attributes, nothing else.
type PublicLink struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Destination string `json:"destination"`
	Author      int64  `json:"author"`
}

func (l *Link) Public() PublicLink {
	return PublicLink{
		ID:          l.ID,
		Slug:        l.Slug,
		Destination: l.Destination,
		Author:      l.Author,
	}
}

// LinkPage is one page of links plus pagination metadata.
type LinkPage struct {
	Links    []PublicLink `json:"links"`
	Page     int          `json:"page"`
	Pagesize int          `json:"pagesize"`
	Total    int64        `json:"total"`
}
