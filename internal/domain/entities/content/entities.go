// Package content defines the application's core content-related domain entities.
package content

import "time"

// Record is one item in the demo-content catalog. The views/likes
// counters are owned by the content mutation paths; the analytics
// engine reads them and never writes back.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Views     int       `json:"views"`
	Likes     int       `json:"likes"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
