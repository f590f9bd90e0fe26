package models

import (
	"fmt"
	"time"
)

type Business struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Receipt is read-only on the client.
type Receipt struct {
	ID        int64     `json:"id"`
	FilePath  string    `json:"file_path"`
	User      User      `json:"user"`
	Business  Business  `json:"business"`
	CreatedAt time.Time `json:"created_at"`
}

// Time renders the receipt time of day, e.g. "14:05".
func (r Receipt) Time() string {
	return r.CreatedAt.Format("15:04")
}

// GroupedReceipt is one calendar day of receipts. Date is "2006-01-02".
type GroupedReceipt struct {
	Date     string    `json:"date"`
	Receipts []Receipt `json:"receipts"`
}

// Title renders the group date as "Monday, 2nd Jan 2006". An unparsable date
// is returned unchanged.
func (g GroupedReceipt) Title() string {
	d, err := time.Parse(time.DateOnly, g.Date)
	if err != nil {
		return g.Date
	}
	return fmt.Sprintf("%s, %d%s %s", d.Weekday(), d.Day(), ordinal(d.Day()), d.Format("Jan 2006"))
}

func ordinal(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// Page is a cursor-paginated result.
type Page[T any] struct {
	Cursor  string `json:"cursor"`
	Limit   int    `json:"limit"`
	Results []T    `json:"results"`
}

// Stats feeds the dashboard.
type Stats struct {
	Receipts   int `json:"receipts"`
	Businesses int `json:"businesses"`
}
