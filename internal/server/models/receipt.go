// Package models defines the JSON bodies served by the development API.
package models

import "time"

type Business struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Owner is the user embedded in receipts and auth responses.
type Owner struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type Receipt struct {
	ID        int64     `json:"id"`
	FilePath  string    `json:"file_path"`
	User      Owner     `json:"user"`
	Business  Business  `json:"business"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupedReceipt holds the receipts of one UTC day, Date is "2006-01-02".
type GroupedReceipt struct {
	Date     string    `json:"date"`
	Receipts []Receipt `json:"receipts"`
}

type Page[T any] struct {
	Cursor  string `json:"cursor"`
	Limit   int    `json:"limit"`
	Results []T    `json:"results"`
}

type Stats struct {
	Receipts   int `json:"receipts"`
	Businesses int `json:"businesses"`
}

// ShareCode is returned with its lifetime in seconds.
type ShareCode struct {
	Code      string `json:"code"`
	ExpiresIn int64  `json:"expires_in"`
}
