package fetchtest

import "time"

// Book is the books resource.
type Book struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Author is the authors resource. Its shape deliberately differs from Book.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Echo describes the request the echo endpoint received.
type Echo struct {
	Method  string              `json:"method"`
	Path    string              `json:"path"`
	Query   map[string][]string `json:"query"`
	Headers map[string]string   `json:"headers"`
	Body    string              `json:"body"`
}

// UploadedFile is one file part received by the upload endpoint.
type UploadedFile struct {
	Field       string `json:"field"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Upload describes a multipart request received by the upload endpoint.
type Upload struct {
	Method string            `json:"method"`
	Fields map[string]string `json:"fields"`
	Files  []UploadedFile    `json:"files"`
}

// Recorded is a request as seen by the server.
type Recorded struct {
	Method string
	Path   string
	Header map[string][]string
	Body   []byte
}

// Seed is the book stored under id 1.
var Seed = Book{
	ID:        1,
	Title:     "The Warded Man",
	Author:    "Peter V. Brett",
	CreatedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
}

// SeedAuthor is the author stored under id 1.
var SeedAuthor = Author{ID: 1, Name: "Peter V. Brett"}
