package fetchtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// RequestIDHeader is set on every response.
const RequestIDHeader = "X-Request-Id"

// Server is the test API.
type Server struct {
	ts     *httptest.Server
	engine *gin.Engine

	hits atomic.Int64

	mu     sync.Mutex
	books  map[int]Book
	nextID int
	last   Recorded
}

// NewServer starts a server seeded with Seed and SeedAuthor.
func NewServer() *Server {
	s := &Server{
		engine: gin.New(),
		books:  map[int]Book{Seed.ID: Seed},
		nextID: Seed.ID + 1,
	}
	s.engine.Use(gin.Recovery(), s.record, requestID)
	s.routes()
	s.ts = httptest.NewServer(s.engine)
	return s
}

// Engine returns the gin engine for registering extra routes.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// BaseURL returns the server root, e.g. http://127.0.0.1:41234.
func (s *Server) BaseURL() string {
	return s.ts.URL
}

// URL returns the absolute URL of path.
func (s *Server) URL(path string) string {
	return s.ts.URL + path
}

// Client returns an http.Client for the server.
func (s *Server) Client() *http.Client {
	return s.ts.Client()
}

// Hits returns the number of requests received.
func (s *Server) Hits() int64 {
	return s.hits.Load()
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Close shuts the server down.
func (s *Server) Close() {
	s.ts.Close()
}

func (s *Server) record(c *gin.Context) {
	s.hits.Add(1)
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.last = Recorded{
		Method: c.Request.Method,
		Path:   c.Request.URL.RequestURI(),
		Header: c.Request.Header.Clone(),
		Body:   body,
	}
	s.mu.Unlock()
	c.Next()
}

func requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Header(RequestIDHeader, id)
	c.Next()
}

func (s *Server) routes() {
	books := s.engine.Group("/books")
	books.POST("", s.createBook)
	books.GET("/:id", s.getBook)
	books.PUT("/:id", s.updateBook)
	books.PATCH("/:id", s.updateBook)
	books.DELETE("/:id", s.deleteBook)

	s.engine.GET("/authors/:id", func(c *gin.Context) {
		if c.Param("id") != strconv.Itoa(SeedAuthor.ID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
			return
		}
		c.JSON(http.StatusOK, SeedAuthor)
	})

	s.engine.Any("/status/:code", func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("code"))
		if err != nil || code < 100 || code > 599 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status code"})
			return
		}
		if code == http.StatusNoContent || code == http.StatusNotModified {
			c.Status(code)
			return
		}
		c.JSON(code, gin.H{"status": code, "error": http.StatusText(code)})
	})

	s.engine.Any("/empty", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	s.engine.Any("/blank", func(c *gin.Context) {
		c.String(http.StatusOK, " \n")
	})

	s.engine.Any("/malformed", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(`{"id":`))
	})

	s.engine.Any("/echo", echo)

	s.engine.GET("/slow", func(c *gin.Context) {
		delay, err := time.ParseDuration(c.DefaultQuery("delay", "1s"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		select {
		case <-time.After(delay):
			c.JSON(http.StatusOK, gin.H{"delay": delay.String()})
		case <-c.Request.Context().Done():
		}
	})

	s.engine.POST("/upload", receiveUpload)
	s.engine.PUT("/upload", receiveUpload)
	s.engine.PATCH("/upload", receiveUpload)
}

func (s *Server) getBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	book, found := s.books[id]
	s.mu.Unlock()
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) createBook(c *gin.Context) {
	var book Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	book.ID = s.nextID
	s.nextID++
	if book.CreatedAt.IsZero() {
		book.CreatedAt = Seed.CreatedAt
	}
	s.books[book.ID] = book
	s.mu.Unlock()
	c.JSON(http.StatusCreated, book)
}

func (s *Server) updateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	book, found := s.books[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book.ID = id
	updated := book.CreatedAt.Add(24 * time.Hour)
	book.UpdatedAt = &updated
	s.books[id] = book
	c.JSON(http.StatusOK, book)
}

func (s *Server) deleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	_, found := s.books[id]
	delete(s.books, id)
	s.mu.Unlock()
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func bookID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

func echo(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		headers[name] = strings.Join(values, ", ")
	}
	c.JSON(http.StatusOK, Echo{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Query:   c.Request.URL.Query(),
		Headers: headers,
		Body:    string(body),
	})
}

func receiveUpload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := Upload{Method: c.Request.Method, Fields: map[string]string{}}
	for name, values := range form.Value {
		if len(values) > 0 {
			out.Fields[name] = values[0]
		}
	}
	for field, headers := range form.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data, _ := io.ReadAll(f)
			_ = f.Close()
			out.Files = append(out.Files, UploadedFile{
				Field:       field,
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     string(data),
			})
		}
	}
	sort.Slice(out.Files, func(i, j int) bool { return out.Files[i].Field < out.Files[j].Field })
	c.JSON(http.StatusOK, out)
}
