package mockapi

import (
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"nebula/internal/models"
)

func (s *Server) listMedia(c *gin.Context) {
	businessID := c.Param("id")

	s.data.mu.RLock()
	_, exists := s.data.businesses[businessID]
	items := make([]models.MediaItem, 0)
	for _, m := range s.data.media {
		if m.BusinessID == businessID {
			items = append(items, *m)
		}
	}
	s.data.mu.RUnlock()

	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt < items[j].CreatedAt })
	ok(c, http.StatusOK, items)
}

func (s *Server) listDocuments(c *gin.Context) {
	businessID := c.Param("id")

	s.data.mu.RLock()
	_, exists := s.data.businesses[businessID]
	items := make([]models.DocumentItem, 0)
	for _, d := range s.data.documents {
		if d.BusinessID == businessID {
			items = append(items, *d)
		}
	}
	s.data.mu.RUnlock()

	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt < items[j].CreatedAt })
	ok(c, http.StatusOK, items)
}

func (s *Server) uploadMedia(c *gin.Context) {
	businessID := c.Param("id")
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file is required")
		return
	}
	title := c.PostForm("title")
	if title == "" {
		title = file.Filename
	}

	item := &models.MediaItem{
		ID:          newID("m"),
		BusinessID:  businessID,
		Title:       title,
		Description: c.PostForm("description"),
		Type:        mediaType(file.Filename),
		FileSize:    file.Size,
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
	item.URL = "/uploads/media/" + item.ID + filepath.Ext(file.Filename)

	s.data.mu.Lock()
	_, exists := s.data.businesses[businessID]
	if exists {
		s.data.media[item.ID] = item
	}
	out := *item
	s.data.mu.Unlock()

	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	ok(c, http.StatusCreated, out)
}

func (s *Server) uploadDocument(c *gin.Context) {
	businessID := c.Param("id")
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file is required")
		return
	}
	title := c.PostForm("title")
	if title == "" {
		title = file.Filename
	}

	item := &models.DocumentItem{
		ID:          newID("d"),
		BusinessID:  businessID,
		Title:       title,
		Description: c.PostForm("description"),
		FileType:    strings.TrimPrefix(filepath.Ext(file.Filename), "."),
		FileSize:    file.Size,
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
	item.URL = "/uploads/documents/" + item.ID + filepath.Ext(file.Filename)

	s.data.mu.Lock()
	_, exists := s.data.businesses[businessID]
	if exists {
		s.data.documents[item.ID] = item
	}
	out := *item
	s.data.mu.Unlock()

	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	ok(c, http.StatusCreated, out)
}

func (s *Server) deleteMedia(c *gin.Context) {
	mediaID := c.Param("mediaId")

	s.data.mu.Lock()
	_, exists := s.data.media[mediaID]
	delete(s.data.media, mediaID)
	s.data.mu.Unlock()

	if !exists {
		fail(c, http.StatusNotFound, "media not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "media deleted"})
}

func (s *Server) deleteDocument(c *gin.Context) {
	documentID := c.Param("mediaId")

	s.data.mu.Lock()
	_, exists := s.data.documents[documentID]
	delete(s.data.documents, documentID)
	s.data.mu.Unlock()

	if !exists {
		fail(c, http.StatusNotFound, "document not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "document deleted"})
}

func mediaType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".webm":
		return "video"
	default:
		return "image"
	}
}
