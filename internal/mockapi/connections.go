package mockapi

import (
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"nebula/internal/models"
)

type createConnectionInput struct {
	RecipientID string `json:"recipientId"`
	Message     string `json:"message"`
}

func (in createConnectionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.RecipientID, validation.Required),
		validation.Field(&in.Message, validation.Length(0, 1000)),
	)
}

// expand fills in the requester/recipient business snapshots so list
// consumers can render names without extra lookups. Caller holds the lock.
func (s *Server) expand(conn models.Connection) models.Connection {
	if b, exists := s.data.businesses[conn.RequesterID]; exists {
		req := *b
		conn.Requester = &req
	}
	if b, exists := s.data.businesses[conn.RecipientID]; exists {
		rec := *b
		conn.Recipient = &rec
	}
	return conn
}

func (s *Server) listConnections(c *gin.Context) {
	page, limit := parsePage(c)

	s.data.mu.RLock()
	matched := make([]models.Connection, 0, len(s.data.connections))
	for _, conn := range s.data.connections {
		if conn.Status != models.ConnectionAccepted {
			continue
		}
		if conn.RequesterID != demoBusinessID && conn.RecipientID != demoBusinessID {
			continue
		}
		matched = append(matched, s.expand(*conn))
	}
	s.data.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt > matched[j].CreatedAt })
	pageItems, pagination := paginate(matched, page, limit)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": pageItems, "pagination": pagination})
}

func (s *Server) listConnectionRequests(c *gin.Context) {
	page, limit := parsePage(c)

	s.data.mu.RLock()
	matched := make([]models.Connection, 0, len(s.data.connections))
	for _, conn := range s.data.connections {
		if conn.Status != models.ConnectionPending || conn.RecipientID != demoBusinessID {
			continue
		}
		matched = append(matched, s.expand(*conn))
	}
	s.data.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt > matched[j].CreatedAt })
	pageItems, pagination := paginate(matched, page, limit)
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": pageItems, "pagination": pagination})
}

func (s *Server) createConnection(c *gin.Context) {
	var in createConnectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.data.mu.Lock()
	if _, exists := s.data.businesses[in.RecipientID]; !exists {
		s.data.mu.Unlock()
		fail(c, http.StatusNotFound, "recipient business not found")
		return
	}
	conn := &models.Connection{
		ID:          newID("c"),
		Status:      models.ConnectionPending,
		RequesterID: demoBusinessID,
		RecipientID: in.RecipientID,
		Message:     in.Message,
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
	s.data.connections[conn.ID] = conn
	out := s.expand(*conn)
	s.data.mu.Unlock()

	ok(c, http.StatusCreated, out)
}

func (s *Server) acceptConnection(c *gin.Context) {
	s.transitionConnection(c, models.ConnectionAccepted)
}

func (s *Server) rejectConnection(c *gin.Context) {
	s.transitionConnection(c, models.ConnectionRejected)
}

// transitionConnection enforces the write-once lifecycle: only PENDING
// connections can move, and only to a terminal state.
func (s *Server) transitionConnection(c *gin.Context, target models.ConnectionStatus) {
	id := c.Param("id")

	s.data.mu.Lock()
	conn, exists := s.data.connections[id]
	if !exists {
		s.data.mu.Unlock()
		fail(c, http.StatusNotFound, "connection not found")
		return
	}
	if conn.Status != models.ConnectionPending {
		s.data.mu.Unlock()
		fail(c, http.StatusConflict, "connection is not pending")
		return
	}
	conn.Status = target
	conn.UpdatedAt = now()
	out := s.expand(*conn)
	s.data.mu.Unlock()

	ok(c, http.StatusOK, out)
}

func (s *Server) deleteConnection(c *gin.Context) {
	id := c.Param("id")

	s.data.mu.Lock()
	_, exists := s.data.connections[id]
	delete(s.data.connections, id)
	s.data.mu.Unlock()

	if !exists {
		fail(c, http.StatusNotFound, "connection not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "connection removed"})
}
