package mockapi

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"nebula/internal/models"
)

func (s *Server) listNotifications(c *gin.Context) {
	unreadOnly := c.Query("unreadOnly") == "true"
	page, limit := parsePage(c)

	s.data.mu.RLock()
	all := make([]models.Notification, 0, len(s.data.notifications))
	unread := 0
	for _, n := range s.data.notifications {
		if n.UserID != demoUserID {
			continue
		}
		if !n.Read {
			unread++
		}
		if unreadOnly && n.Read {
			continue
		}
		all = append(all, *n)
	}
	s.data.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt > all[j].CreatedAt })
	pageItems, pagination := paginate(all, page, limit)
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"data":        pageItems,
		"unreadCount": unread,
		"pagination":  pagination,
	})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	id := c.Param("id")

	s.data.mu.Lock()
	n, exists := s.data.notifications[id]
	var out models.Notification
	if exists {
		if !n.Read {
			n.Read = true
			n.UpdatedAt = now()
		}
		out = *n
	}
	s.data.mu.Unlock()

	if !exists {
		fail(c, http.StatusNotFound, "notification not found")
		return
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) markAllNotificationsRead(c *gin.Context) {
	s.data.mu.Lock()
	updated := 0
	for _, n := range s.data.notifications {
		if n.UserID == demoUserID && !n.Read {
			n.Read = true
			n.UpdatedAt = now()
			updated++
		}
	}
	s.data.mu.Unlock()

	ok(c, http.StatusOK, gin.H{"updated": updated})
}
