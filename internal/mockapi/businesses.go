package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"nebula/internal/models"
)

func parsePage(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func paginate[T any](items []T, page, limit int) ([]T, models.Pagination) {
	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: models.TotalPages(total, limit),
	}
}

func (s *Server) listBusinesses(c *gin.Context) {
	query := strings.ToLower(c.Query("query"))
	industry := c.Query("industry")
	country := c.Query("country")
	city := c.Query("city")
	size := c.Query("size")
	minTrust, _ := strconv.Atoi(c.DefaultQuery("minTrustScore", "0"))
	sortBy := c.DefaultQuery("sortBy", "name")
	sortOrder := c.DefaultQuery("sortOrder", "asc")
	page, limit := parsePage(c)

	s.data.mu.RLock()
	matched := make([]models.Business, 0, len(s.data.order))
	for _, id := range s.data.order {
		b := s.data.businesses[id]
		if query != "" &&
			!strings.Contains(strings.ToLower(b.Name), query) &&
			!strings.Contains(strings.ToLower(b.Description), query) {
			continue
		}
		if industry != "" && b.Industry != industry {
			continue
		}
		if country != "" && b.Country != country {
			continue
		}
		if city != "" && b.City != city {
			continue
		}
		if size != "" && b.Size != size {
			continue
		}
		if b.TrustScore < minTrust {
			continue
		}
		matched = append(matched, *b)
	}
	s.data.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "trustScore":
			less = matched[i].TrustScore < matched[j].TrustScore
		case "createdAt":
			less = matched[i].CreatedAt < matched[j].CreatedAt
		default:
			less = matched[i].Name < matched[j].Name
		}
		if sortOrder == "desc" {
			return !less
		}
		return less
	})

	pageItems, pagination := paginate(matched, page, limit)
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"data":       pageItems,
		"pagination": pagination,
	})
}

func (s *Server) getBusiness(c *gin.Context) {
	id := c.Param("id")
	s.data.mu.RLock()
	b, exists := s.data.businesses[id]
	var out models.Business
	if exists {
		out = *b
	}
	s.data.mu.RUnlock()
	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) getOwnBusiness(c *gin.Context) {
	s.data.mu.RLock()
	b, exists := s.data.businesses[demoBusinessID]
	var out models.Business
	if exists {
		out = *b
	}
	s.data.mu.RUnlock()
	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) createBusiness(c *gin.Context) {
	var in models.BusinessUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name == nil || *in.Name == "" {
		fail(c, http.StatusBadRequest, "name is required")
		return
	}

	b := &models.Business{
		ID:                 newID("b"),
		TrustScore:         50,
		VerificationStatus: models.VerificationPending,
		CreatedAt:          now(),
		UpdatedAt:          now(),
	}
	applyUpdate(b, in)

	s.data.mu.Lock()
	s.data.businesses[b.ID] = b
	s.data.order = append(s.data.order, b.ID)
	out := *b
	s.data.mu.Unlock()

	ok(c, http.StatusCreated, out)
}

func (s *Server) updateBusiness(c *gin.Context) {
	id := c.Param("id")
	var in models.BusinessUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s.data.mu.Lock()
	b, exists := s.data.businesses[id]
	var out models.Business
	if exists {
		applyUpdate(b, in)
		b.UpdatedAt = now()
		out = *b
	}
	s.data.mu.Unlock()
	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	ok(c, http.StatusOK, out)
}

// applyUpdate merges only the provided fields; trust score and
// verification status stay server-owned.
func applyUpdate(b *models.Business, in models.BusinessUpdate) {
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Industry != nil {
		b.Industry = *in.Industry
	}
	if in.Size != nil {
		b.Size = *in.Size
	}
	if in.Country != nil {
		b.Country = *in.Country
	}
	if in.City != nil {
		b.City = *in.City
	}
	if in.Website != nil {
		b.Website = *in.Website
	}
	if in.Email != nil {
		b.Email = *in.Email
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	if in.Founded != nil {
		b.Founded = *in.Founded
	}
	if in.Services != nil {
		b.Services = append([]string(nil), (*in.Services)...)
	}
	if in.Certifications != nil {
		b.Certifications = append([]string(nil), (*in.Certifications)...)
	}
	if in.Address != nil {
		addr := *in.Address
		b.Address = &addr
	}
	if in.SocialMedia != nil {
		sm := *in.SocialMedia
		b.SocialMedia = &sm
	}
}

func (s *Server) deleteBusiness(c *gin.Context) {
	id := c.Param("id")
	s.data.mu.Lock()
	_, exists := s.data.businesses[id]
	if exists {
		delete(s.data.businesses, id)
		for i, oid := range s.data.order {
			if oid == id {
				s.data.order = append(s.data.order[:i], s.data.order[i+1:]...)
				break
			}
		}
	}
	s.data.mu.Unlock()
	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "business deleted"})
}

func (s *Server) uploadLogo(c *gin.Context) {
	id := c.Param("id")
	file, err := c.FormFile("logo")
	if err != nil {
		fail(c, http.StatusBadRequest, "logo file is required")
		return
	}

	logoURL := "/uploads/logos/" + newID("logo") + "-" + file.Filename

	s.data.mu.Lock()
	b, exists := s.data.businesses[id]
	if exists {
		b.Logo = logoURL
		b.UpdatedAt = now()
	}
	s.data.mu.Unlock()
	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	ok(c, http.StatusOK, gin.H{"logo": logoURL})
}

func (s *Server) addService(c *gin.Context) {
	s.addListValue(c, "service", func(b *models.Business, v string) {
		b.Services = append(b.Services, v)
	})
}

func (s *Server) removeService(c *gin.Context) {
	s.removeListValue(c, func(b *models.Business, v string) {
		b.Services = removeValue(b.Services, v)
	})
}

func (s *Server) addCertification(c *gin.Context) {
	s.addListValue(c, "certification", func(b *models.Business, v string) {
		b.Certifications = append(b.Certifications, v)
	})
}

func (s *Server) removeCertification(c *gin.Context) {
	s.removeListValue(c, func(b *models.Business, v string) {
		b.Certifications = removeValue(b.Certifications, v)
	})
}

func (s *Server) addListValue(c *gin.Context, field string, apply func(*models.Business, string)) {
	id := c.Param("id")
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil || body[field] == "" {
		fail(c, http.StatusBadRequest, field+" is required")
		return
	}

	s.data.mu.Lock()
	b, exists := s.data.businesses[id]
	var out models.Business
	if exists {
		apply(b, body[field])
		b.UpdatedAt = now()
		out = *b
	}
	s.data.mu.Unlock()
	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) removeListValue(c *gin.Context, apply func(*models.Business, string)) {
	id := c.Param("id")
	value := c.Param("value")

	s.data.mu.Lock()
	b, exists := s.data.businesses[id]
	var out models.Business
	if exists {
		apply(b, value)
		b.UpdatedAt = now()
		out = *b
	}
	s.data.mu.Unlock()
	if !exists {
		fail(c, http.StatusNotFound, "business not found")
		return
	}
	ok(c, http.StatusOK, out)
}

func removeValue(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		if e != v {
			out = append(out, e)
		}
	}
	return out
}
