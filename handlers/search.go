// File: medibook/handlers/search.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"medibook/models"
	"medibook/search"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultSearchPageSize = 20

// SearchDoctorsHandler handles GET /api/doctors/search. It only translates
// query parameters into engine criteria; matching semantics live entirely in
// the search package.
func (h *DoctorHandler) SearchDoctorsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	criteria := search.Criteria{
		Name:           c.Query("name"),
		Specialization: c.Query("specialization"),
		Location:       c.Query("location"),
	}

	if raw := c.Query("minExperience"); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minExperience must be an integer"})
			return
		}
		criteria.MinExperience = &years
	}
	if raw := c.Query("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minRating must be a number"})
			return
		}
		criteria.MinRating = &rating
	}

	window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	criteria.Availability = window

	page := search.Page{Page: 0, PageSize: defaultSearchPageSize}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
			return
		}
		page.Page = n
	}
	if raw := c.Query("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be an integer"})
			return
		}
		page.PageSize = n
	}

	result, err := h.Service.Search(c.Request.Context(), criteria, page)
	if err != nil {
		if search.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Doctor search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// windowFromQuery assembles the availability filter from the day, windowStart
// and windowEnd parameters. The three travel together; a partial set is an
// error. Times accept either raw minutes ("540") or an HH:MM label ("09:00").
func windowFromQuery(c *gin.Context) (*models.AvailabilityWindow, error) {
	day := c.Query("day")
	start := c.Query("windowStart")
	end := c.Query("windowEnd")

	if day == "" && start == "" && end == "" {
		return nil, nil
	}
	if day == "" || start == "" || end == "" {
		return nil, fmt.Errorf("day, windowStart and windowEnd must be provided together")
	}

	weekday, err := models.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	startMin, err := utils.ClockToMinutes(start)
	if err != nil {
		return nil, fmt.Errorf("invalid windowStart: %w", err)
	}
	endMin, err := utils.ClockToMinutes(end)
	if err != nil {
		return nil, fmt.Errorf("invalid windowEnd: %w", err)
	}

	return &models.AvailabilityWindow{Day: weekday, Start: startMin, End: endMin}, nil
}
