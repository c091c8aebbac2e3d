package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendease/internal/attendance"
	"attendease/internal/session"
)

// attendanceStore is the store surface the handlers need.
type attendanceStore interface {
	MarkAttendance(userID int, status attendance.Status, date string) (attendance.Record, error)
	PunchIn(userID int) attendance.Record
	PunchOut(userID int) (attendance.Record, error)
	ByDate(date string) []attendance.Record
	ByUser(userID int) []attendance.Record
	All() []attendance.Record
	Today() string
}

// PunchIn records the caller's start-of-day.
func (h *Handler) PunchIn(c *gin.Context) {
	claims, _ := session.ClaimsFrom(c)
	rec := h.store.PunchIn(claims.UserID)
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// PunchOut records the caller's end-of-day. Without a prior punch-in the
// action is refused.
func (h *Handler) PunchOut(c *gin.Context) {
	claims, _ := session.ClaimsFrom(c)
	rec, err := h.store.PunchOut(claims.UserID)
	if err != nil {
		if errors.Is(err, attendance.ErrNotPunchedIn) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "punch out failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// MyAttendance returns the caller's full history.
func (h *Handler) MyAttendance(c *gin.Context) {
	claims, _ := session.ClaimsFrom(c)
	records := h.store.ByUser(claims.UserID)
	c.JSON(http.StatusOK, gin.H{"records": records})
}

type markRequest struct {
	UserID int    `json:"user_id"`
	Status string `json:"status" binding:"required"`
	Date   string `json:"date"` // 2006-01-02, empty means today
}

// Mark lets an administrator set a user's status for a day.
func (h *Handler) Mark(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.dir.ByID(req.UserID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
		return
	}
	if req.Date != "" {
		if _, err := parseDate(req.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be yyyy-MM-dd"})
			return
		}
	}

	rec, err := h.store.MarkAttendance(req.UserID, attendance.Status(req.Status), req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": rec})
}

// ByDate lists every record for one day (today when unspecified).
func (h *Handler) ByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.store.Today()
	} else if _, err := parseDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be yyyy-MM-dd"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "records": h.store.ByDate(date)})
}

// Employees lists the staff roster.
func (h *Handler) Employees(c *gin.Context) {
	staff := h.dir.Staff()
	out := make([]interface{}, 0, len(staff))
	for i := range staff {
		out = append(out, publicUser(&staff[i]))
	}
	c.JSON(http.StatusOK, gin.H{"employees": out})
}

// EmployeeAttendance returns one employee's history.
func (h *Handler) EmployeeAttendance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}
	user := h.dir.ByID(id)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": publicUser(user), "records": h.store.ByUser(id)})
}
