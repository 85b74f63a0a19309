package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kareem333j/students-management-system/database"
	"github.com/kareem333j/students-management-system/models"
)

type FollowUpHandler struct{}

func NewFollowUpHandler() *FollowUpHandler { return &FollowUpHandler{} }

// followUpResponse carries the student name read-only next to the row.
type followUpResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	IsAbsent  bool      `json:"is_absent"`
	Degree    *float64  `json:"degree"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newFollowUpResponse(f models.DailyFollowUp, studentName string) followUpResponse {
	return followUpResponse{
		ID:        f.ID,
		Name:      studentName,
		Date:      f.Date,
		IsAbsent:  f.IsAbsent,
		Degree:    f.Degree,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// List returns the grade's follow-ups for a date. When the date is today
// it first guarantees a row per student (attendance is marked live, so
// today's roster must be complete); any other date is served as-is.
func (h *FollowUpHandler) List(c echo.Context) error {
	dateStr := strings.TrimSpace(c.QueryParam("date"))
	gradeID := strings.TrimSpace(c.QueryParam("grade"))

	if dateStr == "" || gradeID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "date and grade are required"})
	}
	if _, err := time.Parse(dateLayout, dateStr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Invalid date format"})
	}

	var students []models.Student
	if err := database.DB.Where("grade_id = ?", gradeID).Order("id ASC").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	today := time.Now().Format(dateLayout)
	if dateStr == today {
		return h.listToday(c, students, dateStr)
	}

	// Historical/future views reflect only confirmed rows, no backfill.
	var rows []models.DailyFollowUp
	if err := database.DB.Preload("Student").
		Joins("JOIN students ON students.id = daily_follow_ups.student_id").
		Where("students.grade_id = ? AND daily_follow_ups.date = ?", gradeID, dateStr).
		Order("daily_follow_ups.id ASC").
		Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	out := make([]followUpResponse, 0, len(rows))
	for _, f := range rows {
		out = append(out, newFollowUpResponse(f, f.Student.Name))
	}
	return c.JSON(http.StatusOK, out)
}

// listToday upserts the missing rows in one statement against the
// (student, date) unique index, then reads the full set back. Concurrent
// requests for the same roster land on ON CONFLICT DO NOTHING instead of
// racing a check-then-insert.
func (h *FollowUpHandler) listToday(c echo.Context, students []models.Student, date string) error {
	if len(students) > 0 {
		empty := ""
		fresh := make([]models.DailyFollowUp, 0, len(students))
		for _, s := range students {
			fresh = append(fresh, models.DailyFollowUp{
				StudentID: s.ID,
				Date:      date,
				IsAbsent:  false,
				Degree:    nil,
				Notes:     &empty,
			})
		}
		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoNothing: true,
		}).Create(&fresh).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}
	}

	ids := make([]uint, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	var rows []models.DailyFollowUp
	if len(ids) > 0 {
		if err := database.DB.Where("student_id IN ? AND date = ?", ids, date).Find(&rows).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}
	}

	byStudent := make(map[uint]models.DailyFollowUp, len(rows))
	for _, f := range rows {
		byStudent[f.StudentID] = f
	}

	// One row per student, in student order.
	out := make([]followUpResponse, 0, len(students))
	for _, s := range students {
		if f, ok := byStudent[s.ID]; ok {
			out = append(out, newFollowUpResponse(f, s.Name))
		}
	}
	return c.JSON(http.StatusOK, out)
}

type followUpPatch struct {
	ID       uint     `json:"id"`
	Date     *string  `json:"date"`
	IsAbsent *bool    `json:"is_absent"`
	Degree   *float64 `json:"degree"`
	Notes    *string  `json:"notes"`
}

// BatchUpdate applies partial updates independently. Unknown ids are
// skipped without error; an invalid field on a present item fails the
// whole request.
func (h *FollowUpHandler) BatchUpdate(c echo.Context) error {
	var items []followUpPatch
	if err := c.Bind(&items); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Expected a list of followups"})
	}

	updated := make([]followUpResponse, 0, len(items))
	for _, item := range items {
		var f models.DailyFollowUp
		if err := database.DB.Preload("Student").First(&f, "id = ?", item.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}

		if item.Date != nil {
			if _, err := time.Parse(dateLayout, *item.Date); err != nil {
				return validationError(c, map[string]string{"date": "Invalid date format"})
			}
			f.Date = *item.Date
		}
		if item.IsAbsent != nil {
			f.IsAbsent = *item.IsAbsent
		}
		if item.Degree != nil {
			f.Degree = item.Degree
		}
		if item.Notes != nil {
			f.Notes = item.Notes
		}

		if err := database.DB.Omit(clause.Associations).Save(&f).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		updated = append(updated, newFollowUpResponse(f, f.Student.Name))
	}
	return c.JSON(http.StatusOK, updated)
}
