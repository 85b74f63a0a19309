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

type QuizHandler struct{}

func NewQuizHandler() *QuizHandler { return &QuizHandler{} }

type quizResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	Student   string    `json:"student"`
	MonthID   uint      `json:"month_id"`
	MonthName string    `json:"month_name"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newQuizResponse(q models.Quiz, studentName, monthName string) quizResponse {
	return quizResponse{
		ID:        q.ID,
		StudentID: q.StudentID,
		Student:   studentName,
		MonthID:   q.MonthID,
		MonthName: monthName,
		Notes:     q.Notes,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// List returns the flat quiz list for every (student, month) pair in the
// grade, creating missing rows with empty notes. The quizzes table has no
// unique pair constraint, so this stays find-then-create.
func (h *QuizHandler) List(c echo.Context) error {
	gradeID := strings.TrimSpace(c.QueryParam("grade"))
	if gradeID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "grade مطلوب"})
	}

	var students []models.Student
	if err := database.DB.Where("grade_id = ?", gradeID).Order("id ASC").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var months []models.PaymentMonth
	if err := database.DB.Order(`"order" ASC`).Find(&months).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	out := make([]quizResponse, 0, len(students)*len(months))
	for _, s := range students {
		for _, m := range months {
			var q models.Quiz
			err := database.DB.Where("student_id = ? AND month_id = ?", s.ID, m.ID).First(&q).Error
			if err == gorm.ErrRecordNotFound {
				q = models.Quiz{StudentID: s.ID, MonthID: m.ID, Notes: nil}
				if err := database.DB.Create(&q).Error; err != nil {
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
				}
			} else if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
			}
			out = append(out, newQuizResponse(q, s.Name, m.Name))
		}
	}
	return c.JSON(http.StatusOK, out)
}

type quizPatch struct {
	ID    uint    `json:"id"`
	Notes *string `json:"notes"`
}

// BatchUpdate applies note edits by id. Items with a missing/zero id and
// unknown ids are skipped silently.
func (h *QuizHandler) BatchUpdate(c echo.Context) error {
	var items []quizPatch
	if err := c.Bind(&items); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "لازم تبعت ليست من الكويزات"})
	}

	updated := make([]quizResponse, 0, len(items))
	for _, item := range items {
		if item.ID == 0 {
			continue
		}
		var q models.Quiz
		if err := database.DB.Preload("Student").Preload("Month").First(&q, "id = ?", item.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}

		if item.Notes != nil {
			q.Notes = item.Notes
		}
		if err := database.DB.Omit(clause.Associations).Save(&q).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		updated = append(updated, newQuizResponse(q, q.Student.Name, q.Month.Name))
	}
	return c.JSON(http.StatusOK, updated)
}
