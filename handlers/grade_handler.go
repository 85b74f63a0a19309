package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kareem333j/students-management-system/database"
	"github.com/kareem333j/students-management-system/models"
)

type GradeHandler struct{}

func NewGradeHandler() *GradeHandler { return &GradeHandler{} }

type gradePayload struct {
	Level       *string `json:"level"`
	Description *string `json:"description"`
}

// partial is true for PATCH: absent fields keep their current value.
func validateGrade(p *gradePayload, partial bool) map[string]string {
	errs := map[string]string{}

	if p.Level == nil {
		if !partial {
			errs["level"] = "لازم تكتب اسم الصف"
		}
	} else if strings.TrimSpace(*p.Level) == "" {
		errs["level"] = "مينفعش تسيب اسم الصف فاضي"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (h *GradeHandler) List(c echo.Context) error {
	var grades []models.Grade
	if err := database.DB.Find(&grades).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, grades)
}

func (h *GradeHandler) Create(c echo.Context) error {
	var p gradePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if errs := validateGrade(&p, false); errs != nil {
		return validationError(c, errs)
	}

	g := models.Grade{Level: strings.TrimSpace(*p.Level), Description: trimPtr(p.Description)}
	if err := database.DB.Create(&g).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, g)
}

func (h *GradeHandler) Get(c echo.Context) error {
	var g models.Grade
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GradeHandler) Update(c echo.Context) error { return h.update(c, false) }
func (h *GradeHandler) Patch(c echo.Context) error  { return h.update(c, true) }

func (h *GradeHandler) update(c echo.Context, partial bool) error {
	var g models.Grade
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p gradePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if errs := validateGrade(&p, partial); errs != nil {
		return validationError(c, errs)
	}

	if p.Level != nil {
		g.Level = strings.TrimSpace(*p.Level)
	}
	if p.Description != nil {
		g.Description = trimPtr(p.Description)
	}
	if err := database.DB.Save(&g).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, g)
}

// Delete removes the grade; students and their follow-ups, payments and
// quizzes go with it through the FK cascade.
func (h *GradeHandler) Delete(c echo.Context) error {
	var g models.Grade
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&g).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
