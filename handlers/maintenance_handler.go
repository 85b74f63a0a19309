package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kareem333j/students-management-system/database"
	"github.com/kareem333j/students-management-system/models"
)

type MaintenanceHandler struct{}

func NewMaintenanceHandler() *MaintenanceHandler { return &MaintenanceHandler{} }

// DeleteAll wipes follow-ups, payments, quizzes and payment months while
// keeping grades and students. Irreversible, no confirmation step.
func (h *MaintenanceHandler) DeleteAll(c echo.Context) error {
	tx := database.DB.Session(&gorm.Session{AllowGlobalUpdate: true})

	for _, model := range []any{
		&models.DailyFollowUp{},
		&models.MonthlyPayment{},
		&models.Quiz{},
		&models.PaymentMonth{},
	} {
		if err := tx.Delete(model).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"detail": "All data deleted except Grades and Students.",
	})
}
