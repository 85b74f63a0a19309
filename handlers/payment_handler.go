package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kareem333j/students-management-system/database"
	"github.com/kareem333j/students-management-system/models"
)

type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler { return &PaymentHandler{} }

type paymentCell struct {
	MonthID   uint   `json:"month_id"`
	MonthName string `json:"month_name"`
	IsPaid    bool   `json:"is_paid"`
	PaymentID uint   `json:"payment_id"`
}

type studentPaymentsRow struct {
	ID       uint          `json:"id"`
	Name     string        `json:"name"`
	Payments []paymentCell `json:"payments"`
}

type paymentKey struct {
	studentID uint
	monthID   uint
}

// Matrix returns one entry per student in the grade with a cell for every
// payment month, creating the missing (student, month) rows unpaid. The
// backfill is a single ON CONFLICT DO NOTHING insert against the unique
// pair index, so repeated and concurrent requests stay idempotent.
func (h *PaymentHandler) Matrix(c echo.Context) error {
	gradeID := strings.TrimSpace(c.QueryParam("grade"))
	if gradeID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "grade_id مطلوب"})
	}

	var students []models.Student
	if err := database.DB.Where("grade_id = ?", gradeID).Order("id ASC").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var months []models.PaymentMonth
	if err := database.DB.Order(`"order" ASC`).Find(&months).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	if len(students) > 0 && len(months) > 0 {
		fresh := make([]models.MonthlyPayment, 0, len(students)*len(months))
		for _, s := range students {
			for _, m := range months {
				fresh = append(fresh, models.MonthlyPayment{StudentID: s.ID, MonthID: m.ID, IsPaid: false})
			}
		}
		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "month_id"}},
			DoNothing: true,
		}).Create(&fresh).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}
	}

	byPair := map[paymentKey]models.MonthlyPayment{}
	if len(students) > 0 {
		ids := make([]uint, 0, len(students))
		for _, s := range students {
			ids = append(ids, s.ID)
		}
		var rows []models.MonthlyPayment
		if err := database.DB.Where("student_id IN ?", ids).Find(&rows).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}
		for _, p := range rows {
			byPair[paymentKey{p.StudentID, p.MonthID}] = p
		}
	}

	results := make([]studentPaymentsRow, 0, len(students))
	for _, s := range students {
		row := studentPaymentsRow{ID: s.ID, Name: s.Name, Payments: make([]paymentCell, 0, len(months))}
		for _, m := range months {
			p := byPair[paymentKey{s.ID, m.ID}]
			row.Payments = append(row.Payments, paymentCell{
				MonthID:   m.ID,
				MonthName: m.Name,
				IsPaid:    p.IsPaid,
				PaymentID: p.ID,
			})
		}
		results = append(results, row)
	}
	return c.JSON(http.StatusOK, results)
}

type paymentPatchCell struct {
	PaymentID uint  `json:"payment_id"`
	IsPaid    *bool `json:"is_paid"`
}

type paymentPatchRow struct {
	Payments []paymentPatchCell `json:"payments"`
}

// BatchUpdate walks the same nested per-student shape the matrix returns
// and flips is_paid per payment id. Unknown ids are skipped silently.
func (h *PaymentHandler) BatchUpdate(c echo.Context) error {
	var rows []paymentPatchRow
	if err := c.Bind(&rows); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}

	for _, row := range rows {
		for _, cell := range row.Payments {
			if cell.IsPaid == nil {
				continue
			}
			var p models.MonthlyPayment
			if err := database.DB.First(&p, "id = ?", cell.PaymentID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					continue
				}
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
			}
			p.IsPaid = *cell.IsPaid
			if err := database.DB.Save(&p).Error; err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "تم تحديث الدفعات"})
}
