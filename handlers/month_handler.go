package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kareem333j/students-management-system/database"
	"github.com/kareem333j/students-management-system/models"
)

type MonthHandler struct{}

func NewMonthHandler() *MonthHandler { return &MonthHandler{} }

// Order stays raw so a non-integer value gets its own message instead of
// failing the whole bind.
type monthPayload struct {
	Name  *string         `json:"name"`
	Order json.RawMessage `json:"order"`
}

func validateMonth(p *monthPayload, partial bool) (int, map[string]string) {
	errs := map[string]string{}
	order := 0

	if p.Name == nil {
		if !partial {
			errs["name"] = "لازم تكتب اسم الشهر"
		}
	} else if strings.TrimSpace(*p.Name) == "" {
		errs["name"] = "مينفعش تسيب اسم الشهر فاضي"
	}

	if p.Order == nil {
		if !partial {
			errs["order"] = "لازم تكتب ترتيب الشهر في الجدول"
		}
	} else if err := json.Unmarshal(p.Order, &order); err != nil {
		errs["order"] = "لازم تكتب رقم صحيح للترتيب"
	} else if order <= 0 {
		errs["order"] = "الترتيب لازم يكون رقم موجب أكبر من الصفر"
	}

	if len(errs) == 0 {
		return order, nil
	}
	return order, errs
}

// List is always ordered by the month's configured order, ascending.
func (h *MonthHandler) List(c echo.Context) error {
	var months []models.PaymentMonth
	if err := database.DB.Order(`"order" ASC`).Find(&months).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, months)
}

func (h *MonthHandler) Create(c echo.Context) error {
	var p monthPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	order, errs := validateMonth(&p, false)
	if errs != nil {
		return validationError(c, errs)
	}

	m := models.PaymentMonth{Name: strings.TrimSpace(*p.Name), Order: order}
	if err := database.DB.Create(&m).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, m)
}

// Update and Delete exist for completeness but are not registered in the
// route table; single months are managed through create + teardown only.
func (h *MonthHandler) Update(c echo.Context) error {
	var m models.PaymentMonth
	if err := database.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p monthPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	order, errs := validateMonth(&p, true)
	if errs != nil {
		return validationError(c, errs)
	}

	if p.Name != nil {
		m.Name = strings.TrimSpace(*p.Name)
	}
	if p.Order != nil {
		m.Order = order
	}
	if err := database.DB.Save(&m).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MonthHandler) Delete(c echo.Context) error {
	var m models.PaymentMonth
	if err := database.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&m).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
