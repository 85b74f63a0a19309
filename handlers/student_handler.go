package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kareem333j/students-management-system/database"
	"github.com/kareem333j/students-management-system/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	Name            *string `json:"name"`
	Grade           *uint   `json:"grade"`
	ContactPhone    *string `json:"contact_phone"`
	AdditionalPhone *string `json:"additional_phone"`
	InitialLevel    *string `json:"initial_level"`
	Notes           *string `json:"notes"`
}

func (p *studentPayload) normalize() {
	p.Name = trimPtr(p.Name)
	p.ContactPhone = trimPtr(p.ContactPhone)
	p.AdditionalPhone = trimPtr(p.AdditionalPhone)
}

// validateStudent checks the payload against the DB: the name must be
// unique across all students (excluding excludeID on update) and the grade
// must exist. partial relaxes the required checks for PATCH.
func validateStudent(p *studentPayload, partial bool, excludeID uint) map[string]string {
	errs := map[string]string{}

	switch {
	case p.Name == nil:
		if !partial {
			errs["name"] = "لازم تكتب اسم الطالب"
		}
	case *p.Name == "":
		errs["name"] = "مينفعش تسيب اسم الطالب فاضي"
	default:
		tx := database.DB.Model(&models.Student{}).Where("name = ?", *p.Name)
		if excludeID != 0 {
			tx = tx.Where("id <> ?", excludeID)
		}
		var n int64
		if err := tx.Count(&n).Error; err == nil && n > 0 {
			errs["name"] = "فيه طالب بنفس الاسم مسجل قبل كده"
		}
	}

	if p.Grade == nil {
		if !partial {
			errs["grade"] = "لازم تختار الصف الدراسي للطالب"
		}
	} else {
		var n int64
		if err := database.DB.Model(&models.Grade{}).Where("id = ?", *p.Grade).Count(&n).Error; err != nil || n == 0 {
			errs["grade"] = "الصف الدراسي مش موجود"
		}
	}

	switch {
	case p.ContactPhone == nil:
		if !partial {
			errs["contact_phone"] = "لازم تكتب رقم هاتف للتواصل"
		}
	case !isDigits(*p.ContactPhone) || len(*p.ContactPhone) != 11:
		errs["contact_phone"] = "رقم الهاتف لازم يكون مكون من 11 رقم"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// studentResponse embeds the full grade object in place of the bare id.
type studentResponse struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	Grade           models.Grade `json:"grade"`
	ContactPhone    string       `json:"contact_phone"`
	AdditionalPhone *string      `json:"additional_phone"`
	InitialLevel    *string      `json:"initial_level"`
	Notes           *string      `json:"notes"`
	CreatedAt       time.Time    `json:"created_at"`
}

func newStudentResponse(s models.Student) studentResponse {
	return studentResponse{
		ID:              s.ID,
		Name:            s.Name,
		Grade:           s.Grade,
		ContactPhone:    s.ContactPhone,
		AdditionalPhone: s.AdditionalPhone,
		InitialLevel:    s.InitialLevel,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
	}
}

func newStudentResponses(students []models.Student) []studentResponse {
	out := make([]studentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, newStudentResponse(s))
	}
	return out
}

func (h *StudentHandler) List(c echo.Context) error {
	var students []models.Student
	if err := database.DB.Preload("Grade").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, newStudentResponses(students))
}

func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p, false, 0); errs != nil {
		return validationError(c, errs)
	}

	s := models.Student{
		Name:            *p.Name,
		GradeID:         *p.Grade,
		ContactPhone:    *p.ContactPhone,
		AdditionalPhone: p.AdditionalPhone,
		InitialLevel:    p.InitialLevel,
		Notes:           p.Notes,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	database.DB.First(&s.Grade, s.GradeID)
	return c.JSON(http.StatusCreated, newStudentResponse(s))
}

func (h *StudentHandler) Get(c echo.Context) error {
	var s models.Student
	if err := database.DB.Preload("Grade").First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, newStudentResponse(s))
}

func (h *StudentHandler) Update(c echo.Context) error { return h.update(c, false) }
func (h *StudentHandler) Patch(c echo.Context) error  { return h.update(c, true) }

func (h *StudentHandler) update(c echo.Context, partial bool) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p, partial, s.ID); errs != nil {
		return validationError(c, errs)
	}

	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Grade != nil {
		s.GradeID = *p.Grade
	}
	if p.ContactPhone != nil {
		s.ContactPhone = *p.ContactPhone
	}
	if p.AdditionalPhone != nil {
		s.AdditionalPhone = p.AdditionalPhone
	}
	if p.InitialLevel != nil {
		s.InitialLevel = p.InitialLevel
	}
	if p.Notes != nil {
		s.Notes = p.Notes
	}
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	database.DB.First(&s.Grade, s.GradeID)
	return c.JSON(http.StatusOK, newStudentResponse(s))
}

func (h *StudentHandler) Delete(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Delete(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkDelete removes every student whose id is in the body list and
// reports the number actually deleted.
func (h *StudentHandler) BulkDelete(c echo.Context) error {
	var body struct {
		IDs []uint `json:"ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if len(body.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "No IDs provided."})
	}

	res := database.DB.Where("id IN ?", body.IDs).Delete(&models.Student{})
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": res.Error.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"detail": fmt.Sprintf("Deleted %d students.", res.RowsAffected),
	})
}

// Search matches the value as a case-insensitive substring of the name or
// the contact phone.
func (h *StudentHandler) Search(c echo.Context) error {
	value := strings.TrimSpace(c.Param("value"))
	like := "%" + strings.ToLower(value) + "%"

	var students []models.Student
	if err := database.DB.Preload("Grade").
		Where("LOWER(name) LIKE ? OR LOWER(contact_phone) LIKE ?", like, like).
		Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, newStudentResponses(students))
}

func (h *StudentHandler) ByGrade(c echo.Context) error {
	var g models.Grade
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var students []models.Student
	if err := database.DB.Preload("Grade").Where("grade_id = ?", g.ID).Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"students": map[string]any{
			"grade": g.Level,
			"data":  newStudentResponses(students),
		},
	})
}

// Cut-down child shapes for the full-detail view.
type absentFollowUpEntry struct {
	ID        uint      `json:"id"`
	Date      string    `json:"date"`
	IsAbsent  bool      `json:"is_absent"`
	Degree    *float64  `json:"degree"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type studentPaymentEntry struct {
	ID        uint      `json:"id"`
	Month     string    `json:"month"`
	IsPaid    bool      `json:"is_paid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type studentQuizEntry struct {
	ID        uint      `json:"id"`
	MonthName string    `json:"month_name"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type studentFullResponse struct {
	studentResponse
	FollowUps []absentFollowUpEntry `json:"followups"`
	Payments  []studentPaymentEntry `json:"payments"`
	Quizzes   []studentQuizEntry    `json:"quizzes"`
}

// FullDetail nests the grade, all payments and quizzes, and only the
// follow-ups where the student was absent.
func (h *StudentHandler) FullDetail(c echo.Context) error {
	var s models.Student
	err := database.DB.
		Preload("Grade").
		Preload("FollowUps", "is_absent = ?", true).
		Preload("Payments.Month").
		Preload("Quizzes.Month").
		First(&s, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	full := studentFullResponse{
		studentResponse: newStudentResponse(s),
		FollowUps:       make([]absentFollowUpEntry, 0, len(s.FollowUps)),
		Payments:        make([]studentPaymentEntry, 0, len(s.Payments)),
		Quizzes:         make([]studentQuizEntry, 0, len(s.Quizzes)),
	}
	for _, f := range s.FollowUps {
		full.FollowUps = append(full.FollowUps, absentFollowUpEntry{
			ID: f.ID, Date: f.Date, IsAbsent: f.IsAbsent, Degree: f.Degree,
			Notes: f.Notes, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt,
		})
	}
	for _, p := range s.Payments {
		full.Payments = append(full.Payments, studentPaymentEntry{
			ID: p.ID, Month: p.Month.Name, IsPaid: p.IsPaid,
			CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
		})
	}
	for _, q := range s.Quizzes {
		full.Quizzes = append(full.Quizzes, studentQuizEntry{
			ID: q.ID, MonthName: q.Month.Name, Notes: q.Notes,
			CreatedAt: q.CreatedAt, UpdatedAt: q.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, full)
}
