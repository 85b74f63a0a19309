package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kareem333j/students-management-system/database"
	"github.com/kareem333j/students-management-system/models"
)

type fieldsResp struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func TestStudentCreateValidation(t *testing.T) {
	setupDB(t)
	h := NewStudentHandler()

	g := createGrade(t, "الصف الأول")
	createStudent(t, "أحمد علي", g.ID, phone(1))

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", fmt.Sprintf(`{"grade":%d,"contact_phone":"01000000011"}`, g.ID), "name"},
		{"duplicate name", fmt.Sprintf(`{"name":"أحمد علي","grade":%d,"contact_phone":"01000000011"}`, g.ID), "name"},
		{"missing grade", `{"name":"محمد سيد","contact_phone":"01000000011"}`, "grade"},
		{"unknown grade", `{"name":"محمد سيد","grade":999,"contact_phone":"01000000011"}`, "grade"},
		{"short phone", fmt.Sprintf(`{"name":"محمد سيد","grade":%d,"contact_phone":"0100"}`, g.ID), "contact_phone"},
		{"non numeric phone", fmt.Sprintf(`{"name":"محمد سيد","grade":%d,"contact_phone":"01a00000011"}`, g.ID), "contact_phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPost, "/students", tt.body)
			require.NoError(t, h.Create(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp fieldsResp
			decodeBody(t, rec, &resp)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error)
			assert.Contains(t, resp.Fields, tt.field)
		})
	}

	var n int64
	database.DB.Model(&models.Student{}).Count(&n)
	assert.EqualValues(t, 1, n, "no partial saves on validation failure")
}

func TestStudentCreateEmbedsGrade(t *testing.T) {
	setupDB(t)
	h := NewStudentHandler()
	g := createGrade(t, "الصف الثاني")

	c, rec := newContext(t, http.MethodPost, "/students",
		fmt.Sprintf(`{"name":"سارة محمود","grade":%d,"contact_phone":"01234567890"}`, g.ID))
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID    uint `json:"id"`
		Grade struct {
			ID    uint   `json:"id"`
			Level string `json:"level"`
		} `json:"grade"`
		ContactPhone string `json:"contact_phone"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, g.ID, resp.Grade.ID)
	assert.Equal(t, "الصف الثاني", resp.Grade.Level)
	assert.Equal(t, "01234567890", resp.ContactPhone)
}

func TestStudentUpdateExcludesSelfFromUniqueness(t *testing.T) {
	setupDB(t)
	h := NewStudentHandler()
	g := createGrade(t, "الصف الأول")
	s := createStudent(t, "أحمد علي", g.ID, phone(1))
	createStudent(t, "محمد سيد", g.ID, phone(2))

	// Same name, same student: allowed.
	c, rec := newContext(t, http.MethodPut, "/students/1",
		fmt.Sprintf(`{"name":"أحمد علي","grade":%d,"contact_phone":"01000000099"}`, g.ID))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(s.ID))
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Taking another student's name: rejected.
	c, rec = newContext(t, http.MethodPut, "/students/1",
		fmt.Sprintf(`{"name":"محمد سيد","grade":%d,"contact_phone":"01000000099"}`, g.ID))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(s.ID))
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentBulkDelete(t *testing.T) {
	setupDB(t)
	h := NewStudentHandler()
	g := createGrade(t, "الصف الأول")
	createStudent(t, "طالب 1", g.ID, phone(1))
	createStudent(t, "طالب 2", g.ID, phone(2))
	createStudent(t, "طالب 3", g.ID, phone(3))

	c, rec := newContext(t, http.MethodDelete, "/students/all/delete", `{"ids":[1,2,999]}`)
	require.NoError(t, h.BulkDelete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Deleted 2 students.", resp["detail"])

	var n int64
	database.DB.Model(&models.Student{}).Count(&n)
	assert.EqualValues(t, 1, n)

	c, rec = newContext(t, http.MethodDelete, "/students/all/delete", `{"ids":[]}`)
	require.NoError(t, h.BulkDelete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	database.DB.Model(&models.Student{}).Count(&n)
	assert.EqualValues(t, 1, n, "empty id list must not delete anything")
}

func TestStudentSearch(t *testing.T) {
	setupDB(t)
	h := NewStudentHandler()
	g := createGrade(t, "الصف الأول")
	createStudent(t, "Ahmed Aly", g.ID, "01012345678")
	createStudent(t, "Sara Mahmoud", g.ID, "01187654321")

	tests := []struct {
		value string
		want  int
	}{
		{"ahmed", 1},  // case-insensitive name match
		{"876", 1},    // phone substring
		{"01", 2},     // phone prefix hits both
		{"nobody", 0}, // no match
	}
	for _, tt := range tests {
		c, rec := newContext(t, http.MethodGet, "/students/search/"+tt.value)
		c.SetParamNames("value")
		c.SetParamValues(tt.value)
		require.NoError(t, h.Search(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []map[string]any
		decodeBody(t, rec, &resp)
		assert.Len(t, resp, tt.want, "value=%q", tt.value)
	}
}

func TestStudentByGrade(t *testing.T) {
	setupDB(t)
	h := NewStudentHandler()
	g := createGrade(t, "الصف الرابع")
	other := createGrade(t, "الصف الخامس")
	createStudent(t, "طالب 1", g.ID, phone(1))
	createStudent(t, "طالب 2", other.ID, phone(2))

	c, rec := newContext(t, http.MethodGet, "/students/grades/999")
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, h.ByGrade(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(t, http.MethodGet, "/students/grades/1")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(g.ID))
	require.NoError(t, h.ByGrade(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Students struct {
			Grade string           `json:"grade"`
			Data  []map[string]any `json:"data"`
		} `json:"students"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "الصف الرابع", resp.Students.Grade)
	assert.Len(t, resp.Students.Data, 1)
}

func TestStudentFullDetail(t *testing.T) {
	setupDB(t)
	h := NewStudentHandler()
	g := createGrade(t, "الصف الأول")
	s := createStudent(t, "أحمد علي", g.ID, phone(1))
	m := createMonth(t, "سبتمبر", 1)

	require.NoError(t, database.DB.Create(&models.DailyFollowUp{StudentID: s.ID, Date: "2026-08-01", IsAbsent: true}).Error)
	require.NoError(t, database.DB.Create(&models.DailyFollowUp{StudentID: s.ID, Date: "2026-08-02", IsAbsent: false}).Error)
	require.NoError(t, database.DB.Create(&models.MonthlyPayment{StudentID: s.ID, MonthID: m.ID, IsPaid: true}).Error)
	require.NoError(t, database.DB.Create(&models.Quiz{StudentID: s.ID, MonthID: m.ID}).Error)

	c, rec := newContext(t, http.MethodGet, "/students/1/all")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(s.ID))
	require.NoError(t, h.FullDetail(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Name      string `json:"name"`
		Grade     struct{ Level string }
		FollowUps []struct {
			Date     string `json:"date"`
			IsAbsent bool   `json:"is_absent"`
		} `json:"followups"`
		Payments []struct {
			Month  string `json:"month"`
			IsPaid bool   `json:"is_paid"`
		} `json:"payments"`
		Quizzes []struct {
			MonthName string `json:"month_name"`
		} `json:"quizzes"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "أحمد علي", resp.Name)
	require.Len(t, resp.FollowUps, 1, "only absent follow-ups are listed")
	assert.True(t, resp.FollowUps[0].IsAbsent)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, "سبتمبر", resp.Payments[0].Month)
	assert.True(t, resp.Payments[0].IsPaid)
	require.Len(t, resp.Quizzes, 1)
	assert.Equal(t, "سبتمبر", resp.Quizzes[0].MonthName)
}
