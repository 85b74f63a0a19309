package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kareem333j/students-management-system/database"
	"github.com/kareem333j/students-management-system/models"
)

// setupDB points database.DB at a fresh in-memory sqlite with the full
// schema. Single connection so the memory DB survives the whole test and
// the foreign_keys pragma applies everywhere.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.DB = db
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newContext(t *testing.T, method, target string, body ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if len(body) > 0 {
		reader = strings.NewReader(body[0])
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createGrade(t *testing.T, level string) models.Grade {
	t.Helper()
	g := models.Grade{Level: level}
	require.NoError(t, database.DB.Create(&g).Error)
	return g
}

func createStudent(t *testing.T, name string, gradeID uint, phone string) models.Student {
	t.Helper()
	s := models.Student{Name: name, GradeID: gradeID, ContactPhone: phone}
	require.NoError(t, database.DB.Create(&s).Error)
	return s
}

func createMonth(t *testing.T, name string, order int) models.PaymentMonth {
	t.Helper()
	m := models.PaymentMonth{Name: name, Order: order}
	require.NoError(t, database.DB.Create(&m).Error)
	return m
}

func phone(n int) string { return fmt.Sprintf("010%08d", n) }
