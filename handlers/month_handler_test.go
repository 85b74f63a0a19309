package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthCreateValidation(t *testing.T) {
	setupDB(t)
	h := NewMonthHandler()

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"order":1}`, "name"},
		{"blank name", `{"name":" ","order":1}`, "name"},
		{"missing order", `{"name":"سبتمبر"}`, "order"},
		{"non integer order", `{"name":"سبتمبر","order":"abc"}`, "order"},
		{"zero order", `{"name":"سبتمبر","order":0}`, "order"},
		{"negative order", `{"name":"سبتمبر","order":-3}`, "order"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(t, http.MethodPost, "/months", tt.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp fieldsResp
			decodeBody(t, rec, &resp)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error)
			assert.Contains(t, resp.Fields, tt.field)
		})
	}
}

func TestMonthListOrderedByOrder(t *testing.T) {
	setupDB(t)
	h := NewMonthHandler()
	createMonth(t, "نوفمبر", 3)
	createMonth(t, "سبتمبر", 1)
	createMonth(t, "أكتوبر", 2)

	c, rec := newContext(t, http.MethodGet, "/months")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []struct {
		Name  string `json:"name"`
		Order int    `json:"order"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{resp[0].Order, resp[1].Order, resp[2].Order})
	assert.Equal(t, "سبتمبر", resp[0].Name)
}

func TestMonthCreate(t *testing.T) {
	setupDB(t)
	h := NewMonthHandler()

	c, rec := newContext(t, http.MethodPost, "/months", `{"name":"سبتمبر","order":1}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Order int    `json:"order"`
	}
	decodeBody(t, rec, &resp)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "سبتمبر", resp.Name)
	assert.Equal(t, 1, resp.Order)
}
