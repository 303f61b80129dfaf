package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-hub/models"
)

func TestCompanyCollection(t *testing.T) {
	_, h := newCompanyServer()

	t.Run("Empty list", func(t *testing.T) {
		rr := anon(h, "GET", "/data/", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("Create", func(t *testing.T) {
		rr := anon(h, "POST", "/data/", map[string]string{"name": "Acme", "location": "Berlin", "type": "IT"})
		require.Equal(t, http.StatusCreated, rr.Code)

		company := decodeObject(t, rr)
		assert.Equal(t, "Acme", company["name"])
		assert.Equal(t, true, company["active"])
		assert.NotZero(t, company["company_id"])

		added, ok := company["added_date"].(string)
		require.True(t, ok)
		_, err := time.Parse(models.CompanyTimeLayout, added)
		assert.NoError(t, err)
	})

	t.Run("Create inactive", func(t *testing.T) {
		rr := anon(h, "POST", "/data/", map[string]interface{}{"name": "Old", "location": "Oslo", "type": "Retail", "active": false})
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, false, decodeObject(t, rr)["active"])
	})

	t.Run("Missing fields", func(t *testing.T) {
		rr := anon(h, "POST", "/data/", map[string]string{"name": "Acme"})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		errs := decodeObject(t, rr)
		assert.Contains(t, errs, "location")
		assert.Contains(t, errs, "type")
		assert.NotContains(t, errs, "name")
	})

	t.Run("Whitespace-only fields", func(t *testing.T) {
		rr := anon(h, "POST", "/data/", map[string]string{"name": " ", "location": " ", "type": " "})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		errs := decodeObject(t, rr)
		require.Len(t, errs, 3)
		for _, field := range []string{"name", "location", "type"} {
			assert.Equal(t, "This field may not be blank.", errs[field], field)
		}
	})

	t.Run("List returns every company", func(t *testing.T) {
		companies := decodeList(t, anon(h, "GET", "/data/", nil))
		require.Len(t, companies, 2)
		assert.Equal(t, "Acme", companies[0]["name"])
	})
}

func TestCompanyUpdateDelete(t *testing.T) {
	mem, h := newCompanyServer()
	rr := anon(h, "POST", "/data/", map[string]string{"name": "Acme", "location": "Berlin", "type": "IT"})
	require.Equal(t, http.StatusCreated, rr.Code)
	id := int(decodeObject(t, rr)["company_id"].(float64))
	url := fmt.Sprintf("/data_update/%d/", id)

	t.Run("Partial update", func(t *testing.T) {
		rr := anon(h, "PUT", url, map[string]string{"location": "Paris"})
		require.Equal(t, http.StatusOK, rr.Code)

		company := decodeObject(t, rr)
		assert.Equal(t, "Acme", company["name"])
		assert.Equal(t, "Paris", company["location"])
		assert.Equal(t, "IT", company["type"])
		assert.Equal(t, "Paris", mem.companies[id].Location)
	})

	t.Run("Blank name rejected", func(t *testing.T) {
		rr := anon(h, "PUT", url, map[string]string{"name": ""})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Acme", mem.companies[id].Name)
	})

	t.Run("Blank or null location rejected", func(t *testing.T) {
		rr := anon(h, "PUT", url, map[string]string{"location": "  "})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		rr = anon(h, "PUT", url, `{"active":null}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "This field may not be null.", decodeObject(t, rr)["active"])

		assert.Equal(t, "Paris", mem.companies[id].Location)
		assert.True(t, mem.companies[id].Active)
	})

	t.Run("Unknown company", func(t *testing.T) {
		for _, method := range []string{"PUT", "DELETE"} {
			rr := anon(h, method, "/data_update/999/", map[string]string{"name": "x"})
			require.Equal(t, http.StatusNotFound, rr.Code, method)
			assert.Equal(t, "Company not found", decodeObject(t, rr)["error"])
		}
	})

	t.Run("Delete", func(t *testing.T) {
		rr := anon(h, "DELETE", url, nil)
		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.NotContains(t, mem.companies, id)
	})

	t.Run("No GET on singleton", func(t *testing.T) {
		rr := anon(h, "GET", url, nil)
		require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}
