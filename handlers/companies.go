package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"notes-hub/apperr"
	"notes-hub/models"
	"notes-hub/store"
)

// CompanyAPI serves the unauthenticated company directory.
type CompanyAPI struct {
	Companies store.CompanyStore
	DB        Pinger
	Log       zerolog.Logger
}

func (c *CompanyAPI) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := c.Companies.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (c *CompanyAPI) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var patch models.CompanyPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	company := models.Company{Active: true}
	patch.Apply(&company)
	if err := check(company, patch.Nulls()); err != nil {
		writeError(w, r, err)
		return
	}

	if err := c.Companies.Insert(r.Context(), &company); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (c *CompanyAPI) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r)
	if err != nil {
		companyNotFound(w, r, err)
		return
	}

	company, err := c.Companies.Find(r.Context(), companyID)
	if err != nil {
		companyNotFound(w, r, err)
		return
	}

	var patch models.CompanyPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	patch.Apply(company)
	if err := check(company, patch.Nulls()); err != nil {
		writeError(w, r, err)
		return
	}

	if err := c.Companies.Update(r.Context(), company); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (c *CompanyAPI) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r)
	if err != nil {
		companyNotFound(w, r, err)
		return
	}

	if err := c.Companies.Delete(r.Context(), companyID); err != nil {
		companyNotFound(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func companyNotFound(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Company not found")
		return
	}
	writeError(w, r, err)
}
