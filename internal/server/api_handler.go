package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/bjarke-xyz/app-tracker/internal/domain"
	"github.com/bjarke-xyz/app-tracker/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

type applicationInput struct {
	FrontendID      string `json:"frontendId"`
	JobTitle        string `json:"jobTitle"`
	CompanyName     string `json:"companyName"`
	ApplicationDate string `json:"applicationDate"`
	Status          string `json:"status"`
	CategoryName    string `json:"categoryName"`
}

type categoryInput struct {
	Name       string `json:"name"`
	FrontendID string `json:"frontendId"`
}

type createApplicationInput struct {
	Application applicationInput `json:"application"`
	Category    categoryInput    `json:"category"`
}

type applicationResponse struct {
	ID              string `json:"id"`
	FrontendID      string `json:"frontendId"`
	JobTitle        string `json:"jobTitle"`
	CompanyName     string `json:"companyName"`
	ApplicationDate string `json:"applicationDate"`
	Status          string `json:"status"`
	CategoryName    string `json:"categoryName"`
	OwnerID         string `json:"ownerId"`
}

type categoryResponse struct {
	Name       string `json:"name"`
	FrontendID string `json:"frontendId"`
}

type dashboardResponse struct {
	ApplicationData []applicationResponse `json:"applicationData"`
	CategoriesData  []categoryResponse    `json:"categoriesData"`
}

func mapApplication(app domain.Application, _ int) applicationResponse {
	return applicationResponse{
		ID:              app.ID,
		FrontendID:      app.FrontendID,
		JobTitle:        app.JobTitle,
		CompanyName:     app.CompanyName,
		ApplicationDate: app.ApplicationDate,
		Status:          app.Status,
		CategoryName:    app.CategoryName,
		OwnerID:         app.OwnerUserID,
	}
}

func mapCategory(category domain.Category, _ int) categoryResponse {
	return categoryResponse{
		Name:       category.Name,
		FrontendID: category.FrontendID,
	}
}

// pathParam returns the decoded URL parameter. chi matches on the escaped
// path when one is present, so names containing '/' or '+' arrive escaped.
func pathParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

func (s *server) handlePostApplication(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	input := createApplicationInput{}
	if !decodeJSON(w, r, &input) {
		return
	}

	app, err := s.tracker.CreateApplication(r.Context(), claims.UserID,
		service.NewApplication{
			FrontendID:      input.Application.FrontendID,
			JobTitle:        input.Application.JobTitle,
			CompanyName:     input.Application.CompanyName,
			ApplicationDate: input.Application.ApplicationDate,
			Status:          input.Application.Status,
			CategoryName:    input.Application.CategoryName,
		},
		service.NewCategory{
			Name:       input.Category.Name,
			FrontendID: input.Category.FrontendID,
		})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.internalError(w, r, "error creating application", err, "userId", claims.UserID)
		return
	}
	applicationsCreated.Inc()
	jsonResponse(w, http.StatusCreated, mapApplication(app, 0))
}

func (s *server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	dashboard, err := s.tracker.Dashboard(r.Context(), claims.UserID)
	if err != nil {
		s.internalError(w, r, "error getting dashboard", err, "userId", claims.UserID)
		return
	}
	jsonResponse(w, http.StatusOK, dashboardResponse{
		ApplicationData: lo.Map(dashboard.Applications, mapApplication),
		CategoriesData:  lo.Map(dashboard.Categories, mapCategory),
	})
}

func (s *server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.tracker.ListCategories(r.Context())
	if err != nil {
		s.internalError(w, r, "error listing categories", err)
		return
	}
	jsonResponse(w, http.StatusOK, lo.Map(categories, mapCategory))
}

func (s *server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category name")
		return
	}
	err = s.tracker.DeleteCategory(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "category not found")
			return
		}
		s.internalError(w, r, "error deleting category", err, "category", name)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
