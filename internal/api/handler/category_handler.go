package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// CategoryHandler serves the category tree and its admin mutations.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type categoryResponse struct {
	Success  bool             `json:"success"`
	Category *domain.Category `json:"category,omitempty"`
}

// List returns every category, newest first, with its parent name resolved.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}   domain.Category
// @Failure      500  {object}  errorResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Create adds a category from a multipart form.
//
// @Summary      Create category
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name      formData  string  true   "Category name"
// @Param        parentId  formData  string  false  "Parent category id"
// @Param        image     formData  file    false  "Category image"
// @Success      201  {object}  categoryResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	image, closeImage, err := upload(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	defer closeImage()

	category, err := h.service.CreateCategory(c.Request().Context(), ports.CategoryInput{
		Name:     c.FormValue("name"),
		ParentID: strings.TrimSpace(c.FormValue("parentId")),
		Image:    image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, categoryResponse{Success: true, Category: category})
}

// Update replaces a category's name, parent and optionally its image.
//
// @Summary      Update category
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id        formData  string  true   "Category id"
// @Param        name      formData  string  true   "Category name"
// @Param        parentId  formData  string  false  "Parent category id"
// @Param        image     formData  file    false  "Replacement image"
// @Success      200  {object}  categoryResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /categories [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	image, closeImage, err := upload(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	defer closeImage()

	category, err := h.service.UpdateCategory(c.Request().Context(), ports.CategoryInput{
		ID:       strings.TrimSpace(c.FormValue("id")),
		Name:     c.FormValue("name"),
		ParentID: strings.TrimSpace(c.FormValue("parentId")),
		Image:    image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryResponse{Success: true, Category: category})
}

// Delete removes a category. Children keep their now dangling parent id.
//
// @Summary      Delete category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Category id"
// @Success      200  {object}  categoryResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /categories [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCategory(c.Request().Context(), strings.TrimSpace(c.QueryParam("id"))); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryResponse{Success: true})
}
