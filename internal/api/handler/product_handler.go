package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

const maxListPage = 1_000_000

// ProductHandler serves the public catalog and the admin product editor.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns product summaries filtered by name. Without `page` the whole
// filtered set comes back as a plain array; with it, a page envelope.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive name filter"
// @Param        page    query     int     false  "1-based page number"
// @Success      200     {array}   domain.ProductSummary
// @Success      200     {object}  productPageResponse  "when page is set"
// @Failure      400     {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page := 0
	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			return domain.Invalid("page must be a positive integer")
		}
		if p > maxListPage {
			return domain.Invalid("page is out of range")
		}
		page = p
	}

	res, err := h.service.ListProducts(c.Request().Context(), ports.ListProductsInput{
		Search: c.QueryParam("search"),
		Page:   page,
	})
	if err != nil {
		return err
	}

	if page == 0 {
		return c.JSON(http.StatusOK, res.Items)
	}
	return c.JSON(http.StatusOK, productPageResponse{
		Products:   res.Items,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}

// Search matches name or description for the storefront search box.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Param        q    query     string  false  "Search text"
// @Success      200  {array}   domain.ProductSummary
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	items, err := h.service.SearchProducts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns the full product document.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// GetBySlug returns the product behind a storefront URL.
//
// @Summary      Get product by slug
// @Tags         products
// @Produce      json
// @Param        slug  path      string  true  "Product slug"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Router       /products/slug/{slug} [get]
func (h *ProductHandler) GetBySlug(c echo.Context) error {
	product, err := h.service.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a product from the admin multipart form.
//
// @Summary      Create product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name           formData  string  true   "Product name"
// @Param        slug           formData  string  true   "Slug, normalized before storing"
// @Param        description    formData  string  true   "Description"
// @Param        price          formData  number  true   "Price"
// @Param        originalPrice  formData  number  false  "Price before discount"
// @Param        category       formData  string  true   "Category id"
// @Param        quantity       formData  int     false  "Units in stock"
// @Param        stockStatus    formData  string  false  "In Stock, Out of Stock or Upcoming"
// @Param        weight         formData  string  false  "Weight label"
// @Param        deliveryTime   formData  int     false  "Delivery time in days"
// @Param        sku            formData  string  false  "SKU"
// @Param        colorVariants  formData  string  false  "JSON array of {name, hex}"
// @Param        sizeVariants   formData  string  false  "JSON array of {sizeName, measurements}"
// @Param        images         formData  file    false  "Product images"
// @Success      201  {object}  domain.Product
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	in, closeFiles, err := productInput(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	product, err := h.service.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update replaces a product. Images kept are those listed in existingImages
// followed by the new uploads.
//
// @Summary      Update product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id              path      string  true   "Product id"
// @Param        name            formData  string  true   "Product name"
// @Param        price           formData  number  true   "Price"
// @Param        category        formData  string  true   "Category id"
// @Param        existingImages  formData  string  false  "JSON array of image paths to keep"
// @Param        images          formData  file    false  "New product images"
// @Success      200  {object}  domain.Product
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	in, closeFiles, err := productInput(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	if err := formJSON(c, "existingImages", &in.ExistingImages); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product and its stored images.
//
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// productInput reads the admin product form shared by create and update.
func productInput(c echo.Context) (ports.ProductInput, func(), error) {
	noop := func() {}
	in := ports.ProductInput{
		Name:        c.FormValue("name"),
		SlugSeed:    c.FormValue("slug"),
		Description: c.FormValue("description"),
		CategoryID:  strings.TrimSpace(c.FormValue("category")),
		StockStatus: c.FormValue("stockStatus"),
		Weight:      c.FormValue("weight"),
		SKU:         c.FormValue("sku"),
	}

	var err error
	if in.Price, err = formFloat(c, "price"); err != nil {
		return in, noop, err
	}
	if in.OriginalPrice, err = formFloat(c, "originalPrice"); err != nil {
		return in, noop, err
	}
	if in.Quantity, err = formInt(c, "quantity"); err != nil {
		return in, noop, err
	}
	if in.DeliveryTime, err = formInt(c, "deliveryTime"); err != nil {
		return in, noop, err
	}
	if err = formJSON(c, "colorVariants", &in.ColorVariants); err != nil {
		return in, noop, err
	}
	if err = formJSON(c, "sizeVariants", &in.SizeVariants); err != nil {
		return in, noop, err
	}

	files, closeFiles, err := uploads(c, "images")
	if err != nil {
		return in, noop, domain.Invalid("invalid payload")
	}
	in.NewImages = files
	return in, closeFiles, nil
}
