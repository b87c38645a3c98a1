package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kartanikah/wedding-commerce/constant"
	"github.com/kartanikah/wedding-commerce/model"
	"github.com/kartanikah/wedding-commerce/utils/errors"
	validatorx "github.com/kartanikah/wedding-commerce/utils/validator"
)

// ListProducts handler
// @Summary List products
// @Tags Catalog
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} model.ProductListResponse
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	res, err := s.CatalogApp.ListProducts(ctx, page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product
// @Tags Catalog
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} model.ProductEntity
// @Failure 404 {object} errors.CustomError
// @Router /products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CatalogApp.GetProduct(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Description Multipart form: name, price, tags plus thumbnail and gallery files
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} model.ProductEntity
// @Failure 400 {object} errors.CustomError
// @Router /products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "expected multipart form"))
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	req := &model.CreateProductRequest{
		Name:  r.FormValue("name"),
		Price: price,
		Tags:  r.MultipartForm.Value["tags"],
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	thumbHeaders := r.MultipartForm.File["thumbnail"]
	if len(thumbHeaders) == 0 {
		writeError(w, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "thumbnail is required"))
		return
	}
	thumbs, closeThumb, err := openUploads(thumbHeaders[:1])
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	defer closeThumb()

	gallery, closeGallery, err := openUploads(r.MultipartForm.File["gallery"])
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	defer closeGallery()

	res, err := s.CatalogApp.CreateProduct(ctx, req, &thumbs[0], gallery)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, res)
}

// UpdateProduct handler
// @Summary Update product
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product id"
// @Success 200 {object} model.ProductEntity
// @Failure 404 {object} errors.CustomError
// @Router /products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "expected multipart form"))
		return
	}

	req := &model.UpdateProductRequest{}
	if v := r.FormValue("name"); v != "" {
		req.Name = &v
	}
	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, errors.SetCustomErrorDetail(constant.ErrInvalidRequest, "price must be numeric"))
			return
		}
		req.Price = &price
	}
	if tags, ok := r.MultipartForm.Value["tags"]; ok {
		req.Tags = tags
	}

	var thumbnail *model.ImageUpload
	if headers := r.MultipartForm.File["thumbnail"]; len(headers) > 0 {
		thumbs, closeThumb, err := openUploads(headers[:1])
		if err != nil {
			writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
			return
		}
		defer closeThumb()
		thumbnail = &thumbs[0]
	}

	gallery, closeGallery, err := openUploads(r.MultipartForm.File["gallery"])
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	defer closeGallery()

	res, err := s.CatalogApp.UpdateProduct(ctx, id, req, thumbnail, gallery)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteProduct handler
// @Summary Delete product
// @Tags Catalog
// @Produce json
// @Param id path int true "Product id"
// @Success 200
// @Failure 404 {object} errors.CustomError
// @Router /products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.CatalogApp.DeleteProduct(ctx, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]uint64{"deleted": id})
}

// ListTags handler
// @Summary List tags
// @Tags Catalog
// @Produce json
// @Success 200 {array} model.TagEntity
// @Router /tags [get]
func (s *RestHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := s.CatalogApp.ListTags(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateTag handler
// @Summary Create tag
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body model.TagRequest true "Tag Request"
// @Success 201 {object} model.TagEntity
// @Failure 400 {object} errors.CustomError
// @Router /tags [post]
func (s *RestHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CatalogApp.CreateTag(ctx, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, res)
}
