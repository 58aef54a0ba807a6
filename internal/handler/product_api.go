package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"stockroom/internal/model"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// parts spill to disk.
const maxUploadMemory = 8 << 20

// ProductAPI handles the JSON product resource.
type ProductAPI struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductAPI creates the product API handler.
func NewProductAPI(service service.ProductService, logger zerolog.Logger) *ProductAPI {
	return &ProductAPI{
		service: service,
		logger:  logger.With().Str("handler", "product-api").Logger(),
	}
}

// RegisterRoutes mounts the resource on the router. Authentication is applied
// by the caller.
func (h *ProductAPI) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		// Clients use the trailing-slash URL forms; accept both.
		r.Use(middleware.StripSlashes)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/upload-image", h.UploadImage)
	})
}

// productPayload is the request body for create and update.
type productPayload struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// List handles GET /api/products/ with search, sort, and pagination.
func (h *ProductAPI) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page := 1
	if raw := params.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid page.", h.logger)
			return
		}
		page = parsed
	}

	result, err := h.service.List(r.Context(), model.ListQuery{
		Search: params.Get("q"),
		Sort:   params.Get("sort"),
		Page:   page,
	})
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /api/products/.
func (h *ProductAPI) Create(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), service.ProductInput{
		Name:  payload.Name,
		Price: payload.Price,
	})
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductAPI) productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// Get handles GET /api/products/{id}/.
func (h *ProductAPI) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id}/.
func (h *ProductAPI) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body.", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, service.ProductInput{
		Name:  payload.Name,
		Price: payload.Price,
	})
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}/.
func (h *ProductAPI) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/products/{id}/upload-image/. The multipart
// field name is "image".
func (h *ProductAPI) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid multipart body.", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Image file is required.", h.logger)
		return
	}
	defer file.Close()

	ref, err := h.service.AttachImage(r.Context(), id, service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"image": ref})
}
