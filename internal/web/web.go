// Package web is the server-rendered HTML surface. The same logical list
// request renders different fragments depending on the HX-Request header and
// the query parameters, and mutations answer with trigger signals instead of
// full pages.
package web

import (
	"html/template"
	"net/http"
	"strconv"

	"stockroom/internal/auth"
	"stockroom/internal/model"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 8 << 20

// User-facing messages, kept in Uzbek like the rest of the interface.
const (
	msgSaved   = "Mahsulot saqlandi"
	msgDeleted = "Mahsulot o‘chirildi"
	msgFailed  = "Xatolik yuz berdi. Qayta urinib ko‘ring."
)

// Handler serves the HTML routes.
type Handler struct {
	products service.ProductService
	auth     *auth.Manager
	tmpl     *template.Template
	currency string
	logger   zerolog.Logger
}

// NewHandler parses the embedded templates and builds the web handler.
func NewHandler(products service.ProductService, authManager *auth.Manager, currency string, logger zerolog.Logger) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		products: products,
		auth:     authManager,
		tmpl:     tmpl,
		currency: currency,
		logger:   logger.With().Str("handler", "web").Logger(),
	}, nil
}

// RegisterRoutes mounts the HTML routes. sessionMW guards everything except
// the login endpoints.
func (h *Handler) RegisterRoutes(r chi.Router, sessionMW func(http.Handler) http.Handler) {
	r.Handle("/static/*", StaticHandler())
	r.Get("/login/", h.LoginForm)
	r.Post("/login/", h.Login)
	r.Post("/logout/", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(sessionMW)
		r.Get("/", h.ListPage)
		r.Get("/table/", h.TablePartial)
		r.Get("/new/", h.CreateForm)
		r.Post("/new/", h.Create)
		r.Get("/{id}/edit/", h.EditForm)
		r.Post("/{id}/edit/", h.Edit)
		r.Get("/{id}/delete/", h.DeleteConfirm)
		r.Post("/{id}/delete/", h.Delete)
	})
}

// listData is the template context shared by the list page and its partials.
type listData struct {
	PageTitle   string
	Stats       *model.ProductStats
	Page        *model.ProductPage
	SearchQuery string
	Sort        string
	View        string
	Currency    string
	User        string
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}

func (h *Handler) listQuery(r *http.Request) model.ListQuery {
	params := r.URL.Query()
	page := 1
	if raw := params.Get("page"); raw != "" {
		// Non-numeric pages fall back to the first page; the paginator
		// clamps out-of-range values.
		if parsed, err := parsePage(raw); err == nil {
			page = parsed
		}
	}
	return model.ListQuery{
		Search: params.Get("q"),
		Sort:   params.Get("sort"),
		Page:   page,
	}
}

func (h *Handler) listContext(r *http.Request, page *model.ProductPage, stats *model.ProductStats) listData {
	q := r.URL.Query()
	query := h.listQuery(r).Normalize()
	username, _ := auth.UserFromContext(r.Context())
	return listData{
		PageTitle:   "Mahsulotlar",
		Stats:       stats,
		Page:        page,
		SearchQuery: query.Search,
		Sort:        query.Sort,
		View:        q.Get("view"),
		Currency:    h.currency,
		User:        username,
	}
}

// ListPage renders the full list page.
func (h *Handler) ListPage(w http.ResponseWriter, r *http.Request) {
	query := h.listQuery(r)

	page, err := h.products.List(r.Context(), query)
	if err != nil {
		h.serverError(w, err)
		return
	}

	stats, err := h.products.Stats(r.Context(), query.Search)
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.render(w, http.StatusOK, "list", h.listContext(r, page, stats))
}

// TablePartial renders one of several list fragments depending on the
// request shape: a paginated fetch gets bare rows (or cards), a live search
// gets an out-of-band fragment updating both layouts, and a plain partial
// reload gets the full table fragment.
func (h *Handler) TablePartial(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	isPaginating := params.Has("page")
	isSearch := params.Has("q") || params.Has("sort")

	page, err := h.products.List(r.Context(), h.listQuery(r))
	if err != nil {
		h.serverError(w, err)
		return
	}

	var name string
	switch {
	case !isPaginating && isSearch:
		name = "product_list_oob"
	case params.Get("view") == "cards" && isPaginating:
		name = "product_cards"
	case params.Get("view") == "cards":
		name = "cards_mobile"
	case isPaginating:
		name = "product_rows"
	default:
		name = "table"
	}

	if !page.HasNext {
		if err := NewTriggers().Event(EventStopInfiniteScroll).Write(w.Header(), HeaderTrigger); err != nil {
			h.serverError(w, err)
			return
		}
	}

	h.render(w, http.StatusOK, name, h.listContext(r, page, nil))
}

// formData is the template context for the modal form partials.
type formData struct {
	Form         *productForm
	Product      *model.Product
	FormAction   string
	ImagePreview string
	Currency     string
	IsHTMX       bool
}

func (h *Handler) formContext(r *http.Request, form *productForm, product *model.Product) formData {
	preview := ""
	if product != nil && product.Image != nil {
		preview = *product.Image
	}
	return formData{
		Form:         form,
		Product:      product,
		FormAction:   r.URL.Path,
		ImagePreview: preview,
		Currency:     h.currency,
		IsHTMX:       isHTMX(r),
	}
}

// CreateForm renders the empty create modal.
func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request) {
	form := &productForm{Errors: make(map[string]string)}
	h.render(w, http.StatusOK, "create_modal", h.formContext(r, form, nil))
}

// Create handles the create form submission.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, "create_modal", nil)
}

func (h *Handler) loadProduct(w http.ResponseWriter, r *http.Request) *model.Product {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil
	}
	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if err == model.ErrProductNotFound {
			http.NotFound(w, r)
			return nil
		}
		h.serverError(w, err)
		return nil
	}
	return product
}

// EditForm renders the edit modal prefilled with the current values.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	product := h.loadProduct(w, r)
	if product == nil {
		return
	}
	form := &productForm{
		Name:   product.Name,
		Price:  product.Price.StringFixed(2),
		Errors: make(map[string]string),
	}
	h.render(w, http.StatusOK, "edit_modal", h.formContext(r, form, product))
}

// Edit handles the edit form submission.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	product := h.loadProduct(w, r)
	if product == nil {
		return
	}
	h.saveProduct(w, r, "edit_modal", product)
}

// saveProduct is the shared create/update flow. On success under HX-Request
// it answers 204 with reload and toast triggers plus an after-settle
// close-modal trigger; otherwise it redirects back to the list. Validation
// failures re-render the form partial, with an error toast for HX requests.
func (h *Handler) saveProduct(w http.ResponseWriter, r *http.Request, templateName string, existing *model.Product) {
	form, err := parseProductForm(r)
	if err != nil {
		h.logger.Debug().Err(err).Msg("unparseable product form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	input, ok := form.Validate()
	if ok {
		if existing == nil {
			var product *model.Product
			product, err = h.products.Create(r.Context(), input)
			if err == nil && form.image != nil {
				err = h.attachFormImage(r, form, product.ID)
			}
		} else {
			_, err = h.products.Update(r.Context(), existing.ID, input)
			if err == nil && form.image != nil {
				err = h.attachFormImage(r, form, existing.ID)
			}
		}
		if err == model.ErrProductNotFound {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			h.serverError(w, err)
			return
		}

		if isHTMX(r) {
			triggers := NewTriggers().Event(EventReloadProducts).Toast(ToastSuccess, msgSaved)
			if err := triggers.Write(w.Header(), HeaderTrigger); err != nil {
				h.serverError(w, err)
				return
			}
			if err := NewTriggers().Event(EventCloseModal).Write(w.Header(), HeaderTriggerAfterSettle); err != nil {
				h.serverError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	status := http.StatusOK
	if isHTMX(r) {
		status = http.StatusBadRequest
		if err := NewTriggers().Toast(ToastError, msgFailed).Write(w.Header(), HeaderTrigger); err != nil {
			h.serverError(w, err)
			return
		}
	}
	h.render(w, status, templateName, h.formContext(r, form, existing))
}

func (h *Handler) attachFormImage(r *http.Request, form *productForm, id uuid.UUID) error {
	upload, err := form.ImageUpload()
	if err != nil {
		return err
	}
	if upload == nil {
		return nil
	}
	_, err = h.products.AttachImage(r.Context(), id, *upload)
	return err
}

// DeleteConfirm renders the delete confirmation fragment.
func (h *Handler) DeleteConfirm(w http.ResponseWriter, r *http.Request) {
	product := h.loadProduct(w, r)
	if product == nil {
		return
	}
	h.render(w, http.StatusOK, "delete_modal", h.formContext(r, nil, product))
}

// Delete removes the product permanently.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	product := h.loadProduct(w, r)
	if product == nil {
		return
	}

	if err := h.products.Delete(r.Context(), product.ID); err != nil {
		if err == model.ErrProductNotFound {
			http.NotFound(w, r)
			return
		}
		h.serverError(w, err)
		return
	}

	if isHTMX(r) {
		triggers := NewTriggers().Event(EventReloadProducts).Toast(ToastSuccess, msgDeleted)
		if err := triggers.Write(w.Header(), HeaderTrigger); err != nil {
			h.serverError(w, err)
			return
		}
		if err := NewTriggers().Event(EventCloseModal).Write(w.Header(), HeaderTriggerAfterSettle); err != nil {
			h.serverError(w, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// loginData is the template context of the login page.
type loginData struct {
	Username string
	Error    string
	Next     string
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", loginData{Next: r.URL.Query().Get("next")})
}

// Login verifies credentials and opens a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	next := r.PostFormValue("next")
	if next == "" || next[0] != '/' {
		next = "/"
	}

	token, err := h.auth.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		h.render(w, http.StatusOK, "login", loginData{
			Username: username,
			Error:    model.ErrInvalidCredentials.Message,
			Next:     next,
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login/", http.StatusSeeOther)
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("web handler error")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func parsePage(raw string) (int, error) {
	return strconv.Atoi(raw)
}
