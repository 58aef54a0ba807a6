package web

import (
	"mime/multipart"
	"net/http"
	"strings"

	"stockroom/internal/service"
	"stockroom/internal/validate"

	"github.com/shopspring/decimal"
)

// productForm carries the raw form fields plus per-field validation errors,
// so invalid submissions can be re-rendered with the user's input intact.
type productForm struct {
	Name   string
	Price  string
	Errors map[string]string

	image *multipart.FileHeader
}

// parseProductForm reads the product form off a request. Both urlencoded and
// multipart submissions are accepted; only multipart ones can carry an image.
func parseProductForm(r *http.Request) (*productForm, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}

	form := &productForm{
		Name:   r.PostFormValue("name"),
		Price:  r.PostFormValue("price"),
		Errors: make(map[string]string),
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			form.image = files[0]
		}
	}

	return form, nil
}

// Validate checks the fields and the optional image. It returns the parsed
// input when everything is valid; otherwise Errors is populated.
func (f *productForm) Validate() (service.ProductInput, bool) {
	var input service.ProductInput

	input.Name = strings.TrimSpace(f.Name)
	if input.Name == "" {
		f.Errors["name"] = "Mahsulot nomini kiriting"
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	switch {
	case strings.TrimSpace(f.Price) == "":
		f.Errors["price"] = "Narxni kiriting"
	case err != nil:
		f.Errors["price"] = "Narxni to‘g‘ri kiriting"
	case price.IsNegative():
		f.Errors["price"] = "Narx manfiy bo‘lishi mumkin emas"
	default:
		input.Price = price
	}

	if f.image != nil {
		if err := validate.ImageHeader(f.image); err != nil {
			f.Errors["image"] = err.Error()
		}
	}

	return input, len(f.Errors) == 0
}

// ImageUpload opens the uploaded image, if any. The caller closes the reader
// by letting the request body lifecycle handle it.
func (f *productForm) ImageUpload() (*service.ImageUpload, error) {
	if f.image == nil {
		return nil, nil
	}
	file, err := f.image.Open()
	if err != nil {
		return nil, err
	}
	return &service.ImageUpload{
		Filename:    f.image.Filename,
		ContentType: f.image.Header.Get("Content-Type"),
		Size:        f.image.Size,
		Content:     file,
	}, nil
}
