package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/product-admin/internal/delivery/v1/http/converter"
	"github.com/DRSN-tech/product-admin/internal/usecase"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/jimlawless/whereami"
)

// uploadField — имя поля multipart-формы с файлами.
const uploadField = "file"

func NewErrorResponse(code int, message, field string) *converter.ErrorResponse {
	return &converter.ErrorResponse{
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// ToHTTPResponse сопоставляет ошибку со статусом, текстом и полем формы.
func ToHTTPResponse(err error) (int, string, string) {
	var (
		verr *e.ValidationError
		nf   *e.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Reason, verr.Field
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error(), ""
	case errors.Is(err, e.ErrNetwork):
		return http.StatusBadGateway, e.ErrNetwork.Error(), ""
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error(), ""
	case errors.Is(err, e.ErrTooManyImages):
		return http.StatusBadRequest, e.ErrTooManyImages.Error(), uploadField
	case errors.Is(err, e.ErrNoImages):
		return http.StatusBadRequest, e.ErrNoImages.Error(), uploadField
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error(), uploadField
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error(), uploadField
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error(), ""
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error(), ""
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg, field := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg, field))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return e.Wrap(whereami.WhereAmI(), e.ErrFileTooLarge)
		}
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrStatusBadRequest, err))
	}
	return nil
}

// decodeProduct читает JSON-тело запроса с товаром. Неизвестные поля отклоняются.
func decodeProduct(r *http.Request) (*converter.ProductJSON, error) {
	var in converter.ProductJSON

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return nil, e.NewValidationError("", fmt.Sprintf("malformed product document: %v", err))
	}

	return &in, nil
}

// parseImages читает файлы в порядке их следования в форме.
func parseImages(files []*multipart.FileHeader, maxCount int, maxSize int64) ([]usecase.ProductImage, error) {
	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxSize)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(mimeType, "image/") {
			return nil, e.Wrap(fh.Filename, e.ErrUnsupportedMediaType)
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if fh.Size > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}

// queryInt читает положительное целое из query-параметра, 0 если параметра нет.
func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, e.NewValidationError(key, "must be a non-negative integer")
	}
	return n, nil
}
