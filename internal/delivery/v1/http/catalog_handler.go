package http

import (
	"net/http"

	"github.com/DRSN-tech/product-admin/internal/cfg"
	"github.com/DRSN-tech/product-admin/internal/delivery/v1/http/converter"
	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/usecase"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	cfg            *cfg.HTTPConfig
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, cfg *cfg.HTTPConfig, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, cfg: cfg, logger: logger}
}

// listCategories
//
//	@Summary		Список категорий
//	@Description	Возвращает все категории со свойствами и ссылкой на родителя
//	@Tags			categories
//	@Produce		json
//	@Success		200	{array}		converter.CategoryJSON
//	@Failure		500	{object}	converter.ErrorResponse
//	@Router			/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list categories")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, converter.FromDomainCategories(categories))
}

// uploadImages
//
//	@Summary		Загрузка фото товара
//	@Description	Сохраняет файлы из поля file и возвращает ссылки в том же порядке
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Фото товара, поле можно повторять"
//	@Success		200		{object}	converter.UploadResponse
//	@Failure		400		{object}	converter.ErrorResponse	"Нет файлов или их слишком много"
//	@Failure		413		{object}	converter.ErrorResponse	"Файл слишком большой"
//	@Failure		415		{object}	converter.ErrorResponse	"Файл не является изображением"
//	@Router			/upload [post]
func (h *CatalogHandler) uploadImages(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20

	maxRequestSize := h.cfg.MaxFileSize*int64(h.cfg.MaxUploadFiles) + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), r.Header.Get("Content-Type"))
		WriteError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	images, err := parseImages(r.MultipartForm.File[uploadField], h.cfg.MaxUploadFiles, h.cfg.MaxFileSize)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.catalogUsecase.UploadImages(r.Context(), usecase.NewUploadImagesReq(images))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, converter.UploadResponse{Links: res.Links})
}

// getProducts
//
//	@Summary		Товар или список товаров
//	@Description	С параметром id возвращает один товар, без него страницу списка
//	@Tags			products
//	@Produce		json
//	@Param			id			query		string	false	"ID товара"
//	@Param			q			query		string	false	"Поиск по названию"
//	@Param			category	query		string	false	"ID категории"
//	@Param			page		query		int		false	"Номер страницы"
//	@Param			perPage		query		int		false	"Размер страницы"
//	@Success		200			{object}	converter.ProductListResponse
//	@Failure		404			{object}	converter.ErrorResponse
//	@Router			/products [get]
func (h *CatalogHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if id := query.Get("id"); id != "" {
		product, err := h.catalogUsecase.GetProduct(r.Context(), id)
		if err != nil {
			h.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, converter.FromDomainProduct(product))
		return
	}

	page, err := queryInt(r, "page")
	if err != nil {
		WriteError(w, err)
		return
	}
	perPage, err := queryInt(r, "perPage")
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.catalogUsecase.ListProducts(r.Context(),
		usecase.NewListProductsReq(query.Get("q"), query.Get("category"), page, perPage))
	if err != nil {
		h.logger.Errorf(err, "list products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, converter.ProductListResponse{
		Items:   converter.FromDomainProducts(res.Products),
		Total:   res.Total,
		Page:    res.Page,
		PerPage: res.PerPage,
	})
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Сохраняет новый товар. Документ не должен содержать _id
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		converter.ProductJSON	true	"Товар"
//	@Success		201		{object}	converter.ProductJSON
//	@Failure		400		{object}	converter.ErrorResponse	"Ошибка валидации"
//	@Router			/products [post]
func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.readProduct(w, r)
	if !ok {
		return
	}

	created, err := h.catalogUsecase.CreateProduct(r.Context(), product)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, converter.FromDomainProduct(created))
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Description	Полностью заменяет товар с указанным _id
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		converter.ProductJSON	true	"Товар с _id"
//	@Success		200		{object}	converter.ProductJSON
//	@Failure		400		{object}	converter.ErrorResponse	"Ошибка валидации"
//	@Failure		404		{object}	converter.ErrorResponse	"Товар не найден"
//	@Router			/products [put]
func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.readProduct(w, r)
	if !ok {
		return
	}

	updated, err := h.catalogUsecase.UpdateProduct(r.Context(), product)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, converter.FromDomainProduct(updated))
}

func (h *CatalogHandler) readProduct(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	const maxBodySize = 1 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	in, err := decodeProduct(r)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return nil, false
	}

	product, err := converter.ToDomainProduct(in)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return nil, false
	}

	return product, true
}
