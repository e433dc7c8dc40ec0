package usecase

import (
	"time"

	"github.com/DRSN-tech/product-admin/internal/domain"
)

// IMAGES

// ProductImage — файл, пришедший в multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // тип, определённый по содержимому
	Size     int64
	Name     string // оригинальное имя файла (для логов)
}

// UploadImagesReq — запрос на загрузку фото товара.
type UploadImagesReq struct {
	Images []ProductImage
}

// UploadImagesRes — результат загрузки. Keys и Links идут в порядке файлов запроса.
type UploadImagesRes struct {
	Keys  []string
	Links []string
}

// PRODUCTS

// ListProductsReq — фильтры и страница списка товаров.
type ListProductsReq struct {
	Query      string // поиск по названию
	CategoryID string
	Page       int
	PerPage    int
}

type ListProductsRes struct {
	Products []domain.Product
	Total    int64
	Page     int
	PerPage  int
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated OutboxEventType = "product.created"
	ProductUpdated OutboxEventType = "product.updated"
)

// OutboxEvent — событие, записанное в одной транзакции с изменением товара.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ProductEvent — содержимое события для сериализации.
type ProductEvent struct {
	EventID    string
	Type       OutboxEventType
	OccurredAt time.Time
	Product    *domain.Product
}

type WriteRawMessageReq struct {
	ProductID string
	Payload   []byte
}

// MAPPERS

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImagesReq(images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{Images: images}
}

func NewUploadImagesRes(keys, links []string) *UploadImagesRes {
	return &UploadImagesRes{Keys: keys, Links: links}
}

func NewListProductsReq(query, categoryID string, page, perPage int) *ListProductsReq {
	return &ListProductsReq{
		Query:      query,
		CategoryID: categoryID,
		Page:       page,
		PerPage:    perPage,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, productID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(productID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}
