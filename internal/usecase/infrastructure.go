package usecase

import "context"

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

// MessageProducer отправляет подготовленные события в брокер.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// EventEncoder сериализует событие об изменении товара для outbox.
type EventEncoder interface {
	EncodeProductEvent(event *ProductEvent) ([]byte, error)
}
