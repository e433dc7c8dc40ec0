package editor

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/product-admin/pkg/e"
)

// UploadImages отправляет выбранные файлы одним запросом и добавляет полученные
// ссылки в конец списка фото в порядке ответа сервера.
// Признак загрузки снимается при любом исходе.
func (f *Form) UploadImages(ctx context.Context, files []File) error {
	const op = "Form.UploadImages"

	if len(files) == 0 {
		return nil
	}

	f.mu.Lock()
	f.pendingUploads++
	f.uploadErr = nil
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	links, err := f.deps.API.UploadImages(ctx, files)

	f.mu.Lock()
	f.pendingUploads--
	if err != nil {
		f.uploadErr = err
	} else {
		f.images = append(f.images, links...)
	}
	snap = f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	if err != nil {
		f.deps.Logger.Warnf("%s: %d file(s) not uploaded: %v", op, len(files), err)
		return e.Wrap(op, err)
	}

	return nil
}

// ReorderImages заменяет список фото новым порядком как есть.
func (f *Form) ReorderImages(images []string) {
	f.update(func() { f.images = append([]string(nil), images...) })
}

// RemoveImage убирает фото из списка.
func (f *Form) RemoveImage(index int) error {
	f.mu.Lock()
	if index < 0 || index >= len(f.images) {
		f.mu.Unlock()
		return e.NewValidationError("images", fmt.Sprintf("no image at index %d", index))
	}
	f.images = append(f.images[:index:index], f.images[index+1:]...)
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)

	return nil
}
