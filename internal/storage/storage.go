package storage

import (
	"context"
	"io"
)

// Storage - хранилище загруженных фотографий инспекций.
// Пути относительные; публичный URL строится из BaseURL.
type Storage interface {
	// Save сохраняет файл по указанному пути
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get открывает сохраненный файл на чтение
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete удаляет файл; отсутствие файла - не ошибка
	Delete(ctx context.Context, path string) error

	// Exists проверяет наличие файла
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL возвращает публичный URL файла
	GetURL(path string) string
}

// Config - настройки хранилища
type Config struct {
	BasePath string // корневой каталог на диске
	BaseURL  string // префикс публичных URL
}
