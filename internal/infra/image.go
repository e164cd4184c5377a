package infra

// image.go validates uploads for product and supplier images.
// Limits match the legacy admin forms: 1MB max file size, 800x600 max
// dimensions. DecodeConfig reads only the header, so oversized files are
// never fully decoded.

import (
	"bytes"
	"image"

	// Register the decoders admin uploads actually use
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"almacen/internal/apierror"
)

const (
	MaxImageBytes  = 1024 * 1024
	MaxImageWidth  = 800
	MaxImageHeight = 600
)

// ValidateImage rejects empty, unreadable, oversized or over-dimensioned
// images with a validation error. Runs before anything is persisted.
func ValidateImage(data []byte) error {
	if len(data) == 0 {
		return apierror.Validation("No se pudo leer la imagen cargada")
	}
	if len(data) > MaxImageBytes {
		return apierror.Validation("Archivo de imagen demasiado grande (maximo 1 MB)")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return apierror.Validation("No se pudo leer la imagen cargada")
	}
	if cfg.Width > MaxImageWidth || cfg.Height > MaxImageHeight {
		return apierror.Validation("Dimensiones de la imagen demasiado grandes (maximo 800x600 pixeles)")
	}
	return nil
}
