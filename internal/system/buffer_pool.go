package system

import (
	"image"
	"sync"
)

// Пул буферов *image.RGBA между чтением кадров и кодированием, чтобы
// снизить нагрузку на Garbage Collector (GC) при длинных
// последовательностях. В одном запуске все кадры одного размера,
// поэтому буфер другого размера просто не переиспользуется.
var framePool sync.Pool

// GetFrame возвращает буфер кадра нужного размера из пула или создает
// новый, если свободных нет.
func GetFrame(rect image.Rectangle) *image.RGBA {
	if img, ok := framePool.Get().(*image.RGBA); ok && img.Rect == rect {
		return img
	}
	return image.NewRGBA(rect)
}

// PutFrame возвращает буфер кадра в пул после кодирования.
func PutFrame(img *image.RGBA) {
	if img != nil {
		framePool.Put(img)
	}
}
