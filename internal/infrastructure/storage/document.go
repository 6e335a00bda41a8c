package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/h2non/filetype"

	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

var allowedDocumentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// DocumentType — реальный тип файла, определённый по магическим байтам.
type DocumentType struct {
	MIME      string
	Extension string
}

// DetectDocument читает начало файла и проверяет, что это изображение или PDF.
// Возвращает reader, который снова отдаёт файл целиком.
func DetectDocument(r io.Reader) (DocumentType, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return DocumentType{}, nil, fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return DocumentType{}, nil, apperror.Validation("arquivo vazio")
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return DocumentType{}, nil, apperror.Validation("não foi possível identificar o tipo do arquivo")
	}
	if !allowedDocumentTypes[kind.MIME.Value] {
		return DocumentType{}, nil, apperror.Validation(
			fmt.Sprintf("tipo de arquivo não suportado (%s). Permitidos: %s", kind.MIME.Value, allowedList()))
	}

	ext := kind.Extension
	if ext == "jpeg" {
		ext = "jpg"
	}
	return DocumentType{MIME: kind.MIME.Value, Extension: ext}, io.MultiReader(strings.NewReader(string(head)), r), nil
}

func allowedList() string {
	return "jpeg, png, webp, pdf"
}

// Inspector — DetectDocument в виде repository.DocumentInspector.
type Inspector struct{}

func (Inspector) Inspect(r io.Reader) (string, io.Reader, error) {
	kind, body, err := DetectDocument(r)
	if err != nil {
		return "", nil, err
	}
	return kind.Extension, body, nil
}
