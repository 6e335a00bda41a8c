package proposal

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/matheusgmdr7/contratando2/internal/domain/entity"
	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
)

// DocumentUpload — один файл titular. Kind из entity.RequiredDocuments.
type DocumentUpload struct {
	Kind string
	Body io.Reader
}

type AttachDocumentsUseCase struct {
	unifier   *Unifier
	storage   repository.FileStorage
	inspector repository.DocumentInspector
	now       func() time.Time
}

func NewAttachDocumentsUseCase(unifier *Unifier, storage repository.FileStorage, inspector repository.DocumentInspector) *AttachDocumentsUseCase {
	return &AttachDocumentsUseCase{unifier: unifier, storage: storage, inspector: inspector, now: time.Now}
}

// Execute загружает файлы в bucket таблицы-источника и дописывает ссылки
// в documentos_urls. Негодный файл пропускается с предупреждением.
// Если ссылки не удалось сохранить, загруженные файлы остаются в bucket.
func (uc *AttachDocumentsUseCase) Execute(ctx context.Context, session entity.Session, id uuid.UUID, files []DocumentUpload) (*entity.Proposal, error) {
	if len(files) == 0 {
		return nil, apperror.Validation("nenhum documento enviado")
	}

	src, p, err := uc.unifier.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(session, p); err != nil {
		return nil, err
	}

	wasComplete := len(p.MissingDocuments()) == 0
	bucket := p.Origin.DocumentsBucket()
	log := uc.unifier.log.WithFields(logrus.Fields{"proposal_id": id, "bucket": bucket})
	docs := maps.Clone(p.Documents)
	if docs == nil {
		docs = map[string]string{}
	}

	uploaded := 0
	for _, f := range files {
		if !slices.Contains(entity.RequiredDocuments, f.Kind) {
			log.WithField("kind", f.Kind).Warn("proposal: неизвестный тип документа пропущен")
			continue
		}
		ext, body, err := uc.inspector.Inspect(f.Body)
		if err != nil {
			log.WithError(err).WithField("kind", f.Kind).Warn("proposal: файл отклонён")
			continue
		}

		path := fmt.Sprintf("propostas/%s/titular_%s_%d.%s", id, f.Kind, uc.now().UnixMilli(), ext)
		url, err := uc.storage.Upload(ctx, bucket, path, body)
		if err != nil {
			log.WithError(err).WithField("kind", f.Kind).Warn("proposal: не удалось загрузить файл")
			continue
		}
		docs[f.Kind] = url
		uploaded++
	}
	if uploaded == 0 {
		return nil, apperror.Validation("nenhum documento válido enviado")
	}

	if err := src.SetDocuments(ctx, id, docs); err != nil {
		log.WithError(err).WithField("uploaded", uploaded).
			Error("proposal: файлы загружены, но ссылки не сохранены")
		return nil, err
	}
	p.Documents = docs
	if !wasComplete && len(p.MissingDocuments()) == 0 {
		uc.unifier.events.DocumentsCompleted(ctx, p)
	}
	return p, nil
}
