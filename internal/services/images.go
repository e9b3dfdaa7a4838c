package services

import (
	"context"

	logrus "github.com/sirupsen/logrus"

	"farm_market/internal/imagestore"
	"farm_market/internal/logger"
	"farm_market/internal/metrics"
)

// ImageLifecycle keeps a product's image URL and the image store in step.
// Uploads must succeed before a record may reference them; deletions are
// best effort and only ever follow a confirmed record write.
type ImageLifecycle struct {
	store     imagestore.Store
	namespace string
	log       *logrus.Logger
}

func NewImageLifecycle(store imagestore.Store, namespace string, log *logrus.Logger) *ImageLifecycle {
	return &ImageLifecycle{store: store, namespace: namespace, log: log}
}

// Upload checks the content of img, stores it and returns its reference.
// Unsupported content is ValidationFailed and never reaches the store; any
// store failure is ImageUploadFailed. The caller must not write the record
// in either case.
func (l *ImageLifecycle) Upload(ctx context.Context, img *imagestore.Image) (string, error) {
	if err := img.Validate(); err != nil {
		return "", Validation("%s", err.Error())
	}

	ref, err := l.store.Upload(ctx, *img, l.namespace)
	metrics.RecordImageOp("upload", err)
	if err != nil {
		logger.FromCtx(ctx, l.log).WithError(err).WithField("filename", img.Filename).Error("image upload failed")
		return "", newError(KindImageUploadFailed, "image upload failed", err)
	}
	return ref, nil
}

// Discard deletes ref from the store. Failures are logged and counted, never
// returned: the record is already correct and a stale object is acceptable.
func (l *ImageLifecycle) Discard(ctx context.Context, ref, reason string) {
	if ref == "" {
		return
	}

	err := l.store.Delete(ctx, ref)
	metrics.RecordImageOp("delete", err)

	entry := logger.FromCtx(ctx, l.log).WithFields(logrus.Fields{
		"image":  ref,
		"reason": reason,
	})
	if err != nil {
		entry.WithError(err).Warn("image delete failed; object left in store")
		return
	}
	entry.Debug("image deleted")
}
