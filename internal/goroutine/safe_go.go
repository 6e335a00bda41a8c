package goroutine

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/matheusgmdr7/contratando2/internal/logger"
)

// Runner запускает фоновую работу.
type Runner interface {
	Go(fn func())
}

// RecoveryHandler запускает горутины и логирует panic вместо падения процесса.
type RecoveryHandler struct {
	log *logrus.Entry
}

func NewRecoveryHandler(log *logrus.Entry) *RecoveryHandler {
	return &RecoveryHandler{log: log}
}

func (rh *RecoveryHandler) Go(fn func()) {
	go func() {
		defer rh.recover()
		fn()
	}()
}

func (rh *RecoveryHandler) recover() {
	if r := recover(); r != nil {
		rh.log.WithFields(logrus.Fields{
			"panic": r,
			"stack": string(debug.Stack()),
		}).Error("goroutine: panic в фоновой задаче")
	}
}

// Inline выполняет fn синхронно, с тем же перехватом panic.
type Inline struct{}

func (Inline) Go(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Component("goroutine").WithField("panic", r).Error("goroutine: panic в синхронной задаче")
		}
	}()
	fn()
}

// SafeGo запускает fn через обработчик по умолчанию.
func SafeGo(fn func()) {
	NewRecoveryHandler(logger.Component("goroutine")).Go(fn)
}
