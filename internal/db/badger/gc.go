package badger

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// gcRunner periodically reclaims value log space.
type gcRunner struct {
	db     *badger.DB
	ratio  float64
	logger *zap.Logger
	stopCh chan struct{}
	doneCh chan struct{}
}

func startGC(bdb *badger.DB, interval time.Duration, ratio float64, logger *zap.Logger) *gcRunner {
	r := &gcRunner{
		db:     bdb,
		ratio:  ratio,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go r.run(interval)
	return r
}

func (r *gcRunner) run(interval time.Duration) {
	defer close(r.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.db.RunValueLogGC(r.ratio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				r.logger.Warn("badger value log GC failed", zap.Error(err))
			}
		}
	}
}

func (r *gcRunner) stop() {
	close(r.stopCh)
	<-r.doneCh
}

// zapLogger adapts zap to badger.Logger.
type zapLogger struct {
	l *zap.SugaredLogger
}

func (z *zapLogger) Errorf(format string, args ...any)   { z.l.Errorf(format, args...) }
func (z *zapLogger) Warningf(format string, args ...any) { z.l.Warnf(format, args...) }
func (z *zapLogger) Infof(format string, args ...any)    { z.l.Debugf(format, args...) }
func (z *zapLogger) Debugf(format string, args ...any)   { z.l.Debugf(format, args...) }
