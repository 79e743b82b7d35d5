package workers

import (
	"context"
	"sync"
	"time"

	"olympschools_backend/internal/logger"
	"olympschools_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenJanitor - фоновая уборка просроченных токенов сброса пароля.
// Запускается раз в сутки в настроенный час (по умолчанию 02:00) и
// удаляет все токены с expiry_date в прошлом независимо от флага used.
// Чистое хозяйство: без него корректность не страдает, только копятся строки.
type TokenJanitor struct {
	tokenRepo repositories.ResetTokenRepository
	db        *gorm.DB
	runHour   int

	// Защита от наложения запусков: если прошлая уборка еще идет,
	// очередной тик пропускается, а не встает в очередь
	sweepMu sync.Mutex
}

func NewTokenJanitor(db *gorm.DB, tokenRepo repositories.ResetTokenRepository, runHour int) *TokenJanitor {
	return &TokenJanitor{
		tokenRepo: tokenRepo,
		db:        db,
		runHour:   runHour,
	}
}

// Start запускает цикл уборки. Останавливается по отмене контекста.
func (j *TokenJanitor) Start(ctx context.Context) {
	go j.run(ctx)
}

func (j *TokenJanitor) run(ctx context.Context) {
	for {
		wait := time.Until(j.nextRun(time.Now()))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Token janitor stopped")
			return
		case <-timer.C:
			j.Sweep()
		}
	}
}

// Sweep выполняет один проход уборки.
// Сравнивается только сохраненный expiry_date с текущим временем, поэтому
// гонка с живым reset-password невозможна: токен с будущим expiry_date
// не удаляется ни при каком порядке событий.
func (j *TokenJanitor) Sweep() {
	if !j.sweepMu.TryLock() {
		logger.Warn("Token janitor sweep already running, skipping")
		return
	}
	defer j.sweepMu.Unlock()

	deleted, err := j.tokenRepo.DeleteExpired(j.db, time.Now())
	if err != nil {
		logger.WorkerLog("token_janitor", "delete_expired", err)
		return
	}

	logger.WorkerLog("token_janitor", "delete_expired", nil)
	if deleted > 0 {
		logger.Info("Expired password reset tokens removed", "count", deleted)
	}
}

// nextRun возвращает ближайший момент запуска: сегодня в runHour,
// если этот час еще не прошел, иначе завтра
func (j *TokenJanitor) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), j.runHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
