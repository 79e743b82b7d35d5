package workers

import (
	"sync"
	"testing"
	"time"

	"olympschools_backend/internal/models"
	"olympschools_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// stubTokenRepo - заглушка репозитория для проверки логики уборщика
// без поднятой БД
type stubTokenRepo struct {
	mu      sync.Mutex
	calls   int
	block   chan struct{} // если не nil, DeleteExpired висит до закрытия канала
	deleted int64
}

func (s *stubTokenRepo) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.block != nil {
		<-s.block
	}
	return s.deleted, nil
}

func (s *stubTokenRepo) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubTokenRepo) Create(db *gorm.DB, token *models.PasswordResetToken) error { return nil }
func (s *stubTokenRepo) FindByToken(db *gorm.DB, tokenValue string) (*models.PasswordResetToken, error) {
	return nil, repositories.ErrResetTokenNotFound
}
func (s *stubTokenRepo) MarkAllUsedByUserID(db *gorm.DB, userID string) error { return nil }
func (s *stubTokenRepo) ConsumeByToken(db *gorm.DB, tokenValue string) error  { return nil }
func (s *stubTokenRepo) CountActiveByUserID(db *gorm.DB, userID string) (int64, error) {
	return 0, nil
}

func TestNextRun(t *testing.T) {
	j := NewTokenJanitor(nil, &stubTokenRepo{}, 2)

	loc := time.UTC

	// До 02:00 - запуск сегодня
	now := time.Date(2026, 8, 29, 1, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 8, 29, 2, 0, 0, 0, loc), j.nextRun(now))

	// После 02:00 - запуск завтра
	now = time.Date(2026, 8, 29, 14, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 8, 30, 2, 0, 0, 0, loc), j.nextRun(now))

	// Ровно в 02:00 - уже поздно, запуск завтра
	now = time.Date(2026, 8, 29, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 8, 30, 2, 0, 0, 0, loc), j.nextRun(now))

	// Переход через конец месяца
	now = time.Date(2026, 8, 31, 23, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 9, 1, 2, 0, 0, 0, loc), j.nextRun(now))
}

// Пока одна уборка идет, вторая не встает в очередь, а пропускается
func TestSweep_OverlapSkipped(t *testing.T) {
	repo := &stubTokenRepo{block: make(chan struct{})}
	j := NewTokenJanitor(nil, repo, 2)

	done := make(chan struct{})
	go func() {
		j.Sweep() // висит на заглушке
		close(done)
	}()

	// Дожидаемся, пока первая уборка точно начнется
	for repo.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	j.Sweep() // должна пропуститься, не дойдя до репозитория
	assert.Equal(t, 1, repo.callCount())

	close(repo.block)
	<-done
	assert.Equal(t, 1, repo.callCount())
}

func TestSweep_Sequential(t *testing.T) {
	repo := &stubTokenRepo{deleted: 3}
	j := NewTokenJanitor(nil, repo, 2)

	j.Sweep()
	j.Sweep()
	assert.Equal(t, 2, repo.callCount())
}
