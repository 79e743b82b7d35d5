package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"olympschools_backend/database"
	"olympschools_backend/internal/app"
	"olympschools_backend/internal/config"
	"olympschools_backend/pkg/contextkeys"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer - обертка httptest-сервера над реальным роутером приложения.
// Каждый тест работает внутри своей транзакции: BeginTransaction открывает
// ее и подкладывает в контекст каждого входящего запроса (DBMiddleware
// подхватывает), RollbackTransaction откатывает все изменения теста.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB

	// Пока у сервера есть активная транзакция, он обслуживает один тест.
	// sessionMu удерживается от BeginTransaction до RollbackTransaction.
	sessionMu sync.Mutex

	txMu     sync.RWMutex
	activeTx *gorm.DB
}

// NewTestServer создает и настраивает тестовый сервер и БД
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Не удалось выполнить миграции тестовой БД: %v", err)
	}

	router, _ := app.SetupRouter(cfg, db)

	ts := &TestServer{DB: db}

	// Оборачиваем роутер: если у сервера есть активная тестовая транзакция,
	// кладем ее в контекст запроса - дальше ее подхватит DBMiddleware
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.txMu.RLock()
		tx := ts.activeTx
		ts.txMu.RUnlock()

		if tx != nil {
			ctx := context.WithValue(r.Context(), contextkeys.DBContextKey, tx)
			r = r.WithContext(ctx)
		}
		router.ServeHTTP(w, r)
	}))

	log.Printf("✅ Тестовый сервер запущен, тестовая БД (%s) настроена.", dsn)

	return ts
}

// BeginTransaction открывает транзакцию теста и делает ее активной для
// всех запросов к серверу. Тесты сериализуются: следующий BeginTransaction
// ждет, пока текущий тест не откатит свою транзакцию.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	ts.sessionMu.Lock()

	tx := ts.DB.Begin()
	if tx.Error != nil {
		ts.sessionMu.Unlock()
		t.Fatalf("Не удалось открыть тестовую транзакцию: %v", tx.Error)
	}

	ts.txMu.Lock()
	ts.activeTx = tx
	ts.txMu.Unlock()

	return tx
}

// RollbackTransaction откатывает транзакцию теста и освобождает сервер
func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	ts.txMu.Lock()
	ts.activeTx = nil
	ts.txMu.Unlock()

	if err := tx.Rollback().Error; err != nil {
		t.Logf("Откат тестовой транзакции: %v", err)
	}

	ts.sessionMu.Unlock()
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// SendRequest отправляет HTTP-запрос тестовому серверу и возвращает ответ
// вместе с прочитанным телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader = nil
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}
