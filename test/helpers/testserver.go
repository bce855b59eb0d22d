package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"propel_backend/internal/app"
	"propel_backend/internal/config"
	"propel_backend/internal/models"
)

// TestServer поднимает полный HTTP-стек приложения поверх тестовой БД.
// Тесты ходят в него обычным http-клиентом, как реальный фронтенд.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Cfg    *config.Config
}

// NewTestServer подключается к тестовой MySQL из TEST_DATABASE_DSN,
// прогоняет миграции и стартует httptest.Server с тем же роутером,
// что и боевой процесс. Без заданного DSN тесты пропускаются.
func NewTestServer(t *testing.T) *TestServer {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN не задан, интеграционные тесты пропущены")
	}

	config.LoadConfig()
	cfg := config.AppConfig
	cfg.Database.DSN = dsn
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "integration-test-secret"
	}
	// Внешние зависимости в тестах выключены: письма уходят в noop,
	// очередь и rate-limit не поднимаются
	cfg.Email.Enabled = false
	cfg.Queue.URL = ""
	cfg.Redis.Addr = ""
	cfg.Storage.BasePath = t.TempDir()

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.RefreshToken{},
		&models.Property{},
		&models.PropertyDetail{},
		&models.PropertyImage{},
	); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
		Cfg:    cfg,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// SendRequest отправляет JSON-запрос с опциональным Bearer-токеном
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	return ts.SendRequestWithCookies(t, method, path, token, nil, body)
}

// SendRequestWithCookies - то же, но с куками запроса; нужно для
// сценариев с refresh-токеном, который живет в HTTP-only cookie
func (ts *TestServer) SendRequestWithCookies(t *testing.T, method, path, token string, cookies []*http.Cookie, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
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
	for _, c := range cookies {
		req.AddCookie(c)
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

// mustUnmarshal парсит JSON-ответ, падая при ошибке
func mustUnmarshal(t *testing.T, body string, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		t.Fatalf("Не удалось распарсить JSON-ответ %q: %v", body, err)
	}
}

// ExtractCookie достает куку из Set-Cookie ответа, nil если нет
func ExtractCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
