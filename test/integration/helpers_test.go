package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"nihongo-server/internal/config"
	"nihongo-server/internal/handler"
	"nihongo-server/internal/middleware"
	"nihongo-server/internal/model"
	"nihongo-server/internal/router"
	"nihongo-server/internal/service"
)

// In-memory stores standing in for the Mongo collections, so the full
// HTTP stack can be exercised without a running database.

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]model.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]model.User{}}
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byEmail[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (m *memUsers) Insert(_ context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[u.Email]; exists {
		return model.User{}, model.ErrDuplicateEmail
	}
	u.ID = bson.NewObjectID()
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id string, role string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for email, u := range m.byEmail {
		if u.ID.Hex() == id {
			if u.Role == role {
				return false, nil
			}
			u.Role = role
			u.UpdatedAt = time.Now().UTC()
			m.byEmail[email] = u
			return true, nil
		}
	}
	return false, model.ErrUserNotFound
}

func (m *memUsers) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]model.User, 0, len(m.byEmail))
	for _, u := range m.byEmail {
		users = append(users, u)
	}
	return users, nil
}

type memVocabularies struct {
	mu      sync.Mutex
	entries []model.Vocabulary
}

func (m *memVocabularies) ListByLesson(_ context.Context, lessonNumber int) ([]model.Vocabulary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Vocabulary, 0)
	for _, e := range m.entries {
		if e.LessonNumber == lessonNumber {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memVocabularies) ListAll(_ context.Context) ([]model.Vocabulary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Vocabulary(nil), m.entries...), nil
}

func (m *memVocabularies) Insert(_ context.Context, entry model.Vocabulary) (model.Vocabulary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = bson.NewObjectID()
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memVocabularies) Update(_ context.Context, id string, entry model.Vocabulary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.ID.Hex() == id {
			entry.ID = e.ID
			entry.CreatedBy = e.CreatedBy
			entry.CreatedAt = e.CreatedAt
			m.entries[i] = entry
			return nil
		}
	}
	return model.ErrVocabularyNotFound
}

func (m *memVocabularies) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entries {
		if e.ID.Hex() == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return model.ErrVocabularyNotFound
}

func (m *memVocabularies) countForLesson(lessonNumber int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, e := range m.entries {
		if e.LessonNumber == lessonNumber {
			count++
		}
	}
	return count
}

type memLessons struct {
	mu           sync.Mutex
	lessons      []model.Lesson
	vocabularies *memVocabularies
}

func (m *memLessons) List(_ context.Context) ([]model.LessonSummary, error) {
	m.mu.Lock()
	lessons := append([]model.Lesson(nil), m.lessons...)
	m.mu.Unlock()

	out := make([]model.LessonSummary, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, model.LessonSummary{
			Lesson:          l,
			VocabularyCount: m.vocabularies.countForLesson(l.Number),
		})
	}
	return out, nil
}

func (m *memLessons) Insert(_ context.Context, lesson model.Lesson) (model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lesson.ID = bson.NewObjectID()
	m.lessons = append(m.lessons, lesson)
	return lesson, nil
}

func (m *memLessons) Update(_ context.Context, id string, name string, number int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.lessons {
		if l.ID.Hex() == id {
			m.lessons[i].Name = name
			m.lessons[i].Number = number
			return nil
		}
	}
	return model.ErrLessonNotFound
}

func (m *memLessons) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.lessons {
		if l.ID.Hex() == id {
			m.lessons = append(m.lessons[:i], m.lessons[i+1:]...)
			return nil
		}
	}
	return model.ErrLessonNotFound
}

type memTutorials struct {
	mu        sync.Mutex
	tutorials []model.Tutorial
}

func (m *memTutorials) List(_ context.Context) ([]model.Tutorial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Tutorial(nil), m.tutorials...), nil
}

func (m *memTutorials) Insert(_ context.Context, tutorial model.Tutorial) (model.Tutorial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tutorial.ID = bson.NewObjectID()
	m.tutorials = append(m.tutorials, tutorial)
	return tutorial, nil
}

func (m *memTutorials) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, tut := range m.tutorials {
		if tut.ID.Hex() == id {
			m.tutorials = append(m.tutorials[:i], m.tutorials[i+1:]...)
			return nil
		}
	}
	return model.ErrTutorialNotFound
}

type memAudit struct {
	mu      sync.Mutex
	entries []model.AuditEntry
}

func (m *memAudit) Insert(_ context.Context, entry model.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = bson.NewObjectID()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memAudit) ListRecent(_ context.Context, limit int) ([]model.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := append([]model.AuditEntry(nil), m.entries...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type stubHealth struct{}

func (stubHealth) Health(context.Context) error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Env:              "test",
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		JWTSecret:        "test-secret",
		TokenTTL:         time.Hour,
		BcryptCost:       4,
		CORSOrigins:      []string{"http://localhost:5173"},
		RateLimitRPM:     100000,
		AuthRateLimitRPM: 100000,
	}

	vocabularies := &memVocabularies{}
	auditService := service.NewAuditService(&memAudit{})
	authService := service.NewAuthService(newMemUsers(), auditService, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	lessonService := service.NewLessonService(&memLessons{vocabularies: vocabularies}, auditService)
	vocabularyService := service.NewVocabularyService(vocabularies, auditService)
	tutorialService := service.NewTutorialService(&memTutorials{}, auditService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	appRouter := router.New(cfg, stubHealth{}, authMiddleware, router.Handlers{
		Auth:       handler.NewAuthHandler(authService, cfg.Production()),
		User:       handler.NewUserHandler(authService),
		Lesson:     handler.NewLessonHandler(lessonService),
		Vocabulary: handler.NewVocabularyHandler(vocabularyService),
		Tutorial:   handler.NewTutorialHandler(tutorialService),
		Audit:      handler.NewAuditHandler(auditService),
	})

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)
	return server
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func postJSON(t *testing.T, url string, payload any, token string) (*http.Response, envelope) {
	t.Helper()
	return doJSON(t, http.MethodPost, url, payload, token)
}

func doJSON(t *testing.T, method string, url string, payload any, token string) (*http.Response, envelope) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed envelope
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

func registerUser(t *testing.T, serverURL string, email string, password string, role string) {
	t.Helper()

	resp, _ := postJSON(t, serverURL+"/api/register", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": password,
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func loginUser(t *testing.T, serverURL string, email string, password string) string {
	t.Helper()

	resp, parsed := postJSON(t, serverURL+"/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}
