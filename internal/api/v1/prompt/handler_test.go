package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"promptvault-backend/internal/database"
	"promptvault-backend/internal/models"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(
		&models.User{},
		&models.Prompt{},
		&models.PromptVersion{},
		&models.Vote{},
		&models.Bookmark{},
	)
	err = db.AutoMigrate(
		&models.User{},
		&models.Prompt{},
		&models.PromptVersion{},
		&models.Vote{},
		&models.Bookmark{},
	)
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil
}

// setupRouter mounts the prompt routes behind a stub auth layer that injects
// the given user, the way AuthMiddleware does after validating a token.
func setupRouter(user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	})
	group := r.Group("/")
	RegisterRoutes(group)
	RegisterStaffRoutes(group)
	return r
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	return resp
}

func seedHandlerUsers() (owner, other, staff models.User) {
	owner = models.User{Username: "owner", Role: models.RoleUser}
	other = models.User{Username: "other", Role: models.RoleUser}
	staff = models.User{Username: "staff", Role: models.RoleStaff}
	database.DB.Create(&owner)
	database.DB.Create(&other)
	database.DB.Create(&staff)
	return owner, other, staff
}

func TestCreatePromptHandler(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedHandlerUsers()
	r := setupRouter(owner)

	body := `{"title": "Summarizer", "prompt_text": "Summarize the following.", "category": "writing", "is_public": true, "status": "approved"}`
	req, _ := http.NewRequest(http.MethodPost, "/prompts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeEnvelope(t, w)
	var created PromptResponse
	assert.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "Summarizer", created.Title)
	assert.Equal(t, "owner", created.Username)
	// Regular users cannot pick their own moderation status
	assert.Equal(t, models.PromptStatusPending, created.Status)
}

func TestCreatePromptHandlerPrivateAutoApproved(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedHandlerUsers()
	r := setupRouter(owner)

	body := `{"title": "Notes", "prompt_text": "text", "is_public": false}`
	req, _ := http.NewRequest(http.MethodPost, "/prompts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeEnvelope(t, w)
	var created PromptResponse
	assert.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, models.PromptStatusApproved, created.Status)
	assert.False(t, created.IsPublic)
}

func TestCreatePromptHandlerValidation(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedHandlerUsers()
	r := setupRouter(owner)

	tests := []struct {
		name string
		body string
	}{
		{"Missing title", `{"prompt_text": "text"}`},
		{"Missing prompt text", `{"title": "T"}`},
		{"Bad status", `{"title": "T", "prompt_text": "text", "status": "published"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/prompts", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreatePromptHandlerUpsert(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedHandlerUsers()
	r := setupRouter(owner)

	prompt := models.Prompt{
		UserID: owner.ID, Title: "Before", PromptText: "b",
		IsPublic: true, Status: models.PromptStatusApproved,
	}
	database.DB.Create(&prompt)

	body := fmt.Sprintf(`{"id": %d, "title": "After", "prompt_text": "b", "is_public": true}`, prompt.ID)
	req, _ := http.NewRequest(http.MethodPost, "/prompts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// An id in the payload edits in place, so this is a 200 not a 201
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	var updated PromptResponse
	assert.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, prompt.ID, updated.ID)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, models.PromptStatusPending, updated.Status)
}

func TestListPromptsHandlerVisibility(t *testing.T) {
	setupTestDB()
	owner, other, staff := seedHandlerUsers()

	prompts := []models.Prompt{
		{UserID: owner.ID, Title: "Approved", PromptText: "b", IsPublic: true, Status: models.PromptStatusApproved, CopyCount: 5},
		{UserID: owner.ID, Title: "Pending", PromptText: "b", IsPublic: true, Status: models.PromptStatusPending},
		{UserID: owner.ID, Title: "Private", PromptText: "b", IsPublic: false, Status: models.PromptStatusApproved},
	}
	for i := range prompts {
		database.DB.Create(&prompts[i])
	}

	list := func(user models.User, query string) []PromptResponse {
		r := setupRouter(user)
		req, _ := http.NewRequest(http.MethodGet, "/prompts"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeEnvelope(t, w)
		var items []PromptResponse
		assert.NoError(t, json.Unmarshal(resp.Data, &items))
		return items
	}

	items := list(other, "")
	assert.Len(t, items, 1)
	assert.Equal(t, "Approved", items[0].Title)
	assert.Equal(t, "owner", items[0].Username)

	items = list(owner, "?mine=1")
	assert.Len(t, items, 3)

	items = list(staff, "")
	assert.Len(t, items, 2)

	items = list(staff, "?username=owner")
	assert.Len(t, items, 3)
}

func TestUpvoteHandlerToggle(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedHandlerUsers()
	r := setupRouter(owner)

	prompt := models.Prompt{
		UserID: owner.ID, Title: "P", PromptText: "b",
		IsPublic: true, Status: models.PromptStatusApproved,
	}
	database.DB.Create(&prompt)

	upvote := func() PromptResponse {
		req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/prompts/%d/upvote", prompt.ID), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeEnvelope(t, w)
		var p PromptResponse
		assert.NoError(t, json.Unmarshal(resp.Data, &p))
		return p
	}

	p := upvote()
	assert.Equal(t, 1, p.LikeCount)
	assert.Equal(t, 1, p.Vote)
	assert.Equal(t, 1, p.UserVote)

	p = upvote()
	assert.Equal(t, 0, p.LikeCount)
	assert.Equal(t, 0, p.Vote)
	assert.Equal(t, 0, p.UserVote)
}

func TestCopyHandler(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedHandlerUsers()
	r := setupRouter(owner)

	prompt := models.Prompt{
		UserID: owner.ID, Title: "P", PromptText: "b",
		IsPublic: true, Status: models.PromptStatusApproved,
	}
	database.DB.Create(&prompt)

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/prompts/%d/copy", prompt.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	var count CopyCountResponse
	assert.NoError(t, json.Unmarshal(resp.Data, &count))
	assert.Equal(t, 1, count.CopyCount)

	req, _ = http.NewRequest(http.MethodPost, "/prompts/9999/copy", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryHandler(t *testing.T) {
	setupTestDB()
	owner, other, _ := seedHandlerUsers()

	prompt := models.Prompt{
		UserID: owner.ID, Title: "P", PromptText: "b",
		IsPublic: true, Status: models.PromptStatusApproved,
	}
	database.DB.Create(&prompt)

	r := setupRouter(owner)
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/prompts/%d/history", prompt.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// No versions yet still answers an empty list, not null
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "[]", string(resp.Data))

	// Strangers may view the prompt but not its history
	r = setupRouter(other)
	req, _ = http.NewRequest(http.MethodGet, fmt.Sprintf("/prompts/%d/history", prompt.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestModerationHandlers(t *testing.T) {
	setupTestDB()
	owner, _, staff := seedHandlerUsers()
	r := setupRouter(staff)

	prompt := models.Prompt{
		UserID: owner.ID, Title: "P", PromptText: "b",
		IsPublic: true, Status: models.PromptStatusPending,
	}
	database.DB.Create(&prompt)

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/prompts/%d/approve", prompt.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Approving an approved prompt conflicts
	req, _ = http.NewRequest(http.MethodPost, fmt.Sprintf("/prompts/%d/approve", prompt.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	req, _ = http.NewRequest(http.MethodPost, fmt.Sprintf("/prompts/%d/reject", prompt.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest(http.MethodPost, "/prompts/9999/approve", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRevertHandlerNotFound(t *testing.T) {
	setupTestDB()
	owner, _, _ := seedHandlerUsers()
	r := setupRouter(owner)

	prompt := models.Prompt{
		UserID: owner.ID, Title: "P", PromptText: "b",
		IsPublic: true, Status: models.PromptStatusApproved,
	}
	database.DB.Create(&prompt)

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/prompts/%d/revert/9999", prompt.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
