package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTask(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signup(t, "15551260001")

	resp := ts.api.Post("/api/tasks/2025-03-14", "Authorization: Bearer "+token,
		map[string]any{"text": "Buy groceries"})
	assert.Equal(t, http.StatusCreated, resp.Code)

	var envelope testEnvelope[TaskResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, "Buy groceries", envelope.Data.Text)
	assert.False(t, envelope.Data.Done)
	assert.Empty(t, envelope.Data.ReminderTime)
}

func TestAddTaskWithReminder(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signup(t, "15551260002")

	resp := ts.api.Post("/api/tasks/2025-03-14", "Authorization: Bearer "+token,
		map[string]any{"text": "Call dentist", "reminderTime": "09:30"})
	assert.Equal(t, http.StatusCreated, resp.Code)

	var envelope testEnvelope[TaskResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "09:30", envelope.Data.ReminderTime)
}

func TestAddTaskInvalidReminderTime(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signup(t, "15551260003")

	resp := ts.api.Post("/api/tasks/2025-03-14", "Authorization: Bearer "+token,
		map[string]any{"text": "Call dentist", "reminderTime": "9:30pm"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestAddTaskBadDate(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signup(t, "15551260004")

	resp := ts.api.Post("/api/tasks/not-a-date", "Authorization: Bearer "+token,
		map[string]any{"text": "Anything"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAddTaskNewestFirst(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signup(t, "15551260005")

	first := ts.api.Post("/api/tasks/2025-03-14", "Authorization: Bearer "+token,
		map[string]any{"text": "first"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := ts.api.Post("/api/tasks/2025-03-14", "Authorization: Bearer "+token,
		map[string]any{"text": "second"})
	require.Equal(t, http.StatusCreated, second.Code)

	doc := ts.api.Get("/api/data", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, doc.Code)

	var envelope testEnvelope[DocumentBody]
	require.NoError(t, json.Unmarshal(doc.Body.Bytes(), &envelope))

	tasks := envelope.Data.TasksByDate["2025-03-14"]
	require.Len(t, tasks, 2)
	assert.Equal(t, "second", tasks[0].Text)
	assert.Equal(t, "first", tasks[1].Text)
}

func TestUpdateTask(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signup(t, "15551260006")

	created := ts.api.Post("/api/tasks/2025-03-14", "Authorization: Bearer "+token,
		map[string]any{"text": "Water plants"})
	require.Equal(t, http.StatusCreated, created.Code)

	var createdEnv testEnvelope[TaskResponse]
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdEnv))
	taskID := createdEnv.Data.ID

	resp := ts.api.Patch("/api/tasks/2025-03-14/"+taskID, "Authorization: Bearer "+token,
		map[string]any{"text": "Water all plants", "done": true})
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[TaskResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, taskID, envelope.Data.ID)
	assert.Equal(t, "Water all plants", envelope.Data.Text)
	assert.True(t, envelope.Data.Done)
}

func TestUpdateTaskNotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signup(t, "15551260007")

	resp := ts.api.Patch("/api/tasks/2025-03-14/task_missing", "Authorization: Bearer "+token,
		map[string]any{"text": "Anything"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRemoveTask(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.signup(t, "15551260008")

	created := ts.api.Post("/api/tasks/2025-03-14", "Authorization: Bearer "+token,
		map[string]any{"text": "Take out trash"})
	require.Equal(t, http.StatusCreated, created.Code)

	var createdEnv testEnvelope[TaskResponse]
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdEnv))

	resp := ts.api.Delete("/api/tasks/2025-03-14/"+createdEnv.Data.ID,
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[struct {
		Date  string         `json:"date"`
		Tasks []TaskResponse `json:"tasks"`
	}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.Equal(t, "2025-03-14", envelope.Data.Date)
	assert.Empty(t, envelope.Data.Tasks)
}
