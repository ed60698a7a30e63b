package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
	"github.com/Moti-Eli/edu-plus/pkg/config"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

type stubSnapshotProvider struct{}

func (stubSnapshotProvider) Snapshot(ctx context.Context) (*StatisticsInput, error) {
	return &StatisticsInput{
		InstructorRecords: []models.AttendanceRecord{
			{ID: "r1", InstructorName: "אורה לוי", InstructorEmail: "ora@example.com", SchoolName: "ענבלים", City: "מודיעין", Date: "2025-06-01", Hours: 3},
		},
	}, nil
}

type stubRecentAttendance struct{}

func (stubRecentAttendance) ListLatest(ctx context.Context, limit int) ([]models.AttendanceRecord, error) {
	return []models.AttendanceRecord{
		{ID: "r1", InstructorName: "אורה לוי", SchoolName: "ענבלים", Date: "2025-06-01", Hours: 3},
	}, nil
}

type stubRecentAdmin struct{}

func (stubRecentAdmin) ListLatest(ctx context.Context, limit int) ([]models.AdminAttendanceRecord, error) {
	return []models.AdminAttendanceRecord{
		{ID: "a1", InstructorName: "בני כהן", SchoolName: "ניצנים", Date: "2025-06-02", Hours: 2},
	}, nil
}

func newAssistantServiceForTest(baseURL string, enabled bool) *AssistantService {
	return NewAssistantService(stubSnapshotProvider{}, stubRecentAttendance{}, stubRecentAdmin{}, config.AssistantConfig{
		Enabled: enabled,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: baseURL,
	}, zap.NewNop())
}

func TestAssistantServiceAsk(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatCompletionMessage `json:"message"`
			}{
				{Message: chatCompletionMessage{Role: "assistant", Content: "אורה לוי לימדה 3 שעות"}},
			},
		})
	}))
	defer server.Close()

	svc := newAssistantServiceForTest(server.URL, true)
	answer, err := svc.Ask(context.Background(), "כמה שעות לימדה אורה?", "")
	require.NoError(t, err)
	assert.Equal(t, "אורה לוי לימדה 3 שעות", answer)
	assert.Equal(t, "Bearer test-key", gotAuth)

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "אורה לוי")
	assert.Contains(t, gotReq.Messages[0].Content, "דיווחים אחרונים")
	assert.Contains(t, gotReq.Messages[0].Content, "בני כהן")
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
}

func TestAssistantServiceRequestKeyOverridesConfig(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatCompletionMessage `json:"message"`
			}{
				{Message: chatCompletionMessage{Content: "תשובה"}},
			},
		})
	}))
	defer server.Close()

	svc := newAssistantServiceForTest(server.URL, true)
	_, err := svc.Ask(context.Background(), "שאלה", "override-key")
	require.NoError(t, err)
	assert.Equal(t, "Bearer override-key", gotAuth)
}

func TestAssistantServiceRejectedKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	svc := newAssistantServiceForTest(server.URL, true)
	_, err := svc.Ask(context.Background(), "שאלה", "")
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAssistantServiceDisabled(t *testing.T) {
	svc := newAssistantServiceForTest("http://localhost", false)
	_, err := svc.Ask(context.Background(), "שאלה", "")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestAssistantServiceEmptyQuestion(t *testing.T) {
	svc := newAssistantServiceForTest("http://localhost", true)
	_, err := svc.Ask(context.Background(), "   ", "")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
