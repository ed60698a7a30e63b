package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Moti-Eli/edu-plus/internal/models"
	"github.com/Moti-Eli/edu-plus/pkg/config"
	appErrors "github.com/Moti-Eli/edu-plus/pkg/errors"
)

const defaultAssistantPrompt = "אתה עוזר חכם למערכת ניהול נוכחות מדריכים. ענה בעברית, בקצרה ולעניין, על סמך הנתונים שסופקו בלבד."

type snapshotProvider interface {
	Snapshot(ctx context.Context) (*StatisticsInput, error)
}

type recentAttendanceSource interface {
	ListLatest(ctx context.Context, limit int) ([]models.AttendanceRecord, error)
}

type recentAdminSource interface {
	ListLatest(ctx context.Context, limit int) ([]models.AdminAttendanceRecord, error)
}

// assistantRecentLimit bounds how many raw reports the digest carries.
const assistantRecentLimit = 100

type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// AssistantService answers admin questions about the attendance data by
// calling an OpenAI-compatible chat completion endpoint with a Hebrew data
// digest as context.
type AssistantService struct {
	stats      snapshotProvider
	attendance recentAttendanceSource
	admin      recentAdminSource
	cfg        config.AssistantConfig
	client     *http.Client
	logger     *zap.Logger
}

// NewAssistantService constructs the assistant service.
func NewAssistantService(stats snapshotProvider, attendance recentAttendanceSource, admin recentAdminSource, cfg config.AssistantConfig, logger *zap.Logger) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AssistantService{
		stats:      stats,
		attendance: attendance,
		admin:      admin,
		cfg:        cfg,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Enabled reports whether the assistant is switched on.
func (s *AssistantService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// Ask sends the question plus a digest of the current attendance data to the
// model and returns its answer. An apiKey supplied with the request overrides
// the configured key.
func (s *AssistantService) Ask(ctx context.Context, question, apiKey string) (string, error) {
	if !s.Enabled() {
		return "", appErrors.ErrNotFound.Clone("assistant is disabled")
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", appErrors.ErrValidation.Clone("question is required")
	}
	if apiKey == "" {
		apiKey = s.cfg.APIKey
	}
	if apiKey == "" {
		return "", appErrors.ErrValidation.Clone("missing assistant API key")
	}

	digest, err := s.buildDigest(ctx)
	if err != nil {
		return "", err
	}

	systemPrompt := s.cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultAssistantPrompt
	}

	payload := chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: systemPrompt + "\n\nנתוני המערכת:\n" + digest},
			{Role: "user", Content: question},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode assistant request")
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build assistant request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "assistant request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read assistant response")
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode assistant response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return "", appErrors.ErrUnauthorized.Clone("assistant API key was rejected")
	}
	if resp.StatusCode != http.StatusOK {
		message := resp.Status
		if completion.Error != nil && completion.Error.Message != "" {
			message = completion.Error.Message
		}
		s.logger.Warn("assistant upstream error", zap.Int("status", resp.StatusCode), zap.String("message", message))
		return "", appErrors.ErrInternal.Clone("assistant request failed: " + message)
	}
	if len(completion.Choices) == 0 {
		return "", appErrors.ErrInternal.Clone("assistant returned no answer")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// buildDigest renders a compact Hebrew summary of the data the assistant is
// allowed to see: the reconciled all-time rollup plus the weekly plan.
func (s *AssistantService) buildDigest(ctx context.Context) (string, error) {
	input, err := s.stats.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	result := ComputeStatistics(*input)

	var b strings.Builder
	fmt.Fprintf(&b, "סה\"כ שעות: %s, מדריכים פעילים: %d, בתי ספר פעילים: %d\n",
		formatHours(result.Totals.TotalHours), result.Totals.ActiveInstructors, result.Totals.ActiveSchools)

	b.WriteString("מדריכים:\n")
	for _, entry := range result.Instructors {
		fmt.Fprintf(&b, "- %s: שעות מדריך %s (%d דיווחים), שעות מנהל %s (%d דיווחים)",
			entry.Name, formatHours(entry.InstructorHours), entry.InstructorReports,
			formatHours(entry.AdminHours), entry.AdminReports)
		if entry.Mismatch {
			b.WriteString(" [אי התאמה]")
		}
		b.WriteString("\n")
	}

	b.WriteString("בתי ספר:\n")
	for _, entry := range result.Schools {
		fmt.Fprintf(&b, "- %s (%s): שעות מדריך %s, שעות מנהל %s\n",
			entry.School, entry.City, formatHours(entry.InstructorHours), formatHours(entry.AdminHours))
	}

	b.WriteString("מערכת שבועית:\n")
	for _, entry := range input.Schedules {
		name := ""
		if entry.InstructorName != nil {
			name = *entry.InstructorName
		}
		fmt.Fprintf(&b, "- יום %s: %s (%s), מדריך: %s\n", entry.DayOfWeek, entry.SchoolName, entry.City, name)
	}

	if s.attendance != nil {
		recent, err := s.attendance.ListLatest(ctx, assistantRecentLimit)
		if err != nil {
			return "", err
		}
		b.WriteString("דיווחים אחרונים:\n")
		for _, r := range recent {
			fmt.Fprintf(&b, "- %s: %s דיווח/ה %s שעות ב%s\n", r.Date, r.InstructorName, formatHours(float64(r.Hours)), r.SchoolName)
		}
	}
	if s.admin != nil {
		recent, err := s.admin.ListLatest(ctx, assistantRecentLimit)
		if err != nil {
			return "", err
		}
		b.WriteString("דיווחי מנהל אחרונים:\n")
		for _, r := range recent {
			fmt.Fprintf(&b, "- %s: %s שעות עבור %s ב%s\n", r.Date, formatHours(float64(r.Hours)), r.InstructorName, r.SchoolName)
		}
	}
	return b.String(), nil
}
