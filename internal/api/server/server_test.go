package server_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-revshare-engine/internal/adapter"
	"github.com/feral-file/ff-revshare-engine/internal/api/rest"
	"github.com/feral-file/ff-revshare-engine/internal/api/server"
	"github.com/feral-file/ff-revshare-engine/internal/domain"
	"github.com/feral-file/ff-revshare-engine/internal/github"
	"github.com/feral-file/ff-revshare-engine/internal/logger"
	"github.com/feral-file/ff-revshare-engine/internal/mocks"
	"github.com/feral-file/ff-revshare-engine/internal/store/schema"
)

const (
	cronSecret    = "cron-secret"
	webhookSecret = "webhook-secret"
)

var now = time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServerMocks struct {
	ctrl        *gomock.Controller
	store       *mocks.MockStore
	distributor *mocks.MockDistributor
	issues      *mocks.MockIssueCache
	clock       *mocks.MockClock
	router      *gin.Engine
}

func setupTestServer(t *testing.T) *testServerMocks {
	ctrl := gomock.NewController(t)
	tm := &testServerMocks{
		ctrl:        ctrl,
		store:       mocks.NewMockStore(ctrl),
		distributor: mocks.NewMockDistributor(ctrl),
		issues:      mocks.NewMockIssueCache(ctrl),
		clock:       mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(now).AnyTimes()

	handler := rest.NewHandler(
		rest.Config{WebhookSecret: webhookSecret},
		tm.store,
		tm.distributor,
		tm.issues,
		adapter.NewJSON(),
		tm.clock,
	)
	tm.router = server.New(server.Config{CronSecret: cronSecret}, handler).Router()
	gin.SetMode(gin.TestMode)
	return tm
}

func (tm *testServerMocks) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func cronRequest(secret string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/distribute-dividends", nil)
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}
	return req
}

func webhookRequest(event, body string, sign bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/github/webhooks", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(github.HeaderEvent, event)
	req.Header.Set(github.HeaderDelivery, "72d3162e-cc78-11e3-81ab-4c9367dc0958")
	if sign {
		req.Header.Set(github.HeaderSignature, github.Sign(webhookSecret, []byte(body)))
	}
	return req
}

func TestDistributeDividends(t *testing.T) {
	tm := setupTestServer(t)
	roundID := uuid.MustParse("0b8c7f0e-4a4e-4e55-9d1f-7c3a2b1f0e9d")

	tm.distributor.EXPECT().Distribute(gomock.Any()).Return(&domain.DistributionSummary{
		RoundID:         roundID,
		Revenue:         1000,
		DividendPool:    750,
		HoldersReceived: 2,
		Message:         "Dividend distribution completed",
	}, nil)

	w := tm.do(cronRequest(cronSecret))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status": "success",
		"message": "Dividend distribution completed",
		"revenue": "1000",
		"dividendPool": "750",
		"holdersReceived": 2,
		"holdersFailed": 0,
		"holdersSkipped": 0,
		"roundId": "0b8c7f0e-4a4e-4e55-9d1f-7c3a2b1f0e9d"
	}`, w.Body.String())
}

func TestDistributeDividends_NoRevenue(t *testing.T) {
	tm := setupTestServer(t)
	tm.distributor.EXPECT().Distribute(gomock.Any()).Return(&domain.DistributionSummary{
		RoundID: uuid.New(),
		Skipped: true,
		Message: "No revenue to distribute this period",
	}, nil)

	w := tm.do(cronRequest(cronSecret))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status": "success",
		"message": "No revenue to distribute this period",
		"revenue": "0",
		"dividendPool": "0",
		"holdersReceived": 0,
		"holdersFailed": 0,
		"holdersSkipped": 0
	}`, w.Body.String())
}

func TestDistributeDividends_Unauthorized(t *testing.T) {
	tm := setupTestServer(t)
	// no Distribute call expected

	assert.Equal(t, http.StatusUnauthorized, tm.do(cronRequest("")).Code)
	assert.Equal(t, http.StatusUnauthorized, tm.do(cronRequest("wrong")).Code)
}

func TestDistributeDividends_Failure(t *testing.T) {
	tm := setupTestServer(t)
	tm.distributor.EXPECT().Distribute(gomock.Any()).Return(nil, errors.New("db down"))

	w := tm.do(cronRequest(cronSecret))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{
		"status": "error",
		"message": "Dividend distribution failed",
		"revenue": "",
		"dividendPool": "",
		"holdersReceived": 0,
		"holdersFailed": 0,
		"holdersSkipped": 0
	}`, w.Body.String())
}

func (tm *testServerMocks) expectDelivery(event, action string) {
	tm.store.EXPECT().
		RecordWebhookDelivery(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d schema.GitHubWebhookDelivery) (bool, error) {
			if d.DeliveryID != "72d3162e-cc78-11e3-81ab-4c9367dc0958" || d.Event != event || d.Action != action {
				return false, errors.New("unexpected delivery")
			}
			if len(d.ID) != 26 || !d.ReceivedAt.Equal(now) {
				return false, errors.New("unexpected delivery id or time")
			}
			return false, nil
		})
}

const issuesClosedBody = `{
	"action": "closed",
	"issue": {"number": 42, "state": "closed", "closed_at": "2026-04-01T08:30:00Z"},
	"repository": {"id": 987654, "full_name": "b0ase/kintsugi"}
}`

func TestReceiveGitHubWebhook_IssueClosed(t *testing.T) {
	tm := setupTestServer(t)
	tm.expectDelivery("issues", "closed")
	tm.issues.EXPECT().
		HandleIssueEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event github.IssuesEvent) error {
			assert.Equal(t, 42, event.Issue.Number)
			assert.Equal(t, int64(987654), event.Repository.ID)
			require.NotNil(t, event.Issue.ClosedAt)
			assert.Equal(t, time.Date(2026, 4, 1, 8, 30, 0, 0, time.UTC), event.Issue.ClosedAt.UTC())
			return nil
		})

	w := tm.do(webhookRequest("issues", issuesClosedBody, true))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"event":"issues","action":"closed"}`, w.Body.String())
}

func TestReceiveGitHubWebhook_Redelivery(t *testing.T) {
	tm := setupTestServer(t)
	tm.store.EXPECT().RecordWebhookDelivery(gomock.Any(), gomock.Any()).Return(true, nil)
	tm.issues.EXPECT().HandleIssueEvent(gomock.Any(), gomock.Any()).Return(nil)

	w := tm.do(webhookRequest("issues", issuesClosedBody, true))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReceiveGitHubWebhook_AuditFailureIsNotFatal(t *testing.T) {
	tm := setupTestServer(t)
	tm.store.EXPECT().RecordWebhookDelivery(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
	tm.issues.EXPECT().HandleIssueEvent(gomock.Any(), gomock.Any()).Return(nil)

	w := tm.do(webhookRequest("issues", issuesClosedBody, true))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReceiveGitHubWebhook_PullRequestMerged(t *testing.T) {
	tm := setupTestServer(t)
	body := `{
		"action": "closed",
		"pull_request": {"number": 10, "merged": true, "body": "Fixes #42"},
		"repository": {"id": 987654, "full_name": "b0ase/kintsugi"}
	}`
	tm.expectDelivery("pull_request", "closed")
	tm.issues.EXPECT().
		HandlePullRequestEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event github.PullRequestEvent) ([]int, error) {
			assert.True(t, event.MergedClose())
			assert.Equal(t, "Fixes #42", event.BodyText())
			return []int{42}, nil
		})

	w := tm.do(webhookRequest("pull_request", body, true))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"event":"pull_request","action":"closed","merged":true}`, w.Body.String())
}

func TestReceiveGitHubWebhook_PullRequestNotMerged(t *testing.T) {
	tm := setupTestServer(t)
	body := `{"action":"opened","pull_request":{"number":10,"merged":false,"body":null},"repository":{"id":1,"full_name":"b0ase/kintsugi"}}`
	tm.expectDelivery("pull_request", "opened")
	tm.issues.EXPECT().HandlePullRequestEvent(gomock.Any(), gomock.Any()).Return(nil, nil)

	w := tm.do(webhookRequest("pull_request", body, true))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"event":"pull_request","action":"opened","merged":false}`, w.Body.String())
}

func TestReceiveGitHubWebhook_Ping(t *testing.T) {
	tm := setupTestServer(t)
	body := `{"zen":"Design for failure.","hook_id":123}`
	tm.expectDelivery("ping", "")

	w := tm.do(webhookRequest("ping", body, true))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"event":"ping","zen":"Design for failure."}`, w.Body.String())
}

func TestReceiveGitHubWebhook_UnknownEventIgnored(t *testing.T) {
	tm := setupTestServer(t)
	tm.expectDelivery("push", "")

	w := tm.do(webhookRequest("push", `{"ref":"refs/heads/main"}`, true))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"event":"push","message":"Event ignored"}`, w.Body.String())
}

func TestReceiveGitHubWebhook_InvalidSignature(t *testing.T) {
	tm := setupTestServer(t)

	// unsigned
	w := tm.do(webhookRequest("issues", issuesClosedBody, false))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// signed, then tampered by one byte
	req := webhookRequest("issues", issuesClosedBody, true)
	tampered := []byte(issuesClosedBody)
	tampered[len(tampered)-3] = 'X'
	req.Body = io.NopCloser(bytes.NewReader(tampered))
	w = tm.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReceiveGitHubWebhook_MalformedPayload(t *testing.T) {
	tm := setupTestServer(t)

	w := tm.do(webhookRequest("issues", `{"action":`, true))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiveGitHubWebhook_ProcessingFailure(t *testing.T) {
	tm := setupTestServer(t)
	tm.expectDelivery("issues", "closed")
	tm.issues.EXPECT().HandleIssueEvent(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	w := tm.do(webhookRequest("issues", issuesClosedBody, true))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetGitHubWebhookStatus(t *testing.T) {
	tm := setupTestServer(t)

	w := tm.do(httptest.NewRequest(http.MethodGet, "/api/v1/github/webhooks", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"active"`)
	assert.Contains(t, w.Body.String(), `"events":["issues","pull_request","ping"]`)
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestServer(t)

	tm.store.EXPECT().Ping(gomock.Any()).Return(nil)
	w := tm.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ff-revshare-api","database":"ok"}`, w.Body.String())

	tm.store.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	w = tm.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNoRoute(t *testing.T) {
	tm := setupTestServer(t)

	w := tm.do(httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
