package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/memory"
	"github.com/ahashem12/LaunchpadX-sub001/internal/present/rest/middleware"
	"github.com/ahashem12/LaunchpadX-sub001/internal/service"
	"github.com/ahashem12/LaunchpadX-sub001/internal/usecase"
)

const (
	founder = "demo-founder"
	builder = "demo-builder"
)

type fakeRealtime struct{}

// Realtime answers every listen request with one event per role for the
// builder and one for somebody else.
func (fakeRealtime) Realtime(ctx context.Context, input <-chan []string, output chan<- domain.ApplicationEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case roles, ok := <-input:
			if !ok {
				return
			}
			for _, role := range roles {
				for _, applicant := range []string{"someone-else", builder} {
					event := domain.ApplicationEvent{
						Type: usecase.EventApplicationAccepted,
						Application: domain.RoleApplication{
							ID:          role + "-" + applicant,
							RoleID:      role,
							ApplicantID: applicant,
							Status:      domain.ApplicationAccepted,
						},
					}
					select {
					case output <- event:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}
}

type testServer struct {
	e    *echo.Echo
	auth *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithConfig(t, domain.Config{
		SiteName: "LaunchpadX",
		MockData: true,
		Features: map[string]bool{domain.FeatureAgreements: true},
	})
}

func newTestServerWithConfig(t *testing.T, config domain.Config) *testServer {
	t.Helper()

	db := memory.New()
	memory.Seed(db)

	auth := service.NewAuthService("handler-test-secret-handler-test-secret", "authenticated", time.Minute)
	mw := middleware.NewAuthMiddleware(auth)

	h := NewHandler(
		config,
		usecase.NewProjectUsecase(db.Projects(), db.Members()),
		usecase.NewMemberUsecase(db.Members(), db.Projects()),
		usecase.NewRoleUsecase(db.Roles(), db.Applications(), db.Projects(), db.Members(), nil),
		usecase.NewNextStepUsecase(db.NextSteps(), db.Projects(), db.Members()),
		usecase.NewProfileUsecase(db.Profiles()),
		usecase.NewEcosystemUsecase(db.Ecosystem()),
		fakeRealtime{},
	)

	e := echo.New()
	e.Use(mw.IdentifyIdentity)
	h.RegisterRoutes(e, mw.RequireAuth)

	return &testServer{e: e, auth: auth}
}

func (s *testServer) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := s.auth.IssueToken(userID, userID+"@example.com", time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, body, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(t, userID))
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestListProjects(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/projects?category=energy", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	projects := decode[[]domain.Project](t, rec)
	require.Len(t, projects, 1)
	assert.Equal(t, "demo-project", projects[0].ID)
}

func TestListProjectsOwnedByMeRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/projects?owner=me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/projects?owner=me", "", builder)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Project](t, rec))
}

func TestCreateProjectRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/projects", `{"title":"New"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domain.CodeUnauthorized, decode[errorBody](t, rec).Code)
}

func TestCreateProjectWithInvalidToken(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"title":"New"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/projects", `{"title":"Tidal","category":"energy"}`, builder)
	require.Equal(t, http.StatusCreated, rec.Code)
	project := decode[domain.Project](t, rec)
	assert.Equal(t, builder, project.OwnerID)

	rec = s.do(t, http.MethodGet, "/api/projects/"+project.ID+"/members", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	members := decode[[]domain.ProjectMember](t, rec)
	require.Len(t, members, 1)
	assert.Equal(t, domain.MemberRoleOwner, members[0].Role)

	rec = s.do(t, http.MethodPut, "/api/projects/"+project.ID, `{"stage":"mvp"}`, builder)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mvp", decode[domain.Project](t, rec).Stage)

	rec = s.do(t, http.MethodDelete, "/api/projects/"+project.ID, "", founder)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, domain.CodeInsufficientPermissions, decode[errorBody](t, rec).Code)

	rec = s.do(t, http.MethodDelete, "/api/projects/"+project.ID, "", builder)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/projects/"+project.ID, "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.CodeProjectNotFound, decode[errorBody](t, rec).Code)
}

func TestCreateProjectValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/projects", `{"title":"  "}`, builder)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, domain.CodeValidationFailed, body.Code)
	assert.Contains(t, body.Fields, "title")
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/projects", `{"title":`, builder)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.CodeInvalidRequest, decode[errorBody](t, rec).Code)
}

func TestApplicationFlow(t *testing.T) {
	s := newTestServer(t)
	role := "/api/roles/demo-role-cto"

	rec := s.do(t, http.MethodGet, role+"/application", "", builder)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[ApplicationResponse](t, rec).Application)

	rec = s.do(t, http.MethodPost, role+"/apply", `{"message":"I ship Go"}`, builder)
	require.Equal(t, http.StatusCreated, rec.Code)
	app := decode[domain.RoleApplication](t, rec)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, "I ship Go", app.Message)

	rec = s.do(t, http.MethodPost, role+"/apply", "", builder)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domain.CodeAlreadyApplied, decode[errorBody](t, rec).Code)

	rec = s.do(t, http.MethodGet, role+"/application", "", builder)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decode[ApplicationResponse](t, rec).Application
	require.NotNil(t, current)
	assert.Equal(t, app.ID, current.ID)

	rec = s.do(t, http.MethodGet, role+"/applications", "", builder)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, role+"/applications", "", founder)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.RoleApplication](t, rec), 1)

	rec = s.do(t, http.MethodPut, "/api/applications/"+app.ID, `{"status":"accepted"}`, founder)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ApplicationAccepted, decode[domain.RoleApplication](t, rec).Status)

	rec = s.do(t, http.MethodGet, role, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RoleStatusFilled, decode[domain.Role](t, rec).Status)

	rec = s.do(t, http.MethodPost, role+"/apply", "", "late-applicant")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domain.CodeRoleNotOpen, decode[errorBody](t, rec).Code)
}

func TestGetApplicationUnknownRole(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/roles/missing/application", "", builder)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.CodeRoleNotFound, decode[errorBody](t, rec).Code)
}

func TestNextSteps(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/projects/demo-project/next-steps", `{"title":"Incorporate"}`, founder)
	require.Equal(t, http.StatusCreated, rec.Code)
	step := decode[domain.NextStep](t, rec)

	rec = s.do(t, http.MethodPut, "/api/next-steps/"+step.ID, `{"completed":true}`, founder)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[domain.NextStep](t, rec).Completed)

	rec = s.do(t, http.MethodDelete, "/api/next-steps/"+step.ID, "", builder)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/next-steps/"+step.ID, "", founder)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/projects/demo-project/next-steps", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.NextStep](t, rec), 1)
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/profile", "", "new-user")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.CodeProfileNotFound, decode[errorBody](t, rec).Code)

	rec = s.do(t, http.MethodPut, "/api/profile", `{"fullName":"New User","skills":["rust"]}`, "new-user")
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[domain.Profile](t, rec)
	assert.Equal(t, "new-user@example.com", profile.Email)
	assert.Equal(t, []string{"rust"}, profile.Skills)

	rec = s.do(t, http.MethodGet, "/api/profile", "", "new-user")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEcosystem(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/ecosystem?q=EQUITY", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]domain.EcosystemEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EcosystemLegal, entries[0].Kind)

	rec = s.do(t, http.MethodGet, "/api/ecosystem?kind=investor", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.CodeValidationFailed, decode[errorBody](t, rec).Code)
}

func TestValidateAgreement(t *testing.T) {
	s := newTestServer(t)

	body := `{
		"organization": {"name": "Solar Commons", "tokenName": "Sun", "tokenSymbol": "SUNSHINE", "tokenDecimals": 18,
			"coFounders": [{"userId": "a", "name": "A", "email": "a@example.com", "role": "CEO"}]},
		"equity": {"totalTokens": 1000, "allocations": [{"userId": "a", "percentage": 60, "tokenAmount": 600}]},
		"governance": {"model": "quadratic"}
	}`

	rec := s.do(t, http.MethodPost, "/api/agreements/validate?step=organization", body, "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[ValidationResponse](t, rec)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "tokenSymbol")
	assert.NotContains(t, result.Errors, "allocations")

	rec = s.do(t, http.MethodPost, "/api/agreements/validate?step=governance", body, "")
	require.Equal(t, http.StatusOK, rec.Code)
	result = decode[ValidationResponse](t, rec)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	rec = s.do(t, http.MethodPost, "/api/agreements/validate", body, "")
	require.Equal(t, http.StatusOK, rec.Code)
	result = decode[ValidationResponse](t, rec)
	assert.Contains(t, result.Errors, "allocations")
	assert.Contains(t, result.Errors, "tokenSymbol")

	rec = s.do(t, http.MethodPost, "/api/agreements/validate?step=signing", body, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateAgreementFeatureDisabled(t *testing.T) {
	s := newTestServerWithConfig(t, domain.Config{
		Features: map[string]bool{domain.FeatureAgreements: false},
	})

	rec := s.do(t, http.MethodPost, "/api/agreements/validate", `{"governance":{"model":"quadratic"}}`, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domain.CodeFeatureDisabled, decode[errorBody](t, rec).Code)
}

func TestRealtimeOnlyForwardsOwnApplications(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/realtime"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.token(t, builder))

	ws, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer ws.Close()

	require.NoError(t, ws.WriteJSON(Request{Type: "listen", Roles: []string{"demo-role-cto"}}))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event domain.ApplicationEvent
	require.NoError(t, ws.ReadJSON(&event))
	assert.Equal(t, builder, event.Application.ApplicantID)
	assert.Equal(t, "demo-role-cto", event.Application.RoleID)
}

func TestRealtimeRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/realtime"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
