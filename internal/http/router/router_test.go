package router

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucsb-cs156/campus-api/internal/auth"
	"github.com/ucsb-cs156/campus-api/internal/catalog"
	"github.com/ucsb-cs156/campus-api/internal/http/handlers/system"
	"github.com/ucsb-cs156/campus-api/internal/types"
)

const (
	testSecret = "test-secret"
	testIssuer = "campus-api"
)

type testServer struct {
	t      *testing.T
	srv    *httptest.Server
	stores catalog.Stores
	admin  string
	viewer string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	stores := catalog.MemoryStores()
	h := New(Deps{
		Stores:   stores,
		Verifier: auth.NewVerifier(testSecret, testIssuer, []string{"phtcon@ucsb.edu"}),
		Info:     system.Info{Env: "dev", Version: "test", StorageDriver: "memory"},
		Registry: prometheus.NewRegistry(),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	signer := auth.NewSigner(testSecret, testIssuer)
	admin, err := signer.Sign("phtcon@ucsb.edu", "Phill Conrad", nil, time.Hour)
	require.NoError(t, err)
	viewer, err := signer.Sign("cgaucho@ucsb.edu", "Chris Gaucho", nil, time.Hour)
	require.NoError(t, err)

	return &testServer{t: t, srv: srv, stores: stores, admin: admin, viewer: viewer}
}

// do sends a request and returns the status and body. token may be "".
func (s *testServer) do(method, path, token string, body io.Reader) (int, string) {
	s.t.Helper()

	req, err := http.NewRequest(method, s.srv.URL+path, body)
	require.NoError(s.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.srv.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, string(raw)
}

func helpRequestQuery(explanation string) string {
	return url.Values{
		"requesterEmail":      {"a@ucsb.edu"},
		"teamId":              {"s25-5pm-3"},
		"tableOrBreakoutRoom": {"7"},
		"requestTime":         {"2025-10-28T17:35:00"},
		"explanation":         {explanation},
		"solved":              {"false"},
	}.Encode()
}

func TestHelpRequestLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ctx := context.Background()

	// fourteen earlier requests, so the new one gets id 15
	for i := 1; i <= 14; i++ {
		_, err := s.stores.HelpRequests.Save(ctx, types.HelpRequest{
			RequesterEmail: "old@ucsb.edu",
			RequestTime:    types.MustLocalDateTime("2025-10-01T09:00:00"),
			Explanation:    fmt.Sprintf("earlier request %d", i),
		})
		require.NoError(t, err)
	}

	status, body := s.do(http.MethodPost, "/api/helprequests/post?"+helpRequestQuery("help"), s.admin, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.JSONEq(t, `{
		"id": 15,
		"requesterEmail": "a@ucsb.edu",
		"teamId": "s25-5pm-3",
		"tableOrBreakoutRoom": "7",
		"requestTime": "2025-10-28T17:35:00",
		"explanation": "help",
		"solved": false
	}`, body)

	status, got := s.do(http.MethodGet, "/api/helprequests?id=15", s.viewer, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, body, got)

	status, body = s.do(http.MethodDelete, "/api/helprequests?id=15", s.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"HelpRequest with id 15 deleted"}`, body)

	status, body = s.do(http.MethodGet, "/api/helprequests?id=15", s.viewer, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"type":"EntityNotFoundException","message":"HelpRequest with id 15 not found"}`, body)
}

func TestRoleGates(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	ctx := context.Background()

	// one stored record per kind, so a viewer's get can succeed
	_, err := s.stores.HelpRequests.Save(ctx, types.HelpRequest{
		RequesterEmail: "a@ucsb.edu", RequestTime: types.MustLocalDateTime("2025-10-28T17:35:00"),
	})
	require.NoError(t, err)
	_, err = s.stores.MenuItemReviews.Save(ctx, types.MenuItemReview{
		ItemID: 27, Stars: 4, DateReviewed: types.MustLocalDateTime("2022-01-02T12:00:00"),
	})
	require.NoError(t, err)
	_, err = s.stores.DiningCommonsMenuItems.Save(ctx, types.UCSBDiningCommonsMenuItem{
		DiningCommonsCode: "DLG", Name: "Steak", Station: "Grill",
	})
	require.NoError(t, err)
	_, err = s.stores.RecommendationRequests.Save(ctx, types.RecommendationRequest{
		DateRequested: types.MustZonedDateTime("2025-11-04T12:12:00Z"),
		DateNeeded:    types.MustZonedDateTime("2025-12-04T12:12:00Z"),
	})
	require.NoError(t, err)
	_, err = s.stores.Organizations.Save(ctx, types.UCSBOrganization{
		OrgCode: "ZPR", OrgTranslationShort: "ZETA PHI RHO", OrgTranslation: "ZETA PHI RHO",
	})
	require.NoError(t, err)
	_, err = s.stores.Articles.Save(ctx, types.Article{
		Title: "DLG serves food", DateAdded: types.MustLocalDateTime("2025-09-30T15:08:00"),
	})
	require.NoError(t, err)

	const denied = `{"type":"AccessDeniedException","message":"Access Denied"}`
	resources := []struct {
		prefix string
		key    string
	}{
		{"/api/helprequests", "id=1"},
		{"/api/menuitemreview", "id=1"},
		{"/api/UCSBDiningCommonsMenuItem", "id=1"},
		{"/api/recommendationrequest", "id=1"},
		{"/api/ucsborganization", "orgCode=ZPR"},
		{"/api/articles", "id=1"},
	}

	for _, res := range resources {
		t.Run(res.prefix, func(t *testing.T) {
			ops := []struct {
				method, path string
				body         string
				viewerOK     bool
			}{
				{http.MethodGet, res.prefix + "/all", "", true},
				{http.MethodGet, res.prefix + "?" + res.key, "", true},
				{http.MethodPost, res.prefix + "/post", "", false},
				{http.MethodPut, res.prefix + "?" + res.key, "{}", false},
				{http.MethodDelete, res.prefix + "?" + res.key, "", false},
			}

			for _, op := range ops {
				var body io.Reader
				if op.body != "" {
					body = strings.NewReader(op.body)
				}
				status, got := s.do(op.method, op.path, "", body)
				assert.Equal(t, http.StatusForbidden, status, "anonymous %s %s", op.method, op.path)
				assert.JSONEq(t, denied, got)

				if op.body != "" {
					body = strings.NewReader(op.body)
				}
				status, got = s.do(op.method, op.path, s.viewer, body)
				if op.viewerOK {
					assert.Equal(t, http.StatusOK, status, "viewer %s %s: %s", op.method, op.path, got)
				} else {
					assert.Equal(t, http.StatusForbidden, status, "viewer %s %s", op.method, op.path)
					assert.JSONEq(t, denied, got)
				}
			}

			// nothing the viewer attempted went through
			status, _ := s.do(http.MethodGet, res.prefix+"?"+res.key, s.admin, nil)
			assert.Equal(t, http.StatusOK, status)
		})
	}
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	forged, err := auth.NewSigner("some-other-secret", testIssuer).
		Sign("phtcon@ucsb.edu", "", []string{auth.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	status, _ := s.do(http.MethodGet, "/api/articles/all", forged, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestMenuItemReviewStars(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	query := func(stars string) string {
		return url.Values{
			"itemId":        {"27"},
			"reviewerEmail": {"cgaucho@ucsb.edu"},
			"stars":         {stars},
			"dateReviewed":  {"2022-01-02T12:00:00"},
			"comments":      {"Great burrito"},
		}.Encode()
	}

	tests := []struct {
		stars      string
		wantStatus int
		wantBody   string
	}{
		{"0", http.StatusOK, ""},
		{"5", http.StatusOK, ""},
		{"6", http.StatusBadRequest, `{"type":"IllegalArgumentException","message":"field stars must be at most 5"}`},
		{"-1", http.StatusBadRequest, `{"type":"IllegalArgumentException","message":"field stars must be at least 0"}`},
	}

	for _, tt := range tests {
		status, body := s.do(http.MethodPost, "/api/menuitemreview/post?"+query(tt.stars), s.admin, nil)
		assert.Equal(t, tt.wantStatus, status, "stars=%s: %s", tt.stars, body)
		if tt.wantBody != "" {
			assert.JSONEq(t, tt.wantBody, body)
		}
	}

	// only the two accepted reviews were stored
	all, err := s.stores.MenuItemReviews.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	status, body := s.do(http.MethodPut, "/api/menuitemreview?id=1", s.admin,
		strings.NewReader(`{"itemId":27,"reviewerEmail":"cgaucho@ucsb.edu","stars":7,"dateReviewed":"2022-01-02T12:00:00","comments":"x"}`))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"type":"IllegalArgumentException","message":"field stars must be at most 5"}`, body)
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, _ := s.do(http.MethodPost,
		"/api/UCSBDiningCommonsMenuItem/post?diningCommonsCode=DLG&name=Steak&station=Grill", s.admin, nil)
	require.Equal(t, http.StatusOK, status)

	// the key in the query wins over the body's id
	status, body := s.do(http.MethodPut, "/api/UCSBDiningCommonsMenuItem?id=1", s.admin,
		strings.NewReader(`{"id":99,"diningCommonsCode":"ORT","name":"Fish","station":"Entrees"}`))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1,"diningCommonsCode":"ORT","name":"Fish","station":"Entrees"}`, body)

	status, body = s.do(http.MethodPut, "/api/UCSBDiningCommonsMenuItem?id=42", s.admin,
		strings.NewReader(`{"diningCommonsCode":"ORT","name":"Fish","station":"Entrees"}`))
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"type":"EntityNotFoundException","message":"UCSBDiningCommonsMenuItem with id 42 not found"}`, body)

	status, body = s.do(http.MethodPut, "/api/UCSBDiningCommonsMenuItem?id=1", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"type":"IllegalArgumentException","message":"request body is empty"}`, body)

	status, _ = s.do(http.MethodGet, "/api/UCSBDiningCommonsMenuItem?id=abc", s.viewer, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(http.MethodGet, "/api/UCSBDiningCommonsMenuItem", s.viewer, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"type":"IllegalArgumentException","message":"missing parameter id"}`, body)
}

func TestOrganizationsKeyedByOrgCode(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	for _, q := range []string{
		"orgCode=ZPR&orgTranslationShort=ZETA+PHI+RHO&orgTranslation=ZETA+PHI+RHO&inactive=false",
		"orgCode=SKY&orgTranslationShort=SKYDIVING_CLUB&orgTranslation=SKYDIVING_CLUB_AT_UCSB&inactive=false",
		"orgCode=KRC&orgTranslationShort=KOREAN_RADIO_CL&orgTranslation=KOREAN_RADIO_CLUB_AT_UCSB&inactive=true",
	} {
		status, body := s.do(http.MethodPost, "/api/ucsborganization/post?"+q, s.admin, nil)
		require.Equal(t, http.StatusOK, status, body)
	}

	status, body := s.do(http.MethodGet, "/api/ucsborganization/all", s.viewer, nil)
	require.Equal(t, http.StatusOK, status)

	var all []types.UCSBOrganization
	require.NoError(t, json.Unmarshal([]byte(body), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "ZPR", all[0].OrgCode)
	assert.Equal(t, "SKY", all[1].OrgCode)
	assert.Equal(t, "KRC", all[2].OrgCode)
	assert.True(t, all[2].Inactive)

	status, body = s.do(http.MethodDelete, "/api/ucsborganization?orgCode=SKY", s.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"UCSBOrganization with id SKY deleted"}`, body)

	status, body = s.do(http.MethodGet, "/api/ucsborganization?orgCode=SKY", s.viewer, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"type":"EntityNotFoundException","message":"UCSBOrganization with id SKY not found"}`, body)
}

func TestCreateOrganizationRejectsEmptyCode(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	for _, code := range []string{"", "+"} {
		status, body := s.do(http.MethodPost,
			"/api/ucsborganization/post?orgCode="+code+"&orgTranslationShort=X&orgTranslation=X&inactive=false", s.admin, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"type":"IllegalArgumentException","message":"parameter orgCode must be non-empty"}`, body)
	}

	status, body := s.do(http.MethodGet, "/api/ucsborganization/all", s.viewer, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
}

func TestListEmptyIsArray(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(http.MethodGet, "/api/recommendationrequest/all", s.viewer, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)
}

func TestCreateMissingParameter(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(http.MethodPost, "/api/articles/post?title=x&url=y&explanation=z&email=e%40ucsb.edu", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"type":"IllegalArgumentException","message":"missing parameter dateAdded"}`, body)
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	status, body := s.do(http.MethodGet, "/api/systemInfo", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"env":"dev","version":"test","storageDriver":"memory"}`, body)

	status, _ = s.do(http.MethodGet, "/api/currentUser", "", nil)
	assert.Equal(t, http.StatusForbidden, status)

	// admin by configured e-mail even though the token carries no roles
	status, body = s.do(http.MethodGet, "/api/currentUser", s.admin, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"user": {"email":"phtcon@ucsb.edu","name":"Phill Conrad"},
		"roles": [{"authority":"ROLE_USER"},{"authority":"ROLE_ADMIN"}]
	}`, body)

	status, body = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `campus_api_http_requests_total{method="GET",route="GET /api/systemInfo",status="200"} 1`)
}
