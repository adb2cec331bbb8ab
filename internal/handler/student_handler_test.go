package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/topic-selection-api/internal/dto"
	"github.com/noah-isme/topic-selection-api/internal/models"
	appErrors "github.com/noah-isme/topic-selection-api/pkg/errors"
)

type fakeStudentSrv struct {
	token   string
	apply   dto.ApplyRequest
	propose dto.ProposeRequest
	format  string
	err     error
}

func (f *fakeStudentSrv) ListEligibleTopics(_ context.Context, token string) (*dto.SelectableTopicsResult, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SelectableTopicsResult{Topics: []models.SelectableTopic{{TopicID: "tp1", TeacherName: "Budi"}}}, nil
}

func (f *fakeStudentSrv) ListEligibleTeachers(_ context.Context, token string) (*dto.SelectableTeachersResult, error) {
	f.token = token
	return &dto.SelectableTeachersResult{Teachers: []models.Teacher{}}, f.err
}

func (f *fakeStudentSrv) ApplyToExistingTopic(_ context.Context, token string, req dto.ApplyRequest) (*dto.ApplyResult, error) {
	f.token = token
	f.apply = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ApplyResult{Application: models.Application{SID: "s1", TopicID: req.TopicID, Status: models.ApplicationStatusPending}}, nil
}

func (f *fakeStudentSrv) ProposeAndApplyToNewTopic(_ context.Context, token string, req dto.ProposeRequest) (*dto.ProposeResult, error) {
	f.token = token
	f.propose = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ProposeResult{Topic: models.Topic{TopicID: "new", TID: req.TID}}, nil
}

func (f *fakeStudentSrv) GetMyApprovedTeacher(_ context.Context, token string) (*dto.TeacherInfoResult, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TeacherInfoResult{Teacher: models.Teacher{TID: "t1", Name: "Budi"}}, nil
}

func (f *fakeStudentSrv) GetMyApprovedTopicWithType(_ context.Context, token string) (*dto.ApprovedTopicResult, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ApprovedTopicResult{Topic: models.Topic{TopicID: "tp1"}, Type: models.TopicType{TypeID: "ty1", TypeName: "Research"}}, nil
}

func (f *fakeStudentSrv) GetApplicationHistory(_ context.Context, token string) (*dto.ApplicationHistoryResult, error) {
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ApplicationHistoryResult{Records: []dto.ApplicationRecord{{TeacherName: "Budi"}}}, nil
}

func (f *fakeStudentSrv) ExportApplicationHistory(_ context.Context, token, format string) (*dto.ExportFile, error) {
	f.token = token
	f.format = format
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ExportFile{Filename: "history.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("a,b\n")}, nil
}

func newStudentRouter(srv *fakeStudentSrv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStudentHandler(srv, srv)
	r := gin.New()
	r.GET("/student/topics", h.Topics)
	r.GET("/student/teachers", h.Teachers)
	r.POST("/student/applications", h.Apply)
	r.GET("/student/applications", h.History)
	r.GET("/student/applications/export", h.ExportHistory)
	r.POST("/student/proposals", h.Propose)
	r.GET("/student/teacher", h.ApprovedTeacher)
	r.GET("/student/topic", h.ApprovedTopic)
	return r
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStudentTopicsEnvelope(t *testing.T) {
	srv := &fakeStudentSrv{}
	r := newStudentRouter(srv)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/student/topics", nil)
	req.Header.Set("Authorization", "Bearer abc")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", srv.token)
	body := decode(t, rec)
	assert.EqualValues(t, 200, body["status"])
	topics, ok := body["topics"].([]interface{})
	require.True(t, ok)
	require.Len(t, topics, 1)
	assert.Equal(t, "Budi", topics[0].(map[string]interface{})["teacherName"])
}

func TestStudentTokenFromQuery(t *testing.T) {
	srv := &fakeStudentSrv{}
	r := newStudentRouter(srv)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/teachers?accessToken=qtoken", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "qtoken", srv.token)
	assert.Equal(t, []interface{}{}, decode(t, rec)["teachers"])
}

func TestStudentErrorEnvelopes(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
		code   string
	}{
		"no session":      {err: appErrors.ErrUnauthorized, status: http.StatusUnauthorized, code: "UNAUTHORIZED"},
		"role mismatch":   {err: appErrors.ErrForbidden, status: http.StatusForbidden, code: "FORBIDDEN"},
		"no data":         {err: appErrors.ErrNoData, status: appErrors.StatusFailed, code: "NO_DATA"},
		"already applied": {err: appErrors.ErrAlreadyApplied, status: appErrors.StatusFailed, code: "ALREADY_APPLIED"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newStudentRouter(&fakeStudentSrv{err: tc.err})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/teacher", nil))

			assert.Equal(t, tc.status, rec.Code)
			body := decode(t, rec)
			assert.EqualValues(t, tc.status, body["status"])
			assert.Equal(t, tc.code, body["code"])
			assert.NotEmpty(t, body["message"])
			_, hasPayload := body["userInfo"]
			assert.False(t, hasPayload)
		})
	}
}

func TestStudentApplyFormAndJSON(t *testing.T) {
	srv := &fakeStudentSrv{}
	r := newStudentRouter(srv)

	form := url.Values{"topicId": {"tp9"}, "accessToken": {"ftoken"}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/student/applications", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tp9", srv.apply.TopicID)
	assert.Equal(t, "ftoken", srv.token)
	assert.Equal(t, "tp9", decode(t, rec)["application"].(map[string]interface{})["topicId"])

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/student/applications", strings.NewReader(`{"topicId":"tp7"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer jtoken")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tp7", srv.apply.TopicID)
	assert.Equal(t, "jtoken", srv.token)
}

func TestStudentProposeMalformedBodyStillGated(t *testing.T) {
	srv := &fakeStudentSrv{err: appErrors.ErrUnauthorized}
	r := newStudentRouter(srv)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/student/proposals", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ProposeRequest{}, srv.propose)
}

func TestStudentPropose(t *testing.T) {
	srv := &fakeStudentSrv{}
	r := newStudentRouter(srv)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/student/proposals?tid=t2", strings.NewReader(`{"topic":{"topicName":"Graphs","typeId":"ty1"}}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t2", srv.propose.TID)
	assert.Equal(t, "Graphs", srv.propose.Topic.TopicName)
	body := decode(t, rec)
	assert.Contains(t, body, "topic")
	assert.Contains(t, body, "application")
}

func TestStudentApprovedTopicAndHistoryKeys(t *testing.T) {
	r := newStudentRouter(&fakeStudentSrv{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/topic", nil))
	body := decode(t, rec)
	assert.Contains(t, body, "topic")
	assert.Equal(t, "Research", body["type"].(map[string]interface{})["typeName"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/applications", nil))
	records := decode(t, rec)["applyRecord"].([]interface{})
	require.Len(t, records, 1)
	record := records[0].(map[string]interface{})
	assert.Equal(t, "Budi", record["teacherName"])
	assert.Contains(t, record, "topicInfo")
	assert.Contains(t, record, "applyInfo")
}

func TestStudentExportHistory(t *testing.T) {
	srv := &fakeStudentSrv{}
	r := newStudentRouter(srv)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/student/applications/export", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", srv.format)
	assert.Equal(t, "attachment; filename=\"history.csv\"", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}
