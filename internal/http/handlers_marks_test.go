package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/edutools/mark-register/internal/domain/auth"
	"github.com/edutools/mark-register/internal/domain/model"
	"github.com/edutools/mark-register/internal/mocks"
	"github.com/edutools/mark-register/internal/service"
)

func twoQuestionPattern() *model.QuestionPattern {
	return &model.QuestionPattern{
		ID:                "pat-1",
		SubjectID:         "sub-1",
		QuestionPaperCode: "QP-A",
		Questions: []model.Question{
			{Number: 1, CourseOutcome: 1, MaxMarks: 10},
			{Number: 2, CourseOutcome: 2, MaxMarks: 5},
		},
	}
}

func withSession(req *http.Request, session *domainauth.Session) *http.Request {
	return req.WithContext(SetSessionInContext(req.Context(), session))
}

func TestMarkHandlers_Submit_RecordsEnteredByFromSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	markRepo := mocks.NewMockMarkRepository(ctrl)
	patternRepo := mocks.NewMockQuestionPatternRepository(ctrl)

	patternRepo.EXPECT().GetByID(gomock.Any(), "pat-1").Return(twoQuestionPattern(), nil)
	markRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, entries []model.MarkEntry) (int, error) {
			require.Len(t, entries, 2)
			for _, e := range entries {
				assert.Equal(t, "user-1", e.EnteredBy)
				assert.Equal(t, "pat-1", e.PatternID)
			}
			return len(entries), nil
		})

	h := &MarkHandlers{Svc: service.NewMarksService(service.MarksServiceOptions{
		Marks:    markRepo,
		Patterns: patternRepo,
	})}

	body := `{"pattern_id":"pat-1","students":[{"student_id":"R001","marks":{"1":8,"2":4}}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/marks", strings.NewReader(body))
	req = withSession(req, &domainauth.Session{
		ID:        "sess-1",
		Identity:  domainauth.Identity{ID: "user-1", Username: "jdoe"},
		ExpiresAt: time.Now().Add(time.Hour),
	})
	w := httptest.NewRecorder()

	h.Submit(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp["saved"])
}

func TestMarkHandlers_Submit_NoSession401(t *testing.T) {
	h := &MarkHandlers{}

	req := httptest.NewRequest(http.MethodPost, "/api/marks", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.Submit(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMarkHandlers_Submit_OverMaxMarksRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	markRepo := mocks.NewMockMarkRepository(ctrl)
	patternRepo := mocks.NewMockQuestionPatternRepository(ctrl)

	patternRepo.EXPECT().GetByID(gomock.Any(), "pat-1").Return(twoQuestionPattern(), nil)

	h := &MarkHandlers{Svc: service.NewMarksService(service.MarksServiceOptions{
		Marks:    markRepo,
		Patterns: patternRepo,
	})}

	body := `{"pattern_id":"pat-1","students":[{"student_id":"R001","marks":{"2":6}}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/marks", strings.NewReader(body))
	req = withSession(req, &domainauth.Session{
		ID:       "sess-1",
		Identity: domainauth.Identity{ID: "user-1"},
	})
	w := httptest.NewRecorder()

	h.Submit(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at most 5")
}

func TestMarkHandlers_ExportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	markRepo := mocks.NewMockMarkRepository(ctrl)
	patternRepo := mocks.NewMockQuestionPatternRepository(ctrl)

	patternRepo.EXPECT().GetByID(gomock.Any(), "pat-1").Return(twoQuestionPattern(), nil)
	markRepo.EXPECT().ListByPattern(gomock.Any(), "pat-1").Return([]*model.MarkEntry{
		{PatternID: "pat-1", StudentID: "R001", QuestionNumber: 1, Marks: 8},
		{PatternID: "pat-1", StudentID: "R001", QuestionNumber: 2, Marks: 4},
	}, nil)

	marksSvc := service.NewMarksService(service.MarksServiceOptions{
		Marks:    markRepo,
		Patterns: patternRepo,
	})
	exportSvc, err := service.NewExportService(service.ExportServiceOptions{Reports: marksSvc})
	require.NoError(t, err)

	h := &MarkHandlers{Svc: marksSvc, Export: exportSvc}

	req := httptest.NewRequest(http.MethodGet, "/api/patterns/pat-1/export", nil)
	req.SetPathValue("id", "pat-1")
	w := httptest.NewRecorder()

	h.ExportCSV(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "marks-pat-1.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Random ID,CO 1,CO 2,CO 3,CO 4,CO 5,CO 6,Total", lines[0])
	assert.Equal(t, "R001,8,4,0,0,0,0,12", lines[1])
}

func TestMarkHandlers_StudentMarks(t *testing.T) {
	ctrl := gomock.NewController(t)
	markRepo := mocks.NewMockMarkRepository(ctrl)
	patternRepo := mocks.NewMockQuestionPatternRepository(ctrl)

	markRepo.EXPECT().ListByPatternAndStudent(gomock.Any(), "pat-1", "R001").Return([]*model.MarkEntry{
		{PatternID: "pat-1", StudentID: "R001", QuestionNumber: 1, Marks: 7},
	}, nil)

	h := &MarkHandlers{Svc: service.NewMarksService(service.MarksServiceOptions{
		Marks:    markRepo,
		Patterns: patternRepo,
	})}

	req := httptest.NewRequest(http.MethodGet, "/api/patterns/pat-1/marks/R001", nil)
	req.SetPathValue("id", "pat-1")
	req.SetPathValue("student", "R001")
	w := httptest.NewRecorder()

	h.StudentMarks(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Marks map[string]int `json:"marks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]int{"1": 7}, resp.Marks)
}
