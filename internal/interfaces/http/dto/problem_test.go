package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankyou/backend/internal/domain/setting"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/domain/thankyou"
	"github.com/thankyou/backend/internal/infrastructure/i18n"
)

func newTestProblems(t *testing.T) *Problems {
	t.Helper()
	tr, err := i18n.New("en")
	require.NoError(t, err)
	return NewProblems(tr, "https://example.com/problem")
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", shared.ErrNotFound), http.StatusNotFound},
		{"forbidden", shared.ErrForbidden, http.StatusUnauthorized},
		{"duplicate name", tag.ErrDuplicateName, http.StatusBadRequest},
		{"invalid name", tag.ErrNameEmpty, http.StatusBadRequest},
		{"unsupported class", &thankyou.UnsupportedOwnerClassError{OwnerClass: 9}, http.StatusBadRequest},
		{"validation", &shared.ValidationError{}, http.StatusBadRequest},
		{"option", setting.Validate(map[string]any{"x": true}), http.StatusBadRequest},
		{"repository", shared.NewRepositoryError("save", errors.New("boom")), http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForError(tt.err))
		})
	}
}

func TestProblems_Abort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := newTestProblems(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/tags", nil)

	var violations shared.Violations
	violations.Add("name", "tag.name.empty")
	p.Abort(c, http.StatusBadRequest, i18n.TitleTagCreate, p.Params(c, violations)...)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ProblemContentType, w.Header().Get("Content-Type"))

	var body Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://example.com/problem", body.Type)
	assert.Equal(t, "The tag could not be created.", body.Title)
	assert.Equal(t, http.StatusBadRequest, body.Status)
	require.Len(t, body.InvalidParams, 1)
	assert.Equal(t, InvalidParam{Name: "name", Reason: "The name must not be empty."}, body.InvalidParams[0])
}

func TestProblems_Language(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := newTestProblems(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/thanks/1", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")

	assert.Equal(t, "未找到该感谢。", p.Translate(c, i18n.TitleThankYouNotFound))
}

func TestNewProblems_DefaultType(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)
	assert.Equal(t, DefaultProblemType, NewProblems(tr, "").typeURL)
}
