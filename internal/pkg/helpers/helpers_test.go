package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/campusauth/internal/pkg/apperrors"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}

			id, err := ParseIDParam(c, "id")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrBadRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestGetContentNullString(t *testing.T) {
	assert.False(t, GetContentNullString("").Valid)

	ns := GetContentNullString("CS")
	assert.True(t, ns.Valid)
	assert.Equal(t, "CS", ns.String)
}
