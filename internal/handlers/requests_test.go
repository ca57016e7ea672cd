package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRequestForm runs the handler against a form post and returns the
// recorder.
// The anti-spam paths under test all return before any database access, so
// the handler is wired with nil dependencies.
func postRequestForm(t *testing.T, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	CreateServiceRequest(nil, nil)(c)
	return w
}

func freshTS() string {
	return strconv.FormatInt(time.Now().Add(-5*time.Second).UnixMilli(), 10)
}

func validRequestForm() url.Values {
	return url.Values{
		"serviceRequestEmail":           {"client@example.com"},
		"serviceRequestTel":             {"+37255512345"},
		"selectedServiceCategoryId":     {"b9b6f4b0-0000-0000-0000-000000000001"},
		"selectedServiceId":             {"b9b6f4b0-0000-0000-0000-000000000002"},
		"serviceRequestAgreedToProceed": {"on"},
		"ts":                            {freshTS()},
	}
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]bool {
	t.Helper()
	var body struct {
		OK     bool            `json:"ok"`
		Errors map[string]bool `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Errors
}

func TestCreateServiceRequestRequiresAgreement(t *testing.T) {
	form := validRequestForm()
	form.Del("serviceRequestAgreedToProceed")

	w := postRequestForm(t, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, decodeErrors(t, w)["proceedAgreementWasNotProvided"])
}

func TestCreateServiceRequestHoneypotFakesSuccess(t *testing.T) {
	form := validRequestForm()
	form.Set("website", "https://spam.example")

	w := postRequestForm(t, form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestCreateServiceRequestMissingFields(t *testing.T) {
	form := validRequestForm()
	form.Del("serviceRequestEmail")

	w := postRequestForm(t, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, decodeErrors(t, w)["noCredentialsProvided"])
}

func TestCreateServiceRequestInvalidTimestamp(t *testing.T) {
	form := validRequestForm()
	form.Set("ts", "not-a-number")

	w := postRequestForm(t, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, decodeErrors(t, w)["invalidTs"])
}

func TestCreateServiceRequestTooFastFakesSuccess(t *testing.T) {
	form := validRequestForm()
	form.Set("ts", strconv.FormatInt(time.Now().UnixMilli(), 10))

	w := postRequestForm(t, form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestCreateServiceRequestExpiredForm(t *testing.T) {
	form := validRequestForm()
	form.Set("ts", strconv.FormatInt(time.Now().Add(-2*time.Hour).UnixMilli(), 10))

	w := postRequestForm(t, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, decodeErrors(t, w)["formExpired"])
}

func TestCreateServiceRequestInvalidEmail(t *testing.T) {
	form := validRequestForm()
	form.Set("serviceRequestEmail", "no-at-sign")

	w := postRequestForm(t, form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, decodeErrors(t, w)["invalidEmail"])
}
