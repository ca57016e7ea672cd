package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formContext(t *testing.T, values url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func validItemForm() url.Values {
	return url.Values{
		"titleEE":     {"Torutööd"},
		"titleRU":     {"Сантехника"},
		"price":       {"45"},
		"priceType":   {"perHour"},
		"buttonColor": {"#ff8800"},
	}
}

func TestParseItemFieldsValid(t *testing.T) {
	c := formContext(t, validItemForm())

	fields, errs := parseItemFields(c)
	require.Nil(t, errs)
	assert.Equal(t, "Torutööd", fields.TitleEE)
	assert.Equal(t, "Сантехника", fields.TitleRU)
	assert.Equal(t, 45.0, fields.Price.Amount)
	assert.Equal(t, "#ff8800", fields.ButtonColor)
}

func TestParseItemFieldsVolumeBasedStillNeedsPriceType(t *testing.T) {
	form := validItemForm()
	form.Set("price", "volumeBased")
	form.Del("priceType")

	_, errs := parseItemFields(formContext(t, form))
	require.NotNil(t, errs)
	assert.Equal(t, true, errs["invalidPriceType"])
}

func TestParseItemFieldsCollectsAllErrors(t *testing.T) {
	form := url.Values{
		"price":       {"-5"},
		"priceType":   {"perMonth"},
		"buttonColor": {"red"},
	}

	_, errs := parseItemFields(formContext(t, form))
	require.NotNil(t, errs)
	assert.Equal(t, true, errs["noTitleEE"])
	assert.Equal(t, true, errs["noTitleRU"])
	assert.Equal(t, true, errs["invalidPrice"])
	assert.Equal(t, true, errs["invalidPriceType"])
	assert.Equal(t, true, errs["invalidButtonColor"])
}

func TestParseItemFieldsButtonColorOptional(t *testing.T) {
	form := validItemForm()
	form.Del("buttonColor")

	fields, errs := parseItemFields(formContext(t, form))
	require.Nil(t, errs)
	assert.Equal(t, "", fields.ButtonColor)
}
