package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bidPayload struct {
	Description string           `json:"description" validate:"max=20"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Kind        string           `json:"kind" validate:"required,oneof=transfer offer"`
}

func (p *bidPayload) Validate() error {
	return Struct(p)
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate_OK(t *testing.T) {
	p := &bidPayload{}
	err := BindAndValidate(newContext(`{"description":"ok","price":"1.25","kind":"offer"}`), p)

	require.NoError(t, err)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("1.25")))
}

func TestBindAndValidate_FieldErrorsUseJSONNames(t *testing.T) {
	p := &bidPayload{}
	err := BindAndValidate(newContext(`{"description":"this text is far too long for the rule","kind":"gift"}`), p)

	require.Error(t, err)
	assert.Equal(t, "Обязательное поле.", errs.FieldMessage(err, "price"))
	assert.Equal(t, "Выберите корректный вариант. Допустимые значения: transfer, offer.", errs.FieldMessage(err, "kind"))
	assert.Equal(t, "Убедитесь, что это значение содержит не более 20 символов.", errs.FieldMessage(err, "description"))
}

func TestBindAndValidate_NegativeDecimal(t *testing.T) {
	p := &bidPayload{}
	err := BindAndValidate(newContext(`{"price":"-0.25","kind":"transfer"}`), p)

	require.Error(t, err)
	assert.Equal(t, "Убедитесь, что это значение больше либо равно 0.", errs.FieldMessage(err, "price"))
}

func TestBindAndValidate_ZeroDecimalPointerIsPresent(t *testing.T) {
	p := &bidPayload{}
	err := BindAndValidate(newContext(`{"price":"0","kind":"transfer"}`), p)

	require.NoError(t, err)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	p := &bidPayload{}
	err := BindAndValidate(newContext(`{"price":`), p)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Nil(t, httpErr.Errors)
}

func TestFields_RuleTable(t *testing.T) {
	values := map[string]interface{}{
		"username": "bad name!",
		"email":    "",
		"nickname": "",
	}
	rules := map[string]string{
		"username": "required,username",
		"email":    "required,email",
		"nickname": "omitempty,max=3",
	}

	err := Fields(values, rules)

	var custom CustomValidationErrors
	require.ErrorAs(t, err, &custom)
	require.Len(t, custom, 2)
	assert.Equal(t, CustomValidationError{Field: "email", Message: "Обязательное поле."}, custom[0])
	assert.Equal(t, "username", custom[1].Field)
}

func TestFields_AllValid(t *testing.T) {
	err := Fields(map[string]interface{}{"username": "иван.petrov"}, map[string]string{"username": "required,username"})
	assert.NoError(t, err)
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3f1c0a8e-8d1b-4b8f-9c6b-1f2e3d4c5b6a"))
	assert.False(t, IsValidUUID("not-a-uuid"))
}
