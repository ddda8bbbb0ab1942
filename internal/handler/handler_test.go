package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/fefu-exchange/internal/config"
	"github.com/deppfellow/fefu-exchange/internal/errs"
	"github.com/deppfellow/fefu-exchange/internal/forms"
	"github.com/deppfellow/fefu-exchange/internal/lib/captcha"
	"github.com/deppfellow/fefu-exchange/internal/logger"
	"github.com/deppfellow/fefu-exchange/internal/middleware"
	"github.com/deppfellow/fefu-exchange/internal/model"
	"github.com/deppfellow/fefu-exchange/internal/server"
	"github.com/deppfellow/fefu-exchange/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var acting = &model.Account{ID: 1, ExternalID: "user_1", Username: "ivan"}

func testServer() *server.Server {
	log := logger.NewLogger(io.Discard, "debug")
	return &server.Server{
		Config:        &config.Config{Primary: config.Primary{Env: "test"}},
		Logger:        &log,
		LoggerService: &logger.LoggerService{},
	}
}

// serve runs h on a single route with the acting account set, the way the
// router and RequireAccount would.
func serve(t *testing.T, method, route, target, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(testServer()).GlobalErrorHandler
	e.Add(method, route, h, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.UserIDKey, acting.ExternalID)
			c.Set(middleware.AccountKey, acting)
			return next(c)
		}
	})

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func fieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	out := map[string]string{}
	for _, fe := range body.Errors {
		out[fe.Field] = fe.Error
	}
	return out
}

type fakeTransfers struct {
	got *service.TransferInput
	err error
}

func (f *fakeTransfers) Create(_ context.Context, a *model.Account, in service.TransferInput) (*model.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.got = &in
	return &model.Transaction{ID: 10, UserFrom: a.ID, UserTo: in.User, Amount: in.Amount, Status: true}, nil
}

func (f *fakeTransfers) Counterparties(context.Context, *model.Account) ([]model.Counterparty, error) {
	return []model.Counterparty{{ID: 2, Username: "petr"}}, nil
}

func (f *fakeTransfers) List(context.Context, *model.Account) ([]model.Transaction, error) {
	return nil, nil
}

func TestCreateTransaction(t *testing.T) {
	transfers := &fakeTransfers{}
	h := NewTransactionHandler(testServer(), transfers)
	route := Handle(h.Handler, h.Create, http.StatusCreated, &CreateTransactionRequest{})

	rec := serve(t, http.MethodPost, "/transactions", "/transactions",
		`{"type":"transfer","user":2,"amount":"12.5","description":"  за обед  "}`, route)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, transfers.got)
	assert.Equal(t, model.TransactionTransfer, transfers.got.Type)
	assert.True(t, decimal.RequireFromString("12.5").Equal(transfers.got.Amount))
	assert.Equal(t, "за обед", transfers.got.Description)
}

func TestCreateTransaction_Validation(t *testing.T) {
	h := NewTransactionHandler(testServer(), &fakeTransfers{})
	route := Handle(h.Handler, h.Create, http.StatusCreated, &CreateTransactionRequest{})

	tests := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"missing amount", `{"type":"transfer","user":2}`, "amount", "Обязательное поле."},
		{"zero amount", `{"type":"offer","user":2,"amount":"0"}`, "amount", "Убедитесь, что это значение больше 0."},
		{"bad type", `{"type":"gift","user":2,"amount":"1"}`, "type", "Выберите корректный вариант. Допустимые значения: transfer, offer."},
		{"missing user", `{"type":"transfer","amount":"1"}`, "user", "Обязательное поле."},
		{"too precise", `{"type":"transfer","user":2,"amount":"1.005"}`, "amount", "Убедитесь, что количество знаков после запятой не превышает 2."},
		{"offer too large", `{"type":"offer","user":2,"amount":"100000000000"}`, "amount", "Убедитесь, что количество цифр перед запятой не превышает 10."},
		{"transfer too large", `{"type":"transfer","user":2,"amount":"10000000000.00"}`, "amount", "Убедитесь, что количество цифр перед запятой не превышает 10."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, http.MethodPost, "/transactions", "/transactions", tt.body, route)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.msg, fieldErrors(t, rec)[tt.field])
		})
	}
}

func TestCreateTransaction_ServiceFieldError(t *testing.T) {
	h := NewTransactionHandler(testServer(), &fakeTransfers{
		err: errs.NewFieldError(errs.CodeBusinessRule, "amount", service.InsufficientFundsMessage(decimal.NewFromInt(100))),
	})
	route := Handle(h.Handler, h.Create, http.StatusCreated, &CreateTransactionRequest{})

	rec := serve(t, http.MethodPost, "/transactions", "/transactions", `{"type":"transfer","user":2,"amount":150}`, route)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Недостаточно средств, доступно 100.", fieldErrors(t, rec)["amount"])
}

func TestHandle_FreshRequestPerCall(t *testing.T) {
	transfers := &fakeTransfers{}
	h := NewTransactionHandler(testServer(), transfers)
	proto := &CreateTransactionRequest{}
	route := Handle(h.Handler, h.Create, http.StatusCreated, proto)

	serve(t, http.MethodPost, "/transactions", "/transactions", `{"type":"transfer","user":2,"amount":"1","description":"first"}`, route)
	rec := serve(t, http.MethodPost, "/transactions", "/transactions", `{"type":"transfer","user":3,"amount":"2"}`, route)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, transfers.got.Description)
	assert.Zero(t, proto.User)
}

type fakeAccounts struct {
	registered string
	got        service.AccountInput
}

func (f *fakeAccounts) Register(_ context.Context, externalID string, in service.AccountInput) (*model.Account, error) {
	f.registered = externalID
	f.got = in
	return &model.Account{ID: 1, ExternalID: externalID, Username: in.Username}, nil
}

func (f *fakeAccounts) Update(_ context.Context, a *model.Account, in service.AccountInput) (*model.Account, error) {
	f.got = in
	return a, nil
}

func (f *fakeAccounts) Me(_ context.Context, a *model.Account) (*model.AccountWithBalance, error) {
	return &model.AccountWithBalance{Account: a, Balance: decimal.NewFromInt(100)}, nil
}

func TestRegisterAccount(t *testing.T) {
	accounts := &fakeAccounts{}
	h := NewAccountHandler(testServer(), accounts)
	route := Handle(h.Handler, h.Register, http.StatusCreated, &RegisterAccountRequest{})

	rec := serve(t, http.MethodPost, "/accounts", "/accounts",
		`{"username":"ivan","first_name":"Иван","last_name":"Иванов","email":"ivan@example.com"}`, route)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "user_1", accounts.registered)
	assert.Equal(t, "Иванов", accounts.got.LastName)
}

func TestAccountForms_RequireAllFields(t *testing.T) {
	accounts := &fakeAccounts{}
	h := NewAccountHandler(testServer(), accounts)

	for _, route := range []echo.HandlerFunc{
		Handle(h.Handler, h.Register, http.StatusCreated, &RegisterAccountRequest{}),
		Handle(h.Handler, h.Update, http.StatusOK, &UpdateAccountRequest{}),
	} {
		rec := serve(t, http.MethodPost, "/accounts", "/accounts", `{"username":"bad name!","email":"nope"}`, route)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		errors := fieldErrors(t, rec)
		assert.Equal(t, "Обязательное поле.", errors[forms.FieldFirstName])
		assert.Equal(t, "Обязательное поле.", errors[forms.FieldLastName])
		assert.Equal(t, "Введите правильный адрес электронной почты.", errors[forms.FieldEmail])
		assert.Contains(t, errors[forms.FieldUsername], "Введите правильное имя пользователя.")
	}
}

type fakeProfiles struct {
	answer service.CaptchaAnswer
}

func (f *fakeProfiles) Register(_ context.Context, a *model.Account, in service.ProfileInput, answer service.CaptchaAnswer) (*model.Profile, error) {
	f.answer = answer
	return &model.Profile{AccountID: a.ID, About: in.About, GroupID: in.GroupID}, nil
}

func (f *fakeProfiles) Update(_ context.Context, a *model.Account, in service.ProfileInput) (*model.Profile, error) {
	return &model.Profile{AccountID: a.ID, About: in.About}, nil
}

func (f *fakeProfiles) Get(_ context.Context, a *model.Account) (*model.Profile, error) {
	return &model.Profile{AccountID: a.ID}, nil
}

func (f *fakeProfiles) Groups(context.Context) ([]model.Group, error) {
	return []model.Group{{ID: 1, Name: "Б8119"}}, nil
}

func TestRegisterProfile(t *testing.T) {
	profiles := &fakeProfiles{}
	h := NewProfileHandler(testServer(), profiles)
	route := Handle(h.Handler, h.Register, http.StatusCreated, &RegisterProfileRequest{})

	key := "3f1c0a8e-8d1b-4b8f-9c6b-1f2e3d4c5b6a"
	rec := serve(t, http.MethodPost, "/profiles", "/profiles", `{"about":"hi","group":1,"captcha_key":"`+key+`","captcha_value":"7"}`, route)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, service.CaptchaAnswer{Key: key, Value: "7"}, profiles.answer)

	rec = serve(t, http.MethodPost, "/profiles", "/profiles", `{"captcha_key":"k","captcha_value":"7"}`, route)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Введите правильный UUID.", fieldErrors(t, rec)["captcha_key"])

	rec = serve(t, http.MethodPost, "/profiles", "/profiles", `{"group":-1}`, route)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errors := fieldErrors(t, rec)
	assert.Equal(t, "Обязательное поле.", errors["captcha"])
	assert.Equal(t, service.InvalidChoiceMessage, errors["group"])
}

func TestUpdateProfile_NoCaptcha(t *testing.T) {
	h := NewProfileHandler(testServer(), &fakeProfiles{})
	route := Handle(h.Handler, h.Update, http.StatusOK, &UpdateProfileRequest{})

	rec := serve(t, http.MethodPut, "/profiles/me", "/profiles/me", `{"about":"new"}`, route)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

type fakeBids struct {
	taskID int64
	in     service.TaskBidInput
}

func (f *fakeBids) Create(_ context.Context, a *model.Account, taskID int64, in service.TaskBidInput) (*model.TaskBid, error) {
	f.taskID, f.in = taskID, in
	return &model.TaskBid{ID: 1, TaskID: taskID, UserID: a.ID, Price: in.Price}, nil
}

func TestCreateTaskBid_TaskFromPath(t *testing.T) {
	bids := &fakeBids{}
	h := NewTaskBidHandler(testServer(), bids)
	route := Handle(h.Handler, h.Create, http.StatusCreated, &CreateTaskBidRequest{})

	rec := serve(t, http.MethodPost, "/tasks/:taskID/bids", "/tasks/42/bids", `{"price":"10.25","description":"сделаю"}`, route)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(42), bids.taskID)
	assert.True(t, decimal.RequireFromString("10.25").Equal(bids.in.Price))

	rec = serve(t, http.MethodPost, "/tasks/:taskID/bids", "/tasks/42/bids", `{"price":"-1"}`, route)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Убедитесь, что это значение больше либо равно 0.", fieldErrors(t, rec)["price"])

	rec = serve(t, http.MethodPost, "/tasks/:taskID/bids", "/tasks/42/bids", `{"price":"100000000000"}`, route)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Убедитесь, что количество цифр перед запятой не превышает 10.", fieldErrors(t, rec)["price"])

	bids.in = service.TaskBidInput{}
	rec = serve(t, http.MethodPost, "/tasks/:taskID/bids", "/tasks/42/bids", `{"price":"9999999999.99"}`, route)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, decimal.RequireFromString("9999999999.99").Equal(bids.in.Price))
}

type fakeClaims struct{ email string }

func (f *fakeClaims) Register(_ context.Context, a *model.Account, email string) (*model.ExternalMailClaim, error) {
	f.email = email
	return &model.ExternalMailClaim{AccountID: a.ID, Email: email}, nil
}

func TestCreateMailClaim(t *testing.T) {
	claims := &fakeClaims{}
	h := NewMailClaimHandler(testServer(), claims)
	route := Handle(h.Handler, h.Create, http.StatusCreated, &CreateMailClaimRequest{})

	rec := serve(t, http.MethodPost, "/mail-claims", "/mail-claims", `{"email":"a@students.dvfu.ru"}`, route)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "a@students.dvfu.ru", claims.email)

	rec = serve(t, http.MethodPost, "/mail-claims", "/mail-claims", `{}`, route)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Обязательное поле.", fieldErrors(t, rec)["email"])
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(context.Context) (*captcha.Challenge, error) {
	return &captcha.Challenge{Key: "k", Question: "2 + 3 = ?", ExpiresIn: 300}, nil
}

func TestForms(t *testing.T) {
	h := NewFormHandler(testServer(), fakeIssuer{}, "students.dvfu.ru")
	route := Handle(h.Handler, h.Get, http.StatusOK, &GetFormRequest{})

	rec := serve(t, http.MethodGet, "/forms/:name", "/forms/"+forms.TransferRequest, "", route)
	require.Equal(t, http.StatusOK, rec.Code)
	var form forms.Form
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &form))
	assert.Equal(t, forms.TransferRequest, form.Name)

	rec = serve(t, http.MethodGet, "/forms/:name", "/forms/unknown", "", route)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, http.MethodGet, "/captcha", "/captcha", "", Handle(h.Handler, h.Captcha, http.StatusOK, &EmptyRequest{}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 + 3 = ?")
}

func TestHealth(t *testing.T) {
	s := testServer()
	h := &HealthHandler{Handler: NewHandler(s), checks: map[string]pinger{
		"database": pingFunc(func(context.Context) error { return nil }),
		"redis":    pingFunc(func(context.Context) error { return io.ErrUnexpectedEOF }),
	}}

	rec := serve(t, http.MethodGet, "/status", "/status", "", h.CheckHealth)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
	assert.Equal(t, "unhealthy", body.Checks["redis"].Status)
}
