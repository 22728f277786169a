package register

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	"authms/internal/core/services/register"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *register.Input
}

func (s *stubService) Run(ctx context.Context, input register.Input) (result register.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Account = account.Account{
		ID:        account.NewID(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      account.RoleStandardUser,
		Avatar:    account.DefaultAvatar,
		CreatedAt: time.Date(2022, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	return result, nil
}

func TestRegisterHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *register.Input
	}{
		{
			id:             "full input",
			body:           `{"first_name": "John", "email": "john@test.test", "password": "test-password"}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &register.Input{
				FirstName: c.NewOptional("John", true),
				Email:     c.Email("john@test.test"),
				Password:  c.NewOptional(account.RawPassword("test-password"), true),
			},
		},
		{
			id:             "password is optional",
			body:           `{"email": "john@test.test"}`,
			expectedStatus: http.StatusCreated,
			expectedInput:  &register.Input{Email: c.Email("john@test.test")},
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email", "password": "test-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"email": "john@test.test", "password": "abc"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "not a JSON body",
			body:           `hello`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "duplicate email",
			body:           `{"email": "john@test.test", "password": "test-password"}`,
			serviceErr:     account.ErrEmailAlreadyExists,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, testcase := range cases {
		service := &stubService{err: testcase.serviceErr}
		handler := New(service)

		request := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(testcase.body))
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		response := recorder.Result()
		require.Equal(t, testcase.expectedStatus, response.StatusCode, testcase.id)
		if testcase.expectedInput != nil {
			assert.Equal(t, testcase.expectedInput, service.input, testcase.id)
		}
	}
}
