package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/hyeonlab/member_service/internal/dto"
	"github.com/hyeonlab/member_service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMemberService returns canned results so the handler's status mapping
// can be exercised without a database or broker.
type stubMemberService struct {
	signUpErr  error
	modifyErr  error
	deleteErr  error
	duplicated bool
	checkErr   error
}

func (s *stubMemberService) SignUp(dto.MemberSignUpInfo) error         { return s.signUpErr }
func (s *stubMemberService) Modify(string, dto.MemberModifyInfo) error { return s.modifyErr }
func (s *stubMemberService) Delete(string) error                       { return s.deleteErr }

func (s *stubMemberService) IsDuplicatedEmail(string) (bool, error) {
	return s.duplicated, s.checkErr
}
func (s *stubMemberService) IsDuplicatedPhoneNumber(string) (bool, error) {
	return s.duplicated, s.checkErr
}
func (s *stubMemberService) IsDuplicatedNickname(string) (bool, error) {
	return s.duplicated, s.checkErr
}
func (s *stubMemberService) IsDuplicatedPhoneNumberInModify(string, string) (bool, error) {
	return s.duplicated, s.checkErr
}
func (s *stubMemberService) IsDuplicatedNicknameInModify(string, string) (bool, error) {
	return s.duplicated, s.checkErr
}

func setupApp(svc services.MemberService) *fiber.App {
	app := fiber.New()
	NewMemberHandler(svc).SetupRoutes(app)
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

const validSignUpBody = `{"email":"a@x.com","phone_number":"01011112222","nickname":"nick1","password":"long-enough-pass"}`

func TestSignUpStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubMemberService
		body       string
		wantStatus int
	}{
		{"created", &stubMemberService{}, validSignUpBody, fiber.StatusCreated},
		{"conflict", &stubMemberService{signUpErr: &services.ConflictError{Field: "email"}}, validSignUpBody, fiber.StatusConflict},
		{"publish failure", &stubMemberService{signUpErr: services.ErrPublishFailed}, validSignUpBody, fiber.StatusBadGateway},
		{"internal error", &stubMemberService{signUpErr: assert.AnError}, validSignUpBody, fiber.StatusInternalServerError},
		{"malformed email", &stubMemberService{}, `{"email":"not an email","phone_number":"01011112222","nickname":"nick1","password":"long-enough-pass"}`, fiber.StatusBadRequest},
		{"malformed phone", &stubMemberService{}, `{"email":"a@x.com","phone_number":"123","nickname":"nick1","password":"long-enough-pass"}`, fiber.StatusBadRequest},
		{"short password", &stubMemberService{}, `{"email":"a@x.com","phone_number":"01011112222","nickname":"nick1","password":"short"}`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(tt.svc)
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/write/v1/members/member", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestModifyStatusMapping(t *testing.T) {
	body := `{"phone_number":"01099998888","nickname":"nick1"}`

	tests := []struct {
		name       string
		svc        *stubMemberService
		wantStatus int
	}{
		{"updated", &stubMemberService{}, fiber.StatusOK},
		{"member missing", &stubMemberService{modifyErr: services.ErrMemberNotFound}, fiber.StatusNotFound},
		{"phone taken", &stubMemberService{modifyErr: &services.ConflictError{Field: "phone_number"}}, fiber.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupApp(tt.svc)
			resp, err := app.Test(jsonRequest(http.MethodPut, "/api/write/v1/members/member/a@x.com", body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestDeleteStatusMapping(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		app := setupApp(&stubMemberService{})
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/write/v1/members/member/a@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("already deleted", func(t *testing.T) {
		app := setupApp(&stubMemberService{deleteErr: services.ErrMemberNotFound})
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/write/v1/members/member/a@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDuplicateCheckEndpoints(t *testing.T) {
	t.Run("value available", func(t *testing.T) {
		app := setupApp(&stubMemberService{duplicated: false})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/write/v1/members/email/a@x.com", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("value taken", func(t *testing.T) {
		app := setupApp(&stubMemberService{duplicated: true})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/write/v1/members/phone_number/01011112222", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("modify check with unchanged value", func(t *testing.T) {
		// The service owns the self-match rule; the handler just relays it.
		app := setupApp(&stubMemberService{duplicated: false})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/write/v1/members/phone_number/01011112222/01011112222", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("malformed value rejected", func(t *testing.T) {
		app := setupApp(&stubMemberService{})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/write/v1/members/phone_number/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
