package handlers

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/hyeonlab/member_service/internal/dto"
	"github.com/hyeonlab/member_service/internal/services"
	"github.com/hyeonlab/member_service/pkg/utils"
)

// Field-shape rules applied at the edge; everything past the handler works
// with already-validated values.
var (
	emailPattern       = regexp.MustCompile(`^[a-zA-Z0-9]+@[a-zA-Z0-9]+\.[A-Za-z]+$`)
	phoneNumberPattern = regexp.MustCompile(`^01[0-9]{9}$`)
	nicknamePattern    = regexp.MustCompile(`^[-가-힣a-zA-Z0-9!@#$%&]{5,12}$`)
)

const minPasswordLength = 8

type MemberHandler struct {
	svc services.MemberService
}

func NewMemberHandler(svc services.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

func (h *MemberHandler) SetupRoutes(app *fiber.App) {
	members := app.Group("/api/write/v1/members")

	// Signup-flow duplicate checks
	members.Get("/email/:email", h.IsDuplicatedEmail)
	members.Get("/phone_number/:phoneNumber", h.IsDuplicatedPhoneNumber)
	members.Get("/nickname/:nickname", h.IsDuplicatedNickname)

	// Modify-flow duplicate checks (current value vs proposed value)
	members.Get("/phone_number/:current/:proposed", h.IsDuplicatedPhoneNumberInModify)
	members.Get("/nickname/:current/:proposed", h.IsDuplicatedNicknameInModify)

	// Write path
	members.Post("/member", h.SignUp)
	members.Put("/member/:email", h.Modify)
	members.Delete("/member/:email", h.Delete)
}

func (h *MemberHandler) SignUp(ctx *fiber.Ctx) error {
	var input dto.MemberSignUpInfo
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if !emailPattern.MatchString(input.Email) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid email format")
	}
	if !phoneNumberPattern.MatchString(input.PhoneNumber) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid phone number format")
	}
	if !nicknamePattern.MatchString(input.Nickname) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid nickname format")
	}
	if len(input.Password) < minPasswordLength {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "password is too short")
	}

	if err := h.svc.SignUp(input); err != nil {
		return responseFromServiceError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusCreated, "member created")
}

func (h *MemberHandler) Modify(ctx *fiber.Ctx) error {
	email := ctx.Params("email")
	if !emailPattern.MatchString(email) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid email format")
	}

	var input dto.MemberModifyInfo
	if err := ctx.BodyParser(&input); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if !phoneNumberPattern.MatchString(input.PhoneNumber) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid phone number format")
	}
	if !nicknamePattern.MatchString(input.Nickname) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid nickname format")
	}

	if err := h.svc.Modify(email, input); err != nil {
		return responseFromServiceError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "member updated")
}

func (h *MemberHandler) Delete(ctx *fiber.Ctx) error {
	email := ctx.Params("email")
	if !emailPattern.MatchString(email) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid email format")
	}

	if err := h.svc.Delete(email); err != nil {
		return responseFromServiceError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "member deleted")
}

func (h *MemberHandler) IsDuplicatedEmail(ctx *fiber.Ctx) error {
	email := ctx.Params("email")
	if !emailPattern.MatchString(email) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid email format")
	}
	return h.duplicateCheck(ctx, email, h.svc.IsDuplicatedEmail, "email")
}

func (h *MemberHandler) IsDuplicatedPhoneNumber(ctx *fiber.Ctx) error {
	phoneNumber := ctx.Params("phoneNumber")
	if !phoneNumberPattern.MatchString(phoneNumber) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid phone number format")
	}
	return h.duplicateCheck(ctx, phoneNumber, h.svc.IsDuplicatedPhoneNumber, "phone number")
}

func (h *MemberHandler) IsDuplicatedNickname(ctx *fiber.Ctx) error {
	nickname := ctx.Params("nickname")
	if !nicknamePattern.MatchString(nickname) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid nickname format")
	}
	return h.duplicateCheck(ctx, nickname, h.svc.IsDuplicatedNickname, "nickname")
}

func (h *MemberHandler) IsDuplicatedPhoneNumberInModify(ctx *fiber.Ctx) error {
	current := ctx.Params("current")
	proposed := ctx.Params("proposed")
	if !phoneNumberPattern.MatchString(current) || !phoneNumberPattern.MatchString(proposed) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid phone number format")
	}

	duplicated, err := h.svc.IsDuplicatedPhoneNumberInModify(current, proposed)
	if err != nil {
		return responseFromServiceError(ctx, err)
	}
	if duplicated {
		return utils.ResponseError(ctx, fiber.StatusConflict, "phone number is already in use")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"duplicated": false})
}

func (h *MemberHandler) IsDuplicatedNicknameInModify(ctx *fiber.Ctx) error {
	current := ctx.Params("current")
	proposed := ctx.Params("proposed")
	if !nicknamePattern.MatchString(current) || !nicknamePattern.MatchString(proposed) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid nickname format")
	}

	duplicated, err := h.svc.IsDuplicatedNicknameInModify(current, proposed)
	if err != nil {
		return responseFromServiceError(ctx, err)
	}
	if duplicated {
		return utils.ResponseError(ctx, fiber.StatusConflict, "nickname is already in use")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"duplicated": false})
}

func (h *MemberHandler) duplicateCheck(ctx *fiber.Ctx, value string, check func(string) (bool, error), fieldName string) error {
	duplicated, err := check(value)
	if err != nil {
		return responseFromServiceError(ctx, err)
	}
	if duplicated {
		return utils.ResponseError(ctx, fiber.StatusConflict, fieldName+" is already in use")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"duplicated": false})
}

// responseFromServiceError maps the service's typed failures onto transport
// status codes. Publish failures get their own status so operators can tell
// a committed-but-unannounced write apart from a plain internal error.
func responseFromServiceError(ctx *fiber.Ctx, err error) error {
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &conflict):
		return utils.ResponseError(ctx, fiber.StatusConflict, conflict.Error())
	case errors.Is(err, services.ErrMemberNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, "member not found")
	case errors.Is(err, services.ErrPublishFailed):
		return utils.ResponseError(ctx, fiber.StatusBadGateway, services.ErrPublishFailed.Error())
	default:
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
	}
}
