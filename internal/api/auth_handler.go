package api

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"modconsole.com/internal/config"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/infra"
	"modconsole.com/internal/modapi"
	"modconsole.com/internal/model"
)

// AuthHandler signs operators in against the moderation service.
type AuthHandler struct {
	client   *modapi.Client
	sessions *infra.SessionStore
	recorder domain.ActionRecorder
	cookie   config.SessionConfig
}

func NewAuthHandler(client *modapi.Client, sessions *infra.SessionStore, recorder domain.ActionRecorder, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{client: client, sessions: sessions, recorder: recorder, cookie: cookie}
}

type signInForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// ShowSignIn renders the sign-in form.
// GET /signin
func (h *AuthHandler) ShowSignIn(c *fiber.Ctx) error {
	var notices []model.Notice
	if msg := c.Query("message"); msg != "" {
		notices = append(notices, model.SuccessNotice(msg))
	}
	if msg := c.Query("error"); msg != "" {
		notices = append(notices, model.ErrorNotice(msg))
	}
	return h.renderSignIn(c, fiber.StatusOK, "", notices)
}

// SignIn exchanges credentials for a token and opens a console session.
// POST /signin
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var form signInForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderSignIn(c, fiber.StatusBadRequest, "", []model.Notice{model.ErrorNotice("Invalid request")})
	}
	// 表单值指向 fasthttp 的请求缓冲区，审计记录在请求结束后才落库
	form.Email = utils.CopyString(strings.TrimSpace(form.Email))
	if form.Email == "" || form.Password == "" {
		return h.renderSignIn(c, fiber.StatusBadRequest, form.Email, []model.Notice{model.ErrorNotice("Email and password are required")})
	}

	ctx := c.UserContext()
	res, err := h.client.SignIn(ctx, form.Email, form.Password)
	h.record(c, form.Email, res, err)

	if err != nil {
		log.Printf("AuthHandler: Sign in failed for %s: %v", form.Email, err)
		msg := domain.ServerMessage(err)
		if msg == "" {
			msg = "An error occurred while signing in"
		}
		return h.renderSignIn(c, fiber.StatusUnauthorized, form.Email, []model.Notice{model.ErrorNotice(msg)})
	}
	if !res.Status || res.Token == "" {
		msg := res.Message
		if msg == "" {
			msg = "Invalid credentials"
		}
		return h.renderSignIn(c, fiber.StatusUnauthorized, form.Email, []model.Notice{model.ErrorNotice(msg)})
	}

	actor := modapi.ActorFromToken(res.Token)
	id, err := h.sessions.Create(ctx, res.Token, actor)
	if err != nil {
		return handleError(c, domain.NewInternalError("failed to open session", err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.CookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.TTL),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	if res.Message != "" {
		if err := h.sessions.SetFlash(ctx, id, model.SuccessNotice(res.Message)); err != nil {
			log.Printf("AuthHandler: Failed to store flash: %v", err)
		}
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) record(c *fiber.Ctx, email string, res model.SignInResult, err error) {
	if h.recorder == nil {
		return
	}
	entry := model.ModerationAction{
		Actor:     email,
		Resource:  model.OperatorKind.Name,
		Action:    model.ActionSignIn,
		Succeeded: err == nil && res.Status && res.Token != "",
		Message:   res.Message,
	}
	if err != nil {
		entry.Message = err.Error()
	}
	h.recorder.Record(c.UserContext(), entry)
}

func (h *AuthHandler) renderSignIn(c *fiber.Ctx, status int, email string, notices []model.Notice) error {
	return render(c, status, "signin", fiber.Map{
		"Title":   "Sign in",
		"Email":   email,
		"Notices": notices,
	})
}
