package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"modconsole.com/internal/constants"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/infra"
	"modconsole.com/internal/modapi"
	"modconsole.com/internal/model"
)

// handleError answers err as JSON with the status it carries.
func handleError(c *fiber.Ctx, err error) error {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		code := domain.StatusCode(err)
		msg := appErr.Message
		if msg == "" {
			msg = utils.StatusMessage(code)
		}
		return c.Status(code).JSON(fiber.Map{"Error": msg})
	}
	log.Printf("API: Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"Error": "Internal Server Error"})
}

// parseID reads the positive :id route parameter.
func parseID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, domain.NewBadRequestError("Invalid ID")
	}
	return id, nil
}

// scope is what the session middleware bound to the request.
type scope struct {
	sessionID string
	conn      *modapi.Conn
	actor     string
}

func requestScope(c *fiber.Ctx) scope {
	s := scope{}
	s.sessionID, _ = c.Locals(constants.LocalSessionID).(string)
	s.conn, _ = c.Locals(constants.LocalConn).(*modapi.Conn)
	s.actor, _ = c.Locals(constants.LocalActor).(string)
	return s
}

// pageNotices pops the pending flash and appends the page's own notices.
func pageNotices(c *fiber.Ctx, sessions *infra.SessionStore, own ...model.Notice) []model.Notice {
	notices := make([]model.Notice, 0, len(own)+1)
	if id := requestScope(c).sessionID; id != "" {
		pending, err := sessions.PopFlash(c.UserContext(), id)
		if err != nil {
			log.Printf("API: Failed to read flash: %v", err)
		} else if !pending.Empty() {
			notices = append(notices, pending)
		}
	}
	for _, n := range own {
		if !n.Empty() {
			notices = append(notices, n)
		}
	}
	return notices
}

// flash stores notice for the next page of this session.
func flash(c *fiber.Ctx, sessions *infra.SessionStore, notice model.Notice) {
	if notice.Empty() {
		return
	}
	if err := sessions.SetFlash(c.UserContext(), requestScope(c).sessionID, notice); err != nil {
		log.Printf("API: Failed to store flash: %v", err)
	}
}

// render fills the layout fields every page shares.
func render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	if _, ok := data["Actor"]; !ok {
		data["Actor"] = requestScope(c).actor
	}
	return c.Status(status).Render(name, data)
}
