package middleware

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"modconsole.com/internal/constants"
	"modconsole.com/internal/infra"
	"modconsole.com/internal/modapi"
)

// IdentityStore resolves a session id to the operator's token and name.
type IdentityStore interface {
	Identity(ctx context.Context, id string) (token, actor string, err error)
}

// RequireSession binds the operator's bearer token to the request, or sends
// the browser to the sign-in page.
func RequireSession(store IdentityStore, client *modapi.Client, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookieName)

		token, actor, err := store.Identity(c.UserContext(), id)
		if err != nil {
			if !errors.Is(err, infra.ErrSessionNotFound) {
				log.Printf("Middleware: Failed to load session: %v", err)
			}
			c.ClearCookie(cookieName)
			return c.Redirect("/signin", fiber.StatusSeeOther)
		}

		c.Locals(constants.LocalSessionID, id)
		c.Locals(constants.LocalConn, client.WithToken(token))
		c.Locals(constants.LocalActor, actor)
		return c.Next()
	}
}
