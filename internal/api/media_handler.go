package api

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
	"modconsole.com/internal/modapi"
)

// MediaHandler proxies record images so pages never link the upstream host.
type MediaHandler struct {
	client *modapi.Client
	kind   model.Kind
}

func NewMediaHandler(client *modapi.Client, kind model.Kind) *MediaHandler {
	return &MediaHandler{client: client, kind: kind}
}

// Image streams one stored image.
// GET /media/{kind}/:file
func (h *MediaHandler) Image(c *fiber.Ctx) error {
	file, err := url.PathUnescape(c.Params("file"))
	if err != nil || file == "" {
		return handleError(c, domain.NewBadRequestError("Invalid file name"))
	}

	data, contentType, err := h.client.Image(c.UserContext(), h.kind, file)
	if err != nil {
		return handleError(c, err)
	}

	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.Status(fiber.StatusOK).Send(data)
}
