package api

import (
	"context"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/infra"
	"modconsole.com/internal/modapi"
	"modconsole.com/internal/model"
	"modconsole.com/internal/service"
)

// ResourceBinder builds the remote client of one kind for an operator.
type ResourceBinder[T any] func(conn *modapi.Conn) domain.ResourceAPI[T]

// ResourceHandler serves the list, detail and edit pages of one kind.
type ResourceHandler[T model.Record[T]] struct {
	kind     model.Kind
	bind     ResourceBinder[T]
	sessions *infra.SessionStore
	recorder domain.ActionRecorder
}

func NewResourceHandler[T model.Record[T]](kind model.Kind, bind ResourceBinder[T], sessions *infra.SessionStore, recorder domain.ActionRecorder) *ResourceHandler[T] {
	return &ResourceHandler[T]{kind: kind, bind: bind, sessions: sessions, recorder: recorder}
}

func (h *ResourceHandler[T]) listView(c *fiber.Ctx) *service.ListView[T] {
	s := requestScope(c)
	return service.NewListView[T](h.kind, h.bind(s.conn), h.recorder, s.actor)
}

func (h *ResourceHandler[T]) snapshotName() string {
	return h.kind.Name + ".list"
}

// List renders a freshly fetched collection.
// GET /admin/{kind}
func (h *ResourceHandler[T]) List(c *fiber.Ctx) error {
	view := h.listView(c)
	view.Activate(c.UserContext())
	return h.renderList(c, view)
}

// Ban suspends a record and patches the rendered collection in place.
// POST /admin/{kind}/:id/ban
func (h *ResourceHandler[T]) Ban(c *fiber.Ctx) error {
	return h.moderate(c, (*service.ListView[T]).Ban)
}

// Unban lifts a suspension.
// POST /admin/{kind}/:id/unban
func (h *ResourceHandler[T]) Unban(c *fiber.Ctx) error {
	return h.moderate(c, (*service.ListView[T]).Unban)
}

// Delete removes a record; the collection is re-read only on success.
// POST /admin/{kind}/:id/delete
func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	return h.moderate(c, (*service.ListView[T]).Delete)
}

func (h *ResourceHandler[T]) moderate(c *fiber.Ctx, command func(*service.ListView[T], context.Context, int)) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	view := h.listView(c)
	h.restore(c, view)
	command(view, c.UserContext(), id)
	return h.renderList(c, view)
}

// restore reloads the last rendered collection, fetching only when the
// session has none.
func (h *ResourceHandler[T]) restore(c *fiber.Ctx, view *service.ListView[T]) {
	var items []T
	ok, err := h.sessions.LoadView(c.UserContext(), requestScope(c).sessionID, h.snapshotName(), &items)
	if err != nil {
		log.Printf("ResourceHandler: Failed to restore %s list: %v", h.kind.Name, err)
	}
	if !ok {
		view.Activate(c.UserContext())
		return
	}
	view.Restore(items)
}

func (h *ResourceHandler[T]) renderList(c *fiber.Ctx, view *service.ListView[T]) error {
	if err := h.sessions.SaveView(c.UserContext(), requestScope(c).sessionID, h.snapshotName(), view.Items); err != nil {
		log.Printf("ResourceHandler: Failed to save %s list: %v", h.kind.Name, err)
	}
	return render(c, fiber.StatusOK, "resource/index", fiber.Map{
		"Title":   h.kind.Title,
		"Kind":    h.kind,
		"Rows":    view.Rows(),
		"Notices": pageNotices(c, h.sessions, view.Notice),
	})
}

// View renders one record with its report history.
// GET /admin/{kind}/view/:id
func (h *ResourceHandler[T]) View(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	view := service.NewDetailView[T](h.kind, h.bind(requestScope(c).conn))
	view.Activate(c.UserContext(), id)

	return render(c, fiber.StatusOK, "resource/view", fiber.Map{
		"Title":   h.kind.Title,
		"Kind":    h.kind,
		"ID":      id,
		"Found":   view.Found,
		"Summary": view.Record.Summary(),
		"Fields":  view.Fields(),
		"Reports": view.Reports,
		"Image":   h.kind.MediaPath(view.Record.Image()),
		"Actions": model.ActionsFor(view.Record.Flag()),
		"Notices": pageNotices(c, h.sessions),
	})
}

// Edit renders the form filled with the record's current values.
// GET /admin/{kind}/update/:id
func (h *ResourceHandler[T]) Edit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	view := h.editView(c)
	view.Activate(c.UserContext(), id)
	return h.renderEdit(c, view)
}

// Update resubmits every field and the optional image.
// POST /admin/{kind}/update/:id
func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	view := h.editView(c)
	var zero T
	values := make(map[string]string)
	for _, f := range zero.FormFields() {
		values[f.Name] = c.FormValue(f.Name)
	}
	view.Bind(id, values)

	upload, closeUpload, err := formUpload(c, modapi.ImageField)
	if err != nil {
		return handleError(c, err)
	}
	defer closeUpload()

	if view.Submit(c.UserContext(), upload) == service.SubmitSaved {
		flash(c, h.sessions, view.Notice)
		return c.Redirect(h.kind.ConsolePath(), fiber.StatusSeeOther)
	}
	return h.renderEdit(c, view)
}

func (h *ResourceHandler[T]) editView(c *fiber.Ctx) *service.EditView[T] {
	s := requestScope(c)
	return service.NewEditView[T](h.kind, h.bind(s.conn), h.recorder, s.actor)
}

func (h *ResourceHandler[T]) renderEdit(c *fiber.Ctx, view *service.EditView[T]) error {
	return render(c, fiber.StatusOK, "resource/edit", fiber.Map{
		"Title":      h.kind.Title,
		"Kind":       h.kind,
		"ID":         view.ID,
		"Loaded":     view.Loaded,
		"Fields":     view.Fields,
		"Image":      h.kind.MediaPath(view.Image),
		"ImageField": modapi.ImageField,
		"Notices":    pageNotices(c, h.sessions, view.Notice),
	})
}

// formUpload opens the optional file part name. An absent or empty part is nil.
func formUpload(c *fiber.Ctx, name string) (*model.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(name)
	if err != nil || fh.Size == 0 {
		return nil, noop, nil
	}
	file, err := fh.Open()
	if err != nil {
		return nil, noop, domain.NewBadRequestError("Unreadable image upload")
	}
	return &model.Upload{
		Filename:    fh.Filename,
		ContentType: uploadContentType(fh),
		Body:        file,
	}, func() { _ = file.Close() }, nil
}

func uploadContentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get(fiber.HeaderContentType); ct != "" {
		return ct
	}
	return fiber.MIMEOctetStream
}

// Register mounts the pages of this kind under /admin/{kind}.
func (h *ResourceHandler[T]) Register(r fiber.Router) {
	g := r.Group(h.kind.ConsolePath())
	g.Get("/", h.List)
	g.Get("/view/:id", h.View)
	g.Get("/update/:id", h.Edit)
	g.Post("/update/:id", h.Update)
	g.Post("/:id/ban", h.Ban)
	g.Post("/:id/unban", h.Unban)
	g.Post("/:id/delete", h.Delete)
}
