package modapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

// ImageField is the multipart part name of a replacement avatar.
const ImageField = "profileImage"

// Resource is the generic CRUD client of one record kind.
type Resource[T any] struct {
	conn *Conn
	kind model.Kind
}

// NewResource binds kind's endpoint set to conn.
func NewResource[T any](conn *Conn, kind model.Kind) *Resource[T] {
	return &Resource[T]{conn: conn, kind: kind}
}

func Users(conn *Conn) *Resource[model.User] {
	return NewResource[model.User](conn, model.UserKind)
}

func Employees(conn *Conn) *Resource[model.Employee] {
	return NewResource[model.Employee](conn, model.EmployeeKind)
}

// List reads the full collection. A body that is not a JSON array is an error.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.conn.send(ctx, http.MethodGet, r.kind.CollectionPath(), nil, "", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int) (T, error) {
	var out T
	err := r.conn.send(ctx, http.MethodGet, r.kind.ProfilePath(id), nil, "", true, &out)
	return out, err
}

func (r *Resource[T]) Ban(ctx context.Context, id int) (model.ActionResult, error) {
	return r.write(ctx, http.MethodPut, r.kind.BanPath(id))
}

func (r *Resource[T]) Unban(ctx context.Context, id int) (model.ActionResult, error) {
	return r.write(ctx, http.MethodPut, r.kind.UnbanPath(id))
}

func (r *Resource[T]) Delete(ctx context.Context, id int) (model.ActionResult, error) {
	return r.write(ctx, http.MethodDelete, r.kind.ItemPath(id))
}

// Update submits every field, in order, plus the optional image as one multipart body.
func (r *Resource[T]) Update(ctx context.Context, id int, fields []model.Field, image *model.Upload) (model.ActionResult, error) {
	var out model.ActionResult
	body, contentType, err := encodeMultipart(fields, image)
	if err != nil {
		return out, domain.NewInternalError("encode multipart body", err)
	}
	err = r.conn.send(ctx, http.MethodPut, r.kind.ItemPath(id), body, contentType, true, &out)
	return out, err
}

func (r *Resource[T]) write(ctx context.Context, method, path string) (model.ActionResult, error) {
	var out model.ActionResult
	err := r.conn.send(ctx, method, path, nil, "", true, &out)
	return out, err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(fields []model.Field, image *model.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	if image != nil && image.Body != nil {
		contentType := image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, ImageField, quoteEscaper.Replace(image.Filename)))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, image.Body); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var (
	_ domain.ResourceAPI[model.User]     = (*Resource[model.User])(nil)
	_ domain.ResourceAPI[model.Employee] = (*Resource[model.Employee])(nil)
)
