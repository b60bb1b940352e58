package modapi

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modconsole.com/internal/config"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

type capturedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   []byte
	Header http.Header
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured = append(captured, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
			Body:   body,
			Header: r.Header.Clone(),
		})
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(config.APIConfig{BaseURL: srv.URL + "/"}), &captured
}

func TestBanSendsAuthenticatedPutWithoutBody(t *testing.T) {
	client, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"ok"}`))
	})

	res, err := Users(client.WithToken("tok")).Ban(t.Context(), 42)
	require.NoError(t, err)

	assert.Equal(t, model.ActionResult{Status: true, Message: "ok"}, res)
	require.Len(t, *captured, 1)
	req := (*captured)[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/user/ban/42", req.Path)
	assert.Equal(t, "Bearer tok", req.Auth)
	assert.Empty(t, req.Body)
}

func TestResourcePathsPerKind(t *testing.T) {
	client, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if strings.HasSuffix(r.URL.Path, "/7") {
				_, _ = w.Write([]byte(`{"empID":7,"isActive":1}`))
				return
			}
			_, _ = w.Write([]byte(`[]`))
		default:
			_, _ = w.Write([]byte(`{"status":true}`))
		}
	})
	conn := client.WithToken("tok")
	ctx := t.Context()

	_, err := Employees(conn).List(ctx)
	require.NoError(t, err)
	emp, err := Employees(conn).Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, emp.EmpID)
	_, err = Employees(conn).Unban(ctx, 7)
	require.NoError(t, err)
	_, err = Employees(conn).Delete(ctx, 7)
	require.NoError(t, err)
	_, err = Users(conn).Get(ctx, 7)
	require.NoError(t, err)

	var got []string
	for _, c := range *captured {
		got = append(got, c.Method+" "+c.Path)
	}
	assert.Equal(t, []string{
		"GET /employee",
		"GET /employee/7",
		"PUT /employee/unban/7",
		"DELETE /employee/7",
		"GET /profile/7",
	}, got)
}

func TestUpdateSubmitsEveryFieldAndImage(t *testing.T) {
	var form map[string][]string
	var imageName, imageBody string
	client, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		form = r.MultipartForm.Value
		f, h, err := r.FormFile(ImageField)
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		imageName, imageBody = h.Filename, string(data)
		_, _ = w.Write([]byte(`{"status":true,"message":"saved"}`))
	})

	fields := model.User{Username: "ann", Firstname: "Ann", Email: "ann@example.com"}.FormFields()
	image := &model.Upload{Filename: "me.png", ContentType: "image/png", Body: strings.NewReader("PNGDATA")}

	res, err := Users(client.WithToken("tok")).Update(t.Context(), 3, fields, image)
	require.NoError(t, err)
	assert.True(t, res.Status)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/user/3", req.Path)
	assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data"))

	for _, name := range []string{"username", "firstname", "lastname", "email", "home", "phonenumber"} {
		assert.Contains(t, form, name, "field %s must always be submitted", name)
	}
	assert.Equal(t, []string{""}, form["lastname"])
	assert.Equal(t, "me.png", imageName)
	assert.Equal(t, "PNGDATA", imageBody)
}

func TestUpstreamErrorsCarryServerMessage(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"status":false,"message":"not allowed"}`))
	})

	_, err := Users(client.WithToken("tok")).Delete(t.Context(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, "not allowed", domain.ServerMessage(err))
	assert.Equal(t, http.StatusForbidden, domain.StatusCode(err))
}

func TestTransportFailureHasNoServerMessage(t *testing.T) {
	client := NewClient(config.APIConfig{BaseURL: "http://127.0.0.1:1"})

	_, err := Users(client.WithToken("tok")).List(t.Context())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	assert.Empty(t, domain.ServerMessage(err))
}

func TestListRejectsNonArrayBody(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"no users"}`))
	})

	items, err := Users(client.WithToken("tok")).List(t.Context())
	assert.Error(t, err)
	assert.Nil(t, items)
}

func TestStatsAreSentWithoutToken(t *testing.T) {
	client, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stats/total-users":
			_, _ = w.Write([]byte(`{"total_users":12}`))
		case "/stats/total-reported-users":
			_, _ = w.Write([]byte(`{"total_reported_users":3}`))
		case "/userreport":
			_, _ = w.Write([]byte(`[{"userID":5,"isActive":1}]`))
		}
	})
	conn := client.WithToken("tok")

	total, err := conn.TotalUsers(t.Context())
	require.NoError(t, err)
	reported, err := conn.TotalReportedUsers(t.Context())
	require.NoError(t, err)
	flagged, err := conn.ReportedUsers(t.Context())
	require.NoError(t, err)

	assert.EqualValues(t, 12, total)
	assert.EqualValues(t, 3, reported)
	require.Len(t, flagged, 1)
	assert.Equal(t, 5, flagged[0].UserID)

	assert.Empty(t, (*captured)[0].Auth)
	assert.Empty(t, (*captured)[1].Auth)
	assert.Equal(t, "Bearer tok", (*captured)[2].Auth)
}

func TestSignInAndLogout(t *testing.T) {
	client, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			_, _ = w.Write([]byte(`{"status":true,"message":"welcome","token":"abc"}`))
		case "/logout":
			_, _ = w.Write([]byte(`{"status":true,"message":"bye"}`))
		}
	})

	res, err := client.SignIn(t.Context(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)
	assert.JSONEq(t, `{"email":"admin@example.com","password":"secret"}`, string((*captured)[0].Body))

	out, err := client.WithToken(res.Token).Logout(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "bye", out.Message)
	assert.Equal(t, http.MethodPost, (*captured)[1].Method)
	assert.Equal(t, "Bearer abc", (*captured)[1].Auth)
}

func TestImageProxyFetch(t *testing.T) {
	client, captured := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("JPEG"))
	})

	data, contentType, err := client.Image(t.Context(), model.EmployeeKind, "a b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "JPEG", string(data))
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, "/employee/image/a b.jpg", (*captured)[0].Path)
}

func TestActorFromToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "root", "id": 1})
	signed, err := token.SignedString([]byte("whatever"))
	require.NoError(t, err)

	assert.Equal(t, "root", ActorFromToken(signed))
	assert.Equal(t, "operator", ActorFromToken("not-a-jwt"))

	idOnly, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 9}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "operator#9", ActorFromToken(idOnly))
}
