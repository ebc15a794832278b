package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/staffdir/staffdir/internal/employee/repository"
	"github.com/staffdir/staffdir/internal/employee/service"
	"github.com/staffdir/staffdir/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToken implements middleware.Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

// fakeVerifier resolves two well-known tokens; anything else is invalid.
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	switch raw {
	case "admin-token":
		return &fakeToken{data: map[string]interface{}{"sub": "u-admin", "role": "admin"}}, nil
	case "viewer-token":
		return &fakeToken{data: map[string]interface{}{"sub": "u-viewer", "role": "viewer"}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func newTestRouter() (*gin.Engine, *repository.MemoryRepo) {
	g := gin.New()
	repo := repository.NewMemoryRepo()
	New(service.New(repo)).Register(g, &fakeVerifier{})
	return g, repo
}

func doJSON(g *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

const adaBody = `{"name":"Ada","email":"ada@x.com","phone":"1234567890","department":"Eng","position":"Dev","salary":1000}`

func TestEmployees_NoTokenRejected(t *testing.T) {
	g, _ := newTestRouter()

	w := doJSON(g, http.MethodGet, "/api/employees", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "No token provided", body["message"])
}

func TestEmployees_InvalidTokenRejected(t *testing.T) {
	g, _ := newTestRouter()

	w := doJSON(g, http.MethodGet, "/api/employees", "garbage", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Invalid token", body["message"])
}

func TestEmployees_CreateRoundTrip(t *testing.T) {
	g, _ := newTestRouter()

	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", adaBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, created["createdAt"])

	// fetch by the returned id; all six business fields round-trip
	w = doJSON(g, http.MethodGet, "/api/employees/"+id, "viewer-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, "ada@x.com", got["email"])
	assert.Equal(t, "1234567890", got["phone"])
	assert.Equal(t, "Eng", got["department"])
	assert.Equal(t, "Dev", got["position"])
	assert.Equal(t, 1000.0, got["salary"])
}

func TestEmployees_CreateNormalizesEmail(t *testing.T) {
	g, _ := newTestRouter()

	body := `{"name":"Ada","email":"ADA@X.COM","phone":"1234567890","department":"Eng","position":"Dev","salary":1000}`
	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", body)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "ada@x.com", created["email"])
}

func TestEmployees_CreateMissingFields(t *testing.T) {
	g, repo := newTestRouter()

	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", `{"name":"Ada","position":"Dev"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Message string   `json:"message"`
		Fields  []string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Missing required fields", body.Message)
	require.Equal(t, []string{"email", "phone", "department", "salary"}, body.Fields)

	// nothing persisted
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestEmployees_CreateValidationErrors(t *testing.T) {
	g, repo := newTestRouter()

	body := `{"name":"Ada","email":"not-an-email","phone":"1234567890","department":"Eng","position":"Dev","salary":-5}`
	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Validation error", resp.Message)
	require.Len(t, resp.Errors, 2)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestEmployees_CreateDuplicateEmail(t *testing.T) {
	g, repo := newTestRouter()

	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", adaBody)
	require.Equal(t, http.StatusCreated, w.Code)

	// same email, different case
	dup := `{"name":"Eve","email":"ADA@x.com","phone":"9","department":"Ops","position":"Mgr","salary":2}`
	w = doJSON(g, http.MethodPost, "/api/employees", "admin-token", dup)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Email already exists", body["message"])

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestEmployees_ViewerCanReadButNotWrite(t *testing.T) {
	g, repo := newTestRouter()

	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", adaBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	// reads are open to any valid identity
	w = doJSON(g, http.MethodGet, "/api/employees", "viewer-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(g, http.MethodGet, "/api/employees/"+id, "viewer-token", "")
	require.Equal(t, http.StatusOK, w.Code)

	// writes are admin-only and must leave the store untouched
	w = doJSON(g, http.MethodPut, "/api/employees/"+id, "viewer-token", `{"salary":9999}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Access denied", body["message"])

	w = doJSON(g, http.MethodDelete, "/api/employees/"+id, "viewer-token", "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(g, http.MethodPost, "/api/employees", "viewer-token", adaBody)
	require.Equal(t, http.StatusForbidden, w.Code)

	got, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 1000.0, got.Salary)
}

func TestEmployees_GetUnknownID(t *testing.T) {
	g, _ := newTestRouter()

	w := doJSON(g, http.MethodGet, "/api/employees/does-not-exist", "viewer-token", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Employee not found", body["message"])
}

func TestEmployees_UpdateMergesAndValidates(t *testing.T) {
	g, _ := newTestRouter()

	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", adaBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	// partial update leaves other fields alone
	w = doJSON(g, http.MethodPut, "/api/employees/"+id, "admin-token", `{"position":"Lead","salary":2000}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Lead", updated["position"])
	assert.Equal(t, 2000.0, updated["salary"])
	assert.Equal(t, "Ada", updated["name"])

	// invalid partial update is rejected
	w = doJSON(g, http.MethodPut, "/api/employees/"+id, "admin-token", `{"salary":-1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// unknown id
	w = doJSON(g, http.MethodPut, "/api/employees/nope", "admin-token", `{"position":"X"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployees_UpdateToDuplicateEmail(t *testing.T) {
	g, _ := newTestRouter()

	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", adaBody)
	require.Equal(t, http.StatusCreated, w.Code)

	eve := `{"name":"Eve","email":"eve@x.com","phone":"9","department":"Ops","position":"Mgr","salary":2}`
	w = doJSON(g, http.MethodPost, "/api/employees", "admin-token", eve)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	eveID := created["id"].(string)

	w = doJSON(g, http.MethodPut, "/api/employees/"+eveID, "admin-token", `{"email":"ada@x.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Email already exists", body["message"])
}

func TestEmployees_DeleteThenNotFound(t *testing.T) {
	g, _ := newTestRouter()

	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", adaBody)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created["id"].(string)

	w = doJSON(g, http.MethodDelete, "/api/employees/"+id, "admin-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Employee deleted successfully", body["message"])

	// repeating the delete reports not found, as does deleting a fresh unknown id
	w = doJSON(g, http.MethodDelete, "/api/employees/"+id, "admin-token", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(g, http.MethodDelete, "/api/employees/never-existed", "admin-token", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployees_ListReturnsAll(t *testing.T) {
	g, _ := newTestRouter()

	for i, em := range []string{"a@x.com", "b@x.com"} {
		body := fmt.Sprintf(`{"name":"N%d","email":%q,"phone":"1","department":"D","position":"P","salary":1}`, i, em)
		w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(g, http.MethodGet, "/api/employees", "admin-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	emails := map[string]bool{}
	for _, e := range list {
		emails[e["email"].(string)] = true
	}
	assert.True(t, emails["a@x.com"])
	assert.True(t, emails["b@x.com"])
}

func TestEmployees_MalformedJSONBody(t *testing.T) {
	g, _ := newTestRouter()

	w := doJSON(g, http.MethodPost, "/api/employees", "admin-token", `{"name":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Invalid request body", body["message"])
}
