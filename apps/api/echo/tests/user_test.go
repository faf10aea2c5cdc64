package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/jkatembo/kambi/apps/api/echo"
	"github.com/jkatembo/kambi/core/user"
)

func Test_userApi_register(t *testing.T) {
	app := setup(t)
	existing := createUser(t, "Bemba", "bemba@kambi.cd", "")

	tests := []httpTest{
		{name: "empty body", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: true, Message: map[string]string{
				"name":  "this field is required",
				"email": "this field is required",
			}})},
		{name: "invalid email", body: []byte(`{"name": "Awe", "email": "lol"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: true, Message: map[string]string{
				"email": "email must be a valid email address",
			}})},
		{name: "unknown role", body: []byte(`{"name": "Awe", "email": "awe@kambi.cd", "role": "superuser"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: true, Message: map[string]string{
				"role": "unknown role",
			}})},
		{name: "existing email is reported, not created", body: marchallObj(t, user.NewUser{Name: "Imposter", Email: existing.Email}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, MessageResponse{Message: user.ErrEmailExists.Error()})},
		{name: "ok", body: marchallObj(t, user.NewUser{Name: "Awe", Email: "awe@kambi.cd"}), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/users", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusCreated {
				var usr user.User
				if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
					t.Fatalf("json.Unmarshal() failed: %v", err)
				}
				if usr.ID == "" {
					t.Error("no ID returned")
				}
				if usr.Email != "awe@kambi.cd" {
					t.Errorf("email = %q", usr.Email)
				}
				if usr.Role != user.RoleStudent {
					t.Errorf("role = %q, want %q", usr.Role, user.RoleStudent)
				}
			}
		})
	}
}

func Test_userApi_query(t *testing.T) {
	app := setup(t)
	usr := createUser(t, "Awe", "awe@kambi.cd", "")

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "ok", token: getToken(t, usr.Email), wantCode: http.StatusOK,
			wantData: marchallList(t, usr)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/users", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_queryInstructors(t *testing.T) {
	app := setup(t)
	createUser(t, "Awe", "awe@kambi.cd", "")
	instructor := createUser(t, "Bemba", "bemba@kambi.cd", user.RoleInstructor)

	// no auth required
	req, rec := newRequest(http.MethodGet, "/users/instructor")
	app.ServeHTTP(rec, req)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, instructor)}
	checkCodeAndData(t, tt, rec)
}

func Test_userApi_retrieve(t *testing.T) {
	app := setup(t)
	usr := createUser(t, "Awe", "awe@kambi.cd", "")
	other := createUser(t, "Bemba", "bemba@kambi.cd", "")

	tests := []httpTest{
		{name: "auth required", path: "/users/" + usr.Email,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "owner only", path: "/users/" + usr.Email, token: getToken(t, other.Email),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "unknown user", path: "/users/ghost@kambi.cd", token: getToken(t, "ghost@kambi.cd"),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "ok", path: "/users/" + usr.Email, token: getToken(t, usr.Email),
			wantCode: http.StatusOK, wantData: marchallObj(t, usr)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_setRole(t *testing.T) {
	app := setup(t)
	admin := createUser(t, "Mast", "mast@kambi.cd", user.RoleAdmin)
	usr := createUser(t, "Awe", "awe@kambi.cd", "")
	adminToken := getToken(t, admin.Email)

	promoted := usr
	promoted.Role = user.RoleInstructor

	tests := []httpTest{
		{name: "auth required", path: "/users/admin/" + usr.ID, body: []byte(`{"role": "instructor"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "admin only", path: "/users/admin/" + usr.ID, body: []byte(`{"role": "instructor"}`),
			token:    getToken(t, usr.Email),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "unknown caller is refused", path: "/users/admin/" + usr.ID, body: []byte(`{"role": "instructor"}`),
			token:    getToken(t, "ghost@kambi.cd"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "unknown user", path: "/users/admin/lol", body: []byte(`{"role": "instructor"}`),
			token:    adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "unknown role is a no-op", path: "/users/admin/" + usr.ID, body: []byte(`{"role": "superuser"}`),
			token:    adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, usr)},
		{name: "ok", path: "/users/admin/" + usr.ID, body: []byte(`{"role": "Instructor"}`), // role is cleaned
			token:    adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, promoted)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPatch, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
