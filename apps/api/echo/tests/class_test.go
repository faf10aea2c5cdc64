package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jkatembo/kambi/core/class"
	"github.com/jkatembo/kambi/core/user"
)

func strPtr(s string) *string { return &s }

func Test_classApi_create(t *testing.T) {
	app := setup(t)
	token := getToken(t, "awe@kambi.cd")

	tests := []httpTest{
		{name: "auth required", body: []byte(`{"name": "Intro to Go", "instructor_email": "awe@kambi.cd"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "empty body", body: []byte(`{}`), token: token, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: true, Message: map[string]string{
				"name":             "this field is required",
				"instructor_email": "this field is required",
			}})},
		{name: "ok", body: []byte(`{"name": "Intro to Go", "instructor_email": "awe@kambi.cd", "price": 25, "seats": 10}`),
			token: token, wantCode: http.StatusCreated},
		{name: "submitted status is ignored", token: token, wantCode: http.StatusCreated,
			body: []byte(`{"name": "Advanced Go", "instructor_email": "awe@kambi.cd", "status": "approved"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/classes", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusCreated {
				var cls class.Class
				if err := json.Unmarshal(rec.Body.Bytes(), &cls); err != nil {
					t.Fatalf("json.Unmarshal() failed: %v", err)
				}
				if cls.ID == "" {
					t.Error("no ID returned")
				}
				if !cls.IsPending() {
					t.Errorf("status = %q, want %q", cls.Status, class.StatusPending)
				}
			}
		})
	}
}

func Test_classApi_query(t *testing.T) {
	app := setup(t)
	cls1 := createClass(t, "Intro to Go", "awe@kambi.cd")
	cls2 := createClass(t, "Advanced Go", "awe@kambi.cd")

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "ok", token: getToken(t, "anyone@kambi.cd"), wantCode: http.StatusOK,
			wantData: marchallList(t, cls1, cls2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/classes", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classApi_queryApproved(t *testing.T) {
	app := setup(t)
	approved := createClass(t, "Intro to Go", "awe@kambi.cd")
	createClass(t, "Advanced Go", "awe@kambi.cd") // stays pending

	var err error
	approved, err = clsSvc.Transition(context.Background(), approved.ID, class.Transition{Status: strPtr(class.StatusApproved)})
	if err != nil {
		t.Fatalf("Transition() failed: %v", err)
	}

	// no auth required
	req, rec := newRequest(http.MethodGet, "/classes/approved")
	app.ServeHTTP(rec, req)

	tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, approved)}
	checkCodeAndData(t, tt, rec)
}

func Test_classApi_queryByInstructor(t *testing.T) {
	app := setup(t)
	cls := createClass(t, "Intro to Go", "awe@kambi.cd")
	createClass(t, "Advanced Go", "bemba@kambi.cd")

	tests := []httpTest{
		{name: "auth required", path: "/classes/awe@kambi.cd",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "owner only", path: "/classes/awe@kambi.cd", token: getToken(t, "bemba@kambi.cd"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "ok", path: "/classes/awe@kambi.cd", token: getToken(t, "awe@kambi.cd"),
			wantCode: http.StatusOK, wantData: marchallList(t, cls)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_classApi_transition(t *testing.T) {
	app := setup(t)
	admin := createUser(t, "Mast", "mast@kambi.cd", user.RoleAdmin)
	student := createUser(t, "Awe", "awe@kambi.cd", "")
	adminToken := getToken(t, admin.Email)

	tests := []httpTest{
		{name: "auth required", body: []byte(`{"status": "approved"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "admin only", body: []byte(`{"status": "approved"}`), token: getToken(t, student.Email),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{name: "unknown class", path: "/classes/admin/lol", body: []byte(`{"status": "approved"}`), token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "approve", body: []byte(`{"status": "approved"}`), token: adminToken,
			wantCode: http.StatusOK, extra: class.StatusApproved},
		{name: "deny with feedback", body: []byte(`{"status": "denied", "feedback": "too few seats"}`), token: adminToken,
			wantCode: http.StatusOK, extra: class.StatusDenied},
		{name: "feedback only keeps status", body: []byte(`{"feedback": "promising"}`), token: adminToken,
			wantCode: http.StatusOK, extra: class.StatusPending},
		{name: "unknown status is a no-op", body: []byte(`{"status": "archived"}`), token: adminToken,
			wantCode: http.StatusOK, extra: class.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				cls := createClass(t, "Intro to Go", "instructor@kambi.cd")
				path = "/classes/admin/" + cls.ID
			}
			req, rec := newAuthRequest(http.MethodPatch, path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if wantStatus, ok := tt.extra.(string); ok && rec.Code == http.StatusOK {
				var cls class.Class
				if err := json.Unmarshal(rec.Body.Bytes(), &cls); err != nil {
					t.Fatalf("json.Unmarshal() failed: %v", err)
				}
				if cls.Status != wantStatus {
					t.Errorf("status = %q, want %q", cls.Status, wantStatus)
				}
			}
		})
	}
}

// an approved class shows up on the public listing
func Test_classApi_approveThenList(t *testing.T) {
	app := setup(t)
	admin := createUser(t, "Mast", "mast@kambi.cd", user.RoleAdmin)
	cls := createClass(t, "Intro to Go", "awe@kambi.cd")

	req, rec := newAuthRequest(http.MethodPatch, "/classes/admin/"+cls.ID, getToken(t, admin.Email),
		[]byte(`{"status": "approved"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}

	req, rec = newRequest(http.MethodGet, "/classes/approved")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}

	var classes []class.Class
	if err := json.Unmarshal(rec.Body.Bytes(), &classes); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	if len(classes) != 1 || classes[0].ID != cls.ID {
		t.Errorf("approved listing = %v", classes)
	}
}

func Test_classApi_destroy(t *testing.T) {
	app := setup(t)
	cls := createClass(t, "Intro to Go", "awe@kambi.cd")

	tests := []httpTest{
		{name: "auth required", path: "/classes/" + cls.ID,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "ok", path: "/classes/" + cls.ID, token: getToken(t, "awe@kambi.cd"),
			wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodDelete, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	if _, err := clsSvc.GetByID(context.Background(), cls.ID); err != class.ErrNotFound {
		t.Errorf("GetByID() error = %v, want %v", err, class.ErrNotFound)
	}
}
