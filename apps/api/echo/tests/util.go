package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"

	. "github.com/jkatembo/kambi/apps/api/echo"
	"github.com/jkatembo/kambi/core"
	"github.com/jkatembo/kambi/core/class"
	"github.com/jkatembo/kambi/core/selection"
	"github.com/jkatembo/kambi/core/user"
	emailsvc "github.com/jkatembo/kambi/services/email"
	inmemdb "github.com/jkatembo/kambi/storage/database/inmem"
)

var (
	conf   *core.Config
	usrSvc user.ServiceInterface
	clsSvc class.ServiceInterface
	selSvc selection.ServiceInterface

	errUnauthorized = httpErr{Error: true, Message: "unauthorized access"}
	errForbidden    = httpErr{Error: true, Message: "forbidden access"}
	errNotFound     = httpErr{Error: true, Message: "not found"}
)

func setup(t *testing.T) Server {
	t.Helper()

	conf = core.NewConfig()
	conf.Debug = false
	conf.TestMode = true

	// set up DB & repos
	db := inmemdb.NewDB()

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc = user.NewService(inmemdb.NewUserRepository(db))
	clsSvc = class.NewService(inmemdb.NewClassRepository(db), mailSvc, conf)
	selSvc = selection.NewService(inmemdb.NewSelectionRepository(db))

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         testLogger{},
			UserSvc:        usrSvc,
			ClassSvc:       clsSvc,
			SelectionSvc:   selSvc,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)
}

type testLogger struct{}

func (testLogger) Enable(bool)                       {}
func (testLogger) Debug(string, ...interface{})      {}
func (testLogger) Info(string, ...interface{})       {}
func (testLogger) Warn(string, ...interface{})       {}
func (testLogger) Error(string, ...interface{})      {}
func (testLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func createUser(t *testing.T, name, email, role string) user.User {
	t.Helper()

	usr, err := usrSvc.Register(context.Background(), user.NewUser{Name: name, Email: email, Role: role})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func createClass(t *testing.T, name, instructorEmail string) class.Class {
	t.Helper()

	cls, err := clsSvc.Create(context.Background(), class.NewClass{
		Name:            name,
		InstructorName:  "Awe",
		InstructorEmail: instructorEmail,
		Price:           25,
		Seats:           10,
	})
	if err != nil {
		t.Fatalf("createClass() failed: %v", err)
	}
	return cls
}

func createSelection(t *testing.T, cls class.Class, email string) selection.Selection {
	t.Helper()

	sel, err := selSvc.Add(context.Background(), selection.NewSelection{
		ClassID:   cls.ID,
		ClassName: cls.Name,
		Price:     cls.Price,
		UserEmail: email,
	})
	if err != nil {
		t.Fatalf("createSelection() failed: %v", err)
	}
	return sel
}

type httpErr struct {
	Error   bool        `json:"error"`
	Message interface{} `json:"message"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, email string) string {
	t.Helper()

	token, err := GenerateToken(jwt.MapClaims{"email": email}, []byte(conf.SecretKey))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	if l1, ok := j1.([]interface{}); ok {
		if l2, ok := j2.([]interface{}); ok {
			return assert.ElementsMatch(t, l1, l2), nil
		}
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
