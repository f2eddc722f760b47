package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/adapters/http/views"
	"coop-console/internal/config"
	"coop-console/internal/core/services"
	"coop-console/internal/core/tabs"
	"coop-console/internal/testutil/fakeapi"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func newApp(t *testing.T, mode tabs.Mode) (*fiber.App, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New(t)
	cfg := &config.Config{
		AppMode: "dev",
		Port:    "0",
		API:     config.APIConfig{BaseURL: srv.URL},
		Views:   config.ViewsConfig{TabMode: "eager", PageSize: 20, Concurrency: 4},
		Cookie: config.CookieConfig{
			TokenName: "token", AssociationName: "associationId", CooperativeName: "cooperativeId",
			Secure: true, SameSite: "strict",
		},
	}
	vs := services.NewViewService(srv.APIClient(), services.ViewOptions{TabMode: mode, Concurrency: 4, PageSize: 20})

	app := fiber.New(fiber.Config{Views: views.New(), ViewsLayout: views.Layout, ErrorHandler: middleware.CustomErrorHandler})
	middleware.Setup(app, cfg)
	Setup(app, vs, cfg)
	return app, srv
}

func withCookies(req *http.Request, kv ...string) *http.Request {
	for i := 0; i+1 < len(kv); i += 2 {
		req.AddCookie(&http.Cookie{Name: kv[i], Value: kv[i+1]})
	}
	return req
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAssociationsOverviewPage(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/associations/overview", 200,
		`{"data":[{"id":"a1","name":"Assoc X","members":5,"loans":2,"created":"2023-01-01","defaultRate":"3%"}]}`)

	req := withCookies(httptest.NewRequest(http.MethodGet, "/associations", nil), "token", "tok", "cooperativeId", "c1")
	resp, html := send(t, app, req)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d body = %s", resp.StatusCode, html)
	}
	for _, want := range []string{"<td>Assoc X</td>", "<td>5</td>", "<td>2</td>", "<td>3%</td>", `<a href="/associations/a1">View</a>`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
	if got := resp.Header.Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Errorf("cache-control = %q", got)
	}

	api, _ := srv.Last("GET", "/associations/overview")
	if api.Header.Get("Authorization") != "Bearer tok" {
		t.Errorf("authorization = %q", api.Header.Get("Authorization"))
	}
	if rid := resp.Header.Get(fiber.HeaderXRequestID); rid == "" || api.Header.Get("X-Request-ID") != rid {
		t.Errorf("request id not forwarded: console %q api %q", rid, api.Header.Get("X-Request-ID"))
	}
}

func TestAssociationsOverviewMalformed(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/associations/overview", 200, `{"status":"success","data":"nope"}`)

	req := withCookies(httptest.NewRequest(http.MethodGet, "/associations", nil), "token", "tok", "cooperativeId", "c1")
	resp, html := send(t, app, req)
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(html, "Unexpected response while fetching associations") {
		t.Fatalf("status = %d body = %s", resp.StatusCode, html)
	}
	if strings.Contains(html, "<table>") {
		t.Fatal("table rendered for malformed payload")
	}
}

func TestRecentMeetingsPage(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/admin/meetings/recent", 200,
		`{"status":"success","data":[{"id":1,"name":"AGM","attendeesCount":8,"totalMembers":10}]}`)

	req := withCookies(httptest.NewRequest(http.MethodGet, "/attendance", nil), "token", "tok")
	_, html := send(t, app, req)
	if !strings.Contains(html, "<td>80%</td>") || !strings.Contains(html, `href="/meetings/1/attendance"`) {
		t.Fatalf("body = %s", html)
	}
}

func TestLoanCreate(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/associations/a1/loans", 200, `{"data":[{"id":1,"memberName":"Ada","amount":50000,"status":"Pending"}]}`)
	srv.JSON("POST", "/loans", 201, `{"status":"success","message":"Loan created"}`)

	req := withCookies(postForm("/loans", url.Values{
		"memberId": {"m1"}, "amount": {"50000"}, "interestRate": {"5"}, "termMonths": {"12"},
		"issueDate": {"2024-01-01"}, "purpose": {"Farm inputs"},
	}), "token", "tok", "associationId", "a1")
	resp, html := send(t, app, req)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d body = %s", resp.StatusCode, html)
	}
	if srv.Calls("POST", "/loans") != 1 || srv.Calls("GET", "/associations/a1/loans") != 1 {
		t.Fatalf("posts = %d fetches = %d", srv.Calls("POST", "/loans"), srv.Calls("GET", "/associations/a1/loans"))
	}
	api, _ := srv.Last("POST", "/loans")
	var body map[string]any
	if err := json.Unmarshal(api.Body, &body); err != nil || body["amount"] != float64(50000) {
		t.Fatalf("api body = %s (%v)", api.Body, err)
	}
	if !strings.Contains(html, "Loan saved") || strings.Contains(html, `class="modal"`) || !strings.Contains(html, "50,000") {
		t.Fatalf("body = %s", html)
	}
}

func TestLoanCreateValidation(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/associations/a1/loans", 200, `{"data":[]}`)

	req := withCookies(postForm("/loans", url.Values{"memberId": {"m1"}, "amount": {"50000"}}),
		"token", "tok", "associationId", "a1")
	resp, html := send(t, app, req)

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if srv.Calls("POST", "/loans") != 0 {
		t.Fatal("request sent for an incomplete form")
	}
	if !strings.Contains(html, "Please fill in the required fields: Interest rate") || !strings.Contains(html, `value="50000"`) {
		t.Fatalf("body = %s", html)
	}
}

func TestLoanCreateNotANumber(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/associations/a1/loans", 200, `{"data":[]}`)

	req := withCookies(postForm("/loans", url.Values{
		"memberId": {"m1"}, "amount": {"NaN"}, "interestRate": {"5"}, "termMonths": {"12"},
		"issueDate": {"2024-01-01"}, "purpose": {"Farm inputs"},
	}), "token", "tok", "associationId", "a1")
	resp, html := send(t, app, req)

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d body = %s", resp.StatusCode, html)
	}
	if srv.Calls("POST", "/loans") != 0 {
		t.Fatal("request sent for a non-numeric amount")
	}
	if !strings.Contains(html, "Please enter a number for: Amount") {
		t.Fatalf("body = %s", html)
	}
}

func TestLoanCreateServerError(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/associations/a1/loans", 200, `{"data":[]}`)
	srv.JSON("POST", "/loans", 500, `{"status":"error"}`)

	req := withCookies(postForm("/loans", url.Values{
		"memberId": {"m1"}, "amount": {"50,000"}, "interestRate": {"5"}, "termMonths": {"12"},
		"issueDate": {"2024-01-01"}, "purpose": {"Farm inputs"},
	}), "token", "tok", "associationId", "a1")
	resp, html := send(t, app, req)

	if resp.StatusCode != fiber.StatusBadGateway || !strings.Contains(html, "Failed to save loan") {
		t.Fatalf("status = %d body = %s", resp.StatusCode, html)
	}
	if srv.Calls("GET", "/associations/a1/loans") != 1 {
		t.Fatalf("list fetched %d times", srv.Calls("GET", "/associations/a1/loans"))
	}
}

func TestTenantDetailBadges(t *testing.T) {
	app, srv := newApp(t, tabs.OnDemand)
	srv.JSON("GET", "/associations/a1", 200, `{"data":{"id":"a1","name":"Assoc X"}}`)
	srv.JSON("GET", "/associations/a1/transactions", 200,
		`{"data":[{"id":1,"reference":"TX-1","amount":1200,"status":"failed"}],"meta":{"total":45}}`)

	req := withCookies(httptest.NewRequest(http.MethodGet, "/associations/a1?tab=transactions&page=2", nil), "token", "tok")
	resp, html := send(t, app, req)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d body = %s", resp.StatusCode, html)
	}
	if !strings.Contains(html, `<span class="badge bg-rose-100 text-rose-800 border-rose-300">failed</span>`) {
		t.Errorf("badge missing")
	}
	if !strings.Contains(html, `<span class="current">2</span>`) {
		t.Errorf("pagination missing")
	}
	if srv.Calls("GET", "/associations/a1/members") != 0 {
		t.Errorf("inactive tab fetched on demand")
	}
	if api, _ := srv.Last("GET", "/associations/a1/transactions"); api.Query != "limit=20&page=2" {
		t.Errorf("query = %q", api.Query)
	}
}

func TestTenantUnknownScope(t *testing.T) {
	app, _ := newApp(t, tabs.Eager)
	req := withCookies(httptest.NewRequest(http.MethodGet, "/widgets/1", nil), "token", "tok")
	resp, html := send(t, app, req)
	if resp.StatusCode != fiber.StatusNotFound || !strings.Contains(html, "<h1>404</h1>") {
		t.Fatalf("status = %d body = %s", resp.StatusCode, html)
	}
}

func TestMemberCreateMultipart(t *testing.T) {
	app, srv := newApp(t, tabs.OnDemand)
	srv.JSON("GET", "/associations/a1", 200, `{"data":{"id":"a1","name":"Assoc X"}}`)
	srv.JSON("GET", "/associations/a1/members", 200, `{"data":[{"id":1,"fullName":"Ada Obi"}]}`)
	var photo string
	srv.Handle("POST", "/members", func(w http.ResponseWriter, r *http.Request) {
		if f, fh, err := r.FormFile("photo"); err == nil {
			b, _ := io.ReadAll(f)
			photo = fh.Filename + ":" + string(b)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"status":"success"}`)
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("fullName", "Ada Obi")
	_ = mw.WriteField("phoneNumber", "0801")
	fw, _ := mw.CreateFormFile("photo", "ada.jpg")
	_, _ = fw.Write([]byte("JPEG"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/associations/a1/members", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, html := send(t, app, withCookies(req, "token", "tok"))

	if resp.StatusCode != fiber.StatusOK || !strings.Contains(html, "Member added") {
		t.Fatalf("status = %d body = %s", resp.StatusCode, html)
	}
	if photo != "ada.jpg:JPEG" {
		t.Fatalf("photo = %q", photo)
	}
	if srv.Calls("GET", "/associations/a1/members") != 1 {
		t.Fatalf("members fetched %d times", srv.Calls("GET", "/associations/a1/members"))
	}
}

func TestHomeRedirect(t *testing.T) {
	app, _ := newApp(t, tabs.Eager)

	resp, _ := send(t, app, withCookies(httptest.NewRequest(http.MethodGet, "/", nil), "token", "tok", "associationId", "a1"))
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/associations/a1" {
		t.Fatalf("status = %d location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp, _ = send(t, app, withCookies(httptest.NewRequest(http.MethodGet, "/", nil), "token", "tok", "cooperativeId", "c1"))
	if resp.Header.Get("Location") != "/associations" {
		t.Fatalf("location = %q", resp.Header.Get("Location"))
	}
}

func TestSessionFromBearerClaims(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/associations/overview", 200, `[]`)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "5", "firstName": "Ada", "lastName": "Obi", "cooperativeId": "c9",
	}).SignedString([]byte("not-our-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/associations", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	_, html := send(t, app, req)

	api, ok := srv.Last("GET", "/associations/overview")
	if !ok || api.Query != "cooperativeId=c9" {
		t.Fatalf("query = %q", api.Query)
	}
	if !strings.Contains(html, "Ada Obi") || !strings.Contains(html, "No associations found") {
		t.Fatalf("body = %s", html)
	}
}

func TestSignedOutSkipsFetches(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	_, html := send(t, app, httptest.NewRequest(http.MethodGet, "/loans", nil))
	if srv.Total() != 0 || !strings.Contains(html, "Sign in to load loans") {
		t.Fatalf("requests = %d body = %s", srv.Total(), html)
	}
}

func TestSignOutExpiresCookies(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	req := withCookies(postForm("/signout", url.Values{}), "token", "tok", "associationId", "a1")
	resp, _ := send(t, app, req)

	if resp.StatusCode != fiber.StatusSeeOther || resp.Header.Get("Location") != "/" {
		t.Fatalf("status = %d location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	cleared := map[string]bool{}
	for _, c := range resp.Cookies() {
		if c.Value != "" || !c.Expires.Before(time.Now()) || !c.Secure || !c.HttpOnly || c.SameSite != http.SameSiteStrictMode {
			t.Fatalf("cookie %s = %+v", c.Name, c)
		}
		cleared[c.Name] = true
	}
	for _, name := range []string{"token", "associationId", "cooperativeId"} {
		if !cleared[name] {
			t.Fatalf("cookie %s not cleared: %v", name, resp.Header.Values("Set-Cookie"))
		}
	}
	if srv.Total() != 0 {
		t.Fatalf("requests = %d", srv.Total())
	}
}

func TestSignOutButtonOnlyWhenSignedIn(t *testing.T) {
	app, srv := newApp(t, tabs.Eager)
	srv.JSON("GET", "/associations/overview", 200, `[]`)

	_, html := send(t, app, httptest.NewRequest(http.MethodGet, "/associations", nil))
	if strings.Contains(html, `action="/signout"`) {
		t.Fatal("sign-out shown to a signed-out visitor")
	}
	_, html = send(t, app, withCookies(httptest.NewRequest(http.MethodGet, "/associations", nil), "token", "tok", "cooperativeId", "c1"))
	if !strings.Contains(html, `action="/signout"`) {
		t.Fatalf("body = %s", html)
	}
}

func TestHealth(t *testing.T) {
	app, _ := newApp(t, tabs.Eager)
	resp, body := send(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(body, `"success":true`) || !strings.Contains(body, `"mode":"dev"`) {
		t.Fatalf("status = %d body = %s", resp.StatusCode, body)
	}
}
