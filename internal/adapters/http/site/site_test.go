package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a registered dashboard", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			return w
		}

		Convey("When the root is requested", func() {
			w := get("/")

			Convey("Then the dashboard page is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "Depression Dashboard")
				So(w.Body.String(), ShouldContainSubstring, "/dashboard.js")
			})
		})

		Convey("When the script and stylesheet are requested", func() {
			js := get("/dashboard.js")
			css := get("/dashboard.css")

			So(js.Code, ShouldEqual, http.StatusOK)
			So(js.Body.String(), ShouldContainSubstring, "/api/depression")
			So(css.Code, ShouldEqual, http.StatusOK)
			So(css.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
		})

		Convey("When an unknown file is requested", func() {
			So(get("/missing.html").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
