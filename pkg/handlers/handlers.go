package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/spencer-p/tidewidget/pkg/cache"
	"github.com/spencer-p/tidewidget/pkg/data"
	"github.com/spencer-p/tidewidget/pkg/fetch"
	"github.com/spencer-p/tidewidget/pkg/metrics"
	"github.com/spencer-p/tidewidget/pkg/tidefeed"
	"github.com/spencer-p/tidewidget/pkg/widget"
)

// WidgetStore remembers the location of each widget. *data.Store implements
// it.
type WidgetStore interface {
	SaveLocation(ctx context.Context, widgetID string, loc tidefeed.Location) error
	GetLocation(ctx context.Context, widgetID string) (tidefeed.Location, error)
	DeleteLocation(ctx context.Context, widgetID string) error
	ListWidgets(ctx context.Context) ([]data.Widget, error)
}

type Deps struct {
	Service  *widget.Service
	Widgets  WidgetStore
	Sessions sessions.Store
	// CacheTTL bounds how long API responses are served from memory.
	CacheTTL time.Duration
}

// Register mounts all routes on r. content holds the static directory with
// the page templates.
func Register(r *mux.Router, prefix string, content fs.FS, d Deps) {
	r.Use(func(next http.Handler) http.Handler {
		return metrics.LatencyHandler(routeTemplate, next)
	})

	apiCache := cache.NewTimed(d.CacheTTL)
	r.Handle("/api/v1/locations", cached(apiCache, requestKey, makeServeLocations(d.Service))).Methods(http.MethodGet)
	r.Handle("/api/v1/tides/{location}", cached(apiCache, tidesKey(d.Service), makeServeTides(d.Service))).Methods(http.MethodGet)

	r.Handle("/api/v1/widgets", makeListWidgets(d.Widgets)).Methods(http.MethodGet)
	r.Handle("/api/v1/widgets/{widget}", makeServeWidget(d.Service, d.Widgets)).Methods(http.MethodGet)
	r.Handle("/api/v1/widgets/{widget}", makeSaveWidget(d.Service, d.Widgets)).Methods(http.MethodPut)
	r.Handle("/api/v1/widgets/{widget}", makeDeleteWidget(d.Widgets)).Methods(http.MethodDelete)

	r.Handle("/", makeServerSideIndex(content, d.Service, d.Sessions)).Methods(http.MethodGet)
	r.Handle("/config", makeConfigLocation(prefix, d.Service, d.Sessions)).Methods(http.MethodPost)
	r.PathPrefix("/static/").Handler(http.StripPrefix(prefix, http.FileServer(http.FS(content))))
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}

func makeServeLocations(s *widget.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locations, err := s.Locations(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, locations)
	})
}

func makeServeTides(s *widget.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		loc := tidefeed.Location{ID: mux.Vars(r)["location"], Name: r.FormValue("name")}
		if loc.Name == "" {
			found, err := s.Lookup(ctx, loc.ID)
			if err != nil {
				writeError(w, err)
				return
			}
			loc = found
		}

		info, err := s.Tides(ctx, loc, tidesDate(s, r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeCard(w, r, s.Card(info))
	})
}

func makeServeWidget(s *widget.Service, store WidgetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		loc, err := store.GetLocation(ctx, mux.Vars(r)["widget"])
		if err != nil {
			writeError(w, err)
			return
		}
		info, err := s.Today(ctx, loc)
		if err != nil {
			writeError(w, err)
			return
		}
		writeCard(w, r, s.Card(info))
	})
}

type savedWidget struct {
	Widget   string            `json:"widget"`
	Location tidefeed.Location `json:"location"`
}

func makeListWidgets(store WidgetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		widgets, err := store.ListWidgets(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		result := make([]savedWidget, 0, len(widgets))
		for _, wd := range widgets {
			result = append(result, savedWidget{Widget: wd.WidgetID, Location: wd.Location()})
		}
		writeJSON(w, result)
	})
}

func makeSaveWidget(s *widget.Service, store WidgetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var loc tidefeed.Location
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&loc); err != nil || loc.ID == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Body must be a location with an id")
			return
		}
		if loc.Name == "" {
			found, err := s.Lookup(ctx, loc.ID)
			if err != nil {
				writeError(w, err)
				return
			}
			loc = found
		}

		if err := store.SaveLocation(ctx, mux.Vars(r)["widget"], loc); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func makeDeleteWidget(store WidgetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteLocation(r.Context(), mux.Vars(r)["widget"]); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// tidesDate is the requested date, or today in the observer's zone.
func tidesDate(s *widget.Service, r *http.Request) string {
	if date := r.FormValue("date"); date != "" {
		return date
	}
	return s.Normalizer.DateKey()
}

func requestKey(r *http.Request) string {
	return fmt.Sprintf("%s %s", r.Method, r.URL)
}

// tidesKey keys tide cards on the resolved date rather than the raw URL.
func tidesKey(s *widget.Service) func(*http.Request) string {
	return func(r *http.Request) string {
		return fmt.Sprintf("%s %s date=%s name=%s o=%s",
			r.Method, r.URL.Path, tidesDate(s, r), r.FormValue("name"), r.FormValue("o"))
	}
}

// cached serves successful responses of next from c under the key keyOf
// gives the request.
func cached(c *cache.Timed, keyOf func(*http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := keyOf(r)

		if entry, ok := c.Get(key); ok {
			// entries are stored as the content type, a newline, then the body
			ct, body, _ := bytes.Cut(entry, []byte("\n"))
			w.Header().Set("Content-Type", string(ct))
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}
		log.Printf("No cache data for %s", key)

		// duplicate the http response onto a buffer for the cache
		rec := &recorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		if rec.code == http.StatusOK {
			entry := append([]byte(w.Header().Get("Content-Type")+"\n"), rec.buf.Bytes()...)
			c.Set(key, entry)
		}
	})
}

type recorder struct {
	http.ResponseWriter
	code int
	buf  bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(p []byte) (int, error) {
	r.buf.Write(p)
	return r.ResponseWriter.Write(p)
}

func writeCard(w http.ResponseWriter, r *http.Request, card widget.Card) {
	if r.FormValue("o") == "json" {
		writeJSON(w, card)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "%s\n", card.String())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode JSON result: %+v", err)
	}
}

// writeError maps err onto a status code. Bad feeds and failed fetches are
// the upstream's fault; a bad date in the query is the caller's.
func writeError(w http.ResponseWriter, err error) {
	code := statusOf(err)
	if code >= 500 {
		log.Printf("Failed to get data: %+v", err)
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(code)
	fmt.Fprintf(w, "Failed to get data: %v", err)
}

func statusOf(err error) int {
	var terr *fetch.TransportError
	var perr *tidefeed.ParseError
	var nerr net.Error
	switch {
	case errors.Is(err, data.ErrNoLocation), errors.Is(err, widget.ErrUnknownLocation):
		return http.StatusNotFound
	case errors.Is(err, tidefeed.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &nerr) && nerr.Timeout():
		return http.StatusGatewayTimeout
	case errors.As(err, &terr), errors.As(err, &perr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
