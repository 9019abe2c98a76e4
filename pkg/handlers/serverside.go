package handlers

import (
	"bytes"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"

	"github.com/gorilla/sessions"

	"github.com/spencer-p/tidewidget/pkg/tidefeed"
	"github.com/spencer-p/tidewidget/pkg/timetricks"
	"github.com/spencer-p/tidewidget/pkg/visualize"
	"github.com/spencer-p/tidewidget/pkg/widget"
)

type TemplateInput struct {
	Card      *widget.Card
	Relative  string
	Timeline  template.HTML
	Locations []tidefeed.Location
	Selected  string
	PrevDate  string
	NextDate  string
	Error     string
}

// makeServerSideIndex serves the tide card page fully rendered on the server.
// The location comes from the query or else the session.
func makeServerSideIndex(content fs.FS, s *widget.Service, store sessions.Store) http.Handler {
	indexTemplate := template.Must(template.ParseFS(content, "static/index.template.html"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session, _ := store.Get(r, sessionName)
		loc := locationFromSession(session)

		code := http.StatusOK
		var tinput TemplateInput

		locations, err := s.Locations(ctx)
		if err != nil {
			log.Printf("Failed to fetch locations: %v", err)
			code, tinput.Error = statusOf(err), err.Error()
		}
		tinput.Locations = locations

		if id := r.FormValue("location"); id != "" {
			loc = findLocation(locations, id)
		}

		if loc.ID != "" && tinput.Error == "" {
			tinput.Selected = loc.ID
			date := r.FormValue("date")
			if date == "" {
				date = s.Normalizer.DateKey()
			}
			if info, err := s.Tides(ctx, loc, date); err != nil {
				log.Printf("Failed to get tides: %v", err)
				code, tinput.Error = statusOf(err), err.Error()
			} else {
				card := s.Card(info)
				tinput.Card = &card
				tinput.Relative = timetricks.Relative(info.Date, info.FetchedAt)
				tinput.Timeline = template.HTML(timelineSVG(card))
				tinput.PrevDate = info.Date.AddDate(0, 0, -1).Format("2006-01-02")
				tinput.NextDate = info.Date.AddDate(0, 0, 1).Format("2006-01-02")
			}
		}

		w.Header().Add("Content-Type", "text/html")
		w.WriteHeader(code)
		if err := indexTemplate.Execute(w, tinput); err != nil {
			log.Printf("Failed to execute template: %v", err)
		}
	})
}

// makeConfigLocation remembers the posted location in the session.
func makeConfigLocation(redirectPrefix string, s *widget.Service, store sessions.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)

		if err := r.ParseForm(); err != nil {
			log.Printf("Failed to parse form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		loc, err := s.Lookup(r.Context(), r.PostForm.Get("location"))
		if err != nil {
			writeError(w, err)
			return
		}
		session.Values[sessionLocationID] = loc.ID
		session.Values[sessionLocationName] = loc.Name
		if err := session.Save(r, w); err != nil {
			log.Println("save session err", err)
		}

		http.Redirect(w, r, pathJoinPreservePrefix(redirectPrefix, "/"), http.StatusFound)
	})
}

func locationFromSession(session *sessions.Session) tidefeed.Location {
	id, _ := session.Values[sessionLocationID].(string)
	name, _ := session.Values[sessionLocationName].(string)
	return tidefeed.Location{ID: id, Name: name}
}

// findLocation picks id out of the catalog. Unknown ids are kept with the id
// as their name.
func findLocation(locations []tidefeed.Location, id string) tidefeed.Location {
	for _, loc := range locations {
		if loc.ID == id {
			return loc
		}
	}
	return tidefeed.Location{ID: id, Name: id}
}

func timelineSVG(card widget.Card) string {
	var b bytes.Buffer
	if _, err := visualize.NewTimeline(card.Info, card.Daylight).Encode(&b); err != nil {
		log.Printf("Failed to draw timeline: %v", err)
	}
	return b.String()
}

func pathJoinPreservePrefix(prefix string, suffix string) string {
	trimmedPrefix := path.Join(prefix, "")
	result := path.Join(prefix, suffix)
	if result == trimmedPrefix {
		return prefix
	}
	return result
}
