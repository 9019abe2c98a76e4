package main

import (
	"embed"
	"log"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/tidewidget/pkg/config"
	"github.com/spencer-p/tidewidget/pkg/data"
	"github.com/spencer-p/tidewidget/pkg/fetch"
	"github.com/spencer-p/tidewidget/pkg/handlers"
	"github.com/spencer-p/tidewidget/pkg/tidefeed"
	"github.com/spencer-p/tidewidget/pkg/widget"
)

//go:embed static
var content embed.FS

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}
	zone, err := env.Location()
	if err != nil {
		log.Fatal(err.Error())
	}
	place, err := env.Place()
	if err != nil {
		log.Fatal(err.Error())
	}

	db, err := data.Open(env.DBDriver, env.DBDSN)
	if err != nil {
		log.Fatalf("Failed to open %s database: %v", env.DBDriver, err)
	}

	service := &widget.Service{
		Feeds:      fetch.NewClient(env.TidesURL, env.LocationsURL, env.RequestTimeout, env.Retries),
		Normalizer: tidefeed.Normalizer{Zone: zone},
		Place:      &place,
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Handle("/metrics", promhttp.Handler())
	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, env.Prefix, content, handlers.Deps{
		Service:  service,
		Widgets:  data.NewStore(db),
		Sessions: handlers.NewCookieStore(env.SessionKey, env.EncryptionKey, env.SecureCookies),
		CacheTTL: env.CacheTTL,
	})

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Listening and serving on %s%s", srv.Addr, env.Prefix)
	log.Fatal(srv.ListenAndServe())
}
