package main

import (
	"log"
	"net/http"

	"github.com/aarol/reload"

	"blogsite/internal/config"
	"blogsite/internal/db"
	"blogsite/internal/server"
)

func main() {
	cfg := config.Load()
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	srv, err := server.New(database, cfg)
	if err != nil {
		log.Fatal(err)
	}

	var handler http.Handler = srv
	if cfg.Dev {
		reloader := reload.New(cfg.TemplateDir+"/", cfg.StaticDir+"/")
		handler = reloader.Handle(handler)
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal(err)
	}
}
