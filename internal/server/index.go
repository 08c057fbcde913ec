package server

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/abhisek/mathsheet/internal/entitlement"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexData struct {
	Levels       []worksheet.Level
	Topics       []worksheet.Topic
	Difficulties []worksheet.Difficulty
	Notice       string
	Offer        entitlement.Offer
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Levels:       worksheet.AllLevels(),
		Topics:       worksheet.AllTopics(),
		Difficulties: worksheet.AllDifficulties(),
		Notice:       entitlement.BlockedNotice,
		Offer:        entitlement.DefaultOffer,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("Template error in index: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
