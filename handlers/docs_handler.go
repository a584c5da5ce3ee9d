package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"shoreSquadAPI/services"
)

type DocsHandler struct {
	rallyService *services.RallyService
	crewService  *services.CrewService
	statsService *services.StatsService
	startedAt    time.Time
}

func NewDocsHandler(rallyService *services.RallyService, crewService *services.CrewService, statsService *services.StatsService) *DocsHandler {
	return &DocsHandler{
		rallyService: rallyService,
		crewService:  crewService,
		statsService: statsService,
		startedAt:    time.Now(),
	}
}

// ServeLanding renders the API's front door with live counts.
func (h *DocsHandler) ServeLanding(w http.ResponseWriter, r *http.Request) {
	const landingHtml = `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>ShoreSquad API</title>
		<style>
			body {
				font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;
				line-height: 1.6;
				color: #333;
				max-width: 800px;
				margin: 0 auto;
				padding: 20px;
				background-color: #eef7fa;
			}
			.container {
				background-color: #fff;
				padding: 40px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0,0,0,0.1);
			}
			h1 { color: #0077b6; border-bottom: 2px solid #eee; padding-bottom: 10px; }
			.counters { display: flex; gap: 30px; margin: 20px 0; }
			.counter { text-align: center; }
			.counter strong { display: block; font-size: 1.8em; color: #f39c12; }
			code { background: #f4f4f4; padding: 2px 6px; border-radius: 4px; }
			li { margin-bottom: 8px; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>🌊 ShoreSquad</h1>
			<p>Rally your crew, track the weather, hit the next beach cleanup.</p>
			<div class="counters">
				<div class="counter"><strong>{{.UpcomingRallies}}</strong> upcoming rallies</div>
				<div class="counter"><strong>{{.CrewMembers}}</strong> crew signups</div>
				<div class="counter"><strong>{{.Volunteers}}</strong> volunteers</div>
			</div>
			<h2>Endpoints</h2>
			<ul>
				<li><code>GET /api/v1/rallies</code> — upcoming cleanups, newest first</li>
				<li><code>POST /api/v1/rallies</code> — start your own rally</li>
				<li><code>POST /api/v1/rallies/next/join</code> — join the next cleanup</li>
				<li><code>GET /api/v1/beaches</code> — tracked shorelines</li>
				<li><code>GET /api/v1/weather</code> — conditions and 5-slot outlook</li>
				<li><code>GET /api/v1/leaderboard?category=teams</code> — standings</li>
				<li><code>GET /api/v1/map</code> — cleanup map descriptor</li>
				<li><code>GET /api/v1/live</code> — websocket rally feed</li>
			</ul>
		</div>
	</body>
	</html>
	`

	ctx := r.Context()
	data := struct {
		UpcomingRallies int
		CrewMembers     int
		Volunteers      int
	}{
		UpcomingRallies: h.rallyService.CountUpcoming(ctx),
		CrewMembers:     h.crewService.Count(ctx),
		Volunteers:      h.statsService.GetStats(ctx).Volunteers,
	}

	tmpl, err := template.New("landing").Parse(landingHtml)
	if err != nil {
		log.Printf("Error parsing landing template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	tmpl.Execute(w, data)
}

func (h *DocsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status": "healthy", "service": "shoresquad-api", "uptime": "%s"}`, time.Since(h.startedAt).Round(time.Second))
}

// ReadinessCheck gates traffic on the warmup count-up having finished.
func (h *DocsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.statsService.CheckReadiness(); err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": err.Error()})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
