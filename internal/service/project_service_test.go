package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
)

func testAPI(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logrus.New()
	log.SetOutput(io.Discard)
	api, err := client.New(srv.URL, "token", log)
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return api
}

func TestProjectService_List(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projets" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data":[
			{"id":1,"nom":"Refonte site","description":"","dateDebut":"2024-01-01","dateFin":"2024-01-31",
			 "dateCreation":"2023-12-15T10:00:00Z","role":"Chef de projet","progression":30,
			 "totalTaches":10,"tachesTerminees":3}
		]}`))
	}))
	svc := NewProjectService(api)

	projects, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	p := projects[0]
	if p.Name != "Refonte site" {
		t.Errorf("Name = %q", p.Name)
	}
	if !p.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v", p.StartDate)
	}
	if !p.EndDate.Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("EndDate = %v", p.EndDate)
	}
	if p.Role != models.RoleProjectLead {
		t.Errorf("Role = %q", p.Role)
	}
	if p.TotalTasks != 10 || p.CompletedTasks != 3 {
		t.Errorf("counters = %d/%d", p.CompletedTasks, p.TotalTasks)
	}
}

func TestProjectService_GetComplete(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projets/42/complet" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data":{
			"projet":{"id":42,"nom":"P","dateDebut":"2024-01-01","dateFin":"2024-06-30"},
			"membres":[{"id":1,"prenom":"Alice","nom":"Martin","email":"a@x.fr","role":"Assistant",
			            "statistiques":{"total":2,"terminees":1,"enCours":1,"aFaire":0}}],
			"taches":[{"id":7,"titre":"T1","statut":"done","projetId":42},
			          {"id":8,"titre":"T2","statut":"todo","projetId":42}],
			"messages":[{"id":5,"contenu":"bonjour","dateEnvoi":"2024-01-02T08:30:00Z","projetId":42,
			             "auteurId":1,"auteur":{"id":1,"prenom":"Alice","nom":"Martin"}}],
			"statistiques":{"totalTaches":2,"tachesTerminees":1,"tachesEnCours":0,"tachesAFaire":1,
			                "totalMembres":1,"progression":50,"joursRestants":100,"enRetard":false}
		}}`))
	}))
	svc := NewProjectService(api)

	cp, err := svc.GetComplete(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetComplete: %v", err)
	}
	if cp.Project.Id != 42 {
		t.Errorf("project id = %d", cp.Project.Id)
	}
	if len(cp.Tasks) != 2 || len(cp.Members) != 1 || len(cp.Messages) != 1 {
		t.Errorf("collections = %d tasks, %d members, %d messages",
			len(cp.Tasks), len(cp.Members), len(cp.Messages))
	}
	if cp.Stats.ProgressPct != 50 {
		t.Errorf("stats.ProgressPct = %d", cp.Stats.ProgressPct)
	}
	if cp.Members[0].TaskStats.Completed != 1 {
		t.Errorf("member stats = %+v", cp.Members[0].TaskStats)
	}
	if cp.Messages[0].Author.Name != "Alice" {
		t.Errorf("message author = %+v", cp.Messages[0].Author)
	}
}

func TestProjectService_GetCompleteMissingStatsComputedLocally(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{
			"projet":{"id":9,"nom":"P","dateDebut":"2020-01-01","dateFin":"2020-02-01"},
			"taches":[{"id":1,"titre":"T","statut":"done","projetId":9}]
		}}`))
	}))
	svc := NewProjectService(api)
	svc.now = func() time.Time { return time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC) }

	cp, err := svc.GetComplete(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetComplete: %v", err)
	}
	if cp.Stats.TotalTasks != 1 || cp.Stats.CompletedTasks != 1 || cp.Stats.ProgressPct != 100 {
		t.Errorf("locally computed stats = %+v", cp.Stats)
	}
	if cp.Stats.Overdue {
		t.Error("project should not be overdue mid-run")
	}
	if cp.Stats.DaysRemaining != 17 {
		t.Errorf("DaysRemaining = %d, want 17", cp.Stats.DaysRemaining)
	}

	svc.now = func() time.Time { return time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC) }
	cp, err = svc.GetComplete(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetComplete: %v", err)
	}
	if !cp.Stats.Overdue || cp.Stats.DaysRemaining != 0 {
		t.Errorf("stats after the end date = %+v", cp.Stats)
	}
}

func TestProjectService_RejectsUnknownTaskStatus(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"titre":"T","statut":"blocked","projetId":3}]}`))
	}))
	svc := NewTaskService(api)

	if _, err := svc.ListByProject(context.Background(), 3); err == nil {
		t.Fatal("a fourth task status slipped through the service boundary")
	}
}
