package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/taskforge/client-go/internal/models"
)

func TestTaskService_ListByProject(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projets/3/taches" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data":[
			{"id":1,"titre":"Maquettes","statut":"in-progress","dateDebut":"2024-01-05",
			 "dateEcheance":"2024-01-20","projetId":3,
			 "assignes":[{"id":4,"prenom":"Bob","nom":"Durand"}]}
		]}`))
	}))
	svc := NewTaskService(api)

	tasks, err := svc.ListByProject(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	task := tasks[0]
	if task.Status != models.TaskInProgress {
		t.Errorf("Status = %q", task.Status)
	}
	if task.ProjectId != 3 {
		t.Errorf("ProjectId = %d", task.ProjectId)
	}
	if len(task.Assignees) != 1 || task.Assignees[0].Name != "Bob" {
		t.Errorf("Assignees = %+v", task.Assignees)
	}
}

func TestTaskService_UpdateStatusUsesPatch(t *testing.T) {
	var method, path string
	var body map[string]string
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"data":{"id":7,"titre":"T","statut":"done","projetId":3}}`))
	}))
	svc := NewTaskService(api)

	updated, err := svc.UpdateStatus(context.Background(), 7, models.TaskDone)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if method != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", method)
	}
	if path != "/api/taches/7/statut" {
		t.Errorf("path = %q", path)
	}
	if body["statut"] != "done" {
		t.Errorf("body = %v", body)
	}
	if updated.Status != models.TaskDone {
		t.Errorf("updated.Status = %q", updated.Status)
	}
}

func TestTaskService_AssignPaths(t *testing.T) {
	var calls []string
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	svc := NewTaskService(api)

	ctx := context.Background()
	if err := svc.Assign(ctx, 7, 4); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := svc.Unassign(ctx, 7, 4); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	want := []string{"POST /api/taches/7/assigner/4", "DELETE /api/taches/7/assigner/4"}
	for i, w := range want {
		if calls[i] != w {
			t.Errorf("call %d = %q, want %q", i, calls[i], w)
		}
	}
}
