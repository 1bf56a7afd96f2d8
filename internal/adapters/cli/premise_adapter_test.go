package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/primary"
)

func TestPremiseAdapter_Create(t *testing.T) {
	mock := &mockPremiseService{}
	var buf bytes.Buffer
	adapter := NewPremiseAdapter(mock, &mockAllocationService{}, &buf)

	err := adapter.Create(context.Background(), primary.CreatePremiseRequest{SearchID: "SRCH-001", Name: "Warehouse", Nature: "INDUSTRIAL"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastCreateReq.Nature != "INDUSTRIAL" {
		t.Errorf("expected nature INDUSTRIAL, got %s", mock.lastCreateReq.Nature)
	}
	if !strings.Contains(buf.String(), "Created premise PREM-001: Warehouse") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestPremiseAdapter_List(t *testing.T) {
	mock := &mockPremiseService{
		listFn: func(ctx context.Context, filters primary.PremiseFilters) ([]*primary.Premise, error) {
			if filters.SearchID != "SRCH-001" {
				t.Errorf("expected search filter, got %+v", filters)
			}
			return []*primary.Premise{
				{ID: "PREM-001", SearchID: "SRCH-001", Name: "Head office", Nature: "OFFICE", DecisionStatus: "APPROVED"},
				{ID: "PREM-002", SearchID: "SRCH-001", Name: "Residence", Nature: "RESIDENTIAL", DecisionStatus: "PENDING"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewPremiseAdapter(mock, &mockAllocationService{}, &buf)

	if err := adapter.List(context.Background(), primary.PremiseFilters{SearchID: "SRCH-001"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"PREM-001", "Head office", "PREM-002", "RESIDENTIAL"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q, got '%s'", want, buf.String())
		}
	}
}

func TestPremiseAdapter_List_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewPremiseAdapter(&mockPremiseService{}, &mockAllocationService{}, &buf)

	if err := adapter.List(context.Background(), primary.PremiseFilters{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No premises found") {
		t.Errorf("expected 'No premises found', got '%s'", buf.String())
	}
}

func TestPremiseAdapter_Show_WithoutRequirements(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewPremiseAdapter(&mockPremiseService{}, &mockAllocationService{}, &buf)

	p, err := adapter.Show(context.Background(), "PREM-007")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.ID != "PREM-007" {
		t.Errorf("expected PREM-007, got %s", p.ID)
	}
	if !strings.Contains(buf.String(), "(not set)") {
		t.Errorf("expected missing requirements marker, got '%s'", buf.String())
	}
}

func TestPremiseAdapter_Show_NotFound(t *testing.T) {
	mock := &mockPremiseService{
		getFn: func(ctx context.Context, premiseID string) (*primary.Premise, error) {
			return nil, errs.NotFound("premise %s", premiseID)
		},
	}
	var buf bytes.Buffer
	_, err := NewPremiseAdapter(mock, &mockAllocationService{}, &buf).Show(context.Background(), "PREM-404")

	if errs.Kind(err) != errs.ErrNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPremiseAdapter_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		run       func(a *PremiseAdapter) error
		wantTrack string
		wantValue string
	}{
		{"recce", func(a *PremiseAdapter) error { return a.Recce(context.Background(), "PREM-001", "COMPLETED") }, "recce", "COMPLETED"},
		{"decide", func(a *PremiseAdapter) error { return a.Decide(context.Background(), "PREM-001", "APPROVED") }, "decision", "APPROVED"},
		{"done", func(a *PremiseAdapter) error { return a.Done(context.Background(), "PREM-001", false) }, "allocation", "DONE"},
		{"reopen", func(a *PremiseAdapter) error { return a.Done(context.Background(), "PREM-001", true) }, "allocation", "PENDING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockPremiseService{}
			var buf bytes.Buffer
			if err := tt.run(NewPremiseAdapter(mock, &mockAllocationService{}, &buf)); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if mock.lastTrack != tt.wantTrack || mock.lastValue != tt.wantValue {
				t.Errorf("expected %s=%s, got %s=%s", tt.wantTrack, tt.wantValue, mock.lastTrack, mock.lastValue)
			}
		})
	}
}

func TestPremiseAdapter_Requirements(t *testing.T) {
	mock := &mockPremiseService{}
	var buf bytes.Buffer
	req := primary.Requirements{MaleWitness: 1, FemaleWitness: 1, CrpfTeamSize: 6, CrpfMaleCount: 4, CrpfFemaleCount: 2, Vehicles: 2}

	if err := NewPremiseAdapter(mock, &mockAllocationService{}, &buf).Requirements(context.Background(), "PREM-001", req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastRequirements != req {
		t.Errorf("expected %+v, got %+v", req, mock.lastRequirements)
	}
}

func TestPremiseAdapter_Team(t *testing.T) {
	allocations := &mockAllocationService{
		teamFn: func(ctx context.Context, premiseID string) (*primary.Team, error) {
			return &primary.Team{
				PremiseID: premiseID,
				Members: []*primary.Resource{
					{ID: "RES-001", Type: "OFFICIAL", Name: "R. Kumar", Rank: "DIRECTOR", Status: "ASSIGNED"},
					{ID: "RES-012", Type: "CRPF", Name: "Alpha", CrpfMaleCount: 4, CrpfFemaleCount: 2, Status: "ASSIGNED"},
				},
				Warnings: []string{"Need 1 more vehicle(s)"},
			}, nil
		},
	}
	var buf bytes.Buffer
	if err := NewPremiseAdapter(&mockPremiseService{}, allocations, &buf).Team(context.Background(), "PREM-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Team for PREM-001 (2)", "DIRECTOR", "4M/2F", "Need 1 more vehicle(s)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}
