package app

import (
	"github.com/example/searchops/internal/core/premise"
	"github.com/example/searchops/internal/core/resource"
	"github.com/example/searchops/internal/ports/primary"
	"github.com/example/searchops/internal/ports/secondary"
)

// recordToResource builds the tagged resource from its flat stored form.
func recordToResource(r *secondary.ResourceRecord) resource.Resource {
	res := resource.Resource{
		ID:       r.ID,
		Name:     r.Name,
		Status:   resource.Status(r.Status),
		SearchID: r.SearchID,
	}

	gender := resource.Gender(r.Gender)
	switch resource.Type(r.Type) {
	case resource.TypeOfficial:
		res.Details = resource.OfficialDetails{Gender: gender, Rank: resource.Rank(r.Rank), Designation: r.Designation}
	case resource.TypeWitness:
		res.Details = resource.WitnessDetails{Gender: gender, Phone: r.Phone}
	case resource.TypeDriver:
		res.Details = resource.DriverDetails{Gender: gender, VehicleType: r.VehicleType, VehicleNumber: r.VehicleNumber}
	case resource.TypeCRPF:
		res.Details = resource.CrpfDetails{MaleCount: r.CrpfMaleCount, FemaleCount: r.CrpfFemaleCount}
	}

	return res
}

func recordsToResources(records []*secondary.ResourceRecord) []resource.Resource {
	out := make([]resource.Resource, len(records))
	for i, r := range records {
		out[i] = recordToResource(r)
	}
	return out
}

// resourceToRecord flattens a tagged resource for storage.
func resourceToRecord(r resource.Resource) *secondary.ResourceRecord {
	rec := &secondary.ResourceRecord{
		ID:       r.ID,
		Type:     string(r.Type()),
		Name:     r.Name,
		Gender:   string(r.Gender()),
		Status:   string(r.Status),
		SearchID: r.SearchID,
	}

	switch d := r.Details.(type) {
	case resource.OfficialDetails:
		rec.Rank = string(d.Rank)
		rec.Designation = d.Designation
	case resource.WitnessDetails:
		rec.Phone = d.Phone
	case resource.DriverDetails:
		rec.VehicleType = d.VehicleType
		rec.VehicleNumber = d.VehicleNumber
	case resource.CrpfDetails:
		rec.CrpfMaleCount = d.MaleCount
		rec.CrpfFemaleCount = d.FemaleCount
	}

	return rec
}

func resourceToPrimary(r resource.Resource) *primary.Resource {
	rec := resourceToRecord(r)
	return &primary.Resource{
		ID:              rec.ID,
		Type:            rec.Type,
		Name:            rec.Name,
		Gender:          rec.Gender,
		Rank:            rec.Rank,
		Designation:     rec.Designation,
		Phone:           rec.Phone,
		VehicleType:     rec.VehicleType,
		VehicleNumber:   rec.VehicleNumber,
		CrpfMaleCount:   rec.CrpfMaleCount,
		CrpfFemaleCount: rec.CrpfFemaleCount,
		Status:          rec.Status,
		SearchID:        rec.SearchID,
	}
}

func resourcesToPrimary(resources []resource.Resource) []*primary.Resource {
	out := make([]*primary.Resource, len(resources))
	for i, r := range resources {
		out[i] = resourceToPrimary(r)
	}
	return out
}

// requestToResource builds the tagged resource for a create request.
func requestToResource(id string, req primary.CreateResourceRequest) resource.Resource {
	status := resource.StatusAvailable
	if req.Unavailable {
		status = resource.StatusUnavailable
	}
	return recordToResource(&secondary.ResourceRecord{
		ID:              id,
		Type:            req.Type,
		Name:            req.Name,
		Gender:          req.Gender,
		Rank:            req.Rank,
		Designation:     req.Designation,
		Phone:           req.Phone,
		VehicleType:     req.VehicleType,
		VehicleNumber:   req.VehicleNumber,
		CrpfMaleCount:   req.CrpfMaleCount,
		CrpfFemaleCount: req.CrpfFemaleCount,
		Status:          string(status),
		SearchID:        req.SearchID,
	})
}

func recordToPremise(r *secondary.PremiseRecord) premise.Premise {
	p := premise.Premise{
		ID:               r.ID,
		SearchID:         r.SearchID,
		Name:             r.Name,
		Address:          r.Address,
		Nature:           premise.Nature(r.Nature),
		RecceStatus:      premise.RecceStatus(r.RecceStatus),
		DecisionStatus:   premise.DecisionStatus(r.DecisionStatus),
		AllocationStatus: premise.AllocationStatus(r.AllocationStatus),
	}
	if r.Requirements != nil {
		req := premise.Requirements{
			MaleWitness:     r.Requirements.MaleWitness,
			FemaleWitness:   r.Requirements.FemaleWitness,
			CrpfTeamSize:    r.Requirements.CrpfTeamSize,
			CrpfMaleCount:   r.Requirements.CrpfMaleCount,
			CrpfFemaleCount: r.Requirements.CrpfFemaleCount,
			Vehicles:        r.Requirements.Vehicles,
		}
		p.Requirements = &req
	}
	return p
}

func recordToPrimaryPremise(r *secondary.PremiseRecord) *primary.Premise {
	p := &primary.Premise{
		ID:               r.ID,
		SearchID:         r.SearchID,
		Name:             r.Name,
		Address:          r.Address,
		Nature:           r.Nature,
		RecceStatus:      r.RecceStatus,
		DecisionStatus:   r.DecisionStatus,
		AllocationStatus: r.AllocationStatus,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.Requirements != nil {
		p.Requirements = &primary.Requirements{
			MaleWitness:     r.Requirements.MaleWitness,
			FemaleWitness:   r.Requirements.FemaleWitness,
			CrpfTeamSize:    r.Requirements.CrpfTeamSize,
			CrpfMaleCount:   r.Requirements.CrpfMaleCount,
			CrpfFemaleCount: r.Requirements.CrpfFemaleCount,
			Vehicles:        r.Requirements.Vehicles,
		}
	}
	return p
}

func requirementsToRecord(req primary.Requirements) secondary.RequirementsRecord {
	return secondary.RequirementsRecord{
		MaleWitness:     req.MaleWitness,
		FemaleWitness:   req.FemaleWitness,
		CrpfTeamSize:    req.CrpfTeamSize,
		CrpfMaleCount:   req.CrpfMaleCount,
		CrpfFemaleCount: req.CrpfFemaleCount,
		Vehicles:        req.Vehicles,
	}
}
