package dossier

import (
	"encoding/json"

	"github.com/sells-group/reputation-cli/internal/model"
)

// Upstream payload shapes. Each payload is modeled explicitly with every
// optional field declared, so loose upstream JSON is converted to the strict
// internal records in one validating step instead of leaking nil checks
// through the builders.

// profilePayload is the enhanced-account profile API response.
type profilePayload struct {
	ID                string            `json:"id"`
	CompanyName       string            `json:"companyName"`
	FantasyName       string            `json:"fantasyName"`
	Created           string            `json:"created"`
	Status            string            `json:"status"`
	SiteURL           string            `json:"urlSite"`
	Address           *model.Address    `json:"address"`
	Documents         []profileDocument `json:"documents"`
	MainSegment       segmentRef        `json:"mainSegment"`
	SecondarySegments []segmentRef      `json:"secondarySegments"`
	AdditionalFields  []additionalField `json:"additionalFields"`
	CompanyPageFlags  *pageFlags        `json:"companyPageFlags"`
	Panels            []reputationPanel `json:"panels"`
}

type profileDocument struct {
	Number string `json:"number"`
}

type segmentRef struct {
	Title string `json:"title"`
}

type additionalField struct {
	Options []fieldOption `json:"options"`
}

type fieldOption struct {
	Value string `json:"value"`
}

type pageFlags struct {
	Verified *bool  `json:"hasVerificada"`
	PlanType string `json:"configurationType"`
}

// reputationPanel carries one period panel; the nested index object parses
// straight into the dossier's period record.
type reputationPanel struct {
	Index model.ReputationPeriod `json:"index"`
}

// problemsPayload covers both the historical and the 6-month problem APIs,
// which share a shape.
type problemsPayload struct {
	ComplainResult struct {
		Complains struct {
			Problems []model.ProblemCount `json:"problems"`
		} `json:"complains"`
	} `json:"complainResult"`
}

func (p *problemsPayload) problems() []model.ProblemCount {
	return p.ComplainResult.Complains.Problems
}

// evolutionPayload is the index-evolution time series. Snapshots stays raw:
// the dossier passes it through unreshaped, and only the fallback path needs
// a parsed view of the first element.
type evolutionPayload struct {
	Snapshots json.RawMessage `json:"snapshots"`
}

// evolutionSnapshot is one month of complaint volume counters.
type evolutionSnapshot struct {
	Status           string `json:"status"`
	TotalIndexable   int    `json:"totalIndexable"`
	TotalSolved      int    `json:"totalSolved"`
	TotalEvaluations int    `json:"totalEvaluations"`
	TotalDealAgain   int    `json:"totalDealAgain"`
}

// firstSnapshot returns the first snapshot of the series, or nil when the
// list is missing or empty.
func (p *evolutionPayload) firstSnapshot() (*evolutionSnapshot, error) {
	if len(p.Snapshots) == 0 {
		return nil, nil
	}
	var snapshots []evolutionSnapshot
	if err := json.Unmarshal(p.Snapshots, &snapshots); err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}
