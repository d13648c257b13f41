// Package dossier turns the raw payloads collected for one company into the
// normalized 360° dossier record.
package dossier

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/sells-group/reputation-cli/internal/model"
)

// periodSixMonths keys the single reputation entry derived on the fallback path.
const periodSixMonths = "SIX_MONTHS"

// maxHistoricalProblems caps the historical problems list.
const maxHistoricalProblems = 5

// SchemaError reports a present bundle payload that no longer matches the
// shape this normalizer expects. It is fatal for the whole call: an upstream
// contract change cannot be papered over safely.
type SchemaError struct {
	Key model.FetchKey
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dossier: %s payload does not match the expected schema: %v", e.Key, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// sourceTier identifies which upstream surface feeds the dossier.
type sourceTier int

const (
	// sourceVerified means the profile API responded, which only happens for
	// companies on an enhanced account tier. Presence of the payload is the
	// discriminator; the platform exposes no explicit tier flag.
	sourceVerified sourceTier = iota
	// sourceFallback derives a minimal dossier from the search result plus
	// the index-evolution series.
	sourceFallback
)

func pickSource(bundle model.RawBundle) sourceTier {
	if _, ok := bundle[model.FetchProfile]; ok {
		return sourceVerified
	}
	return sourceFallback
}

// Normalize builds the dossier for one company from the initial lookup and
// the raw follow-up payloads. Pure and deterministic: the same inputs always
// yield the same record. A missing optional field inside a present payload
// resolves to its declared default; a present payload that fails to parse
// returns a *SchemaError.
func Normalize(lookup *model.CompanyLookup, bundle model.RawBundle) (*model.Dossier, error) {
	evolution, err := parseEvolution(bundle)
	if err != nil {
		return nil, err
	}

	var d *model.Dossier
	switch pickSource(bundle) {
	case sourceVerified:
		var profile profilePayload
		if err := parsePayload(bundle, model.FetchProfile, &profile); err != nil {
			return nil, err
		}
		d = fromProfile(&profile)
	case sourceFallback:
		d = fromLookup(lookup)
		if evolution != nil {
			snapshot, err := evolution.firstSnapshot()
			if err != nil {
				return nil, &SchemaError{Key: model.FetchIndexEvolution, Err: err}
			}
			if snapshot != nil {
				d.ReputationByPeriod = map[string]model.ReputationPeriod{
					periodSixMonths: reputationFromSnapshot(snapshot),
				}
			}
		}
	}

	if _, ok := bundle[model.FetchMainProblems]; ok {
		var payload problemsPayload
		if err := parsePayload(bundle, model.FetchMainProblems, &payload); err != nil {
			return nil, err
		}
		problems := payload.problems()
		if len(problems) > maxHistoricalProblems {
			problems = problems[:maxHistoricalProblems]
		}
		d.HistoricalProblems = problems
	}

	if _, ok := bundle[model.FetchProblems6Months]; ok {
		var payload problemsPayload
		if err := parsePayload(bundle, model.FetchProblems6Months, &payload); err != nil {
			return nil, err
		}
		d.RecentProblems = payload.problems()
	}

	if evolution != nil {
		d.MonthlyEvolution = evolution.Snapshots
	}

	return d, nil
}

// fromProfile builds the verified-tier dossier sections from the profile
// payload. Operational and Engagement are always present on this path, even
// when their source fields are empty.
func fromProfile(p *profilePayload) *model.Dossier {
	ident := model.Identification{
		ID:           p.ID,
		LegalName:    p.CompanyName,
		TradeName:    p.FantasyName,
		RegisteredAt: p.Created,
		Address:      p.Address,
	}
	if len(p.Documents) > 0 {
		ident.TaxID = p.Documents[0].Number
	}

	op := &model.Operational{
		MainSegment:       p.MainSegment.Title,
		SecondarySegments: make([]string, 0, len(p.SecondarySegments)),
		MainSite:          p.SiteURL,
		ServicedProducts:  []string{},
	}
	for _, seg := range p.SecondarySegments {
		op.SecondarySegments = append(op.SecondarySegments, seg.Title)
	}
	if len(p.AdditionalFields) > 0 {
		for _, opt := range p.AdditionalFields[0].Options {
			op.ServicedProducts = append(op.ServicedProducts, opt.Value)
		}
	}

	eng := &model.Engagement{AccountStatus: p.Status}
	if p.CompanyPageFlags != nil {
		eng.Verified = p.CompanyPageFlags.Verified
		eng.PlanType = p.CompanyPageFlags.PlanType
	}

	// Panels sharing a period type overwrite earlier ones, in upstream order.
	reputation := make(map[string]model.ReputationPeriod, len(p.Panels))
	for _, panel := range p.Panels {
		if panel.Index.Period != "" {
			reputation[panel.Index.Period] = panel.Index
		}
	}

	return &model.Dossier{
		Identification:     ident,
		Operational:        op,
		Engagement:         eng,
		ReputationByPeriod: reputation,
	}
}

// fromLookup builds the minimal dossier available for companies without a
// profile payload: identity from the search result, everything else absent.
func fromLookup(l *model.CompanyLookup) *model.Dossier {
	ident := model.Identification{
		ID:        l.ID,
		LegalName: l.CompanyName,
		TradeName: l.FantasyName,
	}
	if len(l.Documents) > 0 {
		ident.TaxID = l.Documents[0]
	}
	return &model.Dossier{Identification: ident}
}

// reputationFromSnapshot derives the six-month reputation estimate from one
// index-evolution snapshot. The series carries no final score, so it stays
// 0.0 on this path.
func reputationFromSnapshot(s *evolutionSnapshot) model.ReputationPeriod {
	var solved, dealAgain float64
	if s.TotalIndexable > 0 {
		solved = round1(float64(s.TotalSolved) / float64(s.TotalIndexable) * 100)
	}
	if s.TotalEvaluations > 0 {
		dealAgain = round1(float64(s.TotalDealAgain) / float64(s.TotalEvaluations) * 100)
	}

	status := s.Status
	if status == "" {
		status = "N/A"
	}

	return model.ReputationPeriod{
		Period:              periodSixMonths,
		Status:              status,
		FinalScore:          0,
		TotalComplaints:     s.TotalIndexable,
		SolvedPercentage:    model.FlexNumber(solved),
		DealAgainPercentage: model.FlexNumber(dealAgain),
	}
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func parsePayload(bundle model.RawBundle, key model.FetchKey, out any) error {
	raw := bundle[key]
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &SchemaError{Key: key, Err: err}
	}
	return nil
}

func parseEvolution(bundle model.RawBundle) (*evolutionPayload, error) {
	raw, ok := bundle[model.FetchIndexEvolution]
	if !ok {
		return nil, nil
	}
	var payload evolutionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &SchemaError{Key: model.FetchIndexEvolution, Err: err}
	}
	return &payload, nil
}
