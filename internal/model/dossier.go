package model

import "encoding/json"

// FetchKey names one of the fixed follow-up fetches issued after the
// initial company search.
type FetchKey string

const (
	FetchProfile         FetchKey = "profile"
	FetchMainProblems    FetchKey = "mainProblems"
	FetchProblems6Months FetchKey = "problems6Months"
	FetchIndexEvolution  FetchKey = "indexEvolution"
)

// RawBundle maps fetch keys to raw upstream response bodies. An absent key
// means the fetch failed or was never attempted; a present entry is always a
// non-empty body. Written once per key during collection, read-only afterwards.
type RawBundle map[FetchKey]string

// CompanyLookup is the canonical company resolved by the initial search.
// The first document is conventionally the CNPJ.
type CompanyLookup struct {
	ID          string   `json:"id"`
	CompanyName string   `json:"companyName"`
	FantasyName string   `json:"fantasyName"`
	Shortname   string   `json:"shortname"`
	Status      string   `json:"status"`
	Documents   []string `json:"documents"`
}

// Dossier is the normalized 360° reputation record for one company.
// Identification is always populated; every other section is omitted when its
// upstream source was unavailable or inapplicable to the company's tier.
type Dossier struct {
	Identification     Identification              `json:"identificacao"`
	Operational        *Operational                `json:"operacional,omitempty"`
	Engagement         *Engagement                 `json:"engajamentoPlataforma,omitempty"`
	ReputationByPeriod map[string]ReputationPeriod `json:"reputacaoPorPeriodo,omitempty"`
	HistoricalProblems []ProblemCount              `json:"principaisProblemasHistorico,omitempty"`
	RecentProblems     []ProblemCount              `json:"principaisProblemas6Meses,omitempty"`
	MonthlyEvolution   json.RawMessage             `json:"evolucaoMensalDetalhada,omitempty"`
}

// Identification holds the registry data of a company.
type Identification struct {
	ID           string   `json:"idReclameAqui"`
	TaxID        string   `json:"cnpj,omitempty"`
	LegalName    string   `json:"razaoSocial"`
	TradeName    string   `json:"nomeFantasia"`
	RegisteredAt string   `json:"dataCadastroPlataforma,omitempty"`
	Address      *Address `json:"endereco,omitempty"`
}

// Address is a company address; every field is independently optional.
type Address struct {
	ZipCode      string `json:"zipCode,omitempty"`
	Route        string `json:"route,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
}

// Operational describes how the company presents itself on the platform.
// Only companies with a profile payload (enhanced account tier) have one.
type Operational struct {
	MainSegment       string   `json:"segmentoPrincipal,omitempty"`
	SecondarySegments []string `json:"segmentosSecundarios"`
	MainSite          string   `json:"sitePrincipal,omitempty"`
	ServicedProducts  []string `json:"principaisProdutosAtendimento"`
}

// Engagement describes the company's relationship with the platform.
type Engagement struct {
	AccountStatus string `json:"statusConta,omitempty"`
	Verified      *bool  `json:"verificada,omitempty"`
	PlanType      string `json:"tipoPlano,omitempty"`
}

// ReputationPeriod is the reputation panel for one period label.
type ReputationPeriod struct {
	Period              string     `json:"type"`
	Status              string     `json:"status"`
	FinalScore          FlexNumber `json:"finalScore"`
	TotalComplaints     int        `json:"totalComplains"`
	SolvedPercentage    FlexNumber `json:"solvedPercentual"`
	DealAgainPercentage FlexNumber `json:"dealAgainPercentual"`
}

// ProblemCount pairs a complaint category with its frequency.
type ProblemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
