package main

import (
	"time"

	"github.com/sells-group/reputation-cli/internal/collect"
	"github.com/sells-group/reputation-cli/internal/config"
	"github.com/sells-group/reputation-cli/internal/dossier"
	"github.com/sells-group/reputation-cli/pkg/reclameaqui"
)

// newDossierService composes the client, collector, and normalizer once.
func newDossierService(cfg *config.Config) *dossier.Service {
	client := reclameaqui.NewClient(
		reclameaqui.WithSiteURL(cfg.ReclameAqui.SiteURL),
		reclameaqui.WithSearchAPIURL(cfg.ReclameAqui.SearchAPIURL),
		reclameaqui.WithCompanyAPIURL(cfg.ReclameAqui.CompanyAPIURL),
		reclameaqui.WithTimeout(time.Duration(cfg.ReclameAqui.TimeoutSecs)*time.Second),
	)
	collector := collect.New(client, time.Duration(cfg.Collect.FetchTimeoutSecs)*time.Second)
	return dossier.NewService(collector)
}
