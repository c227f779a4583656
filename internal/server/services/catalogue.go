package services

import (
	"strings"

	"github.com/dmitrijs2005/fortuneseal/internal/fortune"
	"github.com/dmitrijs2005/fortuneseal/internal/templates"
)

type CatalogueService struct {
	provider templates.Provider
}

func NewCatalogueService(p templates.Provider) *CatalogueService {
	return &CatalogueService{provider: p}
}

// TemplateCount returns the number of templates of a period. Unknown periods
// have zero templates.
func (s *CatalogueService) TemplateCount(period string) int {
	p, err := fortune.ParsePeriod(strings.ToLower(strings.TrimSpace(period)))
	if err != nil {
		return 0
	}
	return s.provider.Count(p)
}
