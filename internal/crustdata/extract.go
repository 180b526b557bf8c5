package crustdata

import (
	"regexp"
	"strings"
)

// Pure post-processing helpers over raw provider responses.

var protocolPrefixRe = regexp.MustCompile(`^https?://`)

// cleanDomain strips a leading http(s):// and any trailing slash.
func cleanDomain(value string) string {
	cleaned := protocolPrefixRe.ReplaceAllString(value, "")
	return strings.TrimRight(cleaned, "/")
}

// ExtractDomainsFromScreenResponse collects domain values from every
// column whose declared name contains "domain" or "website", cleaned,
// de-duplicated in insertion order, and capped at the enrichment limit.
func ExtractDomainsFromScreenResponse(resp *ScreenResponse) []string {
	domains := []string{}
	if resp == nil || len(resp.Fields) == 0 || len(resp.Rows) == 0 {
		return domains
	}

	var domainColumns []int
	for i, field := range resp.Fields {
		if strings.Contains(field.APIName, "domain") || strings.Contains(field.APIName, "website") {
			domainColumns = append(domainColumns, i)
		}
	}

	seen := make(map[string]bool)
	for _, row := range resp.Rows {
		for _, col := range domainColumns {
			if col >= len(row) {
				continue
			}
			value, ok := row[col].(string)
			if !ok {
				continue
			}
			cleaned := cleanDomain(value)
			if cleaned == "" || seen[cleaned] {
				continue
			}
			domains = append(domains, cleaned)
			seen[cleaned] = true
		}
	}

	if len(domains) > maxEnrichDomains {
		domains = domains[:maxEnrichDomains]
	}
	return domains
}

// ExtractCompanyNamesFromScreenResponse collects the values of the
// column named exactly "company_name", de-duplicated in order.
func ExtractCompanyNamesFromScreenResponse(resp *ScreenResponse) []string {
	names := []string{}
	if resp == nil || len(resp.Fields) == 0 || len(resp.Rows) == 0 {
		return names
	}

	nameColumn := -1
	for i, field := range resp.Fields {
		if field.APIName == "company_name" {
			nameColumn = i
			break
		}
	}
	if nameColumn == -1 {
		return names
	}

	seen := make(map[string]bool)
	for _, row := range resp.Rows {
		if nameColumn >= len(row) {
			continue
		}
		name, ok := row[nameColumn].(string)
		if !ok || name == "" || seen[name] {
			continue
		}
		names = append(names, name)
		seen[name] = true
	}
	return names
}

// ExtractDomainsFromSearchResponse applies the same cleaning rule to
// each search result's website field.
func ExtractDomainsFromSearchResponse(resp *CompanySearchResponse) []string {
	domains := []string{}
	if resp == nil {
		return domains
	}

	seen := make(map[string]bool)
	for _, company := range resp.Companies {
		if company.Website == "" {
			continue
		}
		cleaned := cleanDomain(company.Website)
		if cleaned == "" || seen[cleaned] {
			continue
		}
		domains = append(domains, cleaned)
		seen[cleaned] = true
	}

	if len(domains) > maxEnrichDomains {
		domains = domains[:maxEnrichDomains]
	}
	return domains
}

// JoinPeopleToCompanies matches people to enriched companies by
// case-insensitive company name. A person with several qualifying
// employer entries appears once per matching entry, keyed by the
// lowercased company name.
func JoinPeopleToCompanies(people *PeopleSearchResponse, enriched []EnrichedCompany) map[string][]PersonLite {
	matched := make(map[string][]PersonLite)
	if people == nil || len(people.Profiles) == 0 {
		return matched
	}

	companyByName := make(map[string]EnrichedCompany)
	for _, company := range enriched {
		if name := company.Name(); name != "" {
			companyByName[strings.ToLower(name)] = company
		}
	}

	for _, person := range people.Profiles {
		for _, employment := range person.Employer {
			if employment.CompanyName == "" {
				continue
			}
			key := strings.ToLower(employment.CompanyName)
			if _, ok := companyByName[key]; !ok {
				continue
			}

			title := employment.Title
			if title == "" {
				title = person.CurrentTitle
			}
			if title == "" {
				title = "Unknown"
			}
			name := person.Name
			if name == "" {
				name = "Unknown"
			}
			location := employment.Location
			if location == "" {
				location = person.Location
			}

			matched[key] = append(matched[key], PersonLite{
				Name:      name,
				Title:     title,
				Linkedin:  person.LinkedinProfileURL,
				StartDate: employment.StartDate,
				EndDate:   employment.EndDate,
				Location:  location,
			})
		}
	}

	return matched
}
