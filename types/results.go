package types

// ScanResult is one inventory's outcome, handed over by the scanning
// collaborator. Exactly one of AccountResults or OrganizationResults is set.
type ScanResult struct {
	Inventory           string          `json:"inventory"`
	AccountResults      []RegionResult  `json:"account_results,omitempty"`
	OrganizationResults []AccountResult `json:"organization_results,omitempty"`
}

// AccountResult holds per-account results from an organization scan.
// Counting and flattening for this variant is not implemented yet.
type AccountResult struct {
	AccountID string         `json:"account_id"`
	Regions   []RegionResult `json:"regions,omitempty"`
}

// RegionResult is the per-region outcome of a scan.
type RegionResult struct {
	Region   string          `json:"region"`
	Services []ServiceResult `json:"services"`
}

// ServiceResult is the outcome of querying one service in one region.
// Result is the raw API response and its shape depends entirely on the
// service; it is only present when Success is true.
type ServiceResult struct {
	Service string `json:"service"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Result  any    `json:"result,omitempty"`
}

// InventoryName returns the inventory this result belongs to.
func (r ScanResult) InventoryName() string {
	return r.Inventory
}

// ToMap converts the result to the generic mapping form the report
// pipeline consumes.
func (r ScanResult) ToMap() map[string]any {
	m := make(map[string]any)

	if r.OrganizationResults != nil {
		accounts := make([]any, 0, len(r.OrganizationResults))
		for _, a := range r.OrganizationResults {
			accounts = append(accounts, a.toMap())
		}
		m["organization_results"] = accounts
		return m
	}

	regions := make([]any, 0, len(r.AccountResults))
	for _, rr := range r.AccountResults {
		regions = append(regions, rr.toMap())
	}
	m["account_results"] = regions
	return m
}

func (a AccountResult) toMap() map[string]any {
	regions := make([]any, 0, len(a.Regions))
	for _, rr := range a.Regions {
		regions = append(regions, rr.toMap())
	}
	return map[string]any{
		"account_id": a.AccountID,
		"regions":    regions,
	}
}

func (r RegionResult) toMap() map[string]any {
	services := make([]any, 0, len(r.Services))
	for _, s := range r.Services {
		services = append(services, s.toMap())
	}
	return map[string]any{
		"region":   r.Region,
		"services": services,
	}
}

func (s ServiceResult) toMap() map[string]any {
	m := map[string]any{
		"service": s.Service,
		"success": s.Success,
	}
	if s.Error != "" {
		m["error"] = s.Error
	}
	if s.Success && s.Result != nil {
		m["result"] = s.Result
	}
	return m
}
