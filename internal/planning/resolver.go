package planning

import "github.com/anvaya/replen/internal/domain"

// catalogInfo is the (style, central SKU) pair joined onto plan rows.
type catalogInfo struct {
	StyleID    string
	CentralSKU string
}

// catalogResolver resolves style ID and central SKU for a SKU with ordered
// fallback tiers:
//
//  1. the first sales row in the caller's matched group,
//  2. any sales row anywhere for the SKU,
//  3. the UNKNOWN marker.
//
// The final tier is a deliberate soft-degradation path, not a failure: rows
// with unresolvable joins are still emitted.
type catalogResolver struct {
	bySKU map[string]catalogInfo
}

func newCatalogResolver(sales []domain.SaleRecord) *catalogResolver {
	bySKU := make(map[string]catalogInfo, len(sales))
	for _, s := range sales {
		if _, ok := bySKU[s.SKU]; !ok {
			bySKU[s.SKU] = catalogInfo{StyleID: s.StyleID, CentralSKU: s.CentralSKU}
		}
	}
	return &catalogResolver{bySKU: bySKU}
}

// Resolve returns the catalog info for sku, preferring the representative
// sale from the caller's own matched group when present.
func (r *catalogResolver) Resolve(sku string, matched []domain.SaleRecord) catalogInfo {
	if len(matched) > 0 {
		return catalogInfo{StyleID: matched[0].StyleID, CentralSKU: matched[0].CentralSKU}
	}
	if info, ok := r.bySKU[sku]; ok {
		return info
	}
	return catalogInfo{StyleID: UnknownMarker, CentralSKU: UnknownMarker}
}

// remarkIndex maps style ID to catalog status. Built fresh per generator
// invocation; duplicates resolve by input order, last one wins.
func remarkIndex(remarks []domain.CatalogRemark) map[string]string {
	idx := make(map[string]string, len(remarks))
	for _, r := range remarks {
		idx[r.StyleID] = r.Status
	}
	return idx
}
