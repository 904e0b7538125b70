package models

// ODOPDistrict is a "One District One Product" record. The ODOP catalog is
// independent of destinations; nothing links the two.
type ODOPDistrict struct {
	ID                       string        `yaml:"id" json:"id"`
	Name                     string        `yaml:"name" json:"name"`
	AnchorProduct            string        `yaml:"anchor_product" json:"anchor_product"`
	AnchorProductDescription string        `yaml:"anchor_product_description" json:"anchor_product_description"`
	CulturalSignificance     string        `yaml:"cultural_significance" json:"cultural_significance"`
	HiddenGems               []DistrictGem `yaml:"hidden_gems" json:"hidden_gems"`
}

// DistrictGem is a lesser-known product listed under a district.
type DistrictGem struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}
