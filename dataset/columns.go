package dataset

// Columns maps the header names of the input file to record fields
type Columns struct {
	ID           string `yaml:"id" json:"id"`
	CustomerType string `yaml:"customer_type" json:"customer_type"`
	Region       string `yaml:"region" json:"region"`
	Area         string `yaml:"building_area_m2" json:"building_area_m2"`
	Occupants    string `yaml:"occupant_count" json:"occupant_count"`
	Cost         string `yaml:"monthly_cost" json:"monthly_cost"`
	Delimiter    string `yaml:"delimiter" json:"delimiter"`
}

// NewDefaultColumns returns the header names of the energy consumption dataset
func NewDefaultColumns() *Columns {
	return &Columns{
		ID:           "id_Customer",
		CustomerType: "Tipe_Customer",
		Region:       "Region",
		Area:         "Luas_Bangunan_m2",
		Occupants:    "Jumlah_Penghuni",
		Cost:         "Biaya_Listrik",
		Delimiter:    ",",
	}
}

// Validate fills any unset column name with its default
func (c *Columns) Validate() *Columns {
	def := NewDefaultColumns()
	if c == nil {
		return def
	}

	out := *c
	if out.ID == "" {
		out.ID = def.ID
	}
	if out.CustomerType == "" {
		out.CustomerType = def.CustomerType
	}
	if out.Region == "" {
		out.Region = def.Region
	}
	if out.Area == "" {
		out.Area = def.Area
	}
	if out.Occupants == "" {
		out.Occupants = def.Occupants
	}
	if out.Cost == "" {
		out.Cost = def.Cost
	}
	if out.Delimiter == "" {
		out.Delimiter = def.Delimiter
	}
	return &out
}
