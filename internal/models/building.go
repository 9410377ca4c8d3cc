package models

import "time"

// Building groups rentable units. TotalUnits is informational and is not
// checked against the number of Unit rows.
type Building struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Location   string    `gorm:"type:text;not null" json:"location"`
	TotalUnits uint      `gorm:"not null" json:"total_units"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Building) TableName() string { return "buildings" }

// UnitType is a named category of unit (studio, shop, office...).
type UnitType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (UnitType) TableName() string { return "unit_types" }

// Unit is a rentable space inside a building. Status is maintained by hand;
// nothing keeps it in step with the unit's lease.
type Unit struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BuildingID  uint       `gorm:"not null;index" json:"building_id"`
	Building    *Building  `gorm:"constraint:OnDelete:CASCADE" json:"building,omitempty"`
	UnitNumber  string     `gorm:"size:10;uniqueIndex;not null" json:"unit_number"`
	UnitTypeID  *uint      `gorm:"index" json:"unit_type_id"`
	UnitType    *UnitType  `gorm:"constraint:OnDelete:SET NULL" json:"unit_type,omitempty"`
	Size        float64    `gorm:"not null" json:"size"`
	FloorNumber uint       `gorm:"not null" json:"floor_number"`
	RentPrice   float64    `gorm:"type:decimal(10,2);not null" json:"rent_price"`
	Status      UnitStatus `gorm:"size:15;not null;default:available" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
}

func (Unit) TableName() string { return "units" }

// Occupancy summarises the units of a building by status.
type Occupancy struct {
	Total       int64 `json:"total"`
	Rented      int64 `json:"rented"`
	Available   int64 `json:"available"`
	Maintenance int64 `json:"maintenance"`
}

// Add counts n units with status s.
func (o *Occupancy) Add(s UnitStatus, n int64) {
	o.Total += n
	switch s {
	case UnitRented:
		o.Rented += n
	case UnitAvailable:
		o.Available += n
	case UnitMaintenance:
		o.Maintenance += n
	}
}

// OccupancyOf tallies a slice of units.
func OccupancyOf(units []Unit) Occupancy {
	var o Occupancy
	for _, u := range units {
		o.Add(u.Status, 1)
	}
	return o
}
