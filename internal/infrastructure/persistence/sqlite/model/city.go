package model

type City struct {
	DivisionCode int    `gorm:"column:division_code;not null"`
	LocalityCode int    `gorm:"column:locality_code;primaryKey;autoIncrement:false"`
	DivisionName string `gorm:"column:division_name;type:text"`
	LocalityName string `gorm:"column:locality_name;type:text"`
}

func (City) TableName() string {
	return "cities"
}
