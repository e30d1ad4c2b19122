package model

type Participant struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name         string `gorm:"column:name;type:text"`
	Address      string `gorm:"column:address;type:text"`
	Phone        string `gorm:"column:phone;type:text"`
	Affiliation  string `gorm:"column:affiliation;type:text"`
	EventDate    string `gorm:"column:event_date;type:text"`
	LocalityName string `gorm:"column:locality_name;type:text"`
}

func (Participant) TableName() string {
	return "participants"
}
