package models

// State represents a geographic state used for campaign targeting
type State struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null"`
}

func (State) TableName() string {
	return "states"
}

// DpdBucket represents a days-past-due delinquency bucket (e.g. T-6, T+5)
type DpdBucket struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(50);not null"`
}

func (DpdBucket) TableName() string {
	return "dpd_buckets"
}

// Channel represents an outreach channel (SMS, WhatsApp, IVR)
type Channel struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(50);not null"`
}

func (Channel) TableName() string {
	return "channels"
}

// Template represents a message template belonging to a channel
type Template struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ChannelID uint   `json:"channel_id" gorm:"not null;index"`
	Name      string `json:"name" gorm:"type:varchar(150);not null"`

	Channel Channel `json:"channel,omitempty" gorm:"foreignKey:ChannelID;references:ID"`
}

func (Template) TableName() string {
	return "templates"
}

// Language represents a message language
type Language struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(50);not null"`
}

func (Language) TableName() string {
	return "languages"
}
