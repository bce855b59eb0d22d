package models

import "time"

// Property - запись об инспекции объекта недвижимости.
// Вложенность: Property -> PropertyDetail (комната) -> PropertyImage.
type Property struct {
	BaseModel
	AccountID string  `json:"accountId" gorm:"type:varchar(36);index;not null"`
	Account   Account `json:"-" gorm:"foreignKey:AccountID"`

	PropertyAddress string     `json:"property_address"`
	TenantName      string     `json:"tenant_name"`
	InspectorName   string     `json:"inspector_name"`
	InspectionDate  *time.Time `json:"inspection_date"`

	// Сроки действия сертификатов
	EPCExpDate                  *time.Time `json:"ecp_exp_date"`
	ECIRExpDate                 *time.Time `json:"ecir_exp_date"`
	GasSafetyCertificateExpDate *time.Time `json:"gas_safety_certificate_exp_date"`

	ElectricityMeter        string `json:"electricity_meter"`
	ElectricityMeterReading string `json:"electricity_meter_reading"`
	GasMeter                string `json:"gas_meter"`
	GasMeterReading         string `json:"gas_meter_reading"`
	WaterMeter              string `json:"water_meter"`
	WaterMeterReading       string `json:"water_meter_reading"`

	SmokeAlarm    string `json:"smoke_alarm"`
	COAlarm       string `json:"co_alarm"`
	HeatingSystem string `json:"heating_system"`

	// Подписи хранятся как base64-строки произвольной длины
	SignatureInspector string `json:"signature_inspector" gorm:"type:longtext"`
	SignatureTenant    string `json:"signature_tenant" gorm:"type:longtext"`

	AdvisedTenantTo      string `json:"advised_tenant_to"`
	AskedLandlordTo      string `json:"asked_landlord_to"`
	ContractorInstructed string `json:"contractor_instructed"`
	Types                string `json:"types"`
	FinalRemarks         string `json:"final_remarks"`

	MainImg             string `json:"main_img"`
	ElectricityMeterImg string `json:"electricity_meter_img"`
	GasMeterImg         string `json:"gas_meter_img"`
	WaterMeterImg       string `json:"water_meter_img"`
	SmokeAlarmFrontImg  string `json:"smoke_alarm_front_img"`
	SmokeAlarmBackImg   string `json:"smoke_alarm_back_img"`
	COAlarmFrontImg     string `json:"co_alarm_front_img"`
	COAlarmBackImg      string `json:"co_alarm_back_img"`
	HeatingSystemImg    string `json:"heating_system_img"`

	PropertyDetails []PropertyDetail `json:"property_details" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// PropertyDetail - состояние одной комнаты/зоны в отчете
type PropertyDetail struct {
	BaseModel
	PropertyID string `json:"propertyId" gorm:"type:varchar(36);index;not null"`

	Name        string `json:"name"`
	Description string `json:"description"`
	Floor       string `json:"floor"`
	Walls       string `json:"walls"`
	Ceiling     string `json:"ceiling"`
	Windows     string `json:"windows"`
	Doors       string `json:"doors"`

	PropertyImages []PropertyImage `json:"property_images" gorm:"foreignKey:PropertyDetailID;constraint:OnDelete:CASCADE"`
}

// PropertyImage - фотография, прикрепленная к комнате
type PropertyImage struct {
	BaseModel
	PropertyDetailID string `json:"propertyDetailId" gorm:"type:varchar(36);index;not null"`

	URL string `json:"url"`
}
