package dto

import "time"

// PropertyDetailInput - одна комната в составе записи об инспекции
type PropertyDetailInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Floor       string `json:"floor"`
	Walls       string `json:"walls"`
	Ceiling     string `json:"ceiling"`
	Windows     string `json:"windows"`
	Doors       string `json:"doors"`

	// URL уже загруженных фотографий (см. POST /properties/upload)
	PropertyImages []string `json:"property_images"`
}

// PropertyRequest - тело создания/обновления записи об инспекции
type PropertyRequest struct {
	PropertyAddress string     `json:"property_address" validate:"required"`
	TenantName      string     `json:"tenant_name"`
	InspectorName   string     `json:"inspector_name"`
	InspectionDate  *time.Time `json:"inspection_date"`

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

	SignatureInspector string `json:"signature_inspector"`
	SignatureTenant    string `json:"signature_tenant"`

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

	PropertyDetails []PropertyDetailInput `json:"property_details" validate:"dive"`
}

// SendReportRequest - тело POST /properties/:id/report.
// Пустой email = отправить владельцу записи.
type SendReportRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// UploadResponse - результат загрузки фотографии
type UploadResponse struct {
	URL string `json:"url"`
}
