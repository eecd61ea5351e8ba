package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Profile form field names shared by the form, the voice extractor and the API
const (
	FieldFirstName             = "first_name"
	FieldLastName              = "last_name"
	FieldDateOfBirth           = "date_of_birth"
	FieldAge                   = "age"
	FieldGender                = "gender"
	FieldPhoneNumber           = "phone_number"
	FieldAddressLine1          = "address_line1"
	FieldAddressLine2          = "address_line2"
	FieldPostalCode            = "postal_code"
	FieldCity                  = "city"
	FieldBio                   = "bio"
	FieldEmergencyContactName  = "emergency_contact_name"
	FieldEmergencyContactPhone = "emergency_contact_phone"
	FieldInterests             = "interests"
	FieldMobilityLevel         = "mobility_level"
	FieldActivityPreferences   = "activity_preferences"
	FieldLanguagePreferences   = "language_preferences"
)

// ProfileFieldNames every key a field mapping may carry, in form order
var ProfileFieldNames = []string{
	FieldFirstName, FieldLastName, FieldDateOfBirth, FieldAge, FieldGender,
	FieldPhoneNumber, FieldAddressLine1, FieldAddressLine2, FieldPostalCode, FieldCity,
	FieldBio, FieldEmergencyContactName, FieldEmergencyContactPhone, FieldInterests,
	FieldMobilityLevel, FieldActivityPreferences, FieldLanguagePreferences,
}

// IsProfileField reports whether key is a recognized form field
func IsProfileField(key string) bool {
	for _, name := range ProfileFieldNames {
		if name == key {
			return true
		}
	}
	return false
}

// IsListField reports whether key holds a JSON array in a field mapping
func IsListField(key string) bool {
	return key == FieldInterests || key == FieldActivityPreferences || key == FieldLanguagePreferences
}

// DefaultCountry country preset on new profile forms
const DefaultCountry = "Singapore"

// ProfileForm the in-progress profile a user fills in by hand or by voice
type ProfileForm struct {
	FirstName             string                      `gorm:"size:60" json:"first_name"`
	LastName              string                      `gorm:"size:60" json:"last_name"`
	PhoneNumber           string                      `gorm:"size:20" json:"phone_number"`
	DateOfBirth           string                      `gorm:"size:10" json:"date_of_birth"`
	Age                   string                      `gorm:"size:3" json:"age"`
	Gender                string                      `gorm:"size:20" json:"gender"`
	AddressLine1          string                      `gorm:"size:200" json:"address_line1"`
	AddressLine2          string                      `gorm:"size:200" json:"address_line2"`
	PostalCode            string                      `gorm:"size:12" json:"postal_code"`
	City                  string                      `gorm:"size:80" json:"city"`
	Country               string                      `gorm:"size:80" json:"country"`
	Bio                   string                      `gorm:"type:text" json:"bio"`
	EmergencyContactName  string                      `gorm:"size:120" json:"emergency_contact_name"`
	EmergencyContactPhone string                      `gorm:"size:20" json:"emergency_contact_phone"`
	Interests             datatypes.JSONSlice[string] `json:"interests"`
	MobilityLevel         string                      `gorm:"size:20" json:"mobility_level"`
	ActivityPreferences   datatypes.JSONSlice[string] `json:"activity_preferences"`
	LanguagePreferences   datatypes.JSONSlice[string] `json:"language_preferences"`
}

// NewProfileForm an empty form with the defaults preset
func NewProfileForm() ProfileForm {
	return ProfileForm{
		Country:             DefaultCountry,
		Interests:           datatypes.JSONSlice[string]{},
		ActivityPreferences: datatypes.JSONSlice[string]{},
		LanguagePreferences: datatypes.JSONSlice[string]{},
	}
}

// Apply merges an extracted field mapping into the form and returns the keys it
// took. List fields must hold JSON arrays; values that fail to decode are skipped.
// Unknown keys are ignored.
func (f *ProfileForm) Apply(fields map[string]string) []string {
	var applied []string
	for _, key := range ProfileFieldNames {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if IsListField(key) {
			var list []string
			if err := json.Unmarshal([]byte(value), &list); err != nil {
				continue
			}
			f.setList(key, list)
		} else {
			f.setText(key, value)
		}
		applied = append(applied, key)
	}
	return applied
}

func (f *ProfileForm) setList(key string, list []string) {
	switch key {
	case FieldInterests:
		f.Interests = list
	case FieldActivityPreferences:
		f.ActivityPreferences = list
	case FieldLanguagePreferences:
		f.LanguagePreferences = list
	}
}

func (f *ProfileForm) setText(key, value string) {
	switch key {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldDateOfBirth:
		f.DateOfBirth = value
	case FieldAge:
		f.Age = value
	case FieldGender:
		f.Gender = value
	case FieldPhoneNumber:
		f.PhoneNumber = value
	case FieldAddressLine1:
		f.AddressLine1 = value
	case FieldAddressLine2:
		f.AddressLine2 = value
	case FieldPostalCode:
		f.PostalCode = value
	case FieldCity:
		f.City = value
	case FieldBio:
		f.Bio = value
	case FieldEmergencyContactName:
		f.EmergencyContactName = value
	case FieldEmergencyContactPhone:
		f.EmergencyContactPhone = value
	case FieldMobilityLevel:
		f.MobilityLevel = value
	}
}

// Profile a user's saved profile
type Profile struct {
	UserID      string `gorm:"size:36;primaryKey" json:"id"`
	ProfileForm `gorm:"embedded"`
	UserType    string    `gorm:"size:20;default:'regular'" json:"user_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplyFieldsRequest a field mapping produced by voice extraction
type ApplyFieldsRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}
