package records

import (
	"encoding/json"
	"errors"

	"github.com/mihailsb/homevault/registry"
)

var (
	ErrPayloadTypeMismatch = errors.New("payload type does not match record type")
	ErrUnknownRecordType   = errors.New("unknown record type")
)

// TypedPayload is implemented by every payload variant. The record's Type is
// the tag of the union; DecodePayload performs the exhaustive match.
type TypedPayload interface {
	RecordType() registry.Type
}

// DriversLicense is the payload for DRIVERS_LICENSE records.
type DriversLicense struct {
	FullName      string `json:"fullName,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	IssuingState  string `json:"issuingState,omitempty"`
	Class         string `json:"class,omitempty"`
	IssuedOn      string `json:"issuedOn,omitempty"`
	ExpiresOn     string `json:"expiresOn,omitempty"`
}

func (DriversLicense) RecordType() registry.Type { return registry.TypeDriversLicense }

// Passport is the payload for PASSPORT records.
type Passport struct {
	FullName       string `json:"fullName,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	Country        string `json:"country,omitempty"`
	IssuedOn       string `json:"issuedOn,omitempty"`
	ExpiresOn      string `json:"expiresOn,omitempty"`
}

func (Passport) RecordType() registry.Type { return registry.TypePassport }

// BirthCertificate is the payload for BIRTH_CERTIFICATE records.
type BirthCertificate struct {
	FullName          string `json:"fullName,omitempty"`
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	PlaceOfBirth      string `json:"placeOfBirth,omitempty"`
	CertificateNumber string `json:"certificateNumber,omitempty"`
}

func (BirthCertificate) RecordType() registry.Type { return registry.TypeBirthCertificate }

// NationalID is the payload for NATIONAL_ID records.
type NationalID struct {
	FullName string `json:"fullName,omitempty"`
	IDNumber string `json:"idNumber,omitempty"`
	Country  string `json:"country,omitempty"`
}

func (NationalID) RecordType() registry.Type { return registry.TypeNationalID }

// BloodType is the payload for BLOOD_TYPE records.
type BloodType struct {
	ABO      string `json:"abo,omitempty"`
	RhFactor string `json:"rhFactor,omitempty"`
}

func (BloodType) RecordType() registry.Type { return registry.TypeBloodType }

// Allergy is the payload for ALLERGY records.
type Allergy struct {
	Allergen string `json:"allergen,omitempty"`
	Reaction string `json:"reaction,omitempty"`
	Severity string `json:"severity,omitempty"`
}

func (Allergy) RecordType() registry.Type { return registry.TypeAllergy }

// Medication is the payload for MEDICATION records.
type Medication struct {
	Name         string `json:"name,omitempty"`
	Dose         string `json:"dose,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	PrescribedBy string `json:"prescribedBy,omitempty"`
}

func (Medication) RecordType() registry.Type { return registry.TypeMedication }

// Condition is the payload for CONDITION records.
type Condition struct {
	Name        string `json:"name,omitempty"`
	DiagnosedOn string `json:"diagnosedOn,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func (Condition) RecordType() registry.Type { return registry.TypeCondition }

// Immunization is the payload for IMMUNIZATION records.
type Immunization struct {
	Vaccine        string `json:"vaccine,omitempty"`
	AdministeredOn string `json:"administeredOn,omitempty"`
	Booster        bool   `json:"booster,omitempty"`
}

func (Immunization) RecordType() registry.Type { return registry.TypeImmunization }

// HealthInsurance is the payload for HEALTH_INSURANCE records.
type HealthInsurance struct {
	Provider     string `json:"provider,omitempty"`
	PolicyNumber string `json:"policyNumber,omitempty"`
	GroupNumber  string `json:"groupNumber,omitempty"`
	MemberID     string `json:"memberId,omitempty"`
}

func (HealthInsurance) RecordType() registry.Type { return registry.TypeHealthInsurance }

// PetInsurance is the payload for PET_INSURANCE records.
type PetInsurance struct {
	Provider     string `json:"provider,omitempty"`
	PolicyNumber string `json:"policyNumber,omitempty"`
}

func (PetInsurance) RecordType() registry.Type { return registry.TypePetInsurance }

// EmergencyContact is the payload for EMERGENCY_CONTACT records.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

func (EmergencyContact) RecordType() registry.Type { return registry.TypeEmergencyContact }

// PetMicrochip is the payload for PET_MICROCHIP records.
type PetMicrochip struct {
	ChipNumber  string `json:"chipNumber,omitempty"`
	Registry    string `json:"registry,omitempty"`
	ImplantedOn string `json:"implantedOn,omitempty"`
}

func (PetMicrochip) RecordType() registry.Type { return registry.TypePetMicrochip }

// PetVaccination is the payload for PET_VACCINATION records.
type PetVaccination struct {
	Vaccine        string `json:"vaccine,omitempty"`
	AdministeredOn string `json:"administeredOn,omitempty"`
	ValidUntil     string `json:"validUntil,omitempty"`
	Clinic         string `json:"clinic,omitempty"`
}

func (PetVaccination) RecordType() registry.Type { return registry.TypePetVaccination }

// VetVisit is the payload for VET_VISIT records.
type VetVisit struct {
	Clinic    string `json:"clinic,omitempty"`
	VisitedOn string `json:"visitedOn,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (VetVisit) RecordType() registry.Type { return registry.TypeVetVisit }

// Note is the payload for NOTE records.
type Note struct {
	Text string `json:"text,omitempty"`
}

func (Note) RecordType() registry.Type { return registry.TypeNote }

// OtherDocument is the payload for OTHER_DOCUMENT records.
type OtherDocument struct {
	Description string `json:"description,omitempty"`
}

func (OtherDocument) RecordType() registry.Type { return registry.TypeOtherDocument }

// zeroPayload returns a pointer to the zero payload variant for t, or nil
// for types not in the current schema.
func zeroPayload(t registry.Type) TypedPayload {
	switch t {
	case registry.TypeDriversLicense:
		return &DriversLicense{}
	case registry.TypePassport:
		return &Passport{}
	case registry.TypeBirthCertificate:
		return &BirthCertificate{}
	case registry.TypeNationalID:
		return &NationalID{}
	case registry.TypeBloodType:
		return &BloodType{}
	case registry.TypeAllergy:
		return &Allergy{}
	case registry.TypeMedication:
		return &Medication{}
	case registry.TypeCondition:
		return &Condition{}
	case registry.TypeImmunization:
		return &Immunization{}
	case registry.TypeHealthInsurance:
		return &HealthInsurance{}
	case registry.TypePetInsurance:
		return &PetInsurance{}
	case registry.TypeEmergencyContact:
		return &EmergencyContact{}
	case registry.TypePetMicrochip:
		return &PetMicrochip{}
	case registry.TypePetVaccination:
		return &PetVaccination{}
	case registry.TypeVetVisit:
		return &VetVisit{}
	case registry.TypeNote:
		return &Note{}
	case registry.TypeOtherDocument:
		return &OtherDocument{}
	default:
		return nil
	}
}

// DecodePayload returns the typed payload variant for the record's Type.
// Malformed payloads decode to the zero variant, mirroring normalization.
// ErrUnknownRecordType is returned for types outside the current schema.
func (r Record) DecodePayload() (TypedPayload, error) {
	p := zeroPayload(r.Type)
	if p == nil {
		return nil, ErrUnknownRecordType
	}
	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, p); err != nil {
			return zeroPayload(r.Type), nil
		}
	}
	return p, nil
}
