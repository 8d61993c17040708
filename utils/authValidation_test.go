package utils

import (
	"ClinicFlow/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSessionInputWithPatientID(t *testing.T) {
	err := ValidateSessionInput("fever and cough", "doc-1", "pat-1", false)
	assert.NoError(t, err)
}

func TestValidateSessionInputWithInlinePatient(t *testing.T) {
	err := ValidateSessionInput("fever and cough", "doc-1", "", true)
	assert.NoError(t, err)
}

func TestValidateSessionInputRequiresComplaints(t *testing.T) {
	err := ValidateSessionInput("", "doc-1", "pat-1", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "complaints")
}

func TestValidateSessionInputRequiresDoctor(t *testing.T) {
	err := ValidateSessionInput("fever", "", "pat-1", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doctor_id")
}

func TestValidateSessionInputRequiresSomePatient(t *testing.T) {
	err := ValidateSessionInput("fever", "doc-1", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "patient_id")
}

func TestValidateSessionInputRejectsBothPatientForms(t *testing.T) {
	err := ValidateSessionInput("fever", "doc-1", "pat-1", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestValidatePatientData(t *testing.T) {
	patient := &models.Patient{
		Name:        "Jane Roe",
		Sex:         "Female",
		DateOfBirth: "1990-05-12",
		Phone:       "0812345678",
	}
	assert.NoError(t, ValidatePatientData(patient))

	patient.Sex = "F"
	assert.Error(t, ValidatePatientData(patient))

	patient.Sex = "Female"
	patient.DateOfBirth = "12-05-1990"
	assert.Error(t, ValidatePatientData(patient))
}

func TestValidatePasswordReset(t *testing.T) {
	assert.NoError(t, ValidatePasswordReset("123456", "Str0ng!pass"))
	assert.Error(t, ValidatePasswordReset("", "Str0ng!pass"))
	assert.Error(t, ValidatePasswordReset("123456", "short"))
	assert.Error(t, ValidatePasswordReset("123456", "alllowercase1!"))
}
