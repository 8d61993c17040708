package repositories

import (
	"ClinicFlow/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatientLockKeyUsesPhone(t *testing.T) {
	key, ok := patientLockKey(&models.Patient{Name: "Jane Roe", Phone: "0812345678"})
	assert.True(t, ok)
	assert.Equal(t, "patient_lock:0812345678", key)
}

func TestPatientLockKeySkipsPhonelessPatients(t *testing.T) {
	_, ok := patientLockKey(&models.Patient{Name: "Jane Roe"})
	assert.False(t, ok)
}
