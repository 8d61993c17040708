package utils

import (
	"ClinicFlow/models"
	"errors"
	"log"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrInvalidResetCode   = errors.New("invalid reset code")
)

// ValidateUserData validates user data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&user.Email, validation.Required, is.Email),
		// Ensure password is required and follows the custom validation
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateSessionInput validates a care session registration. The patient is
// identified either by an existing ID or by inline patient data, never both
// and never neither.
func ValidateSessionInput(complaints, doctorID, patientID string, hasInlinePatient bool) error {
	errs := validation.Errors{
		"complaints": validation.Validate(complaints, validation.Required, validation.Length(1, 2000)),
		"doctor_id":  validation.Validate(doctorID, validation.Required),
	}
	if hasInlinePatient {
		if patientID != "" {
			errs["patient_id"] = errors.New("provide either patient_id or patient_data, not both")
		}
	} else {
		errs["patient_id"] = validation.Validate(patientID, validation.Required.Error("either patient_id or patient_data is required"))
	}
	return errs.Filter()
}

// ValidatePatientData validates inline patient registration data.
func ValidatePatientData(patient *models.Patient) error {
	return validation.ValidateStruct(patient,
		validation.Field(&patient.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&patient.Sex, validation.Required, validation.In("Male", "Female", "Other")),
		validation.Field(&patient.DateOfBirth, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&patient.Phone, validation.Length(0, 20)),
	)
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	err := validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		log.Println("Password too short")
		return ErrPasswordTooShort
	}

	// Check complexity with regex
	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
