package controllers

import (
	"ClinicFlow/handlers"

	"github.com/gin-gonic/gin"
)

func SetupClinicRoutes(router *gin.Engine, sessionHandler *handlers.CareSessionHandler, queueHandler *handlers.QueueHandler, billingHandler *handlers.BillingHandler, patientHandler *handlers.PatientHandler, doctorHandler *handlers.DoctorHandler, roomHandler *handlers.RoomHandler, catalogHandler *handlers.CatalogHandler) {
	// Care session lifecycle
	router.POST("/care-sessions", sessionHandler.CreateSession)
	router.GET("/care-sessions", sessionHandler.ListSessions)
	router.GET("/care-sessions/:session_id", sessionHandler.GetSessionByID)
	router.PATCH("/care-sessions/:session_id", sessionHandler.UpdateSession)

	// Clinical records attached to a session
	router.POST("/care-sessions/:session_id/vital-sign", sessionHandler.RecordVitalSign)
	router.GET("/care-sessions/:session_id/vital-sign", sessionHandler.GetVitalSign)
	router.POST("/care-sessions/:session_id/diagnoses", sessionHandler.AddDiagnosis)
	router.GET("/care-sessions/:session_id/diagnoses", sessionHandler.GetDiagnoses)
	router.POST("/care-sessions/:session_id/treatments", sessionHandler.AddTreatment)
	router.GET("/care-sessions/:session_id/treatments", sessionHandler.GetTreatments)
	router.POST("/care-sessions/:session_id/drug-orders", sessionHandler.AddDrugOrder)
	router.GET("/care-sessions/:session_id/drug-orders", sessionHandler.GetDrugOrders)

	// Billing: GET shows the running bill, POST settles it
	router.GET("/care-sessions/:session_id/bill", billingHandler.GetBill)
	router.POST("/care-sessions/:session_id/bill", billingHandler.SettlePayment)
	router.GET("/invoices", billingHandler.ListInvoices)

	// Queue displays
	router.GET("/queues/main", queueHandler.GetMainQueue)
	router.GET("/queues/pharmacy", queueHandler.GetPharmacyQueue)
	router.GET("/queues/doctor/:doctor_id", queueHandler.GetDoctorQueue)

	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:patient_id", patientHandler.DeletePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.POST("/doctors", doctorHandler.CreateDoctor)
	router.GET("/doctors/:doctor_id", doctorHandler.GetDoctorByID)
	router.PUT("/doctors/:doctor_id", doctorHandler.UpdateDoctor)
	router.DELETE("/doctors/:doctor_id", doctorHandler.DeleteDoctor)
	router.GET("/doctors", doctorHandler.GetAllDoctors)

	router.POST("/rooms", roomHandler.CreateRoom)
	router.GET("/rooms/:room_id", roomHandler.GetRoomByID)
	router.PUT("/rooms/:room_id", roomHandler.UpdateRoom)
	router.DELETE("/rooms/:room_id", roomHandler.DeleteRoom)
	router.GET("/rooms", roomHandler.GetAllRooms)

	router.POST("/drugs", catalogHandler.CreateDrug)
	router.GET("/drugs/:drug_id", catalogHandler.GetDrugByID)
	router.PUT("/drugs/:drug_id", catalogHandler.UpdateDrug)
	router.DELETE("/drugs/:drug_id", catalogHandler.DeleteDrug)
	router.GET("/drugs", catalogHandler.GetAllDrugs)

	router.POST("/treatment-catalog", catalogHandler.CreateTreatment)
	router.GET("/treatment-catalog/:treatment_id", catalogHandler.GetTreatmentByID)
	router.PUT("/treatment-catalog/:treatment_id", catalogHandler.UpdateTreatment)
	router.DELETE("/treatment-catalog/:treatment_id", catalogHandler.DeleteTreatment)
	router.GET("/treatment-catalog", catalogHandler.GetAllTreatments)
}
