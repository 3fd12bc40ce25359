package http

import (
	"context"
	"net/http"
	"time"

	"healthcare-portal/internal/delivery/http/handler"
	"healthcare-portal/internal/delivery/http/middleware"
	"healthcare-portal/pkg/response"

	"github.com/gorilla/mux"
)

// HealthCheck reports whether one backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	doctorHandler         *handler.DoctorHandler
	doctorScheduleHandler *handler.DoctorScheduleHandler
	patientHandler        *handler.PatientHandler
	appointmentHandler    *handler.AppointmentHandler
	providerHandler       *handler.ProviderHandler
	auditLogHandler       *handler.AuditLogHandler
	userHandler           *handler.UserHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	loggerMiddleware      *middleware.LoggerMiddleware
	recoveryMiddleware    *middleware.RecoveryMiddleware
	requestTimeout        time.Duration
	healthChecks          map[string]HealthCheck
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	doctorScheduleHandler *handler.DoctorScheduleHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	providerHandler *handler.ProviderHandler,
	auditLogHandler *handler.AuditLogHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggerMiddleware *middleware.LoggerMiddleware,
	recoveryMiddleware *middleware.RecoveryMiddleware,
	requestTimeout time.Duration,
	healthChecks map[string]HealthCheck,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		doctorHandler:         doctorHandler,
		doctorScheduleHandler: doctorScheduleHandler,
		patientHandler:        patientHandler,
		appointmentHandler:    appointmentHandler,
		providerHandler:       providerHandler,
		auditLogHandler:       auditLogHandler,
		userHandler:           userHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
		loggerMiddleware:      loggerMiddleware,
		recoveryMiddleware:    recoveryMiddleware,
		requestTimeout:        requestTimeout,
		healthChecks:          healthChecks,
	}
}

// only wraps a single handler with a role guard.
func only(guard func(http.Handler) http.Handler, h http.HandlerFunc) http.Handler {
	return guard(h)
}

// Setup registers every route. CORS wraps the whole router because mux only
// runs its own middleware on matched routes, and no route answers OPTIONS.
func (r *Router) Setup() http.Handler {
	r.router.Use(middleware.RequestID)
	r.router.Use(r.loggerMiddleware.Handle)
	r.router.Use(r.recoveryMiddleware.Handle)
	r.router.Use(middleware.Timeout(r.requestTimeout))

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor self-service, registered before /doctors/{id}
	doctorSelf := api.PathPrefix("/doctors/me").Subrouter()
	doctorSelf.Use(r.authMiddleware.Authenticate)
	doctorSelf.Use(middleware.RequireDoctor)
	doctorSelf.HandleFunc("", r.doctorHandler.UpdateSelfProfile).Methods(http.MethodPatch)
	doctorSelf.HandleFunc("/schedule", r.doctorScheduleHandler.GetMySchedule).Methods(http.MethodGet)
	doctorSelf.HandleFunc("/schedule", r.doctorScheduleHandler.ReplaceMySchedule).Methods(http.MethodPut)

	// Doctor directory (public)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.HandleFunc("", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	doctorReviews := api.PathPrefix("/doctors/{id}/reviews").Subrouter()
	doctorReviews.Use(r.authMiddleware.Authenticate)
	doctorReviews.Use(middleware.RequirePatient)
	doctorReviews.HandleFunc("", r.doctorHandler.CreateReview).Methods(http.MethodPost)

	// Patient self-service
	patientSelf := api.PathPrefix("/patients/me").Subrouter()
	patientSelf.Use(r.authMiddleware.Authenticate)
	patientSelf.Use(middleware.RequirePatient)
	patientSelf.HandleFunc("", r.patientHandler.GetSelfProfile).Methods(http.MethodGet)
	patientSelf.HandleFunc("", r.patientHandler.UpdateSelfProfile).Methods(http.MethodPatch)
	patientSelf.HandleFunc("/medical-records", r.patientHandler.ListMedicalRecords).Methods(http.MethodGet)
	patientSelf.HandleFunc("/medical-records", r.patientHandler.CreateMedicalRecord).Methods(http.MethodPost)

	// Appointments
	api.HandleFunc("/appointments/available-slots", r.appointmentHandler.GetAvailableSlots).Methods(http.MethodGet)

	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Handle("", only(middleware.RequirePatient, r.appointmentHandler.CreateAppointment)).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	appointments.Handle("/{id}", only(middleware.RequireCareParticipant, r.appointmentHandler.GetAppointment)).Methods(http.MethodGet)
	appointments.Handle("/{id}/status", only(middleware.RequireCareParticipant, r.appointmentHandler.UpdateStatus)).Methods(http.MethodPut)
	appointments.Handle("/{id}", only(middleware.RequireDoctor, r.appointmentHandler.UpdateDetails)).Methods(http.MethodPut)
	appointments.Handle("/{id}", only(middleware.RequireCareParticipant, r.appointmentHandler.DeleteAppointment)).Methods(http.MethodDelete)

	// Provider directory
	providers := api.PathPrefix("/providers").Subrouter()
	providers.HandleFunc("", r.providerHandler.ListProviders).Methods(http.MethodGet)
	providers.HandleFunc("/search", r.providerHandler.SearchProviders).Methods(http.MethodGet)
	providers.HandleFunc("/categories", r.providerHandler.GetCategories).Methods(http.MethodGet)
	providers.HandleFunc("/areas/popular", r.providerHandler.GetPopularAreas).Methods(http.MethodGet)
	providers.HandleFunc("/area/{area}", r.providerHandler.ListByArea).Methods(http.MethodGet)
	providers.HandleFunc("/{id}", r.providerHandler.GetProvider).Methods(http.MethodGet)

	providersProtected := api.PathPrefix("/providers").Subrouter()
	providersProtected.Use(r.authMiddleware.Authenticate)
	providersProtected.Handle("", only(middleware.RequireAdmin, r.providerHandler.CreateProvider)).Methods(http.MethodPost)
	providersProtected.HandleFunc("/{id}/reviews", r.providerHandler.CreateReview).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/active", r.userHandler.SetActive).Methods(http.MethodPatch)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	status := make(map[string]string, len(r.healthChecks))
	healthy := true
	for name, check := range r.healthChecks {
		if err := check(req.Context()); err != nil {
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		response.Error(w, http.StatusServiceUnavailable, "Service unhealthy", status)
		return
	}
	response.Success(w, http.StatusOK, "ok", status)
}
