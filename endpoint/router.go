package endpoint

import (
	"net/http"
	"time"

	"github.com/ariebrainware/basis-data-dental/middleware"
	"github.com/ariebrainware/basis-data-dental/model"
	"github.com/ariebrainware/basis-data-dental/service"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RouterOptions carries what the HTTP layer needs from the process.
type RouterOptions struct {
	AppName     string
	DB          *gorm.DB
	Services    *service.Services
	Logger      zerolog.Logger
	CORSOrigins []string
	IPResolver  *util.IPResolver
	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer  prometheus.Gatherer
	AuthLimit middleware.RateLimitConfig
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))
	r.Use(middleware.DatabaseMiddleware(opts.DB))
	r.Use(middleware.ServicesMiddleware(opts.Services))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to " + opts.AppName + "!", "time": time.Now().UTC()})
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	limited := r.Group("/")
	limited.Use(middleware.RateLimiter(opts.AuthLimit))
	{
		limited.POST("/login", Login)
		limited.POST("/signup", Signup)
	}
	r.GET("/token/validate", ValidateToken)

	auth := r.Group("/")
	auth.Use(middleware.ValidateLoginToken(opts.IPResolver))
	auth.Use(middleware.EndpointCallLogger())
	{
		auth.DELETE("/logout", Logout)
		auth.POST("/verify-password", middleware.RateLimiter(opts.AuthLimit), VerifyPassword)
		auth.PATCH("/account/password", UpdatePassword)
		auth.PATCH("/account/email", UpdateEmail)
		auth.GET("/profile", Profile)
		auth.POST("/clinic/setup", SetupClinic)
	}

	clinic := auth.Group("/")
	clinic.Use(middleware.RequireClinic())
	{
		clinic.GET("/patients", ListPatients)
		clinic.POST("/patients", CreatePatient)
		clinic.GET("/patients/:id", GetPatientInfo)
		clinic.PATCH("/patients/:id", UpdatePatient)
		clinic.DELETE("/patients/:id", DeletePatient)
		clinic.GET("/patients/:id/treatments", ListPatientTreatments)
		clinic.GET("/patients/:id/notes", ListPatientNotes)
		clinic.POST("/patients/:id/notes", CreatePatientNote)
		clinic.GET("/patients/:id/odontograms", ListOdontograms)
		clinic.POST("/patients/:id/odontograms", CreateOdontogram)
		clinic.GET("/patients/:id/odontograms/current", CurrentOdontogram)

		clinic.PATCH("/notes/:id", UpdateNote)
		clinic.DELETE("/notes/:id", DeleteNote)

		clinic.GET("/odontograms/:id", GetOdontogram)
		clinic.GET("/odontograms/:id/svg", OdontogramSVG)
		clinic.PUT("/odontograms/:id/conditions", SaveToothCondition)

		clinic.GET("/dentists", ListDentists)
		clinic.POST("/dentists", CreateDentist)
		clinic.PATCH("/dentists/:id", UpdateDentist)
		clinic.DELETE("/dentists/:id", DeleteDentist)

		clinic.GET("/appointments", ListAppointments)
		clinic.POST("/appointments", CreateAppointment)
		clinic.GET("/appointments/calendar", AppointmentCalendar)
		clinic.PATCH("/appointments/:id", UpdateAppointment)
		clinic.DELETE("/appointments/:id", DeleteAppointment)
		clinic.POST("/appointments/:id/cancel", CancelAppointment)

		clinic.GET("/treatments", ListTreatments)
		clinic.POST("/treatments", CreateTreatment)
		clinic.PATCH("/treatments/:id", UpdateTreatment)
		clinic.DELETE("/treatments/:id", DeleteTreatment)
		clinic.POST("/treatments/:id/duplicate", DuplicateTreatment)

		clinic.GET("/catalog", ListCatalog)
		clinic.POST("/catalog", CreateCatalogItem)
		clinic.GET("/catalog/:id", GetCatalogItem)
		clinic.PATCH("/catalog/:id", UpdateCatalogItem)
		clinic.DELETE("/catalog/:id", DeleteCatalogItem)

		clinic.GET("/dashboard", GetDashboard)
		clinic.GET("/settings/clinic", GetClinicSettings)

		admin := clinic.Group("/")
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		{
			admin.PATCH("/settings/clinic", UpdateClinicSettings)
			admin.GET("/staff", ListStaff)
		}
	}

	return r
}
