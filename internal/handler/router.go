package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/umeedai/umeed-api/internal/dto"
	"github.com/umeedai/umeed-api/internal/middleware"
	"github.com/umeedai/umeed-api/internal/models"
	"github.com/umeedai/umeed-api/internal/service"
)

// Router wires every handler into the gin engine.
type Router struct {
	Validator   *validator.Validate
	AuthService *service.AuthService

	Auth       *AuthHandler
	Config     *ConfigHandler
	Students   *StudentHandler
	Attendance *AttendanceHandler
	Academics  *AcademicHandler
	Risk       *RiskHandler
}

// Register mounts all API routes under the given prefix.
func (rt *Router) Register(r *gin.Engine, prefix string) {
	v := rt.Validator
	api := r.Group(prefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login",
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetBody, New: func() interface{} { return &models.LoginRequest{} }}),
			rt.Auth.Login)
		auth.GET("/me", middleware.JWT(rt.AuthService), rt.Auth.Me)
	}

	secured := api.Group("")
	secured.Use(middleware.JWT(rt.AuthService))

	thresholds := secured.Group("/config/thresholds")
	{
		thresholds.GET("", rt.Config.ListThresholds)
		thresholds.GET("/export",
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetQuery, New: func() interface{} { return &dto.ExportQuery{} }}),
			rt.Config.ExportThresholds)
		thresholds.GET("/:factor", rt.Config.GetThreshold)
		thresholds.POST("",
			middleware.RequireAdmin(),
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetBody, New: func() interface{} { return &dto.CreateThresholdRequest{} }}),
			rt.Config.CreateThreshold)
		thresholds.PUT("/:factor",
			middleware.RequireAdmin(),
			middleware.ValidateMultiple(v,
				middleware.Schema{Target: middleware.TargetParams, New: func() interface{} { return &dto.ThresholdParams{} }},
				middleware.Schema{Target: middleware.TargetBody, New: func() interface{} { return &dto.UpdateThresholdRequest{} }},
			),
			rt.Config.UpdateThreshold)
		thresholds.DELETE("", middleware.RequireAdmin(), rt.Config.ResetThresholds)
	}

	students := secured.Group("/students")
	{
		students.GET("",
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetQuery, New: func() interface{} { return &dto.ListStudentsQuery{} }}),
			rt.Students.List)
		students.GET("/:id", rt.Students.Get)
		students.POST("",
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetBody, New: func() interface{} { return &dto.CreateStudentRequest{} }}),
			rt.Students.Create)
		students.PUT("/:id",
			middleware.ValidateMultiple(v,
				middleware.Schema{Target: middleware.TargetParams, New: func() interface{} { return &dto.StudentParams{} }},
				middleware.Schema{Target: middleware.TargetBody, New: func() interface{} { return &dto.UpdateStudentRequest{} }},
			),
			rt.Students.Update)
		students.DELETE("/:id", middleware.RequireAdmin(), rt.Students.Delete)
	}

	attendance := secured.Group("/attendance")
	{
		attendance.POST("",
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetBody, New: func() interface{} { return &dto.CreateAttendanceRequest{} }}),
			rt.Attendance.Create)
		attendance.GET("/:studentId",
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetParams, New: func() interface{} { return &dto.StudentIDParams{} }}),
			rt.Attendance.ListByStudent)
	}

	academics := secured.Group("/academics")
	{
		academics.POST("",
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetBody, New: func() interface{} { return &dto.CreateAcademicRequest{} }}),
			rt.Academics.Create)
		academics.GET("/:studentId",
			middleware.Validate(v, middleware.Schema{Target: middleware.TargetParams, New: func() interface{} { return &dto.StudentIDParams{} }}),
			rt.Academics.ListByStudent)
	}

	secured.GET("/risk/:studentId",
		middleware.Validate(v, middleware.Schema{Target: middleware.TargetParams, New: func() interface{} { return &dto.StudentIDParams{} }}),
		rt.Risk.Assess)
}
