package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/kareem333j/students-management-system/config"
	"github.com/kareem333j/students-management-system/handlers"
	"github.com/kareem333j/students-management-system/middlewares"
)

// Register wires all HTTP routes. Data routes sit behind JWT auth only
// when the capability is enabled; the default matches the legacy
// allow-everything behavior.
func Register(e *echo.Echo, cfg *config.Config) {
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	gr := handlers.NewGradeHandler()
	std := handlers.NewStudentHandler()
	fu := handlers.NewFollowUpHandler()
	mon := handlers.NewMonthHandler()
	pay := handlers.NewPaymentHandler()
	qz := handlers.NewQuizHandler()
	mt := handlers.NewMaintenanceHandler()

	e.POST("/admin/login", auth.AdminLogin)

	var mw []echo.MiddlewareFunc
	if cfg.AuthEnabled {
		mw = append(mw, middlewares.RequireAuth(cfg.JWTSecret))
	}
	g := e.Group("", mw...)

	g.GET("/grades", gr.List)
	g.POST("/grades", gr.Create)
	g.GET("/grades/:id", gr.Get)
	g.PUT("/grades/:id", gr.Update)
	g.PATCH("/grades/:id", gr.Patch)
	g.DELETE("/grades/:id", gr.Delete)

	g.GET("/students", std.List)
	g.POST("/students", std.Create)
	g.DELETE("/students/all/delete", std.BulkDelete)
	g.GET("/students/:id", std.Get)
	g.PUT("/students/:id", std.Update)
	g.PATCH("/students/:id", std.Patch)
	g.DELETE("/students/:id", std.Delete)
	g.GET("/students/:id/all", std.FullDetail)
	g.GET("/students/search/:value", std.Search)
	g.GET("/students/grades/:id", std.ByGrade)

	g.GET("/daily-followups", fu.List)
	g.PATCH("/daily-followups", fu.BatchUpdate)

	g.GET("/months", mon.List)
	g.POST("/months", mon.Create)

	g.GET("/payments", pay.Matrix)
	g.PATCH("/payments", pay.BatchUpdate)

	g.GET("/quizzes", qz.List)
	g.PATCH("/quizzes", qz.BatchUpdate)

	g.DELETE("/delete-all", mt.DeleteAll)
}
