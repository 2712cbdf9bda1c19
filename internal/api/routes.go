package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gym-tracker/internal/config"
	"gym-tracker/internal/service"
)

// SetupRoutes wires every handler onto the router. Auth endpoints are
// public; everything under /api/v1 requires a valid session cookie.
func SetupRoutes(
	router *gin.Engine,
	sessionCfg config.SessionConfig,
	authService service.AuthService,
	accessService service.AccessService,
	partnerService service.PartnerService,
	exerciseService service.ExerciseService,
	planService service.PlanService,
	workoutService service.WorkoutService,
	analysisService service.AnalysisService,
	profileService service.ProfileService,
) {
	authHandler := NewAuthHandler(authService, sessionCfg)
	partnerHandler := NewPartnerHandler(partnerService, accessService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	planHandler := NewPlanHandler(planService)
	workoutHandler := NewWorkoutHandler(workoutService)
	analysisHandler := NewAnalysisHandler(analysisService)
	profileHandler := NewProfileHandler(profileService)

	sessionMiddleware := SessionMiddleware(authService, sessionCfg.CookieName())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/manifest.webmanifest", Manifest)

	// Identity provider round trip. Login redirects out, the provider
	// redirects back to the callback.
	router.GET("/login", RedirectIfAuthenticated(authService, sessionCfg.CookieName()), authHandler.Login)
	router.GET("/auth/callback", authHandler.Callback)
	router.GET("/logout", authHandler.Logout)

	apiV1 := router.Group("/api/v1")
	apiV1.Use(sessionMiddleware)
	{
		apiV1.GET("/me", profileHandler.GetMe)
		apiV1.PATCH("/me", profileHandler.UpdateName)
		apiV1.POST("/me/avatar/upload-url", profileHandler.RequestAvatarUpload)
		apiV1.POST("/me/avatar/confirm", profileHandler.ConfirmAvatar)

		partnerGroup := apiV1.Group("/partners")
		{
			partnerGroup.GET("", partnerHandler.GetPartners)
			partnerGroup.GET("/search", partnerHandler.SearchUsers)
			partnerGroup.POST("", partnerHandler.InvitePartner)
			partnerGroup.DELETE("/:userId", partnerHandler.RemovePartner)
			partnerGroup.GET("/access/:userId", partnerHandler.CheckAccess)
		}

		exerciseGroup := apiV1.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
		}

		planGroup := apiV1.Group("/plans")
		{
			planGroup.GET("", planHandler.ListPlans)
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.PUT("/:id", planHandler.UpdatePlan)
			planGroup.PATCH("/:id/day", planHandler.AssignDay)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
			planGroup.POST("/:id/start", workoutHandler.StartFromPlan)
		}

		workoutGroup := apiV1.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.POST("/:id/duplicate", workoutHandler.DuplicateWorkout)
			workoutGroup.POST("/:id/sets", workoutHandler.QuickAddSet)
			workoutGroup.PUT("/:id/sets/:setId", workoutHandler.UpdateSet)
			workoutGroup.DELETE("/:id/sets/:setId", workoutHandler.DeleteSet)
		}

		apiV1.GET("/analysis/weekly", analysisHandler.WeeklyAnalysis)
	}
}
