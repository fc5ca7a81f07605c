package api

import (
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every endpoint under /api/v1.
func SetupRoutes(
	router *gin.Engine,
	log *logger.Logger,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
	recordService service.RecordService,
	userService service.UserService,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	exerciseHandler := NewExerciseHandler(exerciseService, recordService)
	userHandler := NewUserHandler(userService)

	router.Use(RequestIDMiddleware(), RequestLogger(log))

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := AdminMiddleware()

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/password", authHandler.ChangePassword)

		// --- Plans ---
		planGroup := protected.Group("/workouts/plans")
		{
			planGroup.GET("", workoutHandler.GetPlans)
			planGroup.POST("", workoutHandler.CreatePlan)
			planGroup.GET("/today", workoutHandler.TodaysWorkout)
			planGroup.GET("/:id", workoutHandler.GetPlan)
			planGroup.PUT("/:id", workoutHandler.UpdatePlan)
			planGroup.DELETE("/:id", workoutHandler.DeletePlan)
			planGroup.POST("/:id/copy", workoutHandler.CopyTemplate)
		}

		// --- Workout logs ---
		logGroup := protected.Group("/workouts/logs")
		{
			logGroup.GET("", workoutHandler.GetLogs)
			logGroup.POST("", workoutHandler.LogWorkout)
			logGroup.GET("/:id", workoutHandler.GetLog)
			logGroup.DELETE("/:id", workoutHandler.DeleteLog)
		}

		// --- Exercise library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", adminOnly, exerciseHandler.CreateExercise)
			exerciseGroup.POST("/records", exerciseHandler.AddRecord)
			exerciseGroup.DELETE("/records/:id", exerciseHandler.DeleteRecord)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", adminOnly, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", adminOnly, exerciseHandler.DeleteExercise)
			exerciseGroup.GET("/:id/records", exerciseHandler.GetRecords)
		}

		categoryGroup := protected.Group("/categories")
		{
			categoryGroup.GET("", exerciseHandler.ListCategories)
			categoryGroup.POST("", adminOnly, exerciseHandler.CreateCategory)
			categoryGroup.PUT("/:id", adminOnly, exerciseHandler.UpdateCategory)
			categoryGroup.DELETE("/:id", adminOnly, exerciseHandler.DeleteCategory)
		}

		// --- Profile ---
		userGroup := protected.Group("/users/me")
		{
			userGroup.GET("", userHandler.GetProfile)
			userGroup.PUT("", userHandler.UpdateProfile)
			userGroup.GET("/stats", userHandler.GetStats)
			userGroup.GET("/weight", userHandler.GetWeightHistory)
			userGroup.POST("/weight", userHandler.AddWeightLog)
			userGroup.GET("/bjj", userHandler.GetBjjSessions)
			userGroup.POST("/bjj", userHandler.LogBjjSession)
			userGroup.PUT("/bjj/:id", userHandler.UpdateBjjSession)
			userGroup.DELETE("/bjj/:id", userHandler.DeleteBjjSession)
		}
	}
}
