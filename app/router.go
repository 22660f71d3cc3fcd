package app

import (
	"bitwise74/medflow-api/app/auth"
	"bitwise74/medflow-api/app/category"
	"bitwise74/medflow-api/app/device"
	"bitwise74/medflow-api/app/note"
	"bitwise74/medflow-api/app/notification"
	"bitwise74/medflow-api/app/question"
	"bitwise74/medflow-api/app/quicktip"
	"bitwise74/medflow-api/app/root"
	"bitwise74/medflow-api/app/symptom"
	"bitwise74/medflow-api/app/templates"
	"bitwise74/medflow-api/app/user"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/metrics"
	"bitwise74/medflow-api/pkg/middleware"
	"slices"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// handler adapts the app's handler signature to gin
func handler(d *internal.Deps, fn func(*gin.Context, *internal.Deps)) gin.HandlerFunc {
	return func(c *gin.Context) { fn(c, d) }
}

func NewRouter(d *internal.Deps) *gin.Engine {
	cfg := d.Config

	router := gin.New()
	router.SetHTMLTemplate(templates.Load())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if slices.Contains(cfg.Host.CORS, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Host.CORS
		corsConfig.AllowCredentials = true
	}

	router.Use(
		cors.New(corsConfig),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			SkipPaths:  []string{"/metrics", "/api/heartbeat"},
			Context: func(c *gin.Context) []zapcore.Field {
				return []zapcore.Field{zap.String("requestID", c.GetString("requestID"))}
			},
		}),
		ginzap.RecoveryWithZap(zap.L(), true),
		middleware.NewMetricsMiddleware(),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	jwt := middleware.NewJWTMiddleware(cfg.JWT.Secret)
	admin := middleware.RequireAdmin()
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.Security.RateLimit,
		Burst:             cfg.Security.RateLimit * 2,
	})

	// Uploads are the largest bodies, leave some room for the other fields
	bodyLimit := middleware.BodySizeLimiter(cfg.Upload.MaxSize + 1<<20)

	cacheFor := newResponseCache(cfg.HTTP.CacheSeconds)

	m := router.Group("/api", rateLimiter, bodyLimit)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server and database are alive
		m.HEAD("/heartbeat", handler(d, root.Heartbeat))
	}

	a := m.Group("/auth")
	{
		// POST /api/auth/session	-> Exchanges a Firebase ID token for a session token
		a.POST("/session", handler(d, auth.AuthSession))

		// GET /api/auth/validate	-> Validates a session token
		a.GET("/validate", jwt, auth.AuthValidate)
	}

	u := m.Group("/users")
	{
		// POST /api/users		-> Registers a user, or returns the existing one
		u.POST("", handler(d, user.UserRegister))

		// GET /api/users		-> Lists all users
		u.GET("", handler(d, user.UserList))

		// GET /api/users/verify	-> Approval link sent to the admin, renders HTML
		u.GET("/verify", handler(d, user.UserVerify))

		// GET /api/users/:uid		-> Returns a user
		u.GET("/:uid", handler(d, user.UserFetch))

		// GET /api/users/:uid/role	-> Returns the role of a user
		u.GET("/:uid/role", handler(d, user.UserRole))

		// PUT /api/users/:uid		-> Updates email, name or role
		u.PUT("/:uid", handler(d, user.UserUpdate))

		// DELETE /api/users/:uid	-> Deletes a user
		u.DELETE("/:uid", handler(d, user.UserDelete))

		// POST /api/users/:uid/verification -> Sends the approval email again
		u.POST("/:uid/verification", handler(d, user.UserResendVerification))

		// PUT /api/users/:uid/fcm-token	-> Registers the device used for push notifications
		u.PUT("/:uid/fcm-token", handler(d, user.UserSaveFCMToken))

		// DELETE /api/users/:uid/fcm-token	-> Forgets the device
		u.DELETE("/:uid/fcm-token", handler(d, user.UserClearFCMToken))
	}

	n := m.Group("/notifications", jwt, admin)
	{
		// POST /api/notifications/users/:uid	-> Pushes a notification to one user
		n.POST("/users/:uid", handler(d, notification.NotifyUser))

		// POST /api/notifications/broadcast	-> Pushes a notification to everyone or to a role
		n.POST("/broadcast", handler(d, notification.Broadcast))
	}

	dv := m.Group("/devices")
	{
		dv.POST("", handler(d, device.DeviceCreate))
		dv.GET("", cacheFor, handler(d, device.DeviceList))
		dv.GET("/:id", handler(d, device.DeviceFetch))
		dv.GET("/name/:name", handler(d, device.DeviceByName))
		dv.GET("/category/:category", cacheFor, handler(d, device.DeviceByCategory))
		dv.PATCH("/:id", handler(d, device.DeviceUpdate))
		dv.DELETE("/:id", handler(d, device.DeviceDelete))
	}

	s := m.Group("/symptoms")
	{
		// POST /api/symptoms		-> JSON, or multipart with an optional image field
		s.POST("", handler(d, symptom.SymptomCreate))
		s.GET("", cacheFor, handler(d, symptom.SymptomList))
		s.GET("/:id", handler(d, symptom.SymptomFetch))
		s.GET("/name/:name", handler(d, symptom.SymptomByName))
		s.PATCH("/:id", handler(d, symptom.SymptomUpdate))
		s.DELETE("/:id", handler(d, symptom.SymptomDelete))
	}

	c := m.Group("/categories")
	{
		c.POST("", handler(d, category.CategoryCreate))
		c.GET("", cacheFor, handler(d, category.CategoryList))
		c.GET("/:id", handler(d, category.CategoryFetch))

		// GET /api/categories/name/:name	-> Returns the id and description of a category
		c.GET("/name/:name", handler(d, category.CategoryDescription))
		c.PUT("/:id", handler(d, category.CategoryUpdate))

		// DELETE /api/categories/:id	-> Devices fall back to the default category
		c.DELETE("/:id", handler(d, category.CategoryDelete))
	}

	q := m.Group("/quicktips")
	{
		// GET /api/quicktips/all	-> One summary per category with tips
		q.GET("/all", cacheFor, handler(d, quicktip.QuickTipSummaries))

		// GET /api/quicktips/category/:categoryId	-> Active tips, highest priority first
		q.GET("/category/:categoryId", handler(d, quicktip.QuickTipFetch))

		// POST /api/quicktips/category/:categoryId	-> Replaces every tip of a category
		q.POST("/category/:categoryId", handler(d, quicktip.QuickTipReplace))

		q.POST("/category/:categoryId/tip", handler(d, quicktip.TipAdd))
		q.PUT("/category/:categoryId/tip/:tipId", handler(d, quicktip.TipUpdate))
		q.DELETE("/category/:categoryId/tip/:tipId", handler(d, quicktip.TipDelete))
	}

	nt := m.Group("/notes")
	{
		nt.GET("", handler(d, note.NoteList))
		nt.POST("", handler(d, note.NoteCreate))
		nt.DELETE("", handler(d, note.NoteDeleteAll))
		nt.PUT("/:id", handler(d, note.NoteUpdate))
		nt.DELETE("/:id", handler(d, note.NoteDelete))
	}

	qs := m.Group("/questions")
	{
		qs.GET("", handler(d, question.QuestionList))
		qs.POST("", handler(d, question.QuestionCreate))
		qs.GET("/student/:uid", handler(d, question.QuestionsByStudent))
		qs.PUT("/:id", handler(d, question.QuestionUpdate))
		qs.DELETE("/:id", handler(d, question.QuestionDelete))
	}

	return router
}

// newResponseCache caches reference lists for a few seconds. A zero
// duration turns caching off.
func newResponseCache(sec int) gin.HandlerFunc {
	if sec <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	// TODO: move to a shared store (redis) once more than one replica runs
	store := persist.NewMemoryStore(time.Minute)
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
