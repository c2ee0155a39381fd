package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tourops/internal/config"
	h "tourops/internal/http/handlers"
	"tourops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck(env))
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Public catalog
		tours := api.Group("/tours")
		tours.GET("", h.ListTours)
		tours.GET("/:id", h.GetTourDetail)
		tours.POST("/:id/quote", h.GetTourQuote)

		// Public booking flow
		bookings := api.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("/lookup", h.LookupBooking)

		// Public content
		api.POST("/tour-requests", h.CreateTourRequest)
		api.GET("/testimonials", h.ListTestimonials)
		api.POST("/testimonials", h.CreateTestimonial)
		api.GET("/destinations", h.ListDestinations)
		api.GET("/faqs", h.ListFAQs)
		api.GET("/blog", h.ListBlogPosts)
		api.GET("/blog/:slug", h.GetBlogPost)

		// Admin dashboard
		admin := api.Group("/admin", middleware.RequireAdmin([]byte(env.JWTSecret)))
		{
			admin.GET("/me", h.Me)

			adminTours := admin.Group("/tours")
			adminTours.POST("", h.CreateTour)
			adminTours.PUT("/:id", h.UpdateTour)
			adminTours.DELETE("/:id", h.DeleteTour)
			adminTours.PUT("/:id/days", h.PutTourDays)
			adminTours.GET("/:id/prices", h.GetTourPriceSheet)
			adminTours.PUT("/:id/prices", h.PutTourPriceSheet)

			adminBookings := admin.Group("/bookings")
			adminBookings.GET("", h.ListBookings)
			adminBookings.PUT("/:id/approve", h.ApproveBooking)
			adminBookings.PUT("/:id/decline", h.DeclineBooking)
			adminBookings.GET("/:id/voucher", h.GetBookingVoucher)

			adminRequests := admin.Group("/tour-requests")
			adminRequests.GET("", h.ListTourRequests)
			adminRequests.PUT("/:id/status", h.UpdateTourRequestStatus)

			adminTestimonials := admin.Group("/testimonials")
			adminTestimonials.GET("", h.ListTestimonialsAdmin)
			adminTestimonials.PUT("/:id/approve", h.ApproveTestimonial)
			adminTestimonials.DELETE("/:id", h.DeleteTestimonial)

			adminDestinations := admin.Group("/destinations")
			adminDestinations.POST("", h.CreateDestination)
			adminDestinations.PUT("/:id", h.UpdateDestination)
			adminDestinations.DELETE("/:id", h.DeleteDestination)

			adminPromotions := admin.Group("/promotions")
			adminPromotions.GET("", h.ListPromotions)
			adminPromotions.POST("", h.CreatePromotion)
			adminPromotions.PUT("/:id", h.UpdatePromotion)
			adminPromotions.DELETE("/:id", h.DeletePromotion)

			adminFAQs := admin.Group("/faqs")
			adminFAQs.POST("", h.CreateFAQ)
			adminFAQs.PUT("/:id", h.UpdateFAQ)
			adminFAQs.DELETE("/:id", h.DeleteFAQ)

			adminBlog := admin.Group("/blog")
			adminBlog.POST("", h.CreateBlogPost)
			adminBlog.PUT("/:id", h.UpdateBlogPost)
			adminBlog.DELETE("/:id", h.DeleteBlogPost)
		}
	}

	h.SetRouter(r)
	return r
}
