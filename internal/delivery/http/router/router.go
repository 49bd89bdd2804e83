// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	OfferHandler   *handler.OfferHandler
	OrderHandler   *handler.OrderHandler
	ReviewHandler  *handler.ReviewHandler
	InfoHandler    *handler.InfoHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	offerHandler   *handler.OfferHandler
	orderHandler   *handler.OrderHandler
	reviewHandler  *handler.ReviewHandler
	infoHandler    *handler.InfoHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		offerHandler:   params.OfferHandler,
		orderHandler:   params.OrderHandler,
		reviewHandler:  params.ReviewHandler,
		infoHandler:    params.InfoHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public endpoints
	api.POST("/registration/", r.authHandler.Register)
	api.POST("/login/", r.authHandler.Login)
	api.GET("/base-info/", r.infoHandler.BaseInfo)

	// The offer listing is public; single-offer and detail retrieves require a token.
	api.GET("/offers/", r.offerHandler.ListOffers)

	authed := api.Group("", r.authMiddleware.Authenticate)
	{
		authed.GET("/profile/:pk/", r.profileHandler.GetProfile)
		authed.PATCH("/profile/:pk/", r.profileHandler.UpdateProfile)
		authed.GET("/profiles/business/", r.profileHandler.ListBusinessProfiles)
		authed.GET("/profiles/customer/", r.profileHandler.ListCustomerProfiles)

		authed.POST("/offers/", r.offerHandler.CreateOffer)
		authed.GET("/offers/:pk/", r.offerHandler.GetOffer)
		authed.PATCH("/offers/:pk/", r.offerHandler.UpdateOffer)
		authed.DELETE("/offers/:pk/", r.offerHandler.DeleteOffer)
		authed.GET("/offerdetails/:pk/", r.offerHandler.GetOfferDetail)

		authed.GET("/orders/", r.orderHandler.ListOrders)
		authed.POST("/orders/", r.orderHandler.CreateOrder)
		authed.GET("/orders/:pk/", r.orderHandler.GetOrder)
		authed.PATCH("/orders/:pk/", r.orderHandler.UpdateOrderStatus)
		authed.DELETE("/orders/:pk/", r.orderHandler.DeleteOrder)
		authed.GET("/order-count/:business_user_id/", r.orderHandler.OrderCount)
		authed.GET("/completed-order-count/:business_user_id/", r.orderHandler.CompletedOrderCount)

		authed.GET("/reviews/", r.reviewHandler.ListReviews)
		authed.POST("/reviews/", r.reviewHandler.CreateReview)
		authed.GET("/reviews/:pk/", r.reviewHandler.GetReview)
		authed.PATCH("/reviews/:pk/", r.reviewHandler.UpdateReview)
		authed.DELETE("/reviews/:pk/", r.reviewHandler.DeleteReview)
	}
}
