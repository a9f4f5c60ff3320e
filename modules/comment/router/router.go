package router

import (
	"group-scheduler/core/middleware"
	"group-scheduler/modules/comment/controller"

	"github.com/labstack/echo/v4"
)

type CommentRouter struct {
	controller *controller.CommentController
}

func NewCommentRouter(controller *controller.CommentController) *CommentRouter {
	return &CommentRouter{controller: controller}
}

func (r *CommentRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	comments := v1.Group("/groups/:id/events/:eventId/comments", mw.AuthMiddleware())
	comments.GET("", r.controller.GetComments)
	comments.POST("", r.controller.CreateComment)
	comments.DELETE("/:commentId", r.controller.DeleteComment)
}
