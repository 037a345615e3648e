package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.notFoundErrorResponse(w, r, "Resource not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// user service
	router.HandlerFunc(http.MethodPost, "/v1/users/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/logout", app.requireAuthUser(app.logoutUserHandler))

	// blog service
	router.HandlerFunc(http.MethodGet, "/v1/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id", app.getBlogHandler)

	// engagement
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:id/comments", app.requireAuthUser(app.createCommentHandler))
	router.HandlerFunc(http.MethodPost, "/v1/blogs/:id/likes", app.requireAuthUser(app.addLikeHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:id/likes/:userid", app.requireAuthUser(app.removeLikeHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id/likes/:userid", app.likeStatusHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(app.authenticate(router))))
}
