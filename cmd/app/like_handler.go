package main

import (
	"errors"
	"net/http"

	"github.com/karashiro/inkpost/internal/common"
	"github.com/karashiro/inkpost/internal/likeservice"
)

type addLikeRequest struct {
	UserID int `json:"user_id"`
}

func (app *application) addLikeHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid blog ID or user ID", nil)
		return
	}

	var input addLikeRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	count, err := app.likeService.AddLike(r.Context(), input.UserID, blogID)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, "Invalid blog ID or user ID", validationErr.Errors)
		case errors.Is(err, likeservice.ErrAlreadyLiked):
			app.alreadyLikedResponse(w, r, input.UserID, blogID)
		case errors.Is(err, likeservice.ErrBlogNotFound):
			app.notFoundErrorResponse(w, r, "Blog not found")
		case errors.Is(err, likeservice.ErrUserNotFound):
			app.notFoundErrorResponse(w, r, "User not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Like added successfully",
		Data:    map[string]any{"updated_like_count": count},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// alreadyLikedResponse answers a repeated like with the current count. The
// operation is a no-op, so this is a 200, not a 201.
func (app *application) alreadyLikedResponse(w http.ResponseWriter, r *http.Request, userID, blogID int) {
	status, err := app.likeService.GetLikeStatus(r.Context(), userID, blogID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Blog already liked",
		Data:    map[string]any{"updated_like_count": status.LikeCount},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) removeLikeHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid blog ID or user ID", nil)
		return
	}

	userID, err := app.readIDParam(r, "userid")
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid blog ID or user ID", nil)
		return
	}

	count, err := app.likeService.RemoveLike(r.Context(), userID, blogID)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, "Invalid blog ID or user ID", validationErr.Errors)
		case errors.Is(err, likeservice.ErrLikeNotFound):
			app.notFoundErrorResponse(w, r, "Like not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Like removed successfully",
		Data:    map[string]any{"updated_like_count": count},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) likeStatusHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid blog ID or user ID", nil)
		return
	}

	userID, err := app.readIDParam(r, "userid")
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid blog ID or user ID", nil)
		return
	}

	status, err := app.likeService.GetLikeStatus(r.Context(), userID, blogID)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, "Invalid blog ID or user ID", validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Like status fetched successfully",
		Data:    status,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
