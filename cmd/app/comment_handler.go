package main

import (
	"errors"
	"net/http"

	"github.com/karashiro/inkpost/internal/commentservice"
	"github.com/karashiro/inkpost/internal/common"
)

type createCommentRequest struct {
	Content string `json:"content"`
	UserID  int    `json:"user_id"`
}

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "id")
	if err != nil {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "Invalid blog ID or user ID", nil)
		return
	}

	var input createCommentRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &commentservice.CreateCommentRequest{
		Content: input.Content,
		UserID:  input.UserID,
		BlogID:  blogID,
	}

	comment, err := app.commentService.CreateComment(r.Context(), req)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			if _, ok := validationErr.Errors["content"]; ok {
				app.failedValidationErrorResponse(w, r, "Comment content is required", validationErr.Errors)
			} else {
				app.failedValidationErrorResponse(w, r, "Invalid blog ID or user ID", validationErr.Errors)
			}
		case errors.Is(err, commentservice.ErrBlogNotFound):
			app.notFoundErrorResponse(w, r, "Blog not found")
		case errors.Is(err, commentservice.ErrUserNotFound):
			app.notFoundErrorResponse(w, r, "User not found")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Comment created successfully",
		Data:    map[string]any{"comment_id": comment.ID},
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
